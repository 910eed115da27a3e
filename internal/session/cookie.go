package session

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"theknifeweb/internal/shared/auth"
)

const cookieName = "theknife_session"

// CookieManager resolves the session id for a request. The cookie carries a
// signed token whose subject is the session id; an invalid or absent cookie
// mints a fresh session.
type CookieManager struct {
	codec  *auth.TokenCodec
	ttl    time.Duration
	secure bool
}

func NewCookieManager(codec *auth.TokenCodec, ttl time.Duration, secure bool) *CookieManager {
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	return &CookieManager{codec: codec, ttl: ttl, secure: secure}
}

// SessionID returns the request's session id, minting one when missing.
func (m *CookieManager) SessionID(c echo.Context) (string, error) {
	if cookie, err := c.Cookie(cookieName); err == nil {
		if sid, err := m.codec.Validate(cookie.Value); err == nil {
			return sid, nil
		} else if !errors.Is(err, auth.ErrMissingToken) && !errors.Is(err, auth.ErrInvalidToken) {
			return "", err
		}
	}
	return m.mint(c)
}

func (m *CookieManager) mint(c echo.Context) (string, error) {
	sid := uuid.NewString()
	token, err := m.codec.Issue(sid)
	if err != nil {
		return "", err
	}
	c.SetCookie(&http.Cookie{
		Name:     cookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(m.ttl / time.Second),
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return sid, nil
}
