package domain

import (
	"errors"
	"strings"

	"theknifeweb/internal/shared/normalization"
)

// Client is a diner identity as served by the core API.
type Client struct {
	ID        string
	Name      string
	Email     string
	Phone     string
	Age       int
	Sex       string
	Education string
}

// NormalizeClient constructs a Client from a loosely typed map.
func NormalizeClient(raw map[string]any) (Client, bool) {
	id := normalization.AsString(raw["id"])
	if id == "" {
		id = normalization.AsString(raw["id_cliente"])
	}
	if id == "" {
		return Client{}, false
	}
	phone := normalization.AsString(raw["telefono"])
	if phone == "" {
		phone = normalization.AsString(raw["num_telefono"])
	}
	return Client{
		ID:        id,
		Name:      normalization.AsString(raw["nombre"]),
		Email:     normalization.AsString(raw["email"]),
		Phone:     phone,
		Age:       normalization.AsInt(raw["edad"]),
		Sex:       normalization.AsString(raw["sexo"]),
		Education: normalization.AsString(raw["estudios"]),
	}, true
}

// BuildClientList projects the {"clientes": [...]} envelope into records.
// Zero entries is a valid outcome, not a failure.
func BuildClientList(payload any) ([]Client, bool) {
	container := normalization.MapFromPayload(payload)
	if len(container) == 0 {
		return nil, false
	}
	rawItems := normalization.AsInterfaceSlice(container["clientes"])
	if rawItems == nil {
		rawItems = normalization.AsInterfaceSlice(container["items"])
	}
	if rawItems == nil {
		return nil, false
	}
	result := make([]Client, 0, len(rawItems))
	for _, item := range rawItems {
		if rawMap, ok := item.(map[string]any); ok {
			if client, ok := NormalizeClient(rawMap); ok {
				result = append(result, client)
			}
		}
	}
	return result, true
}

// Registration is the sign-up form content. Sex is optional; everything else
// is required and rejected client-side before any network call.
type Registration struct {
	ID        string
	Name      string
	Phone     string
	Email     string
	Age       int
	Sex       string
	Education string
}

var ErrIncompleteRegistration = errors.New("registration form incomplete")

// Validate checks the required fields.
func (r Registration) Validate() error {
	if strings.TrimSpace(r.ID) == "" ||
		strings.TrimSpace(r.Name) == "" ||
		strings.TrimSpace(r.Phone) == "" ||
		strings.TrimSpace(r.Email) == "" ||
		strings.TrimSpace(r.Education) == "" ||
		r.Age <= 0 {
		return ErrIncompleteRegistration
	}
	return nil
}

// Payload is the registration request body. The core API expects these exact
// uppercase keys.
func (r Registration) Payload() map[string]any {
	body := map[string]any{
		"ID_CLIENTE":   strings.TrimSpace(r.ID),
		"N_CLIENTE":    strings.TrimSpace(r.Name),
		"NUM_TELEFONO": strings.TrimSpace(r.Phone),
		"EMAIL":        strings.TrimSpace(r.Email),
		"EDAD":         r.Age,
		"ESTUDIOS":     strings.TrimSpace(r.Education),
	}
	if sex := strings.TrimSpace(r.Sex); sex != "" {
		body["SEXO"] = sex
	}
	return body
}

// UpdatePayload is the profile-update request body. Unlike registration, the
// update endpoint reads lowercase keys and takes the client id from the URL,
// so the body carries neither the id nor the sex field.
func (r Registration) UpdatePayload() map[string]any {
	return map[string]any{
		"nombre":   strings.TrimSpace(r.Name),
		"email":    strings.TrimSpace(r.Email),
		"telefono": strings.TrimSpace(r.Phone),
		"edad":     r.Age,
		"estudios": strings.TrimSpace(r.Education),
	}
}
