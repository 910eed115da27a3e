package httputil

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestErrorMapperMatchesWrappedSentinel(t *testing.T) {
	sentinel := errors.New("catalog unavailable")
	mapper := NewErrorMapper().WithMapping(sentinel, http.StatusBadGateway, "sin catálogo")

	info := mapper.Map(fmt.Errorf("fetch: %w", sentinel))
	if info.Status != http.StatusBadGateway {
		t.Fatalf("unexpected status: %d", info.Status)
	}
	if info.Message != "sin catálogo" {
		t.Fatalf("unexpected message: %s", info.Message)
	}
}

func TestErrorMapperContextErrors(t *testing.T) {
	mapper := NewErrorMapper()
	if info := mapper.Map(context.DeadlineExceeded); info.Status != http.StatusGatewayTimeout {
		t.Fatalf("deadline: unexpected status %d", info.Status)
	}
	if info := mapper.Map(context.Canceled); info.Status != http.StatusServiceUnavailable {
		t.Fatalf("canceled: unexpected status %d", info.Status)
	}
}

func TestErrorMapperDefault(t *testing.T) {
	mapper := NewErrorMapper().WithDefault(http.StatusInternalServerError, "fallo")
	info := mapper.Map(errors.New("unmapped"))
	if info.Status != http.StatusInternalServerError || info.Message != "fallo" {
		t.Fatalf("unexpected default mapping: %+v", info)
	}
}

func TestErrorMapperNil(t *testing.T) {
	if info := NewErrorMapper().Map(nil); info.Status != http.StatusOK {
		t.Fatalf("unexpected status for nil error: %d", info.Status)
	}
}
