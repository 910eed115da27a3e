package infrastructure

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"theknifeweb/internal/modules/clients/application/port"
	"theknifeweb/internal/modules/clients/domain"
	"theknifeweb/internal/shared/rest"
)

func TestSearchFindsClient(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/clientes/buscar" || r.URL.Query().Get("id") != "C1" {
			t.Fatalf("unexpected request: %s?%s", r.URL.Path, r.URL.RawQuery)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"clientes":[{"id":"C1","nombre":"Ana","email":"ana@example.com"}]}`))
	}))
	defer server.Close()

	client := NewClientsHTTPClient(server.URL, time.Second, nil)
	found, err := client.Search(context.Background(), "C1")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if found == nil || found.Name != "Ana" {
		t.Fatalf("unexpected client: %+v", found)
	}
}

func TestSearchZeroResultsIsNotAnError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"clientes":[]}`))
	}))
	defer server.Close()

	client := NewClientsHTTPClient(server.URL, time.Second, nil)
	found, err := client.Search(context.Background(), "nadie")
	if err != nil {
		t.Fatalf("zero results should not fail: %v", err)
	}
	if found != nil {
		t.Fatalf("expected nil client, got %+v", found)
	}
}

func TestSearchNotFoundStatusIsZeroResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := NewClientsHTTPClient(server.URL, time.Second, nil)
	found, err := client.Search(context.Background(), "nadie")
	if err != nil || found != nil {
		t.Fatalf("404 should mean zero results, got %+v %v", found, err)
	}
}

func TestSearchNetworkFailureIsTyped(t *testing.T) {
	client := NewClientsHTTPClient("http://127.0.0.1:0", 50*time.Millisecond, nil)
	if _, err := client.Search(context.Background(), "C1"); !errors.Is(err, port.ErrClientsUnavailable) {
		t.Fatalf("expected ErrClientsUnavailable, got %v", err)
	}
}

func TestRegisterSendsUppercaseKeys(t *testing.T) {
	var got map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/clientes" {
			t.Fatalf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	client := NewClientsHTTPClient(server.URL, time.Second, nil)
	stored, err := client.Register(context.Background(), domain.Registration{
		ID: "C1", Name: "Ana", Phone: "600111222", Email: "ana@example.com", Age: 34, Education: "universitarios",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if got["ID_CLIENTE"] != "C1" || got["N_CLIENTE"] != "Ana" || got["EDAD"] != float64(34) {
		t.Fatalf("unexpected body: %+v", got)
	}
	if stored == nil || stored.ID != "C1" {
		t.Fatalf("expected echoed client record, got %+v", stored)
	}
}

func TestRegisterRejectionCarriesMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"mensaje":"el cliente ya existe"}`))
	}))
	defer server.Close()

	client := NewClientsHTTPClient(server.URL, time.Second, nil)
	_, err := client.Register(context.Background(), domain.Registration{ID: "C1", Name: "Ana", Phone: "6", Email: "a@b", Age: 30, Education: "eso"})
	message, ok := rest.RejectionMessage(err)
	if !ok || message != "el cliente ya existe" {
		t.Fatalf("expected server message, got %v", err)
	}
}

func TestUpdateSendsLowercaseKeys(t *testing.T) {
	var got map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut || r.URL.Path != "/api/clientes/C1" {
			t.Fatalf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		// The update endpoint reads these five keys unconditionally and
		// answers 500 when any is missing.
		for _, key := range []string{"nombre", "email", "telefono", "edad", "estudios"} {
			if _, ok := got[key]; !ok {
				w.WriteHeader(http.StatusInternalServerError)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"mensaje":"cliente actualizado"}`))
	}))
	defer server.Close()

	client := NewClientsHTTPClient(server.URL, time.Second, nil)
	err := client.Update(context.Background(), "C1", domain.Registration{
		ID: "C1", Name: "Ana", Phone: "600111222", Email: "ana@example.com", Age: 35, Education: "universitarios",
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got["nombre"] != "Ana" || got["telefono"] != "600111222" || got["edad"] != float64(35) {
		t.Fatalf("unexpected body: %+v", got)
	}
	if _, present := got["ID_CLIENTE"]; present {
		t.Fatalf("update body must not carry registration keys: %+v", got)
	}
	if _, present := got["id"]; present {
		t.Fatalf("update body must not repeat the id: %+v", got)
	}
}

func TestDeletePath(t *testing.T) {
	var method, path string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		method, path = r.Method, r.URL.Path
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	client := NewClientsHTTPClient(server.URL, time.Second, nil)
	if err := client.Delete(context.Background(), "C1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if method != http.MethodDelete || path != "/api/clientes/C1" {
		t.Fatalf("unexpected delete request: %s %s", method, path)
	}
}
