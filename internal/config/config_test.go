package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Port != "8080" {
		t.Fatalf("unexpected port: %s", cfg.Server.Port)
	}
	if cfg.REST.BaseURL != "http://localhost:5000" || cfg.REST.Timeout != 10*time.Second {
		t.Fatalf("unexpected rest config: %+v", cfg.REST)
	}
	if cfg.Session.Backend != "memory" {
		t.Fatalf("unexpected session backend: %s", cfg.Session.Backend)
	}
	if len(cfg.Kafka.Topics["reserva"]) != 1 || cfg.Kafka.Topics["reserva"][0] != "reserva.events" {
		t.Fatalf("unexpected kafka topics: %+v", cfg.Kafka.Topics)
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("SESSION_BACKEND", "redis")
	t.Setenv("KAFKA_BROKERS", "kafka1:9092, kafka2:9092")
	t.Setenv("CORE_API_TIMEOUT", "3s")
	t.Setenv("WS_ALLOWED_ACTIONS", "created")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Port != "9090" {
		t.Fatalf("unexpected port: %s", cfg.Server.Port)
	}
	if cfg.Session.Backend != "redis" {
		t.Fatalf("unexpected backend: %s", cfg.Session.Backend)
	}
	if len(cfg.Kafka.Brokers) != 2 || cfg.Kafka.Brokers[1] != "kafka2:9092" {
		t.Fatalf("unexpected brokers: %+v", cfg.Kafka.Brokers)
	}
	if cfg.REST.Timeout != 3*time.Second {
		t.Fatalf("unexpected timeout: %v", cfg.REST.Timeout)
	}
	if len(cfg.Websocket.AllowedActions) != 1 {
		t.Fatalf("unexpected actions: %+v", cfg.Websocket.AllowedActions)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Setenv("SESSION_BACKEND", "sqlite")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for unknown session backend")
	}
	t.Setenv("SESSION_BACKEND", "memory")
	t.Setenv("CORE_API_TIMEOUT", "pronto")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for malformed timeout")
	}
}
