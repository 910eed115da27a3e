package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type ServerConfig struct {
	Port string
}

type RESTConfig struct {
	BaseURL string
	Timeout time.Duration
}

type SessionConfig struct {
	Secret       string
	TTL          time.Duration
	Backend      string
	RedisAddress string
	CookieSecure bool
}

type KafkaConfig struct {
	Brokers []string
	GroupID string
	// Topics maps an entity name to the broker topics that carry its events.
	Topics map[string][]string
}

type WebsocketConfig struct {
	AllowedActions []string
}

type LoggingConfig struct {
	Level     string
	Format    string
	Directory string
}

type Config struct {
	Server    ServerConfig
	REST      RESTConfig
	Session   SessionConfig
	Kafka     KafkaConfig
	Websocket WebsocketConfig
	Logging   LoggingConfig
}

// Load reads the process environment into a typed Config. Values carry
// workable defaults for local runs; only a malformed value is an error.
func Load() (*Config, error) {
	timeout, err := durationEnv("CORE_API_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}
	sessionTTL, err := durationEnv("SESSION_TTL", 2*time.Hour)
	if err != nil {
		return nil, err
	}
	cookieSecure, err := boolEnv("SESSION_COOKIE_SECURE", false)
	if err != nil {
		return nil, err
	}

	backend := strings.ToLower(stringEnv("SESSION_BACKEND", "memory"))
	if backend != "memory" && backend != "redis" {
		return nil, fmt.Errorf("SESSION_BACKEND must be memory or redis, got %q", backend)
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: stringEnv("PORT", "8080"),
		},
		REST: RESTConfig{
			BaseURL: stringEnv("CORE_API_URL", "http://localhost:5000"),
			Timeout: timeout,
		},
		Session: SessionConfig{
			Secret:       stringEnv("SESSION_SECRET", "dev-session-secret"),
			TTL:          sessionTTL,
			Backend:      backend,
			RedisAddress: stringEnv("REDIS_ADDR", "localhost:6379"),
			CookieSecure: cookieSecure,
		},
		Kafka: KafkaConfig{
			Brokers: listEnv("KAFKA_BROKERS", os.Getenv("KAFKA_BROKER")),
			GroupID: stringEnv("KAFKA_GROUP_ID", "theknife-web"),
			Topics: map[string][]string{
				"reserva": listEnv("KAFKA_TOPICS_RESERVA", "reserva.events"),
				"factura": listEnv("KAFKA_TOPICS_FACTURA", "factura.events"),
				"resena":  listEnv("KAFKA_TOPICS_RESENA", "resena.events"),
			},
		},
		Websocket: WebsocketConfig{
			AllowedActions: listEnv("WS_ALLOWED_ACTIONS", "created,updated,deleted"),
		},
		Logging: LoggingConfig{
			Level:     stringEnv("LOG_LEVEL", "info"),
			Format:    stringEnv("LOG_FORMAT", "json"),
			Directory: stringEnv("LOG_DIR", "./logs"),
		},
	}
	return cfg, nil
}

func stringEnv(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}

func durationEnv(key string, fallback time.Duration) (time.Duration, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	value, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return value, nil
}

func boolEnv(key string, fallback bool) (bool, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("%s: %w", key, err)
	}
	return value, nil
}

// listEnv splits a comma separated env value, falling back to a default list.
func listEnv(key, fallback string) []string {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		raw = fallback
	}
	var values []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			values = append(values, part)
		}
	}
	return values
}
