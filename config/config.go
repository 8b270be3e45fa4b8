package config

import (
	"os"
	"strings"
	"time"
)

type Config struct {
	Port            string
	PostgresDSN     string
	RedisAddr       string
	CatalogCacheTTL time.Duration
	KafkaBrokers    []string
	OrdersTopic     string
	SMTPAddr        string
	SMTPFrom        string
	JWTSecret       string
	AdminAPIKey     string
}

func Load() Config {
	return Config{
		Port:            getenv("PORT", "8080"),
		PostgresDSN:     getenv("POSTGRES_DSN", "host=localhost user=postgres password=postgres dbname=marketplace port=5432 sslmode=disable"),
		RedisAddr:       getenv("REDIS_ADDR", ""),
		CatalogCacheTTL: getduration("CATALOG_CACHE_TTL", 5*time.Minute),
		KafkaBrokers:    splitCSV(getenv("KAFKA_BROKERS", "")),
		OrdersTopic:     getenv("KAFKA_ORDERS_TOPIC", "orders.placed"),
		SMTPAddr:        getenv("SMTP_ADDR", ""),
		SMTPFrom:        getenv("SMTP_FROM", ""),
		JWTSecret:       getenv("JWT_SECRET", ""),
		AdminAPIKey:     getenv("ADMIN_API_KEY", ""),
	}
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getduration(k string, def time.Duration) time.Duration {
	if v := os.Getenv(k); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func splitCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}
