package config

import (
	"testing"
	"time"
)

func TestFromEnv_Defaults(t *testing.T) {
	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv() returned unexpected error: %v", err)
	}
	if cfg.API.BaseURL != "http://localhost:5000/api" {
		t.Fatalf("unexpected base url %q", cfg.API.BaseURL)
	}
	if cfg.State.Backend != BackendFile {
		t.Fatalf("expected file backend, got %q", cfg.State.Backend)
	}
	if cfg.Shop.PaymentDelay != 3*time.Second {
		t.Fatalf("expected 3s payment delay, got %v", cfg.Shop.PaymentDelay)
	}
	if cfg.Shop.PersistCart {
		t.Fatal("cart persistence must be off by default")
	}
	if !cfg.HTTP.AllowAllOrigins() {
		t.Fatal("expected open CORS by default")
	}
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("STOREFRONT_API_BASE_URL", "http://shop.internal/api")
	t.Setenv("STOREFRONT_STATE_BACKEND", "Redis")
	t.Setenv("STOREFRONT_PAYMENT_DELAY", "250ms")
	t.Setenv("STOREFRONT_CORS_ORIGINS", "http://a.test,http://b.test")
	t.Setenv("STOREFRONT_PERSIST_CART", "true")

	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv() returned unexpected error: %v", err)
	}
	if cfg.API.BaseURL != "http://shop.internal/api" {
		t.Fatalf("unexpected base url %q", cfg.API.BaseURL)
	}
	if cfg.State.Backend != BackendRedis {
		t.Fatalf("expected redis backend, got %q", cfg.State.Backend)
	}
	if cfg.Shop.PaymentDelay != 250*time.Millisecond {
		t.Fatalf("unexpected payment delay %v", cfg.Shop.PaymentDelay)
	}
	if len(cfg.HTTP.CORSOrigins) != 2 || cfg.HTTP.AllowAllOrigins() {
		t.Fatalf("unexpected origins %v", cfg.HTTP.CORSOrigins)
	}
	if !cfg.Shop.PersistCart {
		t.Fatal("expected cart persistence on")
	}
}

func TestFromEnv_PostgresNeedsDSN(t *testing.T) {
	t.Setenv("STOREFRONT_STATE_BACKEND", "postgres")
	if _, err := FromEnv(); err == nil {
		t.Fatal("expected an error without STOREFRONT_DB_DSN")
	}

	t.Setenv("STOREFRONT_DB_DSN", "postgres://u:p@localhost:5432/shop?sslmode=disable")
	if _, err := FromEnv(); err != nil {
		t.Fatalf("unexpected error with dsn set: %v", err)
	}
}

func TestFromEnv_UnknownBackend(t *testing.T) {
	t.Setenv("STOREFRONT_STATE_BACKEND", "sqlite")
	if _, err := FromEnv(); err == nil {
		t.Fatal("expected unknown backend to be rejected")
	}
}

func TestStateDir(t *testing.T) {
	if got := (StateConfig{Dir: "/tmp/x"}).StateDir(); got != "/tmp/x" {
		t.Fatalf("expected explicit dir, got %q", got)
	}
	if got := (StateConfig{}).StateDir(); got == "" {
		t.Fatal("expected a resolved default dir")
	}
}
