package config_test

import (
	"testing"
	"time"

	cfg "github.com/stitchworks/imagelib/config"
)

// TestLoadWithPrefix_Defaults — проверка наличия значений по умолчанию.
func TestLoadWithPrefix_Defaults(t *testing.T) {
	t.Parallel()

	c, err := cfg.LoadWithPrefix("IMAGELIB_TEST_DEFAULTS")
	if err != nil {
		t.Fatalf("LoadWithPrefix error: %v", err)
	}

	// HTTP
	if c.HTTP.Addr != ":8080" {
		t.Fatalf("HTTP.Addr: want :8080, got %q", c.HTTP.Addr)
	}
	if c.HTTP.GinMode != "debug" {
		t.Fatalf("HTTP.GinMode: want debug, got %q", c.HTTP.GinMode)
	}
	if c.HTTP.ReadTimeout != 10*time.Second || c.HTTP.WriteTimeout != 10*time.Second {
		t.Fatalf("HTTP timeouts wrong: %+v", c.HTTP)
	}
	if c.HTTP.ReadHeaderTimeout != 5*time.Second || c.HTTP.IdleTimeout != 60*time.Second {
		t.Fatalf("HTTP header/idle timeouts wrong: %+v", c.HTTP)
	}
	if c.HTTP.HandlerTimeout != 3*time.Second || c.HTTP.GracefulTimeout != 5*time.Second {
		t.Fatalf("HTTP handler/graceful timeouts wrong: %+v", c.HTTP)
	}

	// Tracing
	if c.Tracing.Enabled {
		t.Fatalf("Tracing.Enabled: want false, got true")
	}
	if c.Tracing.ServiceName != "imagelib" || c.Tracing.Endpoint != "jaeger:4318" || c.Tracing.SampleRatio != 1 {
		t.Fatalf("Tracing defaults wrong: %+v", c.Tracing)
	}

	// Cache
	if c.Cache.TTL != 5*time.Minute || c.Cache.MaxEntries != 10 {
		t.Fatalf("Cache defaults wrong: %+v", c.Cache)
	}

	// Remote
	if c.Remote.BaseURL != "http://localhost:9000" || c.Remote.Timeout != 15*time.Second {
		t.Fatalf("Remote defaults wrong: %+v", c.Remote)
	}
	if c.Remote.DeleteRetries != 2 || c.Remote.RetryDelay != time.Second || c.Remote.ManualRetryCount != 3 {
		t.Fatalf("Remote retry defaults wrong: %+v", c.Remote)
	}
	if c.Remote.AuthToken != "" {
		t.Fatalf("Remote.AuthToken: want empty default, got %q", c.Remote.AuthToken)
	}

	// Store
	if c.Store.Path != "imagelib.db" {
		t.Fatalf("Store.Path: want imagelib.db, got %q", c.Store.Path)
	}

	// Logger
	if c.Logger.IsProd {
		t.Fatalf("Logger.IsProd: want false, got true")
	}
}

// Меняем окружение.
func TestLoadWithPrefix_Overrides(t *testing.T) {
	const p = "IMAGELIB_TEST_OVR"

	// HTTP
	t.Setenv(p+"_HTTP_ADDR", ":9999")
	t.Setenv(p+"_HTTP_GIN_MODE", "release")
	t.Setenv(p+"_HTTP_HANDLER_TIMEOUT", "4500ms")

	// Tracing
	t.Setenv(p+"_TRACING_OTEL_ENABLED", "true")
	t.Setenv(p+"_TRACING_OTEL_SERVICE_NAME", "svc")
	t.Setenv(p+"_TRACING_OTEL_ENDPOINT", "collector:4318")
	t.Setenv(p+"_TRACING_OTEL_SAMPLE_RATIO", "0.25")

	// Cache
	t.Setenv(p+"_CACHE_TTL", "30s")
	t.Setenv(p+"_CACHE_MAX_ENTRIES", "25")

	// Remote
	t.Setenv(p+"_REMOTE_BASE_URL", "https://api.example.com")
	t.Setenv(p+"_REMOTE_TIMEOUT", "7s")
	t.Setenv(p+"_REMOTE_AUTH_TOKEN", "secret")
	t.Setenv(p+"_REMOTE_DELETE_RETRIES", "5")
	t.Setenv(p+"_REMOTE_RETRY_DELAY", "250ms")
	t.Setenv(p+"_REMOTE_MANUAL_RETRY_COUNT", "7")

	// Store
	t.Setenv(p+"_STORE_PATH", "/tmp/lib.db")

	// Logger
	t.Setenv(p+"_LOGGER_IS_PROD", "true")

	c, err := cfg.LoadWithPrefix(p)
	if err != nil {
		t.Fatalf("LoadWithPrefix error: %v", err)
	}

	if c.HTTP.Addr != ":9999" || c.HTTP.GinMode != "release" || c.HTTP.HandlerTimeout != 4500*time.Millisecond {
		t.Fatalf("HTTP overrides wrong: %+v", c.HTTP)
	}
	if !c.Tracing.Enabled || c.Tracing.ServiceName != "svc" || c.Tracing.Endpoint != "collector:4318" || c.Tracing.SampleRatio != 0.25 {
		t.Fatalf("Tracing overrides wrong: %+v", c.Tracing)
	}
	if c.Cache.TTL != 30*time.Second || c.Cache.MaxEntries != 25 {
		t.Fatalf("Cache overrides wrong: %+v", c.Cache)
	}
	if c.Remote.BaseURL != "https://api.example.com" || c.Remote.Timeout != 7*time.Second || c.Remote.AuthToken != "secret" {
		t.Fatalf("Remote overrides wrong: %+v", c.Remote)
	}
	if c.Remote.DeleteRetries != 5 || c.Remote.RetryDelay != 250*time.Millisecond || c.Remote.ManualRetryCount != 7 {
		t.Fatalf("Remote retry overrides wrong: %+v", c.Remote)
	}
	if c.Store.Path != "/tmp/lib.db" {
		t.Fatalf("Store override wrong: %+v", c.Store)
	}
	if !c.Logger.IsProd {
		t.Fatalf("Logger override wrong: %+v", c.Logger)
	}
}
