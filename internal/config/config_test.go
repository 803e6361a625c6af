package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"CABSYNC_HTTP_ADDR", "CABSYNC_RAPIDO_TIMEOUT", "CABSYNC_QUOTE_TTL", "CABSYNC_MAPS_API_KEY", "CABSYNC_FIREBASE_PROJECT_ID"} {
		t.Setenv(k, "")
	}
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.HTTP.Addr != ":8080" {
		t.Errorf("HTTP.Addr = %q", cfg.HTTP.Addr)
	}
	if cfg.Rapido.Timeout != 10*time.Second || cfg.Rapido.QuoteTTL != time.Minute {
		t.Errorf("unexpected rapido durations: %+v", cfg.Rapido)
	}
	if cfg.Maps.APIKey != "" || cfg.Firebase.ProjectID != "" {
		t.Errorf("optional integrations should be off by default")
	}
}

func TestEnvOrDefaultDuration(t *testing.T) {
	tests := []struct {
		name string
		val  string
		want time.Duration
	}{
		{"unset", "", 5 * time.Second},
		{"go duration", "250ms", 250 * time.Millisecond},
		{"bare seconds", "15", 15 * time.Second},
		{"garbage", "soon", 5 * time.Second},
		{"negative", "-3s", 5 * time.Second},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("CABSYNC_TEST_DURATION", tt.val)
			if got := envOrDefaultDuration("CABSYNC_TEST_DURATION", 5*time.Second); got != tt.want {
				t.Errorf("envOrDefaultDuration() = %v, want %v", got, tt.want)
			}
		})
	}
}
