package config_test

import (
	"encoding/base64"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Abraxas-365/hireboard/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("HIREBOARD_API_URL", "http://api.test/")
	cfg, err := config.Load(filepath.Join(t.TempDir(), "missing.env"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.API.BaseURL != "http://api.test" {
		t.Errorf("BaseURL = %q", cfg.API.BaseURL)
	}
	if cfg.API.Timeout != 30*time.Second {
		t.Errorf("Timeout = %v", cfg.API.Timeout)
	}
	if cfg.API.PageSize != 10 {
		t.Errorf("PageSize = %d", cfg.API.PageSize)
	}
	if cfg.Session.Store != config.SessionStoreFile {
		t.Errorf("Store = %q", cfg.Session.Store)
	}
	if cfg.Session.Key != nil {
		t.Error("no session key expected")
	}
	if cfg.DevServer.Queue != "memory" || cfg.DevServer.Workers != 2 {
		t.Errorf("DevServer queue = %q with %d workers", cfg.DevServer.Queue, cfg.DevServer.Workers)
	}
}

func TestLoadEnvFile(t *testing.T) {
	key := base64.StdEncoding.EncodeToString([]byte(strings.Repeat("k", 32)))
	env := filepath.Join(t.TempDir(), "test.env")
	content := "HIREBOARD_TIMEOUT=5s\nHIREBOARD_SESSION_STORE=memory\nHIREBOARD_SESSION_KEY=" + key + "\n"
	if err := os.WriteFile(env, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	// godotenv never overrides variables that are already set
	t.Setenv("HIREBOARD_TIMEOUT", "")
	os.Unsetenv("HIREBOARD_TIMEOUT")
	t.Setenv("HIREBOARD_SESSION_STORE", "")
	os.Unsetenv("HIREBOARD_SESSION_STORE")
	t.Setenv("HIREBOARD_SESSION_KEY", "")
	os.Unsetenv("HIREBOARD_SESSION_KEY")

	cfg, err := config.Load(env)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.API.Timeout != 5*time.Second {
		t.Errorf("Timeout = %v, want 5s", cfg.API.Timeout)
	}
	if cfg.Session.Store != config.SessionStoreMemory {
		t.Errorf("Store = %q, want memory", cfg.Session.Store)
	}
	if len(cfg.Session.Key) != 32 {
		t.Errorf("Key length = %d, want 32", len(cfg.Session.Key))
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "unknown store", env: map[string]string{"HIREBOARD_SESSION_STORE": "sqlite"}},
		{name: "short key", env: map[string]string{"HIREBOARD_SESSION_KEY": base64.StdEncoding.EncodeToString([]byte("short"))}},
		{name: "negative timeout", env: map[string]string{"HIREBOARD_TIMEOUT": "-1s"}},
		{name: "unknown queue", env: map[string]string{"DEVSERVER_QUEUE": "kafka"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			if _, err := config.Load(filepath.Join(t.TempDir(), "none.env")); err == nil {
				t.Error("Load() should fail")
			}
		})
	}
}
