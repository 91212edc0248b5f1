package config

import (
	"testing"
	"time"
)

func validConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:               8080,
			ReadTimeout:        10 * time.Second,
			WriteTimeout:       10 * time.Second,
			IdleTimeout:        120 * time.Second,
			ShutDownTimeout:    5 * time.Second,
			RequestTimeout:     1000 * time.Millisecond,
			CORSAllowedOrigins: "*",
			AuthParam:          "token",
		},
		Data: DataConfig{
			FilePath:        "/tmp/posts.json",
			PersistInterval: 5 * time.Second,
		},
		Client: ClientConfig{
			BaseURL:        "http://localhost:8080/posts",
			Resource:       "post",
			AuthParam:      "token",
			Rethrow:        true,
			RequestTimeout: 30 * time.Second,
		},
		Misc: MiscConfig{
			GinMode:  "release",
			LogLevel: "info",
		},
	}
}

func TestConfig_Validate_Valid(t *testing.T) {
	cfg := validConfig()
	if err := cfg.validate(); err != nil {
		t.Errorf("expected valid config, got error: %v", err)
	}
}

func TestConfig_Validate_EmptyFilePath(t *testing.T) {
	cfg := validConfig()
	cfg.Data.FilePath = ""
	if err := cfg.validate(); err == nil {
		t.Error("expected error for empty file path")
	}
}

func TestConfig_Validate_InvalidPort(t *testing.T) {
	tests := []struct {
		name string
		port int
	}{
		{"zero port", 0},
		{"negative port", -1},
		{"too high port", 65536},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			cfg.Server.Port = tt.port
			if err := cfg.validate(); err == nil {
				t.Errorf("expected error for port %d", tt.port)
			}
		})
	}
}

func TestConfig_Validate_InvalidPersistInterval(t *testing.T) {
	cfg := validConfig()
	cfg.Data.PersistInterval = 0
	if err := cfg.validate(); err == nil {
		t.Error("expected error for zero persist interval")
	}
}

func TestConfig_Validate_MissingClientBaseURL(t *testing.T) {
	cfg := validConfig()
	cfg.Client.BaseURL = ""
	if err := cfg.validate(); err == nil {
		t.Error("expected error for missing client base URL")
	}
}

func TestConfig_Validate_MissingClientResource(t *testing.T) {
	cfg := validConfig()
	cfg.Client.Resource = ""
	if err := cfg.validate(); err == nil {
		t.Error("expected error for missing client resource type")
	}
}

func TestConfig_Validate_MissingAuthParam(t *testing.T) {
	cfg := validConfig()
	cfg.Client.AuthParam = ""
	if err := cfg.validate(); err == nil {
		t.Error("expected error for missing auth param name")
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	t.Chdir(t.TempDir()) // no config file present

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("expected default port 8080, got %d", cfg.Server.Port)
	}
	if cfg.Client.Resource != "post" {
		t.Errorf("expected default resource 'post', got %q", cfg.Client.Resource)
	}
	if !cfg.Client.Rethrow {
		t.Error("expected rethrow to default to true")
	}
	if cfg.Data.PersistInterval != 5*time.Second {
		t.Errorf("expected default persist interval 5s, got %v", cfg.Data.PersistInterval)
	}
}
