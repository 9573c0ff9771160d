// cliparse/cliparse_test.go
package cliparse

import (
	"testing"
	"time"
)

func TestParseFlags_EnvVars(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("SESSION_KEY", "test-key")
	t.Setenv("MAX_ROOMS", "5")
	t.Setenv("MAX_LEARNERS", "7")
	t.Setenv("EXPORT_INTERVAL", "1m")
	t.Setenv("DATABASE_URL", "file:export.db")

	cfg, err := ParseFlags([]string{})
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Port != 9000 {
		t.Errorf("expected port 9000, got %d", cfg.Port)
	}
	if cfg.SessionKey != "test-key" {
		t.Errorf("expected session key from env, got %q", cfg.SessionKey)
	}
	if cfg.MaxRooms != 5 || cfg.MaxLearners != 7 {
		t.Errorf("expected limits 5/7, got %d/%d", cfg.MaxRooms, cfg.MaxLearners)
	}
	if cfg.ExportInterval != time.Minute {
		t.Errorf("expected 1m export interval, got %v", cfg.ExportInterval)
	}
	if cfg.DatabaseType != "sqlite" {
		t.Errorf("expected default database type sqlite, got %q", cfg.DatabaseType)
	}
}

func TestParseFlags_Defaults(t *testing.T) {
	t.Setenv("SESSION_KEY", "test-key")

	cfg, err := ParseFlags([]string{})
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Port != 8080 {
		t.Errorf("expected default port 8080, got %d", cfg.Port)
	}
	if cfg.MaxRooms != 1000 || cfg.MaxLearners != 100 {
		t.Errorf("expected default limits 1000/100, got %d/%d", cfg.MaxRooms, cfg.MaxLearners)
	}
	if cfg.UpdateRate != 5 || cfg.UpdateBurst != 10 {
		t.Errorf("expected default rate 5/10, got %v/%d", cfg.UpdateRate, cfg.UpdateBurst)
	}
	if cfg.DatabaseURL != "" {
		t.Errorf("expected export disabled by default, got %q", cfg.DatabaseURL)
	}
	if cfg.Debug || cfg.MultiUserMode {
		t.Error("expected debug and multi-user mode off by default")
	}
	if cfg.TrustProxy {
		t.Error("expected forwarding headers untrusted by default")
	}
}

func TestParseFlags_TrustProxy(t *testing.T) {
	t.Setenv("SESSION_KEY", "test-key")
	t.Setenv("TRUST_PROXY", "true")

	cfg, err := ParseFlags([]string{})
	if err != nil {
		t.Fatal(err)
	}
	if !cfg.TrustProxy {
		t.Error("expected TRUST_PROXY env to enable trusted forwarding headers")
	}

	cfg, err = ParseFlags([]string{"-trust-proxy=false"})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.TrustProxy {
		t.Error("CLI should override env: expected trust-proxy off")
	}
}

func TestParseFlags_CLIOverridesEnv(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("SESSION_KEY", "env-key")
	t.Setenv("DEBUG", "true")

	cfg, err := ParseFlags([]string{"-p", "8081", "-session-key", "cli-key", "-debug=false", "-base-url", "https://class.example/"})
	if err != nil {
		t.Fatal(err)
	}

	// CLI should override env
	if cfg.Port != 8081 {
		t.Errorf("CLI should override env: expected 8081, got %d", cfg.Port)
	}
	if cfg.SessionKey != "cli-key" {
		t.Errorf("CLI should override env: expected cli-key, got %q", cfg.SessionKey)
	}
	if cfg.Debug {
		t.Error("CLI should override env: expected debug off")
	}
	if cfg.BaseURL != "https://class.example" {
		t.Errorf("expected trailing slash trimmed, got %q", cfg.BaseURL)
	}
}

func TestParseFlags_DebugImpliesMultiUser(t *testing.T) {
	t.Setenv("SESSION_KEY", "test-key")
	t.Setenv("DEBUG", "true")

	cfg, err := ParseFlags([]string{})
	if err != nil {
		t.Fatal(err)
	}

	if !cfg.Debug || !cfg.MultiUserMode {
		t.Errorf("expected debug and multi-user mode, got %v/%v", cfg.Debug, cfg.MultiUserMode)
	}
}

func TestParseFlags_Errors(t *testing.T) {
	testCases := []struct {
		name string
		env  map[string]string
		args []string
	}{
		{"missing session key", map[string]string{}, nil},
		{"bad port", map[string]string{"SESSION_KEY": "k", "PORT": "eighty"}, nil},
		{"bad database type", map[string]string{"SESSION_KEY": "k"}, []string{"-t", "mysql"}},
		{"bad bool", map[string]string{"SESSION_KEY": "k", "MULTI_USER_MODE": "maybe"}, nil},
		{"bad trust proxy", map[string]string{"SESSION_KEY": "k", "TRUST_PROXY": "sometimes"}, nil},
		{"negative limit", map[string]string{"SESSION_KEY": "k"}, []string{"-max-rooms", "-1"}},
		{"unknown flag", map[string]string{"SESSION_KEY": "k"}, []string{"-nope"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv("SESSION_KEY", "")
			for k, v := range tc.env {
				t.Setenv(k, v)
			}

			if _, err := ParseFlags(tc.args); err == nil {
				t.Error("expected an error")
			}
		})
	}
}
