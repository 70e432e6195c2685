package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadRequiresSecret(t *testing.T) {
	t.Setenv("APPRAISAL_CONFIG", "")
	t.Setenv("APPRAISAL_AUTH_SECRET", "")
	if _, err := Load(); err == nil {
		t.Fatal("Load without auth_secret should fail")
	}
}

func TestLoadDefaultsAndEnv(t *testing.T) {
	t.Setenv("APPRAISAL_CONFIG", "")
	t.Setenv("APPRAISAL_AUTH_SECRET", "hush")
	t.Setenv("APPRAISAL_HTTP_ADDR", ":9999")
	t.Setenv("APPRAISAL_DB_DRIVER", "postgres")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.HTTPAddr != ":9999" {
		t.Errorf("HTTPAddr = %q, want env override", cfg.HTTPAddr)
	}
	if cfg.DBDriver != "postgres" {
		t.Errorf("DBDriver = %q, want postgres", cfg.DBDriver)
	}
	if cfg.TokenTTL != 8*time.Hour {
		t.Errorf("TokenTTL = %v, want the 8h default", cfg.TokenTTL)
	}
	if cfg.AdminUser != "admin" {
		t.Errorf("AdminUser = %q, want default", cfg.AdminUser)
	}
}

func TestLoadYAMLFileUnderEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "appraisal.yml")
	body := "http_addr: \":7070\"\nappraisal_year: 2024\nauth_secret: from-file\n"
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("APPRAISAL_CONFIG", path)
	t.Setenv("APPRAISAL_AUTH_SECRET", "from-env")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.HTTPAddr != ":7070" {
		t.Errorf("HTTPAddr = %q, want the file value", cfg.HTTPAddr)
	}
	if cfg.AppraisalYear != 2024 {
		t.Errorf("AppraisalYear = %d, want 2024", cfg.AppraisalYear)
	}
	// env wins over the file
	if cfg.AuthSecret != "from-env" {
		t.Errorf("AuthSecret = %q, want the env value", cfg.AuthSecret)
	}
}
