// Package config loads service configuration by layering defaults, an
// optional YAML file and APPRAISAL_-prefixed environment variables.
package config

import (
	"errors"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

type Config struct {
	HTTPAddr string `koanf:"http_addr"`
	LogLevel string `koanf:"log_level"`

	DBDriver string `koanf:"db_driver"` // sqlite|postgres
	DBDSN    string `koanf:"db_dsn"`

	AuthSecret    string        `koanf:"auth_secret"`
	TokenTTL      time.Duration `koanf:"token_ttl"`
	AdminUser     string        `koanf:"admin_user"`
	AdminPassHash string        `koanf:"admin_pass_hash"` // bcrypt

	// AppraisalYear is the default appraisal cycle start year, e.g. 2025
	// for AY 2025-26. Requests may address other years explicitly.
	AppraisalYear int `koanf:"appraisal_year"`

	// FacultyAPIBase is the faculty records provider root URL. Empty
	// disables prefill.
	FacultyAPIBase    string        `koanf:"faculty_api_base"`
	FacultyAPITimeout time.Duration `koanf:"faculty_api_timeout"`

	ExportDir string `koanf:"export_dir"`

	SendgridKey  string `koanf:"sendgrid_key"`
	MailFromName string `koanf:"mail_from_name"`
	MailFromAddr string `koanf:"mail_from_addr"`

	CORSOrigins []string `koanf:"cors_origins"`
}

func defaults() Config {
	return Config{
		HTTPAddr:          ":8080",
		LogLevel:          "info",
		DBDriver:          "sqlite",
		AuthSecret:        "",
		TokenTTL:          8 * time.Hour,
		AdminUser:         "admin",
		AppraisalYear:     time.Now().Year(),
		FacultyAPITimeout: 10 * time.Second,
		ExportDir:         "./data/exports",
		MailFromName:      "Faculty Appraisal",
		MailFromAddr:      "appraisal@localhost",
		CORSOrigins:       []string{"http://localhost:3000"},
	}
}

// Load builds a Config. Precedence (low -> high):
//  1. defaults
//  2. YAML file named by APPRAISAL_CONFIG, if set
//  3. environment variables (APPRAISAL_HTTP_ADDR, APPRAISAL_DB_DSN, ...)
func Load() (Config, error) {
	cfg := defaults()
	k := koanf.New(".")

	if path := os.Getenv("APPRAISAL_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return Config{}, err
		}
	}

	envProvider := env.Provider("APPRAISAL_", ".", func(s string) string {
		s = strings.ToLower(s)
		return strings.TrimPrefix(s, "appraisal_")
	})
	if err := k.Load(envProvider, nil); err != nil {
		return Config{}, err
	}

	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return Config{}, err
	}

	if cfg.HTTPAddr == "" {
		return Config{}, errors.New("http_addr must not be empty")
	}
	if cfg.AuthSecret == "" {
		return Config{}, errors.New("auth_secret must be set")
	}
	if cfg.AppraisalYear < 2000 {
		return Config{}, errors.New("appraisal_year out of range")
	}
	return cfg, nil
}
