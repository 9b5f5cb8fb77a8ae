// CLAUDE:SUMMARY Service configuration: YAML file plus environment overrides for port, storage, LLM and generation knobs.
package main

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/hazyhaar/quizforge/horoschat"
	"github.com/hazyhaar/quizforge/quizgen"
)

type appConfig struct {
	Port           string `yaml:"port"`
	DBPath         string `yaml:"db_path"`
	MaxUploadBytes int64  `yaml:"max_upload_bytes"`
	LogLevel       string `yaml:"log_level"`

	Admin struct {
		User         string `yaml:"user"`
		PasswordHash string `yaml:"password_hash"`
	} `yaml:"admin"`

	LLM        horoschat.Config `yaml:"llm"`
	Generation quizgen.Config   `yaml:"generation"`
}

func (c *appConfig) defaults() {
	if c.Port == "" {
		c.Port = "8090"
	}
	if c.DBPath == "" {
		c.DBPath = "db/quizforge.db"
	}
	if c.MaxUploadBytes <= 0 {
		c.MaxUploadBytes = 50 * 1024 * 1024
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.Admin.User == "" {
		c.Admin.User = "admin"
	}
}

// loadConfig reads the YAML file at QUIZFORGE_CONFIG (if set), then applies
// environment overrides so deployments can tweak single values without a file.
func loadConfig() (*appConfig, error) {
	cfg := &appConfig{}

	if path := os.Getenv("QUIZFORGE_CONFIG"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	overrideString(&cfg.Port, "PORT")
	overrideString(&cfg.DBPath, "QUIZ_DB")
	overrideString(&cfg.LogLevel, "LOG_LEVEL")
	overrideString(&cfg.Admin.User, "ADMIN_USER")
	overrideString(&cfg.Admin.PasswordHash, "ADMIN_PASSWORD_HASH")
	overrideString(&cfg.LLM.Endpoint, "LLM_ENDPOINT")
	overrideString(&cfg.LLM.Model, "LLM_MODEL")
	overrideString(&cfg.LLM.APIKey, "LLM_API_KEY")
	overrideInt64(&cfg.MaxUploadBytes, "MAX_UPLOAD_BYTES")

	cfg.defaults()
	return cfg, nil
}

func overrideString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func overrideInt64(dst *int64, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			*dst = n
		}
	}
}
