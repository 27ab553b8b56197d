package config

import (
	"os"
	"regexp"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// envVarPattern matches ${VAR_NAME} references in config values.
var envVarPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// expandEnvVars replaces ${VAR} references with environment values.
// Unset variables are left unchanged.
func expandEnvVars(s string) string {
	return envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		name := match[2 : len(match)-1]
		if val, ok := os.LookupEnv(name); ok {
			return val
		}
		return match
	})
}

// expandSensitiveFields resolves environment references in credential
// fields so secrets can live outside the config file.
func expandSensitiveFields(cfg *Config) {
	cfg.Keycloak.ClientSecret = expandEnvVars(cfg.Keycloak.ClientSecret)
}

// Load reads the config file, applies defaults and environment
// overrides, and returns the merged Config. A missing file produces
// defaults only.
func Load(path string) (Config, error) {
	cfg := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			applyEnvOverrides(&cfg)
			return cfg, nil
		}
		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, &ConfigError{Message: "failed to parse config: " + err.Error()}
	}

	applyDefaults(&cfg)
	applyEnvOverrides(&cfg)
	expandSensitiveFields(&cfg)
	return cfg, nil
}

// applyDefaults fills zero-value fields.
func applyDefaults(cfg *Config) {
	if cfg.Services.UserURL == "" {
		cfg.Services.UserURL = "http://localhost:8081"
	}
	if cfg.Services.MatchingURL == "" {
		cfg.Services.MatchingURL = "http://localhost:8082"
	}
	if cfg.Services.ChatURL == "" {
		cfg.Services.ChatURL = "http://localhost:8083"
	}
	if cfg.Services.NotificationURL == "" {
		cfg.Services.NotificationURL = "http://localhost:8084"
	}
	if cfg.Keycloak.Realm == "" {
		cfg.Keycloak.Realm = "Bartr"
	}
	if cfg.Keycloak.ClientID == "" {
		cfg.Keycloak.ClientID = "oauth-demo-client"
	}
	if cfg.Refresh.ChatSeconds == 0 {
		cfg.Refresh.ChatSeconds = 5
	}
	if cfg.Refresh.NotificationSeconds == 0 {
		cfg.Refresh.NotificationSeconds = 10
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
}

// applyEnvOverrides reads BARTR_* environment variables over config values.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("BARTR_USER_URL"); v != "" {
		cfg.Services.UserURL = v
	}
	if v := os.Getenv("BARTR_MATCHING_URL"); v != "" {
		cfg.Services.MatchingURL = v
	}
	if v := os.Getenv("BARTR_CHAT_URL"); v != "" {
		cfg.Services.ChatURL = v
	}
	if v := os.Getenv("BARTR_NOTIFICATION_URL"); v != "" {
		cfg.Services.NotificationURL = v
	}
	if v := os.Getenv("BARTR_KEYCLOAK_URL"); v != "" {
		cfg.Keycloak.URL = v
	}
	if v := os.Getenv("BARTR_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = strings.ToLower(v)
	}
	if v := os.Getenv("BARTR_CHAT_REFRESH_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Refresh.ChatSeconds = n
		}
	}
}
