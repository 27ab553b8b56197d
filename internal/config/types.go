package config

// Config is the root configuration for the Bartr client.
type Config struct {
	Services ServicesConfig `yaml:"services,omitempty"`
	Keycloak KeycloakConfig `yaml:"keycloak,omitempty"`
	Refresh  RefreshConfig  `yaml:"refresh,omitempty"`
	Logging  LoggingConfig  `yaml:"logging,omitempty"`
}

// ServicesConfig holds the base URLs of the four backend services.
type ServicesConfig struct {
	UserURL         string `yaml:"userUrl,omitempty"`
	MatchingURL     string `yaml:"matchingUrl,omitempty"`
	ChatURL         string `yaml:"chatUrl,omitempty"`
	NotificationURL string `yaml:"notificationUrl,omitempty"`
}

// KeycloakConfig configures the delegated (OIDC) authentication path.
// When URL is empty the client only uses backend-issued tokens.
type KeycloakConfig struct {
	URL          string `yaml:"url,omitempty"`
	Realm        string `yaml:"realm,omitempty"`
	ClientID     string `yaml:"clientId,omitempty"`
	ClientSecret string `yaml:"clientSecret,omitempty"`
}

// RefreshConfig tunes the periodic refresh intervals, in seconds.
// List views poll on these intervals in addition to receiving live
// frames; the redundancy is deliberate.
type RefreshConfig struct {
	ChatSeconds         int `yaml:"chatSeconds,omitempty"`
	NotificationSeconds int `yaml:"notificationSeconds,omitempty"`
}

// LoggingConfig controls log output.
type LoggingConfig struct {
	Level string `yaml:"level,omitempty"` // "silent" | "fatal" | "error" | "warn" | "info" | "debug" | "trace"
	File  string `yaml:"file,omitempty"`
}
