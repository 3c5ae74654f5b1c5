// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults; Load layers file and env.
// - External errors must be wrapped via this package's error helpers.
package config

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":3000".
	Addr string `koanf:"addr"`

	// GuildID identifies the guild whose scheduled events are served.
	GuildID string `koanf:"guild_id"`

	// BotToken authenticates against the upstream guild API.
	BotToken string `koanf:"bot_token"`

	// APIBaseURL is the upstream API root.
	APIBaseURL string `koanf:"api_base_url"`

	// CDNBaseURL is the base for constructed event image URLs.
	CDNBaseURL string `koanf:"cdn_base_url"`

	// PlatformBaseURL is the base for event deep links.
	PlatformBaseURL string `koanf:"platform_base_url"`

	// CacheTTLSeconds is the freshness window for the event cache.
	CacheTTLSeconds int `koanf:"cache_ttl_seconds"`

	// FetchTimeoutSeconds bounds one upstream call end to end.
	FetchTimeoutSeconds int `koanf:"fetch_timeout_seconds"`

	// RadioDomains are hostnames labeled as Radio in extracted links, in
	// addition to any host containing "radio".
	RadioDomains []string `koanf:"radio_domains"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:            "info",
		Addr:                ":3000",
		APIBaseURL:          "https://discord.com/api/v10",
		CDNBaseURL:          "https://cdn.discordapp.com",
		PlatformBaseURL:     "https://discord.com",
		CacheTTLSeconds:     15,
		FetchTimeoutSeconds: 15,
		RadioDomains: []string{
			"hpsbassline.myftp.biz",
			"azura.hpsbassline.myftp.biz",
		},
	}
}

// DemoMode reports whether upstream credentials are absent, in which case
// the service serves fixture data instead of calling upstream.
func (c *Config) DemoMode() bool {
	return c.GuildID == "" || c.BotToken == ""
}
