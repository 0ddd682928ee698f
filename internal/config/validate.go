package config

import (
	"fmt"
	"net/url"
	"strings"
)

// Validate performs business-rule validation of the server configuration.
// Load calls it automatically.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Database.DSN) == "" {
		return fmt.Errorf("database.dsn is required")
	}
	if c.Database.MinConns > c.Database.MaxConns {
		return fmt.Errorf("database.min_conns (%d) must not exceed max_conns (%d)", c.Database.MinConns, c.Database.MaxConns)
	}
	if err := c.Auth.validate(); err != nil {
		return fmt.Errorf("auth: %w", err)
	}
	if c.Redis.Enabled() && c.Redis.TTL <= 0 {
		return fmt.Errorf("redis.ttl must be > 0 (got %s)", c.Redis.TTL)
	}
	if err := validateURL(c.Dictionary.BaseURL); err != nil {
		return fmt.Errorf("dictionary.base_url: %w", err)
	}
	if c.Server.MaxBodyBytes <= 0 {
		return fmt.Errorf("server.max_body_bytes must be > 0 (got %d)", c.Server.MaxBodyBytes)
	}
	if c.Server.FetchRateLimit < 0 {
		return fmt.Errorf("server.fetch_rate_limit must be >= 0 (got %d)", c.Server.FetchRateLimit)
	}
	return c.Log.validate()
}

// ValidateClient validates the client and log sections.
func (c *Config) ValidateClient() error {
	if err := validateURL(c.Client.BaseURL); err != nil {
		return fmt.Errorf("client.base_url: %w", err)
	}
	if c.Client.Timeout <= 0 {
		return fmt.Errorf("client.timeout must be > 0 (got %s)", c.Client.Timeout)
	}
	return c.Log.validate()
}

// ValidateAuth validates the token settings on their own, for tools that
// mint tokens without running the server.
func (c *Config) ValidateAuth() error {
	if err := c.Auth.validate(); err != nil {
		return fmt.Errorf("auth: %w", err)
	}
	return nil
}

func (a AuthConfig) validate() error {
	if len(a.JWTSecret) < 32 {
		return fmt.Errorf("jwt_secret must be at least 32 characters (got %d)", len(a.JWTSecret))
	}
	if a.AccessTokenTTL <= 0 {
		return fmt.Errorf("access_token_ttl must be > 0 (got %s)", a.AccessTokenTTL)
	}
	return nil
}

func (l LogConfig) validate() error {
	switch strings.ToLower(l.Format) {
	case "json", "text":
	default:
		return fmt.Errorf("log.format must be json or text (got %q)", l.Format)
	}
	switch strings.ToLower(l.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("log.level must be debug, info, warn or error (got %q)", l.Level)
	}
	return nil
}

func validateURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("scheme must be http or https (got %q)", raw)
	}
	if u.Host == "" {
		return fmt.Errorf("host is required (got %q)", raw)
	}
	return nil
}
