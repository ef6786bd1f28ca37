package config

import (
	"errors"
	"os"
	"strings"
	"time"
)

// Config is loaded once at startup from the environment.
type Config struct {
	HTTPPort string

	// PublicServerURL is the clinic backend origin the public site uses.
	// InternalServerURL is required for server-internal calls whenever the
	// public origin is not an absolute URL.
	PublicServerURL   string
	InternalServerURL string

	// PublicSiteURL is the site's own origin, used to build public download
	// links for medical record attachments.
	PublicSiteURL string

	RedisAddr     string
	RedisPassword string

	EmailJSServiceID  string
	EmailJSTemplateID string
	EmailJSPublicKey  string

	RequestTimeout  time.Duration
	BackendTimeout  time.Duration
	ShutdownTimeout time.Duration
}

func Load() *Config {
	return &Config{
		HTTPPort:          getEnv("HTTP_PORT", "8080"),
		PublicServerURL:   getEnv("PUBLIC_SERVER_URL", ""),
		InternalServerURL: getEnv("INTERNAL_SERVER_URL", ""),
		PublicSiteURL:     getEnv("PUBLIC_SITE_URL", "https://veterinariadelparque.com.ar"),
		RedisAddr:         getEnv("REDIS_ADDR", ""),
		RedisPassword:     getEnv("REDIS_PASSWORD", ""),
		EmailJSServiceID:  getEnv("EMAILJS_SERVICE_ID", ""),
		EmailJSTemplateID: getEnv("EMAILJS_TEMPLATE_ID", ""),
		EmailJSPublicKey:  getEnv("EMAILJS_PUBLIC_KEY", ""),
		RequestTimeout:    30 * time.Second,
		BackendTimeout:    10 * time.Second,
		ShutdownTimeout:   10 * time.Second,
	}
}

// Validate fails fast on missing required values, before any listener or
// network client comes up. Messaging credentials are checked on first use
// instead; their absence only disables the contact form.
func (c *Config) Validate() error {
	if c.PublicServerURL == "" {
		return errors.New("PUBLIC_SERVER_URL is required")
	}
	if !isAbsoluteOrigin(c.PublicServerURL) && c.InternalServerURL == "" {
		return errors.New("INTERNAL_SERVER_URL is required when PUBLIC_SERVER_URL is not an absolute origin")
	}
	return nil
}

func isAbsoluteOrigin(origin string) bool {
	return strings.HasPrefix(origin, "http://") || strings.HasPrefix(origin, "https://")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
