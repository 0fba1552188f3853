package config

import (
	"fmt"
	"os"
	"strconv"
)

type Config struct {
	Port            string
	SupabaseURL     string
	SupabaseAnonKey string
	MongoDBURI      string
	MongoDBPassword string
	Environment     string
	LogLevel        string

	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPassword string
	SMTPFrom     string
	ContactInbox string
}

func LoadConfig() (*Config, error) {
	smtpPort, err := strconv.Atoi(getEnvWithDefault("SMTP_PORT", "587"))
	if err != nil {
		return nil, fmt.Errorf("SMTP_PORT must be a number: %v", err)
	}

	cfg := &Config{
		Port:            getEnvWithDefault("PORT", "8080"),
		SupabaseURL:     os.Getenv("SUPABASE_URL"),
		SupabaseAnonKey: os.Getenv("SUPABASE_ANON_KEY"),
		MongoDBURI:      os.Getenv("MONGODB_URI"),
		MongoDBPassword: os.Getenv("MONGODB_PASSWORD"),
		Environment:     getEnvWithDefault("ENVIRONMENT", "development"),
		LogLevel:        getEnvWithDefault("LOG_LEVEL", "info"),
		SMTPHost:        os.Getenv("SMTP_HOST"),
		SMTPPort:        smtpPort,
		SMTPUser:        os.Getenv("SMTP_USER"),
		SMTPPassword:    os.Getenv("SMTP_PASSWORD"),
		SMTPFrom:        getEnvWithDefault("SMTP_FROM", "no-reply@christianitatis.org"),
		ContactInbox:    os.Getenv("CONTACT_INBOX"),
	}

	if cfg.SupabaseURL == "" {
		return nil, fmt.Errorf("SUPABASE_URL is required")
	}
	if cfg.SupabaseAnonKey == "" {
		return nil, fmt.Errorf("SUPABASE_ANON_KEY is required")
	}
	if cfg.MongoDBURI == "" {
		return nil, fmt.Errorf("MONGODB_URI is required")
	}

	return cfg, nil
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// SMTPConfigured reports whether contact-form email forwarding is enabled.
// Without it submissions are still stored, just not forwarded.
func (c *Config) SMTPConfigured() bool {
	return c.SMTPHost != "" && c.ContactInbox != ""
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}
