package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	AWS      AWSConfig      `yaml:"aws"`
	Auth     AuthConfig     `yaml:"auth"`
	Razorpay RazorpayConfig `yaml:"razorpay"`
	Log      LogConfig      `yaml:"log"`
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port int    `yaml:"port"`
	Host string `yaml:"host"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
	SSLMode  string `yaml:"sslmode"`
}

// AWSConfig holds S3 configuration for avatar uploads
type AWSConfig struct {
	Region    string `yaml:"region"`
	S3Bucket  string `yaml:"s3_bucket"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
	Endpoint  string `yaml:"endpoint"` // optional, for S3-compatible providers
}

// AuthConfig holds settings for validating the auth provider's tokens
type AuthConfig struct {
	JWTSecret string `yaml:"jwt_secret"`
}

// RazorpayConfig holds the server-side payment processor credentials.
// KeyID/KeySecret may be empty; the payment bridge reports a configuration
// error per request instead of refusing to start.
type RazorpayConfig struct {
	KeyID     string `yaml:"key_id"`
	KeySecret string `yaml:"key_secret"`
	BaseURL   string `yaml:"base_url"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level string `yaml:"level"`
}

// Load reads configuration from a YAML file, then overlays secrets from
// the environment (a .env file is honoured when present).
func Load(path string) (*Config, error) {
	// .env is optional; real environment variables still apply without it
	_ = godotenv.Load()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.applyEnv()

	if cfg.Razorpay.BaseURL == "" {
		cfg.Razorpay.BaseURL = "https://api.razorpay.com"
	}

	return &cfg, nil
}

// applyEnv overrides file values with environment variables so secrets stay
// out of the checked-in config.
func (c *Config) applyEnv() {
	c.Auth.JWTSecret = getEnv("AUTH_JWT_SECRET", c.Auth.JWTSecret)
	c.Razorpay.KeyID = getEnv("RAZORPAY_KEY_ID", c.Razorpay.KeyID)
	c.Razorpay.KeySecret = getEnv("RAZORPAY_KEY_SECRET", c.Razorpay.KeySecret)
	c.AWS.AccessKey = getEnv("AWS_ACCESS_KEY_ID", c.AWS.AccessKey)
	c.AWS.SecretKey = getEnv("AWS_SECRET_ACCESS_KEY", c.AWS.SecretKey)
	c.Database.Password = getEnv("DB_PASSWORD", c.Database.Password)
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

// DSN returns the PostgreSQL connection string
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}
