package config

import (
	"fmt"
	"os"
	"strings"
	"time"
	_ "time/tzdata"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Server       ServerConfig       `yaml:"server"`
	Database     DatabaseConfig     `yaml:"database"`
	JWT          JWTConfig          `yaml:"jwt"`
	Storage      StorageConfig      `yaml:"storage"`
	Log          LogConfig          `yaml:"log"`
	Billing      BillingConfig      `yaml:"billing"`
	Payment      PaymentConfig      `yaml:"payment"`
	Notification NotificationConfig `yaml:"notification"`
	Scheduler    SchedulerConfig    `yaml:"scheduler"`
	Bootstrap    BootstrapConfig    `yaml:"bootstrap"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host              string `yaml:"host"`
	Port              int    `yaml:"port"`
	ReadTimeoutSecs   int    `yaml:"read_timeout_seconds"`
	WriteTimeoutSecs  int    `yaml:"write_timeout_seconds"`
	ShutdownGraceSecs int    `yaml:"shutdown_grace_seconds"`
}

// DatabaseConfig contains PostgreSQL connection settings
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
	SSLMode  string `yaml:"ssl_mode"`
	Migrate  bool   `yaml:"migrate"`
}

// JWTConfig contains JWT token settings
type JWTConfig struct {
	Secret             string `yaml:"secret"`
	AccessTokenExpiry  int    `yaml:"access_token_expiry_minutes"`
	RefreshTokenExpiry int    `yaml:"refresh_token_expiry_minutes"`
}

// StorageConfig contains file upload settings
type StorageConfig struct {
	UploadDir    string   `yaml:"upload_dir"`
	BaseURL      string   `yaml:"base_url"` // public URL prefix for served files
	MaxFileSize  int64    `yaml:"max_file_size_mb"`
	AllowedTypes []string `yaml:"allowed_types"`
}

// LogConfig contains logging settings
type LogConfig struct {
	Level  string `yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `yaml:"format"` // "json" or "text"
}

// BillingConfig controls how rental dates and times are interpreted
type BillingConfig struct {
	Timezone string `yaml:"timezone"`
}

// PaymentConfig holds the merchant's static QRIS and the optional service fee
type PaymentConfig struct {
	QRISStaticPayload string  `yaml:"qris_static_payload"`
	FeeType           string  `yaml:"fee_type"` // "", "fixed" or "percent"
	FeeValue          float64 `yaml:"fee_value"`
	QRCodeSize        int     `yaml:"qr_code_size"`
}

// NotificationConfig configures the email and push channels
type NotificationConfig struct {
	SendGrid    SendGridConfig `yaml:"sendgrid"`
	Firebase    FirebaseConfig `yaml:"firebase"`
	AdminEmails []string       `yaml:"admin_emails"`
}

type SendGridConfig struct {
	APIKey    string `yaml:"api_key"`
	FromEmail string `yaml:"from_email"`
	FromName  string `yaml:"from_name"`
}

type FirebaseConfig struct {
	CredentialsFile string `yaml:"credentials_file"`
	ProjectID       string `yaml:"project_id"`
}

// SchedulerConfig contains cron schedule settings
type SchedulerConfig struct {
	MarkOverdueTransactions string `yaml:"mark_overdue_transactions"`
	SendOverdueReminders    string `yaml:"send_overdue_reminders"`
}

// BootstrapConfig describes the first admin account created on an empty database
type BootstrapConfig struct {
	AdminUsername string `yaml:"admin_username"`
	AdminPassword string `yaml:"admin_password"`
	AdminEmail    string `yaml:"admin_email"`
}

// Load reads configuration from a YAML file
func Load(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// Parse builds a validated configuration from YAML bytes and the environment
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.overrideWithEnv()
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// overrideWithEnv overrides config values with environment variables
func (c *Config) overrideWithEnv() {
	// Database
	if val := os.Getenv("DB_HOST"); val != "" {
		c.Database.Host = val
	}
	if val := os.Getenv("DB_PORT"); val != "" {
		fmt.Sscanf(val, "%d", &c.Database.Port)
	}
	if val := os.Getenv("DB_USER"); val != "" {
		c.Database.User = val
	}
	if val := os.Getenv("DB_PASSWORD"); val != "" {
		c.Database.Password = val
	}
	if val := os.Getenv("DB_NAME"); val != "" {
		c.Database.Database = val
	}
	if val := os.Getenv("DB_SSL_MODE"); val != "" {
		c.Database.SSLMode = val
	}

	// JWT
	if val := os.Getenv("JWT_SECRET"); val != "" {
		c.JWT.Secret = val
	}

	// Server
	if val := os.Getenv("SERVER_HOST"); val != "" {
		c.Server.Host = val
	}
	if val := os.Getenv("SERVER_PORT"); val != "" {
		fmt.Sscanf(val, "%d", &c.Server.Port)
	}

	// Storage
	if val := os.Getenv("UPLOAD_DIR"); val != "" {
		c.Storage.UploadDir = val
	}
	if val := os.Getenv("STORAGE_BASE_URL"); val != "" {
		c.Storage.BaseURL = val
	}

	// Log
	if val := os.Getenv("LOG_LEVEL"); val != "" {
		c.Log.Level = val
	}
	if val := os.Getenv("LOG_FORMAT"); val != "" {
		c.Log.Format = val
	}

	// Payment
	if val := os.Getenv("QRIS_STATIC_PAYLOAD"); val != "" {
		c.Payment.QRISStaticPayload = val
	}

	// Notification
	if val := os.Getenv("SENDGRID_API_KEY"); val != "" {
		c.Notification.SendGrid.APIKey = val
	}
	if val := os.Getenv("FIREBASE_CREDENTIALS"); val != "" {
		c.Notification.Firebase.CredentialsFile = val
	}
	if val := os.Getenv("ADMIN_EMAILS"); val != "" {
		c.Notification.AdminEmails = strings.Split(val, ",")
	}

	// Bootstrap
	if val := os.Getenv("BOOTSTRAP_ADMIN_PASSWORD"); val != "" {
		c.Bootstrap.AdminPassword = val
	}
}

func (c *Config) applyDefaults() {
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}
	if c.JWT.AccessTokenExpiry == 0 {
		c.JWT.AccessTokenExpiry = 60
	}
	if c.JWT.RefreshTokenExpiry == 0 {
		c.JWT.RefreshTokenExpiry = 7 * 24 * 60
	}
	if c.Server.ReadTimeoutSecs == 0 {
		c.Server.ReadTimeoutSecs = 15
	}
	if c.Server.WriteTimeoutSecs == 0 {
		c.Server.WriteTimeoutSecs = 30
	}
	if c.Server.ShutdownGraceSecs == 0 {
		c.Server.ShutdownGraceSecs = 10
	}
	if c.Storage.MaxFileSize == 0 {
		c.Storage.MaxFileSize = 5
	}
	if len(c.Storage.AllowedTypes) == 0 {
		c.Storage.AllowedTypes = []string{"image/jpeg", "image/png", "image/webp"}
	}
	if c.Billing.Timezone == "" {
		c.Billing.Timezone = "Asia/Jakarta"
	}
	if c.Payment.QRCodeSize == 0 {
		c.Payment.QRCodeSize = 512
	}
	if c.Notification.SendGrid.FromName == "" {
		c.Notification.SendGrid.FromName = "Rental Motor"
	}
	if c.Scheduler.MarkOverdueTransactions == "" {
		c.Scheduler.MarkOverdueTransactions = "0 */15 * * * *" // every 15 minutes
	}
	if c.Scheduler.SendOverdueReminders == "" {
		c.Scheduler.SendOverdueReminders = "0 0 9 * * *" // 9 AM local time
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if c.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}
	if c.Database.User == "" {
		return fmt.Errorf("database user is required")
	}
	if c.Database.Database == "" {
		return fmt.Errorf("database name is required")
	}

	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT secret is required")
	}
	if len(c.JWT.Secret) < 32 {
		return fmt.Errorf("JWT secret must be at least 32 characters")
	}

	if c.Storage.UploadDir == "" {
		return fmt.Errorf("upload directory is required")
	}

	if _, err := time.LoadLocation(c.Billing.Timezone); err != nil {
		return fmt.Errorf("invalid billing timezone %q: %w", c.Billing.Timezone, err)
	}

	switch c.Payment.FeeType {
	case "", "fixed", "percent":
	default:
		return fmt.Errorf("invalid payment fee type: %s", c.Payment.FeeType)
	}
	if c.Payment.FeeValue < 0 {
		return fmt.Errorf("payment fee must not be negative")
	}

	return nil
}

// Location returns the time zone rental dates and times are written in
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Billing.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// GetDatabaseConnectionString returns a PostgreSQL connection string
func (c *Config) GetDatabaseConnectionString() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Database,
		c.Database.SSLMode,
	)
}

// GetServerAddress returns the HTTP listen address
func (c *Config) GetServerAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// MaxUploadBytes returns the upload size limit in bytes
func (c *Config) MaxUploadBytes() int64 {
	return c.Storage.MaxFileSize * 1024 * 1024
}
