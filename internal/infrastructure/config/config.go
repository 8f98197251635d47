package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	App      AppConfig
	Store    StoreConfig
	DynamoDB DynamoDBConfig
	Tables   TablesConfig
	Storage  StorageConfig
	JWT      JWTConfig
	Log      LogConfig
	HTTP     HTTPConfig
	Metrics  MetricsConfig
}

// AppConfig holds application-specific settings
type AppConfig struct {
	Name string
	Env  string
	Port string
}

// StoreConfig selects the persistence backend
type StoreConfig struct {
	Backend string // dynamodb, memory
}

// DynamoDBConfig holds DynamoDB connection settings
type DynamoDBConfig struct {
	Region    string
	Endpoint  string // optional, e.g. http://dynamodb:8000 for DynamoDB Local
	AccessKey string
	SecretKey string
	// CreateTables creates missing tables on startup (DynamoDB Local).
	CreateTables bool
}

// TablesConfig names the DynamoDB tables
type TablesConfig struct {
	RFQs     string
	Quotes   string
	Orders   string
	Payments string
	Users    string
}

// StorageConfig holds CAD attachment storage settings
type StorageConfig struct {
	Backend      string // s3, memory
	Bucket       string
	Endpoint     string
	Region       string
	AccessKey    string
	SecretKey    string
	UsePathStyle bool
}

// JWTConfig holds JWT settings
type JWTConfig struct {
	Secret                string
	Issuer                string
	AccessTokenExpiration time.Duration
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, console
	Output string // stdout, stderr, or file path
}

// HTTPConfig holds HTTP server configuration
type HTTPConfig struct {
	CORSAllowOrigins []string
	MaxUploadBytes   int64
}

// MetricsConfig toggles the Prometheus endpoint
type MetricsConfig struct {
	Enabled bool
}

const (
	BackendDynamoDB = "dynamodb"
	BackendMemory   = "memory"
	BackendS3       = "s3"
)

// Load loads configuration from TOML file and environment variables
// Priority (highest to lowest):
// 1. Environment variables with RFQ_ prefix (e.g., RFQ_JWT_SECRET)
// 2. config.toml
// 3. Built-in defaults
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")
	v.AddConfigPath("/app")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	v.SetEnvPrefix("RFQ")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Plain AWS variables are honoured as a fallback for local stacks.
	_ = v.BindEnv("dynamodb.region", "RFQ_DYNAMODB_REGION", "AWS_REGION")
	_ = v.BindEnv("dynamodb.endpoint", "RFQ_DYNAMODB_ENDPOINT", "DYNAMODB_ENDPOINT")
	_ = v.BindEnv("dynamodb.access_key", "RFQ_DYNAMODB_ACCESS_KEY", "AWS_ACCESS_KEY_ID")
	_ = v.BindEnv("dynamodb.secret_key", "RFQ_DYNAMODB_SECRET_KEY", "AWS_SECRET_ACCESS_KEY")
	_ = v.BindEnv("app.port", "RFQ_APP_PORT", "PORT")

	cfg := &Config{
		App: AppConfig{
			Name: v.GetString("app.name"),
			Env:  v.GetString("app.env"),
			Port: v.GetString("app.port"),
		},
		Store: StoreConfig{
			Backend: strings.ToLower(v.GetString("store.backend")),
		},
		DynamoDB: DynamoDBConfig{
			Region:    v.GetString("dynamodb.region"),
			Endpoint:  v.GetString("dynamodb.endpoint"),
			AccessKey: v.GetString("dynamodb.access_key"),
			SecretKey: v.GetString("dynamodb.secret_key"),

			CreateTables: v.GetBool("dynamodb.create_tables"),
		},
		Tables: TablesConfig{
			RFQs:     v.GetString("tables.rfqs"),
			Quotes:   v.GetString("tables.quotes"),
			Orders:   v.GetString("tables.orders"),
			Payments: v.GetString("tables.payments"),
			Users:    v.GetString("tables.users"),
		},
		Storage: StorageConfig{
			Backend:      strings.ToLower(v.GetString("storage.backend")),
			Bucket:       v.GetString("storage.bucket"),
			Endpoint:     v.GetString("storage.endpoint"),
			Region:       v.GetString("storage.region"),
			AccessKey:    v.GetString("storage.access_key"),
			SecretKey:    v.GetString("storage.secret_key"),
			UsePathStyle: v.GetBool("storage.use_path_style"),
		},
		JWT: JWTConfig{
			Secret:                v.GetString("jwt.secret"),
			Issuer:                v.GetString("jwt.issuer"),
			AccessTokenExpiration: v.GetDuration("jwt.access_token_expiration"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
			Output: v.GetString("log.output"),
		},
		HTTP: HTTPConfig{
			CORSAllowOrigins: v.GetStringSlice("http.cors_allow_origins"),
			MaxUploadBytes:   v.GetInt64("http.max_upload_bytes"),
		},
		Metrics: MetricsConfig{
			Enabled: !v.IsSet("metrics.enabled") || v.GetBool("metrics.enabled"),
		},
	}

	applyDefaults(cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "milling-aggregator"
	}
	if cfg.App.Env == "" {
		cfg.App.Env = "development"
	}
	if cfg.App.Port == "" {
		cfg.App.Port = "8080"
	}
	if cfg.Store.Backend == "" {
		cfg.Store.Backend = BackendDynamoDB
	}
	if cfg.DynamoDB.Region == "" {
		cfg.DynamoDB.Region = "us-east-1"
	}
	// DynamoDB Local does not validate credentials, but the AWS SDK requires them.
	if cfg.DynamoDB.AccessKey == "" {
		cfg.DynamoDB.AccessKey = "local"
	}
	if cfg.DynamoDB.SecretKey == "" {
		cfg.DynamoDB.SecretKey = "local"
	}
	if cfg.Tables.RFQs == "" {
		cfg.Tables.RFQs = "rfqs"
	}
	if cfg.Tables.Quotes == "" {
		cfg.Tables.Quotes = "quotes"
	}
	if cfg.Tables.Orders == "" {
		cfg.Tables.Orders = "orders"
	}
	if cfg.Tables.Payments == "" {
		cfg.Tables.Payments = "payments"
	}
	if cfg.Tables.Users == "" {
		cfg.Tables.Users = "users"
	}
	if cfg.Storage.Backend == "" {
		cfg.Storage.Backend = BackendMemory
	}
	if cfg.Storage.Bucket == "" {
		cfg.Storage.Bucket = "cad-files"
	}
	if cfg.Storage.Region == "" {
		cfg.Storage.Region = cfg.DynamoDB.Region
	}
	if cfg.JWT.Issuer == "" {
		cfg.JWT.Issuer = cfg.App.Name
	}
	if cfg.JWT.AccessTokenExpiration == 0 {
		cfg.JWT.AccessTokenExpiration = 7 * 24 * time.Hour
	}
	if cfg.Log.Output == "" {
		cfg.Log.Output = "stdout"
	}
	if len(cfg.HTTP.CORSAllowOrigins) == 0 {
		cfg.HTTP.CORSAllowOrigins = []string{"*"}
	}
	if cfg.HTTP.MaxUploadBytes == 0 {
		cfg.HTTP.MaxUploadBytes = 50 << 20 // 50MB
	}
}

func (c *Config) validate() error {
	switch c.Store.Backend {
	case BackendDynamoDB, BackendMemory:
	default:
		return fmt.Errorf("store.backend must be %q or %q, got %q", BackendDynamoDB, BackendMemory, c.Store.Backend)
	}
	switch c.Storage.Backend {
	case BackendS3, BackendMemory:
	default:
		return fmt.Errorf("storage.backend must be %q or %q, got %q", BackendS3, BackendMemory, c.Storage.Backend)
	}
	if c.HTTP.MaxUploadBytes < 0 {
		return fmt.Errorf("http.max_upload_bytes cannot be negative")
	}
	if c.JWT.AccessTokenExpiration < 0 {
		return fmt.Errorf("jwt.access_token_expiration cannot be negative")
	}

	if c.App.Env == "production" {
		if c.JWT.Secret == "" || len(c.JWT.Secret) < 32 {
			return fmt.Errorf("jwt.secret must be at least 32 characters in production")
		}
		if c.Store.Backend == BackendMemory {
			return fmt.Errorf("store.backend %q is not allowed in production", BackendMemory)
		}
	}
	return nil
}

// IsDevelopment reports whether the app runs in the development environment
func (c *Config) IsDevelopment() bool {
	return c.App.Env == "development"
}

// JWTSecret returns the signing secret, falling back to a fixed development
// secret outside production.
func (c *Config) JWTSecret() string {
	if c.JWT.Secret != "" {
		return c.JWT.Secret
	}
	return "milling-aggregator-development-secret"
}
