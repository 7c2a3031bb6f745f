package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Linkage policies for cross-entity references (appointment -> contact, deal -> contact)
const (
	LinkagePolicyOff    = "off"
	LinkagePolicyWarn   = "warn"
	LinkagePolicyStrict = "strict"
)

// Config holds all application configuration. It is built once at startup
// and handed to constructors; nothing reads the environment after Load.
type Config struct {
	App      AppConfig
	Server   ServerConfig
	Database DatabaseConfig
	JWT      JWTConfig
	Linkage  LinkageConfig
	Redis    RedisConfig
	Storage  StorageConfig
	Export   ExportConfig
	Log      LogConfig
}

type AppConfig struct {
	Name        string
	Environment string // development, staging, production
	Version     string
}

// IsDevelopment reports whether the service runs in development mode
func (a AppConfig) IsDevelopment() bool {
	return a.Environment == "development"
}

type ServerConfig struct {
	Port            int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// Addr returns the listen address
func (s ServerConfig) Addr() string {
	return fmt.Sprintf(":%d", s.Port)
}

type DatabaseConfig struct {
	URL         string
	MaxConns    int32
	AutoMigrate bool
}

// JWTConfig describes how bearer credentials are verified
type JWTConfig struct {
	Secret        string
	Algorithm     string
	JWKSURL       string
	TenantClaim   string
	RequireExpiry bool
}

type LinkageConfig struct {
	Policy string
}

// RedisConfig enables the list cache and per-tenant rate limiting when Addr is set
type RedisConfig struct {
	Addr      string
	Password  string
	DB        int
	CacheTTL  time.Duration
	RateLimit int // requests per minute per tenant, 0 disables
}

// Enabled reports whether a redis server is configured
func (r RedisConfig) Enabled() bool {
	return r.Addr != ""
}

// StorageConfig points at an S3-compatible store used for tenant exports
type StorageConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	UseSSL    bool
	Bucket    string
	URLExpiry time.Duration
}

func (s StorageConfig) Enabled() bool {
	return s.Endpoint != ""
}

type ExportConfig struct {
	Interval    time.Duration // 0 disables the scheduled export
	Concurrency int
}

type LogConfig struct {
	Level  string
	Format string // json or console
}

var hmacAlgorithms = map[string]bool{"HS256": true, "HS384": true, "HS512": true}

var jwksAlgorithms = map[string]bool{
	"RS256": true, "RS384": true, "RS512": true,
	"PS256": true, "PS384": true, "PS512": true,
	"ES256": true, "ES384": true, "ES512": true,
	"EdDSA": true,
}

// Load loads configuration from environment variables and an optional .env file
func Load() (*Config, error) {
	v := viper.New()

	if _, err := os.Stat(".env"); err == nil {
		v.SetConfigFile(".env")
		v.SetConfigType("env")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read .env: %w", err)
		}
	}

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	cfg := bindConfig(v)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	// App defaults
	v.SetDefault("APP_NAME", "nexcell-crm")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("APP_VERSION", "1.0.0")

	// Server defaults
	v.SetDefault("SERVER_PORT", 8080)
	v.SetDefault("SERVER_READ_TIMEOUT", "15s")
	v.SetDefault("SERVER_WRITE_TIMEOUT", "15s")
	v.SetDefault("SERVER_SHUTDOWN_TIMEOUT", "10s")

	// Database defaults
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("DATABASE_MAX_CONNS", 10)
	v.SetDefault("DATABASE_AUTO_MIGRATE", true)

	// JWT defaults
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("JWT_ALGORITHM", "HS256")
	v.SetDefault("JWT_JWKS_URL", "")
	v.SetDefault("JWT_TENANT_CLAIM", "tenant_id")
	v.SetDefault("JWT_REQUIRE_EXPIRY", false)

	v.SetDefault("LINKAGE_POLICY", LinkagePolicyWarn)

	// Redis defaults (disabled unless REDIS_ADDR is set)
	v.SetDefault("REDIS_ADDR", "")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("REDIS_CACHE_TTL", "30s")
	v.SetDefault("REDIS_RATE_LIMIT", 0)

	// Storage defaults (disabled unless STORAGE_ENDPOINT is set)
	v.SetDefault("STORAGE_ENDPOINT", "")
	v.SetDefault("STORAGE_ACCESS_KEY", "")
	v.SetDefault("STORAGE_SECRET_KEY", "")
	v.SetDefault("STORAGE_USE_SSL", false)
	v.SetDefault("STORAGE_BUCKET", "nexcell-exports")
	v.SetDefault("STORAGE_URL_EXPIRY", "15m")

	v.SetDefault("EXPORT_INTERVAL", "0s")
	v.SetDefault("EXPORT_CONCURRENCY", 4)

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
}

func bindConfig(v *viper.Viper) *Config {
	cfg := &Config{}

	// App
	cfg.App.Name = v.GetString("APP_NAME")
	cfg.App.Environment = strings.ToLower(v.GetString("APP_ENV"))
	cfg.App.Version = v.GetString("APP_VERSION")

	// Server
	cfg.Server.Port = v.GetInt("SERVER_PORT")
	cfg.Server.ReadTimeout = v.GetDuration("SERVER_READ_TIMEOUT")
	cfg.Server.WriteTimeout = v.GetDuration("SERVER_WRITE_TIMEOUT")
	cfg.Server.ShutdownTimeout = v.GetDuration("SERVER_SHUTDOWN_TIMEOUT")

	// Database
	cfg.Database.URL = v.GetString("DATABASE_URL")
	cfg.Database.MaxConns = v.GetInt32("DATABASE_MAX_CONNS")
	cfg.Database.AutoMigrate = v.GetBool("DATABASE_AUTO_MIGRATE")

	// JWT
	cfg.JWT.Secret = v.GetString("JWT_SECRET")
	cfg.JWT.Algorithm = strings.TrimSpace(v.GetString("JWT_ALGORITHM"))
	cfg.JWT.JWKSURL = v.GetString("JWT_JWKS_URL")
	cfg.JWT.TenantClaim = v.GetString("JWT_TENANT_CLAIM")
	cfg.JWT.RequireExpiry = v.GetBool("JWT_REQUIRE_EXPIRY")

	cfg.Linkage.Policy = strings.ToLower(v.GetString("LINKAGE_POLICY"))

	// Redis
	cfg.Redis.Addr = v.GetString("REDIS_ADDR")
	cfg.Redis.Password = v.GetString("REDIS_PASSWORD")
	cfg.Redis.DB = v.GetInt("REDIS_DB")
	cfg.Redis.CacheTTL = v.GetDuration("REDIS_CACHE_TTL")
	cfg.Redis.RateLimit = v.GetInt("REDIS_RATE_LIMIT")

	// Storage
	cfg.Storage.Endpoint = v.GetString("STORAGE_ENDPOINT")
	cfg.Storage.AccessKey = v.GetString("STORAGE_ACCESS_KEY")
	cfg.Storage.SecretKey = v.GetString("STORAGE_SECRET_KEY")
	cfg.Storage.UseSSL = v.GetBool("STORAGE_USE_SSL")
	cfg.Storage.Bucket = v.GetString("STORAGE_BUCKET")
	cfg.Storage.URLExpiry = v.GetDuration("STORAGE_URL_EXPIRY")

	cfg.Export.Interval = v.GetDuration("EXPORT_INTERVAL")
	cfg.Export.Concurrency = v.GetInt("EXPORT_CONCURRENCY")

	cfg.Log.Level = v.GetString("LOG_LEVEL")
	cfg.Log.Format = v.GetString("LOG_FORMAT")

	return cfg
}

// Validate validates the configuration
func (c *Config) Validate() error {
	var errs []error

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("SERVER_PORT must be between 1 and 65535"))
	}
	if c.Database.URL == "" {
		errs = append(errs, errors.New("DATABASE_URL is required"))
	}
	if c.Database.MaxConns <= 0 {
		errs = append(errs, errors.New("DATABASE_MAX_CONNS must be positive"))
	}

	if err := c.JWT.Validate(c.App.IsDevelopment()); err != nil {
		errs = append(errs, err)
	}

	switch c.Linkage.Policy {
	case LinkagePolicyOff, LinkagePolicyWarn, LinkagePolicyStrict:
	default:
		errs = append(errs, fmt.Errorf("LINKAGE_POLICY must be one of off, warn, strict (got %q)", c.Linkage.Policy))
	}

	if c.Redis.RateLimit < 0 {
		errs = append(errs, errors.New("REDIS_RATE_LIMIT cannot be negative"))
	}
	if c.Storage.Enabled() && c.Storage.Bucket == "" {
		errs = append(errs, errors.New("STORAGE_BUCKET is required when STORAGE_ENDPOINT is set"))
	}
	if c.Export.Interval > 0 && !c.Storage.Enabled() {
		errs = append(errs, errors.New("EXPORT_INTERVAL requires STORAGE_ENDPOINT"))
	}
	if c.Export.Concurrency <= 0 {
		c.Export.Concurrency = 1
	}

	return errors.Join(errs...)
}

// Validate checks the credential verification settings. An empty HMAC
// secret is tolerated in development only; main generates one at startup.
func (j JWTConfig) Validate(development bool) error {
	if j.TenantClaim == "" {
		return errors.New("JWT_TENANT_CLAIM cannot be empty")
	}
	if j.JWKSURL != "" {
		if !jwksAlgorithms[j.Algorithm] && !hmacAlgorithms[j.Algorithm] {
			return fmt.Errorf("JWT_ALGORITHM %q is not supported", j.Algorithm)
		}
		return nil
	}
	if !hmacAlgorithms[j.Algorithm] {
		return fmt.Errorf("JWT_ALGORITHM %q requires JWT_JWKS_URL; shared secrets support HS256, HS384, HS512", j.Algorithm)
	}
	if j.Secret == "" && !development {
		return errors.New("JWT_SECRET is required outside development")
	}
	if j.Secret != "" && len(j.Secret) < 16 {
		return errors.New("JWT_SECRET must be at least 16 characters")
	}
	return nil
}
