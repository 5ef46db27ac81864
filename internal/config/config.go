package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all service configuration.
type Config struct {
	Environment EnvironmentConfig
	HTTPServer  HTTPServerConfig
	Logger      LoggerConfig
	Storage     StorageConfig
	Auth        AuthConfig
	RateLimit   RateLimitConfig
	Alert       AlertConfig
}

type EnvironmentConfig struct {
	Name string
}

type HTTPServerConfig struct {
	Port               int
	ReadTimeout        time.Duration
	WriteTimeout       time.Duration
	CORSAllowedOrigins []string
	// TrustProxyHeaders takes the client address from X-Forwarded-For or
	// X-Real-IP. Enable only behind a proxy that sets them.
	TrustProxyHeaders bool
}

type LoggerConfig struct {
	Level string
	File  string
}

type StorageConfig struct {
	Driver string
	File   FileStorageConfig
	SQL    SQLStorageConfig
	Redis  RedisStorageConfig
	S3     S3StorageConfig
}

type FileStorageConfig struct {
	Path string
}

type SQLStorageConfig struct {
	DSN string
}

type RedisStorageConfig struct {
	Addr     string
	Password string
	DB       int
	Key      string
}

type S3StorageConfig struct {
	Bucket          string
	Region          string
	Endpoint        string
	Key             string
	PathStyle       bool
	AccessKeyID     string
	SecretAccessKey string
}

type AuthConfig struct {
	Enabled   bool
	JWTSecret string
	TokenTTL  time.Duration
	Users     []UserConfig
}

// UserConfig describes a login account. PasswordHash is a bcrypt hash.
type UserConfig struct {
	ID           string
	Name         string
	Email        string
	Role         string
	PasswordHash string
}

type RateLimitConfig struct {
	Enabled           bool
	RequestsPerSecond float64
	Burst             int
}

type AlertConfig struct {
	Enabled bool
	SMTP    SMTPConfig
}

type SMTPConfig struct {
	Server       string
	Port         int
	User         string
	Password     string
	From         string
	To           string
	AuthDisabled bool
}

const DefaultJWTSecret = "super-secret-key"

// Load reads config.yaml (or the file at path when non-empty) and overlays
// INVENTORY_* environment variables. A missing config file is not an error.
func Load(path string) (*Config, error) {
	v := viper.New()
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("/etc/smart-inventory/")
	}

	v.SetEnvPrefix("INVENTORY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{}

	cfg.Environment.Name = v.GetString("environment.name")

	cfg.HTTPServer.Port = v.GetInt("http_server.port")
	cfg.HTTPServer.ReadTimeout = v.GetDuration("http_server.read_timeout")
	cfg.HTTPServer.WriteTimeout = v.GetDuration("http_server.write_timeout")
	cfg.HTTPServer.CORSAllowedOrigins = stringList(v, "http_server.cors_allowed_origins")
	cfg.HTTPServer.TrustProxyHeaders = v.GetBool("http_server.trust_proxy_headers")

	cfg.Logger.Level = v.GetString("logger.level")
	cfg.Logger.File = v.GetString("logger.file")

	cfg.Storage.Driver = strings.ToLower(v.GetString("storage.driver"))
	cfg.Storage.File.Path = v.GetString("storage.file.path")
	cfg.Storage.SQL.DSN = v.GetString("storage.sql.dsn")
	cfg.Storage.Redis.Addr = v.GetString("storage.redis.addr")
	cfg.Storage.Redis.Password = v.GetString("storage.redis.password")
	cfg.Storage.Redis.DB = v.GetInt("storage.redis.db")
	cfg.Storage.Redis.Key = v.GetString("storage.redis.key")
	cfg.Storage.S3.Bucket = v.GetString("storage.s3.bucket")
	cfg.Storage.S3.Region = v.GetString("storage.s3.region")
	cfg.Storage.S3.Endpoint = v.GetString("storage.s3.endpoint")
	cfg.Storage.S3.Key = v.GetString("storage.s3.key")
	cfg.Storage.S3.PathStyle = v.GetBool("storage.s3.path_style")
	cfg.Storage.S3.AccessKeyID = v.GetString("storage.s3.access_key_id")
	cfg.Storage.S3.SecretAccessKey = v.GetString("storage.s3.secret_access_key")

	cfg.Auth.Enabled = v.GetBool("auth.enabled")
	cfg.Auth.JWTSecret = v.GetString("auth.jwt_secret")
	cfg.Auth.TokenTTL = v.GetDuration("auth.token_ttl")
	cfg.Auth.Users = userList(v.Get("auth.users"))

	cfg.RateLimit.Enabled = v.GetBool("rate_limit.enabled")
	cfg.RateLimit.RequestsPerSecond = v.GetFloat64("rate_limit.requests_per_second")
	cfg.RateLimit.Burst = v.GetInt("rate_limit.burst")

	cfg.Alert.Enabled = v.GetBool("alert.enabled")
	cfg.Alert.SMTP.Server = v.GetString("alert.smtp.server")
	cfg.Alert.SMTP.Port = v.GetInt("alert.smtp.port")
	cfg.Alert.SMTP.User = v.GetString("alert.smtp.user")
	cfg.Alert.SMTP.Password = v.GetString("alert.smtp.password")
	cfg.Alert.SMTP.From = v.GetString("alert.smtp.from")
	cfg.Alert.SMTP.To = v.GetString("alert.smtp.to")
	cfg.Alert.SMTP.AuthDisabled = v.GetBool("alert.smtp.auth_disabled")

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("environment.name", "development")

	v.SetDefault("http_server.port", 4001)
	v.SetDefault("http_server.read_timeout", "10s")
	v.SetDefault("http_server.write_timeout", "10s")
	v.SetDefault("http_server.cors_allowed_origins", "*")
	v.SetDefault("http_server.trust_proxy_headers", false)

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.file", "")

	v.SetDefault("storage.driver", "file")
	v.SetDefault("storage.file.path", "data/inventory.json")
	v.SetDefault("storage.sql.dsn", "")
	v.SetDefault("storage.redis.addr", "localhost:6379")
	v.SetDefault("storage.redis.password", "")
	v.SetDefault("storage.redis.db", 0)
	v.SetDefault("storage.redis.key", "inventory:items")
	v.SetDefault("storage.s3.bucket", "")
	v.SetDefault("storage.s3.region", "us-east-1")
	v.SetDefault("storage.s3.endpoint", "")
	v.SetDefault("storage.s3.key", "inventory/items.json")
	v.SetDefault("storage.s3.path_style", false)
	v.SetDefault("storage.s3.access_key_id", "")
	v.SetDefault("storage.s3.secret_access_key", "")

	v.SetDefault("auth.enabled", true)
	v.SetDefault("auth.jwt_secret", DefaultJWTSecret)
	v.SetDefault("auth.token_ttl", "24h")

	v.SetDefault("rate_limit.enabled", true)
	v.SetDefault("rate_limit.requests_per_second", 5)
	v.SetDefault("rate_limit.burst", 10)

	v.SetDefault("alert.enabled", false)
	v.SetDefault("alert.smtp.server", "")
	v.SetDefault("alert.smtp.port", 587)
	v.SetDefault("alert.smtp.user", "")
	v.SetDefault("alert.smtp.password", "")
	v.SetDefault("alert.smtp.from", "")
	v.SetDefault("alert.smtp.to", "")
	v.SetDefault("alert.smtp.auth_disabled", false)
}

// stringList accepts either a YAML list or a comma separated string, since
// values coming from the environment are always flat strings.
func stringList(v *viper.Viper, key string) []string {
	var out []string
	switch raw := v.Get(key).(type) {
	case []any:
		for _, item := range raw {
			if s := strings.TrimSpace(fmt.Sprint(item)); s != "" {
				out = append(out, s)
			}
		}
	default:
		for _, s := range strings.Split(v.GetString(key), ",") {
			if s = strings.TrimSpace(s); s != "" {
				out = append(out, s)
			}
		}
	}
	return out
}

func userList(raw any) []UserConfig {
	list, ok := raw.([]any)
	if !ok {
		return nil
	}

	users := make([]UserConfig, 0, len(list))
	for _, entry := range list {
		m, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		users = append(users, UserConfig{
			ID:           getStringFromMap(m, "id"),
			Name:         getStringFromMap(m, "name"),
			Email:        getStringFromMap(m, "email"),
			Role:         getStringFromMap(m, "role"),
			PasswordHash: getStringFromMap(m, "password_hash"),
		})
	}
	return users
}

func getStringFromMap(m map[string]any, key string) string {
	if v, ok := m[key]; ok && v != nil {
		return fmt.Sprint(v)
	}
	return ""
}
