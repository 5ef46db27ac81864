package config

import (
	"fmt"
	"strings"

	"github.com/hay-kot/criterio"
	"github.com/rs/zerolog"
)

var storageDrivers = []string{"memory", "file", "postgres", "sqlite", "mysql", "redis", "s3"}

var roles = []string{"admin", "manager", "viewer"}

// Validate checks the configuration for structural errors.
func (c *Config) Validate() error {
	return criterio.ValidateStruct(
		c.validateServer(),
		criterio.Run("logger.level", c.Logger.Level, validLogLevel),
		c.validateStorage(),
		c.validateAuth(),
		c.validateRateLimit(),
		c.validateAlert(),
	)
}

func (c *Config) validateServer() error {
	if err := validPort(c.HTTPServer.Port); err != nil {
		return criterio.NewFieldErrors("http_server.port", err)
	}
	return nil
}

func (c *Config) validateStorage() error {
	s := c.Storage
	if !contains(storageDrivers, s.Driver) {
		return criterio.NewFieldErrors("storage.driver",
			fmt.Errorf("must be one of %s, got %q", strings.Join(storageDrivers, ", "), s.Driver))
	}

	var errs criterio.FieldErrorsBuilder
	switch s.Driver {
	case "file":
		if strings.TrimSpace(s.File.Path) == "" {
			errs = errs.Append("storage.file.path", fmt.Errorf("required for file driver"))
		}
	case "postgres", "sqlite", "mysql":
		if strings.TrimSpace(s.SQL.DSN) == "" {
			errs = errs.Append("storage.sql.dsn", fmt.Errorf("required for %s driver", s.Driver))
		}
	case "redis":
		if strings.TrimSpace(s.Redis.Addr) == "" {
			errs = errs.Append("storage.redis.addr", fmt.Errorf("required for redis driver"))
		}
	case "s3":
		if strings.TrimSpace(s.S3.Bucket) == "" {
			errs = errs.Append("storage.s3.bucket", fmt.Errorf("required for s3 driver"))
		}
	}
	return errs.ToError()
}

func (c *Config) validateAuth() error {
	if !c.Auth.Enabled {
		return nil
	}

	var errs criterio.FieldErrorsBuilder
	if c.Auth.JWTSecret == "" {
		errs = errs.Append("auth.jwt_secret", fmt.Errorf("required when auth is enabled"))
	}
	if c.Auth.TokenTTL <= 0 {
		errs = errs.Append("auth.token_ttl", fmt.Errorf("must be positive"))
	}

	seen := make(map[string]bool)
	for i, u := range c.Auth.Users {
		field := fmt.Sprintf("auth.users[%d]", i)
		if u.ID == "" {
			errs = errs.Append(field+".id", fmt.Errorf("required"))
		}
		if u.Email == "" {
			errs = errs.Append(field+".email", fmt.Errorf("required"))
		} else if seen[strings.ToLower(u.Email)] {
			errs = errs.Append(field+".email", fmt.Errorf("duplicate email %q", u.Email))
		}
		seen[strings.ToLower(u.Email)] = true
		if !contains(roles, u.Role) {
			errs = errs.Append(field+".role", fmt.Errorf("must be one of %s", strings.Join(roles, ", ")))
		}
		if u.PasswordHash == "" {
			errs = errs.Append(field+".password_hash", fmt.Errorf("required"))
		}
	}
	return errs.ToError()
}

func (c *Config) validateRateLimit() error {
	if !c.RateLimit.Enabled {
		return nil
	}

	var errs criterio.FieldErrorsBuilder
	if c.RateLimit.RequestsPerSecond <= 0 {
		errs = errs.Append("rate_limit.requests_per_second", fmt.Errorf("must be positive"))
	}
	if c.RateLimit.Burst < 1 {
		errs = errs.Append("rate_limit.burst", fmt.Errorf("must be at least 1"))
	}
	return errs.ToError()
}

func (c *Config) validateAlert() error {
	if !c.Alert.Enabled {
		return nil
	}

	var errs criterio.FieldErrorsBuilder
	if c.Alert.SMTP.Server == "" {
		errs = errs.Append("alert.smtp.server", fmt.Errorf("required when alerts are enabled"))
	}
	if c.Alert.SMTP.From == "" {
		errs = errs.Append("alert.smtp.from", fmt.Errorf("required when alerts are enabled"))
	}
	if c.Alert.SMTP.To == "" {
		errs = errs.Append("alert.smtp.to", fmt.Errorf("required when alerts are enabled"))
	}
	if err := validPort(c.Alert.SMTP.Port); err != nil {
		errs = errs.Append("alert.smtp.port", err)
	}
	return errs.ToError()
}

func validPort(port int) error {
	if port < 1 || port > 65535 {
		return fmt.Errorf("must be between 1 and 65535, got %d", port)
	}
	return nil
}

func validLogLevel(level string) error {
	if _, err := zerolog.ParseLevel(level); err != nil {
		return fmt.Errorf("unknown level %q", level)
	}
	return nil
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
