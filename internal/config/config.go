package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"
)

// Mapping authorization scopes.
const (
	MappingScopeOpen  = "open"
	MappingScopeOwner = "owner"
)

// devJWTSecret signs tokens when ENV=development and JWT_SECRET is unset.
const devJWTSecret = "development-only-signing-secret-do-not-deploy"

const minJWTSecretLen = 32

type Config struct {
	Port            string        `mapstructure:"PORT"`
	Env             string        `mapstructure:"ENV"`
	LogLevel        string        `mapstructure:"LOG_LEVEL"`
	DatabaseURL     string        `mapstructure:"DATABASE_URL"`
	DBMaxConns      int32         `mapstructure:"DB_MAX_CONNS"`
	DBMinConns      int32         `mapstructure:"DB_MIN_CONNS"`
	AutoMigrate     bool          `mapstructure:"AUTO_MIGRATE"`
	JWTSecret       string        `mapstructure:"JWT_SECRET"`
	JWTIssuer       string        `mapstructure:"JWT_ISSUER"`
	AccessTokenTTL  time.Duration `mapstructure:"ACCESS_TOKEN_TTL"`
	RefreshTokenTTL time.Duration `mapstructure:"REFRESH_TOKEN_TTL"`
	BcryptCost      int           `mapstructure:"BCRYPT_COST"`
	APIPrefix       string        `mapstructure:"API_PREFIX"`
	MappingScope    string        `mapstructure:"MAPPING_SCOPE"`
	CORSOrigins     []string      `mapstructure:"CORS_ORIGINS"`
	RateLimitRPS    float64       `mapstructure:"RATE_LIMIT_RPS"`
	RateLimitBurst  int           `mapstructure:"RATE_LIMIT_BURST"`
}

var keys = []string{
	"PORT", "ENV", "LOG_LEVEL",
	"DATABASE_URL", "DB_MAX_CONNS", "DB_MIN_CONNS", "AUTO_MIGRATE",
	"JWT_SECRET", "JWT_ISSUER", "ACCESS_TOKEN_TTL", "REFRESH_TOKEN_TTL", "BCRYPT_COST",
	"API_PREFIX", "MAPPING_SCOPE", "CORS_ORIGINS",
	"RATE_LIMIT_RPS", "RATE_LIMIT_BURST",
}

// Load reads configuration from the environment and an optional .env file
// in the working directory. Environment variables win.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()

	v.SetDefault("PORT", "8000")
	v.SetDefault("ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("DB_MAX_CONNS", 20)
	v.SetDefault("DB_MIN_CONNS", 2)
	v.SetDefault("AUTO_MIGRATE", false)
	v.SetDefault("JWT_ISSUER", "hospital-api")
	v.SetDefault("ACCESS_TOKEN_TTL", "5m")
	v.SetDefault("REFRESH_TOKEN_TTL", "24h")
	v.SetDefault("BCRYPT_COST", bcrypt.DefaultCost)
	v.SetDefault("API_PREFIX", "/api")
	v.SetDefault("MAPPING_SCOPE", MappingScopeOpen)
	v.SetDefault("CORS_ORIGINS", "http://localhost:3000")
	v.SetDefault("RATE_LIMIT_RPS", 100)
	v.SetDefault("RATE_LIMIT_BURST", 200)

	for _, k := range keys {
		_ = v.BindEnv(k)
	}

	// A missing .env file is fine.
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if len(cfg.CORSOrigins) == 1 && strings.Contains(cfg.CORSOrigins[0], ",") {
		cfg.CORSOrigins = strings.Split(cfg.CORSOrigins[0], ",")
	}
	for i, o := range cfg.CORSOrigins {
		cfg.CORSOrigins[i] = strings.TrimSpace(o)
	}
	cfg.MappingScope = strings.ToLower(strings.TrimSpace(cfg.MappingScope))

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.JWTSecret == "" && cfg.IsDev() {
		cfg.JWTSecret = devJWTSecret
	}

	return cfg, nil
}

func (c *Config) IsDev() bool {
	return c.Env == "development"
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// UsesDevSecret reports whether tokens are signed with the built-in
// development secret.
func (c *Config) UsesDevSecret() bool {
	return c.JWTSecret == devJWTSecret
}

// Validate rejects configurations that are unsafe or cannot work.
func (c *Config) Validate() error {
	if len(c.JWTSecret) < minJWTSecretLen {
		return fmt.Errorf("JWT_SECRET must be at least %d characters", minJWTSecretLen)
	}
	if !c.IsDev() && c.UsesDevSecret() {
		return fmt.Errorf("JWT_SECRET must be set explicitly when ENV=%q", c.Env)
	}
	if c.AccessTokenTTL <= 0 || c.RefreshTokenTTL <= 0 {
		return fmt.Errorf("ACCESS_TOKEN_TTL and REFRESH_TOKEN_TTL must be positive")
	}
	if c.RefreshTokenTTL < c.AccessTokenTTL {
		return fmt.Errorf("REFRESH_TOKEN_TTL (%s) must not be shorter than ACCESS_TOKEN_TTL (%s)", c.RefreshTokenTTL, c.AccessTokenTTL)
	}
	if c.BcryptCost < bcrypt.MinCost || c.BcryptCost > bcrypt.MaxCost {
		return fmt.Errorf("BCRYPT_COST must be between %d and %d, got %d", bcrypt.MinCost, bcrypt.MaxCost, c.BcryptCost)
	}
	if c.MappingScope != MappingScopeOpen && c.MappingScope != MappingScopeOwner {
		return fmt.Errorf("MAPPING_SCOPE must be %q or %q, got %q", MappingScopeOpen, MappingScopeOwner, c.MappingScope)
	}
	if c.DBMaxConns <= 0 || c.DBMinConns < 0 || c.DBMinConns > c.DBMaxConns {
		return fmt.Errorf("DB_MIN_CONNS (%d) and DB_MAX_CONNS (%d) are inconsistent", c.DBMinConns, c.DBMaxConns)
	}
	if c.RateLimitRPS <= 0 || c.RateLimitBurst <= 0 {
		return fmt.Errorf("RATE_LIMIT_RPS and RATE_LIMIT_BURST must be positive")
	}
	if !strings.HasPrefix(c.APIPrefix, "/") {
		return fmt.Errorf("API_PREFIX must start with '/', got %q", c.APIPrefix)
	}
	return nil
}
