package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	BackendKeyVault   = "keyvault"
	BackendKubernetes = "kubernetes"
)

// Config is the gateway configuration, resolved from defaults, an optional
// config file and the environment (highest precedence).
type Config struct {
	Server struct {
		Addr         string        `mapstructure:"addr"`
		ReadTimeout  time.Duration `mapstructure:"read_timeout"`
		WriteTimeout time.Duration `mapstructure:"write_timeout"`
	} `mapstructure:"server"`
	Store struct {
		Backend         string `mapstructure:"backend"`
		KeyVaultURI     string `mapstructure:"key_vault_uri"`
		Namespace       string `mapstructure:"namespace"`
		Kubeconfig      string `mapstructure:"kubeconfig"`
		CreateNamespace bool   `mapstructure:"create_namespace"`
	} `mapstructure:"store"`
	Log struct {
		Level  string `mapstructure:"level"`
		Pretty bool   `mapstructure:"pretty"`
	} `mapstructure:"log"`
	Auth struct {
		JWTSecret         string        `mapstructure:"jwt_secret"`
		TokenTTL          time.Duration `mapstructure:"token_ttl"`
		AdminUser         string        `mapstructure:"admin_user"`
		AdminPasswordHash string        `mapstructure:"admin_password_hash"`
	} `mapstructure:"auth"`
}

// AuthEnabled reports whether write routes are protected by JWT
func (c Config) AuthEnabled() bool {
	return c.Auth.JWTSecret != ""
}

// env names per key. KEY_VAULT_URI is the documented name, KEYVAULT_URI is still read.
// KUBECONFIG is left to the kubeconfig loader, it may hold a path list.
var envBindings = map[string][]string{
	"server.addr":              {"GATEWAY_ADDR"},
	"server.read_timeout":      {"GATEWAY_READ_TIMEOUT"},
	"server.write_timeout":     {"GATEWAY_WRITE_TIMEOUT"},
	"store.backend":            {"SECRET_STORE_BACKEND"},
	"store.key_vault_uri":      {"KEY_VAULT_URI", "KEYVAULT_URI"},
	"store.namespace":          {"SECRET_NAMESPACE"},
	"store.kubeconfig":         {"SECRET_KUBECONFIG"},
	"store.create_namespace":   {"SECRET_NAMESPACE_CREATE"},
	"log.level":                {"LOG_LEVEL"},
	"log.pretty":               {"LOG_PRETTY"},
	"auth.jwt_secret":          {"JWT_SECRET_KEY"},
	"auth.token_ttl":           {"JWT_TOKEN_TTL"},
	"auth.admin_user":          {"ADMIN_USERNAME"},
	"auth.admin_password_hash": {"ADMIN_PASSWORD_HASH"},
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":3000")
	v.SetDefault("server.read_timeout", 10*time.Second)
	v.SetDefault("server.write_timeout", 10*time.Second)
	v.SetDefault("store.backend", BackendKeyVault)
	v.SetDefault("store.namespace", "default")
	v.SetDefault("store.create_namespace", false)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)
	v.SetDefault("auth.token_ttl", 24*time.Hour)
	v.SetDefault("auth.admin_user", "admin")
}

// Load reads configuration into v. configFile may be empty.
func Load(v *viper.Viper, configFile string) (Config, error) {
	setDefaults(v)

	for key, envs := range envBindings {
		args := append([]string{key}, envs...)
		if err := v.BindEnv(args...); err != nil {
			return Config{}, fmt.Errorf("bind env for %s: %w", key, err)
		}
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config file %s: %w", configFile, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	cfg.Store.Backend = strings.ToLower(strings.TrimSpace(cfg.Store.Backend))

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate returns every configuration problem at once
func (c Config) Validate() error {
	var errs []error

	switch c.Store.Backend {
	case BackendKeyVault:
		if c.Store.KeyVaultURI == "" {
			errs = append(errs, errors.New("KEY_VAULT_URI is required for the keyvault backend"))
		}
	case BackendKubernetes:
		if c.Store.Namespace == "" {
			errs = append(errs, errors.New("store namespace must not be empty"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown store backend %q", c.Store.Backend))
	}

	if c.Server.Addr == "" {
		errs = append(errs, errors.New("server address must not be empty"))
	}
	if c.Server.ReadTimeout <= 0 || c.Server.WriteTimeout <= 0 {
		errs = append(errs, errors.New("server timeouts must be positive"))
	}

	if c.AuthEnabled() {
		if c.Auth.AdminPasswordHash == "" {
			errs = append(errs, errors.New("ADMIN_PASSWORD_HASH is required when JWT_SECRET_KEY is set"))
		}
		if c.Auth.TokenTTL <= 0 {
			errs = append(errs, errors.New("token ttl must be positive"))
		}
	}

	return errors.Join(errs...)
}
