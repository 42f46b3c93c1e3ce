// Package config loads tucano settings from defaults, an optional YAML file
// and TUCANO_ environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/rezonia/tucano/internal/provider"
	"github.com/rezonia/tucano/internal/resolver"
)

// EnvPrefix is prepended to every environment override, e.g. TUCANO_LOG_LEVEL
const EnvPrefix = "TUCANO"

// Config is the full application configuration
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Log      LogConfig      `mapstructure:"log"`
	Provider ProviderConfig `mapstructure:"provider"`
}

// ServerConfig configures the HTTP API
type ServerConfig struct {
	Address      string        `mapstructure:"address" validate:"required"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout" validate:"gt=0"`
	WriteTimeout time.Duration `mapstructure:"write_timeout" validate:"gt=0"`
	Debug        bool          `mapstructure:"debug"`
}

// LogConfig configures zerolog
type LogConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Level   string `mapstructure:"level" validate:"oneof=trace debug info warn error"`
	Format  string `mapstructure:"format" validate:"oneof=json console"`
}

// ProviderConfig configures the provider chains
type ProviderConfig struct {
	Timeout             time.Duration `mapstructure:"timeout" validate:"gt=0"`
	CNPJTimeout         time.Duration `mapstructure:"cnpj_timeout" validate:"gt=0"`
	ViaCEPURL           string        `mapstructure:"viacep_url" validate:"required,url"`
	BrasilAPIURL        string        `mapstructure:"brasilapi_url" validate:"required,url"`
	ReceitaWSURL        string        `mapstructure:"receitaws_url" validate:"required,url"`
	ParallelumURL       string        `mapstructure:"parallelum_url" validate:"required,url"`
	CEPFallback         bool          `mapstructure:"cep_fallback"`
	CNPJReceitaWS       bool          `mapstructure:"cnpj_receitaws"`
	NotFoundRecoverable bool          `mapstructure:"not_found_recoverable"`
	BatchConcurrency    int           `mapstructure:"batch_concurrency" validate:"min=1,max=64"`
}

// ResolverSettings maps the provider section onto the resolver chains
func (p ProviderConfig) ResolverSettings() resolver.Settings {
	return resolver.Settings{
		Timeout:             p.Timeout,
		CNPJTimeout:         p.CNPJTimeout,
		ViaCEPURL:           p.ViaCEPURL,
		BrasilAPIURL:        p.BrasilAPIURL,
		ReceitaWSURL:        p.ReceitaWSURL,
		ParallelumURL:       p.ParallelumURL,
		CEPFallback:         p.CEPFallback,
		CNPJReceitaWS:       p.CNPJReceitaWS,
		NotFoundRecoverable: p.NotFoundRecoverable,
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.address", ":8080")
	v.SetDefault("server.read_timeout", 15*time.Second)
	v.SetDefault("server.write_timeout", 30*time.Second)
	v.SetDefault("server.debug", false)

	v.SetDefault("log.enabled", true)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	v.SetDefault("provider.timeout", 10*time.Second)
	v.SetDefault("provider.cnpj_timeout", 15*time.Second)
	v.SetDefault("provider.viacep_url", provider.ViaCEPBaseURL)
	v.SetDefault("provider.brasilapi_url", provider.BrasilAPIBaseURL)
	v.SetDefault("provider.receitaws_url", provider.ReceitaWSBaseURL)
	v.SetDefault("provider.parallelum_url", provider.ParallelumBaseURL)
	v.SetDefault("provider.cep_fallback", true)
	v.SetDefault("provider.cnpj_receitaws", false)
	v.SetDefault("provider.not_found_recoverable", false)
	v.SetDefault("provider.batch_concurrency", 4)
}

// Load reads the configuration. An explicit path must exist; otherwise
// tucano.yaml is looked up in the working directory and is optional.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("tucano")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/tucano")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns the configuration used when nothing is overridden
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	var cfg Config
	// defaults always decode
	_ = v.Unmarshal(&cfg)
	return &cfg
}

var validate = validator.New()

// Validate checks field constraints and reports every failing field
func Validate(cfg *Config) error {
	err := validate.Struct(cfg)
	if err == nil {
		return nil
	}
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return fmt.Errorf("invalid config: %w", err)
	}
	msgs := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		msgs = append(msgs, fmt.Sprintf("%s failed on '%s'", e.Namespace(), e.Tag()))
	}
	return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
}
