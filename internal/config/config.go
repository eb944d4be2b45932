package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Database   DatabaseConfig
	UI         UIConfig
	Simulation SimulationConfig
}

// DatabaseConfig holds sqlite settings.
type DatabaseConfig struct {
	Path string
}

// UIConfig holds presentation settings.
type UIConfig struct {
	CurrencySymbol string `mapstructure:"currency_symbol"`
	DateFormat     string `mapstructure:"date_format"`
}

// SimulationConfig tunes the fake remote-write behavior. Rates are
// probabilities in [0,1]; setting them to 0 disables failure injection.
type SimulationConfig struct {
	SaveLatency        time.Duration `mapstructure:"save_latency"`
	ConvertLatency     time.Duration `mapstructure:"convert_latency"`
	LoadLatency        time.Duration `mapstructure:"load_latency"`
	SaveFailureRate    float64       `mapstructure:"save_failure_rate"`
	ConvertFailureRate float64       `mapstructure:"convert_failure_rate"`
}

// Load reads configuration from file and env. Env var overrides use prefix PIPEDECK_.
func Load() (Config, error) {
	v := viper.New()

	// default values
	v.SetDefault("database.path", filepath.Join(os.Getenv("HOME"), ".local", "share", "pipedeck", "pipedeck.db"))
	v.SetDefault("ui.currency_symbol", "$")
	v.SetDefault("ui.date_format", "Jan 2, 2006")
	v.SetDefault("simulation.save_latency", "800ms")
	v.SetDefault("simulation.convert_latency", "1s")
	v.SetDefault("simulation.load_latency", "800ms")
	v.SetDefault("simulation.save_failure_rate", 0.10)
	v.SetDefault("simulation.convert_failure_rate", 0.05)

	v.SetConfigType("toml")

	cfgPath := os.Getenv("PIPEDECK_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "pipedeck"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("PIPEDECK")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// read config file if present
	_ = v.ReadInConfig()

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := validate(c); err != nil {
		return Config{}, err
	}
	return c, nil
}

func validate(c Config) error {
	if c.Simulation.SaveFailureRate < 0 || c.Simulation.SaveFailureRate > 1 {
		return fmt.Errorf("simulation.save_failure_rate %v outside [0,1]", c.Simulation.SaveFailureRate)
	}
	if c.Simulation.ConvertFailureRate < 0 || c.Simulation.ConvertFailureRate > 1 {
		return fmt.Errorf("simulation.convert_failure_rate %v outside [0,1]", c.Simulation.ConvertFailureRate)
	}
	return nil
}
