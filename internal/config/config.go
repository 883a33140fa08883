package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"evolve/internal/repair"
)

const (
	KeyEndpoint       = "endpoint"
	KeyAPIKey         = "api_key"
	KeyBackend        = "backend"
	KeyModel          = "model"
	KeyOllamaHost     = "ollama_host"
	KeyMaxRounds      = "max_rounds"
	KeyRunTimeout     = "run_timeout"
	KeyRepairTimeout  = "repair_timeout"
	KeyLogFile        = "log_file"
	KeyConfirm        = "confirm"
	KeyFailureMarkers = "failure_markers"
	KeyReport         = "report"

	EnvPrefix      = "EVOLVE"
	DefaultLogFile = "evolve.log"
)

type Config struct {
	Endpoint       string
	APIKey         string
	Backend        string
	Model          string
	OllamaHost     string
	MaxRounds      int
	RunTimeout     time.Duration
	RepairTimeout  time.Duration
	LogFile        string
	Confirm        bool
	FailureMarkers []string
	ReportFile     string
}

// Repair returns the subset the repair backends need.
func (c *Config) Repair() repair.Config {
	return repair.Config{
		Backend:    c.Backend,
		Endpoint:   c.Endpoint,
		APIKey:     c.APIKey,
		Model:      c.Model,
		OllamaHost: c.OllamaHost,
	}
}

func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyEndpoint, repair.DefaultEndpoint)
	v.SetDefault(KeyBackend, "evolve")
	v.SetDefault(KeyMaxRounds, 0)
	v.SetDefault(KeyRunTimeout, time.Duration(0))
	v.SetDefault(KeyRepairTimeout, time.Duration(0))
	v.SetDefault(KeyLogFile, DefaultLogFile)
	v.SetDefault(KeyConfirm, false)
	v.SetDefault(KeyFailureMarkers, []string{})
	v.SetDefault(KeyReport, "")
}

// BindEnv maps EVOLVE_<KEY> onto every key. The ollama host also honours
// the OLLAMA_HOST variable the ollama tooling uses.
func BindEnv(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()
	_ = v.BindEnv(KeyOllamaHost, EnvPrefix+"_OLLAMA_HOST", "OLLAMA_HOST")
}

// ReadFile loads cfgFile, or $HOME/.evolve/config.yaml when cfgFile is empty.
// Only an explicitly named file is required to exist.
func ReadFile(v *viper.Viper, cfgFile string) error {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil
		}
		v.AddConfigPath(filepath.Join(home, ".evolve"))
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("could not read config file: %w", err)
	}
	return nil
}

func Load(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Endpoint:       strings.TrimSpace(v.GetString(KeyEndpoint)),
		APIKey:         v.GetString(KeyAPIKey),
		Backend:        strings.ToLower(strings.TrimSpace(v.GetString(KeyBackend))),
		Model:          strings.TrimSpace(v.GetString(KeyModel)),
		OllamaHost:     strings.TrimSpace(v.GetString(KeyOllamaHost)),
		MaxRounds:      v.GetInt(KeyMaxRounds),
		RunTimeout:     v.GetDuration(KeyRunTimeout),
		RepairTimeout:  v.GetDuration(KeyRepairTimeout),
		LogFile:        v.GetString(KeyLogFile),
		Confirm:        v.GetBool(KeyConfirm),
		FailureMarkers: splitMarkers(v.GetStringSlice(KeyFailureMarkers)),
		ReportFile:     v.GetString(KeyReport),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.MaxRounds < 0 {
		return fmt.Errorf("%s must be >= 0, got %d", KeyMaxRounds, c.MaxRounds)
	}
	if c.RunTimeout < 0 {
		return fmt.Errorf("%s must be >= 0, got %s", KeyRunTimeout, c.RunTimeout)
	}
	if c.RepairTimeout < 0 {
		return fmt.Errorf("%s must be >= 0, got %s", KeyRepairTimeout, c.RepairTimeout)
	}
	switch c.Backend {
	case "", "evolve", "http", "gemini", "ollama":
	default:
		return fmt.Errorf("unsupported %s %q (want evolve, http, gemini or ollama)", KeyBackend, c.Backend)
	}
	return nil
}

// splitMarkers accepts both list values and comma separated env strings.
func splitMarkers(in []string) []string {
	var out []string
	for _, item := range in {
		for _, m := range strings.Split(item, ",") {
			if m = strings.TrimSpace(m); m != "" {
				out = append(out, m)
			}
		}
	}
	return out
}
