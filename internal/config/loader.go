package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Loader provides configuration loading capabilities.
type Loader interface {
	// Load loads configuration from flags, config file, and environment
	// variables. Priority (highest to lowest): flags → environment →
	// config file → defaults, per SPEC_FULL.md §6.1.
	Load() (*Config, error)
}

type loader struct {
	rootDir string
	flags   *pflag.FlagSet
}

// NewLoader creates a configuration loader that searches rootDir (and the
// user's home directory) for .agent-booster.yaml. flags may be nil; any
// flag present and changed on it takes precedence over everything else.
func NewLoader(rootDir string, flags *pflag.FlagSet) Loader {
	return &loader{rootDir: rootDir, flags: flags}
}

// Load resolves Config with flags > AGENT_BOOSTER_* environment variables >
// .agent-booster.yaml > built-in defaults (viper's own precedence order),
// following the teacher's viper-based loader.go pattern.
func (l *loader) Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName(".agent-booster")
	v.SetConfigType("yaml")
	v.AddConfigPath(l.rootDir)
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(home)
	}

	v.SetEnvPrefix("AGENT_BOOSTER")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	bindEnvVars(v)
	setDefaults(v)

	if l.flags != nil {
		if err := v.BindPFlags(l.flags); err != nil {
			return nil, fmt.Errorf("config: bind flags: %w", err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("config: read config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("config: invalid configuration: %w", err)
	}

	return cfg, nil
}

func bindEnvVars(v *viper.Viper) {
	v.BindEnv("confidence_threshold")
	v.BindEnv("max_chunks")
	v.BindEnv("prefilter_threshold")
	v.BindEnv("prefilter_top_k")
	v.BindEnv("use_ast_extractor")
	v.BindEnv("history.enabled")
	v.BindEnv("history.path")
}

func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("confidence_threshold", d.ConfidenceThreshold)
	v.SetDefault("max_chunks", d.MaxChunks)
	v.SetDefault("prefilter_threshold", d.PrefilterThreshold)
	v.SetDefault("prefilter_top_k", d.PrefilterTopK)
	v.SetDefault("use_ast_extractor", d.UseASTExtractor)
	v.SetDefault("history.enabled", d.History.Enabled)
	v.SetDefault("history.path", d.History.Path)
}

// LoadConfig loads configuration rooted at the current working directory,
// with no flag overrides.
func LoadConfig() (*Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("config: get working directory: %w", err)
	}
	return NewLoader(wd, nil).Load()
}

// LoadConfigFromDir loads configuration rooted at rootDir, with no flag
// overrides.
func LoadConfigFromDir(rootDir string) (*Config, error) {
	return NewLoader(rootDir, nil).Load()
}

// LoadConfigWithFlags loads configuration rooted at rootDir, letting any
// changed flag in flags override the config file/environment/defaults.
func LoadConfigWithFlags(rootDir string, flags *pflag.FlagSet) (*Config, error) {
	return NewLoader(rootDir, flags).Load()
}
