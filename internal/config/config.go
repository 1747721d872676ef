// Package config is Agent Booster's CLI configuration layer
// (SPEC_FULL.md §6.1): the tunables behind apply_edit/batch that a caller
// would otherwise have to repeat as flags on every invocation. It has no
// bearing on internal/booster's behavior directly — the CLI reads a
// Config and builds a booster.EditRequest/booster.Config from it.
//
// Grounded on the teacher's internal/config (loader.go/validate.go):
// spf13/viper for precedence-layered loading, a Default() constructor, and
// a Validate() pass that accumulates every error rather than failing fast
// on the first one.
package config

// Config is Agent Booster's resolved configuration.
type Config struct {
	ConfidenceThreshold float64       `mapstructure:"confidence_threshold"`
	MaxChunks           int           `mapstructure:"max_chunks"`
	PrefilterThreshold  int           `mapstructure:"prefilter_threshold"`
	PrefilterTopK       int           `mapstructure:"prefilter_top_k"`
	UseASTExtractor     bool          `mapstructure:"use_ast_extractor"`
	History             HistoryConfig `mapstructure:"history"`
}

// HistoryConfig controls the opt-in history store (SPEC_FULL.md §6.3).
type HistoryConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// Default returns the values SPEC_FULL.md §6.1/§4.2.1/§4.3.1 name as
// Agent Booster's built-in defaults — the same ones booster.DefaultConfig
// and booster's own per-request zero-value fallback use.
func Default() *Config {
	return &Config{
		ConfidenceThreshold: 0.5,
		MaxChunks:           100,
		PrefilterThreshold:  32,
		PrefilterTopK:       40,
		UseASTExtractor:     false,
		History: HistoryConfig{
			Enabled: false,
			Path:    "",
		},
	}
}
