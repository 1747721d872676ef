// Package cli is the Cobra command tree for the agent-booster binary
// (SPEC_FULL.md §6.1): apply, batch, explain, history, watch, version.
// Every command is a thin ambient wrapper — it parses flags, reads files,
// calls into internal/booster, and prints the result. None of the core
// matching/merge logic lives here.
//
// Grounded on the teacher's internal/cli/root.go for the Cobra + Viper
// root command and persistent-flag wiring.
package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mvp-joe/agent-booster/internal/config"
)

var (
	cfgFile string
	verbose bool
)

// rootCmd is the base command.
var rootCmd = &cobra.Command{
	Use:   "agent-booster",
	Short: "Deterministic, stateless code-editing merge engine",
	Long: `agent-booster applies a small edit snippet onto an existing source
file by locating the best-matching code chunk and merging the two,
without an LLM in the loop.`,
}

// Execute runs the root command. Called once from main.main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file path; only its directory is used, searched for .agent-booster.yaml (default: the working directory, then $HOME)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose diagnostic output on stderr")
}

// loadConfig resolves configuration with the precedence documented in
// internal/config: flags on cmd > environment > config file > defaults.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	dir := "."
	if cfgFile != "" {
		dir = filepath.Dir(cfgFile)
	}
	cfg, err := config.LoadConfigWithFlags(dir, cmd.Flags())
	if err != nil {
		return nil, err
	}
	if verbose {
		fmt.Fprintf(os.Stderr, "agent-booster: confidence_threshold=%.2f max_chunks=%d use_ast_extractor=%v\n",
			cfg.ConfidenceThreshold, cfg.MaxChunks, cfg.UseASTExtractor)
	}
	return cfg, nil
}
