package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mvp-joe/agent-booster/internal/historyindex"
	"github.com/mvp-joe/agent-booster/internal/historystore"
	"github.com/mvp-joe/agent-booster/internal/language"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Query the opt-in apply/batch history store",
}

var historySearchFlags struct {
	semantic bool
	lang     string
	limit    int
}

var historySearchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search past edits by keyword, or with --semantic by structural similarity",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistorySearch,
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the most recent recorded edits",
	RunE:  runHistoryList,
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.AddCommand(historySearchCmd)
	historyCmd.AddCommand(historyListCmd)

	historySearchCmd.Flags().BoolVar(&historySearchFlags.semantic, "semantic", false, "rank by structural similarity instead of keyword match")
	historySearchCmd.Flags().StringVar(&historySearchFlags.lang, "language", "javascript", "language whose keyword table backs --semantic's structural vectors")
	historySearchCmd.Flags().IntVar(&historySearchFlags.limit, "limit", 15, "maximum results")
}

func openHistory(cmd *cobra.Command) (*historystore.Store, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	if !cfg.History.Enabled || cfg.History.Path == "" {
		return nil, fmt.Errorf("agent-booster history: history.enabled is false or history.path unset in config")
	}
	return historystore.Open(cfg.History.Path)
}

func runHistorySearch(cmd *cobra.Command, args []string) error {
	store, err := openHistory(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	idx, err := historyindex.Build(store)
	if err != nil {
		return fmt.Errorf("agent-booster history search: %w", err)
	}
	defer idx.Close()

	var hits []historyindex.Hit
	if historySearchFlags.semantic {
		hits, err = idx.Semantic(context.Background(), args[0], language.Parse(historySearchFlags.lang), historySearchFlags.limit)
	} else {
		hits, err = idx.Keyword(args[0], historySearchFlags.limit)
	}
	if err != nil {
		return fmt.Errorf("agent-booster history search: %w", err)
	}

	printHits(hits)
	return nil
}

func runHistoryList(cmd *cobra.Command, args []string) error {
	store, err := openHistory(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	recs, err := store.List(50)
	if err != nil {
		return fmt.Errorf("agent-booster history list: %w", err)
	}

	for _, r := range recs {
		fmt.Printf("%s  %-12s %-14s confidence=%.3f %s\n", r.RequestID, r.Language, r.Strategy, r.Confidence, r.CreatedAt.Format("2006-01-02T15:04:05Z"))
	}
	return nil
}

func printHits(hits []historyindex.Hit) {
	for _, h := range hits {
		fmt.Printf("%s  score=%.3f %-12s %-14s\n", h.RequestID, h.Score, h.Record.Language, h.Record.Strategy)
	}
}
