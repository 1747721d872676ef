package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mvp-joe/agent-booster/internal/chunk"
	"github.com/mvp-joe/agent-booster/internal/chunkgraph"
	"github.com/mvp-joe/agent-booster/internal/language"
	"github.com/mvp-joe/agent-booster/internal/similarity"
)

var explainFlags struct {
	original  string
	edit      string
	lang      string
	maxChunks int
}

var explainCmd = &cobra.Command{
	Use:   "explain",
	Short: "Show the chunk containment graph and per-chunk similarity breakdown for a request",
	RunE:  runExplain,
}

func init() {
	rootCmd.AddCommand(explainCmd)
	explainCmd.Flags().StringVar(&explainFlags.original, "original", "", "path to the original source file (required)")
	explainCmd.Flags().StringVar(&explainFlags.edit, "edit", "", "path to the edit snippet file (required)")
	explainCmd.Flags().StringVar(&explainFlags.lang, "language", "", "language identifier (required)")
	explainCmd.Flags().IntVar(&explainFlags.maxChunks, "max_chunks", 100, "max chunks to extract")
	explainCmd.MarkFlagRequired("original")
	explainCmd.MarkFlagRequired("edit")
	explainCmd.MarkFlagRequired("language")
}

func runExplain(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	original, err := os.ReadFile(explainFlags.original)
	if err != nil {
		return fmt.Errorf("agent-booster explain: read original: %w", err)
	}
	edit, err := os.ReadFile(explainFlags.edit)
	if err != nil {
		return fmt.Errorf("agent-booster explain: read edit: %w", err)
	}
	lang := language.Parse(explainFlags.lang)
	desc := language.Get(lang)

	chunks := chunk.DefaultExtractor.Extract(string(original), lang, explainFlags.maxChunks)
	fmt.Printf("chunks_found: %d\n\n", len(chunks))

	if len(chunks) == 0 {
		fmt.Println("(no chunks extracted; apply_edit would fall back to Append)")
		return nil
	}

	fmt.Println("containment graph:")
	graph := chunkgraph.Build(chunks)
	fmt.Print(graph.Render())
	fmt.Println()

	engine := similarity.NewEngine(cfg.PrefilterThreshold, cfg.PrefilterTopK)
	scores := engine.ScoreAll(context.Background(), string(edit), chunks, desc.Keywords)

	fmt.Println("per-chunk similarity breakdown:")
	for i, c := range chunks {
		s := scores[i]
		fmt.Printf("  [%d] %s %d:%d total=%.3f edit=%.3f token=%.3f structural=%.3f\n",
			i, c.Kind, c.StartByte, c.EndByte, s.Total, s.EditDistance, s.TokenOverlap, s.Structural)
	}

	return nil
}
