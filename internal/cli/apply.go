package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/mvp-joe/agent-booster/internal/booster"
	"github.com/mvp-joe/agent-booster/internal/historystore"
	"github.com/mvp-joe/agent-booster/internal/language"
)

var applyFlags struct {
	original  string
	edit      string
	lang      string
	threshold float64
	maxChunks int
	useAST    bool
	out       string
}

var applyCmd = &cobra.Command{
	Use:   "apply",
	Short: "Apply one edit snippet onto one source file",
	RunE:  runApply,
}

func init() {
	rootCmd.AddCommand(applyCmd)
	applyCmd.Flags().StringVar(&applyFlags.original, "original", "", "path to the original source file (required)")
	applyCmd.Flags().StringVar(&applyFlags.edit, "edit", "", "path to the edit snippet file (required)")
	applyCmd.Flags().StringVar(&applyFlags.lang, "language", "", "language identifier (javascript, typescript, python, rust, go, java, c, cpp) (required)")
	applyCmd.Flags().Float64Var(&applyFlags.threshold, "confidence_threshold", 0, "override confidence_threshold (default from config)")
	applyCmd.Flags().IntVar(&applyFlags.maxChunks, "max_chunks", 0, "override max_chunks (default from config)")
	applyCmd.Flags().BoolVar(&applyFlags.useAST, "ast", false, "opt into the AST-backed chunk extractor where a grammar is bundled")
	applyCmd.Flags().StringVar(&applyFlags.out, "out", "", "write merged_code here instead of stdout")
	applyCmd.MarkFlagRequired("original")
	applyCmd.MarkFlagRequired("edit")
	applyCmd.MarkFlagRequired("language")
}

func runApply(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	original, err := os.ReadFile(applyFlags.original)
	if err != nil {
		return fmt.Errorf("agent-booster apply: read original: %w", err)
	}
	edit, err := os.ReadFile(applyFlags.edit)
	if err != nil {
		return fmt.Errorf("agent-booster apply: read edit: %w", err)
	}
	lang := language.Parse(applyFlags.lang)

	threshold := cfg.ConfidenceThreshold
	if applyFlags.threshold != 0 {
		threshold = applyFlags.threshold
	}
	maxChunks := cfg.MaxChunks
	if applyFlags.maxChunks != 0 {
		maxChunks = applyFlags.maxChunks
	}

	engine := booster.New(booster.Config{
		PrefilterThreshold: cfg.PrefilterThreshold,
		PrefilterTopK:      cfg.PrefilterTopK,
	})

	req := booster.EditRequest{
		OriginalCode:        string(original),
		EditSnippet:         string(edit),
		Language:            lang,
		ConfidenceThreshold: threshold,
		MaxChunks:           maxChunks,
		UseASTExtractor:     applyFlags.useAST || cfg.UseASTExtractor,
	}

	result, err := engine.ApplyEdit(context.Background(), req)
	if err != nil {
		return fmt.Errorf("agent-booster apply: %w", err)
	}

	if applyFlags.out != "" {
		if err := os.WriteFile(applyFlags.out, []byte(result.MergedCode), 0o644); err != nil {
			return fmt.Errorf("agent-booster apply: write output: %w", err)
		}
	} else {
		fmt.Print(result.MergedCode)
	}

	fmt.Fprintf(os.Stderr, "strategy=%s confidence=%.3f chunks_found=%d syntax_valid=%v\n",
		result.Strategy, result.Confidence, result.ChunksFound, result.SyntaxValid)

	if cfg.History.Enabled {
		if err := recordHistory(cfg.History.Path, lang, req, result); err != nil {
			fmt.Fprintf(os.Stderr, "agent-booster apply: history record failed: %v\n", err)
		}
	}

	return nil
}

func recordHistory(path string, lang language.Language, req booster.EditRequest, result booster.EditResult) error {
	store, err := historystore.Open(path)
	if err != nil {
		return err
	}
	defer store.Close()

	return store.Insert(historystore.Record{
		RequestID:    result.RequestID,
		CreatedAt:    time.Now().UTC(),
		Language:     lang.String(),
		Strategy:     result.Strategy.String(),
		Confidence:   result.Confidence,
		ChunksFound:  result.ChunksFound,
		SyntaxValid:  result.SyntaxValid,
		TemplateID:   result.TemplateID,
		OriginalText: req.OriginalCode,
		EditText:     req.EditSnippet,
		MergedText:   result.MergedCode,
	})
}
