package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/mvp-joe/agent-booster/internal/booster"
	"github.com/mvp-joe/agent-booster/internal/config"
	"github.com/mvp-joe/agent-booster/internal/language"
)

var watchFlags struct {
	dir string
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch a directory for *.edit.json drop files and apply each as it appears",
	Long: `Each dropped file is a serialized EditRequest:
  {"original_code": "...", "edit_snippet": "...", "language": "go"}
watch writes the resulting EditResult alongside it as "<name>.result.json".
This loop is an ambient convenience, not the core: it adds no state the
core's ApplyEdit doesn't already manage per-call.`,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().StringVar(&watchFlags.dir, "dir", ".", "directory to watch for *.edit.json drop files")
}

type dropFile struct {
	OriginalCode        string  `json:"original_code"`
	EditSnippet         string  `json:"edit_snippet"`
	Language            string  `json:"language"`
	ConfidenceThreshold float64 `json:"confidence_threshold"`
	MaxChunks           int     `json:"max_chunks"`
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("agent-booster watch: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(watchFlags.dir); err != nil {
		return fmt.Errorf("agent-booster watch: watch %s: %w", watchFlags.dir, err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	engine := booster.New(booster.Config{
		PrefilterThreshold: cfg.PrefilterThreshold,
		PrefilterTopK:      cfg.PrefilterTopK,
	})

	fmt.Fprintf(os.Stderr, "agent-booster watch: watching %s for *.edit.json\n", watchFlags.dir)

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Create|fsnotify.Write) == 0 {
				continue
			}
			if !strings.HasSuffix(event.Name, ".edit.json") {
				continue
			}
			if err := applyDropFile(ctx, engine, cfg, event.Name); err != nil {
				fmt.Fprintf(os.Stderr, "agent-booster watch: %v\n", err)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(os.Stderr, "agent-booster watch: watcher error: %v\n", err)
		}
	}
}

func applyDropFile(ctx context.Context, engine *booster.Engine, cfg *config.Config, path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	var df dropFile
	if err := json.Unmarshal(raw, &df); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}

	threshold := df.ConfidenceThreshold
	if threshold == 0 {
		threshold = cfg.ConfidenceThreshold
	}
	maxChunks := df.MaxChunks
	if maxChunks == 0 {
		maxChunks = cfg.MaxChunks
	}

	result, err := engine.ApplyEdit(ctx, booster.EditRequest{
		OriginalCode:        df.OriginalCode,
		EditSnippet:         df.EditSnippet,
		Language:            language.Parse(df.Language),
		ConfidenceThreshold: threshold,
		MaxChunks:           maxChunks,
	})
	if err != nil {
		return fmt.Errorf("apply %s: %w", path, err)
	}

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal result for %s: %w", path, err)
	}

	resultPath := strings.TrimSuffix(path, ".edit.json") + ".result.json"
	if err := os.WriteFile(resultPath, out, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", resultPath, err)
	}

	fmt.Fprintf(os.Stderr, "agent-booster watch: %s -> %s (strategy=%s confidence=%.3f)\n",
		filepath.Base(path), filepath.Base(resultPath), result.Strategy, result.Confidence)
	return nil
}
