package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gobwas/glob"
	"github.com/spf13/cobra"

	"github.com/mvp-joe/agent-booster/internal/booster"
	"github.com/mvp-joe/agent-booster/internal/language"
)

var batchFlags struct {
	dir   string
	quiet bool
}

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Apply a directory of *.orig.<ext>/*.edit.<ext> file pairs",
	RunE:  runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)
	batchCmd.Flags().StringVar(&batchFlags.dir, "dir", ".", "directory to discover *.orig.<ext>/*.edit.<ext> pairs in")
	batchCmd.Flags().BoolVarP(&batchFlags.quiet, "quiet", "q", false, "suppress the progress bar")
}

// pair is one discovered original/edit file pair, keyed by its shared
// basename stem and inferred language.
type pair struct {
	stem     string
	lang     language.Language
	original string
	edit     string
}

// discoverPairs walks dir for "<stem>.orig.<ext>" files and matches each
// with its "<stem>.edit.<ext>" sibling, using gobwas/glob to recognize the
// ext suffix the way the teacher's discovery.go matches code-file
// patterns.
func discoverPairs(dir string) ([]pair, error) {
	origGlob, err := glob.Compile("*.orig.*", '/')
	if err != nil {
		return nil, err
	}

	var origFiles []string
	err = filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		if origGlob.Match(filepath.Base(path)) {
			origFiles = append(origFiles, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("agent-booster batch: discover files: %w", err)
	}
	sort.Strings(origFiles)

	var pairs []pair
	for _, origPath := range origFiles {
		base := filepath.Base(origPath)
		idx := strings.Index(base, ".orig.")
		if idx < 0 {
			continue
		}
		stem := base[:idx]
		ext := base[idx+len(".orig."):]
		editPath := filepath.Join(filepath.Dir(origPath), stem+".edit."+ext)
		if _, err := os.Stat(editPath); err != nil {
			continue
		}
		pairs = append(pairs, pair{
			stem:     stem,
			lang:     language.Parse(ext),
			original: origPath,
			edit:     editPath,
		})
	}
	return pairs, nil
}

func runBatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	pairs, err := discoverPairs(batchFlags.dir)
	if err != nil {
		return err
	}
	if len(pairs) == 0 {
		fmt.Fprintln(os.Stderr, "agent-booster batch: no *.orig.<ext>/*.edit.<ext> pairs found")
		return nil
	}

	requests := make([]booster.EditRequest, len(pairs))
	for i, p := range pairs {
		original, err := os.ReadFile(p.original)
		if err != nil {
			return fmt.Errorf("agent-booster batch: read %s: %w", p.original, err)
		}
		edit, err := os.ReadFile(p.edit)
		if err != nil {
			return fmt.Errorf("agent-booster batch: read %s: %w", p.edit, err)
		}
		requests[i] = booster.EditRequest{
			RequestID:           p.stem,
			OriginalCode:        string(original),
			EditSnippet:         string(edit),
			Language:            p.lang,
			ConfidenceThreshold: cfg.ConfidenceThreshold,
			MaxChunks:           cfg.MaxChunks,
			UseASTExtractor:     cfg.UseASTExtractor,
		}
	}

	engine := booster.New(booster.Config{
		PrefilterThreshold: cfg.PrefilterThreshold,
		PrefilterTopK:      cfg.PrefilterTopK,
	})

	results, err := engine.Batch(context.Background(), requests)
	if err != nil {
		return fmt.Errorf("agent-booster batch: %w", err)
	}

	progress := newBatchProgress(len(requests), batchFlags.quiet)
	for range results {
		progress.advance()
	}
	progress.finish()

	for i, res := range results {
		if res.Err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", pairs[i].stem, res.Err)
			continue
		}

		out := pairs[i].original + ".merged"
		if err := os.WriteFile(out, []byte(res.MergedCode), 0o644); err != nil {
			return fmt.Errorf("agent-booster batch: write %s: %w", out, err)
		}
		fmt.Printf("%s: strategy=%s confidence=%.3f chunks_found=%d syntax_valid=%v -> %s\n",
			pairs[i].stem, res.Strategy, res.Confidence, res.ChunksFound, res.SyntaxValid, out)

		if cfg.History.Enabled {
			if err := recordHistory(cfg.History.Path, pairs[i].lang, requests[i], res); err != nil {
				fmt.Fprintf(os.Stderr, "agent-booster batch: history record failed: %v\n", err)
			}
		}
	}

	return nil
}
