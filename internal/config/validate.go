package config

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidThreshold indicates confidence_threshold is outside [0,1].
	ErrInvalidThreshold = errors.New("invalid confidence_threshold")

	// ErrInvalidMaxChunks indicates max_chunks is not positive.
	ErrInvalidMaxChunks = errors.New("invalid max_chunks")

	// ErrInvalidPrefilter indicates a negative prefilter knob.
	ErrInvalidPrefilter = errors.New("invalid prefilter setting")

	// ErrEmptyHistoryPath indicates history.enabled is true with no path.
	ErrEmptyHistoryPath = errors.New("empty history path")
)

// Validate checks that cfg's values are within the ranges
// internal/booster.validateRequest would itself accept, plus the
// CLI-only history constraint. It accumulates every violation instead of
// failing on the first one, matching the teacher's validate.go style.
func Validate(cfg *Config) error {
	var errs []error

	if cfg.ConfidenceThreshold < 0 || cfg.ConfidenceThreshold > 1 {
		errs = append(errs, fmt.Errorf("%w: must be in [0,1], got %f", ErrInvalidThreshold, cfg.ConfidenceThreshold))
	}
	if cfg.MaxChunks < 1 {
		errs = append(errs, fmt.Errorf("%w: must be >= 1, got %d", ErrInvalidMaxChunks, cfg.MaxChunks))
	}
	if cfg.PrefilterThreshold < 0 {
		errs = append(errs, fmt.Errorf("%w: prefilter_threshold cannot be negative, got %d", ErrInvalidPrefilter, cfg.PrefilterThreshold))
	}
	if cfg.PrefilterTopK < 0 {
		errs = append(errs, fmt.Errorf("%w: prefilter_top_k cannot be negative, got %d", ErrInvalidPrefilter, cfg.PrefilterTopK))
	}
	if cfg.History.Enabled && strings.TrimSpace(cfg.History.Path) == "" {
		errs = append(errs, fmt.Errorf("%w: history.path is required when history.enabled is true", ErrEmptyHistoryPath))
	}

	return joinErrors(errs)
}

// joinErrors combines multiple errors into a single error with clear formatting.
func joinErrors(errs []error) error {
	if len(errs) == 0 {
		return nil
	}
	if len(errs) == 1 {
		return errs[0]
	}

	msgs := make([]string, len(errs))
	for i, err := range errs {
		msgs[i] = err.Error()
	}
	return fmt.Errorf("validation failed:\n  - %s", strings.Join(msgs, "\n  - "))
}
