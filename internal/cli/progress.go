package cli

import (
	"fmt"
	"time"

	"github.com/schollz/progressbar/v3"
)

// batchProgress wraps a schollz/progressbar bar for the "batch" command,
// grounded on the teacher's progress.go bar-option set (OptionThrottle,
// OptionShowCount, OptionShowIts, OptionOnCompletion).
type batchProgress struct {
	quiet bool
	bar   *progressbar.ProgressBar
}

func newBatchProgress(total int, quiet bool) *batchProgress {
	p := &batchProgress{quiet: quiet}
	if quiet {
		return p
	}
	p.bar = progressbar.NewOptions(total,
		progressbar.OptionSetDescription("Applying edits"),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("edits/s"),
		progressbar.OptionThrottle(65*time.Millisecond),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionOnCompletion(func() { fmt.Println() }),
	)
	return p
}

func (p *batchProgress) advance() {
	if p.bar != nil {
		p.bar.Add(1)
	}
}

func (p *batchProgress) finish() {
	if p.bar != nil {
		p.bar.Finish()
	}
}
