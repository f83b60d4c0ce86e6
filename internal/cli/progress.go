package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/agusespa/classweave/internal/types"
	"github.com/agusespa/classweave/pkg/spinner"
)

// progressReporter shows a spinner while files are discovered and a progress
// bar while they are extracted.
type progressReporter struct {
	w       io.Writer
	quiet   bool
	spinner *spinner.Spinner
	bar     *progressbar.ProgressBar
	failed  int
}

func newProgressReporter(w io.Writer, quiet bool) *progressReporter {
	return &progressReporter{w: w, quiet: quiet}
}

func (p *progressReporter) OnDiscoveryStart(root string) {
	if p.quiet {
		return
	}
	p.spinner = spinner.New(p.w, fmt.Sprintf("Discovering source files in %s", root))
	p.spinner.Start()
}

func (p *progressReporter) OnDiscovered(total int) {
	if p.quiet {
		return
	}
	p.stop()
	if total == 0 {
		return
	}

	p.bar = progressbar.NewOptions(total,
		progressbar.OptionSetWriter(p.w),
		progressbar.OptionSetDescription("Extracting"),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("files/s"),
		progressbar.OptionThrottle(65*time.Millisecond),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprintln(p.w)
		}),
	)
}

// OnFile may be called from several workers; the bar serializes itself.
func (p *progressReporter) OnFile(result types.FileResult) {
	if p.bar != nil {
		p.bar.Add(1)
	}
}

func (p *progressReporter) stop() {
	if p.spinner != nil {
		p.spinner.Stop()
		p.spinner = nil
	}
	if p.bar != nil {
		p.bar.Finish()
		p.bar = nil
	}
}

func (p *progressReporter) Finish(results []types.FileResult) {
	p.stop()

	p.failed = 0
	for _, r := range results {
		if r.Failed() {
			p.failed++
		}
	}
	if !p.quiet {
		fmt.Fprintf(p.w, "Extracted %d files (%d failed)\n", len(results)-p.failed, p.failed)
	}
}
