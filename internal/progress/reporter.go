package progress

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/schollz/progressbar/v3"
)

// Reporter provides feedback while a backend request is in flight.
type Reporter interface {
	Start(label string)
	Finish()
}

// NewReporter returns a TerminalReporter if running in an interactive terminal,
// or a CIReporter if the CI environment variable is set.
func NewReporter(w io.Writer) Reporter {
	if os.Getenv("CI") != "" || os.Getenv("GITHUB_ACTIONS") != "" {
		return &CIReporter{w: w}
	}
	return &TerminalReporter{w: w}
}

// Nop reports nothing.
type Nop struct{}

func (Nop) Start(string) {}
func (Nop) Finish()      {}

// TerminalReporter displays a spinner in the terminal.
type TerminalReporter struct {
	w    io.Writer
	bar  *progressbar.ProgressBar
	done chan struct{}
	wg   sync.WaitGroup
}

func (r *TerminalReporter) Start(label string) {
	r.bar = progressbar.NewOptions(-1,
		progressbar.OptionSetWriter(r.w),
		progressbar.OptionSetDescription(label),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionClearOnFinish(),
	)
	r.done = make(chan struct{})
	r.wg.Add(1)
	go func(bar *progressbar.ProgressBar, done <-chan struct{}) {
		defer r.wg.Done()
		ticker := time.NewTicker(100 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				_ = bar.Add(1)
			}
		}
	}(r.bar, r.done)
}

func (r *TerminalReporter) Finish() {
	if r.bar == nil {
		return
	}
	close(r.done)
	r.wg.Wait()
	_ = r.bar.Finish()
	r.bar = nil
}

// CIReporter prints one line per request, suitable for CI logs.
type CIReporter struct {
	w     io.Writer
	label string
	start time.Time
}

func (r *CIReporter) Start(label string) {
	r.label = label
	r.start = time.Now()
	fmt.Fprintf(r.w, "%s ...\n", label)
}

func (r *CIReporter) Finish() {
	fmt.Fprintf(r.w, "%s done (%s)\n", r.label, time.Since(r.start).Round(time.Millisecond))
}
