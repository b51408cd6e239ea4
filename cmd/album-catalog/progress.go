package main

import (
	"fmt"
	"io"
	"sync"

	"github.com/schollz/progressbar/v3"

	"github.com/handiism/album-catalog/internal/logging"
	"github.com/handiism/album-catalog/internal/reconcile"
)

// progressReporter prints manager events and, on a terminal, draws a scan
// progress bar on the error stream.
type progressReporter struct {
	out        io.Writer
	barOut     io.Writer
	verbose    bool
	barEnabled bool

	manager *reconcile.Manager
	bar     *progressbar.ProgressBar
	mu      sync.Mutex
}

func newProgressReporter(out, barOut io.Writer, verbose, bar bool) *progressReporter {
	return &progressReporter{
		out:        out,
		barOut:     barOut,
		verbose:    verbose,
		barEnabled: bar && logging.IsTerminal(barOut),
	}
}

func (r *progressReporter) track(manager *reconcile.Manager) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.manager = manager
}

func (r *progressReporter) event(event reconcile.ProgressEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.updateBar()
	if event.Level == reconcile.LevelVerbose && !r.verbose {
		return
	}

	if r.bar != nil {
		_ = r.bar.Clear()
	}
	fmt.Fprintln(r.out, prefix(event.Level)+event.Message)
}

func (r *progressReporter) updateBar() {
	if !r.barEnabled || r.manager == nil {
		return
	}
	scanned, total, _ := r.manager.GetProgress()
	if total == 0 {
		return
	}
	if r.bar == nil {
		r.bar = progressbar.NewOptions(int(total),
			progressbar.OptionSetWriter(r.barOut),
			progressbar.OptionSetDescription("Scanning albums"),
			progressbar.OptionShowCount(),
			progressbar.OptionSetWidth(30),
			progressbar.OptionClearOnFinish(),
		)
	}
	_ = r.bar.Set(int(scanned))
}

// finish removes the bar. The next scan, if any, starts a new one.
func (r *progressReporter) finish() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.bar != nil {
		_ = r.bar.Finish()
		r.bar = nil
	}
	r.barEnabled = false
}

func prefix(level reconcile.ProgressLevel) string {
	switch level {
	case reconcile.LevelError:
		return "❌ "
	case reconcile.LevelWarning:
		return "⚠️  "
	case reconcile.LevelSuccess:
		return "✅ "
	case reconcile.LevelInfo:
		return "ℹ️  "
	default:
		return "   "
	}
}
