// Package reporter renders watch-mode status diagnostics as line-oriented
// output with a styled "Watcher" prefix.
package reporter

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/muesli/termenv"
	"go.trai.ch/rove/internal/core/ports"
	"go.trai.ch/rove/internal/ui/output"
	"go.trai.ch/rove/internal/ui/style"
)

var _ ports.WatchReporter = (*Reporter)(nil)

// Reporter implements ports.WatchReporter by writing one line per status
// transition. Lines are serialized by a mutex so diagnostics from two
// restart cycles never interleave.
type Reporter struct {
	mu  sync.Mutex
	w   io.Writer
	out *termenv.Output
}

// New creates a Reporter writing to w, defaulting to stderr.
func New(w io.Writer) *Reporter {
	if w == nil {
		w = os.Stderr
	}
	return &Reporter{
		w:   w,
		out: output.New(w),
	}
}

func (r *Reporter) line(color termenv.Color, msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	badge := r.out.String(style.WatcherBadge).Foreground(termenv.RGBColor(string(style.Cyan))).Bold()
	body := r.out.String(msg).Foreground(color)
	fmt.Fprintln(r.w, badge.String()+" "+body.String())
}

// WatchingPaths reports the active watch roots.
func (r *Reporter) WatchingPaths(paths []string) {
	sorted := make([]string, len(paths))
	copy(sorted, paths)
	sort.Strings(sorted)
	r.line(termenv.RGBColor(string(style.Slate)), "Watching paths: ["+strings.Join(sorted, ", ")+"]")
}

// ProcessStarted reports a run entering execution.
func (r *Reporter) ProcessStarted() {
	r.line(termenv.RGBColor(string(style.Green)), "Process started.")
}

// ProcessFinished reports a successful natural completion.
func (r *Reporter) ProcessFinished() {
	r.line(termenv.RGBColor(string(style.Green)), "Process finished. Restarting on file change...")
}

// ProcessFailed reports a run error. The watch loop continues.
func (r *Reporter) ProcessFailed(err error) {
	r.line(termenv.RGBColor(string(style.Red)), "Process failed. Restarting on file change...")
	if err != nil {
		r.mu.Lock()
		defer r.mu.Unlock()
		fmt.Fprintln(r.w, r.out.String("error: "+err.Error()).Foreground(termenv.RGBColor(string(style.Red))).String())
	}
}

// Restarting reports a change-triggered restart.
func (r *Reporter) Restarting(paths []string) {
	sorted := make([]string, len(paths))
	copy(sorted, paths)
	sort.Strings(sorted)
	r.line(termenv.RGBColor(string(style.Yellow)), "Restarting! File change detected: ["+strings.Join(sorted, ", ")+"]")
}
