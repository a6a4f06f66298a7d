// Package progress defines the feedback channel a task pool reports into
// while it works through a batch, plus a terminal implementation built on
// schollz/progressbar.
package progress

import (
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"
)

// Invocation describes one batch about to run. It is delivered once per
// invocation, before any item completes.
type Invocation struct {
	Description string // label shown next to the indicator
	Total       int    // number of items in the batch
	Workers     int    // effective worker count for this batch
	Parallel    bool   // false when the batch runs on the caller's goroutine
}

// Reporter receives progress feedback for one invocation at a time: a single
// Begin, one Tick per completed item, and a closing End. Calls are sequenced
// by the pool and never arrive concurrently. Implementations must not affect
// the invocation's results or ordering.
type Reporter interface {
	Begin(inv Invocation)
	Tick()
	End()
}

// Discard is a Reporter that ignores all feedback.
var Discard Reporter = discard{}

type discard struct{}

func (discard) Begin(Invocation) {}
func (discard) Tick()            {}
func (discard) End()             {}

// Bar renders invocation progress as a terminal progress bar. A single Bar
// can be reused across sequential invocations; each Begin starts a fresh bar.
type Bar struct {
	out io.Writer
	bar *progressbar.ProgressBar
}

// NewBar returns a Bar writing to out. A nil out writes to stderr.
func NewBar(out io.Writer) *Bar {
	if out == nil {
		out = os.Stderr
	}
	return &Bar{out: out}
}

func (b *Bar) Begin(inv Invocation) {
	b.bar = progressbar.NewOptions(inv.Total,
		progressbar.OptionSetWriter(b.out),
		progressbar.OptionSetDescription(inv.Description),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        color.GreenString("█"),
			SaucerHead:    color.GreenString("█"),
			SaucerPadding: "░",
			BarStart:      "│",
			BarEnd:        "│",
		}),
		progressbar.OptionEnableColorCodes(true),
	)
}

func (b *Bar) Tick() {
	if b.bar != nil {
		_ = b.bar.Add(1)
	}
}

func (b *Bar) End() {
	if b.bar == nil {
		return
	}
	_ = b.bar.Finish()
	b.bar = nil
}
