package pool

import (
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/anujsb/taskpool/internal/cpu"
	"github.com/anujsb/taskpool/progress"
)

// Option is a functional option for configuring a TaskPool.
type Option func(*config)

type config struct {
	workers     int
	description string
	reporter    progress.Reporter
	logger      *zap.Logger
	rateLimiter *rate.Limiter
	pinWorkers  bool

	// topology overrides hardware detection; zero value means detect.
	topology cpu.Topology
}

// WithWorkers requests a worker count. Zero or negative requests resolve to
// the hardware ceiling, and requests above the ceiling are silently clamped
// to it: a pool is always runnable, never rejected for an out-of-range count.
// The ceiling reserves one SMT group of the host (physical cores minus
// threads-per-core), so a fully loaded pool does not saturate the machine.
func WithWorkers(n int) Option {
	return func(cfg *config) {
		cfg.workers = n
	}
}

// WithDescription sets the label shown next to the progress indicator.
func WithDescription(desc string) Option {
	return func(cfg *config) {
		cfg.description = desc
	}
}

// WithReporter sets the sink that receives per-invocation progress feedback.
// If not specified, progress renders as a bar on stderr.
func WithReporter(r progress.Reporter) Option {
	return func(cfg *config) {
		if r != nil {
			cfg.reporter = r
		}
	}
}

// WithLogger sets the logger that receives one informational line per
// invocation stating serial-vs-parallel mode, job count, and worker count.
// If not specified, the pool logs nothing.
func WithLogger(logger *zap.Logger) Option {
	return func(cfg *config) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}

// WithRateLimit caps how fast items are started across all workers.
// itemsPerSecond specifies the sustained rate and burst the momentary
// allowance. Useful when the work function calls an external service.
// If not specified, items start as fast as workers free up.
func WithRateLimit(itemsPerSecond float64, burst int) Option {
	return func(cfg *config) {
		if itemsPerSecond > 0 && burst > 0 {
			cfg.rateLimiter = rate.NewLimiter(rate.Limit(itemsPerSecond), burst)
		}
	}
}

// WithPinnedWorkers pins each parallel worker's OS thread to a distinct core
// for the duration of an invocation. Helps cache locality for CPU-bound work;
// pointless for I/O-bound work.
func WithPinnedWorkers() Option {
	return func(cfg *config) {
		cfg.pinWorkers = true
	}
}

// withTopology overrides hardware detection. Test seam.
func withTopology(t cpu.Topology) Option {
	return func(cfg *config) {
		cfg.topology = t
	}
}
