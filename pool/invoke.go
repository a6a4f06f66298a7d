package pool

import "errors"

// ErrTotalRequired is returned by InvokeSeq when no item total was supplied.
// A sequence has no length to query, and the serial-vs-parallel decision and
// the progress display both need one, so the invocation fails before any
// work starts.
var ErrTotalRequired = errors.New("taskpool: item total required for unsized input")

// InvokeOption configures a single invocation. Invocations are self-contained:
// nothing set here survives past the Invoke call it was passed to.
type InvokeOption func(*invokeConfig)

type invokeConfig struct {
	args     []any
	options  map[string]any
	total    int
	totalSet bool
}

// WithArgs sets shared positional arguments appended after every item of
// this invocation. Every call of the work function sees the same values;
// workers must treat them as read-only.
func WithArgs(args ...any) InvokeOption {
	return func(cfg *invokeConfig) {
		cfg.args = args
	}
}

// WithCallOption sets one keyword option for this invocation. The work
// function reads it through Call.Option.
func WithCallOption(key string, value any) InvokeOption {
	return func(cfg *invokeConfig) {
		if cfg.options == nil {
			cfg.options = make(map[string]any)
		}
		cfg.options[key] = value
	}
}

// WithCallOptions merges a set of keyword options for this invocation.
func WithCallOptions(options map[string]any) InvokeOption {
	return func(cfg *invokeConfig) {
		if len(options) == 0 {
			return
		}
		if cfg.options == nil {
			cfg.options = make(map[string]any, len(options))
		}
		for k, v := range options {
			cfg.options[k] = v
		}
	}
}

// WithTotal sets the item count for this invocation. For slice inputs it
// overrides the displayed total; for sequence inputs it is mandatory.
func WithTotal(total int) InvokeOption {
	return func(cfg *invokeConfig) {
		cfg.total = total
		cfg.totalSet = true
	}
}

func newInvokeConfig(opts []InvokeOption) invokeConfig {
	var cfg invokeConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}
