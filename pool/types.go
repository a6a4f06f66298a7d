package pool

import "context"

// WorkFunc is the unit of work a TaskPool invokes once per input item.
// The call value carries the invocation's shared arguments and options; it
// is identical for every item of an invocation and must be treated as
// read-only. WorkFunc must be safe to call from multiple goroutines.
//
// Type parameters:
//   - T: The type of input item to be processed
//   - R: The type of result produced per item
type WorkFunc[T any, R any] func(ctx context.Context, item T, call Call) (R, error)

// Call carries the extras glued onto every item of one invocation: shared
// positional arguments and keyword-style options. A Call is built on the
// stack of Invoke and discarded with it; it never touches pool state, so
// options from one invocation cannot leak into the next.
type Call struct {
	Args    []any          // shared values appended after each item
	Options map[string]any // invocation-scoped keyword options
}

// Option returns the keyword option stored under key, and whether it was set.
func (c Call) Option(key string) (any, bool) {
	v, ok := c.Options[key]
	return v, ok
}

// indexedItem pairs an input with its position so results can be collected
// in input order regardless of which worker finishes first.
type indexedItem[T any] struct {
	item  T
	index int
}

type indexedResult[R any] struct {
	value R
	index int
}
