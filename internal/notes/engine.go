// Package notes implements the document model and transformation engine for
// markdown bug-notes files. The document is plain text owned by the caller;
// every operation here is a pure function from (document text, parameters)
// to new document text. Sections, issues and bug records are ephemeral views
// recomputed by scanning lines on each call, so a hand-edited file round
// trips without losing unrelated content. "Not found" conditions are silent
// no-ops that return the input unchanged.
package notes

import "time"

// Engine exposes the document transformations. It holds only the immutable
// platform set and a clock; no state survives between calls.
type Engine struct {
	platforms *Platforms
	now       func() time.Time
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock overrides the wall clock used for time normalization.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// NewEngine creates an engine over the given platform set. A nil set falls
// back to DefaultPlatforms.
func NewEngine(platforms *Platforms, opts ...Option) *Engine {
	if platforms == nil {
		platforms = DefaultPlatforms()
	}
	e := &Engine{platforms: platforms, now: time.Now}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Platforms returns the engine's platform set.
func (e *Engine) Platforms() *Platforms { return e.platforms }
