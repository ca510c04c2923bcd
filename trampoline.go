// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package effect

import "sync"

// defaultMaxStackDepth bounds how many synchronous async-boundary
// resumptions accumulate before a run forces itself through a trampoline
// hop, so a fast producer feeding Async/Single results back-to-back cannot
// grow the host call stack without bound.
const defaultMaxStackDepth = 127

// Platform bundles the two host-scheduler primitives the interpreter needs
// beyond the pure ADT: a depth threshold for the async-boundary re-entry
// count, and a trampoline to hop work onto instead of recursing further.
// A single Platform may be shared by many concurrent runs.
type Platform struct {
	// MaxStackDepth is the reentry interval of the async boundary: each
	// time its reentry count reaches a multiple of MaxStackDepth, it
	// submits that resumption to Trampoline instead of calling loop
	// directly. Zero or negative disables the threshold, resuming
	// synchronously forever (not recommended outside tests).
	MaxStackDepth int

	trampoline trampoline
}

// PlatformOption configures a Platform built by [NewPlatform].
type PlatformOption func(*Platform)

// WithMaxStackDepth overrides the default MaxStackDepth threshold.
func WithMaxStackDepth(n int) PlatformOption {
	return func(p *Platform) { p.MaxStackDepth = n }
}

// NewPlatform returns a Platform with its own trampoline queue and the
// default stack-depth threshold, unless overridden by opts.
func NewPlatform(opts ...PlatformOption) *Platform {
	p := &Platform{MaxStackDepth: defaultMaxStackDepth}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Trampoline submits f to run on the platform's single-worker FIFO queue,
// asynchronously with respect to the caller.
func (p *Platform) Trampoline(f func()) {
	p.trampoline.submit(f)
}

// DefaultPlatform is the Platform used by [Start], [StartCancelable], and
// [SuspendRun] when no other Platform has been supplied. Callers that need
// a different MaxStackDepth, or full isolation of the trampoline worker
// between subsystems, should build their own with [NewPlatform] and drive
// runs through [StartOn]/[StartCancelableOn] instead.
var DefaultPlatform = NewPlatform()

// trampoline is a single-worker FIFO task queue: a minimal stand-in for
// the host scheduler hop that a language with native coroutines would use
// to yield without recursing. Exactly one goroutine drains it at a time;
// it starts on first submission and exits once drained, so an idle
// Platform holds no goroutine.
type trampoline struct {
	mu      sync.Mutex
	tasks   []func()
	running bool
}

func (t *trampoline) submit(f func()) {
	t.mu.Lock()
	t.tasks = append(t.tasks, f)
	if t.running {
		t.mu.Unlock()
		return
	}
	t.running = true
	t.mu.Unlock()
	go t.drain()
}

func (t *trampoline) drain() {
	for {
		t.mu.Lock()
		if len(t.tasks) == 0 {
			t.running = false
			t.mu.Unlock()
			return
		}
		f := t.tasks[0]
		t.tasks[0] = nil
		t.tasks = t.tasks[1:]
		t.mu.Unlock()
		f()
	}
}

// ArrayStack is a generic LIFO stack backed by a slice, offered for stack
// discipline over a homogeneous element type. The interpreter itself does
// not use it: the call stack and the token's finalizer list are plain
// slices of their own.
type ArrayStack[T any] struct {
	items []T
}

// Push adds v to the top of the stack.
func (s *ArrayStack[T]) Push(v T) {
	s.items = append(s.items, v)
}

// Pop removes and returns the top of the stack, or (zero, false) if empty.
func (s *ArrayStack[T]) Pop() (T, bool) {
	n := len(s.items)
	if n == 0 {
		var zero T
		return zero, false
	}
	v := s.items[n-1]
	var zero T
	s.items[n-1] = zero
	s.items = s.items[:n-1]
	return v, true
}

// Peek returns the top of the stack without removing it.
func (s *ArrayStack[T]) Peek() (T, bool) {
	n := len(s.items)
	if n == 0 {
		var zero T
		return zero, false
	}
	return s.items[n-1], true
}

// IsEmpty reports whether the stack has no elements.
func (s *ArrayStack[T]) IsEmpty() bool {
	return len(s.items) == 0
}

// Len reports the number of elements on the stack.
func (s *ArrayStack[T]) Len() int {
	return len(s.items)
}
