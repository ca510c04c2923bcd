// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package effect

import "sync"

// Token is the interpreter's cooperative cancellation handle. It is checked
// at the top of every run-loop iteration; once cancelled it never
// un-cancels. Finalizers pushed onto it run, most-recently-pushed first,
// exactly once, when Cancel first fires.
type Token interface {
	// IsCanceled reports whether Cancel has ever been called.
	IsCanceled() bool

	// Cancel marks the token cancelled and drains its finalizer stack in
	// LIFO order. Idempotent: only the first call has any effect.
	Cancel()

	// Push registers a finalizer Effect to run, in LIFO order, the moment
	// the token is cancelled. If already cancelled, it never runs.
	Push(finalizer Effect)

	// Pop removes the most recently pushed finalizer without running it,
	// for scoped finalizer retraction once it is no longer needed.
	Pop()
}

// atomicToken is the standard cancellable Token.
type atomicToken struct {
	mu         sync.Mutex
	canceled   bool
	finalizers []Effect
}

// NewToken returns a fresh, uncancelled Token.
func NewToken() Token {
	return &atomicToken{}
}

func (t *atomicToken) IsCanceled() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.canceled
}

func (t *atomicToken) Cancel() {
	t.mu.Lock()
	if t.canceled {
		t.mu.Unlock()
		return
	}
	t.canceled = true
	fins := t.finalizers
	t.finalizers = nil
	t.mu.Unlock()

	for i := len(fins) - 1; i >= 0; i-- {
		runFinalizer(fins[i])
	}
}

func (t *atomicToken) Push(finalizer Effect) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.canceled {
		return
	}
	t.finalizers = append(t.finalizers, finalizer)
}

func (t *atomicToken) Pop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if n := len(t.finalizers); n > 0 {
		t.finalizers = t.finalizers[:n-1]
	}
}

// nonCancelableToken is a Token that can never be cancelled; Push and Pop
// are no-ops since no finalizer registered against it could ever run.
type nonCancelableToken struct{}

func (nonCancelableToken) IsCanceled() bool  { return false }
func (nonCancelableToken) Cancel()           {}
func (nonCancelableToken) Push(Effect)       {}
func (nonCancelableToken) Pop()              {}

// NonCancelable is the Token used by [Start] and [Step]: it never observes
// a cancellation request.
var NonCancelable Token = nonCancelableToken{}

// runFinalizer drives a finalizer Effect to completion, discarding its
// result. Finalizers are Effect[unit] values, so they are run through the
// same interpreter as any other computation rather than special-cased.
func runFinalizer(e Effect) {
	Start(e, NewContext(), func(Erased, error) {})
}
