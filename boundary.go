// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package effect

// boundary is the run's async re-entry point. It fuses four roles into one
// allocation: the external callback target, the host continuation that
// resumes the run loop, the trampoline hop scheduler, and (implicitly,
// through st) the ambient context holder. A run allocates at most one
// boundary, lazily, the first time it hits a suspension point; every
// subsequent suspension in the same run reuses it, which is why reentry
// accumulates across the boundary's whole lifetime rather than resetting
// per suspension.
type boundary struct {
	st       *loopState
	platform *Platform

	reentry int

	savedFirst bind
	savedRest  []bind

	pushedFinalizer bool

	// guard enforces that at most one of {host callback, cancellation
	// finalizer, trampoline hop} actually resumes the loop for the
	// suspension currently in flight. A fresh guard is installed by every
	// start* method.
	guard *Affine[bool, struct{}]
}

func ensureBoundary(st *loopState) *boundary {
	if st.boundary == nil {
		platform := st.platform
		if platform == nil {
			platform = DefaultPlatform
		}
		st.boundary = &boundary{st: st, platform: platform}
	}
	return st.boundary
}

func (b *boundary) saveStack() {
	b.savedFirst, b.savedRest = b.st.stack.first, b.st.stack.rest
	b.st.stack.first, b.st.stack.rest = nil, nil
}

func (b *boundary) armGuard() {
	b.guard = Once[bool, struct{}](func(struct{}) bool { return true })
}

func (b *boundary) tryEnter() bool {
	_, ok := b.guard.TryResume(struct{}{})
	return ok
}

// startAsync implements start(Async, ...): saves the stack, pushes a
// finalizer onto the token that wakes the boundary with CancellationErr
// should the token be cancelled while the registration is outstanding,
// then hands the token and result callback to the caller's register func.
func (b *boundary) startAsync(e asyncEffect) {
	b.saveStack()
	b.reentry++
	b.armGuard()
	b.pushedFinalizer = true
	b.st.token.Push(Lazy(func() (Erased, error) {
		b.deliverCancellation()
		return nil, nil
	}))
	e.register(b.st.token, b.invokeResult)
}

// startSingle implements start(Single, ...): the host primitive is not
// itself cancellation-aware, so no finalizer is pushed.
func (b *boundary) startSingle(e singleEffect) {
	b.saveStack()
	b.reentry++
	b.armGuard()
	e.run(b.invokeResult)
}

// startAsyncContinueOn implements start(AsyncContinueOn, ...): the ambient
// context is assigned outright, and the run yields to the host scheduler
// once before continuing under it.
func (b *boundary) startAsyncContinueOn(e asyncContinueOnEffect) {
	b.saveStack()
	b.reentry++
	b.armGuard()
	b.scheduleHop(e.ctx, e.source)
}

// startAsyncContextSwitch implements start(AsyncContextSwitch, ...): the
// ambient context is derived from the current one, source is wrapped so
// any restore callback fires on every exit path, and the run yields to the
// host scheduler once before continuing under the new context.
func (b *boundary) startAsyncContextSwitch(e asyncContextSwitchEffect) {
	b.saveStack()
	b.reentry++
	b.armGuard()
	newCtx, source := beginAsyncContextSwitch(b.st, e)
	b.scheduleHop(newCtx, source)
}

// startReadContext resolves immediately with the context in effect at the
// moment this suspension point was reached, via the same hop machinery as
// any other suspension so an earlier context switch is always visible.
func (b *boundary) startReadContext() {
	b.saveStack()
	b.reentry++
	b.armGuard()
	ctx := b.st.ctx
	b.scheduleHop(ctx, pureEffect{value: ctx})
}

func (b *boundary) scheduleHop(ctx *Context, source Effect) {
	b.platform.Trampoline(func() {
		if !b.tryEnter() {
			return
		}
		b.resumeWith(ctx, source)
	})
}

// invokeResult is handed to the host as the async/single result callback.
// Only the first invocation, whether from the host, a racing cancellation,
// or a second call of the same host callback, is honored.
func (b *boundary) invokeResult(v Erased, err error) {
	if !b.tryEnter() {
		return
	}
	var src Effect
	if err != nil {
		src = raiseErrorEffect{err: err}
	} else {
		src = pureEffect{value: v}
	}
	b.resumeWith(b.st.ctx, src)
}

func (b *boundary) deliverCancellation() {
	if !b.tryEnter() {
		return
	}
	// The value fed back is irrelevant: loop's cancellation check fires
	// before this source is ever dispatched, and delivers CancellationErr
	// straight to the callback without consulting any error handler.
	b.resumeWith(b.st.ctx, pureEffect{value: nil})
}

// resumeWith restores the saved call stack, installs ctx and src as the
// run's current state, and re-enters the loop — through one more
// trampoline hop when the boundary's reentry count is a multiple of
// MaxStackDepth, directly otherwise, to keep a long chain of
// synchronous-looking async resumptions from growing the host call stack
// without bound.
func (b *boundary) resumeWith(ctx *Context, src Effect) {
	if b.pushedFinalizer {
		b.st.token.Pop()
		b.pushedFinalizer = false
	}
	st := b.st
	st.stack.first, st.stack.rest = b.savedFirst, b.savedRest
	b.savedFirst, b.savedRest = nil, nil
	st.ctx = ctx
	st.source = src

	if b.platform.MaxStackDepth > 0 && b.reentry%b.platform.MaxStackDepth == 0 {
		b.platform.Trampoline(func() { loop(st) })
		return
	}
	loop(st)
}
