// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package effect

// Pure lifts an already-available value into an Effect.
func Pure[A any](a A) Effect {
	return pureEffect{value: a}
}

// RaiseError produces an Effect that fails immediately with err, subject to
// interception by the nearest enclosing [HandleErrorWith].
func RaiseError(err error) Effect {
	return raiseErrorEffect{err: err}
}

// Lazy wraps a synchronous host computation that may fail. The thunk runs
// exactly once, at the point the run loop reaches this instruction.
func Lazy[A any](f func() (A, error)) Effect {
	return lazyEffect{thunk: func() (Erased, error) {
		return f()
	}}
}

// Defer postpones construction of the next Effect until the run loop
// reaches this point in the chain, useful for effects whose shape depends
// on state only known at that time or to break reference cycles.
func Defer(f func() Effect) Effect {
	return deferEffect{thunk: f}
}

// Map transforms the eventual result of source with a pure function.
func Map[A, B any](source Effect, f func(A) B) Effect {
	return mapEffect{source: source, k: func(v Erased) Erased {
		return f(v.(A))
	}}
}

// FlatMap sequences source into a new Effect chosen from its result.
func FlatMap[A any](source Effect, f func(A) Effect) Effect {
	return flatMapEffect{source: source, k: func(v Erased) Effect {
		return f(v.(A))
	}}
}

// HandleErrorWith installs a recovery handler around source. If source (or
// anything sequenced beneath it that does not have its own closer handler)
// raises, recover is invoked with the error and its result replaces the
// failed computation. Untouched on the success path.
func HandleErrorWith(source Effect, recover func(error) Effect) Effect {
	return handleErrorWithEffect{source: source, recover: recover}
}

// Single wraps a suspending computation surfaced by the host's own native
// one-shot async primitive (a promise, a future, a callback-based API).
// resume must be invoked at most once; later invocations are dropped.
func Single[A any](run func(resume func(A, error))) Effect {
	return singleEffect{run: func(resume func(Erased, error)) {
		run(func(v A, err error) { resume(v, err) })
	}}
}

// Async wraps a suspending computation that is handed the ambient Token so
// it can observe cancellation and register its own teardown. resume must be
// invoked at most once; later invocations are dropped.
func Async[A any](register func(t Token, resume func(A, error))) Effect {
	return asyncEffect{register: func(t Token, resume func(Erased, error)) {
		register(t, func(v A, err error) { resume(v, err) })
	}}
}

// AsyncContinueOn evaluates source after an async hop that permanently
// rebinds the ambient context to ctx.
func AsyncContinueOn(source Effect, ctx *Context) Effect {
	return asyncContinueOnEffect{source: source, ctx: ctx}
}

// AsyncContextSwitch evaluates source under a context derived from the
// current one by modify, via an async hop. If restore is non-nil it is
// consulted once source settles, on either the success or the failure
// path, and its result becomes the new ambient context; restoration runs
// on every exit path from source, including panics converted to errors.
func AsyncContextSwitch(source Effect, modify func(*Context) *Context, restore func(value any, err error, old, current *Context) *Context) Effect {
	return asyncContextSwitchEffect{source: source, modify: modify, restore: restore}
}

// UpdateContext rewrites the ambient context in place at the next safe
// point (an async hop), without ever restoring the previous value.
func UpdateContext(source Effect, modify func(*Context) *Context) Effect {
	return updateContextEffect{source: source, modify: modify}
}

// ContinueOn runs source to completion under the current context, then
// permanently switches the ambient context to ctx before continuing.
func ContinueOn(source Effect, ctx *Context) Effect {
	return continueOnEffect{source: source, ctx: ctx}
}

// ConnectionSwitch evaluates source under a cancellation token derived from
// the current one by modify. Unlike the context variants this never needs
// an async hop: the token can be swapped synchronously. If restore is
// non-nil it is consulted once source settles, on either the success or
// the failure path, and its result becomes the new ambient token.
func ConnectionSwitch(source Effect, modify func(Token) Token, restore func(value any, err error, old, current Token) Token) Effect {
	return connectionSwitchEffect{source: source, modify: modify, restore: restore}
}

// ReadContext returns the ambient context in effect at the point this
// instruction runs. It behaves like a [Single] that resolves immediately
// with the current context, and participates in the same async-boundary
// bookkeeping (saved call stack, single-shot guard, trampoline hop) as any
// other suspension point, so a context switch observed earlier in the
// chain is always the one reported here.
func ReadContext() Effect {
	return readContextEffect{}
}
