// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package effect

// Erased represents a type-erased value flowing through the interpreter.
// The interpreter dispatches on a closed set of instruction shapes, not on
// the payload type, so all payloads are carried as Erased and recovered via
// type assertions at the point a typed constructor or continuation needs them.
type Erased = any

// Effect is the closed instruction set the run loop dispatches on.
// It is a marker interface: dispatch always uses a type switch over the
// concrete variant, never a virtual call through Effect itself.
type Effect interface {
	effect() // unexported marker method; closes the set to this package
}

// pureEffect carries a value that is already available.
type pureEffect struct {
	value Erased
}

func (pureEffect) effect() {}

// raiseErrorEffect signals a failure that propagates to the nearest
// error handler frame, or to the run's callback if none exists.
type raiseErrorEffect struct {
	err error
}

func (raiseErrorEffect) effect() {}

// lazyEffect wraps a synchronous, possibly failing, host computation.
type lazyEffect struct {
	thunk func() (Erased, error)
}

func (lazyEffect) effect() {}

// deferEffect wraps construction of the next instruction, deferring it
// until the run loop actually reaches this point in the chain.
type deferEffect struct {
	thunk func() Effect
}

func (deferEffect) effect() {}

// mapEffect transforms the result of source with a pure function.
type mapEffect struct {
	source Effect
	k      func(Erased) Erased
}

func (mapEffect) effect() {}

// flatMapEffect sequences source into a new Effect chosen from its result.
type flatMapEffect struct {
	source Effect
	k      func(Erased) Effect
}

func (flatMapEffect) effect() {}

// handleErrorWithEffect installs an error handler around source. The
// handler intercepts a raiseErrorEffect that would otherwise reach the
// nearest enclosing handler (or the run's callback) and produces a
// replacement Effect to continue with.
type handleErrorWithEffect struct {
	source  Effect
	recover func(error) Effect
}

func (handleErrorWithEffect) effect() {}

// singleEffect wraps a host-native one-shot async primitive: the callback
// carries no cancellation token because the host primitive is not itself
// interruptible through this interpreter's Token.
type singleEffect struct {
	run func(resume func(Erased, error))
}

func (singleEffect) effect() {}

// asyncEffect wraps a suspending computation that receives the ambient
// Token so it can register its own cancellation-aware teardown.
type asyncEffect struct {
	register func(t Token, resume func(Erased, error))
}

func (asyncEffect) effect() {}

// asyncContinueOnEffect evaluates source after an async hop that rebinds
// the ambient context to ctx for the remainder of the run.
type asyncContinueOnEffect struct {
	source Effect
	ctx    *Context
}

func (asyncContinueOnEffect) effect() {}

// asyncContextSwitchEffect rebinds the ambient context for the duration of
// source via an async hop, optionally restoring (or otherwise reacting) via
// restore once source completes, whether by success or failure.
type asyncContextSwitchEffect struct {
	source  Effect
	modify  func(*Context) *Context
	restore func(value Erased, err error, old, current *Context) *Context
}

func (asyncContextSwitchEffect) effect() {}

// updateContextEffect rewrites the ambient context in place at the next
// safe point, without ever restoring it.
type updateContextEffect struct {
	source Effect
	modify func(*Context) *Context
}

func (updateContextEffect) effect() {}

// continueOnEffect runs source under the current context, then permanently
// switches the ambient context to ctx before continuing.
type continueOnEffect struct {
	source Effect
	ctx    *Context
}

func (continueOnEffect) effect() {}

// readContextEffect resolves with the ambient context in effect at the
// point the run loop reaches it.
type readContextEffect struct{}

func (readContextEffect) effect() {}

// connectionSwitchEffect swaps the ambient cancellation token for the
// duration of source, synchronously (no async hop is needed to change a
// token), optionally restoring via restore on completion or failure.
type connectionSwitchEffect struct {
	source  Effect
	modify  func(Token) Token
	restore func(value Erased, err error, old, current Token) Token
}

func (connectionSwitchEffect) effect() {}
