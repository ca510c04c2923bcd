// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package effect

import "fmt"

// loopState is the run loop's mutable state, threaded through dispatchOnce
// and, once an async instruction is reached, handed off to a boundary that
// eventually re-enters loop with the same struct.
type loopState struct {
	source   Effect
	token    Token
	ctx      *Context
	cb       func(Erased, error)
	boundary *boundary
	platform *Platform
	stack    callStack

	// pooledRest reports whether stack.rest was checked out of
	// restSlicePool, and so must be returned to it once the run reaches
	// outcomeDone, rather than left for the garbage collector.
	pooledRest bool
}

// outcome classifies what dispatchOnce did on a single call.
type outcome int

const (
	outcomeContinue outcome = iota
	outcomeDone
	outcomeAsync
)

// dispatchOnce advances st by exactly one synchronous instruction. It is
// shared by [loop] (which hands async instructions to a real boundary) and
// [Step] (which instead reports them back to its caller), following the
// same shared-core, divergent-strategy split the rest of the interpreter
// uses at its suspension boundary.
func dispatchOnce(st *loopState) (outcome, Erased, error) {
	switch e := st.source.(type) {
	case pureEffect:
		st.source = nil
		return advance(st, e.value)

	case raiseErrorEffect:
		eh, ok := st.stack.findErrorHandler()
		if !ok {
			return outcomeDone, nil, e.err
		}
		st.source = runSafely(func() Effect { return eh.recover(e.err) })
		if ehf, ok := eh.(*errorHandlerFrame); ok {
			releaseErrorHandlerFrame(ehf)
		}
		return outcomeContinue, nil, nil

	case lazyEffect:
		v, err := runLazy(e.thunk)
		if err != nil {
			st.source = raiseErrorEffect{err: err}
			return outcomeContinue, nil, nil
		}
		st.source = nil
		return advance(st, v)

	case deferEffect:
		st.source = runSafely(e.thunk)
		return outcomeContinue, nil, nil

	case mapEffect:
		st.stack.push(mapFrame{f: e.k})
		st.source = e.source
		return outcomeContinue, nil, nil

	case flatMapEffect:
		st.stack.push(flatMapFrame{f: e.k})
		st.source = e.source
		return outcomeContinue, nil, nil

	case handleErrorWithEffect:
		st.stack.push(acquireErrorHandlerFrame(e.recover))
		st.source = e.source
		return outcomeContinue, nil, nil

	case continueOnEffect:
		ctx := e.ctx
		st.source = flatMapEffect{source: e.source, k: func(a Erased) Effect {
			return asyncContinueOnEffect{source: pureEffect{value: a}, ctx: ctx}
		}}
		return outcomeContinue, nil, nil

	case updateContextEffect:
		modify := e.modify
		st.source = flatMapEffect{source: e.source, k: func(a Erased) Effect {
			return asyncContextSwitchEffect{source: pureEffect{value: a}, modify: modify}
		}}
		return outcomeContinue, nil, nil

	case connectionSwitchEffect:
		st.source = dispatchConnectionSwitch(st, e)
		return outcomeContinue, nil, nil

	case singleEffect, asyncEffect, asyncContinueOnEffect, asyncContextSwitchEffect, readContextEffect:
		return outcomeAsync, nil, nil

	case nil:
		panic("effect: nil Effect")

	default:
		panic(fmt.Sprintf("effect: unhandled instruction type %T", e))
	}
}

// advance pops the next call-stack frame and feeds it value, or, if the
// stack is empty, reports completion.
func advance(st *loopState, value Erased) (outcome, Erased, error) {
	b, ok := st.stack.pop()
	if !ok {
		return outcomeDone, value, nil
	}
	st.source = runSafely(func() Effect { return b.call(value) })
	if ehf, ok := b.(*errorHandlerFrame); ok {
		releaseErrorHandlerFrame(ehf)
	}
	return outcomeContinue, nil, nil
}

// dispatchConnectionSwitch performs the synchronous token swap for
// ConnectionSwitch and, if a restore callback is present, wraps source so
// the swap is undone on every exit path (success, recovered error, or
// unrecovered error propagating further up).
func dispatchConnectionSwitch(st *loopState, e connectionSwitchEffect) Effect {
	old := st.token
	st.token = e.modify(old)

	src := e.source
	if e.restore != nil {
		restore := e.restore
		call := func(a Erased) Effect {
			return connectionSwitchEffect{source: pureEffect{value: a}, modify: func(current Token) Token {
				return restore(a, nil, old, current)
			}}
		}
		recoverFn := func(err error) Effect {
			return connectionSwitchEffect{source: raiseErrorEffect{err: err}, modify: func(current Token) Token {
				return restore(nil, err, old, current)
			}}
		}
		src = flatMapEffect{source: handleErrorWithEffect{source: src, recover: recoverFn}, k: call}
	}
	return src
}

// beginAsyncContextSwitch applies modify to the context in effect when e was
// dispatched and, if e carries a restore callback, wraps e.source the same
// way dispatchConnectionSwitch wraps its source, but rewritten into another
// AsyncContextSwitch (context restoration always needs an async hop; token
// restoration never does). Shared by the real boundary and Step's wrapper.
func beginAsyncContextSwitch(st *loopState, e asyncContextSwitchEffect) (*Context, Effect) {
	old := st.ctx
	newCtx := e.modify(old)

	src := e.source
	if e.restore != nil {
		restore := e.restore
		call := func(a Erased) Effect {
			return asyncContextSwitchEffect{source: pureEffect{value: a}, modify: func(current *Context) *Context {
				return restore(a, nil, old, current)
			}}
		}
		recoverFn := func(err error) Effect {
			return asyncContextSwitchEffect{source: raiseErrorEffect{err: err}, modify: func(current *Context) *Context {
				return restore(nil, err, old, current)
			}}
		}
		src = flatMapEffect{source: handleErrorWithEffect{source: src, recover: recoverFn}, k: call}
	}
	return newCtx, src
}

// loop drives st to completion, invoking st.cb exactly once: either
// directly, on a purely synchronous run, or from a boundary resumption
// after one or more async hops. Cancellation is checked at the top of
// every iteration and bypasses error-handler recovery entirely.
func loop(st *loopState) {
	for {
		if st.token.IsCanceled() {
			if st.pooledRest {
				releaseRestSlice(st.stack.rest)
				st.stack.rest = nil
				st.pooledRest = false
			}
			st.cb(nil, CancellationErr)
			return
		}

		out, value, err := dispatchOnce(st)
		switch out {
		case outcomeContinue:
			continue
		case outcomeDone:
			if st.pooledRest {
				releaseRestSlice(st.stack.rest)
				st.stack.rest = nil
				st.pooledRest = false
			}
			st.cb(value, err)
			return
		case outcomeAsync:
			dispatchAsync(st)
			return
		}
	}
}

// dispatchAsync hands one of the four suspension points, or the built-in
// context read, to the run's async boundary, allocating it on first use.
func dispatchAsync(st *loopState) {
	switch e := st.source.(type) {
	case singleEffect:
		ensureBoundary(st).startSingle(e)
	case asyncEffect:
		ensureBoundary(st).startAsync(e)
	case asyncContinueOnEffect:
		ensureBoundary(st).startAsyncContinueOn(e)
	case asyncContextSwitchEffect:
		ensureBoundary(st).startAsyncContextSwitch(e)
	case readContextEffect:
		ensureBoundary(st).startReadContext()
	default:
		panic(fmt.Sprintf("effect: dispatchAsync: unexpected instruction type %T", e))
	}
}
