// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package effect

// Step is a non-cancellable sibling of the full run loop: it evaluates
// source synchronously, using the same [dispatchOnce] core [loop] itself
// runs on, until it either completes or reaches the first suspension
// point, and returns an Effect representing what remains rather than
// invoking any callback.
//
// A purely synchronous source is returned already resolved: [Pure] on
// success, [RaiseError] on an unhandled failure. A source that suspends
// with nothing left on its call stack is returned unchanged — the caller
// drives the raw suspension itself. A source that suspends with pending
// continuations is returned as a new [Async] that, once driven by the
// caller with a Token and resume callback, transparently finishes running
// the original suspension and everything sequenced after it.
func Step(source Effect) Effect {
	st := &loopState{token: NonCancelable, ctx: NewContext(), source: source}
	for {
		out, value, err := dispatchOnce(st)
		switch out {
		case outcomeContinue:
			continue
		case outcomeDone:
			if err != nil {
				return raiseErrorEffect{err: err}
			}
			return pureEffect{value: value}
		case outcomeAsync:
			return wrapAsyncTail(st)
		}
	}
}

// wrapAsyncTail packages the async instruction st.source is currently
// holding, together with st's saved call stack, into a single Effect the
// caller can drive without needing to know the run loop's internals.
func wrapAsyncTail(st *loopState) Effect {
	pending := st.source
	if st.stack.isEmpty() {
		return pending
	}

	savedFirst, savedRest := st.stack.first, st.stack.rest
	ctx := st.ctx
	return asyncEffect{register: func(t Token, resume func(Erased, error)) {
		nested := &loopState{token: t, ctx: ctx, cb: resume, platform: st.platform}
		nested.stack.first, nested.stack.rest = savedFirst, savedRest
		nested.source = pending
		loop(nested)
	}}
}
