// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package effect

// Start runs source to completion under a non-cancellable [Token], invoking
// cb exactly once with either its result or the error that terminated it.
// ctx becomes the initial ambient context; a nil ctx is treated as
// [NewContext]'s empty value.
func Start(source Effect, ctx *Context, cb func(value any, err error)) {
	StartOn(DefaultPlatform, source, ctx, cb)
}

// StartCancelable is [Start] against an explicit, cancellable Token.
func StartCancelable(source Effect, token Token, ctx *Context, cb func(value any, err error)) {
	StartCancelableOn(DefaultPlatform, source, token, ctx, cb)
}

// StartOn is [Start] against a caller-supplied Platform, for callers that
// need their own trampoline worker or a non-default MaxStackDepth.
func StartOn(platform *Platform, source Effect, ctx *Context, cb func(value any, err error)) {
	StartCancelableOn(platform, source, NonCancelable, ctx, cb)
}

// StartCancelableOn is [StartCancelable] against a caller-supplied Platform.
func StartCancelableOn(platform *Platform, source Effect, token Token, ctx *Context, cb func(value any, err error)) {
	if ctx == nil {
		ctx = NewContext()
	}
	if platform == nil {
		platform = DefaultPlatform
	}
	st := &loopState{source: source, token: token, ctx: ctx, cb: cb, platform: platform}
	st.stack.rest = acquireRestSlice()
	st.pooledRest = true
	loop(st)
}

// SuspendRun bridges into a suspended host context: it wraps [Start] so a
// caller that is itself running inside a suspending host primitive (a
// goroutine parked on a channel receive, in this Go rendition) gets a
// direct return instead of a callback. The run is non-cancellable; use
// [StartCancelable] directly for a cancellable run whose result you still
// want to observe synchronously.
func SuspendRun[A any](source Effect) (A, error) {
	type outcome struct {
		v   any
		err error
	}
	ch := make(chan outcome, 1)
	Start(source, NewContext(), func(v any, err error) {
		ch <- outcome{v: v, err: err}
	})
	o := <-ch
	if o.err != nil {
		var zero A
		return zero, o.err
	}
	if o.v == nil {
		var zero A
		return zero, nil
	}
	return o.v.(A), nil
}
