// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package effect

import "sync"

// errorHandlerFramePool recycles errorHandlerFrame allocations. A frame's
// lifetime is single-use and short: pushed by dispatchOnce when a
// HandleErrorWith instruction is dispatched, and consumed exactly once,
// either by advance (success) or findErrorHandler (failure), after which
// nothing retains a pointer to it.
var errorHandlerFramePool = sync.Pool{New: func() any { return new(errorHandlerFrame) }}

// acquireErrorHandlerFrame returns a pooled frame with recoverFn set to fn.
func acquireErrorHandlerFrame(fn func(error) Effect) *errorHandlerFrame {
	f := errorHandlerFramePool.Get().(*errorHandlerFrame)
	f.recoverFn = fn
	return f
}

// releaseErrorHandlerFrame clears f and returns it to the pool. Callers
// must not use f again after calling this.
func releaseErrorHandlerFrame(f *errorHandlerFrame) {
	f.recoverFn = nil
	errorHandlerFramePool.Put(f)
}
