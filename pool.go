// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package effect

import "sync"

// restSlicePool recycles callStack's overflow slice across runs. A run's
// overflow slice is safe to reuse the instant the run reaches outcomeDone:
// nothing outside the run loop ever retains a reference to it, and every
// bind it held has already been consumed by advance.
var restSlicePool = sync.Pool{New: func() any { s := make([]bind, 0, 8); return &s }}

// acquireRestSlice hands a run's callStack a zero-length overflow slice,
// reused from a previously completed run where the pool has one to spare.
func acquireRestSlice() []bind {
	sp := restSlicePool.Get().(*[]bind)
	return (*sp)[:0]
}

// releaseRestSlice clears s and returns it to the pool. Callers must not
// use s again after calling this.
func releaseRestSlice(s []bind) {
	for i := range s {
		s[i] = nil
	}
	s = s[:0]
	restSlicePool.Put(&s)
}
