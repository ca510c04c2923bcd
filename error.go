// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package effect

import (
	"errors"
	"fmt"
	"runtime"
)

// CancellationErr is the sentinel error delivered to a run's callback when
// its Token is cancelled. It is never recoverable by a [HandleErrorWith]
// installed inside the cancelled region: cancellation is checked before the
// error-handler stack is ever consulted, and bypasses it entirely.
var CancellationErr = errors.New("effect: run cancelled")

// runSafely evaluates f, converting a recovered panic into the Effect
// RaiseError(err) would have produced. Panics originating from the Go
// runtime itself (nil dereference, out-of-bounds index, and the like)
// are not host-level failures and are re-panicked rather than swallowed.
func runSafely(f func() Effect) (result Effect) {
	defer func() {
		if r := recover(); r != nil {
			if isFatal(r) {
				panic(r)
			}
			result = raiseErrorEffect{err: toError(r)}
		}
	}()
	return f()
}

// runLazy evaluates thunk, converting a recovered panic into an error
// return the same way runSafely does for full Effects.
func runLazy(thunk func() (Erased, error)) (v Erased, err error) {
	defer func() {
		if r := recover(); r != nil {
			if isFatal(r) {
				panic(r)
			}
			err = toError(r)
		}
	}()
	return thunk()
}

func isFatal(r any) bool {
	_, ok := r.(runtime.Error)
	return ok
}

func toError(r any) error {
	if err, ok := r.(error); ok {
		return err
	}
	return fmt.Errorf("%v", r)
}
