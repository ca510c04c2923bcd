// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package effect

import (
	"errors"
	"testing"
)

type customErr struct{ msg string }

func (e *customErr) Error() string { return e.msg }

func TestRunSafelyRecoversErrorPanic(t *testing.T) {
	want := &customErr{msg: "boom"}
	result := runSafely(func() Effect { panic(want) })
	r, ok := result.(raiseErrorEffect)
	if !ok {
		t.Fatalf("got %T, want raiseErrorEffect", result)
	}
	if !errors.Is(r.err, want) {
		t.Fatalf("got %v, want %v", r.err, want)
	}
}

func TestRunSafelyRecoversNonErrorPanic(t *testing.T) {
	result := runSafely(func() Effect { panic("plain string") })
	r, ok := result.(raiseErrorEffect)
	if !ok {
		t.Fatalf("got %T, want raiseErrorEffect", result)
	}
	if r.err.Error() != "plain string" {
		t.Fatalf("got %q", r.err.Error())
	}
}

func TestRunSafelyRepanicsOnRuntimeError(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected the runtime panic to propagate")
		}
	}()
	runSafely(func() Effect {
		var s []int
		return Pure(s[3])
	})
}

func TestRunSafelyPassesThroughWithoutPanic(t *testing.T) {
	result := runSafely(func() Effect { return Pure(1) })
	p, ok := result.(pureEffect)
	if !ok || p.value != 1 {
		t.Fatalf("got %#v", result)
	}
}

func TestRunLazyRecoversPanic(t *testing.T) {
	_, err := runLazy(func() (Erased, error) { panic("kaboom") })
	if err == nil {
		t.Fatal("expected an error")
	}
}

func TestCancellationErrIsASentinel(t *testing.T) {
	wrapped := errors.New("wrapping: " + CancellationErr.Error())
	if errors.Is(wrapped, CancellationErr) {
		t.Fatal("plain wrapping via string concatenation should not satisfy errors.Is")
	}
}
