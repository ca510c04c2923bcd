// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package effect

import (
	"errors"
	"testing"
)

func TestSuspendRunReturnsDirectly(t *testing.T) {
	v, err := SuspendRun[int](Pure(11))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != 11 {
		t.Fatalf("got %d, want 11", v)
	}
}

func TestSuspendRunPropagatesError(t *testing.T) {
	boom := errors.New("boom")
	_, err := SuspendRun[int](RaiseError(boom))
	if !errors.Is(err, boom) {
		t.Fatalf("got %v, want %v", err, boom)
	}
}

func TestSuspendRunAcrossAsyncBoundary(t *testing.T) {
	e := Async[string](func(tok Token, resume func(string, error)) {
		go resume("done", nil)
	})
	v, err := SuspendRun[string](e)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != "done" {
		t.Fatalf("got %q, want %q", v, "done")
	}
}

func TestStartOnUsesSuppliedPlatform(t *testing.T) {
	p := NewPlatform(WithMaxStackDepth(2))
	ch := make(chan asyncResult, 1)
	StartOn(p, Pure(1), nil, func(v any, err error) {
		ch <- asyncResult{v: v, err: err}
	})
	r := <-ch
	if r.err != nil {
		t.Fatalf("unexpected error: %v", r.err)
	}
	if r.v != 1 {
		t.Fatalf("got %v, want 1", r.v)
	}
}

func TestStartOnNilPlatformFallsBackToDefault(t *testing.T) {
	ch := make(chan asyncResult, 1)
	StartOn(nil, Pure(2), nil, func(v any, err error) {
		ch <- asyncResult{v: v, err: err}
	})
	r := <-ch
	if r.err != nil {
		t.Fatalf("unexpected error: %v", r.err)
	}
	if r.v != 2 {
		t.Fatalf("got %v, want 2", r.v)
	}
}
