// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package effect

import (
	"errors"
	"testing"
)

func runSync[A any](t *testing.T, e Effect) (A, error) {
	t.Helper()
	var v A
	var e2 error
	done := false
	Start(e, nil, func(value any, err error) {
		done = true
		e2 = err
		if err == nil && value != nil {
			v = value.(A)
		}
	})
	if !done {
		t.Fatalf("Start did not invoke callback synchronously for a purely synchronous Effect")
	}
	return v, e2
}

func TestPureCompletes(t *testing.T) {
	v, err := runSync[int](t, Pure(42))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != 42 {
		t.Fatalf("got %d, want 42", v)
	}
}

func TestRaiseErrorPropagates(t *testing.T) {
	want := errors.New("boom")
	_, err := runSync[int](t, RaiseError(want))
	if !errors.Is(err, want) {
		t.Fatalf("got %v, want %v", err, want)
	}
}

func TestFlatMapSequencesInOrder(t *testing.T) {
	var order []int
	e := FlatMap(Lazy(func() (int, error) {
		order = append(order, 1)
		return 1, nil
	}), func(a int) Effect {
		return Lazy(func() (int, error) {
			order = append(order, 2)
			return a + 1, nil
		})
	})
	v, err := runSync[int](t, e)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != 2 {
		t.Fatalf("got %d, want 2", v)
	}
	if len(order) != 2 || order[0] != 1 || order[1] != 2 {
		t.Fatalf("wrong evaluation order: %v", order)
	}
}

func TestMapTransformsResult(t *testing.T) {
	v, err := runSync[string](t, Map(Pure(21), func(n int) string {
		if n != 21 {
			t.Fatalf("got %d, want 21", n)
		}
		return "twenty-one"
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != "twenty-one" {
		t.Fatalf("got %q", v)
	}
}

func TestHandleErrorWithRecoversFromFailure(t *testing.T) {
	boom := errors.New("boom")
	e := HandleErrorWith(RaiseError(boom), func(err error) Effect {
		if !errors.Is(err, boom) {
			t.Fatalf("recover saw %v, want %v", err, boom)
		}
		return Pure(7)
	})
	v, err := runSync[int](t, e)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != 7 {
		t.Fatalf("got %d, want 7", v)
	}
}

func TestHandleErrorWithSkippedOnSuccess(t *testing.T) {
	called := false
	e := HandleErrorWith(Pure(3), func(error) Effect {
		called = true
		return Pure(0)
	})
	v, err := runSync[int](t, e)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != 3 {
		t.Fatalf("got %d, want 3", v)
	}
	if called {
		t.Fatal("recover invoked on the success path")
	}
}

func TestHandleErrorWithFindsNearestHandler(t *testing.T) {
	boom := errors.New("boom")
	inner := HandleErrorWith(RaiseError(boom), func(error) Effect { return Pure(1) })
	outer := HandleErrorWith(inner, func(error) Effect {
		t.Fatal("outer handler should never see an error the inner handler recovered")
		return Pure(2)
	})
	v, err := runSync[int](t, outer)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != 1 {
		t.Fatalf("got %d, want 1", v)
	}
}

func TestUnrecoveredErrorSkipsAllBindsAboveIt(t *testing.T) {
	boom := errors.New("boom")
	deep := FlatMap(RaiseError(boom), func(int) Effect {
		return Pure(999)
	})
	e := Map(deep, func(int) int { return -1 })
	_, err := runSync[int](t, e)
	if !errors.Is(err, boom) {
		t.Fatalf("got %v, want %v", err, boom)
	}
}

func TestDeferBuildsLazily(t *testing.T) {
	built := false
	e := Defer(func() Effect {
		built = true
		return Pure(5)
	})
	if built {
		t.Fatal("Defer built its Effect eagerly")
	}
	v, err := runSync[int](t, e)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !built {
		t.Fatal("Defer never built its Effect")
	}
	if v != 5 {
		t.Fatalf("got %d, want 5", v)
	}
}

func TestLazyPanicBecomesRaiseError(t *testing.T) {
	e := Lazy(func() (int, error) {
		panic("kaboom")
	})
	_, err := runSync[int](t, e)
	if err == nil {
		t.Fatal("expected an error from the recovered panic")
	}
}

func TestDeepFlatMapChainDoesNotOverflowStack(t *testing.T) {
	const n = 200_000
	e := Effect(Pure(0))
	for i := 0; i < n; i++ {
		e = FlatMap(e, func(a int) Effect { return Pure(a + 1) })
	}
	v, err := runSync[int](t, e)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != n {
		t.Fatalf("got %d, want %d", v, n)
	}
}
