// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package effect

import "testing"

func observe(t *testing.T, e Effect) (any, error) {
	t.Helper()
	var v any
	var err error
	Start(e, nil, func(value any, e2 error) {
		v, err = value, e2
	})
	return v, err
}

func TestFlatMapLeftIdentity(t *testing.T) {
	f := func(a int) Effect { return Pure(a * 2) }
	lhs, lerr := observe(t, FlatMap(Pure(21), f))
	rhs, rerr := observe(t, f(21))
	if lerr != nil || rerr != nil {
		t.Fatalf("unexpected errors: %v, %v", lerr, rerr)
	}
	if lhs != rhs {
		t.Fatalf("left identity violated: %v != %v", lhs, rhs)
	}
}

func TestFlatMapRightIdentity(t *testing.T) {
	m := Pure(7)
	lhs, lerr := observe(t, FlatMap(m, func(a int) Effect { return Pure(a) }))
	rhs, rerr := observe(t, m)
	if lerr != nil || rerr != nil {
		t.Fatalf("unexpected errors: %v, %v", lerr, rerr)
	}
	if lhs != rhs {
		t.Fatalf("right identity violated: %v != %v", lhs, rhs)
	}
}

func TestFlatMapAssociativity(t *testing.T) {
	m := Pure(3)
	f := func(a int) Effect { return Pure(a + 1) }
	g := func(a int) Effect { return Pure(a * 10) }

	lhs, lerr := observe(t, FlatMap(FlatMap(m, f), g))
	rhs, rerr := observe(t, FlatMap(m, func(a int) Effect {
		return FlatMap(f(a), g)
	}))
	if lerr != nil || rerr != nil {
		t.Fatalf("unexpected errors: %v, %v", lerr, rerr)
	}
	if lhs != rhs {
		t.Fatalf("associativity violated: %v != %v", lhs, rhs)
	}
}

func TestMapIsFlatMapWithPure(t *testing.T) {
	f := func(a int) int { return a * a }
	lhs, lerr := observe(t, Map(Pure(6), f))
	rhs, rerr := observe(t, FlatMap(Pure(6), func(a int) Effect { return Pure(f(a)) }))
	if lerr != nil || rerr != nil {
		t.Fatalf("unexpected errors: %v, %v", lerr, rerr)
	}
	if lhs != rhs {
		t.Fatalf("Map/FlatMap equivalence violated: %v != %v", lhs, rhs)
	}
}

func TestHandleErrorWithLeavesSuccessUntouched(t *testing.T) {
	m := Pure(4)
	lhs, lerr := observe(t, HandleErrorWith(m, func(error) Effect { return Pure(-1) }))
	rhs, rerr := observe(t, m)
	if lerr != nil || rerr != nil {
		t.Fatalf("unexpected errors: %v, %v", lerr, rerr)
	}
	if lhs != rhs {
		t.Fatalf("HandleErrorWith altered a successful computation: %v != %v", lhs, rhs)
	}
}
