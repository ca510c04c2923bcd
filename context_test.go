// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package effect

import "testing"

func TestContextValueOnNilIsAbsent(t *testing.T) {
	var c *Context
	if _, ok := c.Value("k"); ok {
		t.Fatal("nil Context should report every key absent")
	}
}

func TestContextWithIsCopyOnWrite(t *testing.T) {
	base := NewContext()
	next := base.With("k", 1)

	if _, ok := base.Value("k"); ok {
		t.Fatal("With must not mutate the receiver")
	}
	v, ok := next.Value("k")
	if !ok || v != 1 {
		t.Fatalf("got (%v, %v), want (1, true)", v, ok)
	}
}

func TestContextWithOverridesAndPreservesOtherKeys(t *testing.T) {
	c := NewContext().With("a", 1).With("b", 2)
	c2 := c.With("a", 99)

	if v, _ := c.Value("a"); v != 1 {
		t.Fatal("With must not mutate the receiver's own value")
	}
	if v, _ := c2.Value("a"); v != 99 {
		t.Fatalf("got %v, want 99", v)
	}
	if v, _ := c2.Value("b"); v != 2 {
		t.Fatalf("unrelated key b lost across With: got %v", v)
	}
}

func TestContextWithOnNilReceiver(t *testing.T) {
	var c *Context
	next := c.With("k", "v")
	v, ok := next.Value("k")
	if !ok || v != "v" {
		t.Fatalf("got (%v, %v), want (v, true)", v, ok)
	}
}
