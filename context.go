// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package effect

// Context is the interpreter's ambient execution context: an opaque,
// immutable key/value bag threaded implicitly alongside every Effect.
// It is unrelated to cancellation, which is carried by [Token] instead;
// the two are swapped independently, by [AsyncContextSwitch]/[ContinueOn]/
// [UpdateContext] and [ConnectionSwitch] respectively.
//
// A nil *Context behaves as an empty one; NewContext and With never return
// nil, so callers only need to nil-check values received from elsewhere.
type Context struct {
	values map[any]any
}

// NewContext returns an empty ambient context.
func NewContext() *Context {
	return &Context{}
}

// Value looks up key, reporting whether it was present.
func (c *Context) Value(key any) (any, bool) {
	if c == nil {
		return nil, false
	}
	v, ok := c.values[key]
	return v, ok
}

// With returns a new Context equal to c but with key bound to value,
// leaving c itself untouched.
func (c *Context) With(key, value any) *Context {
	var n int
	if c != nil {
		n = len(c.values)
	}
	next := make(map[any]any, n+1)
	if c != nil {
		for k, v := range c.values {
			next[k] = v
		}
	}
	next[key] = value
	return &Context{values: next}
}
