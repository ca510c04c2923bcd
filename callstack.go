// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package effect

// bind is a call-stack frame: a function from a produced value to the next
// Effect to run. Map and FlatMap instructions both compile down to a bind
// frame; the distinction only matters at construction time.
type bind interface {
	call(v Erased) Effect
}

// errorHandler is a bind frame that additionally knows how to recover from
// a raised error. The run loop walks the stack for the nearest frame
// satisfying this interface when propagating a raiseErrorEffect.
type errorHandler interface {
	bind
	recover(err error) Effect
}

// mapFrame is the bind installed by [Map]: it turns the produced value
// into a new pure result without touching the stack again.
type mapFrame struct {
	f func(Erased) Erased
}

func (m mapFrame) call(v Erased) Effect {
	return pureEffect{value: m.f(v)}
}

// flatMapFrame is the bind installed by [FlatMap].
type flatMapFrame struct {
	f func(Erased) Effect
}

func (fm flatMapFrame) call(v Erased) Effect {
	return fm.f(v)
}

// errorHandlerFrame is installed by [HandleErrorWith]. On the success path
// it is a no-op continuation (the value passes through unchanged); it only
// does work when reached through recover.
type errorHandlerFrame struct {
	recoverFn func(error) Effect
}

func (eh *errorHandlerFrame) call(v Erased) Effect {
	return pureEffect{value: v}
}

func (eh *errorHandlerFrame) recover(err error) Effect {
	return eh.recoverFn(err)
}

// callStack is the interpreter's continuation stack: first holds the most
// recently installed frame so the common one-deep case never touches the
// overflow slice; rest is a plain LIFO slice for everything below it.
type callStack struct {
	first bind
	rest  []bind
}

func (s *callStack) push(b bind) {
	if s.first != nil {
		s.rest = append(s.rest, s.first)
	}
	s.first = b
}

func (s *callStack) pop() (bind, bool) {
	if s.first != nil {
		b := s.first
		s.first = nil
		return b, true
	}
	if n := len(s.rest); n > 0 {
		b := s.rest[n-1]
		s.rest = s.rest[:n-1]
		return b, true
	}
	return nil, false
}

func (s *callStack) isEmpty() bool {
	return s.first == nil && len(s.rest) == 0
}

// findErrorHandler walks the stack from the top, discarding every frame it
// passes, until it finds a frame that is also an errorHandler. Frames above
// and including the handler are removed; frames below remain untouched.
// Reports (nil, false) if no handler exists, in which case the whole stack
// is discarded (the run is about to terminate with the error).
func (s *callStack) findErrorHandler() (errorHandler, bool) {
	if eh, ok := s.first.(errorHandler); ok {
		s.first = nil
		return eh, true
	}
	s.first = nil
	for i := len(s.rest) - 1; i >= 0; i-- {
		if eh, ok := s.rest[i].(errorHandler); ok {
			s.rest = s.rest[:i]
			return eh, true
		}
	}
	s.rest = s.rest[:0]
	return nil, false
}
