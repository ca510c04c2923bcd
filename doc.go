// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package effect provides a trampolined effect interpreter: a closed
// algebraic data type of instructions, a stack-safe run loop that evaluates
// it, and an async boundary that lets a handful of suspension points drive
// arbitrarily long chains of host callbacks without growing the goroutine
// stack.
//
// # Design Philosophy
//
// effect provides:
//   - A single closed [Effect] sum type instead of an open, extensible
//     frame chain — every instruction the interpreter understands is
//     enumerable, so dispatch is one type switch, not a virtual call
//   - An iterative, trampolined run loop: binds nest arbitrarily deep
//     without consuming host stack
//   - A two-part call stack (a direct top frame plus an overflow slice) so
//     the common one-deep case never touches a slice
//   - One async boundary fusing the external callback target, the host
//     continuation, the trampoline hop scheduler, and the ambient context
//     holder into a single allocation per run
//
// # Core Operations
//
// Minimal constructors:
//
//   - [Pure]: Lift a pure value into an Effect
//   - [RaiseError]: Fail with an error
//   - [Lazy]: Run a synchronous, possibly failing thunk
//   - [Defer]: Build the next Effect lazily, on demand
//
// Sequencing:
//
//   - [Map]: Transform a produced value
//   - [FlatMap]: Sequence, letting the produced value choose what runs next
//   - [HandleErrorWith]: Recover from a raised error
//
// # Suspension
//
// [Single] and [Async] are the two host-callback suspension points:
// Single's host primitive cannot observe cancellation, Async's can and is
// given the run's [Token] so it may register its own finalizer.
//
//   - [Single]: Suspend until a host callback resumes with (value, error)
//   - [Async]: Suspend with the run's Token available to the host callback
//
// # Ambient Context and Connection Switching
//
// [Context] is an immutable, copy-on-write key/value bag threaded through a
// run independently of its [Token]. The context instructions below cross
// the async boundary; [ConnectionSwitch] swaps the Token synchronously.
// [AsyncContextSwitch] and [ConnectionSwitch] take an optional restore
// callback invoked on every exit path (success, recovered error, or an
// error that propagates further):
//
//   - [ContinueOn]: Resume the remainder of the run under a given Context
//   - [UpdateContext]: Derive a new Context from the current one
//   - [AsyncContinueOn]: ContinueOn that always crosses the async boundary
//   - [AsyncContextSwitch]: UpdateContext that always crosses the async
//     boundary, with an optional restore callback
//   - [ReadContext]: Read the Context in effect at this point in the run
//   - [ConnectionSwitch]: Swap the governing Token, with an optional
//     restore callback
//
// # Cancellation
//
// [Token] tracks cancellation and a LIFO stack of finalizer effects run on
// cancel. Cancellation is checked at the top of every run-loop iteration
// and delivered straight to the run's callback, bypassing error-handler
// recovery entirely — a cancelled run can never be caught by
// [HandleErrorWith].
//
//   - [NewToken]: Create a cancellable Token
//   - [NonCancelable]: A Token that can never be cancelled
//   - [Token.Cancel]: Idempotent; drains finalizers LIFO
//   - [Token.Push], [Token.Pop]: Manage the finalizer stack
//
// # Running
//
//   - [Start]: Run an Effect to completion, invoking a callback once
//   - [StartCancelable]: Start against an explicit Token
//   - [StartOn], [StartCancelableOn]: Start against a caller-supplied
//     [Platform]
//   - [SuspendRun]: Bridge a non-cancellable run into a direct return, for
//     callers that are themselves running inside a suspending host
//     primitive
//
// # Stepping Boundary
//
// [Step] evaluates an Effect synchronously up to its first suspension
// point and returns what remains as an Effect, instead of driving it to
// completion through a callback. It shares its single-instruction
// dispatcher with the full run loop; the two diverge only in what happens
// once a suspension is reached.
//
//   - [Step]: Drive an Effect until it completes or suspends, returning the
//     remainder as a new Effect
//
// # Host Scheduling
//
// [Platform] bundles the interpreter's two scheduler primitives: a
// reentry-count threshold, and a single-worker FIFO trampoline that the
// async boundary hops onto instead of recursing when that threshold is
// crossed.
//
//   - [NewPlatform]: Build a Platform with its own trampoline worker
//   - [DefaultPlatform]: The Platform used when none is supplied
//   - [Platform.Trampoline]: Submit a task to the platform's worker queue
//   - [ArrayStack]: Generic LIFO stack (not used by the interpreter itself)
//
// # Affine Continuations
//
// [Affine] wraps a continuation with one-shot enforcement; the async
// boundary uses one as its can-call guard so that whichever of {host
// callback, racing cancellation, periodic trampoline hop} wins a given
// suspension is the only one that resumes the loop.
//
//   - [Once]: Create an affine continuation
//   - [Affine.Resume]: Invoke (panics on reuse)
//   - [Affine.TryResume]: Non-panicking variant
//   - [Affine.Discard]: Drop without invoking
//
// # Example
//
//	comp := effect.FlatMap(effect.Pure(21), func(x int) effect.Effect {
//		return effect.Pure(x * 2)
//	})
//
//	effect.Start(comp, nil, func(v any, err error) {
//		// v == 42
//	})
package effect
