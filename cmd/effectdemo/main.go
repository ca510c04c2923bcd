// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Command effectdemo drives the effect interpreter through a handful of
// named scenarios, one per flag, so its behavior can be observed from a
// terminal instead of a test binary.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"code.hybscloud.com/effect"
)

func main() {
	scenario := flag.String("scenario", "pure", "which scenario to run: pure, async, cancel, context")
	timeout := flag.Duration("timeout", 2*time.Second, "how long to wait for the scenario to finish")
	verbose := flag.Bool("v", false, "print intermediate progress")
	flag.Parse()

	run, ok := scenarios[*scenario]
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown scenario %q; choose one of: pure, async, cancel, context\n", *scenario)
		os.Exit(1)
	}

	if err := run(*timeout, *verbose); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var scenarios = map[string]func(timeout time.Duration, verbose bool) error{
	"pure":    runPureLoop,
	"async":   runAsyncEcho,
	"cancel":  runCancellation,
	"context": runContextSwitch,
}

// runPureLoop chains a long, purely synchronous FlatMap sequence and
// confirms it completes without error; the run loop iterates over it
// without recursing and without any trampoline hop.
func runPureLoop(_ time.Duration, verbose bool) error {
	const steps = 100_000
	e := effect.Effect(effect.Pure(0))
	for i := 0; i < steps; i++ {
		e = effect.FlatMap(e, func(a int) effect.Effect { return effect.Pure(a + 1) })
	}

	var result int
	var runErr error
	effect.Start(e, nil, func(v any, err error) {
		runErr = err
		if err == nil {
			result = v.(int)
		}
	})
	if runErr != nil {
		return fmt.Errorf("pure loop: %w", runErr)
	}
	if verbose {
		fmt.Printf("pure loop: chained %d FlatMap steps synchronously\n", steps)
	}
	fmt.Println("result:", result)
	return nil
}

// runAsyncEcho suspends on a goroutine-backed Async effect and confirms
// only the first of two racing resumes is honored.
func runAsyncEcho(timeout time.Duration, verbose bool) error {
	e := effect.Async[string](func(tok effect.Token, resume func(string, error)) {
		go func() {
			if verbose {
				fmt.Println("async echo: host callback firing")
			}
			resume("echo", nil)
			resume("dropped", errors.New("must never surface"))
		}()
	})

	ch := make(chan struct {
		v   string
		err error
	}, 1)
	effect.Start(e, nil, func(v any, err error) {
		var s string
		if err == nil && v != nil {
			s = v.(string)
		}
		ch <- struct {
			v   string
			err error
		}{s, err}
	})

	select {
	case r := <-ch:
		if r.err != nil {
			return fmt.Errorf("async echo: %w", r.err)
		}
		fmt.Println("result:", r.v)
		return nil
	case <-time.After(timeout):
		return errors.New("async echo: timed out")
	}
}

// runCancellation starts a run whose Async never resolves on its own, then
// cancels the token and confirms the callback observes CancellationErr.
func runCancellation(timeout time.Duration, verbose bool) error {
	tok := effect.NewToken()
	e := effect.Async[int](func(t effect.Token, resume func(int, error)) {
		// Deliberately never resumes; the run only ever completes via cancellation.
	})

	ch := make(chan error, 1)
	effect.StartCancelable(e, tok, nil, func(_ any, err error) {
		ch <- err
	})

	if verbose {
		fmt.Println("cancellation: cancelling the token")
	}
	tok.Cancel()

	select {
	case err := <-ch:
		if !errors.Is(err, effect.CancellationErr) {
			return fmt.Errorf("cancellation: got %v, want %v", err, effect.CancellationErr)
		}
		fmt.Println("result: cancelled as expected")
		return nil
	case <-time.After(timeout):
		return errors.New("cancellation: timed out")
	}
}

// runContextSwitch exercises AsyncContextSwitch's restore-on-completion
// guarantee: the ambient context is temporarily rebound, observed with
// ReadContext, then restored once the switched region finishes.
func runContextSwitch(timeout time.Duration, verbose bool) error {
	type key struct{}
	outer := effect.NewContext().With(key{}, "outer")

	inner := effect.FlatMap(effect.ReadContext(), func(ctx *effect.Context) effect.Effect {
		v, _ := ctx.Value(key{})
		if verbose {
			fmt.Println("context switch: inside switched region, k =", v)
		}
		return effect.Pure(v)
	})

	e := effect.AsyncContextSwitch(inner,
		func(c *effect.Context) *effect.Context { return c.With(key{}, "inner") },
		func(_ any, _ error, old, _ *effect.Context) *effect.Context { return old },
	)
	e = effect.FlatMap(e, func(any) effect.Effect { return effect.ReadContext() })

	ch := make(chan struct {
		ctx *effect.Context
		err error
	}, 1)
	effect.Start(e, outer, func(v any, err error) {
		var ctx *effect.Context
		if err == nil {
			ctx, _ = v.(*effect.Context)
		}
		ch <- struct {
			ctx *effect.Context
			err error
		}{ctx, err}
	})

	select {
	case r := <-ch:
		if r.err != nil {
			return fmt.Errorf("context switch: %w", r.err)
		}
		v, _ := r.ctx.Value(key{})
		fmt.Println("result: k restored to", v)
		return nil
	case <-time.After(timeout):
		return errors.New("context switch: timed out")
	}
}
