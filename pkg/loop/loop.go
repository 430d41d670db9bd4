// Package loop runs a callback at a fixed wall-clock interval until it is
// stopped.
package loop

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/supermuesli/poly"
)

var (
	// ErrInvalidInterval is returned for intervals that are not positive.
	ErrInvalidInterval = errors.New("loop: interval must be positive")

	// ErrNilFunc is returned when no callback is given.
	ErrNilFunc = errors.New("loop: nil callback")

	// ErrCallbackPanic wraps a panic recovered from the callback.
	ErrCallbackPanic = errors.New("loop: callback panicked")
)

// Task is a running repeating callback. Invocations never overlap.
type Task struct {
	interval time.Duration
	fn       func() error
	opts     options

	cancel context.CancelFunc
	done   chan struct{}

	ticks  atomic.Uint64
	missed atomic.Uint64
	faults atomic.Uint64

	stopOnce sync.Once
	err      error // written by the task goroutine before done is closed
}

// Every starts calling fn once per interval. The first call happens one
// interval after Every returns. The task ends when Stop is called, when ctx
// is cancelled, or when fn fails (unless WithContinueOnError is set).
func Every(ctx context.Context, interval time.Duration, fn func() error, opts ...Option) (*Task, error) {
	if interval <= 0 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInterval, interval)
	}
	if fn == nil {
		return nil, ErrNilFunc
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	ctx, cancel := context.WithCancel(ctx)
	t := &Task{
		interval: interval,
		fn:       fn,
		opts:     o,
		cancel:   cancel,
		done:     make(chan struct{}),
	}
	poly.Logger().Debug("loop: task started", "task", o.name, "interval", interval, "overrun", o.overrun)
	go t.run(ctx)
	return t, nil
}

// Interval returns the configured interval.
func (t *Task) Interval() time.Duration { return t.interval }

// Ticks returns how many times the callback has been invoked.
func (t *Task) Ticks() uint64 { return t.ticks.Load() }

// Missed returns how many ticks the overrun policy dropped.
func (t *Task) Missed() uint64 { return t.missed.Load() }

// Faults returns how many invocations returned an error or panicked.
func (t *Task) Faults() uint64 { return t.faults.Load() }

// Stop cancels the task and waits for an in-flight invocation to finish.
// It is safe to call more than once and from several goroutines, but not
// from inside the callback.
func (t *Task) Stop() {
	t.stopOnce.Do(t.cancel)
	<-t.done
}

// Done is closed once the task has ended.
func (t *Task) Done() <-chan struct{} { return t.done }

// Wait blocks until the task ends and returns the callback error that
// ended it, or nil if it was stopped or its context was cancelled.
func (t *Task) Wait() error {
	<-t.done
	return t.err
}

func (t *Task) run(ctx context.Context) {
	defer close(t.done)
	defer t.cancel()

	next := time.Now().Add(t.interval)
	timer := time.NewTimer(t.interval)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			poly.Logger().Debug("loop: task stopped", "task", t.opts.name, "ticks", t.Ticks())
			return
		case <-timer.C:
		}

		if err := t.invoke(); err != nil {
			t.faults.Add(1)
			if !t.opts.continueOnError {
				poly.Logger().Error("loop: task ended by callback", "task", t.opts.name, "err", err)
				t.err = err
				return
			}
			poly.Logger().Warn("loop: callback failed", "task", t.opts.name, "err", err)
		}

		// A Stop issued during the callback wins over an overdue tick.
		if ctx.Err() != nil {
			continue
		}

		now := time.Now()
		next = t.schedule(next.Add(t.interval), now)
		timer.Reset(next.Sub(now))
	}
}

// schedule applies the overrun policy to the nominal next deadline and
// returns the deadline to wait for. A deadline at or before now fires
// immediately.
func (t *Task) schedule(next, now time.Time) time.Time {
	if next.After(now) {
		return next
	}
	overdue := uint64(now.Sub(next)/t.interval) + 1

	var dropped uint64
	switch t.opts.overrun {
	case Skip:
		dropped = overdue
	case CatchUp:
		if limit := uint64(t.opts.maxCatchUp); overdue > limit {
			dropped = overdue - limit
		}
	default:
		dropped = overdue - 1
	}

	if dropped > 0 {
		t.missed.Add(dropped)
		poly.Logger().Debug("loop: ticks dropped", "task", t.opts.name, "dropped", dropped, "overrun", t.opts.overrun)
	}
	return next.Add(time.Duration(dropped) * t.interval)
}

func (t *Task) invoke() (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrCallbackPanic, r)
		}
	}()
	t.ticks.Add(1)
	return t.fn()
}
