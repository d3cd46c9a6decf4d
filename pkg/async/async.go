package async

import (
	"context"
	"sync"
)

// Future holds the eventual result of one asynchronous call.
type Future[U any] struct {
	result U
	err    error
	done   chan struct{}
}

// Await blocks until the call finishes.
func (f *Future[U]) Await() (U, error) {
	<-f.done
	return f.result, f.err
}

// AwaitContext blocks until the call finishes or ctx is done, whichever is
// first. An abandoned call keeps running; its result is discarded.
func (f *Future[U]) AwaitContext(ctx context.Context) (U, error) {
	select {
	case <-f.done:
		return f.result, f.err
	case <-ctx.Done():
		var zero U
		return zero, ctx.Err()
	}
}

// IsComplete reports whether the call has finished, without blocking.
func (f *Future[U]) IsComplete() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}

// Async runs fn(ctx, param) in a new goroutine. A context that is already
// done short-circuits fn.
func Async[T any, U any](ctx context.Context, param T, fn func(context.Context, T) (U, error)) *Future[U] {
	return spawn(ctx, nil, param, fn)
}

func spawn[T any, U any](ctx context.Context, sem chan struct{}, param T, fn func(context.Context, T) (U, error)) *Future[U] {
	f := &Future[U]{done: make(chan struct{})}

	go func() {
		defer close(f.done)

		if sem != nil {
			select {
			case sem <- struct{}{}:
				defer func() { <-sem }()
			case <-ctx.Done():
				f.err = ctx.Err()
				return
			}
		}
		if err := ctx.Err(); err != nil {
			f.err = err
			return
		}
		f.result, f.err = fn(ctx, param)
	}()

	return f
}

// Map starts fn for every item with at most limit calls in flight and
// returns the futures in input order. A limit below one means unbounded.
func Map[T any, U any](ctx context.Context, items []T, limit int, fn func(context.Context, T) (U, error)) []*Future[U] {
	var sem chan struct{}
	if limit > 0 {
		sem = make(chan struct{}, limit)
	}
	futures := make([]*Future[U], len(items))
	for i, item := range items {
		futures[i] = spawn(ctx, sem, item, fn)
	}
	return futures
}

// Settled is the outcome of one future.
type Settled[U any] struct {
	Value U
	Err   error
}

// WaitAll waits for every future and returns each outcome in order. Unlike
// a fail-fast join, one failure does not hide the others.
func WaitAll[U any](futures ...*Future[U]) []Settled[U] {
	out := make([]Settled[U], len(futures))
	var wg sync.WaitGroup
	for i, f := range futures {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, err := f.Await()
			out[i] = Settled[U]{Value: v, Err: err}
		}()
	}
	wg.Wait()
	return out
}

// FirstError returns the first non-nil error among outcomes, in order.
func FirstError[U any](outcomes []Settled[U]) error {
	for _, o := range outcomes {
		if o.Err != nil {
			return o.Err
		}
	}
	return nil
}
