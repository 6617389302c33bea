package yeet

import "errors"

// rethrow panics with a src generator's fault payload unwrapped, so a
// faulted source propagates as the same underlying panic rather than a
// FaultError wrapping a FaultError.
func rethrow(err error) {
	var fe *FaultError
	if errors.As(err, &fe) {
		panic(fe.Payload)
	}
	panic(err)
}

// Collect drains g to exhaustion and returns every value it produced, in
// order. It closes g before returning, even on a fault.
func Collect[T any](g *Generator[T]) ([]T, error) {
	defer g.Close()

	var out []T
	for {
		v, ok, err := g.Next()
		if err != nil {
			return out, err
		}
		if !ok {
			return out, nil
		}
		out = append(out, v)
	}
}

// ForEach drains g, calling fn for each value. It stops early and closes g
// if fn returns an error, returning that error; a fault from g itself is
// returned the same way.
func ForEach[T any](g *Generator[T], fn func(T) error) error {
	defer g.Close()

	for {
		v, ok, err := g.Next()
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		if err := fn(v); err != nil {
			return err
		}
	}
}

// MapGen returns a new Generator that yields fn applied to each value src
// produces. src is owned by the returned Generator: once the result has
// been started by a call to Next, closing it closes src too; closing a
// result that was never started leaves src open. A fault in src surfaces
// as a fault in the result with the same payload.
func MapGen[T, R any](src *Generator[T], fn func(T) R) *Generator[R] {
	return Make[R](func() {
		defer src.Close()
		for {
			v, ok, err := src.Next()
			if err != nil {
				rethrow(err)
			}
			if !ok {
				return
			}
			Yield(fn(v))
		}
	})
}

// Take returns a new Generator that yields at most n values from src, then
// stops, closing src. A fault from src before n values are produced
// surfaces as a fault in the result.
func Take[T any](src *Generator[T], n int) *Generator[T] {
	return Make[T](func() {
		defer src.Close()
		for i := 0; i < n; i++ {
			v, ok, err := src.Next()
			if err != nil {
				rethrow(err)
			}
			if !ok {
				return
			}
			Yield(v)
		}
	})
}
