package yeet

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerator_SingleValue(t *testing.T) {
	g := Make[int](func() {
		Yield(42)
	})
	defer g.Close()

	v, ok, err := g.Next()
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, 42, v)

	_, ok, err = g.Next()
	require.NoError(t, err)
	require.False(t, ok)
}

func TestGenerator_DenseRange(t *testing.T) {
	const n = 65536
	g := Make[int](func() {
		for i := 0; i < n; i++ {
			Yield(i)
		}
	})
	defer g.Close()

	for i := 0; i < n; i++ {
		v, ok, err := g.Next()
		require.NoError(t, err)
		require.True(t, ok)
		require.Equal(t, i, v)
	}

	_, ok, err := g.Next()
	require.NoError(t, err)
	require.False(t, ok)

	// Exhaustion is sticky.
	_, ok, err = g.Next()
	require.NoError(t, err)
	require.False(t, ok)
}

func TestGenerator_NextFromDifferentGoroutineAcrossCalls(t *testing.T) {
	g := Make[int](func() {
		Yield(1)
		Yield(2)
	})
	defer g.Close()

	type result struct {
		v  int
		ok bool
	}
	call := func() result {
		v, ok, err := g.Next()
		require.NoError(t, err)
		return result{v, ok}
	}

	done := make(chan result)
	go func() { done <- call() }()
	r1 := <-done
	require.Equal(t, result{1, true}, r1)

	go func() { done <- call() }()
	r2 := <-done
	require.Equal(t, result{2, true}, r2)
}

func TestGenerator_Fault(t *testing.T) {
	boom := errors.New("boom")
	g := Make[int](func() {
		Yield(1)
		panic(boom)
	}, WithName("faulty"))
	defer g.Close()

	v, ok, err := g.Next()
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, 1, v)

	_, ok, err = g.Next()
	require.False(t, ok)
	require.Error(t, err)

	var fe *FaultError
	require.ErrorAs(t, err, &fe)
	require.Equal(t, "faulty", fe.GeneratorName)
	require.Equal(t, int64(1), fe.YieldCount)
	require.Equal(t, boom, fe.Payload)
	require.Equal(t, StateFaulted, g.State())

	// Sticky after fault.
	_, ok, err = g.Next()
	require.NoError(t, err)
	require.False(t, ok)
}

func TestGenerator_WrongYieldType(t *testing.T) {
	g := Make[int](func() {
		Yield("not an int")
	})
	defer g.Close()

	_, ok, err := g.Next()
	require.False(t, ok)
	require.Error(t, err)

	var fe *FaultError
	require.ErrorAs(t, err, &fe)
	require.ErrorIs(t, err, ErrWrongYieldType)
}

func TestYield_OutsideTask(t *testing.T) {
	require.Panics(t, func() {
		Yield(1)
	})
}

func TestGenerator_CloseBeforeStart(t *testing.T) {
	g := Make[int](func() {
		Yield(1)
	})
	require.NoError(t, g.Close())
	require.NoError(t, g.Close())
}

func TestGenerator_CloseRunsDeferredCleanup(t *testing.T) {
	cleaned := false
	g := Make[int](func() {
		defer func() { cleaned = true }()
		for {
			Yield(1)
		}
	})

	_, ok, err := g.Next()
	require.NoError(t, err)
	require.True(t, ok)

	require.NoError(t, g.Close())
	require.True(t, cleaned)
	require.Equal(t, StateCancelled, g.State())

	// Idempotent.
	require.NoError(t, g.Close())
}

func TestGenerator_CloseAfterFaultReturnsNoError(t *testing.T) {
	boom := errors.New("boom")
	g := Make[int](func() {
		panic(boom)
	})

	_, ok, err := g.Next()
	require.False(t, ok)
	require.Error(t, err)

	// the producer already terminated; Close should observe StopIteration
	// and return no error of its own.
	require.NoError(t, g.Close())
}

func TestGenerator_NestedDFS(t *testing.T) {
	// Four-level nested tree: at depth d, the producer yields d once, then
	// drives two child generators of depth d+1 via YieldFrom. Leaves at
	// depth 3 yield only their own depth.
	var build func(depth int) func()
	build = func(depth int) func() {
		return func() {
			Yield(depth)
			if depth < 3 {
				for i := 0; i < 2; i++ {
					child := Make[int](build(depth + 1))
					YieldFrom(child)
					child.Close()
				}
			}
		}
	}

	g := Make[int](build(0))
	defer g.Close()

	want := []int{0, 1, 2, 3, 3, 2, 3, 3, 1, 2, 3, 3, 2, 3, 3}
	var got []int
	for {
		v, ok, err := g.Next()
		require.NoError(t, err)
		if !ok {
			break
		}
		got = append(got, v)
	}
	require.Equal(t, want, got)
}

func TestGenerator_CancellationDestructorCount(t *testing.T) {
	var destructed int
	g := Make[int](func() {
		for i := 0; ; i++ {
			defer func() { destructed++ }()
			Yield(i)
		}
	})

	_, ok, err := g.Next()
	require.NoError(t, err)
	require.True(t, ok)

	_, ok, err = g.Next()
	require.NoError(t, err)
	require.True(t, ok)

	require.NoError(t, g.Close())
	require.Equal(t, 2, destructed)
}

func TestYieldFrom_PropagatesFault(t *testing.T) {
	boom := errors.New("inner boom")
	inner := Make[int](func() {
		Yield(1)
		panic(boom)
	})

	outer := Make[int](func() {
		defer inner.Close()
		YieldFrom(inner)
	})
	defer outer.Close()

	v, ok, err := outer.Next()
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, 1, v)

	_, ok, err = outer.Next()
	require.False(t, ok)
	require.Error(t, err)

	var fe *FaultError
	require.ErrorAs(t, err, &fe)
	require.Equal(t, boom, fe.Payload)
}

func TestGenerator_MetricsWiring(t *testing.T) {
	mp := newRecordingProvider()
	g := Make[int](func() {
		Yield(1)
		Yield(2)
	}, WithMetrics(mp), WithStackBudget(4<<20))

	require.Equal(t, int64(4<<20), mp.counters["stack_budget_bytes"])

	_, _, _ = g.Next()
	_, _, _ = g.Next()
	_, _, _ = g.Next()
	require.NoError(t, g.Close())

	require.Equal(t, int64(1), mp.counters["generators_created_total"])
	require.Equal(t, int64(2), mp.counters["yields_total"])
	require.True(t, mp.histograms["next_duration_seconds"] >= 3)
	require.Equal(t, int64(0), mp.counters["stack_budget_bytes"])
}
