// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package sx

import (
	"sync"

	"code.hybscloud.com/atomix"
)

// Pair is the value of a two-sender [WhenAll2].
type Pair[A, B any] struct {
	First  A
	Second B
}

// Triple is the value of a three-sender [WhenAll3].
type Triple[A, B, C any] struct {
	First  A
	Second B
	Third  C
}

// WhenAll returns a sender that starts all sources concurrently under one
// shared stop source and completes once every child has completed.
//
// If all children complete with values, downstream receives the values in
// input order. If any child completes with error or stopped, a stop is
// requested on the shared source (best-effort cooperative cancellation of
// the siblings), and after all children have completed the downstream
// receives the first observed non-value completion; an error takes
// priority over stopped. With no sources, completes immediately with an
// empty slice.
func WhenAll[T any](sources ...Sender[T]) Sender[[]T] {
	return whenAllSender[T]{sources: sources}
}

type whenAllSender[T any] struct {
	sources []Sender[T]
}

func (s whenAllSender[T]) Connect(r Receiver[[]T]) Operation {
	n := len(s.sources)
	st := &whenAllState[T]{
		downstream: r,
		values:     make([]T, n),
		stop:       NewStopSource(),
	}
	st.remaining.Store(uint32(n))
	ops := make([]Operation, n)
	for i, src := range s.sources {
		ops[i] = src.Connect(&whenAllReceiver[T]{state: st, index: i})
	}
	return &whenAllOp[T]{state: st, inner: ops}
}

type whenAllOp[T any] struct {
	state *whenAllState[T]
	inner []Operation
	guard startGuard
}

func (o *whenAllOp[T]) Start() {
	o.guard.arm()
	if len(o.inner) == 0 {
		o.state.downstream.SetValue(nil)
		return
	}
	// Input order: with inline children this fixes the same-tick tie-break
	// deterministically.
	for _, op := range o.inner {
		op.Start()
	}
}

type whenAllState[T any] struct {
	downstream Receiver[[]T]
	values     []T
	remaining  atomix.Uint32
	stop       *StopSource

	mu       sync.Mutex
	firstErr error
	stopped  bool
}

// childValue records slot i; each slot is written by exactly one child
// before that child's arrival is counted, so no lock is needed.
func (st *whenAllState[T]) childValue(i int, v T) {
	st.values[i] = v
	st.arrive()
}

func (st *whenAllState[T]) childError(err error) {
	st.mu.Lock()
	if st.firstErr == nil {
		st.firstErr = err
	}
	st.mu.Unlock()
	st.stop.RequestStop()
	st.arrive()
}

func (st *whenAllState[T]) childStopped() {
	st.mu.Lock()
	st.stopped = true
	st.mu.Unlock()
	st.stop.RequestStop()
	st.arrive()
}

// arrive counts one child completion; the last arrival delivers the
// aggregate downstream.
func (st *whenAllState[T]) arrive() {
	if st.remaining.Add(^uint32(0)) != 0 {
		return
	}
	switch {
	case st.firstErr != nil:
		st.downstream.SetError(st.firstErr)
	case st.stopped:
		st.downstream.SetStopped()
	default:
		st.downstream.SetValue(st.values)
	}
}

type whenAllReceiver[T any] struct {
	state *whenAllState[T]
	index int
}

func (r *whenAllReceiver[T]) SetValue(v T) {
	r.state.childValue(r.index, v)
}

func (r *whenAllReceiver[T]) SetError(err error) {
	r.state.childError(err)
}

func (r *whenAllReceiver[T]) SetStopped() {
	r.state.childStopped()
}

// Env exposes the shared stop token to the child while inheriting the rest
// of the downstream environment.
func (r *whenAllReceiver[T]) Env() Env {
	return WithStopToken(GetEnv(r.state.downstream), r.state.stop.Token())
}

// erase widens a typed sender to Sender[any] so heterogeneous senders can
// share one aggregation core.
func erase[T any](s Sender[T]) Sender[any] {
	return Then(s, func(v T) any { return v })
}

// WhenAll2 is the heterogeneous two-sender [WhenAll], completing with a
// [Pair] of both values.
func WhenAll2[A, B any](sa Sender[A], sb Sender[B]) Sender[Pair[A, B]] {
	return Then(WhenAll(erase(sa), erase(sb)), func(vs []any) Pair[A, B] {
		return Pair[A, B]{First: vs[0].(A), Second: vs[1].(B)}
	})
}

// WhenAll3 is the heterogeneous three-sender [WhenAll], completing with a
// [Triple] of all values.
func WhenAll3[A, B, C any](sa Sender[A], sb Sender[B], sc Sender[C]) Sender[Triple[A, B, C]] {
	return Then(WhenAll(erase(sa), erase(sb), erase(sc)), func(vs []any) Triple[A, B, C] {
		return Triple[A, B, C]{First: vs[0].(A), Second: vs[1].(B), Third: vs[2].(C)}
	})
}
