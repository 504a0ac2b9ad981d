// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package sx

import (
	"code.hybscloud.com/atomix"
	"code.hybscloud.com/kont"
)

// WhenAny returns a sender that starts all sources concurrently under one
// shared stop source; the first child to complete — on any channel —
// determines the outcome. The claim immediately requests a stop so the
// remaining children are cooperatively cancelled; their completions are
// discarded.
//
// Panics if called with no sources.
func WhenAny[T any](sources ...Sender[T]) Sender[T] {
	if len(sources) == 0 {
		panic("sx: WhenAny requires at least one sender")
	}
	return whenAnySender[T]{sources: sources}
}

type whenAnySender[T any] struct {
	sources []Sender[T]
}

func (s whenAnySender[T]) Connect(r Receiver[T]) Operation {
	st := &whenAnyState[T]{downstream: r, stop: NewStopSource()}
	ops := make([]Operation, len(s.sources))
	for i, src := range s.sources {
		ops[i] = src.Connect(&whenAnyReceiver[T]{state: st})
	}
	return &whenAnyOp[T]{state: st, inner: ops}
}

type whenAnyOp[T any] struct {
	state *whenAnyState[T]
	inner []Operation
	guard startGuard
}

func (o *whenAnyOp[T]) Start() {
	o.guard.arm()
	for _, op := range o.inner {
		op.Start()
	}
}

type whenAnyState[T any] struct {
	downstream Receiver[T]
	claimed    atomix.Uint32
	stop       *StopSource
}

// claim returns true for exactly the first completing child.
func (st *whenAnyState[T]) claim() bool {
	if !st.claimed.CompareAndSwap(0, 1) {
		return false
	}
	st.stop.RequestStop()
	return true
}

type whenAnyReceiver[T any] struct {
	state *whenAnyState[T]
}

func (r *whenAnyReceiver[T]) SetValue(v T) {
	if r.state.claim() {
		r.state.downstream.SetValue(v)
	}
}

func (r *whenAnyReceiver[T]) SetError(err error) {
	if r.state.claim() {
		r.state.downstream.SetError(err)
	}
}

func (r *whenAnyReceiver[T]) SetStopped() {
	if r.state.claim() {
		r.state.downstream.SetStopped()
	}
}

// Env exposes the shared stop token to the child while inheriting the rest
// of the downstream environment.
func (r *whenAnyReceiver[T]) Env() Env {
	return WithStopToken(GetEnv(r.state.downstream), r.state.stop.Token())
}

// WhenAnyEither races two senders of different types; the completing
// side's value arrives tagged as Left (first sender) or Right (second
// sender) of a [kont.Either].
func WhenAnyEither[A, B any](sa Sender[A], sb Sender[B]) Sender[kont.Either[A, B]] {
	left := Then(sa, func(a A) kont.Either[A, B] { return kont.Left[A, B](a) })
	right := Then(sb, func(b B) kont.Either[A, B] { return kont.Right[A, B](b) })
	return WhenAny(left, right)
}
