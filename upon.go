// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package sx

// UponError returns a sender that converts an error completion into a
// value completion by applying fn to the error. Value and stopped
// completions pass through unchanged.
func UponError[T any](source Sender[T], fn func(error) T) Sender[T] {
	return uponErrorSender[T]{source: source, fn: fn}
}

type uponErrorSender[T any] struct {
	source Sender[T]
	fn     func(error) T
}

func (s uponErrorSender[T]) Connect(r Receiver[T]) Operation {
	return s.source.Connect(&uponErrorReceiver[T]{fn: s.fn, downstream: r})
}

type uponErrorReceiver[T any] struct {
	fn         func(error) T
	downstream Receiver[T]
}

func (r *uponErrorReceiver[T]) SetValue(v T) {
	r.downstream.SetValue(v)
}

func (r *uponErrorReceiver[T]) SetError(err error) {
	r.downstream.SetValue(r.fn(err))
}

func (r *uponErrorReceiver[T]) SetStopped() {
	r.downstream.SetStopped()
}

func (r *uponErrorReceiver[T]) Env() Env {
	return GetEnv(r.downstream)
}

// UponStopped returns a sender that converts a stopped completion into a
// value completion produced by fn. Value and error completions pass
// through unchanged.
func UponStopped[T any](source Sender[T], fn func() T) Sender[T] {
	return uponStoppedSender[T]{source: source, fn: fn}
}

type uponStoppedSender[T any] struct {
	source Sender[T]
	fn     func() T
}

func (s uponStoppedSender[T]) Connect(r Receiver[T]) Operation {
	return s.source.Connect(&uponStoppedReceiver[T]{fn: s.fn, downstream: r})
}

type uponStoppedReceiver[T any] struct {
	fn         func() T
	downstream Receiver[T]
}

func (r *uponStoppedReceiver[T]) SetValue(v T) {
	r.downstream.SetValue(v)
}

func (r *uponStoppedReceiver[T]) SetError(err error) {
	r.downstream.SetError(err)
}

func (r *uponStoppedReceiver[T]) SetStopped() {
	r.downstream.SetValue(r.fn())
}

func (r *uponStoppedReceiver[T]) Env() Env {
	return GetEnv(r.downstream)
}
