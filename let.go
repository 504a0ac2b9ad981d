// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package sx

// LetValue returns a sender that, on the source's value, obtains a new
// sender from fn, connects it to the original downstream receiver and
// starts it. This is the asynchronous continuation: the second stage's own
// completions propagate downstream as usual. Error and stopped completions
// of the source pass through unchanged.
func LetValue[A, B any](source Sender[A], fn func(A) Sender[B]) Sender[B] {
	return letValueSender[A, B]{source: source, fn: fn}
}

type letValueSender[A, B any] struct {
	source Sender[A]
	fn     func(A) Sender[B]
}

func (s letValueSender[A, B]) Connect(r Receiver[B]) Operation {
	return s.source.Connect(&letValueReceiver[A, B]{fn: s.fn, downstream: r})
}

type letValueReceiver[A, B any] struct {
	fn         func(A) Sender[B]
	downstream Receiver[B]
	next       Operation // second-stage operation, owned until completion
}

func (r *letValueReceiver[A, B]) SetValue(v A) {
	r.next = r.fn(v).Connect(r.downstream)
	r.next.Start()
}

func (r *letValueReceiver[A, B]) SetError(err error) {
	r.downstream.SetError(err)
}

func (r *letValueReceiver[A, B]) SetStopped() {
	r.downstream.SetStopped()
}

func (r *letValueReceiver[A, B]) Env() Env {
	return GetEnv(r.downstream)
}

// LetError mirrors [LetValue] on the error channel: fn produces a recovery
// sender from the error. Value and stopped completions pass through
// unchanged.
func LetError[T any](source Sender[T], fn func(error) Sender[T]) Sender[T] {
	return letErrorSender[T]{source: source, fn: fn}
}

type letErrorSender[T any] struct {
	source Sender[T]
	fn     func(error) Sender[T]
}

func (s letErrorSender[T]) Connect(r Receiver[T]) Operation {
	return s.source.Connect(&letErrorReceiver[T]{fn: s.fn, downstream: r})
}

type letErrorReceiver[T any] struct {
	fn         func(error) Sender[T]
	downstream Receiver[T]
	next       Operation
}

func (r *letErrorReceiver[T]) SetValue(v T) {
	r.downstream.SetValue(v)
}

func (r *letErrorReceiver[T]) SetError(err error) {
	r.next = r.fn(err).Connect(r.downstream)
	r.next.Start()
}

func (r *letErrorReceiver[T]) SetStopped() {
	r.downstream.SetStopped()
}

func (r *letErrorReceiver[T]) Env() Env {
	return GetEnv(r.downstream)
}

// LetStopped mirrors [LetValue] on the stopped channel: fn produces a
// replacement sender once the source reports cancellation. Value and error
// completions pass through unchanged.
func LetStopped[T any](source Sender[T], fn func() Sender[T]) Sender[T] {
	return letStoppedSender[T]{source: source, fn: fn}
}

type letStoppedSender[T any] struct {
	source Sender[T]
	fn     func() Sender[T]
}

func (s letStoppedSender[T]) Connect(r Receiver[T]) Operation {
	return s.source.Connect(&letStoppedReceiver[T]{fn: s.fn, downstream: r})
}

type letStoppedReceiver[T any] struct {
	fn         func() Sender[T]
	downstream Receiver[T]
	next       Operation
}

func (r *letStoppedReceiver[T]) SetValue(v T) {
	r.downstream.SetValue(v)
}

func (r *letStoppedReceiver[T]) SetError(err error) {
	r.downstream.SetError(err)
}

func (r *letStoppedReceiver[T]) SetStopped() {
	r.next = r.fn().Connect(r.downstream)
	r.next.Start()
}

func (r *letStoppedReceiver[T]) Env() Env {
	return GetEnv(r.downstream)
}
