// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package sx

// Then returns a sender that applies fn to the source's value. fn must be
// synchronous; use [LetValue] for sender-returning continuations.
// Error and stopped completions pass through unchanged.
func Then[A, B any](source Sender[A], fn func(A) B) Sender[B] {
	return thenSender[A, B]{source: source, fn: fn}
}

type thenSender[A, B any] struct {
	source Sender[A]
	fn     func(A) B
}

func (s thenSender[A, B]) Connect(r Receiver[B]) Operation {
	return s.source.Connect(&thenReceiver[A, B]{fn: s.fn, downstream: r})
}

type thenReceiver[A, B any] struct {
	fn         func(A) B
	downstream Receiver[B]
}

func (r *thenReceiver[A, B]) SetValue(v A) {
	r.downstream.SetValue(r.fn(v))
}

func (r *thenReceiver[A, B]) SetError(err error) {
	r.downstream.SetError(err)
}

func (r *thenReceiver[A, B]) SetStopped() {
	r.downstream.SetStopped()
}

func (r *thenReceiver[A, B]) Env() Env {
	return GetEnv(r.downstream)
}
