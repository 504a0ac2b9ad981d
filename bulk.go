// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package sx

// Bulk returns a sender that, on the source's value v, synchronously
// invokes fn(i, v) for every i in [0, shape) in increasing order, then
// forwards v unchanged downstream. No concurrency is implied. Error and
// stopped completions bypass fn entirely.
func Bulk[T any](source Sender[T], shape int, fn func(int, T)) Sender[T] {
	return bulkSender[T]{source: source, shape: shape, fn: fn}
}

type bulkSender[T any] struct {
	source Sender[T]
	shape  int
	fn     func(int, T)
}

func (s bulkSender[T]) Connect(r Receiver[T]) Operation {
	return s.source.Connect(&bulkReceiver[T]{shape: s.shape, fn: s.fn, downstream: r})
}

type bulkReceiver[T any] struct {
	shape      int
	fn         func(int, T)
	downstream Receiver[T]
}

func (r *bulkReceiver[T]) SetValue(v T) {
	for i := 0; i < r.shape; i++ {
		r.fn(i, v)
	}
	r.downstream.SetValue(v)
}

func (r *bulkReceiver[T]) SetError(err error) {
	r.downstream.SetError(err)
}

func (r *bulkReceiver[T]) SetStopped() {
	r.downstream.SetStopped()
}

func (r *bulkReceiver[T]) Env() Env {
	return GetEnv(r.downstream)
}
