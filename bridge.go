// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package sx

import (
	"code.hybscloud.com/iox"
	"code.hybscloud.com/kont"
	"code.hybscloud.com/lfq"
)

// bridgeCapacity sizes the single-result handoff queue. One slot suffices;
// the power-of-two capacity keeps the ring within a cache line.
const bridgeCapacity = 4

// outcome is the buffered completion crossing the bridge.
type outcome[T any] struct {
	value   T
	err     error
	stopped bool
}

// syncWaitReceiver publishes the single completion over a bounded SPSC
// queue: the completing goroutine is the lone producer, the blocked caller
// the lone consumer. Its environment pins the inline scheduler.
type syncWaitReceiver[T any] struct {
	q    *lfq.SPSC[outcome[T]]
	slot outcome[T]
}

func (r *syncWaitReceiver[T]) SetValue(v T) {
	r.slot = outcome[T]{value: v}
	r.publish()
}

func (r *syncWaitReceiver[T]) SetError(err error) {
	r.slot = outcome[T]{err: err}
	r.publish()
}

func (r *syncWaitReceiver[T]) SetStopped() {
	r.slot = outcome[T]{stopped: true}
	r.publish()
}

func (r *syncWaitReceiver[T]) publish() {
	var bo iox.Backoff
	for r.q.Enqueue(&r.slot) != nil {
		bo.Wait()
	}
}

func (r *syncWaitReceiver[T]) Env() Env {
	return WithScheduler(Env{}, InlineScheduler{})
}

// syncWait drives source to completion and blocks the calling goroutine,
// waiting past the handoff boundary with adaptive backoff, without
// spawning goroutines or creating channels.
func syncWait[T any](source Sender[T]) outcome[T] {
	q := new(lfq.SPSC[outcome[T]])
	q.Init(bridgeCapacity)
	r := &syncWaitReceiver[T]{q: q}
	op := source.Connect(r)
	op.Start()
	var bo iox.Backoff
	for {
		out, err := q.Dequeue()
		if err == nil {
			return out
		}
		bo.Wait()
	}
}

// SyncWait connects source to an internal receiver carrying an inline
// scheduler environment, starts it, and blocks until one completion
// channel fires. Returns (value, true) on success, and the zero value with
// false on error or stopped — callers needing to distinguish the two
// should use [SyncWaitEither] or intercept with [UponError]/[UponStopped]
// before bridging.
//
// SyncWait must not be called from a receiver callback running on the same
// single-threaded context it would wait on: that deadlocks.
func SyncWait[T any](source Sender[T]) (T, bool) {
	out := syncWait(source)
	if out.err != nil || out.stopped {
		var zero T
		return zero, false
	}
	return out.value, true
}

// SyncWaitEither is [SyncWait] preserving the failure cause: Right carries
// the value, Left carries the error, with [ErrStopped] standing in for a
// stopped completion.
func SyncWaitEither[T any](source Sender[T]) kont.Either[error, T] {
	out := syncWait(source)
	switch {
	case out.err != nil:
		return kont.Left[error, T](out.err)
	case out.stopped:
		return kont.Left[error, T](ErrStopped)
	default:
		return kont.Right[error, T](out.value)
	}
}
