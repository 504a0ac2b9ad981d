// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package sx

import "sync"

// Split phases.
const (
	splitIdle uint32 = iota
	splitRunning
	splitValue
	splitError
	splitStopped
)

// Split converts a single-shot sender into a multi-shot, copyable one.
// The underlying sender is connected and started at most once: the first
// started consumer triggers it, its single completion is cached in shared
// state, and every consumer — concurrent or later — receives the cached
// completion. Safe for concurrent consumption.
func Split[T any](source Sender[T]) Sender[T] {
	return splitSender[T]{state: &splitState[T]{source: source}}
}

// splitSender is copyable; copies share the cached state.
type splitSender[T any] struct {
	state *splitState[T]
}

func (s splitSender[T]) Connect(r Receiver[T]) Operation {
	return &splitOp[T]{state: s.state, receiver: r}
}

type splitState[T any] struct {
	mu      sync.Mutex
	source  Sender[T]
	phase   uint32
	value   T
	err     error
	waiters []*splitOp[T]
	inner   Operation // kept alive until the cached completion is recorded
}

// complete records the terminal phase and flushes the waiters. Terminal
// fields are immutable afterwards, so waiters read them unlocked.
func (st *splitState[T]) complete(phase uint32, v T, err error) {
	st.mu.Lock()
	st.phase = phase
	st.value = v
	st.err = err
	waiters := st.waiters
	st.waiters = nil
	st.mu.Unlock()
	for _, w := range waiters {
		w.deliver()
	}
}

type splitInnerReceiver[T any] struct {
	state *splitState[T]
}

func (r *splitInnerReceiver[T]) SetValue(v T) {
	r.state.complete(splitValue, v, nil)
}

func (r *splitInnerReceiver[T]) SetError(err error) {
	var zero T
	r.state.complete(splitError, zero, err)
}

func (r *splitInnerReceiver[T]) SetStopped() {
	var zero T
	r.state.complete(splitStopped, zero, nil)
}

type splitOp[T any] struct {
	state    *splitState[T]
	receiver Receiver[T]
	guard    startGuard
}

func (o *splitOp[T]) Start() {
	o.guard.arm()
	st := o.state
	st.mu.Lock()
	switch st.phase {
	case splitIdle:
		st.phase = splitRunning
		st.waiters = append(st.waiters, o)
		inner := st.source.Connect(&splitInnerReceiver[T]{state: st})
		st.inner = inner
		st.mu.Unlock()
		// May complete inline, flushing this op as a waiter.
		inner.Start()
	case splitRunning:
		st.waiters = append(st.waiters, o)
		st.mu.Unlock()
	default:
		st.mu.Unlock()
		o.deliver()
	}
}

// deliver replays the cached completion to this consumer's receiver.
func (o *splitOp[T]) deliver() {
	switch o.state.phase {
	case splitError:
		o.receiver.SetError(o.state.err)
	case splitStopped:
		o.receiver.SetStopped()
	default:
		o.receiver.SetValue(o.state.value)
	}
}
