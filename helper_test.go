// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package sx_test

import (
	"sync"

	"code.hybscloud.com/sx"
)

// probeReceiver records every completion it observes, with an injectable
// environment. Used to assert the exactly-once contract and to hand stop
// tokens or schedulers to an operation under test.
type probeReceiver[T any] struct {
	env sx.Env

	mu      sync.Mutex
	values  []T
	errs    []error
	stopped int
}

func (r *probeReceiver[T]) SetValue(v T) {
	r.mu.Lock()
	r.values = append(r.values, v)
	r.mu.Unlock()
}

func (r *probeReceiver[T]) SetError(err error) {
	r.mu.Lock()
	r.errs = append(r.errs, err)
	r.mu.Unlock()
}

func (r *probeReceiver[T]) SetStopped() {
	r.mu.Lock()
	r.stopped++
	r.mu.Unlock()
}

func (r *probeReceiver[T]) Env() sx.Env {
	return r.env
}

// completions returns the total number of channel firings observed.
func (r *probeReceiver[T]) completions() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.values) + len(r.errs) + r.stopped
}

// countSender returns an effect sender that increments *n each time a
// connected operation runs, then completes with the new count.
func countSender(n *int) sx.Sender[int] {
	return sx.LetValue(sx.Just(struct{}{}), func(struct{}) sx.Sender[int] {
		*n++
		return sx.Just(*n)
	})
}

// recordingScheduler wraps a scheduler and counts Schedule calls, to
// observe transitions made by On and Transfer.
type recordingScheduler struct {
	inner sx.Scheduler
	calls *int
}

func (s recordingScheduler) Schedule() sx.Sender[struct{}] {
	*s.calls++
	return s.inner.Schedule()
}
