// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package sx

// RepeatN returns a sender that reconnects and restarts source exactly n
// times in strict sequence, discarding intermediate values, then completes
// once after the n-th run. n <= 0 completes immediately without running
// source. Error and stopped completions of any iteration end the repetition
// and pass through; the stop token in the downstream environment is polled
// between iterations.
func RepeatN[T any](source Sender[T], n int) Sender[struct{}] {
	return repeatSender[T]{source: source, kind: repeatCount, count: n}
}

// RepeatEffectUntil returns a sender that runs source to completion, then
// evaluates pred; if false, runs source again. The repetition completes the
// first time pred returns true, evaluated after each run — never before
// the first.
func RepeatEffectUntil[T any](source Sender[T], pred func() bool) Sender[struct{}] {
	return repeatSender[T]{source: source, kind: repeatUntil, pred: pred}
}

// RepeatEffect returns a sender that repeats source forever; it only
// terminates through an error completion or cancellation via the stop
// token in the downstream environment.
func RepeatEffect[T any](source Sender[T]) Sender[struct{}] {
	return repeatSender[T]{source: source, kind: repeatForever}
}

const (
	repeatCount uint32 = iota
	repeatUntil
	repeatForever
)

type repeatSender[T any] struct {
	source Sender[T]
	kind   uint32
	count  int
	pred   func() bool
}

func (s repeatSender[T]) Connect(r Receiver[struct{}]) Operation {
	return &repeatOp[T]{
		source:     s.source,
		kind:       s.kind,
		remaining:  s.count,
		pred:       s.pred,
		downstream: r,
	}
}

type repeatOp[T any] struct {
	source     Sender[T]
	kind       uint32
	remaining  int
	pred       func() bool
	downstream Receiver[struct{}]
	guard      startGuard
	inner      Operation // current iteration, replaced on each relaunch
}

func (o *repeatOp[T]) Start() {
	o.guard.arm()
	if o.kind == repeatCount && o.remaining <= 0 {
		o.downstream.SetValue(struct{}{})
		return
	}
	o.launch()
}

// launch connects a fresh iteration, honoring a pending stop request
// first.
func (o *repeatOp[T]) launch() {
	if GetStopToken(GetEnv(o.downstream)).StopRequested() {
		o.downstream.SetStopped()
		return
	}
	o.inner = o.source.Connect(&repeatReceiver[T]{op: o})
	o.inner.Start()
}

// onIteration handles one value completion of the source and decides
// whether to go around again.
func (o *repeatOp[T]) onIteration() {
	switch o.kind {
	case repeatCount:
		o.remaining--
		if o.remaining == 0 {
			o.downstream.SetValue(struct{}{})
			return
		}
	case repeatUntil:
		if o.pred() {
			o.downstream.SetValue(struct{}{})
			return
		}
	}
	o.launch()
}

type repeatReceiver[T any] struct {
	op *repeatOp[T]
}

// SetValue discards the iteration's value; repetition treats the source as
// an effect.
func (r *repeatReceiver[T]) SetValue(T) {
	r.op.onIteration()
}

func (r *repeatReceiver[T]) SetError(err error) {
	r.op.downstream.SetError(err)
}

func (r *repeatReceiver[T]) SetStopped() {
	r.op.downstream.SetStopped()
}

func (r *repeatReceiver[T]) Env() Env {
	return GetEnv(r.op.downstream)
}
