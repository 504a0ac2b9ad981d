// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package sx

// On returns a sender implementing the there-and-back-again pattern: it
// captures the calling receiver's current scheduler from its environment,
// transitions to sched, runs source there (with sched installed in the
// inner environment), transitions back to the original scheduler, and only
// then delivers the completion downstream.
//
// A failed transition in either direction surfaces on the downstream
// error or stopped channel.
func On[T any](sched Scheduler, source Sender[T]) Sender[T] {
	return onSender[T]{target: sched, source: source}
}

type onSender[T any] struct {
	target Scheduler
	source Sender[T]
}

func (s onSender[T]) Connect(r Receiver[T]) Operation {
	return &onOp[T]{
		target:     s.target,
		origin:     GetScheduler(GetEnv(r)),
		source:     s.source,
		downstream: r,
	}
}

// onOp drives the three legs of the round trip: hop to target, run the
// source, hop back. The pending completion is buffered across the return
// hop.
type onOp[T any] struct {
	target     Scheduler
	origin     Scheduler
	source     Sender[T]
	downstream Receiver[T]
	guard      startGuard

	inner Operation // current leg, owned until its completion fires

	value   T
	err     error
	outcome uint32 // one of outcomeValue, outcomeError, outcomeStopped
}

const (
	outcomeValue uint32 = iota
	outcomeError
	outcomeStopped
)

func (o *onOp[T]) Start() {
	o.guard.arm()
	o.inner = o.target.Schedule().Connect(&onHopReceiver[T]{op: o, back: false})
	o.inner.Start()
}

// onTarget runs once control has reached the target scheduler.
func (o *onOp[T]) onTarget() {
	o.inner = o.source.Connect(&onInnerReceiver[T]{op: o})
	o.inner.Start()
}

// hopBack buffers the completion and transitions to the origin scheduler.
func (o *onOp[T]) hopBack() {
	o.inner = o.origin.Schedule().Connect(&onHopReceiver[T]{op: o, back: true})
	o.inner.Start()
}

// deliver fires the buffered completion on the downstream receiver, now on
// the origin scheduler.
func (o *onOp[T]) deliver() {
	switch o.outcome {
	case outcomeError:
		o.downstream.SetError(o.err)
	case outcomeStopped:
		o.downstream.SetStopped()
	default:
		o.downstream.SetValue(o.value)
	}
}

// onHopReceiver observes one scheduler transition.
type onHopReceiver[T any] struct {
	op   *onOp[T]
	back bool
}

func (r *onHopReceiver[T]) SetValue(struct{}) {
	if r.back {
		r.op.deliver()
		return
	}
	r.op.onTarget()
}

func (r *onHopReceiver[T]) SetError(err error) {
	// Transition failed; the buffered completion, if any, is discarded in
	// favor of reporting the transition failure.
	r.op.downstream.SetError(err)
}

func (r *onHopReceiver[T]) SetStopped() {
	r.op.downstream.SetStopped()
}

func (r *onHopReceiver[T]) Env() Env {
	return GetEnv(r.op.downstream)
}

// onInnerReceiver observes the source's completion on the target scheduler
// and initiates the return hop.
type onInnerReceiver[T any] struct {
	op *onOp[T]
}

func (r *onInnerReceiver[T]) SetValue(v T) {
	r.op.value = v
	r.op.outcome = outcomeValue
	r.op.hopBack()
}

func (r *onInnerReceiver[T]) SetError(err error) {
	r.op.err = err
	r.op.outcome = outcomeError
	r.op.hopBack()
}

func (r *onInnerReceiver[T]) SetStopped() {
	r.op.outcome = outcomeStopped
	r.op.hopBack()
}

// Env installs the target scheduler for the source while keeping the rest
// of the downstream environment (notably the stop token).
func (r *onInnerReceiver[T]) Env() Env {
	return WithScheduler(GetEnv(r.op.downstream), r.op.target)
}

// Transfer returns a sender that runs source to completion, then
// re-dispatches whichever completion occurred onto sched before delivering
// it downstream. The one-directional counterpart of [On].
//
// A failed transition surfaces as an error or stopped completion.
func Transfer[T any](source Sender[T], sched Scheduler) Sender[T] {
	return transferSender[T]{source: source, target: sched}
}

type transferSender[T any] struct {
	source Sender[T]
	target Scheduler
}

func (s transferSender[T]) Connect(r Receiver[T]) Operation {
	return s.source.Connect(&transferReceiver[T]{target: s.target, downstream: r})
}

type transferReceiver[T any] struct {
	target     Scheduler
	downstream Receiver[T]

	next    Operation // dispatch leg, owned until delivery
	value   T
	err     error
	outcome uint32
}

func (r *transferReceiver[T]) SetValue(v T) {
	r.value = v
	r.outcome = outcomeValue
	r.dispatch()
}

func (r *transferReceiver[T]) SetError(err error) {
	r.err = err
	r.outcome = outcomeError
	r.dispatch()
}

func (r *transferReceiver[T]) SetStopped() {
	r.outcome = outcomeStopped
	r.dispatch()
}

func (r *transferReceiver[T]) dispatch() {
	r.next = r.target.Schedule().Connect(&transferDeliverReceiver[T]{rec: r})
	r.next.Start()
}

func (r *transferReceiver[T]) deliver() {
	switch r.outcome {
	case outcomeError:
		r.downstream.SetError(r.err)
	case outcomeStopped:
		r.downstream.SetStopped()
	default:
		r.downstream.SetValue(r.value)
	}
}

func (r *transferReceiver[T]) Env() Env {
	return GetEnv(r.downstream)
}

type transferDeliverReceiver[T any] struct {
	rec *transferReceiver[T]
}

func (d *transferDeliverReceiver[T]) SetValue(struct{}) {
	d.rec.deliver()
}

func (d *transferDeliverReceiver[T]) SetError(err error) {
	d.rec.downstream.SetError(err)
}

func (d *transferDeliverReceiver[T]) SetStopped() {
	d.rec.downstream.SetStopped()
}

func (d *transferDeliverReceiver[T]) Env() Env {
	return GetEnv(d.rec.downstream)
}
