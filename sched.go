// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package sx

// Scheduler is a capability that can transfer execution onto a specific
// context. Schedule returns a sender that completes with no payload once
// control has reached that context; the completion runs on the target
// context itself.
type Scheduler interface {
	Schedule() Sender[struct{}]
}

// InlineScheduler runs scheduled work immediately on the calling goroutine.
// Its schedule sender completes synchronously inside Start; there is no
// suspension point.
type InlineScheduler struct{}

// Schedule implements [Scheduler].
func (InlineScheduler) Schedule() Sender[struct{}] {
	return inlineScheduleSender{}
}

type inlineScheduleSender struct{}

func (inlineScheduleSender) Connect(r Receiver[struct{}]) Operation {
	return &inlineScheduleOp{receiver: r}
}

type inlineScheduleOp struct {
	receiver Receiver[struct{}]
	guard    startGuard
}

func (o *inlineScheduleOp) Start() {
	o.guard.arm()
	o.receiver.SetValue(struct{}{})
}

// postScheduleOp is the shared operation shape for queue-backed schedulers:
// Start posts the completion as a task and returns immediately; the task
// later invokes SetValue on the worker. A rejected post (context stopped)
// completes with [ErrRejected] on the error channel instead.
type postScheduleOp struct {
	post     func(func()) bool
	receiver Receiver[struct{}]
	guard    startGuard
}

func (o *postScheduleOp) Start() {
	o.guard.arm()
	if !o.post(func() { o.receiver.SetValue(struct{}{}) }) {
		o.receiver.SetError(ErrRejected)
	}
}

// EventLoopScheduler schedules work onto an [EventLoop]'s worker. The loop
// must outlive the scheduler and all work scheduled through it; the
// scheduler does not take ownership.
type EventLoopScheduler struct {
	Loop *EventLoop
}

// Schedule implements [Scheduler]. Completions run on the loop's worker in
// strict post order relative to other tasks posted to the same loop.
func (s EventLoopScheduler) Schedule() Sender[struct{}] {
	return postScheduleSender{post: s.Loop.Post}
}

// ThreadPoolScheduler schedules work onto a [ThreadPool]. The pool must
// outlive the scheduler and all work scheduled through it. Any idle worker
// may pick up the completion; items dequeue in FIFO order but run
// concurrently across workers.
type ThreadPoolScheduler struct {
	Pool *ThreadPool
}

// Schedule implements [Scheduler].
func (s ThreadPoolScheduler) Schedule() Sender[struct{}] {
	return postScheduleSender{post: s.Pool.Post}
}

// GoScheduler schedules each item onto a fresh goroutine tracked by a
// [GoContext]. Prefer [ThreadPoolScheduler] for most workloads.
type GoScheduler struct {
	Ctx *GoContext
}

// Schedule implements [Scheduler].
func (s GoScheduler) Schedule() Sender[struct{}] {
	return postScheduleSender{post: s.Ctx.Submit}
}

type postScheduleSender struct {
	post func(func()) bool
}

func (s postScheduleSender) Connect(r Receiver[struct{}]) Operation {
	return &postScheduleOp{post: s.post, receiver: r}
}
