// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package sx provides a composable asynchronous execution engine based on
// the sender/receiver model.
//
// A [Sender] is an inert value describing future work. Connecting it to a
// [Receiver] yields an [Operation]; calling Start is the sole trigger of
// execution. Exactly one of the receiver's three channels (SetValue,
// SetError, SetStopped) fires exactly once per started operation.
//
// # Architecture
//
//   - Execution contexts: [InlineScheduler] runs on the caller's stack.
//     [EventLoop] is a single worker draining a FIFO queue; [ThreadPool]
//     shares one FIFO queue among N workers. [GoContext] spawns a goroutine
//     per item.
//   - Cancellation: [StopSource]/[StopToken] provide cooperative stop
//     requests with synchronously invoked callbacks.
//   - Environment: [Env] carries ambient capabilities (scheduler, stop
//     token) alongside a receiver, queried via [GetEnv], [GetScheduler]
//     and [GetStopToken] with documented defaults.
//   - Blocking: [SyncWait] hands the single result across goroutines over a
//     bounded lock-free SPSC queue from [code.hybscloud.com/lfq], waiting
//     with adaptive backoff ([code.hybscloud.com/iox.Backoff]), without
//     creating channels. [SyncWaitEither] returns
//     [code.hybscloud.com/kont.Either].
//
// # API Topologies
//
//   - Basic senders: [Just], [JustError], [StoppedSender], [Never].
//   - Sequencing: [Then], [LetValue], [LetError], [LetStopped],
//     [UponError], [UponStopped], [On], [Transfer].
//   - Fan-out/fan-in: [WhenAll] (plus [WhenAll2], [WhenAll3]), [WhenAny]
//     (plus [WhenAnyEither]), [Bulk], [Split], [RepeatN],
//     [RepeatEffectUntil], [RepeatEffect].
//   - Sugar: [Pipe] chains [Stage] adaptors left to right.
//
// # Example
//
//	loop := sx.NewEventLoop()
//	defer loop.Stop()
//	work := sx.Then(
//		sx.On(sx.EventLoopScheduler{Loop: loop}, sx.Just(21)),
//		func(n int) int { return n * 2 },
//	)
//	if v, ok := sx.SyncWait(work); ok {
//		fmt.Println(v) // 42
//	}
package sx
