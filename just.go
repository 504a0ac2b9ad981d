// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package sx

// Just returns a sender that completes synchronously inside Start with the
// given value.
func Just[T any](v T) Sender[T] {
	return justSender[T]{value: v}
}

type justSender[T any] struct {
	value T
}

func (s justSender[T]) Connect(r Receiver[T]) Operation {
	return &justOp[T]{value: s.value, receiver: r}
}

type justOp[T any] struct {
	value    T
	receiver Receiver[T]
	guard    startGuard
}

func (o *justOp[T]) Start() {
	o.guard.arm()
	o.receiver.SetValue(o.value)
}

// JustError returns a sender that completes synchronously on the error
// channel with err.
func JustError[T any](err error) Sender[T] {
	return justErrorSender[T]{err: err}
}

type justErrorSender[T any] struct {
	err error
}

func (s justErrorSender[T]) Connect(r Receiver[T]) Operation {
	return &justErrorOp[T]{err: s.err, receiver: r}
}

type justErrorOp[T any] struct {
	err      error
	receiver Receiver[T]
	guard    startGuard
}

func (o *justErrorOp[T]) Start() {
	o.guard.arm()
	o.receiver.SetError(o.err)
}

// StoppedSender returns a sender that completes synchronously on the
// stopped channel.
func StoppedSender[T any]() Sender[T] {
	return stoppedSender[T]{}
}

type stoppedSender[T any] struct{}

func (stoppedSender[T]) Connect(r Receiver[T]) Operation {
	return &stoppedOp[T]{receiver: r}
}

type stoppedOp[T any] struct {
	receiver Receiver[T]
	guard    startGuard
}

func (o *stoppedOp[T]) Start() {
	o.guard.arm()
	o.receiver.SetStopped()
}

// Never returns a sender that never completes on the value or error
// channel. If the receiver's environment carries a stoppable token, the
// operation completes on the stopped channel when a stop is requested;
// otherwise it stays pending forever.
func Never[T any]() Sender[T] {
	return neverSender[T]{}
}

type neverSender[T any] struct{}

func (neverSender[T]) Connect(r Receiver[T]) Operation {
	return &neverOp[T]{receiver: r}
}

type neverOp[T any] struct {
	receiver Receiver[T]
	cb       *StopCallback
	guard    startGuard
}

func (o *neverOp[T]) Start() {
	o.guard.arm()
	tok := GetStopToken(GetEnv(o.receiver))
	if !tok.StopPossible() {
		return
	}
	// Runs inline here if the stop was already requested.
	o.cb = tok.OnStop(func() { o.receiver.SetStopped() })
}
