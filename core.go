// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package sx

import (
	"code.hybscloud.com/atomix"
)

// Sender describes a unit of asynchronous work completing with a value of
// type T. A Sender is an inert value: no work happens until the operation
// returned by Connect is started. Composing senders produces new sender
// values.
type Sender[T any] interface {
	// Connect binds the sender to a receiver, materializing the operation
	// state that owns all resources of the in-flight work.
	Connect(r Receiver[T]) Operation
}

// Receiver is the three-channel completion interface. Exactly one channel
// is invoked exactly once per connected and started operation:
//
//   - SetValue: successful completion
//   - SetError: failure
//   - SetStopped: cooperative cancellation, no payload
//
// A receiver that additionally implements [EnvProvider] exposes ambient
// capabilities (scheduler, stop token) to the operation beneath it.
type Receiver[T any] interface {
	SetValue(v T)
	SetError(err error)
	SetStopped()
}

// Operation is the live state created by [Sender.Connect]. It is exclusively
// owned by one logical call chain, is never copied after creation, and
// Start is called at most once. Calling Start twice is a contract violation
// and panics.
type Operation interface {
	Start()
}

// EnvProvider is implemented by receivers that carry an [Env].
// [GetEnv] falls back to the empty environment for receivers that do not.
type EnvProvider interface {
	Env() Env
}

// startGuard enforces the start-at-most-once operation contract.
type startGuard struct {
	started atomix.Uint32
}

// arm panics if the operation has already been started.
func (g *startGuard) arm() {
	if !g.started.CompareAndSwap(0, 1) {
		panic("sx: operation started twice")
	}
}
