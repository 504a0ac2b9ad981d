// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package sx

import (
	"sync"

	"code.hybscloud.com/atomix"
	"code.hybscloud.com/iox"
)

// StopCallback lifecycle states.
const (
	cbRegistered uint32 = iota
	cbInvoking
	cbDone
	cbRemoved
)

// StopSource owns the stopped flag and the list of registered callbacks of
// one cancellation scope. The zero value is not usable; construct with
// [NewStopSource].
type StopSource struct {
	stopped atomix.Uint32
	mu      sync.Mutex
	head    *StopCallback
	serial  Serial
}

// NewStopSource creates a stop source in the not-stopped state.
func NewStopSource() *StopSource {
	return &StopSource{serial: nextSerial()}
}

// Serial returns the serial number assigned to this stop source.
func (s *StopSource) Serial() Serial {
	return s.serial
}

// Token returns a cheap, copyable handle referencing this source.
func (s *StopSource) Token() StopToken {
	return StopToken{src: s}
}

// StopRequested reports whether a stop has been requested.
func (s *StopSource) StopRequested() bool {
	return s.stopped.Load() != 0
}

// RequestStop transitions the source to the stopped state and invokes every
// registered callback synchronously on the calling goroutine, one at a
// time, each exactly once. Returns true for exactly one caller across any
// number of concurrent calls; all others observe false and return without
// invoking anything.
func (s *StopSource) RequestStop() bool {
	if !s.stopped.CompareAndSwap(0, 1) {
		return false
	}
	for {
		s.mu.Lock()
		cb := s.head
		if cb == nil {
			s.mu.Unlock()
			return true
		}
		s.unlink(cb)
		cb.state.Store(cbInvoking)
		s.mu.Unlock()
		cb.f()
		cb.state.Store(cbDone)
	}
}

// unlink removes cb from the intrusive list. Caller holds s.mu.
func (s *StopSource) unlink(cb *StopCallback) {
	if cb.prev != nil {
		cb.prev.next = cb.next
	} else {
		s.head = cb.next
	}
	if cb.next != nil {
		cb.next.prev = cb.prev
	}
	cb.prev = nil
	cb.next = nil
}

// StopToken is a copyable handle referencing a [StopSource]. The zero token
// references no source and can never be stopped; it is the default
// cancellation capability of an empty [Env].
type StopToken struct {
	src *StopSource
}

// StopPossible reports whether the token references a source at all.
func (t StopToken) StopPossible() bool {
	return t.src != nil
}

// StopRequested reports whether the referenced source has been stopped.
// Always false for the zero token.
func (t StopToken) StopRequested() bool {
	return t.src != nil && t.src.StopRequested()
}

// OnStop registers f to be invoked when a stop is requested on the
// referenced source. If the source is already stopped, f runs synchronously
// inline before OnStop returns. On the zero token, f is never invoked.
//
// The returned handle's Unregister must not be called from within f itself.
func (t StopToken) OnStop(f func()) *StopCallback {
	if t.src == nil {
		return &StopCallback{}
	}
	s := t.src
	cb := &StopCallback{src: s, f: f}
	s.mu.Lock()
	if s.stopped.Load() != 0 {
		s.mu.Unlock()
		cb.state.Store(cbDone)
		f()
		return cb
	}
	cb.next = s.head
	if s.head != nil {
		s.head.prev = cb
	}
	s.head = cb
	s.mu.Unlock()
	return cb
}

// StopCallback is one registration node in a source's intrusive callback
// list. Obtained from [StopToken.OnStop].
type StopCallback struct {
	src        *StopSource
	f          func()
	prev, next *StopCallback
	state      atomix.Uint32
}

// Unregister removes the callback so it will never be invoked. If a
// concurrent [StopSource.RequestStop] is invoking the callback right now,
// Unregister blocks until that invocation finishes, so the state captured
// by the callback may be safely destroyed once Unregister returns.
//
// Unregister is idempotent and a no-op on a handle whose callback has
// already run.
func (c *StopCallback) Unregister() {
	if c == nil || c.src == nil {
		return
	}
	s := c.src
	s.mu.Lock()
	if c.state.Load() == cbRegistered {
		s.unlink(c)
		c.state.Store(cbRemoved)
		s.mu.Unlock()
		return
	}
	s.mu.Unlock()
	var bo iox.Backoff
	for c.state.Load() == cbInvoking {
		bo.Wait()
	}
}
