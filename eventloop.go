// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package sx

import "sync"

// EventLoop is a single-threaded FIFO task execution service. Multiple
// goroutines may post tasks concurrently; one worker goroutine, owned by
// the loop, drains them strictly in submission order.
//
// Shutdown semantics:
//   - Post after Stop returns false and the task is dropped.
//   - Stop drains every previously accepted task before the worker exits,
//     and returns only after the worker has exited.
type EventLoop struct {
	mu      sync.Mutex
	cond    *sync.Cond
	queue   []func()
	stopped bool
	exited  bool
	serial  Serial
}

// NewEventLoop creates an event loop and starts its worker goroutine.
func NewEventLoop() *EventLoop {
	l := &EventLoop{serial: nextSerial()}
	l.cond = sync.NewCond(&l.mu)
	go l.run()
	return l
}

// Serial returns the serial number assigned to this loop.
func (l *EventLoop) Serial() Serial {
	return l.serial
}

// Post submits a task for execution on the worker.
// Returns false if the loop has been stopped; the task is dropped.
func (l *EventLoop) Post(task func()) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.stopped {
		return false
	}
	l.queue = append(l.queue, task)
	l.cond.Signal()
	return true
}

// run drains the queue until stopped and empty. Tasks execute outside the
// lock so they may re-post.
func (l *EventLoop) run() {
	l.mu.Lock()
	for {
		for !l.stopped && len(l.queue) == 0 {
			l.cond.Wait()
		}
		if l.stopped && len(l.queue) == 0 {
			break
		}
		task := l.queue[0]
		l.queue = l.queue[1:]
		l.mu.Unlock()
		task()
		l.mu.Lock()
	}
	l.exited = true
	l.cond.Broadcast()
	l.mu.Unlock()
}

// Stop rejects further posts, then blocks until the worker has drained all
// previously accepted tasks and exited. Safe to call more than once.
func (l *EventLoop) Stop() {
	l.mu.Lock()
	l.stopped = true
	l.cond.Broadcast()
	for !l.exited {
		l.cond.Wait()
	}
	l.mu.Unlock()
}
