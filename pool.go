// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package sx

import "sync"

// ThreadPool is a FIFO task execution service backed by N worker
// goroutines sharing one queue. Items dequeue in submission order, but
// independent items run concurrently across workers with no ordering
// guarantee between them.
//
// Shutdown semantics match [EventLoop]: Post after Stop returns false, and
// Stop drains all accepted tasks before the workers exit.
type ThreadPool struct {
	mu      sync.Mutex
	cond    *sync.Cond
	queue   []func()
	stopped bool
	workers int
	serial  Serial
}

// NewThreadPool creates a pool with n workers (at least one) and starts
// them.
func NewThreadPool(n int) *ThreadPool {
	if n < 1 {
		n = 1
	}
	p := &ThreadPool{workers: n, serial: nextSerial()}
	p.cond = sync.NewCond(&p.mu)
	for range n {
		go p.run()
	}
	return p
}

// Serial returns the serial number assigned to this pool.
func (p *ThreadPool) Serial() Serial {
	return p.serial
}

// Post submits a task for execution by any idle worker.
// Returns false if the pool has been stopped; the task is dropped.
func (p *ThreadPool) Post(task func()) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.stopped {
		return false
	}
	p.queue = append(p.queue, task)
	p.cond.Signal()
	return true
}

func (p *ThreadPool) run() {
	p.mu.Lock()
	for {
		for !p.stopped && len(p.queue) == 0 {
			p.cond.Wait()
		}
		if p.stopped && len(p.queue) == 0 {
			break
		}
		task := p.queue[0]
		p.queue = p.queue[1:]
		p.mu.Unlock()
		task()
		p.mu.Lock()
	}
	p.workers--
	p.cond.Broadcast()
	p.mu.Unlock()
}

// Stop rejects further posts, then blocks until all accepted tasks have
// run and every worker has exited. Safe to call more than once.
func (p *ThreadPool) Stop() {
	p.mu.Lock()
	p.stopped = true
	p.cond.Broadcast()
	for p.workers > 0 {
		p.cond.Wait()
	}
	p.mu.Unlock()
}

// GoContext tracks goroutines spawned one per submitted item, so callers
// can join them. This can easily exhaust resources if used carelessly;
// prefer [ThreadPool] for most workloads.
type GoContext struct {
	mu     sync.Mutex
	cond   *sync.Cond
	active int
	closed bool
}

// NewGoContext creates an empty goroutine context.
func NewGoContext() *GoContext {
	c := &GoContext{}
	c.cond = sync.NewCond(&c.mu)
	return c
}

// Submit spawns a goroutine running task. Returns false if Wait has
// already completed the context.
func (c *GoContext) Submit(task func()) bool {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return false
	}
	c.active++
	c.mu.Unlock()
	go func() {
		task()
		c.mu.Lock()
		c.active--
		c.cond.Broadcast()
		c.mu.Unlock()
	}()
	return true
}

// Wait blocks until every spawned goroutine has finished, then closes the
// context against further submissions.
func (c *GoContext) Wait() {
	c.mu.Lock()
	for c.active > 0 {
		c.cond.Wait()
	}
	c.closed = true
	c.mu.Unlock()
}
