/*
 * MIT License
 *
 * Copyright (c) 2022-2025 Arsene Tochemey Gandote
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 */

package actor

import (
	"runtime"
	"time"

	"go.uber.org/atomic"

	gerrors "github.com/tochemey/aktor/errors"
)

// mailbox pairs an actor's queue with the counters driving its shutdown.
//
// handles counts the live handles, including the one held by the router for
// its own bookkeeping. depth counts the messages enqueued and not yet
// dequeued; it is incremented before a message is enqueued and decremented as
// soon as the router dequeues it.
type mailbox[M any] struct {
	queue    queue[M]
	capacity int64
	handles  *atomic.Int64
	depth    *atomic.Int64
	closed   *atomic.Bool
	// notify wakes a router lingering in receive
	notify chan struct{}
}

func newMailbox[M any](capacity int) *mailbox[M] {
	var q queue[M] = newUnboundedQueue[M]()
	if capacity > 0 {
		q = newBoundedQueue[M](capacity)
	}

	return &mailbox[M]{
		queue:    q,
		capacity: int64(capacity),
		// the router's handle plus the one returned to the caller
		handles: atomic.NewInt64(2),
		depth:   atomic.NewInt64(0),
		closed:  atomic.NewBool(false),
		notify:  make(chan struct{}, 1),
	}
}

// send appends env to the queue.
func (m *mailbox[M]) send(env *envelope[M]) error {
	depth := m.depth.Inc()
	// the router sets closed before draining until depth drops to zero, so
	// either it sees this increment or this check sees closed
	if m.closed.Load() {
		m.depth.Dec()
		return gerrors.ErrDisconnected
	}

	if m.capacity > 0 && depth > m.capacity {
		m.depth.Dec()
		return gerrors.ErrMailboxFull
	}

	if err := m.queue.enqueue(env); err != nil {
		m.depth.Dec()
		if m.closed.Load() {
			return gerrors.ErrDisconnected
		}
		return err
	}

	m.wake()
	return nil
}

// wake signals a lingering router without blocking
func (m *mailbox[M]) wake() {
	select {
	case m.notify <- struct{}{}:
	default:
	}
}

// receive dequeues the head message. When the queue is empty and wait is
// positive it waits at most wait for a message or a wake-up before trying once
// more. It returns nil when no message is available.
func (m *mailbox[M]) receive(wait time.Duration) *envelope[M] {
	if env := m.tryReceive(); env != nil || wait <= 0 {
		return env
	}

	timer := time.NewTimer(wait)
	defer timer.Stop()
	select {
	case <-m.notify:
	case <-timer.C:
	}
	return m.tryReceive()
}

func (m *mailbox[M]) tryReceive() *envelope[M] {
	env := m.queue.dequeue()
	if env != nil {
		m.depth.Dec()
	}
	return env
}

// shutdownEligible reports whether the actor can be closed: nothing is
// queued and no handle other than the router's own is alive.
func (m *mailbox[M]) shutdownEligible() bool {
	return m.depth.Load() == 0 && m.handles.Load() <= 1
}

// close disconnects the mailbox and drains the messages that were still
// queued. Senders waiting on a drained message are told the actor is gone.
// It returns the number of dropped messages.
func (m *mailbox[M]) close() int64 {
	m.closed.Store(true)

	var dropped int64
	for m.depth.Load() > 0 {
		env := m.queue.dequeue()
		if env == nil {
			// a sender is between its depth increment and its enqueue
			runtime.Gosched()
			continue
		}
		m.depth.Dec()
		env.reply(gerrors.ErrDisconnected)
		dropped++
	}

	m.queue.dispose()
	return dropped
}
