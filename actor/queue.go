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
	"sync/atomic"

	gods "github.com/Workiva/go-datastructures/queue"

	gerrors "github.com/tochemey/aktor/errors"
)

// queue is the FIFO backing a mailbox. Many goroutines may enqueue
// concurrently; dequeue is only ever called by the router.
type queue[M any] interface {
	enqueue(env *envelope[M]) error
	// dequeue returns nil when the queue is empty
	dequeue() *envelope[M]
	isEmpty() bool
	dispose()
}

type node[M any] struct {
	next  atomic.Pointer[node[M]]
	value *envelope[M]
}

// unboundedQueue is a lock-free multi-producer single-consumer linked queue.
//
// Producers swap the tail then link the previous node to the new one, so
// between the two steps a message is enqueued but not yet visible to the
// consumer. isEmpty may therefore briefly report true right after an enqueue
// started; no message is ever lost.
type unboundedQueue[M any] struct {
	head atomic.Pointer[node[M]] // consumer only
	_    [64]byte
	tail atomic.Pointer[node[M]] // producers only
	_    [64]byte
}

// enforce compilation error
var _ queue[any] = (*unboundedQueue[any])(nil)

func newUnboundedQueue[M any]() *unboundedQueue[M] {
	stub := new(node[M])
	q := new(unboundedQueue[M])
	q.head.Store(stub)
	q.tail.Store(stub)
	return q
}

func (q *unboundedQueue[M]) enqueue(env *envelope[M]) error {
	n := &node[M]{value: env}
	prev := q.tail.Swap(n)
	prev.next.Store(n)
	return nil
}

func (q *unboundedQueue[M]) dequeue() *envelope[M] {
	head := q.head.Load()
	next := head.next.Load()
	if next == nil {
		return nil
	}

	q.head.Store(next)
	value := next.value
	next.value = nil
	return value
}

func (q *unboundedQueue[M]) isEmpty() bool {
	return q.head.Load().next.Load() == nil
}

func (q *unboundedQueue[M]) dispose() {}

// boundedQueue is a fixed-capacity queue backed by a ring buffer. It never
// blocks: a full ring rejects the message.
type boundedQueue[M any] struct {
	ring *gods.RingBuffer
}

// enforce compilation error
var _ queue[any] = (*boundedQueue[any])(nil)

func newBoundedQueue[M any](capacity int) *boundedQueue[M] {
	return &boundedQueue[M]{ring: gods.NewRingBuffer(uint64(capacity))}
}

func (q *boundedQueue[M]) enqueue(env *envelope[M]) error {
	ok, err := q.ring.Offer(env)
	if err != nil {
		return err
	}
	if !ok {
		return gerrors.ErrMailboxFull
	}
	return nil
}

func (q *boundedQueue[M]) dequeue() *envelope[M] {
	if q.ring.Len() == 0 {
		return nil
	}

	item, err := q.ring.Get()
	if err != nil {
		return nil
	}
	env, _ := item.(*envelope[M])
	return env
}

func (q *boundedQueue[M]) isEmpty() bool {
	return q.ring.Len() == 0
}

func (q *boundedQueue[M]) dispose() {
	q.ring.Dispose()
}
