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

// Package actor implements mailbox-bound actors driven by a scheduler.
//
// An actor is spawned with ActorOf, which returns the first ActorRef to its
// mailbox. Every ActorRef is an independent handle: Clone creates another one
// and Release gives one up. Once every handle has been released and the
// mailbox has been drained, the actor is closed and its router exits. A
// message whose processing fails, by returning an error or by panicking,
// terminates the actor as well; recovering from that is the job of a
// supervisor.
package actor

import "context"

// Actor is a unit of sequential logic processing messages of type M.
//
// Receive and Close are only ever called from the actor's router, one call at
// a time, so an implementation does not need to synchronize its own state.
type Actor[M any] interface {
	// Receive handles a single message. A non-nil error is a failure: the
	// actor is terminated and the remaining queued messages are dropped.
	Receive(ctx context.Context, msg M) error
	// Close is called at most once, when the actor terminates.
	Close(ctx context.Context)
}

// ReceiveFunc adapts a function to the Actor interface. Its Close is a no-op.
type ReceiveFunc[M any] func(ctx context.Context, msg M) error

// enforce compilation error
var _ Actor[any] = ReceiveFunc[any](nil)

// Receive calls f(ctx, msg).
func (f ReceiveFunc[M]) Receive(ctx context.Context, msg M) error {
	return f(ctx, msg)
}

// Close implements Actor.
func (f ReceiveFunc[M]) Close(context.Context) {}
