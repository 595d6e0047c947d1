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
	"context"

	"go.uber.org/atomic"

	gerrors "github.com/tochemey/aktor/errors"
)

// ActorRef is a handle on an actor's mailbox.
//
// An ActorRef is safe for concurrent use. Each ActorRef counts as one handle
// until it is released; the actor is closed once every handle has been
// released and its mailbox is empty. Use Clone to hand the actor to another
// owner rather than sharing one ActorRef whose release would cut everyone off.
type ActorRef[M any] struct {
	router   *router[M]
	released *atomic.Bool
}

func newActorRef[M any](r *router[M]) *ActorRef[M] {
	return &ActorRef[M]{
		router:   r,
		released: atomic.NewBool(false),
	}
}

// ID returns the unique identifier of the actor
func (ref *ActorRef[M]) ID() string {
	return ref.router.id
}

// Name returns the name of the actor
func (ref *ActorRef[M]) Name() string {
	return ref.router.name
}

// Send enqueues msg at the tail of the actor's mailbox.
//
// It fails with errors.ErrDisconnected once the actor has terminated, with
// errors.ErrRefReleased if this handle has been released and with
// errors.ErrMailboxFull when a bounded mailbox is at capacity.
func (ref *ActorRef[M]) Send(msg M) error {
	return ref.send(&envelope[M]{message: msg})
}

// SendAndRelease sends msg as the last message of this handle, then releases it.
// The router yields once before processing msg, giving concurrent releases the
// chance to be observed together with it. The handle is released even when the
// send fails.
func (ref *ActorRef[M]) SendAndRelease(msg M) error {
	err := ref.send(&envelope[M]{message: msg, release: true})
	ref.Release()
	return err
}

// SendAndWait sends msg and waits until the actor has processed it.
//
// It returns nil when Receive succeeded, the error Receive returned, a
// *errors.PanicError when Receive panicked, errors.ErrDisconnected when the
// actor terminated before processing msg or the context error when ctx is done
// first. In the latter case msg may still be processed later.
func (ref *ActorRef[M]) SendAndWait(ctx context.Context, msg M) error {
	outcome := make(chan error, 1)
	if err := ref.send(&envelope[M]{message: msg, outcome: outcome}); err != nil {
		return err
	}

	select {
	case err := <-outcome:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (ref *ActorRef[M]) send(env *envelope[M]) error {
	if ref.released.Load() {
		return gerrors.ErrRefReleased
	}

	if err := ref.router.mailbox.send(env); err != nil {
		return err
	}

	ref.router.schedule()
	return nil
}

// Clone returns a new handle on the same actor.
// Cloning a released handle returns a released handle.
func (ref *ActorRef[M]) Clone() *ActorRef[M] {
	clone := newActorRef(ref.router)
	if ref.released.Load() {
		clone.released.Store(true)
		return clone
	}

	ref.router.mailbox.handles.Inc()
	// the handle may have been released while being cloned
	if ref.released.Load() {
		clone.Release()
	}
	return clone
}

// Release gives up this handle. Only the first call has an effect.
func (ref *ActorRef[M]) Release() {
	if ref.released.Swap(true) {
		return
	}

	ref.router.mailbox.handles.Dec()
	ref.router.mailbox.wake()
	ref.router.schedule()
}

// QueueDepth returns the number of messages waiting in the mailbox
func (ref *ActorRef[M]) QueueDepth() int64 {
	return ref.router.mailbox.depth.Load()
}

// HandleCount returns the number of live handles, including the one the
// router keeps for itself
func (ref *ActorRef[M]) HandleCount() int64 {
	return ref.router.mailbox.handles.Load()
}

// State returns the state of the actor
func (ref *ActorRef[M]) State() State {
	return State(ref.router.state.Load())
}

// IsAlive reports whether the actor has not terminated yet
func (ref *ActorRef[M]) IsAlive() bool {
	return ref.State() != Closed
}

// Done returns a channel closed once the actor has terminated
func (ref *ActorRef[M]) Done() <-chan struct{} {
	return ref.router.done
}

// Err returns the failure that terminated the actor, or nil when it closed normally
// or is still alive.
func (ref *ActorRef[M]) Err() error {
	return ref.router.err.Load()
}
