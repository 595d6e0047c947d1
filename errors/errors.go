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

package errors

import (
	"errors"
	"fmt"
)

var (
	// ErrDisconnected is returned when a message is sent to a mailbox whose
	// consuming end has been closed, i.e. the actor has been torn down.
	// The caller should drop the stale reference.
	ErrDisconnected = errors.New("mailbox is disconnected")

	// ErrRefReleased is returned when a message is sent through an actor reference
	// that has already been released by its owner.
	ErrRefReleased = errors.New("actor reference is released")

	// ErrMailboxFull is returned when a bounded mailbox has reached its capacity.
	ErrMailboxFull = errors.New("mailbox is full")

	// ErrUndefinedActor is returned when a nil actor is given to the runtime.
	ErrUndefinedActor = errors.New("actor is not defined")

	// ErrUndefinedScheduler is returned when no scheduler is given to the runtime.
	ErrUndefinedScheduler = errors.New("scheduler is not defined")

	// ErrSchedulerStopped is returned when work is submitted to a scheduler that
	// has not been started or has already been stopped.
	ErrSchedulerStopped = errors.New("scheduler is not running")

	// ErrTimersNotStarted is returned when a message is scheduled on timers that are not running.
	ErrTimersNotStarted = errors.New("timers are not started")

	// ErrInvalidChildSpec is returned when a child specification is malformed.
	ErrInvalidChildSpec = errors.New("invalid child spec")

	// ErrDuplicateChildKey is returned when two child specifications share the same key.
	ErrDuplicateChildKey = errors.New("duplicate child key")

	// ErrChildNotFound is reported when a routed message targets a key the
	// supervisor does not know. It is logged, never returned to the sender.
	ErrChildNotFound = errors.New("child not found")
)

// PanicError defines the error raised when an actor panics while handling a message
type PanicError struct {
	err error
}

// enforce compilation error
var _ error = (*PanicError)(nil)

// NewPanicError creates an instance of PanicError
func NewPanicError(err error) *PanicError {
	return &PanicError{err}
}

// Error implements the standard error interface
func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.err)
}

// Unwrap returns the underlying error
func (e *PanicError) Unwrap() error {
	return e.err
}

// NewErrInvalidChildSpec wraps the reason a child spec was rejected
func NewErrInvalidChildSpec(key, reason string) error {
	return fmt.Errorf("%w (key=%q): %s", ErrInvalidChildSpec, key, reason)
}

// NewErrDuplicateChildKey reports a child key defined more than once
func NewErrDuplicateChildKey(key string) error {
	return fmt.Errorf("%w: %s", ErrDuplicateChildKey, key)
}
