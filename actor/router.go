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
	"errors"
	"fmt"
	"runtime"
	"time"

	"go.uber.org/atomic"

	gerrors "github.com/tochemey/aktor/errors"
	"github.com/tochemey/aktor/internal/metric"
	"github.com/tochemey/aktor/log"
	"github.com/tochemey/aktor/scheduler"
)

const (
	idle int32 = iota
	busy
)

// maxIdleAttempts bounds the consecutive empty receives counter
const maxIdleAttempts = 90

// router owns an actor and the consuming end of its mailbox.
//
// It never holds a goroutine while there is nothing to do. A send or a
// release moves processing from idle to busy and submits one run to the
// scheduler; the run drains the mailbox and parks once it is empty.
type router[M any] struct {
	id      string
	name    string
	ctx     context.Context
	actor   Actor[M]
	mailbox *mailbox[M]
	sched   scheduler.Scheduler
	logger  log.Logger
	metric  *metric.RouterMetric

	linger      time.Duration
	lingerPolls int
	// idleAttempts is only touched by the active run
	idleAttempts int

	processing *atomic.Int32
	state      *atomic.Int32
	err        *atomic.Error
	done       chan struct{}
}

// schedule submits a run unless one is already active or the actor is closed.
func (r *router[M]) schedule() {
	if State(r.state.Load()) == Closed {
		return
	}

	if !r.processing.CompareAndSwap(idle, busy) {
		return
	}

	if err := r.submit(); err != nil {
		r.processing.Store(idle)
		r.logger.Errorf("failed to schedule actor run: %v", err)
	}
}

func (r *router[M]) submit() error {
	if keyed, ok := r.sched.(scheduler.KeyedScheduler); ok {
		return keyed.ScheduleKeyed(r.id, r.run)
	}
	return r.sched.Schedule(r.run)
}

// run processes the mailbox until it is empty, then parks.
func (r *router[M]) run() {
	for {
		if env := r.mailbox.receive(r.linger); env != nil {
			r.idleAttempts = 0
			if !r.handle(env) {
				return
			}

			if r.shutdownEligible() {
				r.terminate(nil)
				return
			}
			continue
		}

		r.idleAttempts++
		if r.shutdownEligible() {
			r.terminate(nil)
			return
		}

		park := r.linger <= 0 || r.idleAttempts >= r.lingerPolls
		if r.idleAttempts >= maxIdleAttempts {
			r.idleAttempts = 0
		}

		if !park {
			continue
		}

		r.idleAttempts = 0
		r.processing.Store(idle)

		// a send or a release may have come in before the flag was reset
		if (!r.mailbox.queue.isEmpty() || r.shutdownEligible()) && r.processing.CompareAndSwap(idle, busy) {
			continue
		}
		return
	}
}

// handle dispatches one message. It returns false when the message failed and
// the actor has been terminated.
func (r *router[M]) handle(env *envelope[M]) bool {
	if env.release {
		runtime.Gosched()
	}

	start := time.Now()
	err := r.dispatch(env.message)
	env.reply(err)

	if err != nil {
		r.metric.RecordFailure(r.ctx)
		r.logger.Errorf("failed to process message: %v", err)
		r.terminate(err)
		return false
	}

	r.metric.RecordProcessed(r.ctx, time.Since(start))
	return true
}

// dispatch calls Receive, turning a panic into a *errors.PanicError.
func (r *router[M]) dispatch(msg M) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = toPanicError(rec)
		}
	}()
	return r.actor.Receive(r.ctx, msg)
}

func (r *router[M]) shutdownEligible() bool {
	if r.mailbox.handles.Load() > 1 {
		return false
	}

	if r.mailbox.depth.Load() > 0 {
		r.state.CompareAndSwap(int32(Running), int32(Draining))
		return false
	}
	return true
}

// terminate is the single terminal transition of the router. It only ever
// runs once since it is reached from the active run, which never resumes.
func (r *router[M]) terminate(cause error) {
	r.state.Store(int32(Closed))

	if dropped := r.mailbox.close(); dropped > 0 {
		r.metric.RecordDropped(r.ctx, dropped)
		r.logger.Warnf("dropped %d queued messages", dropped)
	}

	r.closeActor()
	r.metric.RecordClose(r.ctx)

	if cause != nil {
		r.err.Store(cause)
	}
	close(r.done)
	r.logger.Debug("actor closed")
}

func (r *router[M]) closeActor() {
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Errorf("actor close failed: %v", toPanicError(rec))
		}
	}()
	r.actor.Close(r.ctx)
}

// toPanicError wraps a recovered value with the location that raised it.
func toPanicError(rec any) *gerrors.PanicError {
	// skip toPanicError, the deferred function and runtime.gopanic
	pc, fn, line, _ := runtime.Caller(3)
	location := fmt.Sprintf("%s[%s:%d]", runtime.FuncForPC(pc).Name(), fn, line)

	if err, ok := rec.(error); ok {
		var pe *gerrors.PanicError
		if errors.As(err, &pe) {
			return pe
		}
		return gerrors.NewPanicError(fmt.Errorf("%w at %s", err, location))
	}
	return gerrors.NewPanicError(fmt.Errorf("%#v at %s", rec, location))
}
