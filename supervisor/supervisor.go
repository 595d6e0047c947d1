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

// Package supervisor restarts actors whose message processing fails.
//
// A Supervisor is an ordinary actor receiving Routed messages. It owns one
// child per ChildSpec and delivers each payload to the child registered under
// the message ID, waiting for the outcome. When the child fails while
// processing it, the child is replaced by a fresh instance built from its
// spec. Messages still queued in the failed child are lost.
package supervisor

import (
	"context"
	"errors"
	"fmt"
	"time"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/flowchartsman/retry"
	otelmetric "go.opentelemetry.io/otel/metric"
	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"

	"github.com/tochemey/aktor/actor"
	gerrors "github.com/tochemey/aktor/errors"
	"github.com/tochemey/aktor/internal/metric"
	"github.com/tochemey/aktor/log"
	"github.com/tochemey/aktor/scheduler"
)

type child[M any] struct {
	spec ChildSpec[M]
	ref  *actor.ActorRef[M]
}

// Supervisor owns a fixed set of named children.
//
// Its state is only accessed from its own router, so a Supervisor must be
// driven through an ActorRef (see Start) and never called directly.
type Supervisor[M any] struct {
	sched           scheduler.Scheduler
	children        map[string]*child[M]
	logger          log.Logger
	metric          *metric.SupervisorMetric
	meterProvider   otelmetric.MeterProvider
	deliveryTimeout time.Duration
	shutdownTimeout time.Duration
	maxRetries      int
	backoff         time.Duration
	childOptions    []actor.SpawnOption
}

// enforce compilation error
var _ actor.Actor[Routed[any]] = (*Supervisor[any])(nil)

// NewSupervisor validates specs and spawns one child per spec onto sched.
//
// Every spec must have a non-empty key unique among specs and a start function.
// All validation problems are reported together. When a child fails to spawn,
// the children spawned so far are released and the error is returned.
func NewSupervisor[M any](ctx context.Context, sched scheduler.Scheduler, specs []ChildSpec[M], opts ...Option) (*Supervisor[M], error) {
	if sched == nil {
		return nil, gerrors.ErrUndefinedScheduler
	}

	if err := validate(specs); err != nil {
		return nil, err
	}

	config := newConfig(opts...)
	supervisorMetric, err := metric.NewSupervisorMetric(metric.New(metric.WithMeterProvider(config.meterProvider)).Meter())
	if err != nil {
		return nil, err
	}

	childOptions := append([]actor.SpawnOption{
		actor.WithLogger(config.logger),
		actor.WithMeterProvider(config.meterProvider),
	}, config.childOptions...)

	s := &Supervisor[M]{
		sched:           sched,
		children:        make(map[string]*child[M], len(specs)),
		logger:          config.logger,
		metric:          supervisorMetric,
		meterProvider:   config.meterProvider,
		deliveryTimeout: config.deliveryTimeout,
		shutdownTimeout: config.shutdownTimeout,
		maxRetries:      config.maxRetries,
		backoff:         config.backoff,
		childOptions:    childOptions,
	}

	for _, spec := range specs {
		ref, err := SupervisedActorOf(ctx, sched, spec, s.childOptions...)
		if err != nil {
			s.releaseChildren()
			return nil, fmt.Errorf("failed to spawn child %s: %w", spec.key, err)
		}
		s.children[spec.key] = &child[M]{spec: spec, ref: ref}
		s.logger.Debugf("child %s spawned (kind=%s, restart=%s, shutdown=%s)", spec.key, spec.kind, spec.restart, spec.shutdown)
	}

	return s, nil
}

// Receive delivers the payload to the child registered under msg.ID and
// restarts the child when it fails to process it. An unknown ID is ignored.
//
// A child that failed on an earlier message is only noticed when it refuses
// the payload. Such a payload was never dispatched, so it is handed to the
// replacement. A payload the child processed and failed on is dropped.
// Receive never fails.
func (s *Supervisor[M]) Receive(ctx context.Context, msg Routed[M]) error {
	c, ok := s.children[msg.ID]
	if !ok {
		s.metric.RecordLookupMiss(ctx, msg.ID)
		s.logger.Debugf("message dropped: %v (key=%s)", gerrors.ErrChildNotFound, msg.ID)
		return nil
	}

	err := s.deliver(ctx, c, msg.Payload)
	if refused(err) {
		if !s.restart(ctx, c, err) {
			return nil
		}
		err = s.deliver(ctx, c, msg.Payload)
	}

	switch {
	case err == nil:
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		s.logger.Warnf("child %s did not process the message within %s", msg.ID, s.deliveryTimeout)
	case errors.Is(err, gerrors.ErrMailboxFull):
		s.logger.Warnf("message dropped: child %s mailbox is full", msg.ID)
	default:
		s.restart(ctx, c, err)
	}
	return nil
}

// deliver sends payload to the child and waits for the outcome within the delivery timeout
func (s *Supervisor[M]) deliver(ctx context.Context, c *child[M], payload M) error {
	ctx, cancel := context.WithTimeout(ctx, s.deliveryTimeout)
	defer cancel()
	return c.ref.SendAndWait(ctx, payload)
}

// refused reports whether the child turned the payload down without
// processing it because it has already terminated
func refused(err error) bool {
	return errors.Is(err, gerrors.ErrDisconnected) || errors.Is(err, gerrors.ErrRefReleased)
}

// Close releases every child and waits, within the shutdown timeout, for them to close.
func (s *Supervisor[M]) Close(ctx context.Context) {
	s.releaseChildren()

	ctx, cancel := context.WithTimeout(ctx, s.shutdownTimeout)
	defer cancel()

	eg, ctx := errgroup.WithContext(ctx)
	for key, c := range s.children {
		done := c.ref.Done()
		eg.Go(func() error {
			select {
			case <-done:
				return nil
			case <-ctx.Done():
				return fmt.Errorf("child %s did not close: %w", key, ctx.Err())
			}
		})
	}

	if err := eg.Wait(); err != nil {
		s.logger.Warn(err)
		return
	}
	s.logger.Debug("supervisor closed")
}

// restart replaces the failed child by a fresh instance built from its spec.
// When every attempt fails the entry keeps the released ref, so the next
// message routed to the child triggers another restart. It reports whether
// the child was replaced.
func (s *Supervisor[M]) restart(ctx context.Context, c *child[M], cause error) bool {
	key := c.spec.key
	s.logger.Warnf("child %s failed (restart=%s), restarting: %v", key, c.spec.restart, cause)
	c.ref.Release()

	var ref *actor.ActorRef[M]
	retrier := retry.NewRetrier(s.maxRetries, s.backoff, s.backoff)
	err := retrier.RunContext(ctx, func(ctx context.Context) error {
		var err error
		ref, err = SupervisedActorOf(ctx, s.sched, c.spec, s.childOptions...)
		return err
	})

	if err != nil {
		s.logger.Errorf("failed to restart child %s: %v", key, err)
		return false
	}

	c.ref = ref
	s.metric.RecordRestart(ctx, key)
	return true
}

func (s *Supervisor[M]) releaseChildren() {
	for _, c := range s.children {
		c.ref.Release()
	}
}

// validate checks every spec and reports all the problems found
func validate[M any](specs []ChildSpec[M]) error {
	var err error
	keys := mapset.NewThreadUnsafeSet[string]()
	for _, spec := range specs {
		if verr := spec.validate(); verr != nil {
			err = multierr.Append(err, verr)
			continue
		}
		if !keys.Add(spec.key) {
			err = multierr.Append(err, gerrors.NewErrDuplicateChildKey(spec.key))
		}
	}
	return err
}
