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

package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/reugn/go-quartz/job"
	quartzlogger "github.com/reugn/go-quartz/logger"
	"github.com/reugn/go-quartz/quartz"
	"go.uber.org/atomic"

	gerrors "github.com/tochemey/aktor/errors"
	"github.com/tochemey/aktor/log"
)

// Sender is the producing side of a mailbox. *actor.ActorRef satisfies it.
type Sender[M any] interface {
	Send(msg M) error
}

// Timers delivers messages to actors in the future, once, at a fixed interval
// or following a cron expression. A timed delivery is an ordinary Send made
// from a timer goroutine; it keeps no handle on the target, so the target may
// terminate in the meantime. Repeating deliveries to a terminated target are
// cancelled on their next firing.
type Timers struct {
	mu              sync.Mutex
	quartzScheduler quartz.Scheduler
	started         *atomic.Bool
	logger          log.Logger
	stopTimeout     time.Duration
}

// NewTimers creates an instance of Timers. stopTimeout bounds how long Stop
// waits for in-flight deliveries.
func NewTimers(logger log.Logger, stopTimeout time.Duration) *Timers {
	quartzScheduler, _ := quartz.NewStdScheduler(quartz.WithLogger(quartzlogger.NewSimpleLogger(nil, quartzlogger.LevelOff)))
	if logger == nil {
		logger = log.DefaultLogger
	}

	return &Timers{
		quartzScheduler: quartzScheduler,
		started:         atomic.NewBool(false),
		logger:          logger,
		stopTimeout:     stopTimeout,
	}
}

// Start starts the timers
func (x *Timers) Start(ctx context.Context) {
	x.mu.Lock()
	defer x.mu.Unlock()
	x.quartzScheduler.Start(ctx)
	x.started.Store(x.quartzScheduler.IsStarted())
	x.logger.Debug("timers started")
}

// Stop clears every pending delivery and waits for the running ones to return.
func (x *Timers) Stop(ctx context.Context) {
	if !x.started.Load() {
		return
	}

	x.mu.Lock()
	defer x.mu.Unlock()
	_ = x.quartzScheduler.Clear()
	x.quartzScheduler.Stop()
	x.started.Store(x.quartzScheduler.IsStarted())

	ctx, cancel := context.WithTimeout(ctx, x.stopTimeout)
	defer cancel()
	x.quartzScheduler.Wait(ctx)
	x.logger.Debug("timers stopped")
}

// Cancel removes a pending delivery given the key returned when it was scheduled.
func (x *Timers) Cancel(key string) error {
	x.mu.Lock()
	defer x.mu.Unlock()
	if !x.started.Load() {
		return gerrors.ErrTimersNotStarted
	}

	if err := x.quartzScheduler.DeleteJob(quartz.NewJobKey(key)); err != nil {
		return fmt.Errorf("failed to cancel timer %s: %w", key, err)
	}
	return nil
}

// ScheduleOnce sends message to target once, after delay. It returns the key of the timer.
func ScheduleOnce[M any](timers *Timers, target Sender[M], message M, delay time.Duration) (string, error) {
	return schedule(timers, target, message, quartz.NewRunOnceTrigger(delay))
}

// ScheduleEvery sends message to target every interval until cancelled or
// until target is torn down. It returns the key of the timer.
func ScheduleEvery[M any](timers *Timers, target Sender[M], message M, interval time.Duration) (string, error) {
	return schedule(timers, target, message, quartz.NewSimpleTrigger(interval))
}

// ScheduleCron sends message to target following the cron expression, evaluated
// in the local time zone. It returns the key of the timer.
func ScheduleCron[M any](timers *Timers, target Sender[M], message M, cronExpression string) (string, error) {
	trigger, err := quartz.NewCronTriggerWithLoc(cronExpression, time.Now().Location())
	if err != nil {
		timers.logger.Error(fmt.Errorf("failed to schedule message: %w", err))
		return "", err
	}
	return schedule(timers, target, message, trigger)
}

func schedule[M any](x *Timers, target Sender[M], message M, trigger quartz.Trigger) (string, error) {
	x.mu.Lock()
	defer x.mu.Unlock()

	if !x.started.Load() {
		return "", gerrors.ErrTimersNotStarted
	}

	key := uuid.NewString()
	jobKey := quartz.NewJobKey(key)
	deliver := job.NewFunctionJob[bool](
		func(context.Context) (bool, error) {
			err := target.Send(message)
			if errors.Is(err, gerrors.ErrDisconnected) || errors.Is(err, gerrors.ErrRefReleased) {
				// the target is gone for good
				_ = x.quartzScheduler.DeleteJob(jobKey)
			}
			return err == nil, err
		},
	)

	if err := x.quartzScheduler.ScheduleJob(quartz.NewJobDetail(deliver, jobKey), trigger); err != nil {
		return "", fmt.Errorf("failed to schedule message: %w", err)
	}
	return key, nil
}
