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
	"errors"
	"fmt"
	"runtime"
	"time"

	gerrors "github.com/tochemey/aktor/errors"
	"github.com/tochemey/aktor/internal/workerpool"
	"github.com/tochemey/aktor/log"
)

// WorkerPool is a KeyedScheduler backed by a sharded pool of reusable goroutines.
// Keyed tasks land on the shard picked by hashing the key; other tasks are
// spread in round robin.
type WorkerPool struct {
	numShards   int
	idleTimeout time.Duration
	logger      log.Logger
	pool        *workerpool.WorkerPool
}

// enforce compilation error
var _ KeyedScheduler = (*WorkerPool)(nil)

// NewWorkerPool creates a WorkerPool. Call Start before scheduling work.
func NewWorkerPool(opts ...Option) *WorkerPool {
	wp := &WorkerPool{
		numShards:   runtime.GOMAXPROCS(0),
		idleTimeout: time.Second,
		logger:      log.DefaultLogger,
	}

	for _, opt := range opts {
		opt.Apply(wp)
	}

	wp.pool = workerpool.New(
		workerpool.WithNumShards(wp.numShards),
		workerpool.WithIdleTimeout(wp.idleTimeout),
	)
	return wp
}

// Start makes the pool accept work
func (wp *WorkerPool) Start() {
	wp.pool.Start()
	wp.logger.Debugf("worker pool started with %d shards", wp.numShards)
}

// Stop rejects new work and waits for the running tasks to return.
// It must not be called from inside a scheduled task.
func (wp *WorkerPool) Stop() {
	wp.pool.Stop()
	wp.logger.Debug("worker pool stopped")
}

// SpawnedWorkers returns the number of live workers
func (wp *WorkerPool) SpawnedWorkers() int {
	return wp.pool.SpawnedWorkers()
}

// Schedule implements Scheduler
func (wp *WorkerPool) Schedule(task func()) error {
	return toSchedulerError(wp.pool.Submit(task))
}

// ScheduleKeyed implements KeyedScheduler
func (wp *WorkerPool) ScheduleKeyed(key string, task func()) error {
	return toSchedulerError(wp.pool.SubmitKeyed(key, task))
}

func toSchedulerError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, workerpool.ErrPoolClosed):
		return gerrors.ErrSchedulerStopped
	default:
		return fmt.Errorf("failed to schedule task: %w", err)
	}
}
