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
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/atomic"

	gerrors "github.com/tochemey/aktor/errors"
	"github.com/tochemey/aktor/log"
)

func TestWorkerPool(t *testing.T) {
	t.Run("With happy path", func(t *testing.T) {
		pool := NewWorkerPool(WithNumShards(4), WithIdleTimeout(time.Minute), WithLogger(log.DiscardLogger))
		pool.Start()

		var count atomic.Int64
		var wg sync.WaitGroup
		wg.Add(200)
		for i := range 200 {
			if i%2 == 0 {
				require.NoError(t, pool.Schedule(func() {
					defer wg.Done()
					count.Inc()
				}))
				continue
			}
			require.NoError(t, pool.ScheduleKeyed("actor", func() {
				defer wg.Done()
				count.Inc()
			}))
		}
		wg.Wait()
		assert.EqualValues(t, 200, count.Load())
		assert.NotZero(t, pool.SpawnedWorkers())

		pool.Stop()
		assert.Zero(t, pool.SpawnedWorkers())
	})
	t.Run("When not started", func(t *testing.T) {
		pool := NewWorkerPool(WithLogger(log.DiscardLogger))
		require.ErrorIs(t, pool.Schedule(func() {}), gerrors.ErrSchedulerStopped)
		require.ErrorIs(t, pool.ScheduleKeyed("key", func() {}), gerrors.ErrSchedulerStopped)
	})
	t.Run("When stopped", func(t *testing.T) {
		pool := NewWorkerPool(WithLogger(log.DiscardLogger))
		pool.Start()
		pool.Stop()
		require.ErrorIs(t, pool.Schedule(func() {}), gerrors.ErrSchedulerStopped)
	})
}
