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
	"sync"
	"testing"
	"time"

	"github.com/reugn/go-quartz/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	gerrors "github.com/tochemey/aktor/errors"
	"github.com/tochemey/aktor/log"
)

type recorder struct {
	mu       sync.Mutex
	received []string
	err      error
}

func (r *recorder) Send(msg string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.received = append(r.received, msg)
	return nil
}

func (r *recorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.received)
}

func (r *recorder) fail(err error) {
	r.mu.Lock()
	r.err = err
	r.mu.Unlock()
}

func TestTimers(t *testing.T) {
	ctx := context.Background()

	t.Run("ScheduleOnce delivers a single message", func(t *testing.T) {
		timers := NewTimers(log.DiscardLogger, time.Second)
		timers.Start(ctx)
		defer timers.Stop(ctx)

		target := new(recorder)
		key, err := ScheduleOnce[string](timers, target, "tick", 10*time.Millisecond)
		require.NoError(t, err)
		require.NotEmpty(t, key)

		require.Eventually(t, func() bool { return target.count() == 1 }, time.Second, 5*time.Millisecond)
		time.Sleep(50 * time.Millisecond)
		assert.Equal(t, 1, target.count())
	})
	t.Run("ScheduleEvery repeats until cancelled", func(t *testing.T) {
		timers := NewTimers(log.DiscardLogger, time.Second)
		timers.Start(ctx)
		defer timers.Stop(ctx)

		target := new(recorder)
		key, err := ScheduleEvery[string](timers, target, "tick", 10*time.Millisecond)
		require.NoError(t, err)

		require.Eventually(t, func() bool { return target.count() >= 3 }, time.Second, 5*time.Millisecond)
		require.NoError(t, timers.Cancel(key))

		// let a firing that was already dispatched land
		time.Sleep(30 * time.Millisecond)
		settled := target.count()
		time.Sleep(50 * time.Millisecond)
		assert.Equal(t, settled, target.count())
	})
	t.Run("ScheduleEvery stops on a disconnected target", func(t *testing.T) {
		timers := NewTimers(log.DiscardLogger, time.Second)
		timers.Start(ctx)
		defer timers.Stop(ctx)

		target := new(recorder)
		target.fail(gerrors.ErrDisconnected)
		key, err := ScheduleEvery[string](timers, target, "tick", 10*time.Millisecond)
		require.NoError(t, err)

		require.Eventually(t, func() bool {
			_, err := timers.quartzScheduler.GetScheduledJob(quartz.NewJobKey(key))
			return err != nil
		}, time.Second, 10*time.Millisecond)
	})
	t.Run("ScheduleCron with an invalid expression", func(t *testing.T) {
		timers := NewTimers(log.DiscardLogger, time.Second)
		timers.Start(ctx)
		defer timers.Stop(ctx)

		_, err := ScheduleCron[string](timers, new(recorder), "tick", "not a cron")
		require.Error(t, err)
	})
	t.Run("ScheduleCron accepts a valid expression", func(t *testing.T) {
		timers := NewTimers(log.DiscardLogger, time.Second)
		timers.Start(ctx)
		defer timers.Stop(ctx)

		key, err := ScheduleCron[string](timers, new(recorder), "tick", "0 0 0 1 1 ?")
		require.NoError(t, err)
		require.NoError(t, timers.Cancel(key))
	})
	t.Run("When not started", func(t *testing.T) {
		timers := NewTimers(nil, time.Second)
		_, err := ScheduleOnce[string](timers, new(recorder), "tick", time.Millisecond)
		require.ErrorIs(t, err, gerrors.ErrTimersNotStarted)
		require.ErrorIs(t, timers.Cancel("missing"), gerrors.ErrTimersNotStarted)
		// no-op
		timers.Stop(ctx)
	})
}
