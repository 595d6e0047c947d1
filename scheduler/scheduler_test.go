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
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestGoroutines(t *testing.T) {
	sched := Goroutines()
	require.NotNil(t, sched)

	var wg sync.WaitGroup
	wg.Add(10)
	for range 10 {
		require.NoError(t, sched.Schedule(wg.Done))
	}
	wg.Wait()
}

func TestFunc(t *testing.T) {
	t.Run("runs inline", func(t *testing.T) {
		var ran bool
		sched := Func(func(task func()) error {
			task()
			return nil
		})
		require.NoError(t, sched.Schedule(func() { ran = true }))
		assert.True(t, ran)
	})
	t.Run("propagates rejection", func(t *testing.T) {
		rejected := errors.New("rejected")
		sched := Func(func(func()) error { return rejected })
		assert.ErrorIs(t, sched.Schedule(func() {}), rejected)
	})
}
