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

// Package scheduler defines how actor runs are executed.
//
// An actor never owns a goroutine. Each time it has work, its router submits a
// bounded run to a Scheduler, which decides where that run executes.
package scheduler

// Scheduler executes submitted tasks asynchronously.
// Implementations must be safe for concurrent use.
type Scheduler interface {
	// Schedule submits task for asynchronous execution. It returns an error
	// when the task cannot be accepted; the task is then never run.
	Schedule(task func()) error
}

// KeyedScheduler is implemented by schedulers that can keep the tasks sharing
// a key on the same execution lane.
type KeyedScheduler interface {
	Scheduler
	// ScheduleKeyed submits task on the lane owning key.
	ScheduleKeyed(key string, task func()) error
}

// Func adapts an ordinary function to the Scheduler interface.
type Func func(task func()) error

// enforce compilation error
var _ Scheduler = Func(nil)

// Schedule calls f(task).
func (f Func) Schedule(task func()) error {
	return f(task)
}

type goroutines struct{}

// Goroutines returns a Scheduler running every task on its own goroutine.
func Goroutines() Scheduler {
	return goroutines{}
}

func (goroutines) Schedule(task func()) error {
	go task()
	return nil
}
