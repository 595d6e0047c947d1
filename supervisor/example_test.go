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

package supervisor_test

import (
	"context"
	"fmt"

	"github.com/tochemey/aktor/actor"
	"github.com/tochemey/aktor/log"
	"github.com/tochemey/aktor/scheduler"
	"github.com/tochemey/aktor/supervisor"
)

type counter struct {
	count int
	out   chan<- int
}

func (c *counter) Receive(_ context.Context, msg string) error {
	switch msg {
	case "incr":
		c.count++
	case "boom":
		panic("boom")
	case "get":
		c.out <- c.count
	}
	return nil
}

func (c *counter) Close(context.Context) {}

func ExampleStart() {
	ctx := context.Background()
	out := make(chan int, 2)

	spec := supervisor.NewChildSpec[string]("counter", func(scheduler.Scheduler) actor.Actor[string] {
		return &counter{out: out}
	}, supervisor.Persistent, supervisor.Eventually, supervisor.WorkerChild)

	ref, err := supervisor.Start(ctx, scheduler.Goroutines(), []supervisor.ChildSpec[string]{spec}, supervisor.WithLogger(log.DiscardLogger))
	if err != nil {
		panic(err)
	}

	_ = ref.Send(supervisor.Route("counter", "incr"))
	_ = ref.Send(supervisor.Route("counter", "get"))
	fmt.Println(<-out)

	// the crashed counter is replaced by a fresh one
	_ = ref.Send(supervisor.Route("counter", "boom"))
	_ = ref.Send(supervisor.Route("counter", "get"))
	fmt.Println(<-out)

	ref.Release()
	<-ref.Done()

	// Output:
	// 1
	// 0
}
