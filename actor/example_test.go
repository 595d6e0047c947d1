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

package actor_test

import (
	"context"
	"fmt"

	"github.com/tochemey/aktor/actor"
	"github.com/tochemey/aktor/log"
	"github.com/tochemey/aktor/scheduler"
)

type printer struct{}

func (printer) Receive(_ context.Context, msg string) error {
	fmt.Println(msg)
	return nil
}

func (printer) Close(context.Context) {
	fmt.Println("closed")
}

func ExampleActorOf() {
	ctx := context.Background()
	ref, err := actor.ActorOf[string](ctx, scheduler.Goroutines(), printer{}, actor.WithLogger(log.DiscardLogger))
	if err != nil {
		panic(err)
	}

	_ = ref.Send("hello")
	_ = ref.Send("world")

	// the actor closes once its queue is drained
	ref.Release()
	<-ref.Done()

	// Output:
	// hello
	// world
	// closed
}

func ExampleActorRef_SendAndWait() {
	ctx := context.Background()
	counter := 0
	ref, err := actor.ActorOf[int](ctx, scheduler.Goroutines(), actor.ReceiveFunc[int](func(_ context.Context, n int) error {
		counter += n
		return nil
	}), actor.WithLogger(log.DiscardLogger))
	if err != nil {
		panic(err)
	}
	defer ref.Release()

	_ = ref.Send(40)
	_ = ref.SendAndWait(ctx, 2)
	fmt.Println(counter)

	// Output:
	// 42
}
