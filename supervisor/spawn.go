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

package supervisor

import (
	"context"
	"fmt"
	"slices"

	"github.com/tochemey/aktor/actor"
	gerrors "github.com/tochemey/aktor/errors"
	"github.com/tochemey/aktor/scheduler"
)

// SupervisedActorOf builds a new instance from spec and spawns it onto sched,
// named after the spec key. It does not restart the child: that is the job of
// the Supervisor holding spec.
func SupervisedActorOf[M any](ctx context.Context, sched scheduler.Scheduler, spec ChildSpec[M], opts ...actor.SpawnOption) (*actor.ActorRef[M], error) {
	if err := spec.validate(); err != nil {
		return nil, err
	}

	instance, err := build(sched, spec)
	if err != nil {
		return nil, err
	}

	spawnOpts := append(slices.Clone(opts), actor.WithName(spec.key))
	return actor.ActorOf(ctx, sched, instance, spawnOpts...)
}

// Start creates a Supervisor over specs and spawns it onto sched.
func Start[M any](ctx context.Context, sched scheduler.Scheduler, specs []ChildSpec[M], opts ...Option) (*actor.ActorRef[Routed[M]], error) {
	supervisor, err := NewSupervisor(ctx, sched, specs, opts...)
	if err != nil {
		return nil, err
	}

	ref, err := actor.ActorOf[Routed[M]](ctx, sched, supervisor,
		actor.WithLogger(supervisor.logger),
		actor.WithMeterProvider(supervisor.meterProvider))
	if err != nil {
		supervisor.Close(ctx)
		return nil, err
	}
	return ref, nil
}

// build calls the spec start function, which must not take the supervisor down
func build[M any](sched scheduler.Scheduler, spec ChildSpec[M]) (instance actor.Actor[M], err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = gerrors.NewPanicError(fmt.Errorf("%#v while starting child %s", rec, spec.key))
		}
	}()
	return spec.start(sched), nil
}
