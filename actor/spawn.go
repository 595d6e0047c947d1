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

package actor

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/atomic"

	gerrors "github.com/tochemey/aktor/errors"
	"github.com/tochemey/aktor/internal/metric"
	"github.com/tochemey/aktor/scheduler"
)

// ActorOf spawns a onto sched and returns the first handle on it.
//
// ctx is handed to Receive and Close. Only its values are kept: the actor
// outlives the cancellation of ctx and is stopped by releasing every handle.
func ActorOf[M any](ctx context.Context, sched scheduler.Scheduler, a Actor[M], opts ...SpawnOption) (*ActorRef[M], error) {
	if a == nil {
		return nil, gerrors.ErrUndefinedActor
	}

	if sched == nil {
		return nil, gerrors.ErrUndefinedScheduler
	}

	config := newSpawnConfig(opts...)
	id := uuid.NewString()
	name := config.name
	if name == "" {
		name = id
	}

	routerMetric, err := metric.NewRouterMetric(metric.New(metric.WithMeterProvider(config.meterProvider)).Meter(), id, name)
	if err != nil {
		return nil, err
	}

	r := &router[M]{
		id:          id,
		name:        name,
		ctx:         context.WithoutCancel(ctx),
		actor:       a,
		mailbox:     newMailbox[M](config.capacity),
		sched:       sched,
		logger:      config.logger.With("actor.id", id, "actor.name", name),
		metric:      routerMetric,
		linger:      config.linger,
		lingerPolls: config.lingerPolls,
		processing:  atomic.NewInt32(busy),
		state:       atomic.NewInt32(int32(Running)),
		err:         atomic.NewError(nil),
		done:        make(chan struct{}),
	}

	if err := r.submit(); err != nil {
		return nil, fmt.Errorf("failed to spawn actor %s: %w", name, err)
	}

	r.logger.Debug("actor spawned")
	return newActorRef(r), nil
}
