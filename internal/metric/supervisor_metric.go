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

package metric

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// SupervisorMetric defines the instruments updated by a supervisor.
type SupervisorMetric struct {
	restartCount    metric.Int64Counter
	lookupMissCount metric.Int64Counter
}

// NewSupervisorMetric creates the supervisor instruments
func NewSupervisorMetric(meter metric.Meter) (*SupervisorMetric, error) {
	x := new(SupervisorMetric)
	var err error
	if x.restartCount, err = meter.Int64Counter(
		"aktor_restart_count",
		metric.WithDescription("Total number of child restarts"),
	); err != nil {
		return nil, fmt.Errorf("failed to create restartCount instrument, %w", err)
	}

	if x.lookupMissCount, err = meter.Int64Counter(
		"aktor_lookup_miss_count",
		metric.WithDescription("Total number of messages routed to an unknown child"),
	); err != nil {
		return nil, fmt.Errorf("failed to create lookupMissCount instrument, %w", err)
	}

	return x, nil
}

// RecordRestart records the restart of the child registered under key
func (x *SupervisorMetric) RecordRestart(ctx context.Context, key string) {
	x.restartCount.Add(ctx, 1, metric.WithAttributes(attribute.String("child.key", key)))
}

// RecordLookupMiss records a message routed to key while no child is registered under it
func (x *SupervisorMetric) RecordLookupMiss(ctx context.Context, key string) {
	x.lookupMissCount.Add(ctx, 1, metric.WithAttributes(attribute.String("child.key", key)))
}
