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
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// RouterMetric defines the instruments updated by an actor's router.
type RouterMetric struct {
	processedCount   metric.Int64Counter
	failureCount     metric.Int64Counter
	droppedCount     metric.Int64Counter
	closeCount       metric.Int64Counter
	receivedDuration metric.Int64Histogram
	attributes       metric.MeasurementOption
}

// NewRouterMetric creates the router instruments for the actor identified by id and name
func NewRouterMetric(meter metric.Meter, id, name string) (*RouterMetric, error) {
	x := &RouterMetric{
		attributes: metric.WithAttributeSet(attribute.NewSet(
			attribute.String("actor.id", id),
			attribute.String("actor.name", name),
		)),
	}

	var err error
	if x.processedCount, err = meter.Int64Counter(
		"aktor_processed_count",
		metric.WithDescription("Total number of messages processed"),
	); err != nil {
		return nil, fmt.Errorf("failed to create processedCount instrument, %w", err)
	}

	if x.failureCount, err = meter.Int64Counter(
		"aktor_failure_count",
		metric.WithDescription("Total number of messages whose processing failed"),
	); err != nil {
		return nil, fmt.Errorf("failed to create failureCount instrument, %w", err)
	}

	if x.droppedCount, err = meter.Int64Counter(
		"aktor_dropped_count",
		metric.WithDescription("Total number of messages dropped at termination"),
	); err != nil {
		return nil, fmt.Errorf("failed to create droppedCount instrument, %w", err)
	}

	if x.closeCount, err = meter.Int64Counter(
		"aktor_close_count",
		metric.WithDescription("Total number of actors closed"),
	); err != nil {
		return nil, fmt.Errorf("failed to create closeCount instrument, %w", err)
	}

	if x.receivedDuration, err = meter.Int64Histogram(
		"aktor_received_duration",
		metric.WithDescription("The latency of a message processed in milliseconds"),
		metric.WithUnit("ms"),
	); err != nil {
		return nil, fmt.Errorf("failed to create receivedDuration instrument, %w", err)
	}

	return x, nil
}

// RecordProcessed records a successfully processed message and its latency
func (x *RouterMetric) RecordProcessed(ctx context.Context, latency time.Duration) {
	x.processedCount.Add(ctx, 1, x.attributes)
	x.receivedDuration.Record(ctx, latency.Milliseconds(), x.attributes)
}

// RecordFailure records a message whose processing failed
func (x *RouterMetric) RecordFailure(ctx context.Context) {
	x.failureCount.Add(ctx, 1, x.attributes)
}

// RecordDropped records the messages left in the mailbox at termination
func (x *RouterMetric) RecordDropped(ctx context.Context, count int64) {
	if count > 0 {
		x.droppedCount.Add(ctx, count, x.attributes)
	}
}

// RecordClose records the termination of the actor
func (x *RouterMetric) RecordClose(ctx context.Context) {
	x.closeCount.Add(ctx, 1, x.attributes)
}
