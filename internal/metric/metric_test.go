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
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

type recordingCounter struct {
	noop.Int64Counter
	mu     sync.Mutex
	total  int64
	labels []attribute.Set
}

func (c *recordingCounter) Add(_ context.Context, incr int64, options ...metric.AddOption) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.total += incr
	c.labels = append(c.labels, metric.NewAddConfig(options).Attributes())
}

type recordingMeter struct {
	noop.Meter
	counters map[string]*recordingCounter
}

func (m *recordingMeter) Int64Counter(name string, _ ...metric.Int64CounterOption) (metric.Int64Counter, error) {
	counter := new(recordingCounter)
	m.counters[name] = counter
	return counter, nil
}

type recordingMeterProvider struct {
	noop.MeterProvider
	meter  metric.Meter
	called []string
}

func (p *recordingMeterProvider) Meter(name string, _ ...metric.MeterOption) metric.Meter {
	p.called = append(p.called, name)
	return p.meter
}

func TestProvider(t *testing.T) {
	t.Run("uses the global provider by default", func(t *testing.T) {
		previous := otel.GetMeterProvider()
		t.Cleanup(func() { otel.SetMeterProvider(previous) })

		recorder := &recordingMeterProvider{meter: noop.NewMeterProvider().Meter("global")}
		otel.SetMeterProvider(recorder)

		provider := New()
		require.NotNil(t, provider.Meter())
		assert.Equal(t, []string{instrumentationName}, recorder.called)
	})
	t.Run("WithMeterProvider overrides the default", func(t *testing.T) {
		custom := &recordingMeterProvider{meter: noop.NewMeterProvider().Meter("custom")}
		provider := New(WithMeterProvider(custom))
		assert.Equal(t, custom, provider.meterProvider)
		assert.Equal(t, custom.meter, provider.Meter())
	})
	t.Run("WithMeterProvider ignores nil", func(t *testing.T) {
		provider := New(WithMeterProvider(nil))
		assert.Equal(t, otel.GetMeterProvider(), provider.meterProvider)
	})
}

func TestRouterMetric(t *testing.T) {
	t.Run("with noop meter", func(t *testing.T) {
		routerMetric, err := NewRouterMetric(noop.NewMeterProvider().Meter("test"), "id", "name")
		require.NoError(t, err)
		require.NotNil(t, routerMetric)

		ctx := context.Background()
		routerMetric.RecordProcessed(ctx, time.Millisecond)
		routerMetric.RecordFailure(ctx)
		routerMetric.RecordDropped(ctx, 2)
		routerMetric.RecordClose(ctx)
	})
	t.Run("records with actor attributes", func(t *testing.T) {
		meter := &recordingMeter{counters: make(map[string]*recordingCounter)}
		routerMetric, err := NewRouterMetric(meter, "a1", "lister")
		require.NoError(t, err)

		ctx := context.Background()
		routerMetric.RecordProcessed(ctx, time.Millisecond)
		routerMetric.RecordProcessed(ctx, time.Millisecond)
		routerMetric.RecordDropped(ctx, 0)
		routerMetric.RecordDropped(ctx, 3)
		routerMetric.RecordClose(ctx)

		assert.EqualValues(t, 2, meter.counters["aktor_processed_count"].total)
		assert.EqualValues(t, 3, meter.counters["aktor_dropped_count"].total)
		assert.EqualValues(t, 1, meter.counters["aktor_close_count"].total)
		assert.Zero(t, meter.counters["aktor_failure_count"].total)
		require.Len(t, meter.counters["aktor_dropped_count"].labels, 1)

		labels := meter.counters["aktor_close_count"].labels[0]
		id, ok := labels.Value("actor.id")
		require.True(t, ok)
		assert.Equal(t, "a1", id.AsString())
		name, ok := labels.Value("actor.name")
		require.True(t, ok)
		assert.Equal(t, "lister", name.AsString())
	})
}

func TestSupervisorMetric(t *testing.T) {
	meter := &recordingMeter{counters: make(map[string]*recordingCounter)}
	supervisorMetric, err := NewSupervisorMetric(meter)
	require.NoError(t, err)

	ctx := context.Background()
	supervisorMetric.RecordRestart(ctx, "w")
	supervisorMetric.RecordLookupMiss(ctx, "missing")
	supervisorMetric.RecordLookupMiss(ctx, "missing")

	assert.EqualValues(t, 1, meter.counters["aktor_restart_count"].total)
	assert.EqualValues(t, 2, meter.counters["aktor_lookup_miss_count"].total)

	key, ok := meter.counters["aktor_restart_count"].labels[0].Value("child.key")
	require.True(t, ok)
	assert.Equal(t, "w", key.AsString())
}
