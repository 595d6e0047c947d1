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
	"time"

	"go.opentelemetry.io/otel/metric"

	"github.com/tochemey/aktor/actor"
	"github.com/tochemey/aktor/log"
)

const (
	// DefaultDeliveryTimeout bounds how long the supervisor waits for a child
	// to process a routed message
	DefaultDeliveryTimeout = 5 * time.Second
	// DefaultShutdownTimeout bounds how long Close waits for the children to close
	DefaultShutdownTimeout = 5 * time.Second
	// DefaultRestartRetries is the number of attempts made to spawn a restarted child
	DefaultRestartRetries = 3
	// DefaultRestartBackoff is the delay between two restart attempts
	DefaultRestartBackoff = 10 * time.Millisecond
)

type config struct {
	logger          log.Logger
	deliveryTimeout time.Duration
	shutdownTimeout time.Duration
	maxRetries      int
	backoff         time.Duration
	childOptions    []actor.SpawnOption
	meterProvider   metric.MeterProvider
}

func newConfig(opts ...Option) *config {
	c := &config{
		logger:          log.DefaultLogger,
		deliveryTimeout: DefaultDeliveryTimeout,
		shutdownTimeout: DefaultShutdownTimeout,
		maxRetries:      DefaultRestartRetries,
		backoff:         DefaultRestartBackoff,
	}

	for _, opt := range opts {
		opt.Apply(c)
	}
	return c
}

// Option is the interface that applies a Supervisor option.
type Option interface {
	// Apply sets the Option value of a config.
	Apply(c *config)
}

var _ Option = OptionFunc(nil)

// OptionFunc implements the Option interface.
type OptionFunc func(c *config)

// Apply applies the Supervisor's option
func (f OptionFunc) Apply(c *config) {
	f(c)
}

// WithLogger sets the supervisor logger. Children inherit it unless
// WithChildOptions sets another one.
func WithLogger(logger log.Logger) Option {
	return OptionFunc(func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	})
}

// WithDeliveryTimeout sets how long the supervisor waits for a child to process
// a routed message. A child exceeding it keeps running and is not restarted.
func WithDeliveryTimeout(timeout time.Duration) Option {
	return OptionFunc(func(c *config) {
		if timeout > 0 {
			c.deliveryTimeout = timeout
		}
	})
}

// WithShutdownTimeout sets how long Close waits for the children to close
func WithShutdownTimeout(timeout time.Duration) Option {
	return OptionFunc(func(c *config) {
		if timeout > 0 {
			c.shutdownTimeout = timeout
		}
	})
}

// WithRestartRetries sets how many times spawning a restarted child is
// attempted, waiting backoff between two attempts
func WithRestartRetries(maxRetries int, backoff time.Duration) Option {
	return OptionFunc(func(c *config) {
		c.maxRetries = max(maxRetries, 1)
		c.backoff = backoff
	})
}

// WithChildOptions sets the spawn options applied to every child
func WithChildOptions(opts ...actor.SpawnOption) Option {
	return OptionFunc(func(c *config) {
		c.childOptions = append(c.childOptions, opts...)
	})
}

// WithMeterProvider sets the otel meter provider of the supervisor metrics
func WithMeterProvider(provider metric.MeterProvider) Option {
	return OptionFunc(func(c *config) {
		c.meterProvider = provider
	})
}
