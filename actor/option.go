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
	"time"

	"go.opentelemetry.io/otel/metric"

	"github.com/tochemey/aktor/log"
)

// spawnConfig defines the configuration to apply when spawning an actor
type spawnConfig struct {
	name   string
	logger log.Logger
	// capacity bounds the mailbox when positive
	capacity int
	// linger is how long a router waits on an empty mailbox before counting
	// an idle attempt
	linger time.Duration
	// lingerPolls is the number of idle attempts before the router parks
	lingerPolls   int
	meterProvider metric.MeterProvider
}

func newSpawnConfig(opts ...SpawnOption) *spawnConfig {
	config := &spawnConfig{
		logger: log.DefaultLogger,
	}

	for _, opt := range opts {
		opt.Apply(config)
	}
	return config
}

// SpawnOption is the interface that applies to an actor being spawned
type SpawnOption interface {
	// Apply sets the Option value of a config.
	Apply(config *spawnConfig)
}

var _ SpawnOption = spawnOption(nil)

// spawnOption implements the SpawnOption interface.
type spawnOption func(config *spawnConfig)

// Apply sets the Option value of a config.
func (f spawnOption) Apply(c *spawnConfig) {
	f(c)
}

// WithName sets the name of the actor. It defaults to the actor ID.
func WithName(name string) SpawnOption {
	return spawnOption(func(config *spawnConfig) {
		config.name = name
	})
}

// WithLogger sets the logger used by the actor's router
func WithLogger(logger log.Logger) SpawnOption {
	return spawnOption(func(config *spawnConfig) {
		if logger != nil {
			config.logger = logger
		}
	})
}

// WithBoundedMailbox caps the number of queued messages. Once the mailbox
// holds capacity messages, Send fails with errors.ErrMailboxFull until the
// actor catches up. Sends never block.
func WithBoundedMailbox(capacity int) SpawnOption {
	return spawnOption(func(config *spawnConfig) {
		config.capacity = capacity
	})
}

// WithLinger keeps the router on its worker once the mailbox runs dry: it
// waits up to wait for a new message or a handle release, polls times in a
// row, before parking. polls is clamped to [1, 90]. Lingering trades worker
// time for lower latency on bursty actors.
func WithLinger(wait time.Duration, polls int) SpawnOption {
	return spawnOption(func(config *spawnConfig) {
		config.linger = wait
		config.lingerPolls = min(max(polls, 1), maxIdleAttempts)
	})
}

// WithMeterProvider sets the otel meter provider of the router metrics.
// It defaults to the global provider.
func WithMeterProvider(provider metric.MeterProvider) SpawnOption {
	return spawnOption(func(config *spawnConfig) {
		config.meterProvider = provider
	})
}
