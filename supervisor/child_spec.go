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
	"strings"

	"github.com/tochemey/aktor/actor"
	gerrors "github.com/tochemey/aktor/errors"
	"github.com/tochemey/aktor/scheduler"
)

// StartFunc builds a fresh actor instance. It is called when the child is
// first spawned and again on every restart, so it must not hand out an
// instance it has already returned.
type StartFunc[M any] func(sched scheduler.Scheduler) actor.Actor[M]

// ChildSpec describes how to build a supervised child.
type ChildSpec[M any] struct {
	key      string
	start    StartFunc[M]
	restart  RestartPolicy
	shutdown ShutdownPolicy
	kind     ChildKind
}

// NewChildSpec creates a ChildSpec. key identifies the child within its
// supervisor and start builds its instances.
func NewChildSpec[M any](key string, start StartFunc[M], restart RestartPolicy, shutdown ShutdownPolicy, kind ChildKind) ChildSpec[M] {
	return ChildSpec[M]{
		key:      key,
		start:    start,
		restart:  restart,
		shutdown: shutdown,
		kind:     kind,
	}
}

// Key returns the child key
func (spec ChildSpec[M]) Key() string {
	return spec.key
}

// RestartPolicy returns the child restart policy
func (spec ChildSpec[M]) RestartPolicy() RestartPolicy {
	return spec.restart
}

// ShutdownPolicy returns the child shutdown policy
func (spec ChildSpec[M]) ShutdownPolicy() ShutdownPolicy {
	return spec.shutdown
}

// Kind returns the child kind
func (spec ChildSpec[M]) Kind() ChildKind {
	return spec.kind
}

func (spec ChildSpec[M]) validate() error {
	if strings.TrimSpace(spec.key) == "" {
		return gerrors.NewErrInvalidChildSpec(spec.key, "key is empty")
	}
	if spec.start == nil {
		return gerrors.NewErrInvalidChildSpec(spec.key, "start is nil")
	}
	return nil
}
