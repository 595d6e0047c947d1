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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPolicyString(t *testing.T) {
	assert.Equal(t, "Transient", Transient.String())
	assert.Equal(t, "Persistent", Persistent.String())
	assert.Equal(t, "Temporary", Temporary.String())
	assert.Empty(t, RestartPolicy(-1).String())

	assert.Equal(t, "Eventually", Eventually.String())
	assert.Equal(t, "Immediately", Immediately.String())
	assert.Equal(t, "Brute", Brute.String())
	assert.Empty(t, ShutdownPolicy(42).String())

	assert.Equal(t, "Worker", WorkerChild.String())
	assert.Equal(t, "Supervisor", SupervisorChild.String())
	assert.Empty(t, ChildKind(7).String())
}

func TestChildSpec(t *testing.T) {
	spec := NewChildSpec[int]("key", nil, Temporary, Brute, SupervisorChild)
	assert.Equal(t, "key", spec.Key())
	assert.Equal(t, Temporary, spec.RestartPolicy())
	assert.Equal(t, Brute, spec.ShutdownPolicy())
	assert.Equal(t, SupervisorChild, spec.Kind())
	assert.Error(t, spec.validate())
}
