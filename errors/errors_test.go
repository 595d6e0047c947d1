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

package errors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPanicError(t *testing.T) {
	cause := errors.New("boom")
	err := NewPanicError(cause)
	require.Error(t, err)
	assert.EqualError(t, err, "panic: boom")
	assert.ErrorIs(t, err, cause)

	var pe *PanicError
	require.True(t, errors.As(error(err), &pe))
}

func TestChildSpecErrors(t *testing.T) {
	t.Run("invalid child spec", func(t *testing.T) {
		err := NewErrInvalidChildSpec("worker", "start is nil")
		require.ErrorIs(t, err, ErrInvalidChildSpec)
		assert.Contains(t, err.Error(), `key="worker"`)
		assert.Contains(t, err.Error(), "start is nil")
	})
	t.Run("duplicate child key", func(t *testing.T) {
		err := NewErrDuplicateChildKey("worker")
		require.ErrorIs(t, err, ErrDuplicateChildKey)
		assert.Contains(t, err.Error(), "worker")
	})
}
