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

// Package workerpool provides a sharded pool of reusable goroutines.
// Workers are spawned on demand, parked on their shard once their task
// returns and retired after staying idle for too long.
package workerpool

import (
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/zeebo/xxh3"
	"go.uber.org/atomic"
)

const maxShards = 128

// ErrPoolClosed is returned when work is submitted to a pool that is not running
var ErrPoolClosed = errors.New("worker pool is not running")

// WorkerPool distributes tasks over a set of shards, each holding a stack of idle workers.
type WorkerPool struct {
	idleTimeout    time.Duration
	numShards      int
	shards         []*poolShard
	mutex          sync.RWMutex
	started        atomic.Bool
	stopped        atomic.Bool
	next           atomic.Uint32
	spawnedWorkers atomic.Int64
	stopSig        chan struct{}
	wg             sync.WaitGroup
}

type worker struct {
	tasks    chan func()
	shard    *poolShard
	lastUsed time.Time
}

type poolShard struct {
	wp      *WorkerPool
	mu      sync.Mutex
	idle    []*worker
	stopped bool
}

// New creates a worker pool. The pool does not accept work until Start is called.
func New(opts ...Option) *WorkerPool {
	wp := &WorkerPool{
		idleTimeout: time.Second,
		numShards:   1,
	}

	for _, opt := range opts {
		opt.Apply(wp)
	}

	if wp.numShards < 1 {
		wp.numShards = 1
	} else if wp.numShards > maxShards {
		wp.numShards = maxShards
	}

	if wp.idleTimeout <= 0 {
		wp.idleTimeout = time.Second
	}

	return wp
}

// SpawnedWorkers returns the number of live workers, idle or busy.
func (wp *WorkerPool) SpawnedWorkers() int {
	return int(wp.spawnedWorkers.Load())
}

// Start allocates the shards and begins retiring idle workers.
// Calling Start more than once has no effect.
func (wp *WorkerPool) Start() {
	wp.mutex.Lock()
	defer wp.mutex.Unlock()
	if wp.started.Load() {
		return
	}

	wp.shards = make([]*poolShard, wp.numShards)
	for i := range wp.shards {
		wp.shards[i] = &poolShard{wp: wp}
	}

	wp.stopSig = make(chan struct{})
	wp.started.Store(true)
	wp.wg.Add(1)
	go wp.cleanup()
}

// Stop rejects new work, retires the idle workers and waits for the busy ones to
// finish their current task. Stop must not be called from a task running on the pool.
func (wp *WorkerPool) Stop() {
	wp.mutex.Lock()
	if !wp.started.Load() || wp.stopped.Swap(true) {
		wp.mutex.Unlock()
		return
	}

	close(wp.stopSig)
	for _, shard := range wp.shards {
		shard.mu.Lock()
		shard.stopped = true
		for i, w := range shard.idle {
			close(w.tasks)
			shard.idle[i] = nil
		}
		shard.idle = shard.idle[:0]
		shard.mu.Unlock()
	}
	wp.mutex.Unlock()

	wp.wg.Wait()
}

// Submit runs task on the next shard in round robin order.
func (wp *WorkerPool) Submit(task func()) error {
	wp.mutex.RLock()
	if !wp.started.Load() || wp.stopped.Load() {
		wp.mutex.RUnlock()
		return ErrPoolClosed
	}

	shard := wp.shards[wp.next.Inc()%uint32(wp.numShards)]
	wp.mutex.RUnlock()
	return shard.dispatch(task)
}

// SubmitKeyed runs task on the shard owning key. Tasks sharing a key reuse
// the same set of workers.
func (wp *WorkerPool) SubmitKeyed(key string, task func()) error {
	wp.mutex.RLock()
	if !wp.started.Load() || wp.stopped.Load() {
		wp.mutex.RUnlock()
		return ErrPoolClosed
	}

	shard := wp.shardFor(key)
	wp.mutex.RUnlock()
	return shard.dispatch(task)
}

func (wp *WorkerPool) shardFor(key string) *poolShard {
	return wp.shards[xxh3.HashString(key)%uint64(wp.numShards)]
}

// dispatch hands task to the most recently parked worker or spawns a new one.
func (shard *poolShard) dispatch(task func()) error {
	shard.mu.Lock()
	if shard.stopped {
		shard.mu.Unlock()
		return ErrPoolClosed
	}

	if n := len(shard.idle); n > 0 {
		w := shard.idle[n-1]
		shard.idle[n-1] = nil
		shard.idle = shard.idle[:n-1]
		shard.mu.Unlock()
		w.tasks <- task
		return nil
	}

	w := &worker{
		tasks: make(chan func(), 1),
		shard: shard,
	}
	shard.wp.wg.Add(1)
	shard.mu.Unlock()

	shard.wp.spawnedWorkers.Inc()
	w.tasks <- task
	go w.run()
	return nil
}

// park returns the worker to the idle stack. It reports false once the shard is stopped.
func (shard *poolShard) park(w *worker) bool {
	shard.mu.Lock()
	defer shard.mu.Unlock()
	if shard.stopped {
		return false
	}
	w.lastUsed = time.Now()
	shard.idle = append(shard.idle, w)
	return true
}

// retire closes the workers that have been idle since before cutoff.
// The idle stack is ordered by lastUsed, oldest first.
func (shard *poolShard) retire(cutoff time.Time) {
	shard.mu.Lock()
	defer shard.mu.Unlock()
	if shard.stopped {
		return
	}

	pos := sort.Search(len(shard.idle), func(i int) bool {
		return shard.idle[i].lastUsed.After(cutoff)
	})
	if pos == 0 {
		return
	}

	for i := range pos {
		close(shard.idle[i].tasks)
	}
	remaining := copy(shard.idle, shard.idle[pos:])
	for i := remaining; i < len(shard.idle); i++ {
		shard.idle[i] = nil
	}
	shard.idle = shard.idle[:remaining]
}

func (w *worker) run() {
	wp := w.shard.wp
	defer wp.wg.Done()
	defer wp.spawnedWorkers.Dec()

	for task := range w.tasks {
		task()
		if !w.shard.park(w) {
			return
		}
	}
}

func (wp *WorkerPool) cleanup() {
	defer wp.wg.Done()
	ticker := time.NewTicker(wp.idleTimeout)
	defer ticker.Stop()

	for {
		select {
		case <-wp.stopSig:
			return
		case now := <-ticker.C:
			cutoff := now.Add(-wp.idleTimeout)
			for _, shard := range wp.shards {
				shard.retire(cutoff)
			}
		}
	}
}
