// Package handler provides the serial execution context the stack runs on.
//
// A Handler is one long-lived worker goroutine draining an unbounded FIFO
// task queue. Every module lifecycle callback and every inter-module
// message executes on the handler, one task at a time, in submission
// order. That single serialization point is what lets modules mutate
// their private state without internal locking.
package handler

import (
	"runtime"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"

	"btstack/pkg/logging"
)

// Handler is a serial task queue bound to a dedicated worker goroutine.
type Handler struct {
	name string

	mu      sync.Mutex
	cond    *sync.Cond
	queue   []func()
	stopped bool

	workerID atomic.Uint64

	done chan struct{}
}

// New creates a handler and starts its worker goroutine.
func New(name string) *Handler {
	h := &Handler{
		name: name,
		done: make(chan struct{}),
	}
	h.cond = sync.NewCond(&h.mu)
	go h.loop()
	logging.Debug("Handler", "Started handler %s", name)
	return h
}

// Name returns the handler's name, used in diagnostics.
func (h *Handler) Name() string {
	return h.name
}

// IsCurrent reports whether the calling goroutine is this handler's
// worker, meaning the caller is executing inside a posted task.
func (h *Handler) IsCurrent() bool {
	return h.workerID.Load() == goid()
}

// goid returns the current goroutine's id as the runtime prints it in
// stack traces. The runtime exposes no cheaper public accessor; this is
// only consulted on control-plane queries, never per task.
func goid() uint64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)
	fields := strings.Fields(string(buf[:n]))
	if len(fields) < 2 {
		return 0
	}
	id, err := strconv.ParseUint(fields[1], 10, 64)
	if err != nil {
		return 0
	}
	return id
}

// Post enqueues a task for execution. Tasks run strictly in submission
// order and never concurrently with each other. Post is safe to call
// from any goroutine, including the worker itself (a callback may
// re-enqueue further work without deadlocking).
//
// Posting to a stopped handler is a contract violation and is fatal.
func (h *Handler) Post(task func()) {
	h.mu.Lock()
	if h.stopped {
		h.mu.Unlock()
		logging.Fatal("Handler", "Post on stopped handler %s", h.name)
	}
	h.queue = append(h.queue, task)
	h.cond.Signal()
	h.mu.Unlock()
}

// Clear discards all pending tasks without executing them. A task
// already in flight still runs to completion. This is the deliberate
// data-loss point of shutdown: messages queued at the moment teardown
// begins are not delivered.
func (h *Handler) Clear() {
	h.mu.Lock()
	dropped := len(h.queue)
	h.queue = nil
	h.mu.Unlock()
	if dropped > 0 {
		logging.Debug("Handler", "Cleared %d pending tasks from handler %s", dropped, h.name)
	}
}

// Stop closes the queue and blocks until the worker goroutine has
// exited. Any tasks still queued are executed before the worker exits.
// Stop must only be called after all modules have been stopped; it has
// unbounded blocking potential by design (a hang here is a condition to
// diagnose, not to mask with a timeout).
func (h *Handler) Stop() {
	h.mu.Lock()
	if h.stopped {
		h.mu.Unlock()
		logging.Fatal("Handler", "Stop on already stopped handler %s", h.name)
	}
	h.stopped = true
	h.cond.Signal()
	h.mu.Unlock()

	<-h.done
	logging.Debug("Handler", "Stopped handler %s", h.name)
}

func (h *Handler) loop() {
	h.workerID.Store(goid())
	for {
		h.mu.Lock()
		for len(h.queue) == 0 && !h.stopped {
			h.cond.Wait()
		}
		if len(h.queue) == 0 && h.stopped {
			h.mu.Unlock()
			close(h.done)
			return
		}
		task := h.queue[0]
		h.queue = h.queue[1:]
		h.mu.Unlock()

		task()
	}
}
