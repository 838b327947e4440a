package handler

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestHandler_TasksRunInSubmissionOrder(t *testing.T) {
	h := New("test")

	var mu sync.Mutex
	var got []int
	var wg sync.WaitGroup
	wg.Add(100)

	for i := 0; i < 100; i++ {
		i := i
		h.Post(func() {
			mu.Lock()
			got = append(got, i)
			mu.Unlock()
			wg.Done()
		})
	}
	wg.Wait()
	h.Stop()

	for i := 0; i < 100; i++ {
		assert.Equal(t, i, got[i])
	}
}

func TestHandler_PostFromWorkerDoesNotDeadlock(t *testing.T) {
	h := New("test")

	done := make(chan struct{})
	h.Post(func() {
		// A callback re-enqueueing further work is the normal way
		// modules talk to each other.
		h.Post(func() {
			h.Post(func() {
				close(done)
			})
		})
	})

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("re-entrant Post deadlocked")
	}
	h.Stop()
}

func TestHandler_IsCurrentIdentifiesWorker(t *testing.T) {
	h := New("test")
	defer h.Stop()

	assert.False(t, h.IsCurrent(), "test goroutine is not the worker")

	inside := make(chan bool, 1)
	h.Post(func() {
		inside <- h.IsCurrent()
	})
	assert.True(t, <-inside, "posted tasks run on the worker")

	other := New("other")
	defer other.Stop()
	cross := make(chan bool, 1)
	other.Post(func() {
		cross <- h.IsCurrent()
	})
	assert.False(t, <-cross, "a different handler's worker is not current")
}

func TestHandler_ClearDiscardsPending(t *testing.T) {
	h := New("test")

	// Park the worker so tasks pile up behind it.
	gate := make(chan struct{})
	started := make(chan struct{})
	h.Post(func() {
		close(started)
		<-gate
	})
	<-started

	var ran int32
	var mu sync.Mutex
	for i := 0; i < 10; i++ {
		h.Post(func() {
			mu.Lock()
			ran++
			mu.Unlock()
		})
	}

	h.Clear()
	close(gate)
	h.Stop()

	mu.Lock()
	defer mu.Unlock()
	assert.EqualValues(t, 0, ran, "cleared tasks must not execute")
}

func TestHandler_StopJoinsWorker(t *testing.T) {
	h := New("test")

	finished := false
	h.Post(func() {
		time.Sleep(50 * time.Millisecond)
		finished = true
	})

	h.Stop()
	// Stop returns only after the in-flight task completed.
	assert.True(t, finished)
}

func TestHandler_InFlightTaskCompletesBeforeExit(t *testing.T) {
	h := New("test")

	gate := make(chan struct{})
	started := make(chan struct{})
	var completed bool
	h.Post(func() {
		close(started)
		<-gate
		completed = true
	})
	<-started

	h.Clear()

	go func() {
		time.Sleep(20 * time.Millisecond)
		close(gate)
	}()
	h.Stop()

	assert.True(t, completed, "in-flight callback must run to completion")
}
