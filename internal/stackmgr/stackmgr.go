// Package stackmgr owns the live module instances of a running stack.
//
// The StackManager resolves the requested descriptor set into a
// dependency-respecting order, starts every module on the stack handler
// in that order, and tears them down in exactly the reverse of the order
// actually used. Lookup of running instances is safe against concurrent
// external callers.
package stackmgr

import (
	"sync"

	"btstack/internal/handler"
	"btstack/internal/module"
	"btstack/pkg/logging"
)

// StackManager owns every started module instance for the duration of a
// start/stop cycle. Instances are never shared or copied; callers only
// ever receive borrowed references valid until shutdown begins.
type StackManager struct {
	mu         sync.RWMutex
	instances  map[module.Identity]module.Module
	startOrder []module.Identity
	h          *handler.Handler
}

// New creates an empty stack manager.
func New() *StackManager {
	return &StackManager{
		instances: make(map[module.Identity]module.Module),
	}
}

// StartUp resolves the requested modules and starts each one on the
// given handler, in dependency order. Cyclic or unsatisfied dependency
// sets, and any module whose start hook fails, are fatal: the process
// aborts before a partially started stack can be observed. There is no
// rollback of already-started modules.
func (s *StackManager) StartUp(list *module.List, h *handler.Handler) {
	order, err := list.Graph().Resolve()
	if err != nil {
		logging.Fatal("StackManager", "Module set is unresolvable: %v", err)
	}

	s.mu.Lock()
	s.h = h
	s.mu.Unlock()

	descriptors := make(map[module.Identity]module.Descriptor, list.Len())
	for _, d := range list.Descriptors() {
		descriptors[d.Identity] = d
	}

	for _, node := range order {
		id := module.Identity(node.ID)
		d := descriptors[id]
		instance := d.New()

		var startErr error
		s.runOnHandler(func() {
			startErr = instance.Start(h)
		})
		if startErr != nil {
			logging.Fatal("StackManager", "Module %s failed to start: %v", id, startErr)
		}

		s.mu.Lock()
		s.instances[id] = instance
		s.startOrder = append(s.startOrder, id)
		s.mu.Unlock()

		logging.Info("StackManager", "Started module %s", id)
	}
}

// ShutDown stops every running module on the handler, in exactly the
// reverse of the order StartUp used. Reverse-of-actual-start, not a
// fresh topological reversal, so teardown stays symmetric even when
// multiple valid orderings exist. A failing stop hook is fatal.
func (s *StackManager) ShutDown() {
	s.mu.RLock()
	order := make([]module.Identity, len(s.startOrder))
	copy(order, s.startOrder)
	s.mu.RUnlock()

	for i := len(order) - 1; i >= 0; i-- {
		id := order[i]

		s.mu.RLock()
		instance := s.instances[id]
		s.mu.RUnlock()

		var stopErr error
		s.runOnHandler(func() {
			stopErr = instance.Stop()
		})
		if stopErr != nil {
			logging.Fatal("StackManager", "Module %s failed to stop: %v", id, stopErr)
		}

		s.mu.Lock()
		delete(s.instances, id)
		s.mu.Unlock()

		logging.Info("StackManager", "Stopped module %s", id)
	}

	s.mu.Lock()
	s.startOrder = nil
	s.h = nil
	s.mu.Unlock()
}

// GetInstance returns the running instance for the given identity. The
// reference is borrowed: it is valid until shutdown begins.
func (s *StackManager) GetInstance(id module.Identity) (module.Module, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.instances[id]
	return m, ok
}

// StartOrder returns the identities in the order they were actually
// started this cycle.
func (s *StackManager) StartOrder() []module.Identity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	order := make([]module.Identity, len(s.startOrder))
	copy(order, s.startOrder)
	return order
}

// NumModules returns the number of currently running modules.
func (s *StackManager) NumModules() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.instances)
}

// Get performs a type-safe lookup of a running module instance.
func Get[T module.Module](s *StackManager, id module.Identity) (T, bool) {
	var zero T
	m, ok := s.GetInstance(id)
	if !ok {
		return zero, false
	}
	typed, ok := m.(T)
	if !ok {
		return zero, false
	}
	return typed, true
}

// runOnHandler posts the task to the stack handler and blocks until it
// has executed. StartUp and ShutDown always run on an external caller
// goroutine, never on the handler itself, so waiting here cannot
// deadlock.
func (s *StackManager) runOnHandler(task func()) {
	done := make(chan struct{})
	s.h.Post(func() {
		task()
		close(done)
	})
	<-done
}
