package stack

import (
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"btstack/internal/config"
	"btstack/internal/handler"
	"btstack/internal/module"
	"btstack/internal/modules/dumpsys"
	"btstack/internal/modules/hci"
	"btstack/internal/modules/neighbor"
	"btstack/internal/modules/shim"
	"btstack/internal/modules/storage"
	"btstack/internal/stackmgr"
	"btstack/pkg/logging"
)

// Options carries the non-toggle settings a Stack needs.
type Options struct {
	// StoragePath is where the persistence module keeps its records.
	StoragePath string
}

// Stack is the single access point to the running protocol stack. The
// composition root constructs exactly one and hands it to every caller
// that needs it; there is no hidden process-wide instance.
//
// Start and Stop transitions are serialized by a plain mutex, and
// external queries take that same mutex, so a query racing a transition
// either completes before teardown begins or observes the idle state
// and aborts. The one exception is a module hook re-entering a query
// from the stack handler itself mid-transition: the handler goroutine
// holds the transition's attention already, so it reads the
// atomically-published references directly instead of deadlocking on
// the lock it is effectively inside of.
type Stack struct {
	opts Options

	mu      sync.Mutex // serializes Start/Stop transitions and external queries
	running atomic.Bool

	handler atomic.Pointer[handler.Handler]
	manager atomic.Pointer[stackmgr.StackManager]

	connBridge      atomic.Pointer[ConnectionBridge]
	discoveryBridge atomic.Pointer[DiscoveryBridge]
}

// New creates an idle stack.
func New(opts Options) *Stack {
	return &Stack{opts: opts}
}

// StartMinimal brings the stack up with only the persistence module.
// Used for low-power/idle operation of the host device. Fatal if the
// stack is already running.
func (s *Stack) StartMinimal() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running.Load() {
		logging.Fatal("Stack", "StartMinimal: stack already running")
	}
	cycleID := uuid.New().String()
	logging.Info("Stack", "Starting stack in minimal mode (cycle %s)", cycleID)

	list := module.NewList()
	list.Add(storage.Descriptor(s.opts.StoragePath))
	s.start(list)

	// The leaf module must be reachable or the start did not take.
	if _, ok := stackmgr.Get[*storage.Module](s.manager.Load(), storage.ModuleID); !ok {
		logging.Fatal("Stack", "Storage module missing after minimal start")
	}

	s.running.Store(true)
	logging.Info("Stack", "Stack running in minimal mode (cycle %s)", cycleID)
}

// StartFull brings the stack up with the module set selected by the
// feature toggles. Fatal if the stack is already running, if the
// selected set is unresolvable, or if a required leaf module is missing
// afterwards.
func (s *Stack) StartFull(features config.Features) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running.Load() {
		logging.Fatal("Stack", "StartFull: stack already running")
	}
	cycleID := uuid.New().String()
	logging.Info("Stack", "Starting stack (cycle %s): %+v", cycleID, features)

	s.start(buildModuleList(features, s.opts))

	mgr := s.manager.Load()
	h := s.handler.Load()

	// Leaf module liveness checks. Persistence and diagnostics must be
	// present in every full-start configuration; a toggle combination
	// that selects neither is a configuration bug, not an empty stack.
	if _, ok := stackmgr.Get[*storage.Module](mgr, storage.ModuleID); !ok {
		logging.Fatal("Stack", "Storage module missing after start")
	}
	if _, ok := stackmgr.Get[*dumpsys.Module](mgr, dumpsys.ModuleID); !ok {
		logging.Fatal("Stack", "Dumpsys module missing after start")
	}

	// Legacy bridges are built only once their prerequisite modules are
	// confirmed running: discovery bridge first, then connection bridge.
	if features.CoreEnabled {
		if _, ok := stackmgr.Get[*shim.L2cap](mgr, shim.L2capID); !ok {
			logging.Fatal("Stack", "Bridge-facing L2CAP module missing after start")
		}
		inquiry, ok := stackmgr.Get[*neighbor.Inquiry](mgr, neighbor.InquiryID)
		if !ok {
			logging.Fatal("Stack", "Inquiry module missing after start")
		}
		s.discoveryBridge.Store(newDiscoveryBridge(h, inquiry))
	}
	if features.ConnectionEnabled && !features.CoreEnabled {
		acl, ok := stackmgr.Get[*hci.AclManager](mgr, hci.AclManagerID)
		if !ok {
			logging.Fatal("Stack", "ACL manager module missing after start")
		}
		s.connBridge.Store(newConnectionBridge(h, acl))
	}

	s.running.Store(true)
	logging.Info("Stack", "Stack running (cycle %s)", cycleID)
}

// start spins up the handler and boots the resolved module set on it.
// Callers hold the transition mutex.
func (s *Stack) start(list *module.List) {
	h := handler.New("stack")
	mgr := stackmgr.New()

	// Publish the references before any module starts so that start
	// hooks re-entering through GetStackManager/GetHandler observe them.
	s.handler.Store(h)
	s.manager.Store(mgr)

	mgr.StartUp(list, h)
}

// Stop tears the stack down: bridges first (reverse of construction
// order), then the pending handler queue is discarded, modules are
// stopped in reverse start order, and finally the handler goroutine is
// joined. Stop blocks until the worker has fully exited — unbounded by
// design; a hang here is a fatal condition to diagnose, not to mask
// with a timeout. Fatal if the stack is not running.
func (s *Stack) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running.Load() {
		logging.Fatal("Stack", "Stop: stack not running")
	}
	logging.Info("Stack", "Stopping stack")

	s.running.Store(false)

	if b := s.connBridge.Swap(nil); b != nil {
		b.close()
	}
	if b := s.discoveryBridge.Swap(nil); b != nil {
		b.close()
	}

	h := s.handler.Load()
	mgr := s.manager.Load()

	// Queued inter-module messages are dropped here on purpose;
	// shutdown does not deliver traffic pending at the moment Stop was
	// invoked. Stop hooks still execute on the handler after this.
	h.Clear()
	mgr.ShutDown()
	h.Stop()

	s.handler.Store(nil)
	s.manager.Store(nil)
	logging.Info("Stack", "Stack stopped")
}

// IsRunning reports whether the stack is running.
func (s *Stack) IsRunning() bool {
	return s.running.Load()
}

// GetStackManager returns the module registry. Fatal if the stack is
// not running. A module hook querying from the stack handler during a
// Start or Stop transition is served; every other caller racing a
// transition waits for it to finish and then either succeeds or aborts.
func (s *Stack) GetStackManager() *stackmgr.StackManager {
	if s.onHandler() {
		return s.manager.Load()
	}
	defer s.queryGate("GetStackManager")()
	return s.manager.Load()
}

// GetHandler returns the stack's execution context. Same contract as
// GetStackManager.
func (s *Stack) GetHandler() *handler.Handler {
	if h := s.handler.Load(); h != nil && h.IsCurrent() {
		return h
	}
	defer s.queryGate("GetHandler")()
	return s.handler.Load()
}

// GetConnectionBridge returns the legacy connection bridge, or nil when
// the active configuration did not construct one. Fatal if the stack is
// not running.
func (s *Stack) GetConnectionBridge() *ConnectionBridge {
	if s.onHandler() {
		return s.connBridge.Load()
	}
	defer s.queryGate("GetConnectionBridge")()
	return s.connBridge.Load()
}

// GetDiscoveryBridge returns the legacy discovery bridge, or nil when
// the active configuration did not construct one. Fatal if the stack is
// not running.
func (s *Stack) GetDiscoveryBridge() *DiscoveryBridge {
	if s.onHandler() {
		return s.discoveryBridge.Load()
	}
	defer s.queryGate("GetDiscoveryBridge")()
	return s.discoveryBridge.Load()
}

// GetModule performs a type-safe lookup of a running module. The second
// return is false when the identity was not part of the active module
// set. Fatal if the stack is not running.
func GetModule[T module.Module](s *Stack, id module.Identity) (T, bool) {
	if s.onHandler() {
		return stackmgr.Get[T](s.manager.Load(), id)
	}
	defer s.queryGate("GetModule")()
	return stackmgr.Get[T](s.manager.Load(), id)
}

// onHandler reports whether the caller is executing on the stack
// handler, i.e. inside a module hook or a posted inter-module task. Such
// calls are already serialized with any in-flight transition.
func (s *Stack) onHandler() bool {
	h := s.handler.Load()
	return h != nil && h.IsCurrent()
}

// queryGate admits an external query: it takes the transition mutex so
// the query cannot interleave with a Start/Stop in progress, aborts if
// the stack is idle, and returns the unlock. Holding the mutex across
// the read is what guarantees a returned reference was never a torn-down
// instance at the time it was handed out.
func (s *Stack) queryGate(op string) func() {
	s.mu.Lock()
	if !s.running.Load() {
		s.mu.Unlock()
		logging.Fatal("Stack", "%s called while stack not running", op)
	}
	return s.mu.Unlock
}
