package stackmgr

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"btstack/internal/handler"
	"btstack/internal/module"
	"btstack/pkg/logging"
)

// eventLog records lifecycle events across fake modules.
type eventLog struct {
	mu     sync.Mutex
	events []string
}

func (l *eventLog) add(event string) {
	l.mu.Lock()
	l.events = append(l.events, event)
	l.mu.Unlock()
}

func (l *eventLog) all() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]string, len(l.events))
	copy(out, l.events)
	return out
}

type fakeModule struct {
	module.Base
	log      *eventLog
	startErr error
	stopErr  error
}

func (m *fakeModule) Start(h *handler.Handler) error {
	m.log.add("start:" + string(m.Identity()))
	return m.startErr
}

func (m *fakeModule) Stop() error {
	m.log.add("stop:" + string(m.Identity()))
	return m.stopErr
}

func fakeDescriptor(log *eventLog, id module.Identity, deps ...module.Identity) module.Descriptor {
	return module.Descriptor{
		Identity:  id,
		DependsOn: deps,
		New: func() module.Module {
			return &fakeModule{Base: module.NewBase(id, deps...), log: log}
		},
	}
}

// expectFatal runs fn expecting it to hit logging.Fatal, which panics
// once the process abort is stubbed out.
func expectFatal(t *testing.T, fn func()) {
	t.Helper()
	restore := logging.SetExitFunc(func(code int) {})
	defer logging.SetExitFunc(restore)
	assert.Panics(t, fn)
}

func TestStartUp_StartsInDependencyOrder(t *testing.T) {
	log := &eventLog{}
	list := module.NewList()
	list.Add(fakeDescriptor(log, "att", "l2cap"))
	list.Add(fakeDescriptor(log, "l2cap", "hci"))
	list.Add(fakeDescriptor(log, "hci"))

	h := handler.New("test")
	s := New()
	s.StartUp(list, h)

	assert.Equal(t, []string{"start:hci", "start:l2cap", "start:att"}, log.all())
	assert.Equal(t, 3, s.NumModules())

	s.ShutDown()
	h.Stop()
}

func TestShutDown_ReverseOfActualStartOrder(t *testing.T) {
	log := &eventLog{}
	list := module.NewList()
	// Multi-root set: storage and hal are both valid first picks.
	list.Add(fakeDescriptor(log, "storage"))
	list.Add(fakeDescriptor(log, "hal"))
	list.Add(fakeDescriptor(log, "hci", "hal"))

	h := handler.New("test")
	s := New()
	s.StartUp(list, h)
	started := s.StartOrder()
	s.ShutDown()
	h.Stop()

	events := log.all()
	require.Len(t, events, 6)

	// The stop sequence is exactly the start sequence reversed.
	for i, id := range started {
		assert.Equal(t, "start:"+string(id), events[i])
		assert.Equal(t, "stop:"+string(id), events[len(events)-1-i])
	}
	assert.Equal(t, 0, s.NumModules())
}

func TestGetInstance_TypedLookup(t *testing.T) {
	log := &eventLog{}
	list := module.NewList()
	list.Add(fakeDescriptor(log, "storage"))

	h := handler.New("test")
	s := New()
	s.StartUp(list, h)

	m, ok := Get[*fakeModule](s, "storage")
	require.True(t, ok)
	assert.Equal(t, module.Identity("storage"), m.Identity())

	_, ok = Get[*fakeModule](s, "hci")
	assert.False(t, ok, "unrequested module must not resolve")

	s.ShutDown()
	h.Stop()

	_, ok = s.GetInstance("storage")
	assert.False(t, ok, "instances are gone after shutdown")
}

func TestStartUp_FreshInstancesPerCycle(t *testing.T) {
	log := &eventLog{}
	list := module.NewList()
	list.Add(fakeDescriptor(log, "storage"))

	h := handler.New("test")
	s := New()
	s.StartUp(list, h)
	first, _ := s.GetInstance("storage")
	s.ShutDown()

	s.StartUp(list, h)
	second, _ := s.GetInstance("storage")
	s.ShutDown()
	h.Stop()

	assert.NotSame(t, first, second, "a fresh instance is created on every start cycle")
}

func TestStartUp_UnresolvableSetIsFatal(t *testing.T) {
	log := &eventLog{}
	list := module.NewList()
	list.Add(fakeDescriptor(log, "hci", "hal"))

	h := handler.New("test")
	defer h.Stop()

	s := New()
	expectFatal(t, func() { s.StartUp(list, h) })
	assert.Empty(t, log.all(), "nothing may start when resolution fails")
}

func TestStartUp_ModuleStartFailureIsFatal(t *testing.T) {
	log := &eventLog{}
	list := module.NewList()
	list.Add(fakeDescriptor(log, "hal"))
	list.Add(module.Descriptor{
		Identity:  "hci",
		DependsOn: []module.Identity{"hal"},
		New: func() module.Module {
			return &fakeModule{
				Base:     module.NewBase("hci", "hal"),
				log:      log,
				startErr: errors.New("transport unavailable"),
			}
		},
	})

	h := handler.New("test")
	defer h.Stop()

	s := New()
	expectFatal(t, func() { s.StartUp(list, h) })

	// Fail-fast: the earlier module is not rolled back.
	assert.Equal(t, []string{"start:hal", "start:hci"}, log.all())
}
