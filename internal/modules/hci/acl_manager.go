package hci

import (
	"sync"

	"btstack/internal/dependency"
	"btstack/internal/handler"
	"btstack/internal/module"
	"btstack/pkg/logging"
)

// AclManager tracks link-layer connections. Connection open/close
// bookkeeping runs on the stack handler like all other module traffic.
type AclManager struct {
	module.Base

	h *handler.Handler

	mu          sync.RWMutex
	connections map[string]bool
}

// AclManagerDescriptor returns the static declaration for the
// connection/link-management module.
func AclManagerDescriptor() module.Descriptor {
	return module.Descriptor{
		Identity:     AclManagerID,
		FriendlyName: "ACL Manager",
		Kind:         dependency.KindLink,
		DependsOn:    []module.Identity{LayerID},
		New: func() module.Module {
			return &AclManager{
				Base:        module.NewBase(AclManagerID, LayerID),
				connections: make(map[string]bool),
			}
		},
	}
}

func (m *AclManager) Start(h *handler.Handler) error {
	m.h = h
	logging.Info("AclManager", "Link management up")
	return nil
}

func (m *AclManager) Stop() error {
	m.mu.Lock()
	open := len(m.connections)
	m.connections = make(map[string]bool)
	m.mu.Unlock()
	if open > 0 {
		logging.Warn("AclManager", "Dropped %d open connections on shutdown", open)
	}
	return nil
}

// Connect records an open link to the given address. The actual open
// runs as a handler task to keep connection state single-threaded.
func (m *AclManager) Connect(address string) {
	m.h.Post(func() {
		m.mu.Lock()
		m.connections[address] = true
		m.mu.Unlock()
		logging.Debug("AclManager", "Connected %s", address)
	})
}

// Disconnect drops the link to the given address.
func (m *AclManager) Disconnect(address string) {
	m.h.Post(func() {
		m.mu.Lock()
		delete(m.connections, address)
		m.mu.Unlock()
		logging.Debug("AclManager", "Disconnected %s", address)
	})
}

// NumConnections returns the number of currently open links.
func (m *AclManager) NumConnections() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.connections)
}
