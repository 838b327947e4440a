// Package shim holds the stack's higher-level bridge-facing module. It
// is the surface legacy call sites reach channel multiplexing through,
// and the leaf module asserted present whenever the protocol core is
// loaded.
package shim

import (
	"sync"

	"btstack/internal/dependency"
	"btstack/internal/handler"
	"btstack/internal/module"
	"btstack/internal/modules/l2cap"
	"btstack/internal/modules/storage"
	"btstack/pkg/logging"
)

// L2capID identifies the bridge-facing L2CAP module.
const L2capID module.Identity = "shim-l2cap"

// L2cap exposes channel registration to legacy call sites. Service
// registrations are tracked here so the old interface never touches the
// multiplexer modules directly.
type L2cap struct {
	module.Base

	h *handler.Handler

	mu       sync.RWMutex
	services map[uint16]string
}

// L2capDescriptor returns the static declaration for the bridge-facing
// L2CAP module.
func L2capDescriptor() module.Descriptor {
	deps := []module.Identity{l2cap.ClassicID, l2cap.LeID, storage.ModuleID}
	return module.Descriptor{
		Identity:     L2capID,
		FriendlyName: "Shim L2CAP",
		Kind:         dependency.KindProtocol,
		DependsOn:    deps,
		New: func() module.Module {
			return &L2cap{
				Base:     module.NewBase(L2capID, deps...),
				services: make(map[uint16]string),
			}
		},
	}
}

func (m *L2cap) Start(h *handler.Handler) error {
	m.h = h
	logging.Info("ShimL2cap", "Bridge-facing L2CAP up")
	return nil
}

func (m *L2cap) Stop() error {
	m.mu.Lock()
	m.services = make(map[uint16]string)
	m.mu.Unlock()
	return nil
}

// RegisterService records a legacy service on the given PSM.
func (m *L2cap) RegisterService(psm uint16, name string) {
	m.mu.Lock()
	m.services[psm] = name
	m.mu.Unlock()
	logging.Debug("ShimL2cap", "Registered service %s on psm %d", name, psm)
}

// UnregisterService removes the legacy service on the given PSM.
func (m *L2cap) UnregisterService(psm uint16) {
	m.mu.Lock()
	delete(m.services, psm)
	m.mu.Unlock()
}

// NumServices returns the number of registered legacy services.
func (m *L2cap) NumServices() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.services)
}
