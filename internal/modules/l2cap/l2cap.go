// Package l2cap holds the channel multiplexing modules, one for the
// classic transport and one for LE.
package l2cap

import (
	"sync"

	"btstack/internal/dependency"
	"btstack/internal/handler"
	"btstack/internal/module"
	"btstack/internal/modules/hci"
	"btstack/pkg/logging"
)

// Module identities for the channel multiplexers.
const (
	ClassicID module.Identity = "l2cap-classic"
	LeID      module.Identity = "l2cap-le"
)

// mux is the channel bookkeeping shared by both variants.
type mux struct {
	mu       sync.RWMutex
	channels map[uint16]bool
}

func (m *mux) open(cid uint16) {
	m.mu.Lock()
	m.channels[cid] = true
	m.mu.Unlock()
}

func (m *mux) close(cid uint16) {
	m.mu.Lock()
	delete(m.channels, cid)
	m.mu.Unlock()
}

func (m *mux) numChannels() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.channels)
}

// Classic is the classic-transport channel multiplexer.
type Classic struct {
	module.Base
	mux
}

// ClassicDescriptor returns the static declaration for the classic
// L2CAP module.
func ClassicDescriptor() module.Descriptor {
	return module.Descriptor{
		Identity:     ClassicID,
		FriendlyName: "L2CAP Classic",
		Kind:         dependency.KindProtocol,
		DependsOn:    []module.Identity{hci.LayerID},
		New: func() module.Module {
			return &Classic{
				Base: module.NewBase(ClassicID, hci.LayerID),
				mux:  mux{channels: make(map[uint16]bool)},
			}
		},
	}
}

func (m *Classic) Start(h *handler.Handler) error {
	logging.Info("L2cap", "Classic multiplexer up")
	return nil
}

func (m *Classic) Stop() error {
	if n := m.numChannels(); n > 0 {
		logging.Warn("L2cap", "Closing %d classic channels on shutdown", n)
	}
	return nil
}

// OpenChannel registers a classic channel id.
func (m *Classic) OpenChannel(cid uint16) { m.open(cid) }

// CloseChannel releases a classic channel id.
func (m *Classic) CloseChannel(cid uint16) { m.close(cid) }

// NumChannels returns the number of open classic channels.
func (m *Classic) NumChannels() int { return m.numChannels() }

// Le is the LE-transport channel multiplexer.
type Le struct {
	module.Base
	mux
}

// LeDescriptor returns the static declaration for the LE L2CAP module.
func LeDescriptor() module.Descriptor {
	return module.Descriptor{
		Identity:     LeID,
		FriendlyName: "L2CAP LE",
		Kind:         dependency.KindProtocol,
		DependsOn:    []module.Identity{hci.LayerID},
		New: func() module.Module {
			return &Le{
				Base: module.NewBase(LeID, hci.LayerID),
				mux:  mux{channels: make(map[uint16]bool)},
			}
		},
	}
}

func (m *Le) Start(h *handler.Handler) error {
	logging.Info("L2cap", "LE multiplexer up")
	return nil
}

func (m *Le) Stop() error {
	if n := m.numChannels(); n > 0 {
		logging.Warn("L2cap", "Closing %d LE channels on shutdown", n)
	}
	return nil
}

// OpenChannel registers an LE channel id.
func (m *Le) OpenChannel(cid uint16) { m.open(cid) }

// CloseChannel releases an LE channel id.
func (m *Le) CloseChannel(cid uint16) { m.close(cid) }

// NumChannels returns the number of open LE channels.
func (m *Le) NumChannels() int { return m.numChannels() }
