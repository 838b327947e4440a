// Package hal provides the transport HAL module, the bottom of the
// stack. It owns the raw controller transport; every other transport
// layer module depends on it directly or transitively.
package hal

import (
	"btstack/internal/dependency"
	"btstack/internal/handler"
	"btstack/internal/module"
	"btstack/pkg/logging"
)

// ModuleID identifies the HAL module.
const ModuleID module.Identity = "hal"

// Module owns the controller transport channel.
type Module struct {
	module.Base

	h    *handler.Handler
	open bool
}

// Descriptor returns the static declaration for the HAL module.
func Descriptor() module.Descriptor {
	return module.Descriptor{
		Identity:     ModuleID,
		FriendlyName: "HCI HAL",
		Kind:         dependency.KindTransport,
		New: func() module.Module {
			return &Module{Base: module.NewBase(ModuleID)}
		},
	}
}

func (m *Module) Start(h *handler.Handler) error {
	m.h = h
	m.open = true
	logging.Info("Hal", "Transport opened")
	return nil
}

func (m *Module) Stop() error {
	m.open = false
	logging.Info("Hal", "Transport closed")
	return nil
}

// IsOpen reports whether the transport channel is open. Only meaningful
// while the stack is running.
func (m *Module) IsOpen() bool {
	return m.open
}
