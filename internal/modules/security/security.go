// Package security provides the key-negotiation module.
package security

import (
	"btstack/internal/dependency"
	"btstack/internal/handler"
	"btstack/internal/module"
	"btstack/internal/modules/hci"
	"btstack/pkg/logging"
)

// ModuleID identifies the security module.
const ModuleID module.Identity = "security"

// Module handles pairing and key negotiation for links.
type Module struct {
	module.Base
}

// Descriptor returns the static declaration for the security module.
func Descriptor() module.Descriptor {
	return module.Descriptor{
		Identity:     ModuleID,
		FriendlyName: "Security",
		Kind:         dependency.KindProtocol,
		DependsOn:    []module.Identity{hci.LayerID},
		New: func() module.Module {
			return &Module{Base: module.NewBase(ModuleID, hci.LayerID)}
		},
	}
}

func (m *Module) Start(h *handler.Handler) error {
	logging.Info("Security", "Security manager up")
	return nil
}

func (m *Module) Stop() error {
	return nil
}
