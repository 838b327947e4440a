// Package att provides the attribute protocol module.
package att

import (
	"btstack/internal/dependency"
	"btstack/internal/handler"
	"btstack/internal/module"
	"btstack/internal/modules/l2cap"
	"btstack/pkg/logging"
)

// ModuleID identifies the attribute protocol module.
const ModuleID module.Identity = "att"

// Module serves attribute protocol requests over both L2CAP variants.
type Module struct {
	module.Base
}

// Descriptor returns the static declaration for the attribute protocol
// module.
func Descriptor() module.Descriptor {
	return module.Descriptor{
		Identity:     ModuleID,
		FriendlyName: "ATT",
		Kind:         dependency.KindProtocol,
		DependsOn:    []module.Identity{l2cap.ClassicID, l2cap.LeID},
		New: func() module.Module {
			return &Module{Base: module.NewBase(ModuleID, l2cap.ClassicID, l2cap.LeID)}
		},
	}
}

func (m *Module) Start(h *handler.Handler) error {
	logging.Info("Att", "Attribute protocol up")
	return nil
}

func (m *Module) Stop() error {
	return nil
}
