package hci

import (
	"btstack/internal/dependency"
	"btstack/internal/handler"
	"btstack/internal/module"
	"btstack/pkg/logging"
)

// Controller reads and caches the controller's static capabilities
// (supported features, buffer sizes) at start time.
type Controller struct {
	module.Base

	localName string
}

// ControllerDescriptor returns the static declaration for the
// controller capability module.
func ControllerDescriptor() module.Descriptor {
	return module.Descriptor{
		Identity:     ControllerID,
		FriendlyName: "Controller",
		Kind:         dependency.KindTransport,
		DependsOn:    []module.Identity{LayerID},
		New: func() module.Module {
			return &Controller{Base: module.NewBase(ControllerID, LayerID)}
		},
	}
}

func (m *Controller) Start(h *handler.Handler) error {
	m.localName = "btstack"
	logging.Info("Controller", "Controller capabilities read")
	return nil
}

func (m *Controller) Stop() error {
	return nil
}

// LocalName returns the controller's configured local name.
func (m *Controller) LocalName() string {
	return m.localName
}
