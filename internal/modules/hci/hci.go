// Package hci holds the transport-layer modules built directly on the
// HAL: the HCI layer itself, the controller capability module, the ACL
// connection manager, and the LE advertising/scanning managers.
package hci

import (
	"btstack/internal/dependency"
	"btstack/internal/handler"
	"btstack/internal/module"
	"btstack/internal/modules/hal"
	"btstack/pkg/logging"
)

// Module identities for the transport layer.
const (
	LayerID      module.Identity = "hci"
	ControllerID module.Identity = "controller"
	AclManagerID module.Identity = "aclmanager"
	AdvertiserID module.Identity = "leadvertiser"
	ScannerID    module.Identity = "lescanner"
)

// Layer is the HCI command/event layer. All host-controller traffic
// flows through it.
type Layer struct {
	module.Base

	h *handler.Handler
}

// LayerDescriptor returns the static declaration for the HCI layer.
func LayerDescriptor() module.Descriptor {
	return module.Descriptor{
		Identity:     LayerID,
		FriendlyName: "HCI Layer",
		Kind:         dependency.KindTransport,
		DependsOn:    []module.Identity{hal.ModuleID},
		New: func() module.Module {
			return &Layer{Base: module.NewBase(LayerID, hal.ModuleID)}
		},
	}
}

func (m *Layer) Start(h *handler.Handler) error {
	m.h = h
	logging.Info("Hci", "HCI layer up")
	return nil
}

func (m *Layer) Stop() error {
	logging.Info("Hci", "HCI layer down")
	return nil
}
