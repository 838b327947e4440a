// Package neighbor holds the classic neighbor-management modules:
// connectability, discoverability, inquiry, remote name lookup and its
// cache, paging, and page scanning. They are thin peers of each other;
// inquiry is the one with callers outside the stack (the discovery
// bridge).
package neighbor

import (
	"btstack/internal/dependency"
	"btstack/internal/handler"
	"btstack/internal/module"
	"btstack/internal/modules/hci"
	"btstack/pkg/logging"
)

// Module identities for neighbor management.
const (
	ConnectabilityID  module.Identity = "connectability"
	DiscoverabilityID module.Identity = "discoverability"
	InquiryID         module.Identity = "inquiry"
	NameID            module.Identity = "name"
	NameDbID          module.Identity = "namedb"
	PageID            module.Identity = "page"
	ScanID            module.Identity = "scan"
)

// simple is the shared shape of the stateless neighbor modules.
type simple struct {
	module.Base
	subsystem string
}

func (m *simple) Start(h *handler.Handler) error {
	logging.Debug(m.subsystem, "Module up")
	return nil
}

func (m *simple) Stop() error {
	return nil
}

func simpleDescriptor(id module.Identity, name, subsystem string, deps ...module.Identity) module.Descriptor {
	return module.Descriptor{
		Identity:     id,
		FriendlyName: name,
		Kind:         dependency.KindProtocol,
		DependsOn:    deps,
		New: func() module.Module {
			return &simple{Base: module.NewBase(id, deps...), subsystem: subsystem}
		},
	}
}

// ConnectabilityDescriptor declares the page-scan toggle module.
func ConnectabilityDescriptor() module.Descriptor {
	return simpleDescriptor(ConnectabilityID, "Connectability", "Connectability", hci.LayerID)
}

// DiscoverabilityDescriptor declares the inquiry-scan toggle module.
func DiscoverabilityDescriptor() module.Descriptor {
	return simpleDescriptor(DiscoverabilityID, "Discoverability", "Discoverability", hci.LayerID)
}

// NameDescriptor declares the remote name request module.
func NameDescriptor() module.Descriptor {
	return simpleDescriptor(NameID, "Name", "Name", hci.LayerID)
}

// NameDbDescriptor declares the remote name cache, layered on the name
// request module.
func NameDbDescriptor() module.Descriptor {
	return simpleDescriptor(NameDbID, "NameDb", "NameDb", NameID)
}

// PageDescriptor declares the paging module.
func PageDescriptor() module.Descriptor {
	return simpleDescriptor(PageID, "Page", "Page", hci.LayerID)
}

// ScanDescriptor declares the page-scan parameter module.
func ScanDescriptor() module.Descriptor {
	return simpleDescriptor(ScanID, "Scan", "Scan", hci.LayerID)
}
