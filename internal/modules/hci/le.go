package hci

import (
	"btstack/internal/dependency"
	"btstack/internal/handler"
	"btstack/internal/module"
	"btstack/pkg/logging"
)

// Advertiser manages LE advertising sets.
type Advertiser struct {
	module.Base

	advertising bool
}

// AdvertiserDescriptor returns the static declaration for the LE
// advertising manager.
func AdvertiserDescriptor() module.Descriptor {
	return module.Descriptor{
		Identity:     AdvertiserID,
		FriendlyName: "LE Advertiser",
		Kind:         dependency.KindLink,
		DependsOn:    []module.Identity{LayerID},
		New: func() module.Module {
			return &Advertiser{Base: module.NewBase(AdvertiserID, LayerID)}
		},
	}
}

func (m *Advertiser) Start(h *handler.Handler) error {
	logging.Info("LeAdvertiser", "Advertising manager up")
	return nil
}

func (m *Advertiser) Stop() error {
	m.advertising = false
	return nil
}

// Scanner manages LE scanning.
type Scanner struct {
	module.Base

	scanning bool
}

// ScannerDescriptor returns the static declaration for the LE scanning
// manager.
func ScannerDescriptor() module.Descriptor {
	return module.Descriptor{
		Identity:     ScannerID,
		FriendlyName: "LE Scanner",
		Kind:         dependency.KindLink,
		DependsOn:    []module.Identity{LayerID},
		New: func() module.Module {
			return &Scanner{Base: module.NewBase(ScannerID, LayerID)}
		},
	}
}

func (m *Scanner) Start(h *handler.Handler) error {
	logging.Info("LeScanner", "Scanning manager up")
	return nil
}

func (m *Scanner) Stop() error {
	m.scanning = false
	return nil
}
