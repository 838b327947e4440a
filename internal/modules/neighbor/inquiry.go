package neighbor

import (
	"sync"

	"btstack/internal/dependency"
	"btstack/internal/handler"
	"btstack/internal/module"
	"btstack/internal/modules/hci"
	"btstack/pkg/logging"
)

// InquiryResult is one discovered device report.
type InquiryResult struct {
	Address string
	Name    string
}

// InquiryCallback receives discovery reports. It is invoked on the
// stack handler.
type InquiryCallback func(InquiryResult)

// Inquiry runs device discovery and delivers results to a registered
// callback on the stack handler.
type Inquiry struct {
	module.Base

	h *handler.Handler

	mu       sync.Mutex
	callback InquiryCallback
	active   bool
}

// InquiryDescriptor declares the inquiry module.
func InquiryDescriptor() module.Descriptor {
	return module.Descriptor{
		Identity:     InquiryID,
		FriendlyName: "Inquiry",
		Kind:         dependency.KindProtocol,
		DependsOn:    []module.Identity{hci.LayerID},
		New: func() module.Module {
			return &Inquiry{Base: module.NewBase(InquiryID, hci.LayerID)}
		},
	}
}

func (m *Inquiry) Start(h *handler.Handler) error {
	m.h = h
	logging.Info("Inquiry", "Inquiry module up")
	return nil
}

func (m *Inquiry) Stop() error {
	m.mu.Lock()
	m.callback = nil
	m.active = false
	m.mu.Unlock()
	return nil
}

// RegisterCallback installs the discovery report receiver, replacing
// any previous one.
func (m *Inquiry) RegisterCallback(cb InquiryCallback) {
	m.mu.Lock()
	m.callback = cb
	m.mu.Unlock()
}

// StartInquiry begins discovery. Reports arriving while no inquiry is
// active are dropped.
func (m *Inquiry) StartInquiry() {
	m.mu.Lock()
	m.active = true
	m.mu.Unlock()
	logging.Debug("Inquiry", "Inquiry started")
}

// StopInquiry ends discovery.
func (m *Inquiry) StopInquiry() {
	m.mu.Lock()
	m.active = false
	m.mu.Unlock()
	logging.Debug("Inquiry", "Inquiry stopped")
}

// IsActive reports whether an inquiry is in progress.
func (m *Inquiry) IsActive() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.active
}

// Report delivers a discovery result. The callback runs as a handler
// task like all other inter-module traffic.
func (m *Inquiry) Report(result InquiryResult) {
	m.h.Post(func() {
		m.mu.Lock()
		cb := m.callback
		active := m.active
		m.mu.Unlock()
		if !active || cb == nil {
			return
		}
		cb(result)
	})
}
