package stack

import (
	"btstack/internal/handler"
	"btstack/internal/modules/hci"
	"btstack/internal/modules/neighbor"
	"btstack/pkg/logging"
)

// ConnectionBridge gives legacy link-management call sites access to
// the ACL manager module. It exists only while the stack is running:
// the orchestrator constructs it after the ACL manager is confirmed
// running and destroys it before any module is stopped.
type ConnectionBridge struct {
	h   *handler.Handler
	acl *hci.AclManager
}

func newConnectionBridge(h *handler.Handler, acl *hci.AclManager) *ConnectionBridge {
	logging.Debug("Stack", "Constructed connection bridge")
	return &ConnectionBridge{h: h, acl: acl}
}

// Connect opens a link to the given address through the legacy surface.
func (b *ConnectionBridge) Connect(address string) {
	b.acl.Connect(address)
}

// Disconnect drops the link to the given address.
func (b *ConnectionBridge) Disconnect(address string) {
	b.acl.Disconnect(address)
}

func (b *ConnectionBridge) close() {
	logging.Debug("Stack", "Destroyed connection bridge")
}

// DiscoveryBridge gives legacy discovery call sites access to the
// inquiry module. Same ownership rules as the connection bridge.
type DiscoveryBridge struct {
	h       *handler.Handler
	inquiry *neighbor.Inquiry
}

func newDiscoveryBridge(h *handler.Handler, inquiry *neighbor.Inquiry) *DiscoveryBridge {
	logging.Debug("Stack", "Constructed discovery bridge")
	return &DiscoveryBridge{h: h, inquiry: inquiry}
}

// StartDiscovery begins device discovery, delivering results to cb on
// the stack handler.
func (b *DiscoveryBridge) StartDiscovery(cb neighbor.InquiryCallback) {
	b.inquiry.RegisterCallback(cb)
	b.inquiry.StartInquiry()
}

// StopDiscovery ends device discovery.
func (b *DiscoveryBridge) StopDiscovery() {
	b.inquiry.StopInquiry()
}

func (b *DiscoveryBridge) close() {
	b.inquiry.StopInquiry()
	logging.Debug("Stack", "Destroyed discovery bridge")
}
