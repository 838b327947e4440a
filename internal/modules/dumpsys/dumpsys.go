// Package dumpsys provides the diagnostics module. Other modules
// register dump providers with it; Dump renders their output into a
// single text report for debugging and bug reports.
package dumpsys

import (
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"btstack/internal/dependency"
	"btstack/internal/handler"
	"btstack/internal/module"
	"btstack/pkg/logging"
)

// ModuleID identifies the dumpsys module.
const ModuleID module.Identity = "dumpsys"

// Provider renders one subsystem's diagnostic state.
type Provider func(w io.Writer)

// Module collects dump providers and renders diagnostic reports.
type Module struct {
	module.Base

	mu        sync.RWMutex
	providers map[string]Provider
	started   time.Time
}

// Descriptor returns the static declaration for the dumpsys module.
func Descriptor() module.Descriptor {
	return module.Descriptor{
		Identity:     ModuleID,
		FriendlyName: "Dumpsys",
		Kind:         dependency.KindDiagnostic,
		New: func() module.Module {
			return &Module{
				Base:      module.NewBase(ModuleID),
				providers: make(map[string]Provider),
			}
		},
	}
}

func (m *Module) Start(h *handler.Handler) error {
	m.started = time.Now()
	return nil
}

func (m *Module) Stop() error {
	m.mu.Lock()
	m.providers = make(map[string]Provider)
	m.mu.Unlock()
	return nil
}

// RegisterProvider adds a named dump provider. Re-registering a name
// replaces the previous provider.
func (m *Module) RegisterProvider(name string, p Provider) {
	m.mu.Lock()
	m.providers[name] = p
	m.mu.Unlock()
	logging.Debug("Dumpsys", "Registered dump provider %s", name)
}

// Dump writes a full diagnostic report to w. Providers are rendered in
// name order so successive dumps are comparable.
func (m *Module) Dump(w io.Writer) {
	m.mu.RLock()
	names := make([]string, 0, len(m.providers))
	for name := range m.providers {
		names = append(names, name)
	}
	providers := make(map[string]Provider, len(m.providers))
	for name, p := range m.providers {
		providers[name] = p
	}
	m.mu.RUnlock()
	sort.Strings(names)

	dumpID := uuid.New().String()
	fmt.Fprintf(w, "---- stack dump %s ----\n", dumpID)
	fmt.Fprintf(w, "uptime: %s\n", time.Since(m.started).Round(time.Millisecond))
	for _, name := range names {
		fmt.Fprintf(w, "-- %s --\n", name)
		providers[name](w)
	}
	fmt.Fprintf(w, "---- end dump %s ----\n", dumpID)
}
