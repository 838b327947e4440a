// Package storage provides the persistence module. It is the one module
// present in every stack configuration, including minimal/idle mode, and
// doubles as the liveness leaf the orchestrator asserts on after start.
package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"gopkg.in/yaml.v3"

	"btstack/internal/dependency"
	"btstack/internal/handler"
	"btstack/internal/module"
	"btstack/pkg/logging"
)

// ModuleID identifies the storage module.
const ModuleID module.Identity = "storage"

// DeviceRecord is one persisted remote-device entry.
type DeviceRecord struct {
	Address  string    `yaml:"address"`
	Name     string    `yaml:"name,omitempty"`
	LinkKey  string    `yaml:"linkKey,omitempty"`
	LastSeen time.Time `yaml:"lastSeen,omitempty"`
}

type recordFile struct {
	Devices []DeviceRecord `yaml:"devices"`
}

// Module persists remote-device records to a yaml file. Records are
// loaded on Start and written back on Stop.
type Module struct {
	module.Base

	path string

	mu      sync.RWMutex
	devices map[string]DeviceRecord
	dirty   bool
}

// Descriptor returns the static declaration for the storage module. The
// records file lives at path.
func Descriptor(path string) module.Descriptor {
	return module.Descriptor{
		Identity:     ModuleID,
		FriendlyName: "Storage",
		Kind:         dependency.KindStorage,
		New: func() module.Module {
			return &Module{
				Base:    module.NewBase(ModuleID),
				path:    path,
				devices: make(map[string]DeviceRecord),
			}
		},
	}
}

func (m *Module) Start(h *handler.Handler) error {
	data, err := os.ReadFile(m.path)
	if os.IsNotExist(err) {
		logging.Debug("Storage", "No record file at %s, starting empty", m.path)
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading record file %s: %w", m.path, err)
	}

	var file recordFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("parsing record file %s: %w", m.path, err)
	}
	for _, rec := range file.Devices {
		m.devices[rec.Address] = rec
	}
	logging.Info("Storage", "Loaded %d device records from %s", len(file.Devices), m.path)
	return nil
}

func (m *Module) Stop() error {
	m.mu.RLock()
	dirty := m.dirty
	m.mu.RUnlock()
	if !dirty {
		return nil
	}
	return m.flush()
}

// Put stores or replaces a device record.
func (m *Module) Put(rec DeviceRecord) {
	m.mu.Lock()
	m.devices[rec.Address] = rec
	m.dirty = true
	m.mu.Unlock()
}

// Get returns the record for the given address.
func (m *Module) Get(address string) (DeviceRecord, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rec, ok := m.devices[address]
	return rec, ok
}

// NumRecords returns the number of stored device records.
func (m *Module) NumRecords() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.devices)
}

func (m *Module) flush() error {
	m.mu.RLock()
	file := recordFile{Devices: make([]DeviceRecord, 0, len(m.devices))}
	for _, rec := range m.devices {
		file.Devices = append(file.Devices, rec)
	}
	m.mu.RUnlock()

	data, err := yaml.Marshal(file)
	if err != nil {
		return fmt.Errorf("encoding device records: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(m.path), 0o755); err != nil {
		return fmt.Errorf("creating record directory: %w", err)
	}
	if err := os.WriteFile(m.path, data, 0o600); err != nil {
		return fmt.Errorf("writing record file %s: %w", m.path, err)
	}
	logging.Info("Storage", "Saved %d device records to %s", len(file.Devices), m.path)
	return nil
}
