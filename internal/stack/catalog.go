package stack

import (
	"btstack/internal/config"
	"btstack/internal/module"
	"btstack/internal/modules/att"
	"btstack/internal/modules/dumpsys"
	"btstack/internal/modules/hal"
	"btstack/internal/modules/hci"
	"btstack/internal/modules/l2cap"
	"btstack/internal/modules/neighbor"
	"btstack/internal/modules/security"
	"btstack/internal/modules/shim"
	"btstack/internal/modules/storage"
)

// featureSlice maps one configuration toggle to the descriptors it
// contributes. Slices are unioned in table order before resolution, so
// module selection stays data-driven and testable on its own.
type featureSlice struct {
	name    string
	enabled func(config.Features) bool
	modules func(opts Options) []module.Descriptor
}

var catalog = []featureSlice{
	{
		name:    "transport",
		enabled: func(f config.Features) bool { return f.TransportEnabled },
		modules: func(opts Options) []module.Descriptor {
			return []module.Descriptor{
				hal.Descriptor(),
				hci.LayerDescriptor(),
				storage.Descriptor(opts.StoragePath),
				dumpsys.Descriptor(),
			}
		},
	},
	{
		name:    "controller",
		enabled: func(f config.Features) bool { return f.ControllerEnabled },
		modules: func(opts Options) []module.Descriptor {
			return []module.Descriptor{
				hci.ControllerDescriptor(),
			}
		},
	},
	{
		name:    "connection",
		enabled: func(f config.Features) bool { return f.ConnectionEnabled },
		modules: func(opts Options) []module.Descriptor {
			return []module.Descriptor{
				hci.AclManagerDescriptor(),
			}
		},
	},
	{
		name:    "security",
		enabled: func(f config.Features) bool { return f.SecurityEnabled },
		modules: func(opts Options) []module.Descriptor {
			return []module.Descriptor{
				security.Descriptor(),
			}
		},
	},
	{
		name:    "core",
		enabled: func(f config.Features) bool { return f.CoreEnabled },
		modules: func(opts Options) []module.Descriptor {
			return []module.Descriptor{
				att.Descriptor(),
				hci.AdvertiserDescriptor(),
				hci.ScannerDescriptor(),
				l2cap.ClassicDescriptor(),
				l2cap.LeDescriptor(),
				neighbor.ConnectabilityDescriptor(),
				neighbor.DiscoverabilityDescriptor(),
				neighbor.InquiryDescriptor(),
				neighbor.NameDescriptor(),
				neighbor.NameDbDescriptor(),
				neighbor.PageDescriptor(),
				neighbor.ScanDescriptor(),
				storage.Descriptor(opts.StoragePath),
				shim.L2capDescriptor(),
			}
		},
	},
}

// buildModuleList unions the descriptor slices of every enabled toggle.
// The List de-duplicates identities, so a module contributed by two
// slices (storage, for instance) appears once, at its first position.
func buildModuleList(features config.Features, opts Options) *module.List {
	list := module.NewList()
	for _, slice := range catalog {
		if slice.enabled(features) {
			list.AddAll(slice.modules(opts))
		}
	}
	return list
}
