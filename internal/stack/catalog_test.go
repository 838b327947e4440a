package stack

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"btstack/internal/config"
	"btstack/internal/module"
)

func listIdentities(list *module.List) []module.Identity {
	ids := make([]module.Identity, 0, list.Len())
	for _, d := range list.Descriptors() {
		ids = append(ids, d.Identity)
	}
	return ids
}

func TestBuildModuleList_EmptyFeatures(t *testing.T) {
	list := buildModuleList(config.Features{}, Options{})
	assert.Zero(t, list.Len())
}

func TestBuildModuleList_TransportSlice(t *testing.T) {
	list := buildModuleList(config.Features{TransportEnabled: true}, Options{})
	assert.Equal(t, []module.Identity{"hal", "hci", "storage", "dumpsys"}, listIdentities(list))
}

func TestBuildModuleList_SlicesAreAdditive(t *testing.T) {
	list := buildModuleList(config.Features{
		TransportEnabled:  true,
		ControllerEnabled: true,
		SecurityEnabled:   true,
	}, Options{})

	assert.True(t, list.Contains("hal"))
	assert.True(t, list.Contains("controller"))
	assert.True(t, list.Contains("security"))
	assert.False(t, list.Contains("aclmanager"))
	assert.False(t, list.Contains("att"))
}

func TestBuildModuleList_StorageDeduplicatedAcrossSlices(t *testing.T) {
	// Both the transport and core slices contribute storage; it must
	// appear exactly once, at its first position.
	list := buildModuleList(config.Features{
		TransportEnabled: true,
		CoreEnabled:      true,
	}, Options{})

	count := 0
	for _, id := range listIdentities(list) {
		if id == "storage" {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestBuildModuleList_CoreSlice(t *testing.T) {
	list := buildModuleList(config.Features{TransportEnabled: true, CoreEnabled: true}, Options{})

	for _, id := range []module.Identity{
		"att", "leadvertiser", "lescanner",
		"l2cap-classic", "l2cap-le",
		"connectability", "discoverability", "inquiry",
		"name", "namedb", "page", "scan",
		"storage", "shim-l2cap",
	} {
		assert.True(t, list.Contains(id), "core slice must contain %s", id)
	}
}
