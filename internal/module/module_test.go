package module

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"btstack/internal/dependency"
)

func descriptor(id Identity, deps ...Identity) Descriptor {
	return Descriptor{Identity: id, DependsOn: deps}
}

func TestList_AddPreservesOrderAndDeduplicates(t *testing.T) {
	list := NewList()
	list.Add(descriptor("storage"))
	list.Add(descriptor("hal"))
	list.Add(descriptor("storage"))
	list.Add(descriptor("hci", "hal"))

	require.Equal(t, 3, list.Len())
	ds := list.Descriptors()
	assert.Equal(t, Identity("storage"), ds[0].Identity)
	assert.Equal(t, Identity("hal"), ds[1].Identity)
	assert.Equal(t, Identity("hci"), ds[2].Identity)
	assert.True(t, list.Contains("hci"))
	assert.False(t, list.Contains("att"))
}

func TestList_GraphMirrorsDescriptors(t *testing.T) {
	list := NewList()
	list.Add(descriptor("hal"))
	list.Add(descriptor("hci", "hal"))

	g := list.Graph()
	require.Equal(t, 2, g.Len())
	assert.Equal(t, []dependency.NodeID{"hal"}, g.Get("hci").DependsOn)
	assert.Equal(t, []dependency.NodeID{"hci"}, g.Dependents("hal"))
}

func TestBase_Metadata(t *testing.T) {
	b := NewBase("hci", "hal")
	assert.Equal(t, Identity("hci"), b.Identity())
	assert.Equal(t, []Identity{"hal"}, b.Dependencies())
}
