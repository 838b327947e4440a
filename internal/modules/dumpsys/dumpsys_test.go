package dumpsys

import (
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"btstack/internal/handler"
)

func TestDumpsys_RendersProvidersInNameOrder(t *testing.T) {
	h := handler.New("test")
	defer h.Stop()

	m := Descriptor().New().(*Module)
	require.NoError(t, m.Start(h))

	m.RegisterProvider("hci", func(w io.Writer) {
		fmt.Fprintln(w, "commands: 42")
	})
	m.RegisterProvider("acl", func(w io.Writer) {
		fmt.Fprintln(w, "connections: 1")
	})

	var buf strings.Builder
	m.Dump(&buf)
	out := buf.String()

	assert.Contains(t, out, "-- acl --")
	assert.Contains(t, out, "-- hci --")
	assert.Contains(t, out, "connections: 1")
	assert.Less(t, strings.Index(out, "-- acl --"), strings.Index(out, "-- hci --"),
		"providers render in name order")

	require.NoError(t, m.Stop())
}

func TestDumpsys_StopClearsProviders(t *testing.T) {
	h := handler.New("test")
	defer h.Stop()

	m := Descriptor().New().(*Module)
	require.NoError(t, m.Start(h))
	m.RegisterProvider("hci", func(w io.Writer) {})
	require.NoError(t, m.Stop())

	var buf strings.Builder
	m.Dump(&buf)
	assert.NotContains(t, buf.String(), "-- hci --")
}
