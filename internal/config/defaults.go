package config

// GetDefaultConfig returns the built-in configuration. Only the
// transport slice is enabled by default, which is enough for the stack
// to come up with persistence and diagnostics; richer slices are
// opted into per deployment.
func GetDefaultConfig() StackConfig {
	return StackConfig{
		Features: Features{
			TransportEnabled: true,
		},
		StoragePath: "btstack-devices.yaml",
		LogLevel:    "info",
	}
}
