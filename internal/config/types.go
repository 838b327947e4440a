package config

// Features are the boolean toggles that gate which module slices the
// stack loads. They compose additively; any combination may be set.
// The toggles are read once at start time — changing them afterwards
// has no effect until the next start.
type Features struct {
	// TransportEnabled loads the HAL, HCI layer, storage, and
	// diagnostics modules.
	TransportEnabled bool `yaml:"transportEnabled"`

	// ControllerEnabled loads the controller capability module.
	ControllerEnabled bool `yaml:"controllerEnabled"`

	// ConnectionEnabled loads the link-management module.
	ConnectionEnabled bool `yaml:"connectionEnabled"`

	// SecurityEnabled loads the key-negotiation module.
	SecurityEnabled bool `yaml:"securityEnabled"`

	// CoreEnabled loads the full protocol core: attribute protocol,
	// LE advertising and scanning, both channel multiplexers, the
	// neighbor-management modules, storage, and the bridge-facing
	// module.
	CoreEnabled bool `yaml:"coreEnabled"`
}

// StackConfig is the full configuration surface of the stack daemon.
type StackConfig struct {
	Features    Features `yaml:"features"`
	StoragePath string   `yaml:"storagePath"`
	LogLevel    string   `yaml:"logLevel"`
}
