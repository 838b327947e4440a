// Package config provides configuration management for the stack daemon.
//
// Configuration is loaded from YAML and layered in the following order,
// with later sources overriding earlier ones:
//
//  1. Built-in defaults (transport slice enabled, local storage path)
//  2. User configuration (~/.config/btstack/config.yaml)
//  3. An explicitly supplied config file (--config flag)
//
// The feature toggles in Features gate which module slices the stack
// loads; see the stack package's catalog for the exact mapping. Toggles
// are read once when the stack starts.
package config
