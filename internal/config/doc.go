// Package config loads, normalizes, and validates quickstitch configuration.
//
// It supplies defaults for every knob, reads an optional TOML file and
// converts the result into the option structs the loader, splitpoint finder
// and exporter take. Command-line flags are applied on top by the caller
// before Validate runs a second time.
package config
