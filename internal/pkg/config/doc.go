// Package config provides functionality for loading and managing application configuration.
//
// Settings are read from a YAML file, may be overridden through SHELF_EXPORT_*
// environment variables, and are validated before use. Each section has its
// own settings struct so components can depend on just the part they need.
package config
