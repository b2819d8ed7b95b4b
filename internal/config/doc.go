// Package config holds navi's settings: CLI defaults, the .navi YAML file
// with page exclusions and per-workspace overrides, .env loading and the
// XDG directories used for local state.
package config
