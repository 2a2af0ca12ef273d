// Package config handles configuration loading and management for oohttp.
//
// It provides functionality for:
//   - Loading configuration from .oohttp.json, oohttp.json, .oohttp.yaml or .oohttp.yml
//   - Default configuration values
//   - Merging flag overrides over file settings, including base URLs
package config
