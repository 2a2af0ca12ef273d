// Package cmd implements the oohttp CLI commands using Cobra.
//
// Available commands:
//   - request, get, post, put, patch, delete: Send a request merged over the base URL
//   - url parse, url merge, url query: Inspect URLs with the same rules
//   - completion: Generate shell completion scripts
//   - version: Show oohttp version information
//
// The base URL, default headers and transport settings come from a config
// file, OOHTTP_* environment variables and flags, with flags taking precedence.
package cmd
