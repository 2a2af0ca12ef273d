// Package output provides formatters for displaying URLs, responses and errors.
//
// Supported output formats:
//   - Console: Human-readable colored terminal output
//   - JSON: Machine-readable JSON output
//
// Each formatter implements the Formatter interface; New selects one by name.
package output
