// Package env handles variables and placeholder interpolation for oohttp.
//
// It provides functionality for:
//   - Loading .env files
//   - Collecting variables from --var flags and OOHTTP_VAR_* environment variables
//   - Interpolating {{variable}}, {{$ENV_VAR}} and {{func()}} placeholders
package env
