// Package http builds and sends oohttp requests.
//
// It wraps the standard library's http package around the url package:
//   - Base merges request URLs over a base URL and applies default headers
//   - Request encodes bodies as JSON or url-encoded forms
//   - Client is the Transport: timeouts, proxies, TLS verification, rate limits
//   - Response helpers for JSON paths and JSON schema validation
//
// Responses outside the 2xx range are returned with a *StatusError.
package http
