// Package url provides the URL value used to build oohttp requests.
//
// Unlike net/url it models a partially specified URL, so that a request URL
// can be written as a shorthand and completed from a base URL:
//   - Parse reads full URLs and shorthands such as ":9800/path" or "host:1234"
//   - FromDescriptor normalizes pre-split parts (path, search, query...)
//   - DecodeQuery and EncodeQuery convert between query strings and Query
//   - MergeFrom fills missing parts from a base and unions query parameters
//   - String renders the canonical form, dropping well-known default ports
//
// A URL is a plain value owned by its caller. MergeFrom mutates its receiver,
// so a URL shared between goroutines needs external synchronization.
package url
