// Package builtin provides the functions callable from {{...}} placeholders
// in oohttp request URLs, headers and bodies.
//
// Available functions:
//   - uuid(): Generate a random UUID v4
//   - now(): Current UTC time in RFC 3339 format
//   - timestamp(): Current Unix timestamp
//   - timestampMs(): Current Unix timestamp in milliseconds
//   - random(min, max): Random integer in range
//   - base64(value) and base64Decode(value)
//   - urlEncode(value) and urlDecode(value): Query component escaping
//   - date(layout): Current UTC date, by named or Go layout
//
// Functions are invoked using the {{functionName(args)}} syntax.
package builtin
