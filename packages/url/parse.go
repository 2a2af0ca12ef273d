package url

import (
	"strconv"
	"strings"
)

// Parse reads a URL string, including the shorthand forms used for request
// URLs that are later merged over a base:
//
//	https://host:8443/path?q=1#frag
//	:9800/path      port and path only
//	host:1234       host and port
//	/path, path     relative references
//
// A port segment that is not an integer in 0..65535 yields an error matching
// ErrInvalidURL. An empty port segment leaves the port unset.
func Parse(raw string) (*URL, error) {
	u := New()
	rest := raw

	i := strings.Index(rest, "://")
	hasProtocol := i >= 0
	if hasProtocol {
		u.Protocol = rest[:i]
		rest = rest[i+3:]
	}

	colon := portDivider(rest)
	hasPort := colon >= 0
	if hasPort {
		u.Hostname = rest[:colon]
		rest = rest[colon+1:]
	}

	if i := strings.LastIndex(rest, "#"); i >= 0 {
		u.Hash = rest[i+1:]
		rest = rest[:i]
	}

	if i := strings.LastIndex(rest, "?"); i >= 0 {
		u.Query = DecodeQuery(rest[i:])
		rest = rest[:i]
	}

	slash := strings.Index(rest, "/")
	var port string
	switch {
	case hasPort && slash >= 0:
		port = rest[:slash]
		u.Pathname = rest[slash:]
	case hasPort:
		port = rest
	case !hasProtocol || slash == 0:
		u.Pathname = rest
	case slash > 0:
		u.Hostname = rest[:slash]
		u.Pathname = rest[slash:]
	default:
		u.Hostname = rest
	}

	if port != "" {
		n, err := parsePort(port)
		if err != nil {
			return nil, &InvalidURLError{Input: raw, Field: "port", Value: port}
		}
		u.Port = n
	}

	return u, nil
}

// MustParse is like Parse but panics on error.
func MustParse(raw string) *URL {
	u, err := Parse(raw)
	if err != nil {
		panic(err)
	}
	return u
}

// portDivider returns the index of the colon separating host from port. Only
// colons ahead of the path, query and fragment count.
func portDivider(s string) int {
	end := strings.IndexAny(s, "/?#")
	if end < 0 {
		end = len(s)
	}
	return strings.IndexByte(s[:end], ':')
}

func parsePort(s string) (int, error) {
	n, err := strconv.ParseUint(s, 10, 16)
	if err != nil {
		return 0, err
	}
	return int(n), nil
}
