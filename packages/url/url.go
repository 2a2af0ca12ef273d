package url

import (
	"strconv"
	"strings"
)

// defaultPorts maps a protocol to the port implied when none is written.
var defaultPorts = map[string]int{
	"ftp":   21,
	"http":  80,
	"https": 443,
	"ws":    80,
	"wss":   443,
}

// DefaultPort returns the well-known port for protocol.
func DefaultPort(protocol string) (int, bool) {
	p, ok := defaultPorts[strings.ToLower(protocol)]
	return p, ok
}

// URL is a partially specified URL. Empty strings and a zero Port mean the
// field is absent.
type URL struct {
	Protocol string // scheme without ":" or "//"
	Hostname string
	Port     int
	Pathname string
	Query    Query
	Hash     string // fragment without "#"
}

// New returns an empty URL.
func New() *URL {
	return &URL{}
}

// Clone returns a deep copy of u.
func (u *URL) Clone() *URL {
	if u == nil {
		return nil
	}
	c := *u
	c.Query = u.Query.Clone()
	return &c
}

// IsAbs reports whether u carries both a protocol and a hostname.
func (u *URL) IsAbs() bool {
	return u.Protocol != "" && u.Hostname != ""
}

// Host returns the hostname with the port appended when one is set.
func (u *URL) Host() string {
	if u.Port == 0 {
		return u.Hostname
	}
	return u.Hostname + ":" + strconv.Itoa(u.Port)
}

// String renders u. Missing fields are omitted, never defaulted, and the port
// is left out when it matches the protocol's default port.
func (u *URL) String() string {
	var sb strings.Builder

	if u.Protocol != "" {
		sb.WriteString(u.Protocol)
		sb.WriteString("://")
	}

	if u.Hostname != "" {
		sb.WriteString(u.Hostname)
		if u.Port != 0 && !u.isDefaultPort() {
			sb.WriteByte(':')
			sb.WriteString(strconv.Itoa(u.Port))
		}
	}

	sb.WriteString(u.Pathname)

	if u.Query.Len() > 0 {
		sb.WriteByte('?')
		sb.WriteString(EncodeQuery(u.Query))
	}

	if u.Hash != "" {
		sb.WriteByte('#')
		sb.WriteString(u.Hash)
	}

	return sb.String()
}

func (u *URL) isDefaultPort() bool {
	if u.Protocol == "" {
		return false
	}
	p, ok := DefaultPort(u.Protocol)
	return ok && p == u.Port
}
