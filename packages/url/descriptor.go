package url

import (
	"strconv"
	"strings"
)

// Descriptor holds URL parts that were already split apart, for example by a
// router. Path and Search may duplicate what Pathname and Query carry.
type Descriptor struct {
	Protocol string `json:"protocol,omitempty" yaml:"protocol,omitempty"`
	Hostname string `json:"hostname,omitempty" yaml:"hostname,omitempty"`
	Port     int    `json:"port,omitempty" yaml:"port,omitempty"`
	Path     string `json:"path,omitempty" yaml:"path,omitempty"`         // pathname plus optional ?search
	Pathname string `json:"pathname,omitempty" yaml:"pathname,omitempty"` // path without the search part
	Search   string `json:"search,omitempty" yaml:"search,omitempty"`     // raw query string, '?' optional
	Query    *Query `json:"query,omitempty" yaml:"query,omitempty"`
	Hash     string `json:"hash,omitempty" yaml:"hash,omitempty"`
}

// FromDescriptor normalizes d into a URL.
//
// Path is only consulted when Pathname, Search and Query are all empty; it is
// split on its first '?'. Search is decoded only when Query is nil. A single
// trailing ':' is stripped from Protocol.
func FromDescriptor(d Descriptor) (*URL, error) {
	if d.Port < 0 || d.Port > 65535 {
		return nil, &InvalidURLError{Field: "port", Value: strconv.Itoa(d.Port)}
	}

	pathname, search := d.Pathname, d.Search
	if d.Path != "" && pathname == "" && search == "" && d.Query == nil {
		pathname, search, _ = strings.Cut(d.Path, "?")
	}

	u := &URL{
		Protocol: strings.TrimSuffix(d.Protocol, ":"),
		Hostname: d.Hostname,
		Port:     d.Port,
		Pathname: pathname,
		Hash:     d.Hash,
	}

	switch {
	case d.Query != nil:
		u.Query = d.Query.Clone()
	case search != "":
		u.Query = DecodeQuery(search)
	}

	return u, nil
}

// Descriptor returns the parts of u in descriptor form.
func (u *URL) Descriptor() Descriptor {
	q := u.Query.Clone()
	return Descriptor{
		Protocol: u.Protocol,
		Hostname: u.Hostname,
		Port:     u.Port,
		Pathname: u.Pathname,
		Query:    &q,
		Hash:     u.Hash,
	}
}
