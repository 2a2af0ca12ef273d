package url

import (
	"net/url"
	"slices"
	"strings"
)

// Query is an ordered multimap of decoded query parameters.
//
// Keys keep the order in which they were first added. A key added once holds a
// single value; adding it again promotes it to a sequence, preserving the order
// of occurrences. The zero value is an empty query ready to use.
//
// Like net/url.Values, a non-empty Query is a reference: copies share the same
// parameters, and a change through one is seen through all of them. Use Clone
// for an independent copy.
type Query struct {
	m *orderedParams
}

type orderedParams struct {
	keys   []string
	values map[string][]string
}

// NewQuery returns an empty query.
func NewQuery() Query {
	return Query{}
}

func (q *Query) init() {
	if q.m == nil {
		q.m = &orderedParams{values: make(map[string][]string)}
	}
}

func (q Query) keyList() []string {
	if q.m == nil {
		return nil
	}
	return q.m.keys
}

func (q Query) lookup(key string) ([]string, bool) {
	if q.m == nil {
		return nil, false
	}
	vs, ok := q.m.values[key]
	return vs, ok
}

// Len returns the number of distinct keys.
func (q Query) Len() int {
	return len(q.keyList())
}

// Keys returns the keys in insertion order.
func (q Query) Keys() []string {
	return slices.Clone(q.keyList())
}

// Has reports whether key is present.
func (q Query) Has(key string) bool {
	_, ok := q.lookup(key)
	return ok
}

// Get returns the first value stored under key, or "" if absent.
func (q Query) Get(key string) string {
	vs, _ := q.lookup(key)
	if len(vs) == 0 {
		return ""
	}
	return vs[0]
}

// Values returns a copy of every value stored under key.
func (q Query) Values(key string) []string {
	vs, _ := q.lookup(key)
	return slices.Clone(vs)
}

// IsMulti reports whether key holds a sequence rather than a single value.
func (q Query) IsMulti(key string) bool {
	vs, _ := q.lookup(key)
	return len(vs) > 1
}

// Add appends value to key, promoting an existing single value to a sequence.
func (q *Query) Add(key, value string) {
	q.append(key, value)
}

// Set replaces whatever key holds with the given values. Calling Set with no
// values stores an empty sequence, which encodes to nothing.
func (q *Query) Set(key string, values ...string) {
	q.init()
	if _, ok := q.m.values[key]; !ok {
		q.m.keys = append(q.m.keys, key)
	}
	q.m.values[key] = append([]string{}, values...)
}

// Del removes key.
func (q *Query) Del(key string) {
	if !q.Has(key) {
		return
	}
	delete(q.m.values, key)
	q.m.keys = slices.DeleteFunc(q.m.keys, func(k string) bool { return k == key })
}

// Clone returns a deep copy that shares no memory with q.
func (q Query) Clone() Query {
	if q.m == nil {
		return Query{}
	}
	c := Query{m: &orderedParams{
		keys:   slices.Clone(q.m.keys),
		values: make(map[string][]string, len(q.m.values)),
	}}
	for k, vs := range q.m.values {
		c.m.values[k] = slices.Clone(vs)
	}
	return c
}

// Equal reports whether q and other hold the same keys, in the same order,
// with the same values.
func (q Query) Equal(other Query) bool {
	if !slices.Equal(q.keyList(), other.keyList()) {
		return false
	}
	for _, k := range q.keyList() {
		a, _ := q.lookup(k)
		b, _ := other.lookup(k)
		if !slices.Equal(a, b) {
			return false
		}
	}
	return true
}

// Map returns the query as a plain map. Keys with a single value map to a
// string, keys holding a sequence map to a []string.
func (q Query) Map() map[string]any {
	m := make(map[string]any, q.Len())
	for _, k := range q.keyList() {
		vs, _ := q.lookup(k)
		if len(vs) == 1 {
			m[k] = vs[0]
		} else {
			m[k] = slices.Clone(vs)
		}
	}
	return m
}

func (q *Query) append(key string, values ...string) {
	q.init()
	if _, ok := q.m.values[key]; !ok {
		q.m.keys = append(q.m.keys, key)
	}
	q.m.values[key] = append(q.m.values[key], values...)
}

// String encodes the query without a leading '?'.
func (q Query) String() string {
	return EncodeQuery(q)
}

// DecodeQuery parses a query string, with or without a leading '?'.
//
// The string is split on '&' and each piece on '='. Only pieces that split into
// exactly two parts are kept; anything else is dropped without error. Keys and
// values are percent-unescaped; an invalid escape leaves the text as given.
func DecodeQuery(search string) Query {
	q := Query{}
	search = strings.TrimPrefix(search, "?")
	if search == "" {
		return q
	}

	for _, piece := range strings.Split(search, "&") {
		parts := strings.Split(piece, "=")
		if len(parts) != 2 {
			continue
		}
		q.append(UnescapeComponent(parts[0]), UnescapeComponent(parts[1]))
	}
	return q
}

// EncodeQuery renders q as key=value pairs joined by '&'. Every element of a
// sequence is emitted as its own pair under the same key.
func EncodeQuery(q Query) string {
	var sb strings.Builder
	for _, k := range q.keyList() {
		key := EscapeComponent(k)
		vs, _ := q.lookup(k)
		for _, v := range vs {
			if sb.Len() > 0 {
				sb.WriteByte('&')
			}
			sb.WriteString(key)
			sb.WriteByte('=')
			sb.WriteString(EscapeComponent(v))
		}
	}
	return sb.String()
}

// UnescapeComponent decodes percent escapes in s. Input with a malformed
// escape is returned unchanged.
func UnescapeComponent(s string) string {
	if !strings.Contains(s, "%") {
		return s
	}
	u, err := url.PathUnescape(s)
	if err != nil {
		return s
	}
	return u
}

const upperhex = "0123456789ABCDEF"

// EscapeComponent percent-encodes s for use as a single query key or value.
// Letters, digits and -_.!~*'() are left alone; everything else is encoded
// byte-wise from its UTF-8 form.
func EscapeComponent(s string) string {
	n := 0
	for i := 0; i < len(s); i++ {
		if !unreserved(s[i]) {
			n++
		}
	}
	if n == 0 {
		return s
	}

	buf := make([]byte, 0, len(s)+2*n)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if unreserved(c) {
			buf = append(buf, c)
			continue
		}
		buf = append(buf, '%', upperhex[c>>4], upperhex[c&15])
	}
	return string(buf)
}

func unreserved(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	switch c {
	case '-', '_', '.', '!', '~', '*', '\'', '(', ')':
		return true
	}
	return false
}
