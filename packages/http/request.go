package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/abdul-hamid-achik/oohttp/packages/url"
)

const (
	// DefaultContentType is assumed for bodies when no Content-Type is set
	DefaultContentType = "application/json"
	// FormContentType selects url-encoded form bodies
	FormContentType = "application/x-www-form-urlencoded"
)

// ErrUnsupportedBody is returned when a body value cannot be encoded for the
// request's content type
var ErrUnsupportedBody = errors.New("unsupported body")

type Request struct {
	Method            string
	URL               *url.URL
	Headers           map[string]string
	Body              []byte
	Timeout           time.Duration
	ProxyURL          string
	ValidateSSL       *bool // nil uses the transport's setting
	AutoContentLength *bool // nil means off
}

// NewRequest parses rawURL, which may be any form accepted by url.Parse.
func NewRequest(method, rawURL string) (*Request, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, err
	}
	return NewRequestURL(method, u), nil
}

// NewRequestURL builds a request for a copy of u.
func NewRequestURL(method string, u *url.URL) *Request {
	if method == "" {
		method = http.MethodGet
	}
	if u == nil {
		u = url.New()
	}
	return &Request{
		Method:  method,
		URL:     u.Clone(),
		Headers: make(map[string]string),
	}
}

func Get(rawURL string) (*Request, error) {
	return NewRequest(http.MethodGet, rawURL)
}

func Post(rawURL string) (*Request, error) {
	return NewRequest(http.MethodPost, rawURL)
}

func Put(rawURL string) (*Request, error) {
	return NewRequest(http.MethodPut, rawURL)
}

func Delete(rawURL string) (*Request, error) {
	return NewRequest(http.MethodDelete, rawURL)
}

func Patch(rawURL string) (*Request, error) {
	return NewRequest(http.MethodPatch, rawURL)
}

// SetHeader sets a header, replacing any existing header whose name differs
// only in case.
func (r *Request) SetHeader(key, value string) *Request {
	for k := range r.Headers {
		if k != key && strings.EqualFold(k, key) {
			delete(r.Headers, k)
		}
	}
	r.Headers[key] = value
	return r
}

// Header returns the value of a header, matched case-insensitively.
func (r *Request) Header(key string) string {
	return lookupHeader(r.Headers, key)
}

func (r *Request) SetTimeout(d time.Duration) *Request {
	r.Timeout = d
	return r
}

// Proxy routes this request through proxyURL.
func (r *Request) Proxy(proxyURL string) *Request {
	r.ProxyURL = proxyURL
	return r
}

func (r *Request) SetValidateSSL(validate bool) *Request {
	r.ValidateSSL = &validate
	return r
}

func (r *Request) SetAutoContentLength(auto bool) *Request {
	r.AutoContentLength = &auto
	return r
}

// ContentType returns the Content-Type header, or DefaultContentType.
func (r *Request) ContentType() string {
	if ct := r.Header("Content-Type"); ct != "" {
		return ct
	}
	return DefaultContentType
}

// SetBody encodes data as the request body.
//
// Strings and byte slices are sent as given. Maps, url.Query values and other
// types are JSON-encoded when the content type is JSON, and url-encoded from
// their first-level keys otherwise. With auto content-length on and no
// Content-Length header set, the header is filled with the body's byte length.
func (r *Request) SetBody(data any) error {
	body, err := r.encodeBody(data)
	if err != nil {
		return err
	}
	r.Body = body

	if len(body) > 0 && r.Header("Content-Type") == "" {
		r.SetHeader("Content-Type", DefaultContentType)
	}
	if len(body) > 0 && r.AutoContentLength != nil && *r.AutoContentLength && r.Header("Content-Length") == "" {
		r.SetHeader("Content-Length", strconv.Itoa(len(body)))
	}
	return nil
}

func (r *Request) encodeBody(data any) ([]byte, error) {
	switch v := data.(type) {
	case nil:
		return nil, nil
	case string:
		return []byte(v), nil
	case []byte:
		return v, nil
	}

	if strings.Contains(r.ContentType(), "json") {
		body, err := json.Marshal(data)
		if err != nil {
			return nil, fmt.Errorf("encoding JSON body: %w", err)
		}
		return body, nil
	}

	form, err := formQuery(data)
	if err != nil {
		return nil, err
	}
	return []byte(url.EncodeQuery(form)), nil
}

func formQuery(data any) (url.Query, error) {
	var q url.Query
	switch v := data.(type) {
	case url.Query:
		return v, nil
	case *url.Query:
		return *v, nil
	case map[string]string:
		for _, k := range sortedKeys(v) {
			q.Add(k, v[k])
		}
	case map[string][]string:
		for _, k := range sortedKeys(v) {
			q.Set(k, v[k]...)
		}
	case map[string]any:
		for _, k := range sortedKeys(v) {
			q.Add(k, fmt.Sprint(v[k]))
		}
	default:
		return q, fmt.Errorf("%w: cannot form-encode %T", ErrUnsupportedBody, data)
	}
	return q, nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func lookupHeader(headers map[string]string, key string) string {
	if v, ok := headers[key]; ok {
		return v
	}
	for k, v := range headers {
		if strings.EqualFold(k, key) {
			return v
		}
	}
	return ""
}
