package http

import (
	"context"
	"maps"
	"net/http"
	"time"

	"github.com/abdul-hamid-achik/oohttp/packages/url"
)

// Base builds requests against a base URL. Each request URL is merged over
// the base, so it only has to spell out what differs, and inherits the base's
// headers and transport settings.
type Base struct {
	URL               *url.URL
	Headers           map[string]string
	Timeout           time.Duration
	ValidateSSL       *bool
	AutoContentLength *bool
	ProxyURL          string

	transport Transport
}

// NewBase returns a Base over base, sending through transport. A nil
// transport uses a default Client.
func NewBase(base *url.URL, transport Transport) *Base {
	if transport == nil {
		transport = NewClient()
	}
	return &Base{
		URL:       base.Clone(),
		Headers:   make(map[string]string),
		transport: transport,
	}
}

// ParseBase is NewBase for a base URL string.
func ParseBase(rawBase string, transport Transport) (*Base, error) {
	u, err := url.Parse(rawBase)
	if err != nil {
		return nil, err
	}
	return NewBase(u, transport), nil
}

// SetURL parses rawBase and replaces the base URL.
func (b *Base) SetURL(rawBase string) error {
	u, err := url.Parse(rawBase)
	if err != nil {
		return err
	}
	b.URL = u
	return nil
}

// Request creates a request for target merged over the base URL.
func (b *Base) Request(method, target string) (*Request, error) {
	u, err := url.Parse(target)
	if err != nil {
		return nil, err
	}
	return b.RequestURL(method, u), nil
}

// RequestURL creates a request for a copy of target merged over the base URL.
// target itself is not modified.
func (b *Base) RequestURL(method string, target *url.URL) *Request {
	req := NewRequestURL(method, target)
	req.URL.MergeFrom(b.URL)

	maps.Copy(req.Headers, b.Headers)
	req.Timeout = b.Timeout
	req.ProxyURL = b.ProxyURL
	if b.ValidateSSL != nil {
		v := *b.ValidateSSL
		req.ValidateSSL = &v
	}
	if b.AutoContentLength != nil {
		v := *b.AutoContentLength
		req.AutoContentLength = &v
	}
	return req
}

func (b *Base) Get(target string) (*Request, error) {
	return b.Request(http.MethodGet, target)
}

func (b *Base) Post(target string) (*Request, error) {
	return b.Request(http.MethodPost, target)
}

func (b *Base) Put(target string) (*Request, error) {
	return b.Request(http.MethodPut, target)
}

func (b *Base) Delete(target string) (*Request, error) {
	return b.Request(http.MethodDelete, target)
}

func (b *Base) Patch(target string) (*Request, error) {
	return b.Request(http.MethodPatch, target)
}

// Send encodes body onto req and dispatches it through the transport.
func (b *Base) Send(ctx context.Context, req *Request, body any) (*Response, error) {
	if err := req.SetBody(body); err != nil {
		return nil, err
	}
	return b.transport.Do(ctx, req)
}

// SendJSON sends req and decodes the JSON response body.
func (b *Base) SendJSON(ctx context.Context, req *Request, body any) (any, error) {
	resp, err := b.Send(ctx, req, body)
	if err != nil {
		return nil, err
	}
	return resp.JSON()
}

// SendString sends req and returns the response body as a string.
func (b *Base) SendString(ctx context.Context, req *Request, body any) (string, error) {
	resp, err := b.Send(ctx, req, body)
	if err != nil {
		return "", err
	}
	return resp.BodyString(), nil
}
