package http

import (
	"bytes"
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"net/http"
	neturl "net/url"
	"strconv"
	"strings"
	"time"

	"github.com/abdul-hamid-achik/oohttp/packages/url"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

const (
	// DefaultTimeout is the default HTTP request timeout
	DefaultTimeout = 60 * time.Second
	// DefaultMaxRedirects is the maximum number of redirects to follow
	DefaultMaxRedirects = 10
	// DefaultMaxIdleConns is the maximum number of idle connections in the pool
	DefaultMaxIdleConns = 100
	// DefaultMaxIdleConnsPerHost is the maximum number of idle connections per host
	DefaultMaxIdleConnsPerHost = 10
	// DefaultIdleConnTimeout is how long idle connections stay in the pool
	DefaultIdleConnTimeout = 90 * time.Second
)

var (
	// ErrUnsupportedProtocol is returned for URLs that are not http or https
	ErrUnsupportedProtocol = errors.New("unsupported protocol")
	// ErrMissingHost is returned for URLs without a hostname
	ErrMissingHost = errors.New("URL must have a host")
)

// Transport performs the network exchange for a fully resolved request.
type Transport interface {
	Do(ctx context.Context, req *Request) (*Response, error)
}

// Client is the net/http backed Transport.
type Client struct {
	httpClient     *http.Client
	transport      *http.Transport
	timeout        time.Duration
	followRedirect bool
	maxRedirects   int
	validateSSL    bool
	proxyURL       string
	defaultHeaders map[string]string
	limiter        *rate.Limiter
	logger         *logrus.Logger
}

type ClientOption func(*Client)

func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		timeout:        DefaultTimeout,
		followRedirect: true,
		maxRedirects:   DefaultMaxRedirects,
		validateSSL:    true,
		defaultHeaders: make(map[string]string),
		logger:         logrus.StandardLogger(),
	}

	for _, opt := range opts {
		opt(c)
	}

	c.transport = &http.Transport{
		MaxIdleConns:        DefaultMaxIdleConns,
		MaxIdleConnsPerHost: DefaultMaxIdleConnsPerHost,
		IdleConnTimeout:     DefaultIdleConnTimeout,
	}

	// Configure TLS verification
	if !c.validateSSL {
		c.transport.TLSClientConfig = &tls.Config{
			InsecureSkipVerify: true,
		}
	}

	// Configure proxy if specified
	if c.proxyURL != "" {
		proxyURL, err := neturl.Parse(c.proxyURL)
		if err == nil {
			c.transport.Proxy = http.ProxyURL(proxyURL)
		} else {
			c.logger.WithError(err).Warnf("ignoring invalid proxy URL %q", c.proxyURL)
		}
	}

	c.httpClient = &http.Client{
		Transport:     c.transport,
		Timeout:       c.timeout,
		CheckRedirect: c.redirectPolicy,
	}

	return c
}

func (c *Client) redirectPolicy(req *http.Request, via []*http.Request) error {
	if !c.followRedirect {
		return http.ErrUseLastResponse
	}
	if len(via) >= c.maxRedirects {
		return http.ErrUseLastResponse
	}
	return nil
}

func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		c.timeout = d
	}
}

func WithFollowRedirects(follow bool) ClientOption {
	return func(c *Client) {
		c.followRedirect = follow
	}
}

func WithMaxRedirects(max int) ClientOption {
	return func(c *Client) {
		c.maxRedirects = max
	}
}

func WithDefaultHeader(key, value string) ClientOption {
	return func(c *Client) {
		c.defaultHeaders[key] = value
	}
}

// WithDefaultHeaders sets multiple default headers for all requests
func WithDefaultHeaders(headers map[string]string) ClientOption {
	return func(c *Client) {
		for k, v := range headers {
			c.defaultHeaders[k] = v
		}
	}
}

// WithValidateSSL enables or disables SSL certificate validation
func WithValidateSSL(validate bool) ClientOption {
	return func(c *Client) {
		c.validateSSL = validate
	}
}

// WithProxy sets the proxy URL for all requests
func WithProxy(proxyURL string) ClientOption {
	return func(c *Client) {
		c.proxyURL = proxyURL
	}
}

// WithRateLimit caps the client at rps requests per second. Zero disables it.
func WithRateLimit(rps float64) ClientOption {
	return func(c *Client) {
		if rps <= 0 {
			c.limiter = nil
			return
		}
		c.limiter = rate.NewLimiter(rate.Limit(rps), 1)
	}
}

// WithLogger sets the logger used for per-request debug entries
func WithLogger(logger *logrus.Logger) ClientOption {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// Do sends req. A response outside the 2xx range is returned together with a
// *StatusError wrapping it.
func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	if err := ValidateURL(req.URL); err != nil {
		return nil, err
	}

	if req.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, req.Timeout)
		defer cancel()
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limit: %w", err)
		}
	}

	hc, err := c.clientFor(req)
	if err != nil {
		return nil, err
	}

	resp, err := c.doRequest(ctx, hc, req)
	if err != nil {
		return nil, err
	}
	if !resp.IsSuccess() {
		return resp, &StatusError{StatusCode: resp.StatusCode, Response: resp}
	}
	return resp, nil
}

// clientFor returns the shared client unless req overrides the timeout, TLS
// verification or the proxy. A request timeout replaces the client timeout
// rather than being capped by it.
func (c *Client) clientFor(req *Request) (*http.Client, error) {
	timeout := c.timeout
	if req.Timeout > 0 {
		timeout = 0
	}
	validate := c.validateSSL
	if req.ValidateSSL != nil {
		validate = *req.ValidateSSL
	}
	if validate == c.validateSSL && req.ProxyURL == "" {
		if timeout == c.httpClient.Timeout {
			return c.httpClient, nil
		}
		hc := *c.httpClient
		hc.Timeout = timeout
		return &hc, nil
	}

	transport := c.transport.Clone()
	if validate != c.validateSSL {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: !validate}
	}
	if req.ProxyURL != "" {
		proxyURL, err := neturl.Parse(req.ProxyURL)
		if err != nil {
			return nil, fmt.Errorf("invalid proxy URL: %w", err)
		}
		transport.Proxy = http.ProxyURL(proxyURL)
	}

	return &http.Client{
		Transport:     transport,
		Timeout:       timeout,
		CheckRedirect: c.redirectPolicy,
	}, nil
}

func (c *Client) doRequest(ctx context.Context, hc *http.Client, req *Request) (*Response, error) {
	var body io.Reader
	if len(req.Body) > 0 {
		body = bytes.NewReader(req.Body)
	}

	rawURL := req.URL.String()
	httpReq, err := http.NewRequestWithContext(ctx, req.Method, rawURL, body)
	if err != nil {
		return nil, err
	}

	for k, v := range c.defaultHeaders {
		httpReq.Header.Set(k, v)
	}

	for k, v := range req.Headers {
		httpReq.Header.Set(k, v)
	}

	// net/http ignores a Content-Length header, it only honours the field
	if cl := httpReq.Header.Get("Content-Length"); cl != "" {
		if n, err := strconv.ParseInt(cl, 10, 64); err == nil {
			httpReq.ContentLength = n
		}
		httpReq.Header.Del("Content-Length")
	}

	start := time.Now()
	httpResp, err := hc.Do(httpReq)
	duration := time.Since(start)

	if err != nil {
		c.logger.WithFields(logrus.Fields{
			"method": req.Method,
			"url":    rawURL,
		}).WithError(err).Debug("request failed")
		return nil, err
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, err
	}

	headers := make(map[string]string)
	for k := range httpResp.Header {
		headers[k] = httpResp.Header.Get(k)
	}

	c.logger.WithFields(logrus.Fields{
		"method":   req.Method,
		"url":      rawURL,
		"status":   httpResp.StatusCode,
		"duration": duration,
	}).Debug("request completed")

	return &Response{
		StatusCode: httpResp.StatusCode,
		Status:     httpResp.Status,
		Headers:    headers,
		Body:       respBody,
		Duration:   duration,
	}, nil
}

func (c *Client) Get(ctx context.Context, rawURL string, headers map[string]string) (*Response, error) {
	return c.send(ctx, http.MethodGet, rawURL, nil, headers)
}

func (c *Client) Post(ctx context.Context, rawURL string, body any, headers map[string]string) (*Response, error) {
	return c.send(ctx, http.MethodPost, rawURL, body, headers)
}

func (c *Client) Put(ctx context.Context, rawURL string, body any, headers map[string]string) (*Response, error) {
	return c.send(ctx, http.MethodPut, rawURL, body, headers)
}

func (c *Client) Patch(ctx context.Context, rawURL string, body any, headers map[string]string) (*Response, error) {
	return c.send(ctx, http.MethodPatch, rawURL, body, headers)
}

func (c *Client) Delete(ctx context.Context, rawURL string, headers map[string]string) (*Response, error) {
	return c.send(ctx, http.MethodDelete, rawURL, nil, headers)
}

func (c *Client) send(ctx context.Context, method, rawURL string, body any, headers map[string]string) (*Response, error) {
	req, err := NewRequest(method, rawURL)
	if err != nil {
		return nil, err
	}
	for k, v := range headers {
		req.SetHeader(k, v)
	}
	if err := req.SetBody(body); err != nil {
		return nil, err
	}
	return c.Do(ctx, req)
}

// ValidateURL checks that a URL is complete enough to send and uses an
// allowed protocol
func ValidateURL(u *url.URL) error {
	if u == nil {
		return fmt.Errorf("%w: no URL", ErrMissingHost)
	}

	protocol := strings.ToLower(u.Protocol)
	if protocol != "http" && protocol != "https" {
		return fmt.Errorf("%w %q (only http and https are allowed)", ErrUnsupportedProtocol, u.Protocol)
	}

	if u.Hostname == "" {
		return ErrMissingHost
	}

	return nil
}
