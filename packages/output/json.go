package output

import (
	"encoding/json"
	"errors"
	"io"
	"os"

	"github.com/abdul-hamid-achik/oohttp/packages/http"
	"github.com/abdul-hamid-achik/oohttp/packages/url"
)

// JSONURL is the JSON form of a parsed URL: its serialization plus its parts.
type JSONURL struct {
	Href string `json:"href"`
	url.Descriptor
}

// JSONResponse represents response details
type JSONResponse struct {
	StatusCode int               `json:"statusCode"`
	Status     string            `json:"status,omitempty"`
	Headers    map[string]string `json:"headers,omitempty"`
	Duration   int64             `json:"duration"` // milliseconds
	Body       any               `json:"body,omitempty"`
}

// JSONError represents a failed command
type JSONError struct {
	Error      string `json:"error"`
	StatusCode int    `json:"statusCode,omitempty"`
	Input      string `json:"input,omitempty"`
}

// JSONFormatter writes one indented JSON document per call
type JSONFormatter struct {
	writer io.Writer
}

type JSONOption func(*JSONFormatter)

func NewJSONFormatter(opts ...JSONOption) *JSONFormatter {
	f := &JSONFormatter{
		writer: os.Stdout,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func JSONWithWriter(w io.Writer) JSONOption {
	return func(f *JSONFormatter) {
		f.writer = w
	}
}

func (f *JSONFormatter) encode(v any) error {
	encoder := json.NewEncoder(f.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

func (f *JSONFormatter) FormatURL(u *url.URL) error {
	d := u.Descriptor()
	if u.Query.Len() == 0 {
		d.Query = nil
	}
	return f.encode(JSONURL{Href: u.String(), Descriptor: d})
}

// FormatResponse embeds valid JSON bodies as-is and any other body as a string.
func (f *JSONFormatter) FormatResponse(resp *http.Response) error {
	out := JSONResponse{
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
		Headers:    resp.Headers,
		Duration:   resp.DurationMs(),
	}
	if len(resp.Body) > 0 {
		if json.Valid(resp.Body) {
			out.Body = json.RawMessage(resp.Body)
		} else {
			out.Body = resp.BodyString()
		}
	}
	return f.encode(out)
}

func (f *JSONFormatter) FormatError(err error) {
	out := JSONError{Error: err.Error()}

	var se *http.StatusError
	if errors.As(err, &se) {
		out.StatusCode = se.StatusCode
	}
	var invalid *url.InvalidURLError
	if errors.As(err, &invalid) {
		out.Input = invalid.Input
	}

	_ = f.encode(out)
}
