package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/tidwall/gjson"
	"github.com/xeipuuv/gojsonschema"
)

var (
	// ErrSchemaMismatch is returned when a body does not satisfy a JSON schema
	ErrSchemaMismatch = errors.New("response does not match schema")
	// ErrInvalidSchema is returned when the schema document itself cannot be loaded
	ErrInvalidSchema = errors.New("invalid JSON schema")
)

type Response struct {
	StatusCode int
	Status     string
	Headers    map[string]string
	Body       []byte
	Duration   time.Duration
}

// StatusError reports a response outside the 2xx range.
type StatusError struct {
	StatusCode int
	Response   *Response
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unsuccessful status code returned: %d", e.StatusCode)
}

// IsNotFound reports whether err is a StatusError for a 404 response.
func IsNotFound(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.StatusCode == http.StatusNotFound
}

func (r *Response) BodyString() string {
	return string(r.Body)
}

func (r *Response) JSON() (any, error) {
	var result any
	if err := json.Unmarshal(r.Body, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// Get extracts a value from a JSON body with a gjson path. An empty path
// returns the whole document.
func (r *Response) Get(path string) gjson.Result {
	if path == "" {
		return gjson.ParseBytes(r.Body)
	}
	return gjson.GetBytes(r.Body, path)
}

// ValidateSchema checks the JSON body against a JSON schema document. A body
// that is not JSON fails with ErrSchemaMismatch; a schema that cannot be
// loaded fails with ErrInvalidSchema.
func (r *Response) ValidateSchema(schema []byte) error {
	compiled, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(schema))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSchema, err)
	}

	result, err := compiled.Validate(gojsonschema.NewBytesLoader(r.Body))
	if err != nil {
		return fmt.Errorf("%w: body is not JSON: %v", ErrSchemaMismatch, err)
	}

	if result.Valid() {
		return nil
	}

	var problems []string
	for _, desc := range result.Errors() {
		problems = append(problems, desc.String())
	}
	return fmt.Errorf("%w: %s", ErrSchemaMismatch, strings.Join(problems, "; "))
}

func (r *Response) Header(key string) string {
	return lookupHeader(r.Headers, key)
}

func (r *Response) ContentType() string {
	return r.Header("Content-Type")
}

func (r *Response) IsJSON() bool {
	ct := r.ContentType()
	return strings.Contains(ct, "application/json")
}

func (r *Response) IsSuccess() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

func (r *Response) IsRedirect() bool {
	return r.StatusCode >= 300 && r.StatusCode < 400
}

func (r *Response) IsClientError() bool {
	return r.StatusCode >= 400 && r.StatusCode < 500
}

func (r *Response) IsServerError() bool {
	return r.StatusCode >= 500
}

func (r *Response) DurationMs() int64 {
	return r.Duration.Milliseconds()
}
