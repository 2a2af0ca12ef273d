package http

import (
	"testing"

	"github.com/abdul-hamid-achik/oohttp/packages/url"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestConstructors(t *testing.T) {
	tests := []struct {
		method string
		fn     func(string) (*Request, error)
	}{
		{"GET", Get},
		{"POST", Post},
		{"PUT", Put},
		{"DELETE", Delete},
		{"PATCH", Patch},
	}

	for _, tt := range tests {
		t.Run(tt.method, func(t *testing.T) {
			req, err := tt.fn("someurl")
			require.NoError(t, err)
			assert.Equal(t, tt.method, req.Method)
			assert.Equal(t, "someurl", req.URL.Pathname)
		})
	}
}

func TestNewRequest_InvalidURL(t *testing.T) {
	_, err := NewRequest("GET", "http://host:port/x")
	assert.ErrorIs(t, err, url.ErrInvalidURL)
}

func TestNewRequestURL_CopiesURL(t *testing.T) {
	u := url.MustParse("http://h/p?a=1")
	req := NewRequestURL("", u)
	req.URL.Query.Add("a", "2")

	assert.Equal(t, "GET", req.Method)
	assert.Equal(t, []string{"1"}, u.Query.Values("a"))
}

func TestRequest_SetHeaderIsCaseInsensitive(t *testing.T) {
	req, err := Get("/x")
	require.NoError(t, err)

	req.SetHeader("content-type", "text/plain")
	req.SetHeader("Content-Type", "application/xml")

	assert.Len(t, req.Headers, 1)
	assert.Equal(t, "application/xml", req.Header("CONTENT-TYPE"))
}

func TestRequest_SetBody(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
		data        any
		want        string
	}{
		{
			name: "string passes through",
			data: "raw body",
			want: "raw body",
		},
		{
			name: "bytes pass through",
			data: []byte("raw bytes"),
			want: "raw bytes",
		},
		{
			name: "map as JSON by default",
			data: map[string]any{"test": "value"},
			want: `{"test":"value"}`,
		},
		{
			name:        "form encoding sorts keys and escapes",
			contentType: FormContentType,
			data: map[string]string{
				"test":    "value",
				"test2":   "value2",
				"escaped": "some&thing?etc",
			},
			want: "escaped=some%26thing%3Fetc&test=value&test2=value2",
		},
		{
			name:        "form encoding of any values",
			contentType: FormContentType,
			data:        map[string]any{"n": 1, "b": true},
			want:        "b=true&n=1",
		},
		{
			name:        "form encoding of multi values",
			contentType: FormContentType,
			data:        map[string][]string{"tag": {"a", "b"}},
			want:        "tag=a&tag=b",
		},
		{
			name:        "query keeps order",
			contentType: FormContentType,
			data:        url.DecodeQuery("z=1&a=2"),
			want:        "z=1&a=2",
		},
		{
			name:        "struct as JSON",
			contentType: "application/json; charset=utf-8",
			data:        struct{ Name string }{"x"},
			want:        `{"Name":"x"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := Post("http://h/p")
			require.NoError(t, err)
			if tt.contentType != "" {
				req.SetHeader("Content-Type", tt.contentType)
			}

			require.NoError(t, req.SetBody(tt.data))
			assert.Equal(t, tt.want, string(req.Body))
		})
	}
}

func TestRequest_SetBodyDefaults(t *testing.T) {
	req, err := Post("http://h/p")
	require.NoError(t, err)

	require.NoError(t, req.SetBody(nil))
	assert.Nil(t, req.Body)
	assert.Empty(t, req.Header("Content-Type"))

	require.NoError(t, req.SetBody(map[string]string{"a": "b"}))
	assert.Equal(t, DefaultContentType, req.Header("Content-Type"))
	assert.Empty(t, req.Header("Content-Length"))
}

func TestRequest_SetBodyUnsupportedForm(t *testing.T) {
	req, err := Post("http://h/p")
	require.NoError(t, err)
	req.SetHeader("Content-Type", FormContentType)

	err = req.SetBody(struct{ A int }{1})
	assert.ErrorIs(t, err, ErrUnsupportedBody)
}

func TestRequest_AutoContentLength(t *testing.T) {
	req, err := Post("http://h/p")
	require.NoError(t, err)
	req.SetAutoContentLength(true)

	require.NoError(t, req.SetBody("héllo"))
	assert.Equal(t, "6", req.Header("Content-Length"))

	req.SetHeader("Content-Length", "99")
	require.NoError(t, req.SetBody("x"))
	assert.Equal(t, "99", req.Header("Content-Length"))
}
