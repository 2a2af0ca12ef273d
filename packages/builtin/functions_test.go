package builtin

import (
	"regexp"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_Call(t *testing.T) {
	r := NewRegistry()

	tests := []struct {
		name string
		expr string
		want any
	}{
		{"base64", `base64("user:pass")`, "dXNlcjpwYXNz"},
		{"base64 decode", `base64Decode('dXNlcjpwYXNz')`, "user:pass"},
		{"base64 decode invalid", `base64Decode("%%%")`, "%%%"},
		{"url encode", `urlEncode("a b&c=d")`, "a%20b%26c%3Dd"},
		{"url encode unreserved", `urlEncode("it's (ok)!")`, "it's%20(ok)!"},
		{"url decode", `urlDecode("a%20b%26c")`, "a b&c"},
		{"url decode malformed", `urlDecode("100%")`, "100%"},
		{"no args", `base64()`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := r.Call(tt.expr)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRegistry_CallUnknown(t *testing.T) {
	r := NewRegistry()

	_, ok := r.Call("nope()")
	assert.False(t, ok)

	_, ok = r.Call("not a call")
	assert.False(t, ok)

	assert.False(t, r.Has("nope()"))
	assert.True(t, r.Has("uuid()"))
	assert.False(t, r.Has("uuid"))
}

func TestRegistry_Register(t *testing.T) {
	r := NewRegistry()
	r.Register("join", func(args []string) any {
		out := ""
		for _, a := range args {
			out += a
		}
		return out
	})

	got, ok := r.Call(`join("a,b", c)`)
	require.True(t, ok)
	assert.Equal(t, "a,bc", got)
	assert.Contains(t, r.Names(), "join")
}

func TestFuncUUID(t *testing.T) {
	got, ok := NewRegistry().Call("uuid()")
	require.True(t, ok)
	_, err := uuid.Parse(got.(string))
	assert.NoError(t, err)
}

func TestFuncRandom(t *testing.T) {
	r := NewRegistry()
	for i := 0; i < 50; i++ {
		got, ok := r.Call("random(5, 7)")
		require.True(t, ok)
		n := got.(int)
		assert.GreaterOrEqual(t, n, 5)
		assert.LessOrEqual(t, n, 7)
	}

	got, _ := r.Call("random(3, 3)")
	assert.Equal(t, 3, got)

	got, _ = r.Call("random(9, 1)")
	assert.GreaterOrEqual(t, got.(int), 1)
	assert.LessOrEqual(t, got.(int), 9)
}

func TestFuncTime(t *testing.T) {
	r := NewRegistry()

	now, _ := r.Call("now()")
	_, err := time.Parse(time.RFC3339, now.(string))
	assert.NoError(t, err)

	ts, _ := r.Call("timestamp()")
	assert.InDelta(t, time.Now().Unix(), ts.(int64), 5)

	ms, _ := r.Call("timestampMs()")
	assert.InDelta(t, time.Now().UnixMilli(), ms.(int64), 5000)

	date, _ := r.Call("date()")
	assert.Regexp(t, regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`), date)

	clock, _ := r.Call(`date("time")`)
	assert.Regexp(t, regexp.MustCompile(`^\d{2}:\d{2}:\d{2}$`), clock)

	year, _ := r.Call(`date("2006")`)
	assert.Equal(t, time.Now().UTC().Format("2006"), year)
}

func TestParseArgs(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{`a, b`, []string{"a", "b"}},
		{`"a, b", c`, []string{"a, b", "c"}},
		{`'x'`, []string{"x"}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, parseArgs(tt.in), tt.in)
	}
}
