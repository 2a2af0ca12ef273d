package url

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

type target struct {
	Base *URL `json:"base" yaml:"base"`
}

func TestURL_UnmarshalJSON(t *testing.T) {
	t.Run("string", func(t *testing.T) {
		var tg target
		require.NoError(t, json.Unmarshal([]byte(`{"base":"https://api.example.com:443/v1?key=abc"}`), &tg))
		assert.Equal(t, "https://api.example.com/v1?key=abc", tg.Base.String())
	})

	t.Run("descriptor", func(t *testing.T) {
		var tg target
		data := `{"base":{"protocol":"http:","hostname":"h","port":8080,"path":"/p?x=1","hash":"top"}}`
		require.NoError(t, json.Unmarshal([]byte(data), &tg))
		assert.Equal(t, "http://h:8080/p?x=1#top", tg.Base.String())
	})

	t.Run("descriptor query keeps order", func(t *testing.T) {
		var tg target
		data := `{"base":{"pathname":"/p","query":{"z":"1","a":["2","3"]}}}`
		require.NoError(t, json.Unmarshal([]byte(data), &tg))
		assert.Equal(t, "/p?z=1&a=2&a=3", tg.Base.String())
	})

	t.Run("invalid port", func(t *testing.T) {
		var tg target
		err := json.Unmarshal([]byte(`{"base":"host:x"}`), &tg)
		assert.ErrorIs(t, err, ErrInvalidURL)
	})

	t.Run("bad query value", func(t *testing.T) {
		var tg target
		err := json.Unmarshal([]byte(`{"base":{"query":{"a":1}}}`), &tg)
		assert.Error(t, err)
	})
}

func TestURL_MarshalJSON(t *testing.T) {
	data, err := json.Marshal(target{Base: MustParse("https://h:443/p?a=1")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"base":"https://h/p?a=1"}`, string(data))
}

func TestQuery_MarshalJSON(t *testing.T) {
	q := DecodeQuery("z=1&a=2&a=3")
	data, err := json.Marshal(q)
	require.NoError(t, err)
	assert.Equal(t, `{"z":"1","a":["2","3"]}`, string(data))
}

func TestURL_UnmarshalYAML(t *testing.T) {
	t.Run("string", func(t *testing.T) {
		var tg target
		require.NoError(t, yaml.Unmarshal([]byte("base: http://localhost:9800/api\n"), &tg))
		assert.Equal(t, "http://localhost:9800/api", tg.Base.String())
	})

	t.Run("descriptor", func(t *testing.T) {
		var tg target
		data := `
base:
  protocol: https
  hostname: api.example.com
  pathname: /v2
  query:
    key: abc
    tag: [x, y]
`
		require.NoError(t, yaml.Unmarshal([]byte(data), &tg))
		assert.Equal(t, "https://api.example.com/v2?key=abc&tag=x&tag=y", tg.Base.String())
	})

	t.Run("sequence rejected", func(t *testing.T) {
		var tg target
		err := yaml.Unmarshal([]byte("base: [a, b]\n"), &tg)
		assert.Error(t, err)
	})
}

func TestQuery_MarshalYAML(t *testing.T) {
	out, err := yaml.Marshal(map[string]Query{"q": DecodeQuery("a=1&b=2&b=3")})
	require.NoError(t, err)

	var back map[string]Query
	require.NoError(t, yaml.Unmarshal(out, &back))
	assert.Equal(t, "a=1&b=2&b=3", EncodeQuery(back["q"]))
}
