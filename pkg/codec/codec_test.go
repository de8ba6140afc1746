package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type doc struct {
	Name  string `json:"name" yaml:"name"`
	Count int    `json:"count" yaml:"count"`
}

func TestForName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"json", "json"},
		{".JSON", "json"},
		{"yaml", "yaml"},
		{".yml", "yaml"},
	}
	for _, tt := range tests {
		c, err := ForName(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, c.Name())
	}

	_, err := ForName("toml")
	assert.Error(t, err)
}

func TestForPath(t *testing.T) {
	c, err := ForPath("/etc/storefront/catalog.yaml")
	require.NoError(t, err)
	assert.Equal(t, "yaml", c.Name())

	_, err = ForPath("catalog")
	assert.Error(t, err)
}

func TestJSONCodec(t *testing.T) {
	data, err := NewJSONCodec(false).Marshal(doc{Name: "fan", Count: 2})
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"fan","count":2}`, string(data))

	pretty, err := NewJSONCodec(true).Marshal(doc{Name: "fan"})
	require.NoError(t, err)
	assert.Contains(t, string(pretty), "\n  \"name\"")

	var d doc
	require.NoError(t, NewJSONCodec(false).Unmarshal([]byte(`{"name":"a","extra":1}`), &d))
	assert.Equal(t, "a", d.Name)

	strict := &JSONCodec{Strict: true}
	assert.Error(t, strict.Unmarshal([]byte(`{"name":"a","extra":1}`), &d))
}

func TestYAMLCodec(t *testing.T) {
	c := NewYAMLCodec()
	data, err := c.Marshal(doc{Name: "motor", Count: 3})
	require.NoError(t, err)

	var d doc
	require.NoError(t, c.Unmarshal(data, &d))
	assert.Equal(t, doc{Name: "motor", Count: 3}, d)
}
