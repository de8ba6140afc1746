// Package codec provides the encodings used for catalog documents.
// It offers JSON (json-iterator, standard-library compatible) and YAML codecs
// behind one interface so loaders can pick a codec from a file extension.
//
// Package codec 提供目录文档使用的编码。
// 它在一个接口后提供JSON（json-iterator，兼容标准库）和YAML编解码器，
// 以便加载器可以根据文件扩展名选择编解码器。
package codec

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"gopkg.in/yaml.v3"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Codec defines the interface for encoding and decoding catalog documents.
//
// Codec 定义了编码和解码目录文档的接口。
type Codec interface {
	// Marshal serializes a value into bytes.
	//
	// Parameters:
	//   - value: The value to serialize
	//
	// Returns:
	//   - []byte: The serialized bytes
	//   - error: An error if serialization fails
	Marshal(value interface{}) ([]byte, error)

	// Unmarshal deserializes bytes into a value.
	// The value parameter should be a pointer to the target type.
	//
	// Parameters:
	//   - data: The bytes to deserialize
	//   - value: A pointer to the target value
	//
	// Returns:
	//   - error: An error if deserialization fails
	Unmarshal(data []byte, value interface{}) error

	// Name returns the name of this codec.
	Name() string
}

// JSONCodec implements Codec using JSON serialization.
//
// JSONCodec 使用JSON序列化实现Codec。
type JSONCodec struct {
	// Pretty determines whether to use indented JSON encoding.
	Pretty bool

	// Strict rejects unknown fields while decoding.
	Strict bool
}

// Marshal serializes a value into JSON bytes.
func (c *JSONCodec) Marshal(value interface{}) ([]byte, error) {
	if c.Pretty {
		return json.MarshalIndent(value, "", "  ")
	}
	return json.Marshal(value)
}

// Unmarshal deserializes JSON bytes into a value.
func (c *JSONCodec) Unmarshal(data []byte, value interface{}) error {
	if !c.Strict {
		return json.Unmarshal(data, value)
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	return dec.Decode(value)
}

// Name returns "json".
func (c *JSONCodec) Name() string {
	return "json"
}

// NewJSONCodec creates a new JSONCodec.
//
// Parameters:
//   - pretty: Whether to use indented JSON encoding
//
// Returns:
//   - *JSONCodec: A new JSON codec instance
func NewJSONCodec(pretty bool) *JSONCodec {
	return &JSONCodec{Pretty: pretty}
}

// YAMLCodec implements Codec using YAML serialization.
//
// YAMLCodec 使用YAML序列化实现Codec。
type YAMLCodec struct{}

// Marshal serializes a value into YAML bytes.
func (c *YAMLCodec) Marshal(value interface{}) ([]byte, error) {
	return yaml.Marshal(value)
}

// Unmarshal deserializes YAML bytes into a value.
func (c *YAMLCodec) Unmarshal(data []byte, value interface{}) error {
	return yaml.Unmarshal(data, value)
}

// Name returns "yaml".
func (c *YAMLCodec) Name() string {
	return "yaml"
}

// NewYAMLCodec creates a new YAMLCodec.
func NewYAMLCodec() *YAMLCodec {
	return &YAMLCodec{}
}

// ForName returns the codec registered under a format name ("json", "yaml", "yml").
//
// ForName 返回以格式名称（"json"、"yaml"、"yml"）注册的编解码器。
//
// Parameters:
//   - name: The format name, case-insensitive
//
// Returns:
//   - Codec: The matching codec
//   - error: An error if the format is unsupported
func ForName(name string) (Codec, error) {
	switch strings.ToLower(strings.TrimPrefix(name, ".")) {
	case "json":
		return NewJSONCodec(false), nil
	case "yaml", "yml":
		return NewYAMLCodec(), nil
	default:
		return nil, fmt.Errorf("unsupported catalog format: %q", name)
	}
}

// ForPath returns the codec matching the extension of path.
//
// ForPath 返回与path扩展名匹配的编解码器。
func ForPath(path string) (Codec, error) {
	return ForName(filepath.Ext(path))
}
