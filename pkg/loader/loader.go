// Package loader provides the sources a catalog can be loaded from at startup:
// files, readers, the embedded sample catalog, and fallback chains of those.
//
// Package loader 提供启动时加载目录的数据源：
// 文件、读取器、内嵌的示例目录，以及这些数据源组成的回退链。
package loader

import (
	"context"
	_ "embed"
	"fmt"
	"io"
	"os"

	"github.com/Humphrey-He/storefront/pkg/catalog"
	"github.com/Humphrey-He/storefront/pkg/codec"
)

//go:embed sample/catalog.json
var sampleCatalog []byte

// Loader is the interface that wraps the basic Load method.
//
// Load reads a catalog document from its source and builds the catalog.
//
// Loader 是包装基本Load方法的接口。
//
// Load 从其数据源读取目录文档并构建目录。
type Loader interface {
	Load(ctx context.Context) (*catalog.Catalog, error)
}

// LoaderFunc is a function type that implements the Loader interface.
type LoaderFunc func(ctx context.Context) (*catalog.Catalog, error)

// Load calls the function itself.
func (f LoaderFunc) Load(ctx context.Context) (*catalog.Catalog, error) {
	return f(ctx)
}

// Decode parses data with c and converts the resulting document into a catalog.
//
// Decode 使用c解析数据，并将得到的文档转换为目录。
//
// Parameters:
//   - data: The encoded document
//   - c: The codec to decode with
//
// Returns:
//   - *catalog.Catalog: The catalog
//   - error: An error if decoding or conversion fails
func Decode(data []byte, c codec.Codec) (*catalog.Catalog, error) {
	var doc catalog.Document
	if err := c.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode %s catalog: %w", c.Name(), err)
	}
	return catalog.FromDocument(&doc)
}

// FileLoader loads a catalog from a JSON or YAML file picked by extension.
type FileLoader struct {
	Path string
}

// NewFileLoader creates a new FileLoader.
func NewFileLoader(path string) *FileLoader {
	return &FileLoader{Path: path}
}

// Load reads and decodes the file.
func (l *FileLoader) Load(ctx context.Context) (*catalog.Catalog, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	c, err := codec.ForPath(l.Path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(l.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}
	return Decode(data, c)
}

// ReaderLoader loads a catalog from an io.Reader in the given format.
type ReaderLoader struct {
	Reader io.Reader
	Format string
}

// NewReaderLoader creates a new ReaderLoader.
func NewReaderLoader(r io.Reader, format string) *ReaderLoader {
	return &ReaderLoader{Reader: r, Format: format}
}

// Load reads everything from the reader and decodes it.
func (l *ReaderLoader) Load(ctx context.Context) (*catalog.Catalog, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	c, err := codec.ForName(l.Format)
	if err != nil {
		return nil, err
	}
	data, err := io.ReadAll(l.Reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}
	return Decode(data, c)
}

// Sample returns a loader for the catalog embedded in the binary.
//
// Sample 返回内嵌在二进制文件中的目录的加载器。
func Sample() Loader {
	return LoaderFunc(func(ctx context.Context) (*catalog.Catalog, error) {
		return Decode(sampleCatalog, codec.NewJSONCodec(false))
	})
}

// FallbackLoader provides a fallback mechanism when the primary loader fails.
//
// FallbackLoader 在主加载器失败时提供回退机制。
type FallbackLoader struct {
	Primary   Loader
	Secondary Loader

	// OnFallback is called with the primary error before the secondary is tried.
	OnFallback func(err error)
}

// Load attempts to load using the primary loader.
// If the primary loader fails, it falls back to the secondary loader.
func (f *FallbackLoader) Load(ctx context.Context) (*catalog.Catalog, error) {
	c, err := f.Primary.Load(ctx)
	if err != nil && f.Secondary != nil {
		if f.OnFallback != nil {
			f.OnFallback(err)
		}
		return f.Secondary.Load(ctx)
	}
	return c, err
}

// NewFallbackLoader creates a new FallbackLoader with the given primary and secondary loaders.
func NewFallbackLoader(primary, secondary Loader) *FallbackLoader {
	return &FallbackLoader{
		Primary:   primary,
		Secondary: secondary,
	}
}

// ForPath returns a file loader for path that falls back to the embedded sample,
// or the sample loader alone when path is empty.
//
// ForPath 返回path的文件加载器，失败时回退到内嵌示例；path为空时只返回示例加载器。
func ForPath(path string, onFallback func(error)) Loader {
	if path == "" {
		return Sample()
	}
	fl := NewFallbackLoader(NewFileLoader(path), Sample())
	fl.OnFallback = onFallback
	return fl
}
