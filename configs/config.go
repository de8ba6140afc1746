// Package configs provides configuration structures and utilities for the storefront.
// It offers mechanisms for loading, validating, and saving configuration from
// JSON and YAML files. The configuration is split into sections for the HTTP
// server, the catalog store, cart sessions, logging and optional extensions.
//
// Package configs 提供店面的配置结构和工具。
// 它提供从JSON和YAML文件加载、验证和保存配置的机制。
// 配置分为HTTP服务器、目录存储、购物车会话、日志和可选扩展几个部分。
package configs

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Config represents the complete configuration for the storefront.
//
// Config 表示店面的完整配置。
type Config struct {
	// Server configures the HTTP listener
	// Server 配置HTTP监听器
	Server ServerConfig `json:"server" yaml:"server" mapstructure:"server"`

	// Store configures the catalog source and shop-wide display settings
	// Store 配置目录来源和全店显示设置
	Store StoreConfig `json:"store" yaml:"store" mapstructure:"store"`

	// Session configures cart session lifetime
	// Session 配置购物车会话的生命周期
	Session SessionConfig `json:"session" yaml:"session" mapstructure:"session"`

	// Log configures the logging behavior
	// Log 配置日志行为
	Log LogConfig `json:"log" yaml:"log" mapstructure:"log"`

	// Extensions configures optional features like hot reloading
	// Extensions 配置可选功能，如热重载
	Extensions ExtensionsConfig `json:"extensions" yaml:"extensions" mapstructure:"extensions"`
}

// ServerConfig contains settings for the HTTP server.
//
// ServerConfig 包含HTTP服务器的设置。
type ServerConfig struct {
	// Addr is the listen address, e.g. ":8080"
	// Addr 是监听地址，例如":8080"
	Addr string `json:"addr" yaml:"addr" mapstructure:"addr"`

	// Mode is the gin mode ("debug", "release", "test")
	// Mode 是gin的模式（"debug"、"release"、"test"）
	Mode string `json:"mode" yaml:"mode" mapstructure:"mode"`

	// ReadTimeout bounds reading a whole request
	// ReadTimeout 限制读取整个请求的时间
	ReadTimeout time.Duration `json:"read_timeout" yaml:"read_timeout" mapstructure:"read_timeout"`

	// WriteTimeout bounds writing a response
	// WriteTimeout 限制写入响应的时间
	WriteTimeout time.Duration `json:"write_timeout" yaml:"write_timeout" mapstructure:"write_timeout"`

	// ShutdownTimeout bounds graceful shutdown
	// ShutdownTimeout 限制优雅关闭的时间
	ShutdownTimeout time.Duration `json:"shutdown_timeout" yaml:"shutdown_timeout" mapstructure:"shutdown_timeout"`
}

// StoreConfig contains catalog and display settings.
//
// StoreConfig 包含目录和显示设置。
type StoreConfig struct {
	// CatalogPath is the JSON or YAML catalog document; empty uses the built-in sample
	// CatalogPath 是JSON或YAML目录文档；为空时使用内置示例
	CatalogPath string `json:"catalog_path" yaml:"catalog_path" mapstructure:"catalog_path"`

	// Locale is the BCP-47 tag used for name ordering and price formatting
	// Locale 是用于名称排序和价格格式化的BCP-47标签
	Locale string `json:"locale" yaml:"locale" mapstructure:"locale"`

	// CurrencyLabel is appended to formatted prices
	// CurrencyLabel 附加在格式化的价格之后
	CurrencyLabel string `json:"currency_label" yaml:"currency_label" mapstructure:"currency_label"`

	// ContactPhone is given to shoppers for contact-priced products
	// ContactPhone 提供给询价商品的购物者
	ContactPhone string `json:"contact_phone" yaml:"contact_phone" mapstructure:"contact_phone"`
}

// SessionConfig contains settings for cart sessions.
//
// SessionConfig 包含购物车会话的设置。
type SessionConfig struct {
	// TTL is the idle time after which a session expires
	// TTL 是会话过期前的空闲时间
	TTL time.Duration `json:"ttl" yaml:"ttl" mapstructure:"ttl"`

	// CleanupInterval is how often expired sessions are removed
	// CleanupInterval 是清除过期会话的频率
	CleanupInterval time.Duration `json:"cleanup_interval" yaml:"cleanup_interval" mapstructure:"cleanup_interval"`

	// MaxSessions is the maximum number of live sessions
	// MaxSessions 是最大活跃会话数
	MaxSessions int `json:"max_sessions" yaml:"max_sessions" mapstructure:"max_sessions"`
}

// LogConfig contains settings for logging.
// These settings control the logging behavior, including
// log level, format, and output destination.
//
// LogConfig 包含日志记录的设置。
// 这些设置控制日志行为，包括日志级别、格式和输出目的地。
type LogConfig struct {
	// Level sets the minimum log level ("debug", "info", "warn", "error")
	// Level 设置最低日志级别（"debug"、"info"、"warn"、"error"）
	Level string `json:"level" yaml:"level" mapstructure:"level"`

	// Format specifies the log format ("text", "json")
	// Format 指定日志格式（"text"、"json"）
	Format string `json:"format" yaml:"format" mapstructure:"format"`

	// Output determines where logs are written ("stdout", "stderr", "file")
	// Output 确定日志写入的位置（"stdout"、"stderr"、"file"）
	Output string `json:"output" yaml:"output" mapstructure:"output"`

	// FilePath is the path to the log file when Output is "file"
	// FilePath 是当Output为"file"时的日志文件路径
	FilePath string `json:"file_path" yaml:"file_path" mapstructure:"file_path"`

	// MaxSizeMB is the maximum log file size before rotation
	// MaxSizeMB 是轮换前的最大日志文件大小（MB）
	MaxSizeMB int `json:"max_size_mb" yaml:"max_size_mb" mapstructure:"max_size_mb"`

	// MaxBackups is the number of rotated log files to keep
	// MaxBackups 是要保留的轮换日志文件数量
	MaxBackups int `json:"max_backups" yaml:"max_backups" mapstructure:"max_backups"`

	// MaxAgeDays is the maximum age of log files in days
	// MaxAgeDays 是日志文件的最大保留天数
	MaxAgeDays int `json:"max_age_days" yaml:"max_age_days" mapstructure:"max_age_days"`
}

// ExtensionsConfig contains settings for extensions.
//
// ExtensionsConfig 包含扩展的设置。
type ExtensionsConfig struct {
	// HotReload contains settings for dynamic configuration reloading
	// HotReload 包含动态配置重新加载的设置
	HotReload HotReloadConfig `json:"hot_reload" yaml:"hot_reload" mapstructure:"hot_reload"`

	// Metrics controls the /metrics endpoint
	// Metrics 控制 /metrics 端点
	Metrics MetricsConfig `json:"metrics" yaml:"metrics" mapstructure:"metrics"`
}

// HotReloadConfig contains settings for hot reloading.
//
// HotReloadConfig 包含热重载的设置。
type HotReloadConfig struct {
	// Enable determines whether hot reloading is active
	// Enable 确定是否启用热重载
	Enable bool `json:"enable" yaml:"enable" mapstructure:"enable"`
}

// MetricsConfig contains settings for request and cart metrics.
//
// MetricsConfig 包含请求和购物车指标的设置。
type MetricsConfig struct {
	// Enable exposes the metrics endpoint
	// Enable 确定是否暴露指标端点
	Enable bool `json:"enable" yaml:"enable" mapstructure:"enable"`

	// Level is basic or detailed; detailed adds the request latency histogram
	// Level 为 basic 或 detailed；detailed 额外记录请求延迟直方图
	Level string `json:"level" yaml:"level" mapstructure:"level"`
}

// DefaultConfig returns a new Config with default values.
//
// DefaultConfig 返回具有默认值的新Config。
//
// Returns:
//   - *Config: A new configuration instance with default values
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:            ":8080",
			Mode:            "release",
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    10 * time.Second,
			ShutdownTimeout: 5 * time.Second,
		},
		Store: StoreConfig{
			CatalogPath:   "",
			Locale:        "fa-IR",
			CurrencyLabel: "تومان",
			ContactPhone:  "02188776655",
		},
		Session: SessionConfig{
			TTL:             30 * time.Minute,
			CleanupInterval: time.Minute,
			MaxSessions:     10000,
		},
		Log: LogConfig{
			Level:      "info",
			Format:     "json",
			Output:     "stdout",
			FilePath:   "/var/log/storefront.log",
			MaxSizeMB:  100,
			MaxBackups: 3,
			MaxAgeDays: 28,
		},
		Extensions: ExtensionsConfig{
			HotReload: HotReloadConfig{Enable: false},
			Metrics:   MetricsConfig{Enable: true, Level: "basic"},
		},
	}
}

// LoadFromFile loads configuration from a file.
// It supports both YAML and JSON formats, automatically
// detecting the format based on the file extension.
//
// LoadFromFile 从文件加载配置。
// 它支持YAML和JSON格式，根据文件扩展名自动检测格式。
//
// Parameters:
//   - filename: Path to the configuration file
//
// Returns:
//   - *Config: The loaded configuration
//   - error: An error if loading fails
func LoadFromFile(filename string) (*Config, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open configuration file: %w", err)
	}
	defer file.Close()

	return LoadFromReader(file, strings.TrimPrefix(filepath.Ext(filename), "."))
}

// LoadFromReader loads configuration from an io.Reader.
// Fields absent from the input keep their default values.
//
// LoadFromReader 从io.Reader加载配置。
// 输入中缺少的字段保持其默认值。
//
// Parameters:
//   - r: The reader providing the configuration data
//   - format: The format of the data ("json", "yaml", or "yml")
//
// Returns:
//   - *Config: The loaded configuration
//   - error: An error if loading fails
func LoadFromReader(r io.Reader, format string) (*Config, error) {
	config := DefaultConfig()
	var err error

	switch strings.ToLower(format) {
	case "yaml", "yml":
		err = yaml.NewDecoder(r).Decode(config)
	case "json":
		err = json.NewDecoder(r).Decode(config)
	default:
		return nil, fmt.Errorf("unsupported configuration format: %s", format)
	}

	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("failed to decode configuration: %w", err)
	}

	return config, nil
}

// SaveToFile saves configuration to a file.
// The format is selected from the file extension.
//
// SaveToFile 将配置保存到文件。
// 格式根据文件扩展名选择。
//
// Parameters:
//   - filename: Path where the configuration will be saved
//
// Returns:
//   - error: An error if saving fails
func (c *Config) SaveToFile(filename string) error {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext != ".yaml" && ext != ".yml" && ext != ".json" {
		return fmt.Errorf("unsupported configuration file format: %s", ext)
	}

	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create configuration file: %w", err)
	}
	defer file.Close()

	if ext == ".json" {
		encoder := json.NewEncoder(file)
		encoder.SetIndent("", "  ")
		err = encoder.Encode(c)
	} else {
		encoder := yaml.NewEncoder(file)
		defer encoder.Close()
		err = encoder.Encode(c)
	}

	if err != nil {
		return fmt.Errorf("failed to encode configuration: %w", err)
	}

	return nil
}

// Validate validates the configuration.
//
// Validate 验证配置。
//
// Returns:
//   - error: An error describing the validation failure, or nil if valid
func (c *Config) Validate() error {
	// Validate server settings
	// 验证服务器设置
	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr must be specified")
	}
	switch c.Server.Mode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("server.mode must be one of: debug, release, test")
	}
	if c.Server.ReadTimeout < 0 || c.Server.WriteTimeout < 0 || c.Server.ShutdownTimeout < 0 {
		return fmt.Errorf("server timeouts must be non-negative")
	}

	// Validate store settings
	// 验证商店设置
	if _, err := language.Parse(c.Store.Locale); err != nil {
		return fmt.Errorf("store.locale is not a valid BCP-47 tag: %w", err)
	}
	if strings.TrimSpace(c.Store.ContactPhone) == "" {
		return fmt.Errorf("store.contact_phone must be specified")
	}

	// Validate session settings
	// 验证会话设置
	if c.Session.TTL < time.Second {
		return fmt.Errorf("session.ttl must be at least 1 second")
	}
	if c.Session.CleanupInterval < time.Second {
		return fmt.Errorf("session.cleanup_interval must be at least 1 second")
	}
	if c.Session.MaxSessions <= 0 {
		return fmt.Errorf("session.max_sessions must be positive")
	}

	// Validate log settings
	// 验证日志设置
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be one of: debug, info, warn, error")
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("log.format must be one of: text, json")
	}
	switch c.Log.Output {
	case "stdout", "stderr", "file":
	default:
		return fmt.Errorf("log.output must be one of: stdout, stderr, file")
	}
	if c.Log.Output == "file" && c.Log.FilePath == "" {
		return fmt.Errorf("log.file_path must be specified when log.output is 'file'")
	}
	if c.Log.MaxSizeMB <= 0 {
		return fmt.Errorf("log.max_size_mb must be positive")
	}
	if c.Log.MaxBackups < 0 {
		return fmt.Errorf("log.max_backups must be non-negative")
	}
	if c.Log.MaxAgeDays < 0 {
		return fmt.Errorf("log.max_age_days must be non-negative")
	}

	switch c.Extensions.Metrics.Level {
	case "basic", "detailed":
	default:
		return fmt.Errorf("extensions.metrics.level must be one of: basic, detailed")
	}

	return nil
}
