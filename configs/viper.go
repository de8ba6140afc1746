package configs

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// EnvPrefix is the prefix of environment variables that override file settings,
// e.g. STOREFRONT_SERVER_ADDR or STOREFRONT_LOG_LEVEL.
const EnvPrefix = "STOREFRONT"

// ViperConfig wraps a Config with Viper functionality for environment overrides
// and hot reloading. It provides thread-safe access to the current configuration.
//
// ViperConfig 使用Viper功能包装Config，以支持环境变量覆盖和热重载。
// 它提供对当前配置的线程安全访问。
type ViperConfig struct {
	config      *Config         // Current configuration / 当前配置
	viper       *viper.Viper    // Viper instance / Viper实例
	configFile  string          // Path to the configuration file / 配置文件路径
	logger      *zap.Logger     // Logger for reload events / 重载事件的日志记录器
	mu          sync.RWMutex    // Guards config and subscribers / 保护config和subscribers
	subscribers []func(*Config) // Notified on config changes / 配置更改时通知
}

// ViperOption configures a ViperConfig.
type ViperOption func(*ViperConfig)

// WithLogger sets the logger used to report reloads.
func WithLogger(logger *zap.Logger) ViperOption {
	return func(vc *ViperConfig) {
		if logger != nil {
			vc.logger = logger
		}
	}
}

// NewViperConfig creates a new ViperConfig.
// Defaults are registered for every key so that STOREFRONT_* variables apply
// even when the file omits a setting. An empty configFile loads defaults and
// environment only.
//
// NewViperConfig 创建一个新的ViperConfig。
// 为每个键注册默认值，使STOREFRONT_*变量即使在文件省略某项设置时也能生效。
// configFile为空时只加载默认值和环境变量。
//
// Parameters:
//   - configFile: Path to the configuration file, may be empty
//   - opts: Optional settings
//
// Returns:
//   - *ViperConfig: A new ViperConfig instance
//   - error: An error if loading or validation fails
func NewViperConfig(configFile string, opts ...ViperOption) (*ViperConfig, error) {
	v := viper.New()
	setDefaults(v, DefaultConfig())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		v.SetConfigType(strings.TrimPrefix(filepath.Ext(configFile), "."))
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	config, err := decode(v)
	if err != nil {
		return nil, err
	}

	vc := &ViperConfig{
		config:     config,
		viper:      v,
		configFile: configFile,
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(vc)
	}
	return vc, nil
}

func decode(v *viper.Viper) (*Config, error) {
	config := DefaultConfig()
	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return config, nil
}

// setDefaults registers every leaf of c with v.
func setDefaults(v *viper.Viper, c *Config) {
	v.SetDefault("server.addr", c.Server.Addr)
	v.SetDefault("server.mode", c.Server.Mode)
	v.SetDefault("server.read_timeout", c.Server.ReadTimeout)
	v.SetDefault("server.write_timeout", c.Server.WriteTimeout)
	v.SetDefault("server.shutdown_timeout", c.Server.ShutdownTimeout)

	v.SetDefault("store.catalog_path", c.Store.CatalogPath)
	v.SetDefault("store.locale", c.Store.Locale)
	v.SetDefault("store.currency_label", c.Store.CurrencyLabel)
	v.SetDefault("store.contact_phone", c.Store.ContactPhone)

	v.SetDefault("session.ttl", c.Session.TTL)
	v.SetDefault("session.cleanup_interval", c.Session.CleanupInterval)
	v.SetDefault("session.max_sessions", c.Session.MaxSessions)

	v.SetDefault("log.level", c.Log.Level)
	v.SetDefault("log.format", c.Log.Format)
	v.SetDefault("log.output", c.Log.Output)
	v.SetDefault("log.file_path", c.Log.FilePath)
	v.SetDefault("log.max_size_mb", c.Log.MaxSizeMB)
	v.SetDefault("log.max_backups", c.Log.MaxBackups)
	v.SetDefault("log.max_age_days", c.Log.MaxAgeDays)

	v.SetDefault("extensions.hot_reload.enable", c.Extensions.HotReload.Enable)
	v.SetDefault("extensions.metrics.enable", c.Extensions.Metrics.Enable)
	v.SetDefault("extensions.metrics.level", c.Extensions.Metrics.Level)
}

// EnableHotReload watches the configuration file. On every change the file is
// decoded and validated; a valid result replaces the current configuration and
// all subscribers are notified. Invalid changes are logged and ignored.
//
// EnableHotReload 监视配置文件。每次更改时都会解码并验证文件；
// 有效的结果将替换当前配置并通知所有订阅者。无效的更改会被记录并忽略。
func (vc *ViperConfig) EnableHotReload() {
	if vc.configFile == "" {
		return
	}
	vc.viper.OnConfigChange(func(e fsnotify.Event) {
		vc.logger.Info("config file changed", zap.String("file", e.Name), zap.String("op", e.Op.String()))
		if err := vc.apply(); err != nil {
			vc.logger.Warn("config reload rejected", zap.Error(err))
		}
	})
	vc.viper.WatchConfig()
}

// Reload re-reads the configuration file and applies it as a file change
// would. It is used for signal-triggered reloads.
//
// Reload 重新读取配置文件，并像文件更改一样应用它。用于信号触发的重载。
//
// Returns:
//   - error: An error if reading or validation fails; the current configuration is kept
func (vc *ViperConfig) Reload() error {
	if vc.configFile != "" {
		if err := vc.viper.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config file: %w", err)
		}
	}
	return vc.apply()
}

func (vc *ViperConfig) apply() error {
	newConfig, err := decode(vc.viper)
	if err != nil {
		return err
	}

	vc.mu.Lock()
	vc.config = newConfig
	subscribers := make([]func(*Config), len(vc.subscribers))
	copy(subscribers, vc.subscribers)
	vc.mu.Unlock()

	for _, subscriber := range subscribers {
		subscriber(newConfig)
	}
	return nil
}

// Subscribe adds a subscriber that will be notified when the configuration changes.
//
// Subscribe 添加一个在配置更改时将被通知的订阅者。
//
// Parameters:
//   - subscriber: A function to call with the new configuration
func (vc *ViperConfig) Subscribe(subscriber func(*Config)) {
	vc.mu.Lock()
	defer vc.mu.Unlock()
	vc.subscribers = append(vc.subscribers, subscriber)
}

// Get returns the current configuration.
// This method is thread-safe and can be called concurrently.
//
// Get 返回当前配置。
// 此方法是线程安全的，可以并发调用。
func (vc *ViperConfig) Get() *Config {
	vc.mu.RLock()
	defer vc.mu.RUnlock()
	return vc.config
}

// LoadViperConfig loads a configuration using Viper and enables hot reloading
// when the loaded configuration asks for it.
//
// LoadViperConfig 使用Viper加载配置，并在加载的配置要求时启用热重载。
//
// Parameters:
//   - configFile: Path to the configuration file, may be empty
//   - opts: Optional settings
//
// Returns:
//   - *ViperConfig: A new ViperConfig instance
//   - error: An error if loading fails
func LoadViperConfig(configFile string, opts ...ViperOption) (*ViperConfig, error) {
	vc, err := NewViperConfig(configFile, opts...)
	if err != nil {
		return nil, err
	}

	if vc.Get().Extensions.HotReload.Enable {
		vc.EnableHotReload()
	}

	return vc, nil
}
