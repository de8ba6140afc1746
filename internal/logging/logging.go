// Package logging builds the zap logger described by configs.LogConfig.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/Humphrey-He/storefront/configs"
)

// Logger bundles a zap logger with the level it was built with so the level
// can be changed at runtime.
type Logger struct {
	*zap.Logger
	level  zap.AtomicLevel
	closer io.Closer
}

// New builds a Logger from cfg. Output "file" writes through a rotating
// lumberjack file; "stdout" and "stderr" write to the process streams.
//
// New 根据cfg构建Logger。输出为"file"时通过滚动的lumberjack文件写入；
// "stdout"和"stderr"写入进程标准流。
//
// Parameters:
//   - cfg: The log section of the configuration
//
// Returns:
//   - *Logger: The logger; call Close when done
//   - error: An error if the level is unknown
func New(cfg configs.LogConfig) (*Logger, error) {
	level := zap.NewAtomicLevel()
	if err := level.UnmarshalText([]byte(strings.ToLower(cfg.Level))); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	var encoder zapcore.Encoder
	if cfg.Format == "text" {
		encoderCfg.EncodeLevel = zapcore.CapitalLevelEncoder
		encoder = zapcore.NewConsoleEncoder(encoderCfg)
	} else {
		encoder = zapcore.NewJSONEncoder(encoderCfg)
	}

	var (
		sink   zapcore.WriteSyncer
		closer io.Closer
	)
	switch cfg.Output {
	case "file":
		rotator := &lumberjack.Logger{
			Filename:   cfg.FilePath,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
		}
		sink = zapcore.AddSync(rotator)
		closer = rotator
	case "stderr":
		sink = zapcore.Lock(os.Stderr)
	default:
		sink = zapcore.Lock(os.Stdout)
	}

	core := zapcore.NewCore(encoder, sink, level)
	return &Logger{
		Logger: zap.New(core, zap.AddCaller()),
		level:  level,
		closer: closer,
	}, nil
}

// SetLevel changes the minimum level. Unknown levels leave it unchanged.
func (l *Logger) SetLevel(level string) error {
	return l.level.UnmarshalText([]byte(strings.ToLower(level)))
}

// Level returns the current minimum level.
func (l *Logger) Level() zapcore.Level {
	return l.level.Level()
}

// Watch keeps the level in step with reloaded configuration.
func (l *Logger) Watch(vc *configs.ViperConfig) {
	vc.Subscribe(func(c *configs.Config) {
		if err := l.SetLevel(c.Log.Level); err != nil {
			l.Warn("log level not changed", zap.Error(err))
			return
		}
		l.Info("log level changed", zap.String("level", c.Log.Level))
	})
}

// Close flushes buffered entries and closes the log file, if any.
func (l *Logger) Close() error {
	_ = l.Sync()
	if l.closer != nil {
		return l.closer.Close()
	}
	return nil
}
