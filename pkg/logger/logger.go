package logger

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	gormlogger "gorm.io/gorm/logger"
)

// Options 日志配置
type Options struct {
	Level       string // debug | info | warn | error
	Development bool   // console 编码 + 彩色级别
}

// New 构建全局 zap logger
func New(opts Options) (*zap.Logger, error) {
	var cfg zap.Config
	if opts.Development {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		cfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(strings.ToLower(opts.Level))
	if err != nil && opts.Level != "" {
		return nil, fmt.Errorf("无效的日志级别 %q: %w", opts.Level, err)
	}
	if opts.Level != "" {
		cfg.Level = zap.NewAtomicLevelAt(level)
	}

	log, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return log, nil
}

// GormLevel 将日志级别映射为 gorm 日志级别
// debug 时打印全部 SQL，方便调试
func GormLevel(level string) gormlogger.LogLevel {
	switch strings.ToLower(level) {
	case "debug":
		return gormlogger.Info
	case "warn":
		return gormlogger.Warn
	case "error":
		return gormlogger.Error
	case "silent":
		return gormlogger.Silent
	default:
		return gormlogger.Warn
	}
}
