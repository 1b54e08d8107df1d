package infra

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// NewLogger 构造应用统一的 zerolog.Logger
//
// verbose 为 true 时输出 Debug 级别并切换到带颜色的控制台格式，
// 否则输出 Info 级别的 JSON（方便收集）。
func NewLogger(verbose bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}

	logger := zerolog.New(os.Stdout).
		Level(level).
		With().
		Timestamp().
		Logger()

	if verbose {
		logger = logger.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
	}

	return logger
}

// NewSilentLogger 构造丢弃全部输出的 Logger（测试或批处理工具使用）
func NewSilentLogger() zerolog.Logger {
	return zerolog.New(io.Discard)
}

// Logger 别名，调用方不必直接依赖第三方模块
type Logger = zerolog.Logger
