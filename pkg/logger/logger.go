// Package logger 构建 zap 日志器
//
// 控制台输出带颜色的级别；启用文件输出时额外写入 lumberjack 滚动日志，
// 错误级别另写一份 _error.log。
package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

const timeFmt = "2006/01/02 15:04:05.000"

// Config 日志配置
type Config struct {
	Level string
	// App 日志文件名前缀
	App string
	Dir string
	// File 写入滚动日志文件
	File bool
	// Console 控制台输出目标，nil 表示不输出到控制台
	Console io.Writer
}

// New 根据配置创建 zap 日志器
// 无效的级别回退到 info，并返回错误说明
func New(cfg Config) (*zap.Logger, error) {
	if cfg.App == "" {
		cfg.App = "app"
	}

	var levelErr error
	lv := zap.NewAtomicLevel()
	if err := lv.UnmarshalText([]byte(cfg.Level)); err != nil {
		lv.SetLevel(zapcore.InfoLevel)
		levelErr = fmt.Errorf("invalid log level %q, using info: %w", cfg.Level, err)
	}

	var cores []zapcore.Core
	if cfg.Console != nil {
		cores = append(cores, zapcore.NewCore(
			zapcore.NewConsoleEncoder(encCfg(false)),
			zapcore.Lock(zapcore.AddSync(cfg.Console)),
			lv,
		))
	}
	if cfg.File {
		if cfg.Dir != "" {
			if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
				return nil, fmt.Errorf("failed to create log dir %s: %w", cfg.Dir, err)
			}
		}
		name := filepath.Join(cfg.Dir, cfg.App)
		cores = append(cores, fileCore(name+".log", lv))
		cores = append(cores, fileCore(name+"_error.log", zap.ErrorLevel))
	}
	if len(cores) == 0 {
		return zap.NewNop(), levelErr
	}

	return zap.New(zapcore.NewTee(cores...), zap.AddCaller()), levelErr
}

func fileCore(file string, lv zapcore.LevelEnabler) zapcore.Core {
	w := &lumberjack.Logger{
		Filename:   file,
		MaxSize:    100,
		MaxBackups: 7,
		MaxAge:     10,
		Compress:   true,
	}
	return zapcore.NewCore(
		zapcore.NewConsoleEncoder(encCfg(true)),
		zapcore.AddSync(w),
		lv,
	)
}

func encCfg(file bool) zapcore.EncoderConfig {
	cfg := zap.NewProductionEncoderConfig()
	cfg.EncodeTime = func(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
		enc.AppendString("[" + t.Format(timeFmt) + "]")
	}
	cfg.EncodeCaller = zapcore.ShortCallerEncoder
	cfg.ConsoleSeparator = " "
	if file {
		cfg.EncodeLevel = zapcore.CapitalLevelEncoder
	} else {
		cfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	return cfg
}
