// slotterm 在终端里运行老虎机
//
// 用法:
//
//	go run ./cmd/slotterm [--config data/slot_machine.yaml] [--verbose]
//
// 终端被 tcell 占用，日志只写入滚动日志文件。
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/decker502/slotreel/internal/synth"
	"github.com/decker502/slotreel/internal/term"
	"github.com/decker502/slotreel/pkg/config"
	"github.com/decker502/slotreel/pkg/logger"
	"github.com/decker502/slotreel/pkg/modules"
	"github.com/decker502/slotreel/pkg/slot"
	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"
)

var (
	configPath = flag.String("config", "", "配置文件路径（默认使用内置配置）")
	verbose    = flag.Bool("verbose", false, "显示详细调试日志")
	mute       = flag.Bool("mute", false, "不打开扬声器")
)

// frameInterval 约 60 FPS
const frameInterval = 16 * time.Millisecond

func main() {
	flag.Parse()

	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if *verbose {
		cfg.Logging.Level = "debug"
	}

	zl, err := logger.New(logger.Config{
		Level: cfg.Logging.Level,
		App:   cfg.Logging.App + "_term",
		Dir:   cfg.Logging.Dir,
		File:  true,
	})
	if err != nil {
		if zl == nil {
			return fmt.Errorf("日志初始化失败: %w", err)
		}
		zl.Warn("logger config", zap.Error(err))
	}
	defer func() { _ = zl.Sync() }()

	var audio slot.Audio
	if !*mute {
		sm := synth.NewSoundManager(synth.DefaultVoices(cfg.Audio.BackgroundTrack, cfg.Audio.SpinTrack, cfg.Timing.AutoStopDelay), zl)
		if err := sm.Initialize(); err != nil {
			zl.Error("audio unavailable", zap.Error(err))
		} else {
			defer sm.Close()
			audio = sm
		}
	}

	module, err := modules.NewSlotMachineModule(cfg, audio, zl)
	if err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to initialize screen: %w", err)
	}
	defer screen.Fini()
	screen.EnableMouse()
	screen.HideCursor()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	module.Start()
	host := term.NewHost(screen, module, cfg, zl)
	if err := host.Run(ctx, frameInterval); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}
