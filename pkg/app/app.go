// Package app 提供图形版老虎机的应用包装器
//
// 该包把初始化逻辑从 main 包提取出来：加载配置、构建日志器、
// 初始化音频和资源、创建 SlotMachineModule 与场景。
package app

import (
	"fmt"
	"image/color"
	"os"
	"time"

	"github.com/decker502/slotreel/pkg/config"
	"github.com/decker502/slotreel/pkg/game"
	"github.com/decker502/slotreel/pkg/logger"
	"github.com/decker502/slotreel/pkg/modules"
	"github.com/decker502/slotreel/pkg/scenes"
	"github.com/decker502/slotreel/pkg/slot"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"go.uber.org/zap"
)

// sampleRate 音频上下文采样率
const sampleRate = 48000

// Config 定义应用启动配置
type Config struct {
	// Verbose 强制 debug 级别日志
	Verbose bool
	// ConfigPath 配置文件路径，为空则使用嵌入的默认配置
	ConfigPath string
	// AssetsDir 图片和音频所在目录
	AssetsDir string
}

// App 是应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	sceneManager *game.SceneManager
	module       *modules.SlotMachineModule
	settings     *config.SlotMachineConfig
	prefs        *game.SettingsManager
	audio        *game.AudioManager // 音频不可用时为 nil
	logger       *zap.Logger

	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// LoadConfig 按启动参数加载配置
// 调用前必须先调用 embedded.Init()
func LoadConfig(cfg Config) (*config.SlotMachineConfig, error) {
	var (
		settings *config.SlotMachineConfig
		err      error
	)
	if cfg.ConfigPath != "" {
		settings, err = config.Load(cfg.ConfigPath)
	} else {
		settings, err = config.LoadEmbedded()
	}
	if err != nil {
		return nil, err
	}
	if cfg.Verbose {
		settings.Logging.Level = "debug"
	}
	return settings, nil
}

// NewApp 创建并初始化应用
//
// 调用此函数前，必须先调用 embedded.Init() 初始化嵌入数据。
func NewApp(cfg Config) (*App, error) {
	settings, err := LoadConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("配置加载失败: %w", err)
	}

	log, err := logger.New(logger.Config{
		Level:   settings.Logging.Level,
		App:     settings.Logging.App,
		Dir:     settings.Logging.Dir,
		File:    settings.Logging.File,
		Console: os.Stdout,
	})
	if err != nil {
		if log == nil {
			return nil, fmt.Errorf("日志初始化失败: %w", err)
		}
		log.Warn("logger config", zap.Error(err))
	}

	audioContext := audio.NewContext(sampleRate)
	resourceManager := game.NewResourceManager(audioContext, cfg.AssetsDir)

	prefs := game.NewSettingsManager(game.DefaultPlayerSettings(), log)

	// 音频资源无法加载时以无音频方式运行，控制器会报告一次
	var audioHost slot.Audio
	audioManager := game.NewAudioManager(resourceManager, settings.Audio.Tracks, log)
	if err := audioManager.Preload(settings.Audio.BackgroundTrack, settings.Audio.SpinTrack); err != nil {
		log.Error("audio unavailable", zap.Error(err))
		audioManager = nil
	} else {
		audioManager.SetVolume(prefs.Settings().EffectiveVolume())
		audioHost = audioManager
	}

	module, err := modules.NewSlotMachineModule(settings, audioHost, log)
	if err != nil {
		return nil, fmt.Errorf("老虎机初始化失败: %w", err)
	}

	sceneManager := game.NewSceneManager()
	sceneManager.SwitchTo(scenes.NewSlotScene(resourceManager, module, settings, log))
	module.Start()

	return &App{
		sceneManager: sceneManager,
		module:       module,
		settings:     settings,
		prefs:        prefs,
		audio:        audioManager,
		logger:       log.Named("app"),
	}, nil
}

// Update 更新逻辑
// 每个 tick 调用一次（默认每秒 60 次）
func (a *App) Update() error {
	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(a.settings.Layout.ScreenWidth, a.settings.Layout.ScreenHeight)
			a.pendingWindowSizeReset = false
		}
	}

	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		fullscreen := !ebiten.IsFullscreen()
		if !fullscreen {
			ebiten.SetFullscreen(false)
			if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
				ebiten.RestoreWindow()
			}
			a.pendingWindowSizeReset = true
			a.windowSizeResetCountdown = 3
			a.logger.Debug("exit fullscreen, will reset window size in 3 frames")
		} else {
			ebiten.SetFullscreen(true)
		}
		a.prefs.SetFullscreen(fullscreen)
	}

	// M 切换静音，-/= 调节音量
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyM):
		muted := a.prefs.ToggleMute()
		a.logger.Info("mute toggled", zap.Bool("muted", muted))
		a.applyVolume()
	case inpututil.IsKeyJustPressed(ebiten.KeyMinus):
		a.prefs.AdjustVolume(-volumeStep)
		a.applyVolume()
	case inpututil.IsKeyJustPressed(ebiten.KeyEqual):
		a.prefs.AdjustVolume(volumeStep)
		a.applyVolume()
	}

	a.sceneManager.Update(time.Second / time.Duration(ebiten.TPS()))
	return nil
}

// volumeStep 每次按键调节的音量
const volumeStep = 0.1

func (a *App) applyVolume() {
	if a.audio != nil {
		a.audio.SetVolume(a.prefs.Settings().EffectiveVolume())
	}
}

// Draw 绘制画面
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 用于控制全屏时的缩放和 letterbox 颜色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回逻辑屏幕尺寸
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return a.settings.Layout.ScreenWidth, a.settings.Layout.ScreenHeight
}

// WindowSize 配置的窗口尺寸
func (a *App) WindowSize() (int, int) {
	return a.settings.Layout.ScreenWidth, a.settings.Layout.ScreenHeight
}

// Close 刷新日志
func (a *App) Close() {
	_ = a.logger.Sync()
}
