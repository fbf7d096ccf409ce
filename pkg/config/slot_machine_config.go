package config

import (
	"fmt"
	"os"
	"time"

	"github.com/decker502/slotreel/pkg/embedded"
	"github.com/decker502/slotreel/pkg/slot"
	"github.com/decker502/slotreel/pkg/systems"
	"gopkg.in/yaml.v3"
)

// DefaultConfigPath 嵌入的默认配置路径
const DefaultConfigPath = "data/slot_machine.yaml"

// SlotMachineConfig 老虎机配置
//
// 配置文件位置: data/slot_machine.yaml
type SlotMachineConfig struct {
	Timing  TimingConfig  `yaml:"timing"`
	Reels   ReelsConfig   `yaml:"reels"`
	Audio   AudioConfig   `yaml:"audio"`
	Layout  LayoutConfig  `yaml:"layout"`
	Logging LoggingConfig `yaml:"logging"`
}

// TimingConfig 状态机时间参数
// yaml 中使用 duration 字符串，如 "1000ms"
type TimingConfig struct {
	ButtonEnableDelay time.Duration `yaml:"buttonEnableDelay"`
	AutoStopDelay     time.Duration `yaml:"autoStopDelay"`
	StopStagger       time.Duration `yaml:"stopStagger"`
}

// ReelsConfig 转轴配置
type ReelsConfig struct {
	Count      int     `yaml:"count"`
	FrameCount int     `yaml:"frameCount"`
	FrameRate  float64 `yaml:"frameRate"` // 帧/秒
	// SettledFrame 停止后显示的帧索引（从 0 开始）
	SettledFrame int `yaml:"settledFrame"`
}

// FrameDuration 单帧时长
func (r ReelsConfig) FrameDuration() time.Duration {
	return time.Duration(float64(time.Second) / r.FrameRate)
}

// AudioConfig 音频配置
type AudioConfig struct {
	BackgroundTrack string `yaml:"backgroundTrack"`
	SpinTrack       string `yaml:"spinTrack"`
	// Tracks 音轨 ID 到资源文件名的映射
	Tracks map[string]string `yaml:"tracks"`
}

// LayoutConfig 画面布局（逻辑像素）
//
// 老虎机框居中，转轴在框内从左到右排列，按钮中心位于框的下边缘。
type LayoutConfig struct {
	ScreenWidth     int     `yaml:"screenWidth"`
	ScreenHeight    int     `yaml:"screenHeight"`
	ContainerWidth  float64 `yaml:"containerWidth"`
	ContainerHeight float64 `yaml:"containerHeight"`
	ReelWidth       float64 `yaml:"reelWidth"`
	ReelHeight      float64 `yaml:"reelHeight"`
	ReelOffsetX     float64 `yaml:"reelOffsetX"`
	ReelOffsetY     float64 `yaml:"reelOffsetY"`
	ButtonWidth     float64 `yaml:"buttonWidth"`
	ButtonHeight    float64 `yaml:"buttonHeight"`
}

// ContainerOrigin 老虎机框左上角
func (l LayoutConfig) ContainerOrigin() (x, y float64) {
	return 0.5 * (float64(l.ScreenWidth) - l.ContainerWidth),
		0.5 * (float64(l.ScreenHeight) - l.ContainerHeight)
}

// ReelCenter 第 index 个转轴（从 0 开始）精灵中心
// 转轴中心 y 对齐框内第一行符号中心
func (l LayoutConfig) ReelCenter(index int) (x, y float64) {
	ox, oy := l.ContainerOrigin()
	x = ox + (float64(index)+0.5)*l.ReelWidth + l.ReelOffsetX
	y = oy + 0.5*l.ReelWidth + l.ReelOffsetY
	return x, y
}

// ButtonRect 按钮左上角与尺寸
func (l LayoutConfig) ButtonRect() (x, y, w, h float64) {
	cx := float64(l.ScreenWidth) / 2
	cy := float64(l.ScreenHeight)/2 + l.ContainerHeight/2
	return cx - l.ButtonWidth/2, cy - l.ButtonHeight/2, l.ButtonWidth, l.ButtonHeight
}

// LoggingConfig 日志配置
type LoggingConfig struct {
	Level string `yaml:"level"` // debug|info|warn|error
	File  bool   `yaml:"file"`  // 是否写入滚动日志文件
	Dir   string `yaml:"dir"`
	App   string `yaml:"app"` // 日志文件名前缀
}

// Default 返回内置默认配置
// 与 data/slot_machine.yaml 保持一致
func Default() *SlotMachineConfig {
	return &SlotMachineConfig{
		Timing: TimingConfig{
			ButtonEnableDelay: slot.DefaultButtonEnableDelay,
			AutoStopDelay:     slot.DefaultAutoStopDelay,
			StopStagger:       slot.DefaultStopStagger,
		},
		Reels: ReelsConfig{
			Count:        slot.DefaultReelCount,
			FrameCount:   4,
			FrameRate:    10,
			SettledFrame: slot.DefaultSettledFrame,
		},
		Audio: AudioConfig{
			BackgroundTrack: "BG_Music",
			SpinTrack:       "Spin_Music",
			Tracks: map[string]string{
				"BG_Music":   "BG_Music.wav",
				"Spin_Music": "Spin.wav",
			},
		},
		Layout: LayoutConfig{
			ScreenWidth:     1280,
			ScreenHeight:    720,
			ContainerWidth:  800,
			ContainerHeight: 568,
			ReelWidth:       139,
			ReelHeight:      417,
			ReelOffsetX:     3,
			ReelOffsetY:     35,
			ButtonWidth:     150,
			ButtonHeight:    50,
		},
		Logging: LoggingConfig{
			Level: "info",
			Dir:   "logs",
			App:   "slotreel",
		},
	}
}

// Parse 解析 YAML 配置
// 未出现的字段保留默认值
func Parse(data []byte) (*SlotMachineConfig, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse slot machine config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid slot machine config: %w", err)
	}
	return cfg, nil
}

// Load 从文件系统加载配置
func Load(path string) (*SlotMachineConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read slot machine config %s: %w", path, err)
	}
	return Parse(data)
}

// LoadEmbedded 加载嵌入的默认配置
// 调用前必须先调用 embedded.Init()
func LoadEmbedded() (*SlotMachineConfig, error) {
	data, err := embedded.ReadFile(DefaultConfigPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded config %s: %w", DefaultConfigPath, err)
	}
	return Parse(data)
}

// Validate 验证配置有效性
func (c *SlotMachineConfig) Validate() error {
	if c.Timing.ButtonEnableDelay <= 0 {
		return fmt.Errorf("timing.buttonEnableDelay must be positive, got %v", c.Timing.ButtonEnableDelay)
	}
	if c.Timing.AutoStopDelay <= 0 {
		return fmt.Errorf("timing.autoStopDelay must be positive, got %v", c.Timing.AutoStopDelay)
	}
	if c.Timing.StopStagger < 0 {
		return fmt.Errorf("timing.stopStagger must not be negative, got %v", c.Timing.StopStagger)
	}

	if c.Reels.Count <= 0 {
		return fmt.Errorf("reels.count must be positive, got %d", c.Reels.Count)
	}
	if c.Reels.FrameCount <= 0 {
		return fmt.Errorf("reels.frameCount must be positive, got %d", c.Reels.FrameCount)
	}
	if c.Reels.FrameRate <= 0 {
		return fmt.Errorf("reels.frameRate must be positive, got %v", c.Reels.FrameRate)
	}
	if c.Reels.SettledFrame < 0 || c.Reels.SettledFrame >= c.Reels.FrameCount {
		return fmt.Errorf("reels.settledFrame %d out of range [0, %d)", c.Reels.SettledFrame, c.Reels.FrameCount)
	}

	if c.Audio.BackgroundTrack == "" || c.Audio.SpinTrack == "" {
		return fmt.Errorf("audio.backgroundTrack and audio.spinTrack are required")
	}
	if c.Audio.BackgroundTrack == c.Audio.SpinTrack {
		return fmt.Errorf("audio tracks must differ, both are %q", c.Audio.SpinTrack)
	}

	if c.Layout.ScreenWidth <= 0 || c.Layout.ScreenHeight <= 0 {
		return fmt.Errorf("layout screen size must be positive, got %dx%d", c.Layout.ScreenWidth, c.Layout.ScreenHeight)
	}

	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be one of debug|info|warn|error, got %q", c.Logging.Level)
	}

	return nil
}

// SlotConfig 转换为控制器配置
func (c *SlotMachineConfig) SlotConfig() slot.Config {
	return slot.Config{
		Timing: slot.Timing{
			ButtonEnableDelay: c.Timing.ButtonEnableDelay,
			AutoStopDelay:     c.Timing.AutoStopDelay,
			StopStagger:       c.Timing.StopStagger,
		},
		ReelCount:       c.Reels.Count,
		SettledFrame:    c.Reels.SettledFrame,
		BackgroundTrack: c.Audio.BackgroundTrack,
		SpinTrack:       c.Audio.SpinTrack,
	}
}

// ReelLayout 转换为转轴系统布局
func (c *SlotMachineConfig) ReelLayout() systems.ReelLayout {
	x, y := c.Layout.ReelCenter(0)
	return systems.ReelLayout{
		FrameCount:    c.Reels.FrameCount,
		FrameDuration: c.Reels.FrameDuration(),
		OriginX:       x,
		OriginY:       y,
		Spacing:       c.Layout.ReelWidth,
	}
}
