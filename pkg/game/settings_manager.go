package game

import (
	"go.uber.org/zap"
)

// PlayerSettings 本次运行中玩家调整的偏好，不落盘
type PlayerSettings struct {
	Volume     float64 // 0.0 ~ 1.0
	Muted      bool
	Fullscreen bool
}

// DefaultPlayerSettings 返回默认偏好
func DefaultPlayerSettings() PlayerSettings {
	return PlayerSettings{
		Volume: 0.8,
	}
}

// EffectiveVolume 静音时为 0
func (s PlayerSettings) EffectiveVolume() float64 {
	if s.Muted {
		return 0
	}
	return s.Volume
}

// SettingsManager 设置管理器
// 音量、静音和全屏的快捷键都通过它修改，再由 App 应用到音频和窗口
type SettingsManager struct {
	settings PlayerSettings
	logger   *zap.Logger
}

// NewSettingsManager 创建设置管理器
func NewSettingsManager(initial PlayerSettings, logger *zap.Logger) *SettingsManager {
	if logger == nil {
		logger = zap.NewNop()
	}
	initial.Volume = clampVolume(initial.Volume)
	return &SettingsManager{
		settings: initial,
		logger:   logger.Named("settings"),
	}
}

// Settings 当前设置的副本
func (sm *SettingsManager) Settings() PlayerSettings {
	return sm.settings
}

// SetVolume 设置音量，限制在 0.0 ~ 1.0
func (sm *SettingsManager) SetVolume(volume float64) {
	sm.settings.Volume = clampVolume(volume)
	sm.logger.Debug("volume changed", zap.Float64("volume", sm.settings.Volume))
}

// AdjustVolume 在当前音量上增减
func (sm *SettingsManager) AdjustVolume(delta float64) {
	sm.SetVolume(sm.settings.Volume + delta)
}

// ToggleMute 切换静音，返回切换后的状态
func (sm *SettingsManager) ToggleMute() bool {
	sm.settings.Muted = !sm.settings.Muted
	sm.logger.Debug("mute toggled", zap.Bool("muted", sm.settings.Muted))
	return sm.settings.Muted
}

// SetFullscreen 记录全屏状态
func (sm *SettingsManager) SetFullscreen(enabled bool) {
	sm.settings.Fullscreen = enabled
}

func clampVolume(volume float64) float64 {
	if volume < 0.0 {
		return 0.0
	}
	if volume > 1.0 {
		return 1.0
	}
	return volume
}
