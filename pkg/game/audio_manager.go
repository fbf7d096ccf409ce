package game

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// ErrUnknownTrack 音轨 ID 没有配置对应的文件
var ErrUnknownTrack = errors.New("unknown audio track")

// Player 音频播放器的最小接口（*audio.Player 满足）
type Player interface {
	Play()
	Pause()
	Rewind() error
	IsPlaying() bool
	SetVolume(volume float64)
}

// PlayerLoader 按资源名加载播放器
// loop 为 true 时返回无限循环的播放器
type PlayerLoader func(name string, loop bool) (Player, error)

// AudioManager 音频管理器
// 职责：
//   - 把音轨 ID 映射到资源文件
//   - 实现 slot.Audio：循环播放、单次播放、停止
//   - 启动时预加载全部音轨，失败则由调用方决定以无音频方式运行
type AudioManager struct {
	tracks map[string]string // 音轨ID -> 资源文件名
	load   PlayerLoader
	volume float64
	loops  map[string]Player // 循环播放器缓存（音轨ID -> 播放器）
	sounds map[string]Player // 单次播放器缓存（音轨ID -> 播放器）
	logger *zap.Logger
}

// NewAudioManager 创建新的音频管理器
//
// 参数：
//   - rm: ResourceManager 实例（用于加载音频文件）
//   - tracks: 音轨ID到资源文件名的映射
//   - logger: 日志器，可为 nil
func NewAudioManager(rm *ResourceManager, tracks map[string]string, logger *zap.Logger) *AudioManager {
	return NewAudioManagerWithLoader(func(name string, loop bool) (Player, error) {
		load := rm.LoadSoundEffect
		if loop {
			load = rm.LoadAudio
		}
		p, err := load(name)
		if err != nil {
			return nil, err
		}
		return p, nil
	}, tracks, logger)
}

// NewAudioManagerWithLoader 使用自定义加载函数创建音频管理器
func NewAudioManagerWithLoader(load PlayerLoader, tracks map[string]string, logger *zap.Logger) *AudioManager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AudioManager{
		tracks: tracks,
		load:   load,
		volume: 1.0,
		loops:  make(map[string]Player),
		sounds: make(map[string]Player),
		logger: logger.Named("audio"),
	}
}

// Preload 预加载指定音轨
// 背景音乐按循环方式加载，其余按单次方式加载
func (am *AudioManager) Preload(loopTrack string, onceTracks ...string) error {
	if _, err := am.player(loopTrack, true); err != nil {
		return err
	}
	for _, id := range onceTracks {
		if _, err := am.player(id, false); err != nil {
			return err
		}
	}
	am.logger.Info("audio tracks preloaded", zap.Int("tracks", 1+len(onceTracks)))
	return nil
}

// SetVolume 设置音量 (0.0 ~ 1.0)，立即应用到所有已加载的播放器
func (am *AudioManager) SetVolume(volume float64) {
	am.volume = volume
	for _, p := range am.loops {
		p.SetVolume(volume)
	}
	for _, p := range am.sounds {
		p.SetVolume(volume)
	}
}

// PlayLooping 循环播放音轨；已在播放时为空操作
func (am *AudioManager) PlayLooping(trackID string) error {
	p, err := am.player(trackID, true)
	if err != nil {
		return err
	}
	if p.IsPlaying() {
		return nil
	}
	p.Play()
	am.logger.Debug("playing looping track", zap.String("track", trackID))
	return nil
}

// PlayOnce 从头播放一次音轨
func (am *AudioManager) PlayOnce(trackID string) error {
	p, err := am.player(trackID, false)
	if err != nil {
		return err
	}
	if err := p.Rewind(); err != nil {
		return fmt.Errorf("failed to rewind track %s: %w", trackID, err)
	}
	p.Play()
	return nil
}

// Stop 停止音轨（循环和单次播放器都会暂停）
func (am *AudioManager) Stop(trackID string) error {
	if _, ok := am.tracks[trackID]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownTrack, trackID)
	}
	if p, ok := am.loops[trackID]; ok {
		p.Pause()
	}
	if p, ok := am.sounds[trackID]; ok {
		p.Pause()
	}
	return nil
}

// player 获取或加载播放器
func (am *AudioManager) player(trackID string, loop bool) (Player, error) {
	cache := am.sounds
	if loop {
		cache = am.loops
	}
	if p, ok := cache[trackID]; ok {
		return p, nil
	}

	name, ok := am.tracks[trackID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTrack, trackID)
	}
	p, err := am.load(name, loop)
	if err != nil {
		return nil, fmt.Errorf("failed to load track %s: %w", trackID, err)
	}
	p.SetVolume(am.volume)
	cache[trackID] = p
	return p, nil
}
