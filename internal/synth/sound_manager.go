// Package synth 终端宿主使用的合成音频
// 没有音频文件可用时，用 beep 实时合成背景音乐和旋转音效
package synth

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"go.uber.org/zap"
)

// SampleRate 合成使用的采样率
const SampleRate = beep.SampleRate(48000)

// ErrUnknownTrack 曲目没有注册对应的音色
var ErrUnknownTrack = errors.New("synth: unknown track")

// Voice 一个曲目的合成方式
type Voice struct {
	// Build 每次播放都生成新的流；循环音色必须返回无限流
	Build func(sr beep.SampleRate) (beep.Streamer, error)
}

// DefaultVoices 背景曲目用琶音，旋转曲目用升调音效
func DefaultVoices(backgroundTrack, spinTrack string, spinLength time.Duration) map[string]Voice {
	return map[string]Voice{
		backgroundTrack: {Build: func(sr beep.SampleRate) (beep.Streamer, error) {
			return withVolume(NewArpeggioGenerator(sr, 0.2), 0.5), nil
		}},
		spinTrack: {Build: func(sr beep.SampleRate) (beep.Streamer, error) {
			return SpinWhir(sr, spinLength, 80*time.Millisecond, 0.15)
		}},
	}
}

// SoundManager 实现 slot.Audio
//
// 所有流都加到同一个 mixer；Initialize 成功后 mixer 才会被扬声器消费。
// 未初始化时播放请求照常进入 mixer，只是听不到声音。
type SoundManager struct {
	mu sync.Mutex

	voices      map[string]Voice
	mixer       *beep.Mixer
	active      map[string]*beep.Ctrl
	initialized bool

	logger *zap.Logger
}

// NewSoundManager 创建合成音频管理器
func NewSoundManager(voices map[string]Voice, logger *zap.Logger) *SoundManager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SoundManager{
		voices: voices,
		mixer:  &beep.Mixer{},
		active: make(map[string]*beep.Ctrl),
		logger: logger.Named("synth"),
	}
}

// Initialize 打开扬声器并开始消费 mixer
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}
	if err := speaker.Init(SampleRate, SampleRate.N(100*time.Millisecond)); err != nil {
		return fmt.Errorf("failed to initialize speaker: %w", err)
	}
	sm.initialized = true
	speaker.Play(sm.mixer)
	sm.logger.Info("speaker initialized", zap.Int("sampleRate", int(SampleRate)))
	return nil
}

// Close 停止所有声音并关闭扬声器
func (sm *SoundManager) Close() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	sm.withMixer(func() {
		for _, ctrl := range sm.active {
			ctrl.Paused = true
		}
		sm.mixer.Clear()
	})
	sm.active = make(map[string]*beep.Ctrl)

	if sm.initialized {
		speaker.Close()
		sm.initialized = false
	}
}

// PlayLooping 循环播放；已经在播放时不重复启动
func (sm *SoundManager) PlayLooping(trackID string) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if ctrl, ok := sm.active[trackID]; ok && !ctrl.Paused {
		return nil
	}
	return sm.start(trackID)
}

// PlayOnce 从头播放一次；上一次未播完的同名曲目被替换
func (sm *SoundManager) PlayOnce(trackID string) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	sm.pause(trackID)
	return sm.start(trackID)
}

// Stop 停止曲目
func (sm *SoundManager) Stop(trackID string) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if _, ok := sm.voices[trackID]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownTrack, trackID)
	}
	sm.pause(trackID)
	return nil
}

// IsPlaying 曲目是否处于播放状态
// 一次性曲目自然播完后仍然报告为 true，直到下一次 Stop
func (sm *SoundManager) IsPlaying(trackID string) bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	ctrl, ok := sm.active[trackID]
	return ok && !ctrl.Paused
}

// start 调用方持有 mu
func (sm *SoundManager) start(trackID string) error {
	voice, ok := sm.voices[trackID]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownTrack, trackID)
	}
	streamer, err := voice.Build(SampleRate)
	if err != nil {
		return fmt.Errorf("failed to build track %s: %w", trackID, err)
	}

	ctrl := &beep.Ctrl{Streamer: streamer, Paused: false}
	sm.withMixer(func() {
		sm.mixer.Add(ctrl)
	})
	sm.active[trackID] = ctrl
	sm.logger.Debug("track started", zap.String("track", trackID))
	return nil
}

// pause 调用方持有 mu
func (sm *SoundManager) pause(trackID string) {
	ctrl, ok := sm.active[trackID]
	if !ok {
		return
	}
	sm.withMixer(func() {
		ctrl.Paused = true
		// 暂停的 Ctrl 不会结束，置空后 mixer 会在下一次读取时移除它
		ctrl.Streamer = nil
	})
	delete(sm.active, trackID)
	sm.logger.Debug("track stopped", zap.String("track", trackID))
}

// withMixer 扬声器运行时，修改 mixer 需要持有扬声器锁
func (sm *SoundManager) withMixer(fn func()) {
	if sm.initialized {
		speaker.Lock()
		defer speaker.Unlock()
	}
	fn()
}
