package slot

import "time"

// ReelHandle 渲染宿主中的一条转轴动画
type ReelHandle interface {
	// Play 开始播放转动动画
	Play(loop bool)
	// StopAfterDelay 在 d 之后的第一个循环边界停止
	StopAfterDelay(d time.Duration)
	// StopAtFrame 立即停止并显示指定帧
	StopAtFrame(frameID int)
}

// SettleNotifier 可选接口：能够观察到延迟停止完成的宿主实现它，
// 以便 Reel 从 StoppingScheduled 进入 Stopped
type SettleNotifier interface {
	NotifyOnSettled(fn func())
}

// Renderer 渲染宿主，负责创建转轴
type Renderer interface {
	CreateReel(index int) ReelHandle
}

// CancelableHandle 已调度任务的句柄
// Cancel 之后回调保证不会再被调用
type CancelableHandle interface {
	Cancel()
}

// Timer 计时器宿主
type Timer interface {
	Schedule(d time.Duration, fn func()) CancelableHandle
}

// Audio 音频宿主
type Audio interface {
	PlayLooping(trackID string) error
	PlayOnce(trackID string) error
	Stop(trackID string) error
}

// ButtonView 按钮视图
type ButtonView interface {
	SetLabel(text string)
	SetEnabled(enabled bool)
	OnActivate(handler func())
}

// Host 控制器依赖的全部协作方
// Timer 必须提供；其余缺失时由空实现代替，并在启动时报告一次
type Host struct {
	Renderer Renderer
	Timer    Timer
	Audio    Audio
	Button   ButtonView
}

type nopReel struct{}

func (nopReel) Play(bool)                    {}
func (nopReel) StopAfterDelay(time.Duration) {}
func (nopReel) StopAtFrame(int)              {}

type nopRenderer struct{}

func (nopRenderer) CreateReel(int) ReelHandle { return nopReel{} }

type nopAudio struct{}

func (nopAudio) PlayLooping(string) error { return nil }
func (nopAudio) PlayOnce(string) error    { return nil }
func (nopAudio) Stop(string) error        { return nil }

type nopButton struct{}

func (nopButton) SetLabel(string)    {}
func (nopButton) SetEnabled(bool)    {}
func (nopButton) OnActivate(func()) {}
