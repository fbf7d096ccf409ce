package components

import "time"

// AnimationComponent 基于帧序号的循环动画状态
// 只记录帧序号，帧对应的图像或字符由各宿主的渲染层决定
type AnimationComponent struct {
	FrameCount    int           // 动画总帧数
	FrameDuration time.Duration // 每帧持续时间
	FrameElapsed  time.Duration // 当前帧已播放时间
	CurrentFrame  int           // 当前显示的帧索引(0-based)
	IsLooping     bool          // 是否循环播放
	IsPlaying     bool          // 是否正在播放
}
