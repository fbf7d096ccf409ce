package slot

import "time"

// DefaultSettledFrame 一起停止时强制显示的帧（第 4 帧）
const DefaultSettledFrame = 3

// Reel 单条转轴
//
// Reel 只记录自己发出过什么命令，不向控制器回传任何信息；
// 控制器独立维护状态，从不轮询转轴。
type Reel struct {
	index        int
	settledFrame int
	handle       ReelHandle
	state        AnimationState
}

func newReel(index, settledFrame int, handle ReelHandle) *Reel {
	r := &Reel{
		index:        index,
		settledFrame: settledFrame,
		handle:       handle,
		state:        AnimationIdle,
	}
	if n, ok := handle.(SettleNotifier); ok {
		n.NotifyOnSettled(r.settled)
	}
	return r
}

// Index 转轴序号（从 0 开始，即从左到右的位置）
func (r *Reel) Index() int { return r.index }

// SettledFrame 停止时显示的固定帧
func (r *Reel) SettledFrame() int { return r.settledFrame }

// State 当前动画状态
func (r *Reel) State() AnimationState { return r.state }

// StartSpinning 开始循环转动；已在转动时为空操作
func (r *Reel) StartSpinning() {
	if r.state == AnimationSpinning {
		return
	}
	r.handle.Play(true)
	r.state = AnimationSpinning
}

// StopAfterDelay 在 d 之后的第一个循环边界停止
func (r *Reel) StopAfterDelay(d time.Duration) {
	if r.state != AnimationSpinning {
		return
	}
	r.handle.StopAfterDelay(d)
	r.state = AnimationStoppingScheduled
}

// StopAtSettledFrame 立即停止并显示固定帧
func (r *Reel) StopAtSettledFrame() {
	r.handle.StopAtFrame(r.settledFrame)
	r.state = AnimationStopped
}

func (r *Reel) settled() {
	if r.state == AnimationStoppingScheduled {
		r.state = AnimationStopped
	}
}
