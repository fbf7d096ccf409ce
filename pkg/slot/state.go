// Package slot 实现老虎机转轴控制器
//
// 控制器是一个显式状态机：所有状态迁移由 Machine.Handle 这一个纯函数完成，
// 每次迁移产出一组命令（Command），再由 Controller 逐条交给协作方
// （转轴宿主、计时器、音频、按钮视图）执行。
package slot

// State 控制器状态
type State int

const (
	// StateIdle 转轴静止，按钮显示 "Spin"
	StateIdle State = iota
	// StateSpinningPendingAuto 转轴转动中，自动停止计时器已挂起，按钮显示 "Spin"
	StateSpinningPendingAuto
	// StateSpinningStopArmed 转轴转动中，按钮显示 "Stop"，再次点击立即停止
	StateSpinningStopArmed
)

// 按钮文字
const (
	LabelSpin = "Spin"
	LabelStop = "Stop"
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateSpinningPendingAuto:
		return "SpinningPendingAuto"
	case StateSpinningStopArmed:
		return "SpinningStopArmed"
	default:
		return "Unknown"
	}
}

// Label 返回该状态下按钮应显示的文字
func (s State) Label() string {
	if s == StateSpinningStopArmed {
		return LabelStop
	}
	return LabelSpin
}

// Spinning 转轴是否处于转动状态
func (s State) Spinning() bool {
	return s == StateSpinningPendingAuto || s == StateSpinningStopArmed
}

// AnimationState 单个转轴的动画状态
type AnimationState int

const (
	AnimationIdle AnimationState = iota
	AnimationSpinning
	AnimationStoppingScheduled
	AnimationStopped
)

func (a AnimationState) String() string {
	switch a {
	case AnimationIdle:
		return "Idle"
	case AnimationSpinning:
		return "Spinning"
	case AnimationStoppingScheduled:
		return "StoppingScheduled"
	case AnimationStopped:
		return "Stopped"
	default:
		return "Unknown"
	}
}
