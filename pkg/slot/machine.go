package slot

import "time"

// 默认时间参数
const (
	DefaultButtonEnableDelay = 1000 * time.Millisecond
	DefaultAutoStopDelay     = 2000 * time.Millisecond
	DefaultStopStagger       = 500 * time.Millisecond
)

// Timing 状态机使用的固定时间参数
type Timing struct {
	// ButtonEnableDelay 开始旋转或手动停止后按钮禁用的时长（D1）
	ButtonEnableDelay time.Duration
	// AutoStopDelay 开始旋转到自动停止的延迟（D2）
	AutoStopDelay time.Duration
	// StopStagger 自动停止时相邻转轴的停止间隔（D3）
	StopStagger time.Duration
}

// DefaultTiming 返回默认时间参数
func DefaultTiming() Timing {
	return Timing{
		ButtonEnableDelay: DefaultButtonEnableDelay,
		AutoStopDelay:     DefaultAutoStopDelay,
		StopStagger:       DefaultStopStagger,
	}
}

// Machine 状态机的不可变值
//
// Handle 不修改接收者，而是返回下一个值和本次迁移的命令列表，
// 所以每次迁移的全部副作用都能在一处审计。
type Machine struct {
	State         State
	ButtonEnabled bool
	// Cycle 当前（或最近一次）旋转的轮次，每次开始旋转加一
	Cycle  uint64
	Timing Timing
}

// NewMachine 创建处于 Idle 状态、按钮可用的状态机
func NewMachine(timing Timing) Machine {
	return Machine{
		State:         StateIdle,
		ButtonEnabled: true,
		Timing:        timing,
	}
}

// Handle 处理一个事件
// 返回的 error 总是包装 ErrInvalidTransition；此时返回的 Machine 与接收者相同，命令为空
func (m Machine) Handle(ev Event) (Machine, []Command, error) {
	switch ev.Kind {
	case EventActivate:
		return m.activate()
	case EventAutoStopFired:
		return m.autoStop(ev)
	case EventButtonWindowElapsed:
		return m.enableButton()
	default:
		return m, nil, &TransitionError{From: m.State, Event: ev.Kind, Reason: "unknown event"}
	}
}

func (m Machine) activate() (Machine, []Command, error) {
	if !m.ButtonEnabled {
		return m, nil, &TransitionError{From: m.State, Event: EventActivate, Reason: "button disabled"}
	}

	next := m
	var cmds []Command

	switch m.State {
	case StateIdle:
		next.State = StateSpinningPendingAuto
		next.Cycle = m.Cycle + 1
		next.ButtonEnabled = false
		cmds = append(m.disableWindow(),
			Command{Kind: CmdStartReels},
			Command{Kind: CmdPlaySpinAudio},
			Command{Kind: CmdArmAutoStop, Delay: m.Timing.AutoStopDelay, Cycle: next.Cycle},
		)

	case StateSpinningPendingAuto:
		// 第一次点击只是确认，不影响转轴、音频和计时器
		next.State = StateSpinningStopArmed
		cmds = []Command{{Kind: CmdSetLabel, Label: LabelStop}}

	case StateSpinningStopArmed:
		// 取消自动停止必须在同一次迁移内完成，两条停止路径不会在同一轮都触发
		next.State = StateIdle
		next.ButtonEnabled = false
		cmds = append(m.disableWindow(),
			Command{Kind: CmdDisarmAutoStop},
			Command{Kind: CmdStopReelsTogether},
			Command{Kind: CmdStopSpinAudio},
			Command{Kind: CmdSetLabel, Label: LabelSpin},
		)

	default:
		return m, nil, &TransitionError{From: m.State, Event: EventActivate, Reason: "unknown state"}
	}

	return next, cmds, nil
}

// disableWindow 改变转轴运动的激活会禁用按钮 D1，到期后由独立计时器重新启用
func (m Machine) disableWindow() []Command {
	return []Command{
		{Kind: CmdDisableButton},
		{Kind: CmdScheduleButtonEnable, Delay: m.Timing.ButtonEnableDelay},
	}
}

func (m Machine) autoStop(ev Event) (Machine, []Command, error) {
	if !m.State.Spinning() {
		return m, nil, &TransitionError{From: m.State, Event: ev.Kind, Reason: "reels not spinning"}
	}
	if ev.Cycle != m.Cycle {
		return m, nil, &TransitionError{From: m.State, Event: ev.Kind, Reason: "stale spin cycle"}
	}

	next := m
	next.State = StateIdle
	return next, []Command{
		{Kind: CmdDisarmAutoStop},
		{Kind: CmdStopReelsStaggered, Delay: m.Timing.StopStagger},
		{Kind: CmdStopSpinAudio},
		{Kind: CmdSetLabel, Label: LabelSpin},
	}, nil
}

func (m Machine) enableButton() (Machine, []Command, error) {
	if m.ButtonEnabled {
		return m, nil, &TransitionError{From: m.State, Event: EventButtonWindowElapsed, Reason: "button already enabled"}
	}
	next := m
	next.ButtonEnabled = true
	return next, []Command{{Kind: CmdEnableButton}}, nil
}
