package slot

import (
	"fmt"
	"time"
)

// EventKind 控制器事件类型
type EventKind int

const (
	// EventActivate 按钮被激活（点击或键盘）
	EventActivate EventKind = iota
	// EventAutoStopFired 自动停止计时器到期
	EventAutoStopFired
	// EventButtonWindowElapsed 按钮禁用窗口结束
	EventButtonWindowElapsed
)

func (k EventKind) String() string {
	switch k {
	case EventActivate:
		return "Activate"
	case EventAutoStopFired:
		return "AutoStopFired"
	case EventButtonWindowElapsed:
		return "ButtonWindowElapsed"
	default:
		return "Unknown"
	}
}

// Event 进入控制器事件队列的事件
// Cycle 标记了由计时器产生的事件属于哪一轮旋转
type Event struct {
	Kind  EventKind
	Cycle uint64
}

// CommandKind 迁移产出的命令类型
type CommandKind int

const (
	CmdDisableButton CommandKind = iota
	CmdEnableButton
	CmdScheduleButtonEnable
	CmdStartReels
	CmdPlaySpinAudio
	CmdStopSpinAudio
	CmdArmAutoStop
	// CmdDisarmAutoStop 释放挂起的自动停止句柄；若尚未触发则取消
	CmdDisarmAutoStop
	CmdStopReelsTogether
	CmdStopReelsStaggered
	CmdSetLabel
)

var commandNames = map[CommandKind]string{
	CmdDisableButton:        "DisableButton",
	CmdEnableButton:         "EnableButton",
	CmdScheduleButtonEnable: "ScheduleButtonEnable",
	CmdStartReels:           "StartReels",
	CmdPlaySpinAudio:        "PlaySpinAudio",
	CmdStopSpinAudio:        "StopSpinAudio",
	CmdArmAutoStop:          "ArmAutoStop",
	CmdDisarmAutoStop:       "DisarmAutoStop",
	CmdStopReelsTogether:    "StopReelsTogether",
	CmdStopReelsStaggered:   "StopReelsStaggered",
	CmdSetLabel:             "SetLabel",
}

func (k CommandKind) String() string {
	if name, ok := commandNames[k]; ok {
		return name
	}
	return "Unknown"
}

// Command 一次迁移的副作用
//
// 字段按命令类型取用：
//   - Delay: ScheduleButtonEnable / ArmAutoStop 的延迟，StopReelsStaggered 的步长
//   - Label: SetLabel 的文字
//   - Cycle: ArmAutoStop 所属的旋转轮次
type Command struct {
	Kind  CommandKind
	Delay time.Duration
	Label string
	Cycle uint64
}

func (c Command) String() string {
	switch c.Kind {
	case CmdScheduleButtonEnable, CmdStopReelsStaggered:
		return fmt.Sprintf("%s(%s)", c.Kind, c.Delay)
	case CmdArmAutoStop:
		return fmt.Sprintf("%s(%s, cycle=%d)", c.Kind, c.Delay, c.Cycle)
	case CmdSetLabel:
		return fmt.Sprintf("%s(%q)", c.Kind, c.Label)
	default:
		return c.Kind.String()
	}
}

// StaggerDelay 返回第 index 个转轴（从 0 开始）的错峰停止延迟
func StaggerDelay(index int, step time.Duration) time.Duration {
	return time.Duration(index+1) * step
}
