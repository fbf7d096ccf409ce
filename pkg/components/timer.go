package components

import "time"

// TimerComponent 一次性延迟回调
// 由 TimerSystem 在虚拟时间到达 Deadline 时触发，触发或取消后实体被销毁
type TimerComponent struct {
	Deadline time.Duration // 触发时间（TimerSystem 虚拟时钟）
	Seq      uint64        // 调度序号，相同 Deadline 时按调度顺序触发
	Callback func()
	Canceled bool
	Fired    bool
}
