package components

import "time"

// ReelComponent 转轴组件（纯数据）
//
// 生命周期：
//  1. ReelFactory 在机器初始化时创建，整个会话内不销毁
//  2. ReelSystem 执行 Play / StopAfterDelay / StopAtFrame 请求
//  3. 延迟停止在循环边界完成后，ReelSystem 调用 OnSettled
type ReelComponent struct {
	// Index 转轴序号（从左到右，0-based）
	Index int

	// StopRequested 是否有待执行的延迟停止
	StopRequested bool
	// StopDelay 延迟停止的最短等待时间
	StopDelay time.Duration
	// StopElapsed 发出延迟停止请求以来经过的时间
	StopElapsed time.Duration

	// Settled 转轴已停止（延迟停止或立即停止）
	Settled bool

	// OnSettled 延迟停止完成时的回调（可选）
	OnSettled func()
}
