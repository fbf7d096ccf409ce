package components

// ButtonComponent 按钮组件（ECS 架构）
//
// 设计原则：
//   - 纯数据组件，不包含任何方法
//   - 文字只取 "Spin" / "Stop"，由控制器通过按钮视图设置
//   - 禁用时不响应点击，渲染层以半透明显示
type ButtonComponent struct {
	// Label 按钮上显示的文字
	Label string

	// Width 按钮宽度（像素或字符格）
	Width float64
	// Height 按钮高度
	Height float64

	// State 当前交互状态（Normal/Hover/Clicked/Disabled）
	State UIState
	// Enabled 是否启用（禁用时不响应点击）
	Enabled bool

	// OnClick 点击回调函数
	OnClick func()
}
