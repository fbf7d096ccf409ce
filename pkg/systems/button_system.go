package systems

import (
	"github.com/decker502/slotreel/pkg/components"
	"github.com/decker502/slotreel/pkg/ecs"
)

// PointerInput 一帧内采样到的输入
// 由宿主（ebiten 或终端）填充，系统本身不直接读取输入设备
type PointerInput struct {
	X, Y     float64
	Pressed  bool // 主键按住
	Released bool // 主键本帧释放
	// Activate 本帧按下了激活键（空格/回车）
	Activate bool
}

// ButtonSystem 按钮交互系统
// 负责处理按钮的悬停、点击等交互逻辑
//
// 职责：
//   - 检测指针悬停（更新按钮状态为 UIHovered）
//   - 检测指针释放或激活键（触发 OnClick 回调）
//   - 根据 Enabled 状态决定是否响应交互
type ButtonSystem struct {
	entityManager *ecs.EntityManager
}

// NewButtonSystem 创建按钮交互系统
func NewButtonSystem(em *ecs.EntityManager) *ButtonSystem {
	return &ButtonSystem{
		entityManager: em,
	}
}

// Update 根据本帧输入更新按钮状态并触发回调
func (s *ButtonSystem) Update(input PointerInput) {
	entities := ecs.GetEntitiesWith2[*components.ButtonComponent, *components.PositionComponent](s.entityManager)

	for _, entityID := range entities {
		button, _ := ecs.GetComponent[*components.ButtonComponent](s.entityManager, entityID)
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, entityID)

		// 禁用状态不响应交互
		if !button.Enabled {
			button.State = components.UIDisabled
			continue
		}

		clicked := input.Activate
		if s.isPointerInButton(input.X, input.Y, pos.X, pos.Y, button.Width, button.Height) {
			switch {
			case input.Pressed:
				button.State = components.UIClicked
			case input.Released:
				// 释放瞬间触发回调
				clicked = true
				button.State = components.UIHovered
			default:
				button.State = components.UIHovered
			}
		} else {
			button.State = components.UINormal
		}

		if clicked && button.OnClick != nil {
			button.OnClick()
		}
	}
}

// isPointerInButton 检测指针是否在按钮范围内
func (s *ButtonSystem) isPointerInButton(x, y, buttonX, buttonY, buttonWidth, buttonHeight float64) bool {
	return x >= buttonX &&
		x <= buttonX+buttonWidth &&
		y >= buttonY &&
		y <= buttonY+buttonHeight
}

// View 返回按钮实体的 slot.ButtonView
func (s *ButtonSystem) View(id ecs.EntityID) *ButtonView {
	return &ButtonView{entityManager: s.entityManager, id: id}
}

// ButtonView 把按钮实体暴露为控制器的按钮视图
type ButtonView struct {
	entityManager *ecs.EntityManager
	id            ecs.EntityID
}

func (v *ButtonView) button() (*components.ButtonComponent, bool) {
	return ecs.GetComponent[*components.ButtonComponent](v.entityManager, v.id)
}

// SetLabel 设置按钮文字
func (v *ButtonView) SetLabel(text string) {
	if b, ok := v.button(); ok {
		b.Label = text
	}
}

// SetEnabled 启用或禁用按钮
func (v *ButtonView) SetEnabled(enabled bool) {
	b, ok := v.button()
	if !ok {
		return
	}
	b.Enabled = enabled
	if enabled {
		b.State = components.UINormal
	} else {
		b.State = components.UIDisabled
	}
}

// OnActivate 注册激活回调
func (v *ButtonView) OnActivate(handler func()) {
	if b, ok := v.button(); ok {
		b.OnClick = handler
	}
}
