package entities

import (
	"github.com/decker502/slotreel/pkg/components"
	"github.com/decker502/slotreel/pkg/ecs"
)

// NewSlotButton 创建旋转/停止按钮实体
//
// 参数：
//   - em: 实体管理器
//   - x, y: 按钮左上角位置
//   - width, height: 按钮尺寸
//   - label: 初始文字
//
// 点击回调由控制器通过按钮视图注册。
func NewSlotButton(em *ecs.EntityManager, x, y, width, height float64, label string) ecs.EntityID {
	entity := em.CreateEntity()

	ecs.AddComponent(em, entity, &components.PositionComponent{X: x, Y: y})
	ecs.AddComponent(em, entity, &components.ButtonComponent{
		Label:   label,
		Width:   width,
		Height:  height,
		State:   components.UINormal,
		Enabled: true,
	})

	return entity
}
