package entities

import (
	"time"

	"github.com/decker502/slotreel/pkg/components"
	"github.com/decker502/slotreel/pkg/ecs"
)

// NewReelEntity 创建转轴实体
//
// 参数：
//   - em: 实体管理器
//   - index: 转轴序号（从左到右，0-based）
//   - frameCount: 转动动画帧数
//   - frameDuration: 每帧持续时间
//   - x, y: 转轴精灵中心位置
//
// 返回：
//   - 转轴实体ID
//
// 新建的转轴停在第 0 帧，不播放。
func NewReelEntity(
	em *ecs.EntityManager,
	index int,
	frameCount int,
	frameDuration time.Duration,
	x, y float64,
) ecs.EntityID {
	entity := em.CreateEntity()

	ecs.AddComponent(em, entity, &components.PositionComponent{X: x, Y: y})
	ecs.AddComponent(em, entity, &components.ReelComponent{Index: index})
	ecs.AddComponent(em, entity, &components.AnimationComponent{
		FrameCount:    frameCount,
		FrameDuration: frameDuration,
		CurrentFrame:  0,
		IsLooping:     true,
	})

	return entity
}
