package entities

import (
	"time"

	"github.com/decker502/slotreel/pkg/components"
	"github.com/decker502/slotreel/pkg/ecs"
)

// NewTimerEntity 创建一次性计时器实体
func NewTimerEntity(em *ecs.EntityManager, deadline time.Duration, seq uint64, callback func()) ecs.EntityID {
	entity := em.CreateEntity()
	ecs.AddComponent(em, entity, &components.TimerComponent{
		Deadline: deadline,
		Seq:      seq,
		Callback: callback,
	})
	return entity
}
