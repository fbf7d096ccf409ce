package systems

import (
	"time"

	"github.com/decker502/slotreel/pkg/components"
	"github.com/decker502/slotreel/pkg/ecs"
	"github.com/decker502/slotreel/pkg/entities"
	"github.com/decker502/slotreel/pkg/slot"
)

// TimerSystem 虚拟时间计时器系统
//
// 职责：
//   - 实现 slot.Timer，把延迟回调存为带 TimerComponent 的实体
//   - 推进虚拟时钟，按 (Deadline, Seq) 顺序触发到期回调
//   - 回调执行时 Now() 恰好等于其 Deadline
//
// 取消的计时器立即标记并销毁，之后任何时刻都不会触发。
type TimerSystem struct {
	entityManager *ecs.EntityManager
	now           time.Duration
	seq           uint64
}

// NewTimerSystem 创建计时器系统
func NewTimerSystem(em *ecs.EntityManager) *TimerSystem {
	return &TimerSystem{entityManager: em}
}

// Now 当前虚拟时间
func (s *TimerSystem) Now() time.Duration {
	return s.now
}

// Schedule 在 d 之后执行 fn
func (s *TimerSystem) Schedule(d time.Duration, fn func()) slot.CancelableHandle {
	if d < 0 {
		d = 0
	}
	s.seq++
	id := entities.NewTimerEntity(s.entityManager, s.now+d, s.seq, fn)
	return &timerHandle{entityManager: s.entityManager, id: id}
}

// Update 推进虚拟时钟 dt
func (s *TimerSystem) Update(dt time.Duration) {
	target := s.now + dt
	for {
		id, timer := s.nextDue(target)
		if timer == nil {
			break
		}
		s.now = timer.Deadline
		timer.Fired = true
		s.entityManager.DestroyEntity(id)
		if timer.Callback != nil {
			timer.Callback()
		}
	}
	s.now = target
}

// Pending 尚未触发且未取消的计时器数量
func (s *TimerSystem) Pending() int {
	n := 0
	for _, id := range ecs.GetEntitiesWith1[*components.TimerComponent](s.entityManager) {
		timer, _ := ecs.GetComponent[*components.TimerComponent](s.entityManager, id)
		if !timer.Canceled && !timer.Fired {
			n++
		}
	}
	return n
}

func (s *TimerSystem) nextDue(target time.Duration) (ecs.EntityID, *components.TimerComponent) {
	var (
		nextID ecs.EntityID
		next   *components.TimerComponent
	)
	for _, id := range ecs.GetEntitiesWith1[*components.TimerComponent](s.entityManager) {
		timer, ok := ecs.GetComponent[*components.TimerComponent](s.entityManager, id)
		if !ok || timer.Canceled || timer.Fired || timer.Deadline > target {
			continue
		}
		if next == nil || timer.Deadline < next.Deadline ||
			(timer.Deadline == next.Deadline && timer.Seq < next.Seq) {
			nextID, next = id, timer
		}
	}
	return nextID, next
}

type timerHandle struct {
	entityManager *ecs.EntityManager
	id            ecs.EntityID
}

// Cancel 取消计时器；已触发或已取消时为空操作
func (h *timerHandle) Cancel() {
	timer, ok := ecs.GetComponent[*components.TimerComponent](h.entityManager, h.id)
	if !ok || timer.Fired || timer.Canceled {
		return
	}
	timer.Canceled = true
	h.entityManager.DestroyEntity(h.id)
}
