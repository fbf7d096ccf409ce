package systems

import (
	"time"

	"github.com/decker502/slotreel/pkg/components"
	"github.com/decker502/slotreel/pkg/ecs"
	"github.com/decker502/slotreel/pkg/entities"
	"github.com/decker502/slotreel/pkg/slot"
	"go.uber.org/zap"
)

// ReelLayout 转轴实体的创建参数
type ReelLayout struct {
	FrameCount    int
	FrameDuration time.Duration
	// Origin 第 0 个转轴精灵的中心位置
	OriginX, OriginY float64
	// Spacing 相邻转轴的水平间距
	Spacing float64
}

// ReelSystem 转轴动画系统
//
// 职责：
//   - 实现 slot.Renderer，为每个序号创建转轴实体并返回句柄
//   - 推进循环动画帧
//   - 在延迟到期后的第一个循环边界停止转轴，停在第 0 帧
type ReelSystem struct {
	entityManager *ecs.EntityManager
	layout        ReelLayout
	logger        *zap.Logger
}

// NewReelSystem 创建转轴系统
func NewReelSystem(em *ecs.EntityManager, layout ReelLayout, logger *zap.Logger) *ReelSystem {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReelSystem{
		entityManager: em,
		layout:        layout,
		logger:        logger.Named("reel"),
	}
}

// CreateReel 创建第 index 个转轴
func (s *ReelSystem) CreateReel(index int) slot.ReelHandle {
	x := s.layout.OriginX + float64(index)*s.layout.Spacing
	id := entities.NewReelEntity(s.entityManager, index, s.layout.FrameCount, s.layout.FrameDuration, x, s.layout.OriginY)
	return &reelHandle{entityManager: s.entityManager, id: id}
}

// Update 推进所有转轴动画
func (s *ReelSystem) Update(dt time.Duration) {
	var settled []func()

	for _, id := range ecs.GetEntitiesWith2[*components.ReelComponent, *components.AnimationComponent](s.entityManager) {
		reel, _ := ecs.GetComponent[*components.ReelComponent](s.entityManager, id)
		anim, _ := ecs.GetComponent[*components.AnimationComponent](s.entityManager, id)

		if s.advance(reel, anim, dt) {
			s.logger.Debug("reel settled at loop boundary",
				zap.Int("reel", reel.Index),
				zap.Duration("requested", reel.StopDelay),
				zap.Duration("elapsed", reel.StopElapsed))
			if reel.OnSettled != nil {
				settled = append(settled, reel.OnSettled)
			}
		}
	}

	for _, fn := range settled {
		fn()
	}
}

// advance 推进单个转轴，返回本次是否在循环边界完成了延迟停止
func (s *ReelSystem) advance(reel *components.ReelComponent, anim *components.AnimationComponent, dt time.Duration) bool {
	if !anim.IsPlaying || anim.FrameCount <= 0 || anim.FrameDuration <= 0 {
		return false
	}

	remaining := dt
	for remaining > 0 {
		toNext := anim.FrameDuration - anim.FrameElapsed
		if remaining < toNext {
			anim.FrameElapsed += remaining
			if reel.StopRequested {
				reel.StopElapsed += remaining
			}
			return false
		}

		remaining -= toNext
		if reel.StopRequested {
			reel.StopElapsed += toNext
		}
		anim.FrameElapsed = 0

		next := anim.CurrentFrame + 1
		if next >= anim.FrameCount {
			// 循环边界
			if reel.StopRequested && reel.StopElapsed >= reel.StopDelay {
				anim.CurrentFrame = 0
				anim.IsPlaying = false
				reel.StopRequested = false
				reel.Settled = true
				return true
			}
			if !anim.IsLooping {
				anim.CurrentFrame = anim.FrameCount - 1
				anim.IsPlaying = false
				return false
			}
			next = 0
		}
		anim.CurrentFrame = next
	}
	return false
}

// Frames 按转轴序号返回当前显示的帧
func (s *ReelSystem) Frames() []int {
	ids := ecs.GetEntitiesWith2[*components.ReelComponent, *components.AnimationComponent](s.entityManager)
	frames := make([]int, len(ids))
	for _, id := range ids {
		reel, _ := ecs.GetComponent[*components.ReelComponent](s.entityManager, id)
		anim, _ := ecs.GetComponent[*components.AnimationComponent](s.entityManager, id)
		if reel.Index >= 0 && reel.Index < len(frames) {
			frames[reel.Index] = anim.CurrentFrame
		}
	}
	return frames
}

// reelHandle 转轴实体的 slot.ReelHandle 实现
type reelHandle struct {
	entityManager *ecs.EntityManager
	id            ecs.EntityID
}

func (h *reelHandle) parts() (*components.ReelComponent, *components.AnimationComponent, bool) {
	reel, ok := ecs.GetComponent[*components.ReelComponent](h.entityManager, h.id)
	if !ok {
		return nil, nil, false
	}
	anim, ok := ecs.GetComponent[*components.AnimationComponent](h.entityManager, h.id)
	if !ok {
		return nil, nil, false
	}
	return reel, anim, true
}

// Play 从当前帧继续播放，丢弃未完成的延迟停止
func (h *reelHandle) Play(loop bool) {
	reel, anim, ok := h.parts()
	if !ok {
		return
	}
	anim.IsPlaying = true
	anim.IsLooping = loop
	reel.StopRequested = false
	reel.StopElapsed = 0
	reel.Settled = false
}

func (h *reelHandle) StopAfterDelay(d time.Duration) {
	reel, anim, ok := h.parts()
	if !ok {
		return
	}
	if !anim.IsPlaying {
		// 没有在转动，直接视为已停止
		reel.Settled = true
		if reel.OnSettled != nil {
			reel.OnSettled()
		}
		return
	}
	reel.StopRequested = true
	reel.StopDelay = d
	reel.StopElapsed = 0
}

func (h *reelHandle) StopAtFrame(frameID int) {
	reel, anim, ok := h.parts()
	if !ok {
		return
	}
	anim.IsPlaying = false
	anim.FrameElapsed = 0
	if anim.FrameCount > 0 {
		anim.CurrentFrame = ((frameID % anim.FrameCount) + anim.FrameCount) % anim.FrameCount
	}
	reel.StopRequested = false
	reel.Settled = true
}

// NotifyOnSettled 实现 slot.SettleNotifier
func (h *reelHandle) NotifyOnSettled(fn func()) {
	if reel, ok := ecs.GetComponent[*components.ReelComponent](h.entityManager, h.id); ok {
		reel.OnSettled = fn
	}
}
