package modules

import (
	"fmt"
	"time"

	"github.com/decker502/slotreel/pkg/components"
	"github.com/decker502/slotreel/pkg/config"
	"github.com/decker502/slotreel/pkg/ecs"
	"github.com/decker502/slotreel/pkg/entities"
	"github.com/decker502/slotreel/pkg/slot"
	"github.com/decker502/slotreel/pkg/systems"
	"go.uber.org/zap"
)

// SlotMachineModule 老虎机模块
// 封装 ECS 世界、各系统和控制器，供图形宿主和终端宿主共用：
//   - 计时器系统作为控制器的 Timer
//   - 转轴系统作为控制器的 Renderer
//   - 按钮实体通过按钮视图作为控制器的 ButtonView
//
// 宿主只负责采样输入、提供音频以及把 ReelViews/ButtonState 画出来。
type SlotMachineModule struct {
	entityManager *ecs.EntityManager

	timerSystem  *systems.TimerSystem
	reelSystem   *systems.ReelSystem
	buttonSystem *systems.ButtonSystem

	buttonEntity ecs.EntityID
	controller   *slot.Controller

	logger *zap.Logger
}

// ReelView 转轴的绘制信息
type ReelView struct {
	Index int
	// X, Y 精灵中心
	X, Y    float64
	Frame   int
	Playing bool
	State   slot.AnimationState
}

// ButtonState 按钮的绘制信息
type ButtonState struct {
	X, Y          float64
	Width, Height float64
	Label         string
	Enabled       bool
	State         components.UIState
}

// NewSlotMachineModule 创建老虎机模块
//
// 参数:
//   - cfg: 已验证的配置
//   - audio: 音频协作方，nil 表示音频不可用（控制器会记录一次）
//   - logger: 日志器，nil 表示不输出
func NewSlotMachineModule(cfg *config.SlotMachineConfig, audio slot.Audio, logger *zap.Logger) (*SlotMachineModule, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	em := ecs.NewEntityManager()
	m := &SlotMachineModule{
		entityManager: em,
		timerSystem:   systems.NewTimerSystem(em),
		reelSystem:    systems.NewReelSystem(em, cfg.ReelLayout(), logger),
		buttonSystem:  systems.NewButtonSystem(em),
		logger:        logger.Named("module"),
	}

	bx, by, bw, bh := cfg.Layout.ButtonRect()
	m.buttonEntity = entities.NewSlotButton(em, bx, by, bw, bh, slot.LabelSpin)

	ctrl, err := slot.NewController(cfg.SlotConfig(), slot.Host{
		Renderer: m.reelSystem,
		Timer:    m.timerSystem,
		Audio:    audio,
		Button:   m.buttonSystem.View(m.buttonEntity),
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create slot controller: %w", err)
	}
	m.controller = ctrl

	m.logger.Info("slot machine module initialized",
		zap.Int("reels", cfg.Reels.Count),
		zap.Int("entities", em.EntityCount()))

	return m, nil
}

// Start 启动控制器（同步按钮、播放背景音乐）
func (m *SlotMachineModule) Start() {
	m.controller.Start()
}

// Update 推进一帧
//
// 顺序：先处理本帧输入（发生在当前时刻），再推进转轴动画和计时器 dt，
// 最后清理已销毁的计时器实体。
func (m *SlotMachineModule) Update(dt time.Duration, input systems.PointerInput) {
	m.buttonSystem.Update(input)
	m.reelSystem.Update(dt)
	m.timerSystem.Update(dt)
	m.entityManager.RemoveMarkedEntities()
}

// Controller 返回控制器
func (m *SlotMachineModule) Controller() *slot.Controller {
	return m.controller
}

// Now 当前虚拟时间
func (m *SlotMachineModule) Now() time.Duration {
	return m.timerSystem.Now()
}

// PendingTimers 挂起的计时器数量
func (m *SlotMachineModule) PendingTimers() int {
	return m.timerSystem.Pending()
}

// ReelViews 按从左到右顺序返回转轴绘制信息
func (m *SlotMachineModule) ReelViews() []ReelView {
	reels := m.controller.Reels()
	views := make([]ReelView, len(reels))

	for _, id := range ecs.GetEntitiesWith3[*components.ReelComponent, *components.AnimationComponent, *components.PositionComponent](m.entityManager) {
		reel, _ := ecs.GetComponent[*components.ReelComponent](m.entityManager, id)
		anim, _ := ecs.GetComponent[*components.AnimationComponent](m.entityManager, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](m.entityManager, id)
		if reel.Index < 0 || reel.Index >= len(views) {
			continue
		}
		views[reel.Index] = ReelView{
			Index:   reel.Index,
			X:       pos.X,
			Y:       pos.Y,
			Frame:   anim.CurrentFrame,
			Playing: anim.IsPlaying,
			State:   reels[reel.Index].State(),
		}
	}
	return views
}

// ButtonState 返回按钮绘制信息
func (m *SlotMachineModule) ButtonState() ButtonState {
	button, _ := ecs.GetComponent[*components.ButtonComponent](m.entityManager, m.buttonEntity)
	pos, _ := ecs.GetComponent[*components.PositionComponent](m.entityManager, m.buttonEntity)
	if button == nil || pos == nil {
		return ButtonState{}
	}
	return ButtonState{
		X:       pos.X,
		Y:       pos.Y,
		Width:   button.Width,
		Height:  button.Height,
		Label:   button.Label,
		Enabled: button.Enabled,
		State:   button.State,
	}
}
