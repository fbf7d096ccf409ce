package scenes

import (
	"time"

	"github.com/decker502/slotreel/pkg/config"
	"github.com/decker502/slotreel/pkg/game"
	"github.com/decker502/slotreel/pkg/modules"
	"github.com/decker502/slotreel/pkg/systems"
	"github.com/decker502/slotreel/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"
)

// SlotScene 老虎机场景
//
// 场景只做两件事：每帧采样鼠标/键盘输入交给 SlotMachineModule，
// 以及按模块给出的转轴帧和按钮状态绘制画面。
type SlotScene struct {
	module          *modules.SlotMachineModule
	resourceManager *game.ResourceManager
	layout          config.LayoutConfig
	frameCount      int
	touches         utils.TouchTracker
	logger          *zap.Logger

	background *ebiten.Image
	container  *ebiten.Image
	buttonSpin *ebiten.Image
	buttonStop *ebiten.Image
	// reelFrames[i][f] 第 i 个转轴的第 f 帧
	reelFrames [][]*ebiten.Image
}

// NewSlotScene 创建老虎机场景并加载图片资源
// 缺失的图片使用程序生成的占位图代替
func NewSlotScene(rm *game.ResourceManager, module *modules.SlotMachineModule, cfg *config.SlotMachineConfig, logger *zap.Logger) *SlotScene {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &SlotScene{
		module:          module,
		resourceManager: rm,
		layout:          cfg.Layout,
		frameCount:      cfg.Reels.FrameCount,
		logger:          logger.Named("scene"),
	}
	s.loadResources(cfg.Reels.Count)
	return s
}

// Update 采样输入并推进模块
func (s *SlotScene) Update(dt time.Duration) {
	s.module.Update(dt, s.sampleInput())
}

// sampleInput 读取本帧的指针和键盘输入
// 触屏抬起手指视为在最后触摸位置释放
func (s *SlotScene) sampleInput() systems.PointerInput {
	p := s.touches.ReadPointer()
	return systems.PointerInput{
		X:        float64(p.X),
		Y:        float64(p.Y),
		Pressed:  p.Pressed,
		Released: p.JustReleased,
		Activate: utils.IsAnyKeyJustPressed(ebiten.KeySpace, ebiten.KeyEnter, ebiten.KeyNumpadEnter),
	}
}

// Draw 绘制背景、老虎机框、转轴和按钮
func (s *SlotScene) Draw(screen *ebiten.Image) {
	s.drawCentered(screen, s.background, float64(s.layout.ScreenWidth)/2, float64(s.layout.ScreenHeight)/2)
	s.drawCentered(screen, s.container, float64(s.layout.ScreenWidth)/2, float64(s.layout.ScreenHeight)/2)
	s.drawReels(screen)
	s.drawButton(screen)
}
