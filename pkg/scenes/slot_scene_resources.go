package scenes

import (
	"fmt"
	"image/color"

	"github.com/decker502/slotreel/pkg/slot"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"go.uber.org/zap"
)

// 资源文件名（相对资源目录）
const (
	backgroundImage = "background.png"
	containerImage  = "slotContainer.png"
	buttonSpinImage = "button_spin.png"
	buttonStopImage = "button_stop.png"
	// reelFrameImage 第 n 个转轴的第 k 帧（都从 1 开始）
	reelFrameImage = "reel%d/frame%d.png"
)

// 每行符号的占位色
var symbolColors = []color.RGBA{
	{R: 230, G: 200, B: 40, A: 255}, // 黄
	{R: 210, G: 50, B: 50, A: 255},  // 红
	{R: 140, G: 60, B: 190, A: 255}, // 紫
	{R: 60, G: 160, B: 220, A: 255}, // 蓝
}

// loadResources loads all images required for the slot scene.
// If a resource fails to load, it logs a warning and uses a generated placeholder.
func (s *SlotScene) loadResources(reelCount int) {
	s.background = s.loadImageOr(backgroundImage, s.placeholderBackground)
	s.container = s.loadImageOr(containerImage, s.placeholderContainer)
	s.buttonSpin = s.loadImageOr(buttonSpinImage, func() *ebiten.Image {
		return s.placeholderButton(slot.LabelSpin, color.RGBA{R: 40, G: 170, B: 70, A: 255})
	})
	s.buttonStop = s.loadImageOr(buttonStopImage, func() *ebiten.Image {
		return s.placeholderButton(slot.LabelStop, color.RGBA{R: 200, G: 50, B: 50, A: 255})
	})

	s.reelFrames = make([][]*ebiten.Image, reelCount)
	for i := range s.reelFrames {
		s.reelFrames[i] = make([]*ebiten.Image, s.frameCount)
		for f := range s.reelFrames[i] {
			name := fmt.Sprintf(reelFrameImage, i+1, f+1)
			s.reelFrames[i][f] = s.loadImageOr(name, func() *ebiten.Image {
				return s.placeholderReelFrame(i, f)
			})
		}
	}
}

func (s *SlotScene) loadImageOr(name string, fallback func() *ebiten.Image) *ebiten.Image {
	img, err := s.resourceManager.LoadImage(name)
	if err != nil {
		s.logger.Warn("image missing, using placeholder", zap.String("image", name), zap.Error(err))
		return fallback()
	}
	return img
}

func (s *SlotScene) placeholderBackground() *ebiten.Image {
	img := ebiten.NewImage(s.layout.ScreenWidth, s.layout.ScreenHeight)
	img.Fill(color.RGBA{R: 24, G: 16, B: 48, A: 255})
	return img
}

func (s *SlotScene) placeholderContainer() *ebiten.Image {
	w, h := float32(s.layout.ContainerWidth), float32(s.layout.ContainerHeight)
	img := ebiten.NewImage(int(w), int(h))
	vector.DrawFilledRect(img, 0, 0, w, h, color.RGBA{R: 60, G: 40, B: 20, A: 255}, false)
	vector.StrokeRect(img, 4, 4, w-8, h-8, 8, color.RGBA{R: 200, G: 160, B: 60, A: 255}, false)
	return img
}

func (s *SlotScene) placeholderButton(label string, fill color.Color) *ebiten.Image {
	w, h := float32(s.layout.ButtonWidth), float32(s.layout.ButtonHeight)
	img := ebiten.NewImage(int(w), int(h))
	vector.DrawFilledRect(img, 0, 0, w, h, fill, false)
	vector.StrokeRect(img, 1, 1, w-2, h-2, 2, color.White, false)
	ebitenutil.DebugPrintAt(img, label, int(w)/2-len(label)*3, int(h)/2-8)
	return img
}

// placeholderReelFrame 三行符号，每帧整体下移一行，播放时形成滚动效果
func (s *SlotScene) placeholderReelFrame(reel, frame int) *ebiten.Image {
	w, h := float32(s.layout.ReelWidth), float32(s.layout.ReelHeight)
	img := ebiten.NewImage(int(w), int(h))
	img.Fill(color.RGBA{R: 240, G: 235, B: 220, A: 255})

	const rows = 3
	rowH := h / rows
	for row := 0; row < rows; row++ {
		c := symbolColors[(row+reel+s.frameCount-frame)%len(symbolColors)]
		vector.DrawFilledCircle(img, w/2, rowH*(float32(row)+0.5), rowH*0.35, c, true)
	}
	vector.StrokeLine(img, w-1, 0, w-1, h, 2, color.RGBA{R: 120, G: 100, B: 80, A: 255}, false)
	return img
}
