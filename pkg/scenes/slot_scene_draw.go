package scenes

import (
	"github.com/decker502/slotreel/pkg/slot"
	"github.com/hajimehoshi/ebiten/v2"
)

// disabledAlpha 按钮禁用时的透明度
const disabledAlpha = 0.5

// drawCentered 以 (cx, cy) 为中心绘制图片
func (s *SlotScene) drawCentered(screen, img *ebiten.Image, cx, cy float64) {
	if img == nil {
		return
	}
	bounds := img.Bounds()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(cx-float64(bounds.Dx())/2, cy-float64(bounds.Dy())/2)
	screen.DrawImage(img, op)
}

func (s *SlotScene) drawReels(screen *ebiten.Image) {
	for _, view := range s.module.ReelViews() {
		if view.Index >= len(s.reelFrames) {
			continue
		}
		frames := s.reelFrames[view.Index]
		if view.Frame < 0 || view.Frame >= len(frames) {
			continue
		}
		s.drawCentered(screen, frames[view.Frame], view.X, view.Y)
	}
}

func (s *SlotScene) drawButton(screen *ebiten.Image) {
	state := s.module.ButtonState()

	img := s.buttonSpin
	if state.Label == slot.LabelStop {
		img = s.buttonStop
	}
	if img == nil {
		return
	}

	// 图片缩放到按钮区域
	bounds := img.Bounds()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(state.Width/float64(bounds.Dx()), state.Height/float64(bounds.Dy()))
	op.GeoM.Translate(state.X, state.Y)
	if !state.Enabled {
		op.ColorScale.ScaleAlpha(disabledAlpha)
	}
	screen.DrawImage(img, op)
}
