// Package utils 提供通用工具函数
package utils

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// PointerSample 一帧的指针状态
// 统一处理鼠标和触摸输入
type PointerSample struct {
	X, Y int
	// Pressed 主键或手指按住
	Pressed bool
	// JustReleased 本帧刚刚抬起
	JustReleased bool
}

// TouchTracker 记录最后一次触摸位置
// 触摸释放那一帧已经读不到手指的位置，只能用上一帧记下的位置
type TouchTracker struct {
	lastX, lastY int
	touching     bool
}

// Observe 合并本帧的触摸和鼠标状态，触摸优先
//
// 参数：
//   - touches: 仍按在屏幕上的触点位置
//   - touchReleased: 本帧是否有手指抬起
//   - mouse: 本帧的鼠标状态
func (t *TouchTracker) Observe(touches [][2]int, touchReleased bool, mouse PointerSample) PointerSample {
	if len(touches) > 0 {
		t.lastX, t.lastY = touches[0][0], touches[0][1]
		t.touching = true
		return PointerSample{X: t.lastX, Y: t.lastY, Pressed: true}
	}

	if touchReleased && t.touching {
		t.touching = false
		return PointerSample{X: t.lastX, Y: t.lastY, JustReleased: true}
	}
	t.touching = false
	return mouse
}

// ReadPointer 读取本帧的鼠标和触摸输入
func (t *TouchTracker) ReadPointer() PointerSample {
	var touches [][2]int
	for _, id := range ebiten.AppendTouchIDs(nil) {
		x, y := ebiten.TouchPosition(id)
		touches = append(touches, [2]int{x, y})
	}
	touchReleased := len(inpututil.AppendJustReleasedTouchIDs(nil)) > 0

	x, y := ebiten.CursorPosition()
	mouse := PointerSample{
		X:            x,
		Y:            y,
		Pressed:      ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft),
		JustReleased: inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft),
	}
	return t.Observe(touches, touchReleased, mouse)
}

// IsAnyKeyJustPressed 任意一个键本帧刚刚按下
func IsAnyKeyJustPressed(keys ...ebiten.Key) bool {
	for _, k := range keys {
		if inpututil.IsKeyJustPressed(k) {
			return true
		}
	}
	return false
}
