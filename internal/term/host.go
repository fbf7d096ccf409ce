// Package term 基于 tcell 的终端宿主
// 把老虎机模块画成字符格，并把鼠标和键盘事件换算到逻辑坐标
package term

import (
	"context"
	"fmt"
	"time"

	"github.com/decker502/slotreel/pkg/components"
	"github.com/decker502/slotreel/pkg/config"
	"github.com/decker502/slotreel/pkg/modules"
	"github.com/decker502/slotreel/pkg/systems"
	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"
)

// 转轴上显示的符号，按帧号轮换
var reelSymbols = []rune{'7', '$', '%', '#', '@', '&'}

// 每条转轴可见的符号行数
const visibleSymbols = 3

// Host 终端宿主
type Host struct {
	screen tcell.Screen
	module *modules.SlotMachineModule
	layout config.LayoutConfig

	// input 两次 Step 之间累积的输入
	input     systems.PointerInput
	mouseDown bool

	logger *zap.Logger
}

// NewHost 创建终端宿主，screen 必须已经 Init
func NewHost(screen tcell.Screen, module *modules.SlotMachineModule, cfg *config.SlotMachineConfig, logger *zap.Logger) *Host {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Host{
		screen: screen,
		module: module,
		layout: cfg.Layout,
		// 初始位置在屏幕外，避免第一帧误判为悬停
		input:  systems.PointerInput{X: -1, Y: -1},
		logger: logger.Named("term"),
	}
}

// HandleEvent 处理一个终端事件，返回 true 表示退出
func (h *Host) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return true
		case tcell.KeyEnter:
			h.input.Activate = true
		case tcell.KeyRune:
			switch ev.Rune() {
			case ' ':
				h.input.Activate = true
			case 'q':
				return true
			}
		}

	case *tcell.EventMouse:
		cx, cy := ev.Position()
		h.input.X, h.input.Y = h.toLogical(cx, cy)
		down := ev.Buttons()&tcell.Button1 != 0
		if h.mouseDown && !down {
			h.input.Released = true
		}
		h.mouseDown = down
		h.input.Pressed = down

	case *tcell.EventResize:
		h.screen.Sync()
	}
	return false
}

// Step 用累积的输入推进模块 dt，然后清掉一次性的输入标志
func (h *Host) Step(dt time.Duration) {
	h.module.Update(dt, h.input)
	h.input.Released = false
	h.input.Activate = false
}

// Run 事件循环，直到 ctx 取消或用户退出
func (h *Host) Run(ctx context.Context, tick time.Duration) error {
	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	done := make(chan struct{})
	defer close(done)

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := h.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	h.Draw()
	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev := <-events:
			if h.HandleEvent(ev) {
				h.logger.Info("quit requested")
				return nil
			}

		case now := <-ticker.C:
			h.Step(now.Sub(last))
			last = now
			h.Draw()
		}
	}
}

// toLogical 字符格中心换算到逻辑坐标
func (h *Host) toLogical(cx, cy int) (float64, float64) {
	w, ht := h.screen.Size()
	if w <= 0 || ht <= 0 {
		return -1, -1
	}
	x := (float64(cx) + 0.5) * float64(h.layout.ScreenWidth) / float64(w)
	y := (float64(cy) + 0.5) * float64(h.layout.ScreenHeight) / float64(ht)
	return x, y
}

// toCell 逻辑坐标换算到字符格
func (h *Host) toCell(x, y float64) (int, int) {
	w, ht := h.screen.Size()
	cx := int(x * float64(w) / float64(h.layout.ScreenWidth))
	cy := int(y * float64(ht) / float64(h.layout.ScreenHeight))
	return cx, cy
}

// Draw 绘制一帧
func (h *Host) Draw() {
	h.screen.Clear()

	ctrl := h.module.Controller()
	status := fmt.Sprintf(" %s  cycle=%d  t=%v ", ctrl.State(), ctrl.Cycle(), h.module.Now().Truncate(10*time.Millisecond))
	h.drawText(0, 0, status, tcell.StyleDefault.Bold(true))

	ox, oy := h.layout.ContainerOrigin()
	x0, y0 := h.toCell(ox, oy)
	x1, y1 := h.toCell(ox+h.layout.ContainerWidth, oy+h.layout.ContainerHeight)
	h.drawBox(x0, y0, x1-1, y1-1, tcell.StyleDefault.Foreground(tcell.ColorGray))

	for _, view := range h.module.ReelViews() {
		h.drawReel(view)
	}
	h.drawButton(h.module.ButtonState())

	_, ht := h.screen.Size()
	h.drawText(0, ht-1, " click the button or press Space/Enter, Esc quits ", tcell.StyleDefault.Dim(true))

	h.screen.Show()
}

func (h *Host) drawReel(view modules.ReelView) {
	x0, y0 := h.toCell(view.X-h.layout.ReelWidth/2, view.Y-h.layout.ReelHeight/2)
	x1, y1 := h.toCell(view.X+h.layout.ReelWidth/2, view.Y+h.layout.ReelHeight/2)
	if x1-x0 < 3 || y1-y0 < visibleSymbols+2 {
		return
	}

	style := tcell.StyleDefault.Foreground(tcell.ColorWhite)
	if view.Playing {
		style = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	}
	h.drawBox(x0, y0, x1-1, y1-1, style)

	cx := (x0 + x1) / 2
	inner := y1 - y0 - 2
	for row := 0; row < visibleSymbols; row++ {
		cy := y0 + 1 + (2*row+1)*inner/(2*visibleSymbols)
		h.screen.SetContent(cx, cy, ReelSymbol(view.Index, row, view.Frame), nil, style.Bold(true))
	}
}

// ReelSymbol 第 reel 条转轴在 frame 帧时第 row 行显示的符号
// 帧号增加时符号向下滚动一行
func ReelSymbol(reel, row, frame int) rune {
	n := len(reelSymbols)
	return reelSymbols[((reel*2+row-frame)%n+n)%n]
}

func (h *Host) drawButton(b modules.ButtonState) {
	x0, y0 := h.toCell(b.X, b.Y)
	x1, y1 := h.toCell(b.X+b.Width, b.Y+b.Height)
	if x1-x0 < len(b.Label)+2 {
		x1 = x0 + len(b.Label) + 2
	}
	if y1-y0 < 3 {
		y1 = y0 + 3
	}

	style := tcell.StyleDefault.Foreground(tcell.ColorGreen)
	switch b.State {
	case components.UIDisabled:
		style = tcell.StyleDefault.Foreground(tcell.ColorGray).Dim(true)
	case components.UIHovered:
		style = style.Bold(true)
	case components.UIClicked:
		style = style.Reverse(true)
	}

	h.drawBox(x0, y0, x1-1, y1-1, style)
	h.drawText((x0+x1-len(b.Label))/2, (y0+y1-1)/2, b.Label, style)
}

func (h *Host) drawText(x, y int, s string, style tcell.Style) {
	for i, r := range []rune(s) {
		h.screen.SetContent(x+i, y, r, nil, style)
	}
}

func (h *Host) drawBox(x0, y0, x1, y1 int, style tcell.Style) {
	for x := x0 + 1; x < x1; x++ {
		h.screen.SetContent(x, y0, tcell.RuneHLine, nil, style)
		h.screen.SetContent(x, y1, tcell.RuneHLine, nil, style)
	}
	for y := y0 + 1; y < y1; y++ {
		h.screen.SetContent(x0, y, tcell.RuneVLine, nil, style)
		h.screen.SetContent(x1, y, tcell.RuneVLine, nil, style)
	}
	h.screen.SetContent(x0, y0, tcell.RuneULCorner, nil, style)
	h.screen.SetContent(x1, y0, tcell.RuneURCorner, nil, style)
	h.screen.SetContent(x0, y1, tcell.RuneLLCorner, nil, style)
	h.screen.SetContent(x1, y1, tcell.RuneLRCorner, nil, style)
}
