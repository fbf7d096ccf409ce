package slot

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// DefaultReelCount 默认转轴数量
const DefaultReelCount = 5

// Config 控制器配置
type Config struct {
	Timing       Timing
	ReelCount    int
	SettledFrame int
	// BackgroundTrack 启动后循环播放的背景音乐（为空则不播放）
	BackgroundTrack string
	// SpinTrack 每次旋转播放一次的转动音效
	SpinTrack string
}

// DefaultConfig 返回默认配置
func DefaultConfig() Config {
	return Config{
		Timing:          DefaultTiming(),
		ReelCount:       DefaultReelCount,
		SettledFrame:    DefaultSettledFrame,
		BackgroundTrack: "BG_Music",
		SpinTrack:       "Spin_Music",
	}
}

// Controller 老虎机控制器
//
// 所有事件都经过 dispatch 排队，按 FIFO 顺序在单一逻辑线程内处理；
// Controller 是机器状态以及每条转轴命令流的唯一修改者。
type Controller struct {
	cfg     Config
	machine Machine
	reels   []*Reel

	timer  Timer
	audio  Audio
	button ButtonView
	logger *zap.Logger

	autoStop    CancelableHandle
	queue       []Event
	dispatching bool
	unavailable []string
}

// NewController 创建控制器并创建全部转轴
//
// 计时器缺失时返回 ErrCollaboratorUnavailable；渲染、音频、按钮缺失时
// 使用空实现代替，并在此处记录一次错误日志。
func NewController(cfg Config, host Host, logger *zap.Logger) (*Controller, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.ReelCount <= 0 {
		return nil, fmt.Errorf("slot: reel count must be positive, got %d", cfg.ReelCount)
	}
	if host.Timer == nil {
		return nil, &UnavailableError{Names: []string{"timer"}}
	}

	c := &Controller{
		cfg:     cfg,
		machine: NewMachine(cfg.Timing),
		timer:   host.Timer,
		audio:   host.Audio,
		button:  host.Button,
		logger:  logger.Named("slot"),
	}

	renderer := host.Renderer
	if renderer == nil {
		renderer = nopRenderer{}
		c.unavailable = append(c.unavailable, "renderer")
	}
	if c.audio == nil {
		c.audio = nopAudio{}
		c.unavailable = append(c.unavailable, "audio")
	}
	if c.button == nil {
		c.button = nopButton{}
		c.unavailable = append(c.unavailable, "button")
	}
	if len(c.unavailable) > 0 {
		err := &UnavailableError{Names: c.unavailable}
		c.logger.Error("running with missing collaborators", zap.Error(err))
	}

	c.reels = make([]*Reel, cfg.ReelCount)
	for i := range c.reels {
		c.reels[i] = newReel(i, cfg.SettledFrame, renderer.CreateReel(i))
	}

	return c, nil
}

// Start 注册按钮回调，同步按钮显示并开始播放背景音乐
func (c *Controller) Start() {
	c.button.OnActivate(c.OnActivate)
	c.button.SetLabel(c.machine.State.Label())
	c.button.SetEnabled(c.machine.ButtonEnabled)

	if c.cfg.BackgroundTrack != "" {
		c.audioCall("play looping", c.cfg.BackgroundTrack, c.audio.PlayLooping)
	}
	c.logger.Info("slot machine started", zap.Int("reels", len(c.reels)))
}

// OnActivate 按钮激活事件
func (c *Controller) OnActivate() {
	c.dispatch(Event{Kind: EventActivate})
}

// State 当前状态
func (c *Controller) State() State { return c.machine.State }

// Label 按钮当前文字
func (c *Controller) Label() string { return c.machine.State.Label() }

// ButtonEnabled 按钮当前是否可用
func (c *Controller) ButtonEnabled() bool { return c.machine.ButtonEnabled }

// AutoStopPending 是否有挂起的自动停止计时器
func (c *Controller) AutoStopPending() bool { return c.autoStop != nil }

// Cycle 最近一次旋转的轮次
func (c *Controller) Cycle() uint64 { return c.machine.Cycle }

// Reels 按从左到右顺序返回转轴
func (c *Controller) Reels() []*Reel { return c.reels }

// Unavailable 启动时缺失的协作方名称
func (c *Controller) Unavailable() []string { return c.unavailable }

func (c *Controller) dispatch(ev Event) {
	c.queue = append(c.queue, ev)
	if c.dispatching {
		return
	}

	c.dispatching = true
	defer func() { c.dispatching = false }()

	for len(c.queue) > 0 {
		next := c.queue[0]
		c.queue = c.queue[1:]
		c.apply(next)
	}
}

func (c *Controller) apply(ev Event) {
	next, cmds, err := c.machine.Handle(ev)
	if err != nil {
		var te *TransitionError
		if errors.As(err, &te) {
			c.logger.Debug("event ignored",
				zap.Stringer("state", te.From),
				zap.Stringer("event", te.Event),
				zap.String("reason", te.Reason))
		}
		return
	}

	from := c.machine.State
	c.machine = next
	for _, cmd := range cmds {
		c.execute(cmd)
	}

	if from != next.State {
		c.logger.Debug("state changed",
			zap.Stringer("from", from),
			zap.Stringer("to", next.State),
			zap.Stringer("event", ev.Kind),
			zap.Uint64("cycle", next.Cycle))
	}
}

func (c *Controller) execute(cmd Command) {
	switch cmd.Kind {
	case CmdDisableButton:
		c.button.SetEnabled(false)

	case CmdEnableButton:
		c.button.SetEnabled(true)

	case CmdScheduleButtonEnable:
		// 独立于状态机运行，从不取消
		c.timer.Schedule(cmd.Delay, func() {
			c.dispatch(Event{Kind: EventButtonWindowElapsed})
		})

	case CmdStartReels:
		for _, r := range c.reels {
			r.StartSpinning()
		}

	case CmdPlaySpinAudio:
		c.audioCall("play", c.cfg.SpinTrack, c.audio.PlayOnce)

	case CmdStopSpinAudio:
		c.audioCall("stop", c.cfg.SpinTrack, c.audio.Stop)

	case CmdArmAutoStop:
		if c.autoStop != nil {
			c.autoStop.Cancel()
		}
		cycle := cmd.Cycle
		c.autoStop = c.timer.Schedule(cmd.Delay, func() {
			c.dispatch(Event{Kind: EventAutoStopFired, Cycle: cycle})
		})

	case CmdDisarmAutoStop:
		if c.autoStop != nil {
			c.autoStop.Cancel()
			c.autoStop = nil
		}

	case CmdStopReelsTogether:
		for _, r := range c.reels {
			r.StopAtSettledFrame()
		}

	case CmdStopReelsStaggered:
		for i, r := range c.reels {
			r.StopAfterDelay(StaggerDelay(i, cmd.Delay))
		}

	case CmdSetLabel:
		c.button.SetLabel(cmd.Label)

	default:
		c.logger.Warn("unknown command", zap.Stringer("command", cmd.Kind))
	}
}

func (c *Controller) audioCall(op, trackID string, fn func(string) error) {
	if trackID == "" {
		return
	}
	if err := fn(trackID); err != nil {
		c.logger.Warn("audio command failed",
			zap.String("op", op),
			zap.String("track", trackID),
			zap.Error(err))
	}
}
