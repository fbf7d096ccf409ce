package slot

import (
	"fmt"
	"time"
)

// fakeClock 虚拟时间计时器，按 (到期时间, 调度顺序) 依次触发
type fakeClock struct {
	now   time.Duration
	seq   int
	tasks []*fakeTask
}

type fakeTask struct {
	at       time.Duration
	seq      int
	fn       func()
	canceled bool
	fired    bool
}

func (t *fakeTask) Cancel() { t.canceled = true }

func (c *fakeClock) Schedule(d time.Duration, fn func()) CancelableHandle {
	c.seq++
	task := &fakeTask{at: c.now + d, seq: c.seq, fn: fn}
	c.tasks = append(c.tasks, task)
	return task
}

func (c *fakeClock) Advance(d time.Duration) {
	target := c.now + d
	for {
		var next *fakeTask
		for _, t := range c.tasks {
			if t.canceled || t.fired || t.at > target {
				continue
			}
			if next == nil || t.at < next.at || (t.at == next.at && t.seq < next.seq) {
				next = t
			}
		}
		if next == nil {
			break
		}
		c.now = next.at
		next.fired = true
		next.fn()
	}
	c.now = target
}

func (c *fakeClock) pending() int {
	n := 0
	for _, t := range c.tasks {
		if !t.canceled && !t.fired {
			n++
		}
	}
	return n
}

// callLog 记录所有协作方收到的调用及其虚拟时间
type callLog struct {
	clock *fakeClock
	calls []string
}

func (l *callLog) add(format string, args ...any) {
	l.calls = append(l.calls, fmt.Sprintf("%v %s", l.clock.now, fmt.Sprintf(format, args...)))
}

func (l *callLog) reset() { l.calls = nil }

type fakeReel struct {
	log      *callLog
	index    int
	onSettle func()
	// stops 自上次 Play 以来收到的停止命令数
	stops int
}

func (r *fakeReel) Play(loop bool) {
	r.stops = 0
	r.log.add("reel%d.Play(%v)", r.index, loop)
}

func (r *fakeReel) StopAfterDelay(d time.Duration) {
	r.stops++
	r.log.add("reel%d.StopAfterDelay(%v)", r.index, d)
}

func (r *fakeReel) StopAtFrame(frame int) {
	r.stops++
	r.log.add("reel%d.StopAtFrame(%d)", r.index, frame)
}

func (r *fakeReel) NotifyOnSettled(fn func()) { r.onSettle = fn }

type fakeRenderer struct {
	log   *callLog
	reels []*fakeReel
}

func (f *fakeRenderer) CreateReel(index int) ReelHandle {
	r := &fakeReel{log: f.log, index: index}
	f.reels = append(f.reels, r)
	return r
}

type fakeAudio struct {
	log *callLog
	err error
}

func (a *fakeAudio) PlayLooping(id string) error {
	a.log.add("audio.PlayLooping(%s)", id)
	return a.err
}

func (a *fakeAudio) PlayOnce(id string) error {
	a.log.add("audio.PlayOnce(%s)", id)
	return a.err
}

func (a *fakeAudio) Stop(id string) error {
	a.log.add("audio.Stop(%s)", id)
	return a.err
}

type fakeButton struct {
	log     *callLog
	label   string
	enabled bool
	handler func()
	// enabledAt 最近一次 SetEnabled(true) 的时间
	enabledAt time.Duration
	// disabledAt 最近一次 SetEnabled(false) 的时间
	disabledAt time.Duration
}

func (b *fakeButton) SetLabel(text string) {
	b.label = text
	b.log.add("button.SetLabel(%s)", text)
}

func (b *fakeButton) SetEnabled(enabled bool) {
	b.enabled = enabled
	if enabled {
		b.enabledAt = b.log.clock.now
	} else {
		b.disabledAt = b.log.clock.now
	}
	b.log.add("button.SetEnabled(%v)", enabled)
}

func (b *fakeButton) OnActivate(handler func()) { b.handler = handler }

// click 模拟一次真实点击：禁用的按钮不会产生激活事件
func (b *fakeButton) click() {
	if b.enabled && b.handler != nil {
		b.handler()
	}
}

type harness struct {
	clock    *fakeClock
	log      *callLog
	renderer *fakeRenderer
	audio    *fakeAudio
	button   *fakeButton
	ctrl     *Controller
}

func newHarness(cfg Config) *harness {
	clock := &fakeClock{}
	log := &callLog{clock: clock}
	h := &harness{
		clock:    clock,
		log:      log,
		renderer: &fakeRenderer{log: log},
		audio:    &fakeAudio{log: log},
		button:   &fakeButton{log: log},
	}
	ctrl, err := NewController(cfg, Host{
		Renderer: h.renderer,
		Timer:    clock,
		Audio:    h.audio,
		Button:   h.button,
	}, nil)
	if err != nil {
		panic(err)
	}
	h.ctrl = ctrl
	ctrl.Start()
	log.reset()
	return h
}
