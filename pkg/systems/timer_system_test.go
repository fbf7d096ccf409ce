package systems

import (
	"testing"
	"time"

	"github.com/decker502/slotreel/pkg/ecs"
	"github.com/google/go-cmp/cmp"
)

func TestTimerSystemFiresInDeadlineOrder(t *testing.T) {
	em := ecs.NewEntityManager()
	ts := NewTimerSystem(em)

	var fired []string
	record := func(name string) func() {
		return func() { fired = append(fired, name+"@"+ts.Now().String()) }
	}

	ts.Schedule(2*time.Second, record("b"))
	ts.Schedule(time.Second, record("a"))
	ts.Schedule(2*time.Second, record("c")) // 与 b 同时到期，按调度顺序

	ts.Update(1500 * time.Millisecond)
	ts.Update(time.Second)

	want := []string{"a@1s", "b@2s", "c@2s"}
	if diff := cmp.Diff(want, fired); diff != "" {
		t.Errorf("fire order mismatch (-want +got):\n%s", diff)
	}
	if ts.Now() != 2500*time.Millisecond {
		t.Errorf("Now() = %v, want 2.5s", ts.Now())
	}
}

func TestTimerSystemSingleLargeStep(t *testing.T) {
	em := ecs.NewEntityManager()
	ts := NewTimerSystem(em)

	var at []time.Duration
	ts.Schedule(time.Second, func() {
		at = append(at, ts.Now())
		// 回调中再调度的计时器在同一次推进中按时触发
		ts.Schedule(500*time.Millisecond, func() { at = append(at, ts.Now()) })
	})

	ts.Update(10 * time.Second)

	want := []time.Duration{time.Second, 1500 * time.Millisecond}
	if diff := cmp.Diff(want, at); diff != "" {
		t.Errorf("fire times mismatch (-want +got):\n%s", diff)
	}
}

func TestTimerSystemCancel(t *testing.T) {
	em := ecs.NewEntityManager()
	ts := NewTimerSystem(em)

	fired := false
	h := ts.Schedule(time.Second, func() { fired = true })
	if ts.Pending() != 1 {
		t.Fatalf("Pending() = %d, want 1", ts.Pending())
	}

	h.Cancel()
	h.Cancel() // 重复取消为空操作
	ts.Update(5 * time.Second)

	if fired {
		t.Error("canceled timer fired")
	}
	if ts.Pending() != 0 {
		t.Errorf("Pending() = %d, want 0", ts.Pending())
	}

	em.RemoveMarkedEntities()
	if em.EntityCount() != 0 {
		t.Errorf("timer entity not destroyed, %d entities left", em.EntityCount())
	}
}

func TestTimerSystemCancelFromEarlierCallback(t *testing.T) {
	em := ecs.NewEntityManager()
	ts := NewTimerSystem(em)

	fired := false
	late := ts.Schedule(2*time.Second, func() { fired = true })
	ts.Schedule(time.Second, func() { late.Cancel() })

	// 两个计时器在同一次推进中到期，先到期的回调取消了后者
	ts.Update(3 * time.Second)
	if fired {
		t.Error("timer canceled by an earlier callback still fired")
	}
}

func TestTimerSystemCancelAfterFire(t *testing.T) {
	em := ecs.NewEntityManager()
	ts := NewTimerSystem(em)

	count := 0
	h := ts.Schedule(time.Second, func() { count++ })
	ts.Update(time.Second)
	h.Cancel()
	ts.Update(time.Second)

	if count != 1 {
		t.Errorf("callback ran %d times, want 1", count)
	}
}
