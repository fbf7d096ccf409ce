package systems

import (
	"testing"

	"github.com/decker502/slotreel/pkg/components"
	"github.com/decker502/slotreel/pkg/ecs"
	"github.com/decker502/slotreel/pkg/entities"
)

func newTestButton(t *testing.T) (*ecs.EntityManager, *ButtonSystem, *ButtonView, *int) {
	t.Helper()
	em := ecs.NewEntityManager()
	bs := NewButtonSystem(em)
	id := entities.NewSlotButton(em, 100, 200, 150, 50, "Spin")
	view := bs.View(id)
	clicks := 0
	view.OnActivate(func() { clicks++ })
	return em, bs, view, &clicks
}

func buttonOf(t *testing.T, em *ecs.EntityManager) *components.ButtonComponent {
	t.Helper()
	ids := ecs.GetEntitiesWith1[*components.ButtonComponent](em)
	if len(ids) != 1 {
		t.Fatalf("expected 1 button, got %d", len(ids))
	}
	b, _ := ecs.GetComponent[*components.ButtonComponent](em, ids[0])
	return b
}

func TestButtonSystemPointer(t *testing.T) {
	tests := []struct {
		name       string
		input      PointerInput
		wantState  components.UIState
		wantClicks int
	}{
		{"outside", PointerInput{X: 10, Y: 10}, components.UINormal, 0},
		{"hover", PointerInput{X: 120, Y: 220}, components.UIHovered, 0},
		{"pressed", PointerInput{X: 120, Y: 220, Pressed: true}, components.UIClicked, 0},
		{"released inside", PointerInput{X: 120, Y: 220, Released: true}, components.UIHovered, 1},
		{"released outside", PointerInput{X: 10, Y: 220, Released: true}, components.UINormal, 0},
		{"edge is inside", PointerInput{X: 250, Y: 250, Released: true}, components.UIHovered, 1},
		{"activate key", PointerInput{Activate: true}, components.UINormal, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			em, bs, _, clicks := newTestButton(t)
			bs.Update(tt.input)
			if got := buttonOf(t, em).State; got != tt.wantState {
				t.Errorf("state = %s, want %s", got, tt.wantState)
			}
			if *clicks != tt.wantClicks {
				t.Errorf("clicks = %d, want %d", *clicks, tt.wantClicks)
			}
		})
	}
}

func TestButtonSystemDisabledIgnoresInput(t *testing.T) {
	em, bs, view, clicks := newTestButton(t)
	view.SetEnabled(false)

	bs.Update(PointerInput{X: 120, Y: 220, Released: true, Activate: true})
	if *clicks != 0 {
		t.Errorf("disabled button clicked %d times", *clicks)
	}
	if got := buttonOf(t, em).State; got != components.UIDisabled {
		t.Errorf("state = %s, want Disabled", got)
	}

	view.SetEnabled(true)
	bs.Update(PointerInput{X: 120, Y: 220, Released: true})
	if *clicks != 1 {
		t.Errorf("re-enabled button clicks = %d, want 1", *clicks)
	}
}

func TestButtonSystemSingleClickPerFrame(t *testing.T) {
	_, bs, _, clicks := newTestButton(t)
	bs.Update(PointerInput{X: 120, Y: 220, Released: true, Activate: true})
	if *clicks != 1 {
		t.Errorf("clicks = %d, want 1", *clicks)
	}
}

func TestButtonViewSetLabel(t *testing.T) {
	em, _, view, _ := newTestButton(t)
	view.SetLabel("Stop")
	if got := buttonOf(t, em).Label; got != "Stop" {
		t.Errorf("label = %q, want Stop", got)
	}
}
