package game

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// Scene represents a screen of the application.
// Each scene has its own update and rendering logic.
type Scene interface {
	// Update updates the scene logic.
	// dt is the time elapsed since the last update.
	Update(dt time.Duration)

	// Draw renders the scene to the provided screen.
	Draw(screen *ebiten.Image)
}
