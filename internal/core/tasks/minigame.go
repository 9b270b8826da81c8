package tasks

import "github.com/skeldnet/skeld/internal/core/geometry"

// Calibrator is a tap-timing minigame: the player taps while a moving
// cursor overlaps a convex target wedge, a fixed number of times.
type Calibrator struct {
	Target geometry.Polygon
	Steps  int

	done int
}

var _ Minigame = (*Calibrator)(nil)

// Begin resets the minigame and its parent task.
func (m *Calibrator) Begin(_ State, info *Info) {
	m.done = 0
	info.Completion = 0
}

// Tap attempts one calibration step with the cursor at its current
// position. It returns whether the tap landed inside the target and the
// resulting completion rate for the parent task.
func (m *Calibrator) Tap(cursor geometry.Circle) (bool, float32, error) {
	hit, err := geometry.Collide(m.Target, cursor)
	if err != nil {
		return false, m.progress(), err
	}
	if !hit {
		return false, m.progress(), nil
	}

	if m.done < m.Steps {
		m.done++
	}
	return true, m.progress(), nil
}

func (m *Calibrator) progress() float32 {
	if m.Steps == 0 {
		return 1
	}
	return float32(m.done) / float32(m.Steps)
}

// Upload is a pure timer minigame with no interaction beyond waiting.
type Upload struct {
	progress float32
}

var _ Minigame = (*Upload)(nil)

// Begin resets the transfer.
func (m *Upload) Begin(_ State, info *Info) {
	m.progress = 0
	info.Completion = 0
}

// Advance moves the transfer forward and returns the new completion rate.
func (m *Upload) Advance(fraction float32) float32 {
	m.progress += fraction
	if m.progress > 1 {
		m.progress = 1
	}
	return m.progress
}
