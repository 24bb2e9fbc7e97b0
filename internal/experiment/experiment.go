// Package experiment wraps the mechanics engine in the five lab setups:
// projectile, pendulum, collision, spring and incline.
//
// Each setup is driven the same way, one Step per animation tick, so the
// drag-inclusive body model and the drag-free projectile model sit behind
// one interface without being reconciled.
package experiment

import "github.com/san-kum/mechlab/internal/mechanics"

// Reading is one labelled quantity for a data panel.
type Reading struct {
	Name  string
	Value float64
	Unit  string
}

type Experiment interface {
	Name() string
	// Columns names the values returned by Sample, in order.
	Columns() []string
	Step(dt float64)
	Sample() []float64
	Readings() []Reading
	// Done reports that further steps change nothing.
	Done() bool
	// Reset rebuilds the initial setup.
	Reset() error
}

// Energetic experiments report total mechanical energy in joules.
type Energetic interface {
	Energy() float64
}

// Momentous experiments report total linear momentum.
type Momentous interface {
	Momentum() mechanics.Vec2
}

// Lab score points, capped at MaxScore per run.
const (
	MaxScore       = 100
	ScoreIncline   = 10 // forces worked out
	ScoreLanding   = 20 // projectile reached the ground
	ScoreCollision = 15 // per resolved collision
)

func scoreReading(points int) Reading {
	return Reading{"Score", float64(min(points, MaxScore)), "pts"}
}
