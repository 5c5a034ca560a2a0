package game

import (
	"math"
	"math/rand"
)

// MovementDirection is a bitmask of active drift directions
type MovementDirection uint8

const (
	MovementDirectionNone  MovementDirection = 0x00
	MovementDirectionLeft  MovementDirection = 0x01
	MovementDirectionRight MovementDirection = 0x02
	MovementDirectionUp    MovementDirection = 0x04
	MovementDirectionDown  MovementDirection = 0x08
)

const (
	movementHorizontalMask = MovementDirectionLeft | MovementDirectionRight
	movementVerticalMask   = MovementDirectionUp | MovementDirectionDown
)

// Oscillator step speeds are redrawn from this range on every bound flip
const (
	movementStepMin = 0.01
	movementStepMax = 0.05
)

// Damaged entities never stop drifting entirely; energy scales the step
// linearly between this floor and full speed.
const movementEnergyFloor = 0.25

// MovementAction is the per-entity oscillator state: a smooth back-and-forth
// drift on X and Y with banking rotation derived from the current offset.
type MovementAction struct {
	Direction MovementDirection

	StepX float64
	StepY float64

	MaxX float64
	MaxY float64

	X float64
	Y float64

	RotateX    float64
	RotateY    float64
	RotateZ    float64
	MaxRotateX float64
	MaxRotateY float64
	MaxRotateZ float64

	Angle    float64
	MaxAngle float64

	rng *rand.Rand
}

// NewMovementAction creates an oscillator with a random initial direction
// and step speed. The RNG is owned by the caller so runs are reproducible.
func NewMovementAction(rng *rand.Rand) *MovementAction {
	action := &MovementAction{
		MaxX:       1.0,
		MaxY:       1.0,
		MaxRotateX: 10.0,
		MaxRotateZ: 25.0,
		MaxAngle:   10.0,
		rng:        rng,
	}
	if rng.Intn(2) == 0 {
		action.Direction |= MovementDirectionLeft
	} else {
		action.Direction |= MovementDirectionRight
	}
	if rng.Intn(2) == 0 {
		action.Direction |= MovementDirectionUp
	} else {
		action.Direction |= MovementDirectionDown
	}
	action.RandomizeSpeed()
	return action
}

// RandomizeSpeed redraws both axis step speeds from the fixed range
func (a *MovementAction) RandomizeSpeed() {
	if a == nil {
		return
	}
	a.StepX = randFloatInRange(a.rng, movementStepMin, movementStepMax)
	a.StepY = randFloatInRange(a.rng, movementStepMin, movementStepMax)
}

// Iterate advances one frame of oscillation. energyFraction in [0,1] scales
// the step so damaged entities drift more sluggishly. Offsets never exceed
// their axis bound; reaching a bound snaps to it, flips the direction bit,
// and redraws a fresh random step speed.
func (a *MovementAction) Iterate(energyFraction float64) {
	if a == nil {
		return
	}
	scale := movementEnergyFloor + (1.0-movementEnergyFloor)*clamp(energyFraction, 0, 1)

	if a.Direction&movementHorizontalMask != 0 {
		sign := 1.0
		if a.Direction&MovementDirectionLeft != 0 {
			sign = -1.0
		}
		a.X += a.StepX * scale * sign
		if math.Abs(a.X) >= a.MaxX {
			if a.X > 0 {
				a.X = a.MaxX
			} else {
				a.X = -a.MaxX
			}
			if a.Direction&MovementDirectionLeft != 0 {
				a.Direction &^= MovementDirectionLeft
				a.Direction |= MovementDirectionRight
			} else {
				a.Direction &^= MovementDirectionRight
				a.Direction |= MovementDirectionLeft
			}
			a.RandomizeSpeed()
		}
	}

	if a.Direction&movementVerticalMask != 0 {
		sign := 1.0
		if a.Direction&MovementDirectionUp != 0 {
			sign = -1.0
		}
		a.Y += a.StepY * scale * sign
		if math.Abs(a.Y) >= a.MaxY {
			if a.Y > 0 {
				a.Y = a.MaxY
			} else {
				a.Y = -a.MaxY
			}
			if a.Direction&MovementDirectionUp != 0 {
				a.Direction &^= MovementDirectionUp
				a.Direction |= MovementDirectionDown
			} else {
				a.Direction &^= MovementDirectionDown
				a.Direction |= MovementDirectionUp
			}
			a.RandomizeSpeed()
		}
	}

	// Banking follows the offset ratio: zero at center, peak at the bounds.
	if a.MaxX > 0 {
		ratio := clamp(a.X/a.MaxX, -1, 1)
		a.RotateZ = a.MaxRotateZ * ratio
		a.Angle = a.MaxAngle * ratio
	}
	if a.MaxY > 0 {
		a.RotateX = a.MaxRotateX * clamp(a.Y/a.MaxY, -1, 1)
	}
}

// randFloatInRange returns a uniform float in [min, max)
func randFloatInRange(rng *rand.Rand, min, max float64) float64 {
	return min + rng.Float64()*(max-min)
}
