package game

import "time"

// Clock provides monotonic game time. Cooldowns, hit windows, and the fall
// animation all read time through this seam so tests can step it manually.
type Clock interface {
	// Now returns seconds elapsed since some fixed origin
	Now() float64
	// Delta returns the duration of the last frame in seconds
	Delta() float64
}

// SystemClock is the wall-clock implementation used by the real game loop.
// Delta is fixed to the tick rate since ebiten calls Update at a steady TPS.
type SystemClock struct {
	start time.Time
	tick  float64
}

// NewSystemClock creates a clock anchored at construction time
func NewSystemClock(tps int) *SystemClock {
	return &SystemClock{start: time.Now(), tick: 1.0 / float64(tps)}
}

func (c *SystemClock) Now() float64 {
	return time.Since(c.start).Seconds()
}

func (c *SystemClock) Delta() float64 {
	return c.tick
}

// Action is one of the five logical player inputs
type Action int

const (
	ActionLeft Action = iota
	ActionRight
	ActionForward
	ActionBackward
	ActionFire
)

// Input answers "is this action currently held". The simulation treats it as
// a pure capability query; key mapping lives with the driver.
type Input interface {
	IsHeld(action Action) bool
}
