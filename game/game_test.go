package game

import (
	"math/rand"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock is a manually stepped clock for deterministic frames
type fakeClock struct {
	now float64
	dt  float64
}

func newFakeClock() *fakeClock {
	return &fakeClock{dt: 1.0 / 60.0}
}

func (c *fakeClock) Now() float64   { return c.now }
func (c *fakeClock) Delta() float64 { return c.dt }
func (c *fakeClock) advance()       { c.now += c.dt }

// scriptedInput holds whatever actions the test switches on
type scriptedInput struct {
	held map[Action]bool
}

func newScriptedInput() *scriptedInput {
	return &scriptedInput{held: make(map[Action]bool)}
}

func (s *scriptedInput) IsHeld(a Action) bool { return s.held[a] }

func (s *scriptedInput) hold(actions ...Action) {
	s.held = make(map[Action]bool)
	for _, a := range actions {
		s.held[a] = true
	}
}

func testRand() *rand.Rand {
	return rand.New(rand.NewSource(42))
}

func newTestGame(t *testing.T, mutate func(*Config)) (*Game, *fakeClock, *scriptedInput) {
	t.Helper()
	cfg := DefaultConfig()
	if mutate != nil {
		mutate(&cfg)
	}
	clock := newFakeClock()
	input := newScriptedInput()
	g, err := NewGame(cfg, zerolog.Nop(), clock, input, testRand())
	require.NoError(t, err)
	return g, clock, input
}

func TestNewGameRejectsEmptyFormation(t *testing.T) {
	cfg := DefaultConfig()
	cfg.UnitCount = 0
	_, err := NewGame(cfg, zerolog.Nop(), newFakeClock(), newScriptedInput(), testRand())
	require.ErrorIs(t, err, ErrNotCreated)
}

func TestGameUnitBulletHitsPlayerOnlyOnLaterFrame(t *testing.T) {
	g, clock, _ := newTestGame(t, func(cfg *Config) {
		cfg.UnitCount = 1
		cfg.UnitMaxColumns = 1
		cfg.FormationZOffset = 0
		cfg.FireLineFactor = 100 // the lone unit always has a firing solution
	})

	// Park the unit between the player and the start line so its aimed shot
	// flies straight at the player's slot.
	u := g.Units().Units()[0]
	u.Position.X = 0
	u.Position.Z = 20
	u.ZOffset = 0
	u.LastShoot = -10
	clock.now = 2.0

	g.Step()
	clock.advance()

	require.Equal(t, 1, g.Bullets().Len(), "unit should have fired")
	assert.Equal(t, 0, g.Stat().Taken, "fresh bullet must not land on its spawn frame")

	for i := 0; i < 200 && g.Stat().Taken == 0; i++ {
		g.Step()
		clock.advance()
	}
	assert.Equal(t, 1, g.Stat().Taken)
	assert.Less(t, g.Player().State.Health, DefaultUnitHealth)
}

func TestGameLevelTransitionDeploysNextWave(t *testing.T) {
	g, clock, _ := newTestGame(t, func(cfg *Config) {
		cfg.UnitCount = 2
		cfg.UnitMaxColumns = 2
	})
	firstModel := g.Level().Units.Model

	for _, u := range g.Units().Units() {
		u.Visible = false
	}
	g.Step()
	clock.advance()

	assert.Equal(t, 1, g.Level().Level)
	assert.Equal(t, 2, g.Units().Len(), "next wave redeploys at the configured size")
	assert.NotEqual(t, firstModel, g.Level().Units.Model)
	assert.Equal(t, uint64(0), g.Bullets().SpawnIndex(), "bullets in flight do not survive a transition")
	assert.False(t, g.GameOver())
}

func TestGameOverFreezesSimulation(t *testing.T) {
	g, clock, input := newTestGame(t, nil)

	g.Player().State.Health = 0
	g.Step()
	require.True(t, g.GameOver())

	input.hold(ActionFire)
	clock.now += 10
	bulletsBefore := g.Bullets().Len()
	scoreBefore := g.Stat().Score
	g.Step()

	assert.Equal(t, bulletsBefore, g.Bullets().Len())
	assert.Equal(t, scoreBefore, g.Stat().Score)
}

func TestGameRestartResetsSession(t *testing.T) {
	g, _, _ := newTestGame(t, nil)

	g.Player().State.Health = 0
	g.stat.Score = -42
	g.Step()
	require.True(t, g.GameOver())

	g.restart()

	assert.False(t, g.GameOver())
	assert.Equal(t, 0, g.Stat().Score)
	assert.Equal(t, 0, g.Level().Level)
	assert.Equal(t, DefaultUnitHealth, g.Player().State.Health)
	assert.Equal(t, DefaultConfig().UnitCount, g.Units().Len())
}
