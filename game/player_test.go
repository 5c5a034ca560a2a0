package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPlayer(t *testing.T, clock Clock, input Input) *Player {
	t.Helper()
	cfg := DefaultConfig()
	p := NewPlayer(cfg.PlayerMaxX, cfg.PlayerMaxZ, cfg.PlayerOffsetZ,
		testModel(t, ModelTranstellar), clock, input, testRand())
	require.NotNil(t, p)
	return p
}

func TestNewPlayerRequiresModel(t *testing.T) {
	assert.Nil(t, NewPlayer(20, 20, 30, nil, newFakeClock(), newScriptedInput(), testRand()))
}

func TestPlayerPositionClamps(t *testing.T) {
	clock := newFakeClock()
	input := newScriptedInput()
	p := newTestPlayer(t, clock, input)
	level := FirstLevel(DefaultConfig(), 0)
	stat := NewGameStat()

	input.hold(ActionRight)
	for i := 0; i < 500; i++ {
		p.Update(nil, level, stat)
		clock.advance()
	}
	assert.Equal(t, p.Position.MaxX, p.Position.X)

	input.hold(ActionForward)
	for i := 0; i < 500; i++ {
		p.Update(nil, level, stat)
		clock.advance()
	}
	assert.Equal(t, -p.Position.MaxZ, p.Position.Z)

	input.hold(ActionBackward)
	for i := 0; i < 500; i++ {
		p.Update(nil, level, stat)
		clock.advance()
	}
	assert.Equal(t, 0.0, p.Position.Z, "the ship never retreats past the start line")
}

func TestPlayerAccelerationRampAndReset(t *testing.T) {
	clock := newFakeClock()
	input := newScriptedInput()
	p := newTestPlayer(t, clock, input)
	level := FirstLevel(DefaultConfig(), 0)
	stat := NewGameStat()

	input.hold(ActionLeft)
	p.Update(nil, level, stat)
	assert.InDelta(t, accelerationInit, p.Movement.Acceleration, 1e-12,
		"a fresh direction starts at the initial acceleration")

	clock.advance()
	p.Update(nil, level, stat)
	assert.InDelta(t, accelerationInit+accelerationStep, p.Movement.Acceleration, 1e-12)

	// switching direction resets the ramp
	input.hold(ActionRight)
	clock.advance()
	p.Update(nil, level, stat)
	assert.InDelta(t, accelerationInit, p.Movement.Acceleration, 1e-12)

	// a pause longer than the hold window also resets it
	clock.advance()
	p.Update(nil, level, stat)
	clock.now += accelerationDelay + 0.1
	p.Update(nil, level, stat)
	assert.InDelta(t, accelerationInit, p.Movement.Acceleration, 1e-12)
}

func TestPlayerAccelerationCapAndEnergyScale(t *testing.T) {
	clock := newFakeClock()
	input := newScriptedInput()
	p := newTestPlayer(t, clock, input)
	level := FirstLevel(DefaultConfig(), 0)
	stat := NewGameStat()

	input.hold(ActionLeft)
	for i := 0; i < 100; i++ {
		p.Update(nil, level, stat)
		clock.advance()
	}
	assert.Equal(t, accelerationMax, p.Movement.Acceleration)

	// at half energy the ramp grows half as fast
	drained := newTestPlayer(t, newFakeClock(), input)
	drained.State.Energy = 50
	drainedClock := newFakeClock()
	drained.clock = drainedClock
	drained.Update(nil, level, stat)
	drainedClock.advance()
	drained.Update(nil, level, stat)
	assert.InDelta(t, accelerationInit+accelerationStep*0.5, drained.Movement.Acceleration, 1e-12)
}

func TestPlayerBankingRelaxesWhenIdle(t *testing.T) {
	clock := newFakeClock()
	input := newScriptedInput()
	p := newTestPlayer(t, clock, input)
	level := FirstLevel(DefaultConfig(), 0)
	stat := NewGameStat()

	p.Visual.RotateZ = 5.0
	p.Visual.RotateX = 0.5

	p.Update(nil, level, stat)
	assert.InDelta(t, 3.0, p.Visual.RotateZ, 1e-12)
	assert.InDelta(t, 0.0, p.Visual.RotateX, 1e-12, "relaxation never overshoots zero")

	p.Visual.RotateZ = -1.0
	p.Update(nil, level, stat)
	assert.InDelta(t, 0.0, p.Visual.RotateZ, 1e-12)
}

func TestPlayerBankingClampsWhileSteering(t *testing.T) {
	clock := newFakeClock()
	input := newScriptedInput()
	p := newTestPlayer(t, clock, input)
	level := FirstLevel(DefaultConfig(), 0)
	stat := NewGameStat()

	input.hold(ActionRight)
	for i := 0; i < 100; i++ {
		p.Update(nil, level, stat)
		clock.advance()
	}
	assert.Equal(t, playerMaxRotateZ, p.Visual.RotateZ)
}

func TestPlayerFireCooldown(t *testing.T) {
	clock := newFakeClock()
	input := newScriptedInput()
	p := newTestPlayer(t, clock, input)
	level := FirstLevel(DefaultConfig(), 0)
	stat := NewGameStat()
	bullets := newTestBulletList(clock)

	input.hold(ActionFire)
	p.Update(bullets, level, stat)
	assert.Equal(t, 0, bullets.Len(), "list spawn time starts at construction")

	clock.now += level.Player.BulletDelaySpawn + 0.01
	p.Update(bullets, level, stat)
	require.Equal(t, 1, bullets.Len())

	b := bullets.Bullets()[0]
	assert.Equal(t, BulletOwnerPlayer, b.Owner)
	assert.Equal(t, BulletDirectionUp, b.Movement.Direction)
	assert.Equal(t, p.EffectivePosition(), b.Position)
	assert.Equal(t, level.Player.BulletInitSpeed, b.Movement.Speed)
	assert.NotNil(t, b.Trail)
	assert.Equal(t, -statShootCost, stat.Score)

	// still inside the cooldown window
	clock.advance()
	p.Update(bullets, level, stat)
	assert.Equal(t, 1, bullets.Len())
}

func TestPlayerCollisionFiltersOwnerAndSpawnIndex(t *testing.T) {
	clock := newFakeClock()
	input := newScriptedInput()
	p := newTestPlayer(t, clock, input)
	stat := NewGameStat()
	bullets := newTestBulletList(clock)

	params := BulletParams{DamageHealth: 5, DamageEnergy: 10}
	at := p.EffectivePosition()

	// own bullet overlapping the ship is harmless
	bullets.Insert(NewStraightBullet(BulletDirectionUp, at, NewBulletSize(1, 1, 1), params, BulletOwnerPlayer))
	// enemy bullet from an earlier frame
	bullets.Insert(NewAimedBullet(Vec3{at.X, 0, at.Z - 10}, NewBulletSize(1, 1, 1), params, BulletOwnerUnit, at.X, at.Z))
	bullets.Bullets()[1].Position = at
	snapshot := bullets.SpawnIndex()
	// enemy bullet spawned this frame, after the snapshot
	bullets.Insert(NewAimedBullet(at, NewBulletSize(1, 1, 1), params, BulletOwnerUnit, at.X, at.Z))

	p.CheckCollision(bullets, stat, snapshot)

	assert.Equal(t, 1, stat.Taken, "only the pre-snapshot enemy bullet lands")
	assert.Equal(t, 95.0, p.State.Health)
	assert.Equal(t, 2, bullets.Len(), "the landed bullet is compacted away")
}

func TestIsOnFireLine(t *testing.T) {
	clock := newFakeClock()
	p := newTestPlayer(t, clock, newScriptedInput())
	u := newTestUnit(t)
	u.Action.X = 0 // pin the oscillator offset

	u.Position.X = 4
	assert.True(t, IsOnFireLine(u, p, 6.0))

	u.Position.X = 7
	assert.False(t, IsOnFireLine(u, p, 6.0))

	assert.False(t, IsOnFireLine(nil, p, 6.0))
	assert.False(t, IsOnFireLine(u, nil, 6.0))
}
