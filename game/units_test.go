package game

import (
	"math"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testModel(t *testing.T, id ModelID) *ShipModel {
	t.Helper()
	m := NewModelRegistry(zerolog.Nop()).Model(id)
	require.NotNil(t, m)
	return m
}

func newTestUnit(t *testing.T) *Unit {
	t.Helper()
	u := NewUnit(UnitTypeEnemy, testModel(t, ModelRedFighter), testRand())
	require.NotNil(t, u)
	return u
}

func TestNewUnitListGridLayout(t *testing.T) {
	model := testModel(t, ModelInterstellarRunner)
	list := NewUnitList(20, model, 10, 40.0, 40.0, testRand(), zerolog.Nop())
	require.NotNil(t, list)
	require.Equal(t, 20, list.Len())

	fullWidth := DefaultUnitWidth + UnitSpaceHorizontal
	fullHeight := DefaultUnitHeight + UnitSpaceVertical
	midX := fullWidth*10/2 - fullWidth/2

	first := list.Units()[0]
	assert.Equal(t, 0, first.Position.Col)
	assert.Equal(t, 0, first.Position.Ln)
	assert.InDelta(t, -midX, first.Position.X, 1e-12)
	assert.InDelta(t, -40.0, first.Position.Z, 1e-12)
	assert.Equal(t, 40.0, first.ZOffset)

	lastOfLine := list.Units()[9]
	assert.Equal(t, 9, lastOfLine.Position.Col)
	assert.InDelta(t, midX, lastOfLine.Position.X, 1e-12)

	secondLine := list.Units()[10]
	assert.Equal(t, 0, secondLine.Position.Col)
	assert.Equal(t, 1, secondLine.Position.Ln)
	assert.InDelta(t, fullHeight-40.0, secondLine.Position.Z, 1e-12)
}

func TestNewUnitListRejectsBadInput(t *testing.T) {
	model := testModel(t, ModelWarship)
	assert.Nil(t, NewUnitList(0, model, 10, 40, 40, testRand(), zerolog.Nop()))
	assert.Nil(t, NewUnitList(10, model, 0, 40, 40, testRand(), zerolog.Nop()))
	assert.Nil(t, NewUnitList(10, nil, 10, 40, 40, testRand(), zerolog.Nop()))
}

func TestUnitStateDamageClampsAtZero(t *testing.T) {
	s := NewUnitState()
	s.ApplyDamage(BulletParams{DamageHealth: 30, DamageEnergy: 150}, 5.0)
	assert.Equal(t, 70.0, s.Health)
	assert.Equal(t, 0.0, s.Energy)
	assert.Equal(t, 5.0, s.HitTime)

	s.ApplyDamage(BulletParams{DamageHealth: 200}, 6.0)
	assert.Equal(t, 0.0, s.Health)
}

func TestUnitStateHitFlashWindow(t *testing.T) {
	s := NewUnitState()
	s.ApplyDamage(BulletParams{DamageHealth: 1}, 5.0)
	assert.True(t, s.IsHit(5.05))
	assert.False(t, s.IsHit(5.2))

	// a never-hit entity is not flashing
	fresh := NewUnitState()
	assert.False(t, fresh.IsHit(5.0))
}

func TestUnitGlideInRelaxesToZero(t *testing.T) {
	u := newTestUnit(t)
	u.ZOffset = 2.0
	for i := 0; i < 200 && u.ZOffset > 0; i++ {
		prev := u.ZOffset
		u.Update(60.0, 1.0/60.0)
		assert.Less(t, u.ZOffset, prev)
	}
	assert.Equal(t, 0.0, u.ZOffset)
	assert.InDelta(t, u.Position.Z, u.EffectivePosition().Z, 1e-12)
}

func TestUnitCollisionAppliesDamageAndStartsExplosion(t *testing.T) {
	clock := newFakeClock()
	u := newTestUnit(t)
	stat := NewGameStat()
	list := newTestBulletList(clock)

	b := NewStraightBullet(BulletDirectionUp, u.EffectivePosition(), NewBulletSize(1, 1, 1),
		BulletParams{DamageHealth: 20, DamageEnergy: 10}, BulletOwnerPlayer)
	list.Insert(b)

	u.CheckCollision(list, stat, 1.0)

	assert.False(t, list.Bullets()[0].Alive)
	assert.Equal(t, 80.0, u.State.Health)
	assert.Equal(t, 90.0, u.State.Energy)
	assert.Equal(t, 1, stat.Hits)
	assert.Nil(t, u.Explosion, "a surviving unit does not explode")

	kill := NewStraightBullet(BulletDirectionUp, u.EffectivePosition(), NewBulletSize(1, 1, 1),
		BulletParams{DamageHealth: 200}, BulletOwnerPlayer)
	list.Insert(kill)
	u.CheckCollision(list, stat, 1.1)

	assert.Equal(t, 0.0, u.State.Health)
	require.NotNil(t, u.Explosion)
	assert.True(t, u.Explosion.Active)
}

func TestUnitIgnoresEnemyBullets(t *testing.T) {
	clock := newFakeClock()
	u := newTestUnit(t)
	stat := NewGameStat()
	list := newTestBulletList(clock)

	list.Insert(NewStraightBullet(BulletDirectionDown, u.EffectivePosition(), NewBulletSize(1, 1, 1),
		BulletParams{DamageHealth: 20}, BulletOwnerUnit))

	u.CheckCollision(list, stat, 1.0)

	assert.True(t, list.Bullets()[0].Alive)
	assert.Equal(t, DefaultUnitHealth, u.State.Health)
	assert.Equal(t, 0, stat.Hits)
}

func TestDestroyedUnitFallsAndGoesInvisible(t *testing.T) {
	u := newTestUnit(t)
	u.State.Health = 0
	u.Explosion = NewExplosionState()
	startY := u.Position.Y

	u.Update(10.0, 1.0/60.0)
	assert.Less(t, u.Position.Y, startY)
	assert.Negative(t, u.Position.Z)

	for i := 0; i < 10000 && u.Visible; i++ {
		u.Update(10.0, 1.0/60.0)
	}
	require.False(t, u.Visible)
	assert.Greater(t, math.Abs(u.EffectivePosition().Z), 10.0)

	// invisible units are inert
	frozen := *u
	u.Update(10.0, 1.0/60.0)
	assert.Equal(t, frozen.Position, u.Position)
}

func TestRemoveInvisibleCompactsWave(t *testing.T) {
	list := NewUnitList(4, testModel(t, ModelDualStriker), 2, 40, 0, testRand(), zerolog.Nop())
	require.NotNil(t, list)

	list.Units()[1].Visible = false
	list.RemoveInvisible()

	assert.Equal(t, 3, list.Len())
	for _, u := range list.Units() {
		assert.True(t, u.Visible)
	}
}

func TestIsAbleToFireFrontLineOnly(t *testing.T) {
	list := NewUnitList(4, testModel(t, ModelGalactixRacer), 2, 40, 0, testRand(), zerolog.Nop())
	require.NotNil(t, list)

	front := list.Units()[0]  // col 0, line 0
	back := list.Units()[2]   // col 0, line 1
	other := list.Units()[1]  // col 1, line 0

	assert.True(t, list.IsAbleToFire(front))
	assert.True(t, list.IsAbleToFire(other))
	assert.False(t, list.IsAbleToFire(back))

	front.Visible = false
	list.RemoveInvisible()

	assert.True(t, list.IsAbleToFire(back))
	assert.True(t, back.InFront, "front-line status is cached once earned")
}

func TestSpawnShootGatedByLevelDelay(t *testing.T) {
	clock := newFakeClock()
	level := FirstLevel(DefaultConfig(), 0)
	list := NewUnitList(1, testModel(t, ModelMeteorSlicer), 1, 40, 0, testRand(), zerolog.Nop())
	require.NotNil(t, list)
	bullets := newTestBulletList(clock)
	u := list.Units()[0]

	list.SpawnShoot(bullets, u, 0, 30, level, 0.5)
	assert.Equal(t, 0, bullets.Len(), "cooldown not yet elapsed")

	list.SpawnShoot(bullets, u, 0, 30, level, 1.3)
	require.Equal(t, 1, bullets.Len())
	assert.Equal(t, 1.3, u.LastShoot)

	b := bullets.Bullets()[0]
	assert.Equal(t, BulletOwnerUnit, b.Owner)
	assert.Equal(t, level.Units.DamageLife, b.Params.DamageHealth)
	assert.Equal(t, level.Units.BulletInitSpeed, b.Movement.Speed)

	list.SpawnShoot(bullets, u, 0, 30, level, 1.3)
	assert.Equal(t, 1, bullets.Len(), "firing resets the cooldown")
}

func TestRotatedBoundingBoxCoversWingtips(t *testing.T) {
	u := newTestUnit(t)
	flat := u.BoundingBox()

	u.Action.RotateY = 90
	turned := u.BoundingBox()

	// at 90 degrees of yaw the hull's length lies along X
	assert.InDelta(t, u.Model.Box.ByZ, turned.Max.X-turned.Min.X, 1e-9)
	assert.InDelta(t, u.Model.Box.ByX, flat.Max.X-flat.Min.X, 1e-9)
}
