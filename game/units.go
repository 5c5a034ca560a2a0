package game

import (
	"math"
	"math/rand"

	"github.com/rs/zerolog"
)

// UnitType distinguishes the player's ship from enemy units
type UnitType int

const (
	UnitTypeSolder UnitType = iota + 1
	UnitTypeEnemy
)

// Formation geometry and unit defaults
const (
	DefaultUnitWidth  = 6.0
	DefaultUnitHeight = 6.0

	UnitSpaceHorizontal = 3.0
	UnitSpaceVertical   = 6.0

	DefaultUnitHealth = 100.0
	DefaultUnitEnergy = 100.0
)

// HitFlashWindow is how long after a hit an entity renders tinted
const HitFlashWindow = 0.1

// Fall animation tuning for destroyed units
const (
	fallRateY         = 6.0   // world units per second, downward
	fallRateZ         = 12.0  // world units per second, away from the player
	fallWobbleAmp     = 0.8   // sinusoidal X wobble amplitude
	fallWobbleFreq    = 6.0   // wobble frequency, radians per second
	fallSpinPerSecond = 360.0 // degrees of spin per second
)

// Glide-in relaxation step range for fresh formations
const (
	zOffsetRelaxMin = 0.05
	zOffsetRelaxMax = 0.15
)

// UnitState is the health/energy block shared by units and the player
type UnitState struct {
	Health     float64
	Energy     float64
	InitHealth float64
	InitEnergy float64
	HitTime    float64
}

// NewUnitState returns a full-health state block
func NewUnitState() UnitState {
	return UnitState{
		Health:     DefaultUnitHealth,
		Energy:     DefaultUnitEnergy,
		InitHealth: DefaultUnitHealth,
		InitEnergy: DefaultUnitEnergy,
	}
}

// ApplyDamage subtracts bullet damage, clamping both pools at zero, and
// stamps the hit time
func (s *UnitState) ApplyDamage(params BulletParams, now float64) {
	s.Health = clamp(s.Health-params.DamageHealth, 0, s.InitHealth)
	s.Energy = clamp(s.Energy-params.DamageEnergy, 0, s.InitEnergy)
	s.HitTime = now
}

// HealthFraction returns health relative to its initial value
func (s *UnitState) HealthFraction() float64 {
	if s.InitHealth <= 0 {
		return 0
	}
	return s.Health / s.InitHealth
}

// EnergyFraction returns energy relative to its initial value
func (s *UnitState) EnergyFraction() float64 {
	if s.InitEnergy <= 0 {
		return 0
	}
	return s.Energy / s.InitEnergy
}

// IsHit reports whether the entity is inside its post-hit flash window
func (s *UnitState) IsHit(now float64) bool {
	return now > HitFlashWindow && now-s.HitTime < HitFlashWindow
}

// UnitPosition is a unit's world position plus its formation grid slot
type UnitPosition struct {
	X   float64
	Y   float64
	Z   float64
	Ln  int
	Col int
}

// UnitSize is the fixed footprint of a unit class
type UnitSize struct {
	Width  float64
	Height float64
}

// NewUnitSize returns the stock enemy footprint
func NewUnitSize() UnitSize {
	return UnitSize{Width: DefaultUnitWidth, Height: DefaultUnitHeight}
}

// Unit is one enemy ship. Its lifecycle is a one-way machine:
// alive (health > 0) -> dying (falling animation) -> removed (invisible).
type Unit struct {
	Type      UnitType
	State     UnitState
	Position  UnitPosition
	Size      UnitSize
	Action    *MovementAction
	Model     *ShipModel // shared, not owned
	ZOffset   float64
	Visible   bool
	InFront   bool
	LastShoot float64
	Explosion *ExplosionState
	FallAngle float64

	fallTime float64
	rng      *rand.Rand
}

// NewUnit creates an enemy unit at the zero position. Returns nil when the
// shared model is absent so formation construction can abort.
func NewUnit(ty UnitType, model *ShipModel, rng *rand.Rand) *Unit {
	if model == nil {
		return nil
	}
	return &Unit{
		Type:    ty,
		State:   NewUnitState(),
		Size:    NewUnitSize(),
		Action:  NewMovementAction(rng),
		Model:   model,
		Visible: true,
		rng:     rng,
	}
}

// EffectivePosition is the unit's drawn/collided position: grid position
// plus oscillator offset, pushed back by the remaining glide-in offset
func (u *Unit) EffectivePosition() Vec3 {
	pos := Vec3{u.Position.X, u.Position.Y, u.Position.Z - u.ZOffset}
	if u.Action != nil {
		pos.X += u.Action.X
		pos.Y += u.Action.Y
	}
	return pos
}

// BoundingBox returns the AABB of the unit's model box under its current
// banking rotation, so a tilted hull still covers its wingtips
func (u *Unit) BoundingBox() Box {
	rotX, rotY, rotZ := 0.0, 0.0, 0.0
	if u.Action != nil {
		rotX, rotY, rotZ = u.Action.RotateX, u.Action.RotateY, u.Action.RotateZ
	}
	box := u.Model.Box
	return rotatedBox(u.EffectivePosition(), box.ByX, box.ByY, box.ByZ, rotX, rotY, rotZ)
}

// Update advances one frame of unit behavior: oscillation and glide-in while
// alive, the fall animation once health is gone. Invisible units are inert.
func (u *Unit) Update(maxAreaRadius, dt float64) {
	if u == nil || !u.Visible {
		return
	}
	if u.State.Health > 0 {
		u.Action.Iterate(u.State.EnergyFraction())
		if u.ZOffset > 0 {
			u.ZOffset -= randFloatInRange(u.rng, zOffsetRelaxMin, zOffsetRelaxMax)
			if u.ZOffset < 0 {
				u.ZOffset = 0
			}
		}
		return
	}
	u.updateDestroyedFall(maxAreaRadius, dt)
}

// updateDestroyedFall plays the destruction tumble: sink in -Y, drift in -Z,
// wobble in X, spin a full turn per second. Once the unit's z-distance from
// the origin exceeds the play-area radius it goes invisible for good.
func (u *Unit) updateDestroyedFall(maxAreaRadius, dt float64) {
	u.fallTime += dt
	u.Position.Y -= fallRateY * dt
	u.Position.Z -= fallRateZ * dt
	u.Position.X += math.Sin(u.fallTime*fallWobbleFreq) * fallWobbleAmp * dt
	u.FallAngle += fallSpinPerSecond * dt
	if u.FallAngle >= 360.0 {
		u.FallAngle -= 360.0
	}
	u.Explosion.Advance()

	if math.Abs(u.EffectivePosition().Z) > maxAreaRadius {
		u.Visible = false
	}
}

// CheckCollision resolves this unit against every alive player bullet.
// Each intersecting bullet dies, applies its damage (clamped at zero), and
// counts a hit; several bullets may land in the same frame. Reaching zero
// health starts the fall and the explosion playback.
func (u *Unit) CheckCollision(bullets *BulletList, stat *GameStat, now float64) {
	if u == nil || bullets == nil || !u.Visible || u.State.Health <= 0 {
		return
	}
	box := u.BoundingBox()
	list := bullets.Bullets()
	for i := range list {
		b := &list[i]
		if !b.Alive || b.Owner != BulletOwnerPlayer {
			continue
		}
		if !box.Intersects(b.BoundingBox()) {
			continue
		}
		b.Alive = false
		u.State.ApplyDamage(b.Params, now)
		stat.AddHit()
		if u.State.Health <= 0 && u.Explosion == nil {
			u.Explosion = NewExplosionState()
		}
	}
}

// UnitList owns one wave of enemy units
type UnitList struct {
	units []*Unit
	log   zerolog.Logger
}

// NewUnitList lays out count units in a grid: columns cycle 0..maxCol-1,
// wrapping to a new line when full; x centered around 0; z stepped per line
// behind the field by fieldDepth, pushed further back by zOffset which then
// glides in. Returns nil if any unit cannot be built.
func NewUnitList(count int, model *ShipModel, maxCol int, fieldDepth, zOffset float64, rng *rand.Rand, logger zerolog.Logger) *UnitList {
	if count <= 0 || maxCol <= 0 || model == nil {
		return nil
	}
	fullWidth := DefaultUnitWidth + UnitSpaceHorizontal
	fullHeight := DefaultUnitHeight + UnitSpaceVertical
	midX := fullWidth*float64(maxCol)/2.0 - fullWidth/2.0

	list := &UnitList{log: logger}
	for i := 0; i < count; i++ {
		unit := NewUnit(UnitTypeEnemy, model, rng)
		if unit == nil {
			return nil
		}
		unit.Position.Col = i % maxCol
		unit.Position.Ln = i / maxCol
		unit.Position.X = fullWidth*float64(unit.Position.Col) - midX
		unit.Position.Z = fullHeight*float64(unit.Position.Ln) - fieldDepth
		unit.ZOffset = zOffset
		list.units = append(list.units, unit)
	}
	logger.Info().Int("count", count).Str("model", model.Name).Msg("formation deployed")
	return list
}

// Len returns the number of units still in the list
func (l *UnitList) Len() int {
	if l == nil {
		return 0
	}
	return len(l.units)
}

// Units exposes the live units for iteration and drawing
func (l *UnitList) Units() []*Unit {
	if l == nil {
		return nil
	}
	return l.units
}

// Update advances every unit one frame
func (l *UnitList) Update(maxAreaRadius, dt float64) {
	if l == nil {
		return
	}
	for _, u := range l.units {
		u.Update(maxAreaRadius, dt)
	}
}

// CheckCollisions resolves every unit against the player's bullets
func (l *UnitList) CheckCollisions(bullets *BulletList, stat *GameStat, now float64) {
	if l == nil {
		return
	}
	for _, u := range l.units {
		u.CheckCollision(bullets, stat, now)
	}
}

// IsAbleToFire reports whether the unit is the front-most survivor of its
// column. Front-line status is monotonic within a wave (units ahead are only
// ever removed), so a true result is cached on the unit.
func (l *UnitList) IsAbleToFire(u *Unit) bool {
	if l == nil || u == nil {
		return false
	}
	if u.InFront {
		return true
	}
	for _, other := range l.units {
		if other == u || !other.Visible {
			continue
		}
		if other.Position.Col == u.Position.Col && other.Position.Ln < u.Position.Ln {
			return false
		}
	}
	u.InFront = true
	return true
}

// SpawnShoot fires an aimed bullet from the unit toward the target, gated by
// the level's spawn delay. Damage, speed, and acceleration are level-scaled.
func (l *UnitList) SpawnShoot(bullets *BulletList, u *Unit, targetX, targetZ float64, level Level, now float64) {
	if l == nil || bullets == nil || u == nil {
		return
	}
	if now-u.LastShoot <= level.Units.BulletDelaySpawn {
		return
	}
	bullet := NewAimedBullet(
		u.EffectivePosition(),
		NewBulletSize(1.0, 1.0, 1.0),
		BulletParams{
			DamageHealth: level.Units.DamageLife,
			DamageEnergy: level.Units.DamageEnergy,
		},
		BulletOwnerUnit,
		targetX, targetZ,
	)
	bullet.Movement.Speed = level.Units.BulletInitSpeed
	bullet.Movement.Acceleration = level.Units.BulletAcceleration
	bullets.Insert(bullet)
	u.LastShoot = now
}

// RemoveInvisible compacts units that finished their fall out of the list.
// Removal is irreversible.
func (l *UnitList) RemoveInvisible() {
	if l == nil {
		return
	}
	before := len(l.units)
	alive := l.units[:0]
	for _, u := range l.units {
		if u.Visible {
			alive = append(alive, u)
		}
	}
	l.units = alive
	if removed := before - len(l.units); removed > 0 {
		l.log.Debug().Int("removed", removed).Int("remaining", len(l.units)).Msg("units compacted")
	}
}
