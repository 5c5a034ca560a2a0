package game

import (
	"math"
	"math/rand"
)

// Player movement tuning
const (
	accelerationDelay = 0.2 // seconds since last press before accel resets
	accelerationInit  = 0.1
	accelerationStep  = 0.05
	accelerationMax   = 1.0

	playerMaxRotateX  = 15.0
	playerMaxRotateZ  = 35.0
	playerStepRotateX = 1.0
	playerStepRotateZ = 2.0
)

// PlayerPosition is the player's corridor-clamped world position. Z runs
// backward from the start line: it is clamped to [-MaxZ, 0] and never goes
// positive, so the ship cannot retreat past where it started. OffsetZ shifts
// the ship into its rendered slot near the camera.
type PlayerPosition struct {
	X       float64
	Y       float64
	Z       float64
	MaxX    float64
	MaxZ    float64
	OffsetZ float64
}

// PlayerVisualState is the input-driven banking state, mirroring the
// oscillator's rotation fields but fed by held keys instead of drift
type PlayerVisualState struct {
	RotateX     float64
	RotateZ     float64
	StepRotateX float64
	StepRotateZ float64
	MaxRotateX  float64
	MaxRotateZ  float64
}

// PlayerMovement is the acceleration accumulator state
type PlayerMovement struct {
	LastKeyPress float64
	Acceleration float64

	directionX Action
	directionZ Action
	hasDirX    bool
	hasDirZ    bool
}

// Player is the player's ship
type Player struct {
	Type     UnitType
	State    UnitState
	Position PlayerPosition
	Size     UnitSize
	Visual   PlayerVisualState
	Movement PlayerMovement
	Model    *ShipModel // shared, not owned

	clock Clock
	input Input
	rng   *rand.Rand
}

// NewPlayer creates the player ship. Returns nil when the shared model is
// absent so game construction can abort.
func NewPlayer(maxX, maxZ, offsetZ float64, model *ShipModel, clock Clock, input Input, rng *rand.Rand) *Player {
	if model == nil {
		return nil
	}
	return &Player{
		Type:  UnitTypeSolder,
		State: NewUnitState(),
		Position: PlayerPosition{
			MaxX:    maxX,
			MaxZ:    maxZ,
			OffsetZ: offsetZ,
		},
		Size: NewUnitSize(),
		Visual: PlayerVisualState{
			StepRotateX: playerStepRotateX,
			StepRotateZ: playerStepRotateZ,
			MaxRotateX:  playerMaxRotateX,
			MaxRotateZ:  playerMaxRotateZ,
		},
		Movement: PlayerMovement{LastKeyPress: clock.Now()},
		Model:    model,
		clock:    clock,
		input:    input,
		rng:      rng,
	}
}

// EffectivePosition is the player's world position including the render
// offset; bullets spawn here and enemy fire aims here
func (p *Player) EffectivePosition() Vec3 {
	return Vec3{p.Position.X, p.Position.Y, p.Position.Z + p.Position.OffsetZ}
}

// directionChanged reports whether a held direction differs from the last
// recorded one on either axis
func (p *Player) directionChanged() bool {
	return (p.input.IsHeld(ActionLeft) && (!p.Movement.hasDirX || p.Movement.directionX != ActionLeft)) ||
		(p.input.IsHeld(ActionRight) && (!p.Movement.hasDirX || p.Movement.directionX != ActionRight)) ||
		(p.input.IsHeld(ActionForward) && (!p.Movement.hasDirZ || p.Movement.directionZ != ActionForward)) ||
		(p.input.IsHeld(ActionBackward) && (!p.Movement.hasDirZ || p.Movement.directionZ != ActionBackward))
}

// Update runs one frame of the player state machine: firing, banking
// relaxation when idle, and accelerated clamped movement when steering.
func (p *Player) Update(bullets *BulletList, level Level, stat *GameStat) {
	if p == nil {
		return
	}
	now := p.clock.Now()

	if p.input.IsHeld(ActionFire) && bullets != nil &&
		now-bullets.LastSpawn() > level.Player.BulletDelaySpawn {
		bullet := NewStraightBullet(
			BulletDirectionUp,
			p.EffectivePosition(),
			NewBulletSize(1.0, 1.0, 1.0),
			BulletParams{
				DamageHealth: level.Player.DamageLife,
				DamageEnergy: level.Player.DamageEnergy,
			},
			BulletOwnerPlayer,
		)
		bullet.Movement.Speed = level.Player.BulletInitSpeed
		bullet.Movement.Acceleration = level.Player.BulletAcceleration
		bullet.Trail = NewTrailEmitter(TextureBulletTrail, true, p.rng)
		bullets.Insert(bullet)
		stat.AddShootCost()
	}

	steering := p.input.IsHeld(ActionLeft) || p.input.IsHeld(ActionRight) ||
		p.input.IsHeld(ActionForward) || p.input.IsHeld(ActionBackward)

	if !steering {
		p.Visual.RotateX = relaxTowardZero(p.Visual.RotateX, p.Visual.StepRotateX)
		p.Visual.RotateZ = relaxTowardZero(p.Visual.RotateZ, p.Visual.StepRotateZ)
		return
	}

	elapsed := now - p.Movement.LastKeyPress
	changed := p.directionChanged()
	p.Movement.LastKeyPress = now
	if elapsed > accelerationDelay || changed {
		p.Movement.Acceleration = accelerationInit
	} else {
		p.Movement.Acceleration += accelerationStep * p.State.EnergyFraction()
	}
	if p.Movement.Acceleration > accelerationMax {
		p.Movement.Acceleration = accelerationMax
	}

	if p.input.IsHeld(ActionLeft) {
		p.Position.X -= p.Movement.Acceleration
		p.Movement.directionX = ActionLeft
		p.Movement.hasDirX = true
		p.Visual.RotateZ = math.Max(p.Visual.RotateZ-p.Visual.StepRotateZ, -p.Visual.MaxRotateZ)
	}
	if p.input.IsHeld(ActionRight) {
		p.Position.X += p.Movement.Acceleration
		p.Movement.directionX = ActionRight
		p.Movement.hasDirX = true
		p.Visual.RotateZ = math.Min(p.Visual.RotateZ+p.Visual.StepRotateZ, p.Visual.MaxRotateZ)
	}
	if p.input.IsHeld(ActionForward) {
		p.Position.Z -= p.Movement.Acceleration
		p.Movement.directionZ = ActionForward
		p.Movement.hasDirZ = true
		p.Visual.RotateX = math.Min(p.Visual.RotateX+p.Visual.StepRotateX, p.Visual.MaxRotateX)
	}
	if p.input.IsHeld(ActionBackward) {
		p.Position.Z += p.Movement.Acceleration
		p.Movement.directionZ = ActionBackward
		p.Movement.hasDirZ = true
		p.Visual.RotateX = math.Max(p.Visual.RotateX-p.Visual.StepRotateX, -p.Visual.MaxRotateX)
	}

	p.Position.X = clamp(p.Position.X, -p.Position.MaxX, p.Position.MaxX)
	p.Position.Z = clamp(p.Position.Z, -p.Position.MaxZ, 0)
}

// relaxTowardZero steps v toward zero without overshooting past it
func relaxTowardZero(v, step float64) float64 {
	if v > 0 {
		return math.Max(v-step, 0)
	}
	if v < 0 {
		return math.Min(v+step, 0)
	}
	return v
}

// BoundingBox returns the AABB of the player's model under its current
// banking; the player has no independent Y rotation
func (p *Player) BoundingBox() Box {
	box := p.Model.Box
	return rotatedBox(p.EffectivePosition(), box.ByX, box.ByY, box.ByZ,
		p.Visual.RotateX, 0, p.Visual.RotateZ)
}

// CheckCollision resolves the player against enemy bullets. Only bullets
// with a spawn index at or below maxSpawnIdx are considered, so shots fired
// by units this frame cannot land until the next frame's pass. Compacts the
// bullet list afterward.
func (p *Player) CheckCollision(bullets *BulletList, stat *GameStat, maxSpawnIdx uint64) {
	if p == nil || bullets == nil {
		return
	}
	now := p.clock.Now()
	box := p.BoundingBox()
	list := bullets.Bullets()
	for i := range list {
		b := &list[i]
		if !b.Alive || b.Owner != BulletOwnerUnit || b.idx > maxSpawnIdx {
			continue
		}
		if !box.Intersects(b.BoundingBox()) {
			continue
		}
		b.Alive = false
		p.State.ApplyDamage(b.Params, now)
		stat.AddTaken()
	}
	bullets.Compact()
}

// IsOnFireLine reports whether the player sits within factor of the unit's
// lane on the X axis. Enemies require this in addition to front-line status
// before shooting.
func IsOnFireLine(u *Unit, p *Player, factor float64) bool {
	if u == nil || p == nil {
		return false
	}
	return math.Abs(p.Position.X-u.EffectivePosition().X) <= factor
}
