package game

import (
	"math"

	"github.com/rs/zerolog"
)

// BulletOwner tags who fired a bullet; collision filters key off it
type BulletOwner int

const (
	BulletOwnerPlayer BulletOwner = iota + 1
	BulletOwnerUnit
)

// BulletDirection is the coarse up/down classification of a bullet's flight.
// Up means toward the enemy field (decreasing z).
type BulletDirection int

const (
	BulletDirectionUp BulletDirection = iota + 1
	BulletDirectionDown
)

// Targets closer than this to the muzzle get the default forward direction
// instead of a degenerate normalization
const aimedMinDistance = 1e-6

// BulletParams carries the damage a bullet applies on hit
type BulletParams struct {
	DamageHealth float64
	DamageEnergy float64
}

// BulletSize describes the bullet's collision box and render cone
type BulletSize struct {
	ByX          float64
	ByY          float64
	ByZ          float64
	RadiusTop    float64
	RadiusBottom float64
	Slices       int
}

// NewBulletSize returns a size with the stock cone radii
func NewBulletSize(byX, byY, byZ float64) BulletSize {
	return BulletSize{
		ByX:          byX,
		ByY:          byY,
		ByZ:          byZ,
		RadiusTop:    0.1,
		RadiusBottom: 0.5,
		Slices:       5,
	}
}

// BulletMovement is the kinematic state of a bullet
type BulletMovement struct {
	Vector       Vec3 // unit direction of travel
	Speed        float64
	Acceleration float64
	Angle        float64 // heading in the XZ plane, radians
	Direction    BulletDirection
}

// Bullet is a single shot in flight. Alive flips to false exactly once:
// on leaving the play frame, on hitting an eligible target, or on mutual
// collision; dead bullets are dropped at the next compaction.
type Bullet struct {
	Movement BulletMovement
	Position Vec3
	Size     BulletSize
	Params   BulletParams
	Owner    BulletOwner
	Alive    bool
	Trail    *TrailEmitter

	idx uint64
}

// SpawnIdx returns the bullet's monotonic spawn index within its list
func (b *Bullet) SpawnIdx() uint64 {
	return b.idx
}

// NewStraightBullet creates a bullet flying straight up or down the field
func NewStraightBullet(direction BulletDirection, position Vec3, size BulletSize, params BulletParams, owner BulletOwner) Bullet {
	vector := Vec3{0, 0, 1}
	if direction == BulletDirectionUp {
		vector = Vec3{0, 0, -1}
	}
	return Bullet{
		Movement: BulletMovement{
			Vector:    vector,
			Speed:     1.0,
			Angle:     math.Atan2(vector.X, -vector.Z),
			Direction: direction,
		},
		Position: position,
		Size:     size,
		Params:   params,
		Owner:    owner,
		Alive:    true,
	}
}

// NewAimedBullet creates a bullet whose direction is the normalized vector
// from the spawn position toward (targetX, targetZ). A coincident target
// falls back to straight forward so normalization never divides by zero.
func NewAimedBullet(position Vec3, size BulletSize, params BulletParams, owner BulletOwner, targetX, targetZ float64) Bullet {
	dx := targetX - position.X
	dz := targetZ - position.Z
	dist := math.Hypot(dx, dz)

	var vector Vec3
	if dist < aimedMinDistance {
		vector = Vec3{0, 0, -1}
	} else {
		vector = Vec3{dx / dist, 0, dz / dist}
	}

	direction := BulletDirectionDown
	if vector.Z < 0 {
		direction = BulletDirectionUp
	}

	return Bullet{
		Movement: BulletMovement{
			Vector:    vector,
			Speed:     1.0,
			Angle:     math.Atan2(vector.X, -vector.Z),
			Direction: direction,
		},
		Position: position,
		Size:     size,
		Params:   params,
		Owner:    owner,
		Alive:    true,
	}
}

// BulletFrame bounds the vertical play corridor; bullets leaving it die
type BulletFrame struct {
	Top    float64
	Bottom float64
}

// NewBulletFrame returns the stock play frame
func NewBulletFrame() BulletFrame {
	return BulletFrame{Top: -60.0, Bottom: 60.0}
}

// Update integrates one frame of flight. Speed compounds by acceleration
// every frame for both straight and aimed bullets. Leaving the frame kills
// the bullet, and a player shot that exits unspent is scored as a miss.
func (b *Bullet) Update(frame BulletFrame, stat *GameStat, dt float64) {
	if b == nil || !b.Alive {
		return
	}
	b.Position = b.Position.Add(b.Movement.Vector.Scale(b.Movement.Speed))
	b.Movement.Speed += b.Movement.Acceleration

	if b.Trail != nil {
		b.Trail.Emit(b.Position, b.Movement.Vector, dt)
		b.Trail.Update(dt)
	}

	if b.Position.Z < frame.Top || b.Position.Z > frame.Bottom {
		b.Alive = false
		if b.Owner == BulletOwnerPlayer {
			stat.AddMiss()
		}
	}
}

// BoundingBox returns the bullet's AABB centered on its position
func (b *Bullet) BoundingBox() Box {
	return boxAround(b.Position, b.Size.ByX, b.Size.ByY, b.Size.ByZ)
}

// collisionRadius is the XZ-plane circle used for bullet-vs-bullet tests:
// the larger cone radius, or half the box extents when no radii are set
func (b *Bullet) collisionRadius() float64 {
	r := math.Max(b.Size.RadiusTop, b.Size.RadiusBottom)
	if r > 0 {
		return r
	}
	return math.Max(b.Size.ByX, b.Size.ByZ) / 2
}

// BulletList owns every bullet in flight. Slice-backed with once-per-frame
// compaction; the spawn index grows monotonically and LastSpawn gates fire
// cooldowns.
type BulletList struct {
	bullets   []Bullet
	idx       uint64
	lastSpawn float64
	Frame     BulletFrame

	clock Clock
	log   zerolog.Logger
}

// NewBulletList creates an empty list with the stock play frame
func NewBulletList(clock Clock, logger zerolog.Logger) *BulletList {
	return &BulletList{
		Frame:     NewBulletFrame(),
		clock:     clock,
		lastSpawn: clock.Now(),
		log:       logger,
	}
}

// Insert appends a bullet, assigning it the next spawn index and stamping
// the list's last-spawn time
func (l *BulletList) Insert(b Bullet) {
	if l == nil {
		return
	}
	l.idx++
	b.idx = l.idx
	l.bullets = append(l.bullets, b)
	l.lastSpawn = l.clock.Now()
	l.log.Debug().
		Float64("x", b.Position.X).
		Float64("z", b.Position.Z).
		Int("owner", int(b.Owner)).
		Msg("bullet spawned")
}

// LastSpawn returns the time the most recent bullet was inserted
func (l *BulletList) LastSpawn() float64 {
	return l.lastSpawn
}

// SpawnIndex returns the index assigned to the most recent bullet
func (l *BulletList) SpawnIndex() uint64 {
	return l.idx
}

// Len returns the number of bullets currently in the list, dead or alive
func (l *BulletList) Len() int {
	if l == nil {
		return 0
	}
	return len(l.bullets)
}

// Bullets exposes the backing slice for collision scans and drawing.
// Callers must not retain it across a compaction.
func (l *BulletList) Bullets() []Bullet {
	if l == nil {
		return nil
	}
	return l.bullets
}

// Update integrates every alive bullet against the play frame
func (l *BulletList) Update(stat *GameStat, dt float64) {
	if l == nil {
		return
	}
	for i := range l.bullets {
		l.bullets[i].Update(l.Frame, stat, dt)
	}
}

// ResolveMutualCollisions runs the pairwise bullet-vs-bullet scan. Two alive
// bullets collide when their XZ circles overlap; both die. Pairs sharing an
// owner are skipped unless sameOwnerCollides is set. Dead bullets are
// compacted before returning.
func (l *BulletList) ResolveMutualCollisions(sameOwnerCollides bool) {
	if l == nil {
		return
	}
	for i := range l.bullets {
		if !l.bullets[i].Alive {
			continue
		}
		for j := i + 1; j < len(l.bullets); j++ {
			if !l.bullets[j].Alive {
				continue
			}
			if !sameOwnerCollides && l.bullets[i].Owner == l.bullets[j].Owner {
				continue
			}
			a, b := &l.bullets[i], &l.bullets[j]
			dx := a.Position.X - b.Position.X
			dz := a.Position.Z - b.Position.Z
			if math.Hypot(dx, dz) < a.collisionRadius()+b.collisionRadius() {
				a.Alive = false
				b.Alive = false
				break
			}
		}
	}
	l.Compact()
}

// Compact drops every dead bullet, keeping order
func (l *BulletList) Compact() {
	if l == nil {
		return
	}
	before := len(l.bullets)
	alive := l.bullets[:0]
	for i := range l.bullets {
		if l.bullets[i].Alive {
			alive = append(alive, l.bullets[i])
		}
	}
	l.bullets = alive
	if removed := before - len(l.bullets); removed > 0 {
		l.log.Debug().Int("removed", removed).Int("in_flight", len(l.bullets)).Msg("bullets compacted")
	}
}
