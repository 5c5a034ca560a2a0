package game

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"math/rand"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"
)

const (
	cameraFOV     = 50.0 * degToRad
	spriteSize    = 48
	trailTexSize  = 16
	explosionCell = 32
	starCount     = 140
)

// Camera projects world points onto the screen. Fixed for the whole
// session: above and behind the player, looking down the field.
type Camera struct {
	eye    Vec3
	right  Vec3
	up     Vec3
	fwd    Vec3
	scale  float64 // pixels per view unit at depth 1
	width  float64
	height float64
}

// NewCamera builds the stock field camera for the given screen size
func NewCamera(width, height int) *Camera {
	eye := Vec3{0, 90, 100}
	target := Vec3{0, 0, -10}

	fwd := target.Sub(eye).Normalized()
	right := fwd.Cross(Vec3{0, 1, 0}).Normalized()
	up := right.Cross(fwd)

	return &Camera{
		eye:    eye,
		right:  right,
		up:     up,
		fwd:    fwd,
		scale:  float64(height) / 2.0 / math.Tan(cameraFOV/2.0),
		width:  float64(width),
		height: float64(height),
	}
}

// Project maps a world point to screen coordinates plus the pixels-per-world
// ratio at its depth. Points behind the camera report ok false.
func (c *Camera) Project(p Vec3) (sx, sy, ppw float64, ok bool) {
	d := p.Sub(c.eye)
	depth := d.Dot(c.fwd)
	if depth <= 1.0 {
		return 0, 0, 0, false
	}
	ppw = c.scale / depth
	sx = c.width/2 + d.Dot(c.right)*ppw
	sy = c.height/2 - d.Dot(c.up)*ppw
	return sx, sy, ppw, true
}

type star struct {
	x     float64
	y     float64
	speed float64
	size  float64
}

// Renderer draws a Game frame. All GPU resources (ship sprites, effect
// textures) are generated procedurally when the renderer is built, and the
// effect textures are installed into the shared registry.
type Renderer struct {
	cfg    Config
	models *ModelRegistry
	camera *Camera
	stars  []star
}

// NewRenderer builds the draw layer: camera, starfield, and every
// procedural sprite and texture
func NewRenderer(cfg Config, models *ModelRegistry, rng *rand.Rand) *Renderer {
	r := &Renderer{
		cfg:    cfg,
		models: models,
		camera: NewCamera(cfg.ScreenWidth, cfg.ScreenHeight),
	}
	for i := 0; i < starCount; i++ {
		r.stars = append(r.stars, star{
			x:     randFloatInRange(rng, 0, float64(cfg.ScreenWidth)),
			y:     randFloatInRange(rng, 0, float64(cfg.ScreenHeight)),
			speed: randFloatInRange(rng, 8, 40),
			size:  randFloatInRange(rng, 0.5, 1.6),
		})
	}
	r.buildAssets()
	return r
}

// buildAssets generates the ship sprites and effect textures
func (r *Renderer) buildAssets() {
	for i := ModelID(0); i < modelIDCount; i++ {
		m := r.models.Model(i)
		m.sprite = shipSprite(spriteSize, m.Tint)
	}
	r.models.installTexture(TextureBulletTrail, glowTexture(trailTexSize))
	r.models.installTexture(TextureExplosionA, explosionSheet(explosionA))
}

// shipSprite draws a simple tinted delta hull pointing up
func shipSprite(size int, tint color.NRGBA) *ebiten.Image {
	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	cx := float64(size) / 2
	outline := color.NRGBA{20, 20, 30, 255}
	for y := 0; y < size; y++ {
		// hull narrows toward the nose at the top
		frac := float64(y) / float64(size)
		halfWidth := cx * frac * 0.9
		for x := 0; x < size; x++ {
			dx := math.Abs(float64(x) - cx)
			switch {
			case dx < halfWidth-1.5:
				img.SetNRGBA(x, y, tint)
			case dx < halfWidth:
				img.SetNRGBA(x, y, outline)
			}
		}
	}
	return ebiten.NewImageFromImage(img)
}

// glowTexture draws a soft radial falloff used by trail particles
func glowTexture(size int) *ebiten.Image {
	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	c := float64(size-1) / 2
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			dx, dy := float64(x)-c, float64(y)-c
			dist := math.Sqrt(dx*dx+dy*dy) / c
			a := clamp(1.0-dist, 0, 1)
			a = a * a
			img.SetNRGBA(x, y, color.NRGBA{255, 220, 160, uint8(a * 255)})
		}
	}
	return ebiten.NewImageFromImage(img)
}

// explosionSheet draws the sheet's cells as expanding, cooling rings
func explosionSheet(sheet ExplosionSheet) *ebiten.Image {
	w := sheet.FramesPerLine * explosionCell
	h := sheet.NumLines * explosionCell
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	total := sheet.FramesPerLine * sheet.NumLines
	for cell := 0; cell < total; cell++ {
		progress := float64(cell) / float64(total-1)
		ox := (cell % sheet.FramesPerLine) * explosionCell
		oy := (cell / sheet.FramesPerLine) * explosionCell
		c := float64(explosionCell-1) / 2
		radius := c * (0.2 + 0.8*progress)
		fade := 1.0 - progress
		for y := 0; y < explosionCell; y++ {
			for x := 0; x < explosionCell; x++ {
				dx, dy := float64(x)-c, float64(y)-c
				dist := math.Sqrt(dx*dx + dy*dy)
				if dist > radius {
					continue
				}
				heat := clamp(1.0-dist/radius, 0, 1)
				img.SetNRGBA(ox+x, oy+y, color.NRGBA{
					R: 255,
					G: uint8(120 + 120*heat),
					B: uint8(40 * heat),
					A: uint8(255 * fade * (0.4 + 0.6*heat)),
				})
			}
		}
	}
	return ebiten.NewImageFromImage(img)
}

// Draw renders one frame of the game
func (r *Renderer) Draw(screen *ebiten.Image, g *Game) {
	now := g.clock.Now()
	screen.Fill(color.NRGBA{6, 8, 18, 255})

	r.drawStars(screen, now)

	for _, u := range g.Units().Units() {
		r.drawUnit(screen, u, now)
	}
	r.drawBullets(screen, g.Bullets())
	r.drawPlayer(screen, g.Player(), now)
	r.drawHUD(screen, g, now)
}

func (r *Renderer) drawStars(screen *ebiten.Image, now float64) {
	for _, s := range r.stars {
		y := math.Mod(s.y+s.speed*now, r.camera.height)
		vector.DrawFilledCircle(screen, float32(s.x), float32(y), float32(s.size),
			color.NRGBA{180, 190, 220, 140}, false)
	}
}

func (r *Renderer) drawUnit(screen *ebiten.Image, u *Unit, now float64) {
	if u == nil || !u.Visible {
		return
	}
	pos := u.EffectivePosition()
	sx, sy, ppw, ok := r.camera.Project(pos)
	if !ok {
		return
	}
	sprite := u.Model.Sprite()
	if sprite == nil {
		return
	}

	angle := 0.0
	if u.Action != nil {
		angle = u.Action.RotateZ
	}
	if u.State.Health <= 0 {
		angle = u.FallAngle
	}

	scale := u.Model.Box.ByX * ppw / float64(spriteSize)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(-float64(spriteSize)/2, -float64(spriteSize)/2)
	op.GeoM.Rotate(angle * degToRad)
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(sx, sy)
	if u.State.IsHit(now) {
		op.ColorScale.Scale(1, 0.35, 0.35, 1)
	}
	screen.DrawImage(sprite, op)

	if u.Explosion != nil && u.Explosion.Active {
		r.drawExplosion(screen, u.Explosion, sx, sy, ppw)
	}
	if u.State.Health > 0 {
		r.drawEntityBars(screen, &u.State, sx, sy, ppw, u.Model.Box.ByX)
	}
}

func (r *Renderer) drawExplosion(screen *ebiten.Image, ex *ExplosionState, sx, sy, ppw float64) {
	sheet := r.models.Texture(ex.Sheet.Texture)
	cell := image.Rect(
		ex.Frame*explosionCell, ex.Line*explosionCell,
		(ex.Frame+1)*explosionCell, (ex.Line+1)*explosionCell,
	)
	sub := sheet.SubImage(cell).(*ebiten.Image)

	scale := 10.0 * ppw / float64(explosionCell)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(-float64(explosionCell)/2, -float64(explosionCell)/2)
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(sx, sy)
	op.Blend = ebiten.BlendLighter
	screen.DrawImage(sub, op)
}

// drawEntityBars draws the floating health and energy bars above a ship
func (r *Renderer) drawEntityBars(screen *ebiten.Image, s *UnitState, sx, sy, ppw, byX float64) {
	barWidth := float32(byX * ppw)
	barHeight := float32(math.Max(2, ppw*0.4))
	x := float32(sx) - barWidth/2
	y := float32(sy) - float32(byX*ppw*0.7)

	vector.DrawFilledRect(screen, x, y, barWidth, barHeight,
		color.NRGBA{40, 40, 40, 200}, false)
	vector.DrawFilledRect(screen, x, y, barWidth*float32(s.HealthFraction()), barHeight,
		color.NRGBA{90, 220, 90, 230}, false)

	y += barHeight + 1
	vector.DrawFilledRect(screen, x, y, barWidth, barHeight,
		color.NRGBA{40, 40, 40, 200}, false)
	vector.DrawFilledRect(screen, x, y, barWidth*float32(s.EnergyFraction()), barHeight,
		color.NRGBA{90, 140, 240, 230}, false)
}

func (r *Renderer) drawBullets(screen *ebiten.Image, bullets *BulletList) {
	for i := range bullets.Bullets() {
		b := &bullets.Bullets()[i]
		if b.Trail != nil {
			r.drawTrail(screen, b.Trail)
		}
		if !b.Alive {
			continue
		}
		sx, sy, ppw, ok := r.camera.Project(b.Position)
		if !ok {
			continue
		}
		clr := color.NRGBA{255, 170, 60, 255}
		if b.Owner == BulletOwnerPlayer {
			clr = color.NRGBA{120, 230, 255, 255}
		}
		radius := math.Max(1.5, b.Size.RadiusBottom*ppw)
		vector.DrawFilledCircle(screen, float32(sx), float32(sy), float32(radius), clr, true)
	}
}

func (r *Renderer) drawTrail(screen *ebiten.Image, trail *TrailEmitter) {
	tex := r.models.Texture(trail.Texture)
	for i := range trail.Particles() {
		p := &trail.Particles()[i]
		sx, sy, ppw, ok := r.camera.Project(p.Pos)
		if !ok {
			continue
		}
		scale := p.Size * ppw / float64(trailTexSize)
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(-float64(trailTexSize)/2, -float64(trailTexSize)/2)
		op.GeoM.Rotate(p.Rot * degToRad)
		op.GeoM.Scale(scale, scale)
		op.GeoM.Translate(sx, sy)
		op.ColorScale.ScaleAlpha(float32(p.AlphaFraction()))
		if trail.Additive {
			op.Blend = ebiten.BlendLighter
		}
		screen.DrawImage(tex, op)
	}
}

func (r *Renderer) drawPlayer(screen *ebiten.Image, p *Player, now float64) {
	if p == nil {
		return
	}
	sx, sy, ppw, ok := r.camera.Project(p.EffectivePosition())
	if !ok {
		return
	}
	sprite := p.Model.Sprite()
	if sprite == nil {
		return
	}
	scale := p.Model.Box.ByX * ppw / float64(spriteSize)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(-float64(spriteSize)/2, -float64(spriteSize)/2)
	op.GeoM.Rotate(p.Visual.RotateZ * degToRad)
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(sx, sy)
	if p.State.IsHit(now) {
		op.ColorScale.Scale(1, 0.35, 0.35, 1)
	}
	screen.DrawImage(sprite, op)
}

func (r *Renderer) drawHUD(screen *ebiten.Image, g *Game, now float64) {
	face := basicfont.Face7x13
	stat := g.Stat()
	white := color.NRGBA{230, 230, 240, 255}

	text.Draw(screen, fmt.Sprintf("SCORE %d", stat.Score), face, 10, 20, white)
	text.Draw(screen, fmt.Sprintf("HITS %d  MISSES %d  TAKEN %d", stat.Hits, stat.Misses, stat.Taken),
		face, 10, 36, white)

	r.drawPlayerBars(screen, g.Player())

	if alpha := g.Level().LabelAlpha(now); alpha > 0 {
		label := fmt.Sprintf("LEVEL %d", g.Level().Level+1)
		x := r.cfg.ScreenWidth/2 - len(label)*7/2
		text.Draw(screen, label, face, x, 60,
			color.NRGBA{255, 255, 255, uint8(alpha * 255)})
	}

	if g.GameOver() {
		msg := "GAME OVER"
		x := r.cfg.ScreenWidth/2 - len(msg)*7/2
		text.Draw(screen, msg, face, x, r.cfg.ScreenHeight/2, color.NRGBA{255, 80, 80, 255})
		hint := "PRESS R TO RESTART"
		x = r.cfg.ScreenWidth/2 - len(hint)*7/2
		text.Draw(screen, hint, face, x, r.cfg.ScreenHeight/2+18, white)
	}
}

// drawPlayerBars draws the screen-fixed health and energy bars bottom left
func (r *Renderer) drawPlayerBars(screen *ebiten.Image, p *Player) {
	if p == nil {
		return
	}
	const barWidth, barHeight = 140, 8
	x := float32(10)
	y := float32(r.cfg.ScreenHeight - 30)

	vector.DrawFilledRect(screen, x, y, barWidth, barHeight,
		color.NRGBA{40, 40, 40, 220}, false)
	vector.DrawFilledRect(screen, x, y, barWidth*float32(p.State.HealthFraction()), barHeight,
		color.NRGBA{90, 220, 90, 255}, false)

	y += barHeight + 3
	vector.DrawFilledRect(screen, x, y, barWidth, barHeight,
		color.NRGBA{40, 40, 40, 220}, false)
	vector.DrawFilledRect(screen, x, y, barWidth*float32(p.State.EnergyFraction()), barHeight,
		color.NRGBA{90, 140, 240, 255}, false)
}
