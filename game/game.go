package game

import (
	"errors"
	"math/rand"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/rs/zerolog"
)

// ErrNotCreated is returned when a required part of the game state could
// not be constructed (missing model, empty formation)
var ErrNotCreated = errors.New("game state not created")

// Game owns the whole simulation for one session and implements
// ebiten.Game. The simulation itself (Step) never touches ebiten, so tests
// drive it headless with a fake clock and scripted input.
type Game struct {
	cfg     Config
	log     zerolog.Logger
	clock   Clock
	input   Input
	rng     *rand.Rand
	models  *ModelRegistry
	metrics *Metrics

	level   Level
	stat    *GameStat
	units   *UnitList
	bullets *BulletList
	player  *Player

	renderer *Renderer
	gameOver bool

	prevRestartKey bool
	lastHits       int
	lastMisses     int
}

// NewGame builds a fresh session: model registry, level-0 parameters, the
// first formation, an empty bullet list, and the player. Any missing piece
// aborts the whole construction.
func NewGame(cfg Config, logger zerolog.Logger, clock Clock, input Input, rng *rand.Rand) (*Game, error) {
	g := &Game{
		cfg:     cfg,
		log:     logger,
		clock:   clock,
		input:   input,
		rng:     rng,
		models:  NewModelRegistry(logger),
		metrics: NewMetrics(),
		stat:    NewGameStat(),
	}
	g.level = FirstLevel(cfg, clock.Now())

	if err := g.deployFormation(); err != nil {
		return nil, err
	}

	g.player = NewPlayer(cfg.PlayerMaxX, cfg.PlayerMaxZ, cfg.PlayerOffsetZ,
		g.models.Model(ModelTranstellar), clock, input, rng)
	if g.player == nil {
		return nil, ErrNotCreated
	}

	logger.Info().Msg("game created")
	return g, nil
}

// deployFormation lays out the current level's wave and resets the bullet
// list. The previous wave and every bullet in flight are discarded.
func (g *Game) deployFormation() error {
	model := g.models.Model(g.level.Units.Model)
	g.units = NewUnitList(
		g.level.Units.Count,
		model,
		g.level.Units.MaxCol,
		g.cfg.FieldDepth,
		g.cfg.FormationZOffset,
		g.rng,
		g.log,
	)
	if g.units == nil {
		return ErrNotCreated
	}
	g.bullets = NewBulletList(g.clock, g.log)
	return nil
}

// Level returns the current level parameter pack
func (g *Game) Level() Level {
	return g.level
}

// Stat returns the session's score counters
func (g *Game) Stat() *GameStat {
	return g.stat
}

// Units returns the active wave
func (g *Game) Units() *UnitList {
	return g.units
}

// Bullets returns the shared bullet list
func (g *Game) Bullets() *BulletList {
	return g.bullets
}

// Player returns the player ship
func (g *Game) Player() *Player {
	return g.player
}

// GameOver reports whether the player has been destroyed
func (g *Game) GameOver() bool {
	return g.gameOver
}

// Step runs one simulation frame in a fixed phase order: player update and
// fire, unit oscillation and fall, bullet integration, unit collision, unit
// fire control, player collision, mutual bullet collision, compaction, then
// the level transition when the wave is empty.
//
// Bullets spawned by units this frame carry a spawn index above the
// snapshot taken at frame start, so the player collision pass skips them
// until the next frame.
func (g *Game) Step() {
	if g.gameOver {
		return
	}
	dt := g.clock.Delta()
	now := g.clock.Now()
	spawnSnapshot := g.bullets.SpawnIndex()

	g.player.Update(g.bullets, g.level, g.stat)
	g.units.Update(g.cfg.MaxAreaRadius, dt)

	g.bullets.Update(g.stat, dt)

	g.units.CheckCollisions(g.bullets, g.stat, now)

	for _, u := range g.units.Units() {
		if !u.Visible || u.State.Health <= 0 {
			continue
		}
		if g.units.IsAbleToFire(u) && IsOnFireLine(u, g.player, g.cfg.FireLineFactor) {
			target := g.player.EffectivePosition()
			g.units.SpawnShoot(g.bullets, u, target.X, target.Z, g.level, now)
		}
	}

	g.player.CheckCollision(g.bullets, g.stat, spawnSnapshot)

	g.bullets.ResolveMutualCollisions(false)
	g.bullets.Compact()

	unitsBefore := g.units.Len()
	g.units.RemoveInvisible()
	destroyed := unitsBefore - g.units.Len()
	spawned := g.bullets.SpawnIndex() - spawnSnapshot

	if g.units.Len() == 0 {
		g.level = NextLevel(g.level, now)
		g.log.Info().Int("level", g.level.Level).Msg("level up")
		if err := g.deployFormation(); err != nil {
			g.log.Error().Err(err).Msg("formation deploy failed")
			g.gameOver = true
		}
	}

	if g.player.State.Health <= 0 {
		g.gameOver = true
		g.log.Info().
			Int("score", g.stat.Score).
			Int("level", g.level.Level).
			Msg("game over")
	}

	g.metrics.addFrame()
	g.metrics.addBulletsSpawned(int64(spawned))
	g.metrics.addHits(int64(g.stat.Hits - g.lastHits))
	g.metrics.addMisses(int64(g.stat.Misses - g.lastMisses))
	g.metrics.addUnitsDestroyed(int64(destroyed))
	g.lastHits = g.stat.Hits
	g.lastMisses = g.stat.Misses
}

// restart rebuilds the whole session in place, keeping config and seams
func (g *Game) restart() {
	g.level = FirstLevel(g.cfg, g.clock.Now())
	g.stat = NewGameStat()
	g.lastHits = 0
	g.lastMisses = 0
	if err := g.deployFormation(); err != nil {
		g.log.Error().Err(err).Msg("restart failed")
		return
	}
	g.player = NewPlayer(g.cfg.PlayerMaxX, g.cfg.PlayerMaxZ, g.cfg.PlayerOffsetZ,
		g.models.Model(ModelTranstellar), g.clock, g.input, g.rng)
	g.gameOver = false
	g.log.Info().Msg("game restarted")
}

// Update advances one ebiten tick. When the session is over, only the
// restart key is processed.
func (g *Game) Update() error {
	if g.gameOver {
		restartPressed := ebiten.IsKeyPressed(ebiten.KeyR)
		if restartPressed && !g.prevRestartKey {
			g.restart()
		}
		g.prevRestartKey = restartPressed
		return nil
	}
	g.Step()
	return nil
}

// Draw renders the current frame. The renderer is built lazily on the
// first draw so a headless Game never allocates GPU resources.
func (g *Game) Draw(screen *ebiten.Image) {
	if g.renderer == nil {
		g.renderer = NewRenderer(g.cfg, g.models, g.rng)
	}
	g.renderer.Draw(screen, g)
}

// Layout reports the fixed logical screen size
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.cfg.ScreenWidth, g.cfg.ScreenHeight
}
