package game

// LevelParamsStep is the multiplicative difficulty step between levels:
// rates and damages grow by it, spawn delays shrink by it.
const LevelParamsStep = 0.05

// How long the level label stays on screen after a transition
const levelLabelDuration = 5.0

// LevelUnitsParameters holds the enemy-side tuning for one level
type LevelUnitsParameters struct {
	BulletAcceleration float64
	BulletInitSpeed    float64
	BulletDelaySpawn   float64
	DamageLife         float64
	DamageEnergy       float64
	Count              int
	MaxCol             int
	MaxLn              int
	Model              ModelID
}

// LevelPlayerParameters holds the player-side tuning for one level
type LevelPlayerParameters struct {
	BulletAcceleration float64
	BulletInitSpeed    float64
	BulletDelaySpawn   float64
	DamageLife         float64
	DamageEnergy       float64
}

// Level is an immutable parameter pack for one difficulty step. It is passed
// and returned by value; NextLevel never mutates its argument.
type Level struct {
	Level          int
	LabelStartedAt float64
	Units          LevelUnitsParameters
	Player         LevelPlayerParameters
}

// FirstLevel builds the level-0 parameter pack from config
func FirstLevel(cfg Config, now float64) Level {
	return Level{
		Level:          0,
		LabelStartedAt: now,
		Units: LevelUnitsParameters{
			BulletAcceleration: cfg.UnitBulletAcceleration,
			BulletInitSpeed:    cfg.UnitBulletInitSpeed,
			BulletDelaySpawn:   cfg.UnitBulletDelay,
			DamageLife:         cfg.UnitDamageLife,
			DamageEnergy:       cfg.UnitDamageEnergy,
			Count:              cfg.UnitCount,
			MaxCol:             cfg.UnitMaxColumns,
			MaxLn:              cfg.UnitMaxLines,
			Model:              ModelInterstellarRunner,
		},
		Player: LevelPlayerParameters{
			BulletAcceleration: cfg.PlayerBulletAcceleration,
			BulletInitSpeed:    cfg.PlayerBulletInitSpeed,
			BulletDelaySpawn:   cfg.PlayerBulletDelay,
			DamageLife:         cfg.PlayerDamageLife,
			DamageEnergy:       cfg.PlayerDamageEnergy,
		},
	}
}

// NextLevel returns the parameter pack for the following level: every rate
// and damage scaled up by the step, every delay scaled down, level counter
// incremented, label timer reset. Pure transform; callers rebind the result.
func NextLevel(level Level, now float64) Level {
	level.Level++
	level.LabelStartedAt = now

	level.Units.BulletAcceleration *= 1.0 + LevelParamsStep
	level.Units.BulletInitSpeed *= 1.0 + LevelParamsStep
	level.Units.BulletDelaySpawn *= 1.0 - LevelParamsStep
	level.Units.DamageLife *= 1.0 + LevelParamsStep
	level.Units.DamageEnergy *= 1.0 + LevelParamsStep
	level.Units.Model = cycleModelID(int(level.Units.Model) + 1)

	level.Player.BulletAcceleration *= 1.0 + LevelParamsStep
	level.Player.BulletInitSpeed *= 1.0 + LevelParamsStep
	level.Player.BulletDelaySpawn *= 1.0 - LevelParamsStep
	level.Player.DamageLife *= 1.0 + LevelParamsStep
	level.Player.DamageEnergy *= 1.0 + LevelParamsStep

	return level
}

// LabelAlpha returns the fade factor for the level label, 1 right after a
// transition down to 0 once the display window has elapsed.
func (l Level) LabelAlpha(now float64) float64 {
	elapsed := now - l.LabelStartedAt
	if elapsed >= levelLabelDuration {
		return 0
	}
	return clamp(1.0-elapsed/levelLabelDuration, 0, 1)
}
