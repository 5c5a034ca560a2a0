package game

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config holds every simulation tunable. It is a plain value threaded into
// constructors; nothing in the package reads viper after Load returns.
type Config struct {
	// ScreenWidth is the window width in pixels
	ScreenWidth int

	// ScreenHeight is the window height in pixels
	ScreenHeight int

	// TPS is the fixed simulation tick rate
	TPS int

	// PlayerMaxX bounds the player's lateral corridor (±PlayerMaxX)
	PlayerMaxX float64

	// PlayerMaxZ bounds how far forward the player may fly (z in [-PlayerMaxZ, 0])
	PlayerMaxZ float64

	// PlayerOffsetZ shifts the player's rendered slot toward the camera
	PlayerOffsetZ float64

	// MaxAreaRadius is the z-distance at which falling units despawn
	MaxAreaRadius float64

	// FieldDepth is how far behind the origin the first formation line rests
	FieldDepth float64

	// FormationZOffset is the extra glide-in distance for fresh formations
	FormationZOffset float64

	// FireLineFactor is the half-width of an enemy's firing lane on X
	FireLineFactor float64

	// Level-0 enemy parameters
	UnitBulletAcceleration float64
	UnitBulletInitSpeed    float64
	UnitBulletDelay        float64
	UnitDamageLife         float64
	UnitDamageEnergy       float64
	UnitCount              int
	UnitMaxColumns         int
	UnitMaxLines           int

	// Level-0 player parameters
	PlayerBulletAcceleration float64
	PlayerBulletInitSpeed    float64
	PlayerBulletDelay        float64
	PlayerDamageLife         float64
	PlayerDamageEnergy       float64

	// LogLevel is the zerolog level name (debug, info, warn, error)
	LogLevel string

	// RandomSeed seeds the simulation RNG; zero means seed from the clock
	RandomSeed int64
}

// DefaultConfig returns the stock tuning
func DefaultConfig() Config {
	return Config{
		ScreenWidth:   800,
		ScreenHeight:  600,
		TPS:           60,
		PlayerMaxX:    20.0,
		PlayerMaxZ:    20.0,
		PlayerOffsetZ: 30.0,

		MaxAreaRadius:    60.0,
		FieldDepth:       40.0,
		FormationZOffset: 40.0,
		FireLineFactor:   6.0,

		UnitBulletAcceleration: 0.005,
		UnitBulletInitSpeed:    0.8,
		UnitBulletDelay:        1.2,
		UnitDamageLife:         5.0,
		UnitDamageEnergy:       10.0,
		UnitCount:              20,
		UnitMaxColumns:         10,
		UnitMaxLines:           2,

		PlayerBulletAcceleration: 0.01,
		PlayerBulletInitSpeed:    2.0,
		PlayerBulletDelay:        0.2,
		PlayerDamageLife:         20.0,
		PlayerDamageEnergy:       10.0,

		LogLevel: "info",
	}
}

// Load reads ceelaxy.cfg.json from configDir, falling back to defaults for
// any missing key. A missing file is not an error; a malformed one is.
func Load(configDir string) (Config, error) {
	def := DefaultConfig()

	viper.SetDefault("screenWidth", def.ScreenWidth)
	viper.SetDefault("screenHeight", def.ScreenHeight)
	viper.SetDefault("tps", def.TPS)
	viper.SetDefault("player.maxX", def.PlayerMaxX)
	viper.SetDefault("player.maxZ", def.PlayerMaxZ)
	viper.SetDefault("player.offsetZ", def.PlayerOffsetZ)
	viper.SetDefault("field.maxAreaRadius", def.MaxAreaRadius)
	viper.SetDefault("field.depth", def.FieldDepth)
	viper.SetDefault("field.formationZOffset", def.FormationZOffset)
	viper.SetDefault("field.fireLineFactor", def.FireLineFactor)

	viper.SetDefault("levels.unit.bulletAcceleration", def.UnitBulletAcceleration)
	viper.SetDefault("levels.unit.bulletInitSpeed", def.UnitBulletInitSpeed)
	viper.SetDefault("levels.unit.bulletDelay", def.UnitBulletDelay)
	viper.SetDefault("levels.unit.damageLife", def.UnitDamageLife)
	viper.SetDefault("levels.unit.damageEnergy", def.UnitDamageEnergy)
	viper.SetDefault("levels.unit.count", def.UnitCount)
	viper.SetDefault("levels.unit.maxColumns", def.UnitMaxColumns)
	viper.SetDefault("levels.unit.maxLines", def.UnitMaxLines)

	viper.SetDefault("levels.player.bulletAcceleration", def.PlayerBulletAcceleration)
	viper.SetDefault("levels.player.bulletInitSpeed", def.PlayerBulletInitSpeed)
	viper.SetDefault("levels.player.bulletDelay", def.PlayerBulletDelay)
	viper.SetDefault("levels.player.damageLife", def.PlayerDamageLife)
	viper.SetDefault("levels.player.damageEnergy", def.PlayerDamageEnergy)

	viper.SetDefault("logLevel", def.LogLevel)
	viper.SetDefault("randomSeed", int64(0))

	viper.SetConfigName("ceelaxy.cfg")
	viper.SetConfigType("json")
	viper.AddConfigPath(configDir)

	if err := viper.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
			return def, fmt.Errorf("error reading config file: %w", err)
		}
	}

	return Config{
		ScreenWidth:   viper.GetInt("screenWidth"),
		ScreenHeight:  viper.GetInt("screenHeight"),
		TPS:           viper.GetInt("tps"),
		PlayerMaxX:    viper.GetFloat64("player.maxX"),
		PlayerMaxZ:    viper.GetFloat64("player.maxZ"),
		PlayerOffsetZ: viper.GetFloat64("player.offsetZ"),

		MaxAreaRadius:    viper.GetFloat64("field.maxAreaRadius"),
		FieldDepth:       viper.GetFloat64("field.depth"),
		FormationZOffset: viper.GetFloat64("field.formationZOffset"),
		FireLineFactor:   viper.GetFloat64("field.fireLineFactor"),

		UnitBulletAcceleration: viper.GetFloat64("levels.unit.bulletAcceleration"),
		UnitBulletInitSpeed:    viper.GetFloat64("levels.unit.bulletInitSpeed"),
		UnitBulletDelay:        viper.GetFloat64("levels.unit.bulletDelay"),
		UnitDamageLife:         viper.GetFloat64("levels.unit.damageLife"),
		UnitDamageEnergy:       viper.GetFloat64("levels.unit.damageEnergy"),
		UnitCount:              viper.GetInt("levels.unit.count"),
		UnitMaxColumns:         viper.GetInt("levels.unit.maxColumns"),
		UnitMaxLines:           viper.GetInt("levels.unit.maxLines"),

		PlayerBulletAcceleration: viper.GetFloat64("levels.player.bulletAcceleration"),
		PlayerBulletInitSpeed:    viper.GetFloat64("levels.player.bulletInitSpeed"),
		PlayerBulletDelay:        viper.GetFloat64("levels.player.bulletDelay"),
		PlayerDamageLife:         viper.GetFloat64("levels.player.damageLife"),
		PlayerDamageEnergy:       viper.GetFloat64("levels.player.damageEnergy"),

		LogLevel:   viper.GetString("logLevel"),
		RandomSeed: viper.GetInt64("randomSeed"),
	}, nil
}
