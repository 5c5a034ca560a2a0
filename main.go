package main

import (
	"math/rand"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/rs/zerolog"

	"github.com/DmitryAstafyev/ceelaxy/game"
)

func main() {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		With().Timestamp().Logger()

	cfg, err := game.Load(".")
	if err != nil {
		logger.Fatal().Err(err).Msg("config load failed")
	}

	if level, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		logger = logger.Level(level)
	} else {
		logger.Warn().Str("level", cfg.LogLevel).Msg("unknown log level, keeping default")
	}

	seed := cfg.RandomSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	clock := game.NewSystemClock(cfg.TPS)
	g, err := game.NewGame(cfg, logger, clock, game.NewKeyboardInput(), rng)
	if err != nil {
		logger.Fatal().Err(err).Msg("game construction failed")
	}

	ebiten.SetWindowSize(cfg.ScreenWidth, cfg.ScreenHeight)
	ebiten.SetWindowTitle("Ceelaxy")
	ebiten.SetTPS(cfg.TPS)

	if err := ebiten.RunGame(g); err != nil {
		logger.Fatal().Err(err).Msg("game loop failed")
	}
}
