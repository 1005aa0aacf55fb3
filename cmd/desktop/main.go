package main

import (
	"os"

	"github.com/charmbracelet/log"

	"github.com/tomz197/protector/internal/config"
	"github.com/tomz197/protector/internal/desktop"
	"github.com/tomz197/protector/internal/game"
	"github.com/tomz197/protector/internal/sound"
)

func main() {
	logger, closer, err := config.Logger("protector", os.Stderr)
	if err != nil {
		log.Fatal("invalid log settings", "err", err)
	}
	defer closer.Close()

	cfg, err := config.GameConfig()
	if err != nil {
		logger.Fatal("invalid game config", "err", err)
	}
	rng, err := config.Rand()
	if err != nil {
		logger.Fatal("invalid seed", "err", err)
	}
	effectRng, err := config.EffectRand()
	if err != nil {
		logger.Fatal("invalid seed", "err", err)
	}
	soundOn, err := config.SoundEnabled()
	if err != nil {
		logger.Fatal("invalid sound setting", "err", err)
	}

	gameOpts := []game.Option{game.WithLogger(logger)}
	hostOpts := desktop.Options{Logger: logger}
	if rng != nil {
		gameOpts = append(gameOpts, game.WithRand(rng))
		hostOpts.Rand = effectRng
	}
	if soundOn {
		cues := sound.NewManager(0.6)
		if err := cues.Init(); err != nil {
			logger.Warn("sound disabled", "err", err)
		}
		defer cues.Close()
		hostOpts.Cues = cues
	}

	ctrl, err := game.NewController(cfg, gameOpts...)
	if err != nil {
		logger.Fatal("failed to start game", "err", err)
	}

	logger.Info("opening window", "width", cfg.FieldWidth, "height", cfg.FieldHeight)
	if err := desktop.New(ctrl, hostOpts).Run("Protector"); err != nil {
		logger.Fatal("window error", "err", err)
	}
}
