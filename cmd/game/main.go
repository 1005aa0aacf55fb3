package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"github.com/tomz197/protector/internal/config"
	"github.com/tomz197/protector/internal/loop"
	"github.com/tomz197/protector/internal/sound"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "game error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// stderr would corrupt the raw terminal, so logs go to PROTECTOR_LOG_FILE or nowhere
	logger, closer, err := config.Logger("protector", io.Discard)
	if err != nil {
		return err
	}
	defer closer.Close()

	cfg, err := config.GameConfig()
	if err != nil {
		return err
	}
	rng, err := config.Rand()
	if err != nil {
		return err
	}
	effectRng, err := config.EffectRand()
	if err != nil {
		return err
	}
	soundOn, err := config.SoundEnabled()
	if err != nil {
		return err
	}

	opts := loop.Options{
		Logger: logger,
		Config: &cfg,
	}
	if rng != nil {
		opts.Rand = rng
		opts.EffectRand = effectRng
	}
	if soundOn {
		cues := sound.NewManager(0.6)
		if err := cues.Init(); err != nil {
			logger.Warn("sound disabled", "err", err)
		}
		defer cues.Close()
		opts.Cues = cues
	}

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("failed to enable raw mode: %w", err)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	client, err := loop.NewClient(bufio.NewReader(os.Stdin), os.Stdout, opts)
	if err != nil {
		return err
	}
	logger.Info("game started", "field", fmt.Sprintf("%vx%v", cfg.FieldWidth, cfg.FieldHeight))
	if err := client.Run(); err != nil && !errors.Is(err, loop.ErrInputClosed) {
		return err
	}
	return nil
}
