package cmd

import (
	"fmt"
	"io"
	"math/rand/v2"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/abhisek/ioequiz/internal/app"
	"github.com/abhisek/ioequiz/internal/audio"
	"github.com/abhisek/ioequiz/internal/config"
	"github.com/abhisek/ioequiz/internal/logging"
	"github.com/abhisek/ioequiz/internal/question"
	"github.com/abhisek/ioequiz/internal/quiz"
	"github.com/abhisek/ioequiz/internal/screen"
)

// runtime bundles what every quiz front end needs.
type runtime struct {
	cfg    config.Config
	log    *logrus.Logger
	closer io.Closer
	bank   *question.Bank
	rng    *rand.Rand
	audio  audio.Player
}

// setup resolves config, opens the logger, loads the bank and builds the
// audio player. Callers must Close the runtime.
func setup(cmd *cobra.Command) (*runtime, error) {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return nil, err
	}

	log, closer, err := logging.New(cfg)
	if err != nil {
		return nil, err
	}

	bank, err := question.Load(cfg.BankPath)
	if err != nil {
		closer.Close()
		return nil, err
	}
	log.WithFields(logrus.Fields{
		"bank":      cfg.BankPath,
		"title":     bank.Title,
		"questions": bank.Len(),
	}).Info("bank loaded")

	player, err := audio.New(cfg.AudioCmd, audio.WithExitHandler(func(url string, err error) {
		if err != nil {
			log.WithError(err).WithField("url", url).Warn("audio command failed")
		}
	}))
	if err != nil {
		closer.Close()
		return nil, fmt.Errorf("audio: %w", err)
	}

	seed := cfg.EffectiveSeed()
	log.WithField("seed", seed).Debug("hint rng seeded")

	return &runtime{
		cfg:    cfg,
		log:    log,
		closer: closer,
		bank:   bank,
		rng:    rand.New(rand.NewPCG(seed, seed)),
		audio:  player,
	}, nil
}

func (rt *runtime) Close() error {
	return rt.closer.Close()
}

// runApp builds dependencies and launches the TUI.
func runApp(cmd *cobra.Command, onPass func(*quiz.Session, quiz.Summary)) error {
	rt, err := setup(cmd)
	if err != nil {
		return err
	}
	defer rt.Close()

	env := &screen.Env{
		Bank:           rt.bank,
		RNG:            rt.rng,
		Log:            rt.log,
		Audio:          rt.audio,
		Player:         &screen.Player{Name: rt.cfg.Player},
		OnPassComplete: onPass,
	}
	return app.Run(app.Options{Env: env})
}
