package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/lixenwraith/inkbeat/asset"
	"github.com/lixenwraith/inkbeat/audio"
	"github.com/lixenwraith/inkbeat/beat"
	"github.com/lixenwraith/inkbeat/core"
	"github.com/lixenwraith/inkbeat/game"
	"github.com/lixenwraith/inkbeat/status"
)

var playCmd = &cobra.Command{
	Use:   "play [audio]",
	Short: "Play a track and draw to its beats",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 1 {
			cfg.AudioPath = args[0]
		}
		f := cmd.Flags()
		if f.Changed("beats") {
			cfg.BeatsPath, _ = f.GetString("beats")
		}
		if f.Changed("metronome") {
			cfg.Metronome, _ = f.GetBool("metronome")
		}
		if f.Changed("mute") {
			mute, _ := f.GetBool("mute")
			cfg.AudioEnabled = !mute
		}
		if f.Changed("watch") {
			cfg.Watch, _ = f.GetBool("watch")
		}
		if err := setupLogger(nil); err != nil {
			return err
		}
		return play(cmd.Context())
	},
}

func init() {
	f := playCmd.Flags()
	f.String("beats", "", "beats document (default: <audio>.beats.json)")
	f.Bool("metronome", false, "click on every beat")
	f.Bool("mute", false, "disable audio output")
	f.Bool("watch", false, "reload the beats document when it changes")
	rootCmd.AddCommand(playCmd)
}

// resolveBeatsPath picks the explicit beats path or derives it from the audio file
func resolveBeatsPath(audioPath, beatsPath string) (string, error) {
	if beatsPath != "" {
		return beatsPath, nil
	}
	if audioPath == "" {
		return "", errors.New("an audio file or --beats is required")
	}
	return asset.BeatsPathFor(audioPath), nil
}

func play(parent context.Context) error {
	beatsPath, err := resolveBeatsPath(cfg.AudioPath, cfg.BeatsPath)
	if err != nil {
		return err
	}
	schedule, doc, err := asset.LoadSchedule(beatsPath)
	if err != nil {
		return err
	}
	if err := doc.CheckIntervals(); err != nil {
		log.Warn("interval list ignored", zap.Error(err))
	}
	log.Info("beats loaded",
		zap.String("path", beatsPath),
		zap.Int("beat_count", schedule.BeatCount()),
		zap.Float64("bpm", doc.BPM),
	)

	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	player, metronome, closeAudio := openAudio()
	defer closeAudio()

	var reloads <-chan *beat.Schedule
	if cfg.Watch {
		w, err := asset.NewWatcher(beatsPath, log)
		if err != nil {
			log.Warn("beats watching disabled", zap.Error(err))
		} else {
			w.Start(ctx)
			reloads = w.Updates()
		}
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("screen init: %w", err)
	}
	core.RegisterCrashTerminal(screen)
	defer func() {
		if r := recover(); r != nil {
			core.HandleCrash(r)
		}
		core.RegisterCrashTerminal(nil)
		screen.Fini()
	}()

	g := game.New(screen, game.Options{
		Schedule: schedule,
		Wave:     cfg.WaveFunc(),
		Tick:     cfg.TickInterval(),
		Settings: game.Settings{
			QuillSpeed:         cfg.QuillSpeed,
			InkLifetimeBeats:   cfg.InkLifetimeBeats,
			EnemyLifetimeBeats: cfg.EnemyLifetimeBeats,
			EnemySpawnEvery:    cfg.EnemySpawnEvery,
			InkOnBeat:          cfg.InkOnBeat,
		},
		Player:    player,
		Metronome: metronome,
		Reloads:   reloads,
		Registry:  status.NewRegistry(),
		Log:       log,
	})

	if err := g.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// openAudio starts the speaker and loads the track; failures leave the game silent
func openAudio() (*audio.Player, *audio.Metronome, func()) {
	if !cfg.AudioEnabled {
		return nil, nil, func() {}
	}

	eng := audio.NewEngine(cfg.VolumeFraction(), log)
	if err := eng.Init(); err != nil {
		log.Warn("audio unavailable, continuing silently", zap.Error(err))
		return nil, nil, func() {}
	}
	metronome := audio.NewMetronome(eng, cfg.Metronome, log)

	if cfg.AudioPath == "" {
		return nil, metronome, eng.Close
	}
	player, err := eng.LoadTrack(cfg.AudioPath, log)
	if err != nil {
		log.Warn("track unavailable, continuing silently", zap.Error(err))
		return nil, metronome, eng.Close
	}
	return player, metronome, func() {
		_ = player.Close()
		eng.Close()
	}
}
