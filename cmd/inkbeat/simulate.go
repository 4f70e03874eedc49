package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/lixenwraith/inkbeat/asset"
	"github.com/lixenwraith/inkbeat/beat"
	"github.com/lixenwraith/inkbeat/engine"
	"github.com/lixenwraith/inkbeat/event"
	"github.com/lixenwraith/inkbeat/status"
)

var simulateCmd = &cobra.Command{
	Use:   "simulate <beats.json>",
	Short: "Run the beat conductor headless and print every pulse",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := setupLogger(cmd.ErrOrStderr()); err != nil {
			return err
		}
		fps, _ := cmd.Flags().GetInt("fps")
		duration, _ := cmd.Flags().GetDuration("duration")
		realtime, _ := cmd.Flags().GetBool("realtime")

		s, _, err := asset.LoadSchedule(args[0])
		if err != nil {
			return err
		}
		opts := simOptions{fps: fps, duration: duration, realtime: realtime, wave: cfg.WaveFunc()}
		return simulate(cmd.Context(), cmd.OutOrStdout(), s, opts)
	},
}

func init() {
	f := simulateCmd.Flags()
	f.Int("fps", 60, "ticks per second")
	f.Duration("duration", 10*time.Second, "track time to simulate")
	f.Bool("realtime", false, "pace ticks against the wall clock")
	rootCmd.AddCommand(simulateCmd)
}

type simOptions struct {
	fps      int
	duration time.Duration
	realtime bool
	wave     beat.Wave
}

// simulate drives a conductor through a fixed-step loop and reports pulses
func simulate(ctx context.Context, w io.Writer, s *beat.Schedule, opts simOptions) error {
	if opts.fps <= 0 {
		return fmt.Errorf("fps %d must be positive", opts.fps)
	}
	if ctx == nil {
		ctx = context.Background()
	}
	interval := time.Second / time.Duration(opts.fps)

	reg := status.NewRegistry()
	queue := event.NewEventQueue()
	conductor := engine.NewConductor(queue, reg, opts.wave, log)

	var clock engine.TimeProvider
	var mock *engine.MockTimeProvider
	if opts.realtime {
		clock = engine.NewMonotonicTimeProvider()
	} else {
		mock = engine.NewMockTimeProvider(time.Unix(0, 0))
		clock = mock
	}

	loop := engine.NewLoop(interval, clock, reg, log)
	pulses := 0
	loop.Step = func(delta time.Duration) {
		f := conductor.Update(delta)
		if f.JustCrossed {
			pulses++
			fmt.Fprintf(w, "tick %6d  t=%9.3fs  beat %5d  crossings %d\n", f.Frame, f.Elapsed.Seconds(), f.Index, f.Crossings)
		}
		for _, ev := range queue.Consume() {
			if ev.Type == event.EventScheduleExhausted {
				fmt.Fprintf(w, "tick %6d  schedule exhausted at beat %d\n", ev.Frame, ev.Payload.(*event.ExhaustedPayload).Index)
			}
		}
	}

	conductor.StartTrack(s)
	queue.Consume()

	if opts.realtime {
		runCtx, cancel := context.WithTimeout(ctx, opts.duration)
		defer cancel()
		if err := loop.Run(runCtx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
			return err
		}
	} else {
		for spent := time.Duration(0); spent < opts.duration; spent += interval {
			mock.Advance(interval)
			loop.Advance()
		}
	}

	fmt.Fprintf(w, "ticks %d  elapsed %.3fs  pulses %d  beats crossed %d  max burst %d\n",
		conductor.Frame(),
		conductor.Elapsed().Seconds(),
		pulses,
		reg.Ints.Get("beat.crossings").Load(),
		reg.Ints.Get("beat.max_burst").Load(),
	)
	return nil
}
