package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/lixenwraith/inkbeat/config"
	"github.com/lixenwraith/inkbeat/logger"
)

var (
	cfg      *config.Config
	log      = zap.NewNop()
	closeLog = func() {}

	envFile string
)

var rootCmd = &cobra.Command{
	Use:           "inkbeat",
	Short:         "Draw to the beat of a track in the terminal",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg = config.Load(envFile)
		applyFlags(cmd, cfg)
		return cfg.Validate()
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		closeLog()
	},
}

func init() {
	f := rootCmd.PersistentFlags()
	f.StringVar(&envFile, "env", ".env", "dotenv file with INKBEAT_* settings")
	f.Bool("debug", false, "write a rotated JSON log")
	f.String("log-level", "debug", "log level: debug, info, warn, error")
	f.String("log-file", logger.DefaultLogPath, "log file path")
	f.String("wave", "triangle", "intensity curve: triangle, cosine, square")
	f.Int("tick-rate", 60, "simulation ticks per second")
}

// applyFlags overlays flags the user set explicitly
func applyFlags(cmd *cobra.Command, c *config.Config) {
	f := cmd.Flags()
	if f.Changed("debug") {
		c.Debug, _ = f.GetBool("debug")
	}
	if f.Changed("log-level") {
		c.LogLevel, _ = f.GetString("log-level")
	}
	if f.Changed("log-file") {
		c.LogFile, _ = f.GetString("log-file")
	}
	if f.Changed("wave") {
		c.Wave, _ = f.GetString("wave")
	}
	if f.Changed("tick-rate") {
		c.TickRate, _ = f.GetInt("tick-rate")
	}
}

// setupLogger builds the process logger; console is nil for the terminal UI
func setupLogger(console io.Writer) error {
	level := cfg.LogLevel
	if console != nil && !cfg.Debug {
		level = "warn"
	}
	l, closer, err := logger.New(logger.Config{
		Debug:      cfg.Debug,
		Level:      level,
		OutputPath: cfg.LogFile,
		Console:    console,
	})
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	log, closeLog = l, closer
	return nil
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
