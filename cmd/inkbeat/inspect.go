package main

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/lixenwraith/inkbeat/asset"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <beats.json>",
	Short: "Validate a beats document and print its statistics",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := setupLogger(cmd.ErrOrStderr()); err != nil {
			return err
		}
		return inspect(cmd.OutOrStdout(), args[0])
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}

func inspect(w io.Writer, path string) error {
	s, doc, err := asset.LoadSchedule(path)
	if err != nil {
		return err
	}
	if err := doc.CheckIntervals(); err != nil {
		log.Warn("interval list ignored", zap.Error(err))
	}

	st := s.Stats()
	fmt.Fprintf(w, "file:      %s\n", path)
	fmt.Fprintf(w, "beats:     %d\n", st.Count)
	fmt.Fprintf(w, "bpm:       %.2f\n", doc.BPM)
	fmt.Fprintf(w, "first:     %s\n", seconds(st.First))
	fmt.Fprintf(w, "last:      %s\n", seconds(st.Last))
	fmt.Fprintf(w, "interval:  mean %s  min %s  max %s\n",
		seconds(st.MeanInterval), seconds(st.MinInterval), seconds(st.MaxInterval))
	return nil
}

func seconds(d time.Duration) string {
	return fmt.Sprintf("%.3fs", d.Seconds())
}
