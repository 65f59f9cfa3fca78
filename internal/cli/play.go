package cli

import (
	"fmt"
	"os/signal"
	"sort"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/calyptra/framevisx"
	"github.com/calyptra/framevisx/playback"
)

var (
	playFPS   int
	playLoop  bool
	playTicks int
)

var playCmd = &cobra.Command{
	Use:   "play <scene.yaml>",
	Short: "Play a scene's timeline at a fixed rate",
	Long: `Drive the scene through its frames on a fixed tick rate, printing the
primitives visible in each frame as the cursor passes it.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		scene, stack, ov, err := loadOverlay(args[0])
		if err != nil {
			return err
		}

		ticks := playTicks
		if ticks == 0 {
			ticks = scene.Frames
			if playLoop {
				ticks = 2 * scene.Frames
			}
		}

		done := make(chan struct{})
		rendered := 0
		renderer := playback.RendererFunc(func(tick uint64, f framevisx.FrameIndex, active map[string]*framevisx.Record) {
			ids := make([]string, 0, len(active))
			for id := range active {
				ids = append(ids, id)
			}
			sort.Strings(ids)
			fmt.Fprintf(cmd.OutOrStdout(), "tick %3d frame %3d  %s\n", tick, f, strings.Join(ids, " "))

			rendered++
			if rendered == ticks {
				close(done)
			}
		})

		rt := playback.NewRuntime(ov, stack, renderer, playback.Config{
			TickRate: time.Second / time.Duration(playFPS),
			Loop:     playLoop,
		})

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if err := rt.Start(ctx); err != nil {
			return err
		}
		defer rt.Stop()

		select {
		case <-done:
		case <-ctx.Done():
		}
		return nil
	},
}

func init() {
	playCmd.Flags().IntVar(&playFPS, "fps", 24, "Playback rate in frames per second")
	playCmd.Flags().BoolVar(&playLoop, "loop", false, "Wrap to the first frame after the last")
	playCmd.Flags().IntVar(&playTicks, "ticks", 0, "Stop after this many rendered frames (default: one pass)")
}
