package cli

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/dshills/keyecho/internal/hook"
	"github.com/dshills/keyecho/internal/input/playback"
	"github.com/dshills/keyecho/internal/input/record"
)

var (
	playTimes       int
	playLoop        bool
	playNoCountdown bool
)

var playCmd = &cobra.Command{
	Use:   "play [file]",
	Short: "Replay a recorded key sequence",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := ""
		if len(args) == 1 {
			path = args[0]
		}
		if path == "" {
			var err error
			path, err = saveTarget("")
			if err != nil {
				return err
			}
		}
		rec, err := record.Load(path)
		if err != nil {
			return err
		}

		pol := playback.Once()
		switch {
		case playLoop:
			pol = playback.Loop()
		case playTimes > 1:
			pol = playback.Repeat(playTimes)
		}

		countdown := cfg.Countdown()
		if playNoCountdown {
			countdown = 0
		}
		return playRecording(cmd, rec, pol, countdown)
	},
}

// playRecording replays rec through the system injector and blocks
// until playback finishes or a signal stops it.
func playRecording(cmd *cobra.Command, rec *record.Recording, pol playback.Policy, countdown time.Duration) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var abortErr error
	idle := make(chan struct{})
	lastWhole := -1

	plr, err := playback.New(playback.Options{
		Injector:  hook.NewSystemInjector(),
		Countdown: countdown,
		OnState: func(st playback.State) {
			if st == playback.StateIdle {
				close(idle)
			}
		},
		OnTick: func(remaining time.Duration) {
			whole := int(remaining.Round(time.Second).Seconds())
			if whole != lastWhole && whole > 0 {
				lastWhole = whole
				fmt.Fprintf(cmd.OutOrStdout(), "starting in %d...\n", whole)
			}
		},
		OnError: func(err error) { abortErr = err },
	})
	if err != nil {
		return err
	}

	if err := plr.Start(rec, pol); err != nil {
		return err
	}
	go func() {
		<-ctx.Done()
		plr.Stop()
	}()
	<-idle

	if abortErr != nil {
		return fmt.Errorf("playback aborted: %w", abortErr)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "played %d events\n", rec.Len())
	return nil
}

func init() {
	playCmd.Flags().IntVar(&playTimes, "times", 1, "number of repetitions")
	playCmd.Flags().BoolVar(&playLoop, "loop", false, "repeat until interrupted")
	playCmd.Flags().BoolVar(&playNoCountdown, "no-countdown", false, "start immediately")
	rootCmd.AddCommand(playCmd)
}
