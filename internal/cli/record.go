package cli

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/dshills/keyecho/internal/event"
	"github.com/dshills/keyecho/internal/hook"
	"github.com/dshills/keyecho/internal/input/record"
	"github.com/dshills/keyecho/internal/monitor"
)

var (
	recordOut      string
	recordDuration time.Duration
)

var recordCmd = &cobra.Command{
	Use:   "record",
	Short: "Capture key events to a file without the HUD",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		if recordDuration > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, recordDuration)
			defer cancel()
		}
		ctx, cancel := context.WithCancel(ctx)
		defer cancel()

		bus := event.NewBus()
		defer bus.Close()
		store := record.NewStore()
		mon := monitor.New(bus, store)
		mon.SetEnabled(true)
		mon.OnEscape(cancel)

		keys := hook.NewSystemHook()
		if err := keys.Start(ctx, mon.HandleTransition); err != nil {
			return err
		}
		defer keys.Stop() //nolint:errcheck // shutdown path

		if err := store.Start(); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "recording, press ESC or Ctrl+C to stop")
		<-ctx.Done()

		rec, err := store.Stop()
		if err != nil {
			return err
		}
		if rec.Empty() {
			fmt.Fprintln(cmd.OutOrStdout(), "nothing recorded")
			return nil
		}

		path, err := saveTarget(recordOut)
		if err != nil {
			return err
		}
		if err := record.Save(rec, path); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "saved %d events to %s\n", rec.Len(), path)
		return nil
	},
}

// saveTarget resolves the output path from the flag, the configuration,
// and the default location, in that order.
func saveTarget(flagPath string) (string, error) {
	if flagPath != "" {
		return flagPath, nil
	}
	if cfg.Record.Path != "" {
		return cfg.Record.Path, nil
	}
	return record.DefaultPath()
}

func init() {
	recordCmd.Flags().StringVar(&recordOut, "out", "", "output file (defaults to the configured recording path)")
	recordCmd.Flags().DurationVar(&recordDuration, "duration", 0, "stop automatically after this long")
	rootCmd.AddCommand(recordCmd)
}
