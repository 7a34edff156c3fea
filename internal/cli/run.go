package cli

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dshills/keyecho/internal/app"
	"github.com/dshills/keyecho/internal/hook"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start key monitoring with the terminal HUD",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		a, err := app.New(app.Options{
			Config:     cfg,
			ConfigPath: cfgPath,
			Hook:       hook.NewSystemHook(),
			Injector:   hook.NewSystemInjector(),
		})
		if err != nil {
			return err
		}
		return a.Run(ctx)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
}
