package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/dshills/keyecho/internal/config"
)

// cfg and cfgPath hold the effective configuration, populated in
// PersistentPreRunE.
var (
	cfgFile string
	cfg     config.Config
	cfgPath string
)

var rootCmd = &cobra.Command{
	Use:           "keyecho",
	Short:         "Show pressed key combinations, record them, and replay them",
	SilenceUsage:  true,
	SilenceErrors: false,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		path := cfgFile
		if path == "" {
			p, err := config.DefaultPath()
			if err != nil {
				// No resolvable config directory; run on defaults.
				cfg = config.Default()
				return nil
			}
			path = p
		}
		c, err := config.Load(path)
		if err != nil {
			return err
		}
		cfg = c
		cfgPath = path
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "path to config.toml")
}

// Execute runs the root command. Exits with code 1 on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
