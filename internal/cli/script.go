package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dshills/keyecho/internal/input/playback"
	"github.com/dshills/keyecho/internal/input/record"
	"github.com/dshills/keyecho/internal/script"
)

var (
	scriptOut  string
	scriptPlay bool
)

var scriptCmd = &cobra.Command{
	Use:   "script FILE",
	Short: "Build a key sequence from a Lua script",
	Long: `Build a key sequence from a Lua script.

The script drives four functions: wait(ms), down(key), up(key), and
tap(key, hold_ms). Without flags the resulting sequence is summarized;
--out saves it as a recording and --play replays it immediately.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rec, err := script.RunFile(args[0])
		if err != nil {
			return err
		}
		if rec.Empty() {
			fmt.Fprintln(cmd.OutOrStdout(), "script produced no events")
			return nil
		}

		if scriptOut != "" {
			if err := record.Save(rec, scriptOut); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "saved %d events to %s\n", rec.Len(), scriptOut)
		}
		if scriptPlay {
			return playRecording(cmd, rec, playback.Once(), cfg.Countdown())
		}
		if scriptOut == "" {
			fmt.Fprintf(cmd.OutOrStdout(), "%d events over %s, keys: %s\n",
				rec.Len(), rec.Duration(), strings.Join(rec.Keys(), ", "))
		}
		return nil
	},
}

func init() {
	scriptCmd.Flags().StringVar(&scriptOut, "out", "", "save the sequence as a recording")
	scriptCmd.Flags().BoolVar(&scriptPlay, "play", false, "replay the sequence after building it")
	rootCmd.AddCommand(scriptCmd)
}
