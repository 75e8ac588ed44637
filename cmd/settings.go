package cmd

import (
	"fmt"

	"github.com/PeterRapcsak/bailando/config"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var settingsCmd = &cobra.Command{
	Use:       "settings [show|reset|path]",
	Short:     "Show, reset or locate the saved settings",
	Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"show", "reset", "path"},
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, logger, err := setup(cmd)
		if err != nil {
			return err
		}
		store := config.Open(opts.SettingsPath, logger)
		out := cmd.OutOrStdout()

		action := "show"
		if len(args) == 1 {
			action = args[0]
		}
		switch action {
		case "path":
			fmt.Fprintln(out, store.Path())
		case "reset":
			if _, err := store.Reset(); err != nil {
				return err
			}
			fmt.Fprintf(out, "reset %s\n", store.Path())
		default:
			data, err := yaml.Marshal(store.Load())
			if err != nil {
				return err
			}
			fmt.Fprint(out, string(data))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(settingsCmd)
}
