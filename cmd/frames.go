package cmd

import (
	"fmt"

	"github.com/PeterRapcsak/bailando/internal/ascii"
	"github.com/PeterRapcsak/bailando/internal/frames"
	"github.com/spf13/cobra"
)

var framesCmd = &cobra.Command{
	Use:   "frames [dir]",
	Short: "Print the playback order of a frame directory",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, logger, err := setup(cmd)
		if err != nil {
			return err
		}
		dir := opts.FramesDir
		if len(args) == 1 {
			dir = args[0]
		}
		order, err := frames.ParseOrder(opts.Order)
		if err != nil {
			return err
		}
		paths, err := frames.List(dir, order)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		for i, p := range paths {
			fmt.Fprintf(out, "%4d  %s\n", i, p)
		}

		preview, _ := cmd.Flags().GetInt("preview")
		if preview < 0 {
			return nil
		}
		if preview >= len(paths) {
			return fmt.Errorf("preview index %d out of range (0-%d)", preview, len(paths)-1)
		}
		img, err := frames.Load(paths[preview])
		if err != nil {
			return err
		}
		width, _ := cmd.Flags().GetInt("width")
		logger.Debug().Str("frame", paths[preview]).Int("width", width).Msg("预览")
		fmt.Fprintln(out)
		for _, line := range ascii.Convert(img, width) {
			fmt.Fprintln(out, line)
		}
		return nil
	},
}

func init() {
	framesCmd.Flags().String("order", "lexical", "Frame order: lexical or numeric")
	framesCmd.Flags().Int("preview", -1, "Print an ASCII preview of the frame at this index")
	framesCmd.Flags().Int("width", 60, "Preview width in characters")
	rootCmd.AddCommand(framesCmd)
}
