package cmd

import (
	"fmt"
	"os"
	"os/signal"

	"github.com/PeterRapcsak/bailando/internal/ascii"
	"github.com/PeterRapcsak/bailando/internal/cutout"
	"github.com/PeterRapcsak/bailando/internal/frames"
	"github.com/spf13/cobra"
)

var cutoutCmd = &cobra.Command{
	Use:   "cutout <input-dir> <output-dir>",
	Short: "Remove backgrounds from every image in a folder",
	Long:  "Writes transparent PNG cutouts named 1.png, 2.png, ... in input filename order. Files that cannot be read are skipped.",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, logger, err := setup(cmd)
		if err != nil {
			return err
		}

		opt := cutout.DefaultOptions()
		methodName, _ := cmd.Flags().GetString("method")
		if opt.Method, err = cutout.ParseMethod(methodName); err != nil {
			return err
		}
		opt.Colors, _ = cmd.Flags().GetInt("colors")
		opt.Tolerance, _ = cmd.Flags().GetFloat64("tolerance")
		opt.Threshold, _ = cmd.Flags().GetFloat64("threshold")
		opt.Softness, _ = cmd.Flags().GetFloat64("softness")
		opt.Erode, _ = cmd.Flags().GetInt("erode")

		// Ctrl+C 处理完当前文件后停下
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		rep, err := cutout.Batch(ctx, args[0], args[1], opt, logger)
		logger.Info().
			Int("written", len(rep.Written)).
			Int("skipped", len(rep.Skipped)).
			Str("method", opt.Method.String()).
			Msg("抠图完成")
		if err != nil {
			return err
		}

		if preview, _ := cmd.Flags().GetBool("preview"); preview && len(rep.Written) > 0 {
			img, err := frames.Load(rep.Written[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, line := range ascii.Convert(img, 60) {
				fmt.Fprintln(out, line)
			}
		}
		return nil
	},
}

func init() {
	def := cutout.DefaultOptions()
	cutoutCmd.Flags().String("method", def.Method.String(), "Background palette method: dominantcolor or kmeans")
	cutoutCmd.Flags().Int("colors", def.Colors, "Number of background colours sampled from the border")
	cutoutCmd.Flags().Float64("tolerance", def.Tolerance, "Threshold in standard deviations of the border colour spread")
	cutoutCmd.Flags().Float64("threshold", def.Threshold, "Minimum Lab distance treated as foreground")
	cutoutCmd.Flags().Float64("softness", def.Softness, "Width of the soft alpha edge (Lab distance)")
	cutoutCmd.Flags().Int("erode", def.Erode, "Alpha erosion radius in pixels")
	cutoutCmd.Flags().Bool("preview", false, "Print an ASCII preview of the first cutout")
	rootCmd.AddCommand(cutoutCmd)
}
