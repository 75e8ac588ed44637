package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/PeterRapcsak/bailando/config"
	"github.com/PeterRapcsak/bailando/internal/animation"
	"github.com/PeterRapcsak/bailando/internal/frames"
	"github.com/PeterRapcsak/bailando/internal/game"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Open the pet window (default command)",
	Args:  cobra.NoArgs,
	RunE:  runPet,
}

func init() {
	addRunFlags(runCmd)
	rootCmd.AddCommand(runCmd)
}

func addRunFlags(c *cobra.Command) {
	c.Flags().String("frames", "img", "Directory of frame images")
	c.Flags().Duration("interval", animation.DefaultInterval, "Time between frames")
	c.Flags().String("order", "lexical", "Frame order: lexical or numeric")
	c.Flags().String("configure-key", "Home", "Key that opens the settings panel")
	c.Flags().String("legacy-csv", config.LegacyFileName, "Old CSV settings to import when no JSON settings exist")
	c.Flags().Duration("pin-interval", 0, "Re-assert always-on-top every interval (Windows only, 0 disables)")
	c.Flags().Bool("unlocked", false, "Start unlocked (draggable)")
	c.Flags().Bool("eager", false, "Decode all frames before opening the window")
}

func runPet(cmd *cobra.Command, args []string) error {
	opts, logger, err := setup(cmd)
	if err != nil {
		return err
	}
	order, err := frames.ParseOrder(opts.Order)
	if err != nil {
		return err
	}

	// 1. 帧目录：一张都没有就直接报错退出
	paths, err := frames.List(opts.FramesDir, order)
	if err != nil {
		return fmt.Errorf("cannot start: %w", err)
	}
	logger.Info().Str("dir", opts.FramesDir).Int("frames", len(paths)).Stringer("order", order).Msg("找到帧")

	// 2. 设置
	store := config.Open(opts.SettingsPath, logger).WithLegacyCSV(opts.LegacyCSV)
	store.Load()

	// 3. 加载帧：默认在后台协程里解码，不卡住窗口
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	var ready <-chan frames.Sequence
	if opts.Eager {
		seq := frames.LoadAll(paths, logger)
		if seq.Len() == 0 {
			return fmt.Errorf("cannot start: %s: %w", opts.FramesDir, frames.ErrNoFrames)
		}
		ch := make(chan frames.Sequence, 1)
		ch <- seq
		ready = ch
	} else {
		ready = frames.LoadAsync(ctx, paths, logger)
	}

	// 4. 启动
	mgr := game.New(ctx, store, ready, game.Options{
		Title:         WindowTitle,
		Interval:      opts.Interval,
		ConfigureKey:  opts.ConfigureKey,
		StartUnlocked: opts.StartUnlocked,
	}, logger)

	start := time.Now()
	if err := game.Run(ctx, mgr, WindowTitle, opts.PinInterval); err != nil {
		return err
	}
	logger.Debug().Dur("uptime", time.Since(start)).Msg("窗口已关闭")
	return nil
}
