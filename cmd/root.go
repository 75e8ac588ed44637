package cmd

import (
	"fmt"
	"os"

	"github.com/PeterRapcsak/bailando/config"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// WindowTitle 也用来在 Windows 上按标题找窗口句柄
const WindowTitle = "Bailando"

var rootCmd = &cobra.Command{
	Use:           "bailando",
	Short:         "A looping sprite pet that sits on top of your desktop",
	Long:          "Plays a folder of frames in a frameless, transparent, always-on-top window. Drag it while unlocked; press the hotkey to lock or unlock; press Home for settings.",
	SilenceUsage:  true,
	RunE:          runPet,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("options", config.OptionsFileName, "YAML file with launch options")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().String("settings", "", "Settings file (default ~/"+config.FileName+")")
	addRunFlags(rootCmd)
}

// loadOptions 先读 YAML，再用命令行里显式给出的参数覆盖
func loadOptions(cmd *cobra.Command) (config.Options, error) {
	path, _ := cmd.Flags().GetString("options")
	opts, err := config.LoadOptions(path)
	if err != nil {
		return opts, err
	}
	flags := cmd.Flags()
	if flags.Changed("log-level") {
		opts.LogLevel, _ = flags.GetString("log-level")
	}
	if flags.Changed("settings") {
		opts.SettingsPath, _ = flags.GetString("settings")
	}
	if flags.Changed("frames") {
		opts.FramesDir, _ = flags.GetString("frames")
	}
	if flags.Changed("interval") {
		opts.Interval, _ = flags.GetDuration("interval")
	}
	if flags.Changed("order") {
		opts.Order, _ = flags.GetString("order")
	}
	if flags.Changed("configure-key") {
		opts.ConfigureKey, _ = flags.GetString("configure-key")
	}
	if flags.Changed("legacy-csv") {
		opts.LegacyCSV, _ = flags.GetString("legacy-csv")
	}
	if flags.Changed("pin-interval") {
		opts.PinInterval, _ = flags.GetDuration("pin-interval")
	}
	if flags.Changed("unlocked") {
		opts.StartUnlocked, _ = flags.GetBool("unlocked")
	}
	if flags.Changed("eager") {
		opts.Eager, _ = flags.GetBool("eager")
	}
	return opts, nil
}

func newLogger(level string) (*zerolog.Logger, error) {
	lvl := zerolog.InfoLevel
	if level != "" {
		var err error
		if lvl, err = zerolog.ParseLevel(level); err != nil {
			return nil, fmt.Errorf("unsupported log level: %s", level)
		}
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}).
		Level(lvl).
		With().
		Timestamp().
		Logger()
	return &logger, nil
}

// setup 每个子命令共用：读参数、建日志
func setup(cmd *cobra.Command) (config.Options, *zerolog.Logger, error) {
	opts, err := loadOptions(cmd)
	if err != nil {
		return opts, nil, err
	}
	logger, err := newLogger(opts.LogLevel)
	if err != nil {
		return opts, nil, err
	}
	return opts, logger, nil
}
