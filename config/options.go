package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// OptionsFileName 启动参数文件，放在当前目录，可选
const OptionsFileName = "bailando.yaml"

// Options 启动参数：不会被程序写回，只在启动时读一次
type Options struct {
	FramesDir     string        `yaml:"frames"`
	Interval      time.Duration `yaml:"interval"`
	SettingsPath  string        `yaml:"settings"`
	LegacyCSV     string        `yaml:"legacy_csv"`
	ConfigureKey  string        `yaml:"configure_key"`
	Order         string        `yaml:"order"`
	PinInterval   time.Duration `yaml:"pin_interval"`
	StartUnlocked bool          `yaml:"start_unlocked"`
	Eager         bool          `yaml:"eager"`
	LogLevel      string        `yaml:"log_level"`
}

// DefaultOptions 默认启动参数
func DefaultOptions() Options {
	return Options{
		FramesDir:    "img",
		Interval:     30 * time.Millisecond,
		SettingsPath: DefaultPath(),
		LegacyCSV:    LegacyFileName,
		ConfigureKey: "Home",
		Order:        "lexical",
		LogLevel:     "info",
	}
}

// LoadOptions 读取 YAML 启动参数；文件不存在不算错，格式错误算错
func LoadOptions(path string) (Options, error) {
	opts := DefaultOptions()
	if path == "" {
		return opts, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return opts, nil
		}
		return opts, fmt.Errorf("read options: %w", err)
	}
	if err := yaml.Unmarshal(data, &opts); err != nil {
		return DefaultOptions(), fmt.Errorf("parse options %s: %w", path, err)
	}
	if opts.Interval <= 0 {
		opts.Interval = 30 * time.Millisecond
	}
	if opts.SettingsPath == "" {
		opts.SettingsPath = DefaultPath()
	}
	return opts, nil
}
