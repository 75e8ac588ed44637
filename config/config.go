package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

// 默认值：找不到配置文件，或者文件坏了时用这份“保底”
const (
	DefaultX       = 500
	DefaultY       = 500
	DefaultHotkey  = "End"
	DefaultOpacity = 255

	// FileName 设置文件名，默认放在用户主目录
	FileName = "bailando_settings.json"
)

// Point 窗口左上角坐标 (像素)
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Settings 对应 bailando_settings.json 的内容
type Settings struct {
	Position Point  `json:"position"` // 窗口位置
	Hotkey   string `json:"hotkey"`   // 锁定/解锁快捷键
	Opacity  int    `json:"opacity"`  // 不透明度 0-255
}

// Patch 局部更新：nil 的字段保持原值
type Patch struct {
	Position *Point
	Hotkey   *string
	Opacity  *int
}

// NewDefault 生成一份默认配置
func NewDefault() Settings {
	return Settings{
		Position: Point{X: DefaultX, Y: DefaultY},
		Hotkey:   DefaultHotkey,
		Opacity:  DefaultOpacity,
	}
}

// DefaultPath 返回 ~/bailando_settings.json，拿不到主目录就放当前目录
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return FileName
	}
	return filepath.Join(home, FileName)
}

// ClampOpacity 把不透明度限制在 [0,255]
func ClampOpacity(v int) int {
	return max(0, min(255, v))
}

// Point 转成 image.Point，方便窗口层使用
func (p Point) Point() image.Point {
	return image.Pt(p.X, p.Y)
}

// Apply 把 patch 合并到 s 上，返回新的设置
func (s Settings) Apply(p Patch) Settings {
	if p.Position != nil {
		s.Position = *p.Position
	}
	if p.Hotkey != nil && *p.Hotkey != "" {
		s.Hotkey = *p.Hotkey
	}
	if p.Opacity != nil {
		s.Opacity = ClampOpacity(*p.Opacity)
	}
	return s
}

// Store 负责设置文件的读写，记住最后一次成功的设置
type Store struct {
	path      string
	legacyCSV string
	current   Settings
	log       *zerolog.Logger
}

// Open 创建 Store，不读盘；调用 Load 才会真正读取
func Open(path string, logger *zerolog.Logger) *Store {
	if path == "" {
		path = DefaultPath()
	}
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	return &Store{
		path:    path,
		current: NewDefault(),
		log:     logger,
	}
}

// WithLegacyCSV 设置旧版 data.csv 的路径，JSON 不存在时从它导入
func (s *Store) WithLegacyCSV(path string) *Store {
	s.legacyCSV = path
	return s
}

func (s *Store) Path() string { return s.path }

// Current 返回最后一次成功读写的设置
func (s *Store) Current() Settings { return s.current }

// Load 从硬盘读取设置，永远不会失败
func (s *Store) Load() Settings {
	// 1. 读文件
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.current = s.importLegacy()
			return s.current
		}
		s.log.Warn().Err(err).Str("path", s.path).Msg("读取设置失败，使用默认设置")
		s.current = NewDefault()
		return s.current
	}

	// 2. 解析 JSON：缺的字段用默认值补上
	var raw struct {
		Position *Point  `json:"position"`
		Hotkey   *string `json:"hotkey"`
		Opacity  *int    `json:"opacity"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		// 文件坏了：删掉，重新写一份默认的
		s.log.Warn().Err(err).Str("path", s.path).Msg("设置文件损坏，重置为默认设置")
		if rmErr := os.Remove(s.path); rmErr != nil && !errors.Is(rmErr, fs.ErrNotExist) {
			s.log.Warn().Err(rmErr).Msg("删除损坏的设置文件失败")
		}
		s.current = NewDefault()
		if err := s.write(s.current); err != nil {
			s.log.Warn().Err(err).Msg("写入默认设置失败")
		}
		return s.current
	}

	s.current = NewDefault().Apply(Patch{
		Position: raw.Position,
		Hotkey:   raw.Hotkey,
		Opacity:  raw.Opacity,
	})
	s.log.Info().
		Int("x", s.current.Position.X).
		Int("y", s.current.Position.Y).
		Str("hotkey", s.current.Hotkey).
		Int("opacity", s.current.Opacity).
		Msg("已加载设置")
	return s.current
}

// Save 合并 patch 并立即整份写盘
func (s *Store) Save(p Patch) error {
	next := s.current.Apply(p)
	if err := s.write(next); err != nil {
		return err
	}
	s.current = next
	s.log.Debug().
		Int("x", next.Position.X).
		Int("y", next.Position.Y).
		Str("hotkey", next.Hotkey).
		Int("opacity", next.Opacity).
		Msg("已保存设置")
	return nil
}

// SavePosition 拖拽结束时调用
func (s *Store) SavePosition(p image.Point) error {
	return s.Save(Patch{Position: &Point{X: p.X, Y: p.Y}})
}

// Reset 恢复出厂设置并写盘
func (s *Store) Reset() (Settings, error) {
	def := NewDefault()
	if err := s.write(def); err != nil {
		return s.current, err
	}
	s.current = def
	s.log.Info().Msg("设置已恢复默认")
	return def, nil
}

// write 先写临时文件再改名，避免写到一半留下半个 JSON
func (s *Store) write(st Settings) error {
	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".bailando-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp settings file: %w", err)
	}
	defer os.Remove(tmp.Name())

	encoder := json.NewEncoder(tmp)
	encoder.SetIndent("", "    ")
	if err := encoder.Encode(st); err != nil {
		tmp.Close()
		return fmt.Errorf("encode settings: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp settings file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replace settings file: %w", err)
	}
	return nil
}

// importLegacy 没有 JSON 时，尝试从旧版 CSV 导入
func (s *Store) importLegacy() Settings {
	if s.legacyCSV == "" {
		s.log.Info().Str("path", s.path).Msg("没有设置文件，使用默认设置")
		return NewDefault()
	}
	st, err := ImportLegacyCSV(s.legacyCSV)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			s.log.Warn().Err(err).Str("path", s.legacyCSV).Msg("旧版设置无法导入")
		}
		s.log.Info().Str("path", s.path).Msg("没有设置文件，使用默认设置")
		return NewDefault()
	}
	if err := s.write(st); err != nil {
		s.log.Warn().Err(err).Msg("写入导入的设置失败")
	} else {
		s.log.Info().Str("from", s.legacyCSV).Str("to", s.path).Msg("已从旧版 CSV 导入设置")
	}
	return st
}
