package frames

import (
	"context"
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"slices"
	"strings"

	_ "image/gif"  // 解码器注册
	_ "image/jpeg" // 解码器注册
	_ "image/png"  // 必加，否则 image: unknown format

	"github.com/rs/zerolog"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ErrNoFrames 目录里一张可用的图都没有
var ErrNoFrames = errors.New("no frames found")

// Order 帧的排序方式
type Order int

const (
	// Lexical 按文件名字典序："10.png" 排在 "2.png" 前面
	Lexical Order = iota
	// Numeric 数字段按数值比较："2.png" 排在 "10.png" 前面
	Numeric
)

// ParseOrder "lexical" / "numeric"，其他值报错
func ParseOrder(s string) (Order, error) {
	switch strings.ToLower(s) {
	case "", "lexical":
		return Lexical, nil
	case "numeric":
		return Numeric, nil
	}
	return Lexical, fmt.Errorf("unknown frame order %q (use lexical or numeric)", s)
}

func (o Order) String() string {
	if o == Numeric {
		return "numeric"
	}
	return "lexical"
}

var extensions = []string{".png", ".jpg", ".jpeg", ".gif", ".bmp", ".webp", ".tif", ".tiff"}

// IsImage 按扩展名判断，不区分大小写
func IsImage(name string) bool {
	return slices.Contains(extensions, strings.ToLower(filepath.Ext(name)))
}

// List 列出目录里的帧，返回排好序的完整路径
func List(dir string, order Order) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read frame directory: %w", err)
	}

	var names []string
	for _, e := range entries {
		if !e.Type().IsRegular() || !IsImage(e.Name()) {
			continue
		}
		names = append(names, e.Name())
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("%s: %w", dir, ErrNoFrames)
	}

	if order == Numeric {
		slices.SortFunc(names, naturalCompare)
	} else {
		slices.Sort(names)
	}

	paths := make([]string, len(names))
	for i, n := range names {
		paths[i] = filepath.Join(dir, n)
	}
	return paths, nil
}

// Load 读取并解码一帧
func Load(path string) (image.Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, nil
}

// Sequence 加载完成的帧序列，加载后不再修改
type Sequence struct {
	Names  []string
	Images []image.Image
}

func (s Sequence) Len() int { return len(s.Images) }

// Bounds 所有帧的最大宽高
func (s Sequence) Bounds() image.Point {
	var size image.Point
	for _, img := range s.Images {
		b := img.Bounds().Size()
		size.X = max(size.X, b.X)
		size.Y = max(size.Y, b.Y)
	}
	return size
}

// LoadAll 一次性加载所有帧，读不了的帧跳过并打警告
func LoadAll(paths []string, logger *zerolog.Logger) Sequence {
	var seq Sequence
	for _, p := range paths {
		img, err := Load(p)
		if err != nil {
			if logger != nil {
				logger.Warn().Err(err).Str("frame", p).Msg("跳过无法读取的帧")
			}
			continue
		}
		seq.Names = append(seq.Names, filepath.Base(p))
		seq.Images = append(seq.Images, img)
	}
	return seq
}

// LoadAsync 在后台协程里加载，完成后通过 channel 交回一次结果
func LoadAsync(ctx context.Context, paths []string, logger *zerolog.Logger) <-chan Sequence {
	ready := make(chan Sequence, 1)
	go func() {
		defer close(ready)
		seq := LoadAll(paths, logger)
		select {
		case ready <- seq:
		case <-ctx.Done():
		}
	}()
	return ready
}
