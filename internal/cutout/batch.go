package cutout

import (
	"context"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"

	"github.com/PeterRapcsak/bailando/internal/frames"
	"github.com/rs/zerolog"
)

// Report 批处理结果
type Report struct {
	Written []string // 输出文件，按处理顺序
	Skipped []string // 读不了或解不开的输入
}

// Batch 处理 inDir 里的每个文件，结果依次写成 outDir/1.png, 2.png, ...
// 单个文件失败只跳过，不中断整批
func Batch(ctx context.Context, inDir, outDir string, opt Options, logger *zerolog.Logger) (Report, error) {
	var rep Report
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}

	// 1. 准备输出目录
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return rep, fmt.Errorf("create output directory: %w", err)
	}

	// 2. 按文件名排序遍历 (ReadDir 已经排好序)
	entries, err := os.ReadDir(inDir)
	if err != nil {
		return rep, fmt.Errorf("read input directory: %w", err)
	}

	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return rep, err
		}
		if !e.Type().IsRegular() {
			continue
		}
		in := filepath.Join(inDir, e.Name())

		img, err := frames.Load(in)
		if err != nil {
			logger.Warn().Err(err).Str("file", in).Msg("跳过无法读取的图片")
			rep.Skipped = append(rep.Skipped, in)
			continue
		}

		out := filepath.Join(outDir, fmt.Sprintf("%d.png", len(rep.Written)+1))
		if err := writePNG(out, Remove(img, opt)); err != nil {
			return rep, err
		}
		rep.Written = append(rep.Written, out)
		logger.Info().Str("in", e.Name()).Str("out", filepath.Base(out)).Msg("已处理")
	}
	return rep, nil
}

func writePNG(path string, img *image.NRGBA) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}
