package ascii

import (
	"image"
	"image/color"
	"strings"
)

// ASCII 字符集 (从黑到白)
const asciiChars = "@%#*+=-:. "

// Convert 将图片转换为 ASCII 字符串切片，用于在终端预览帧
// img: 原始图片对象
// targetWidth: 预览宽度（字符数），比如 40 或 60
func Convert(img image.Image, targetWidth int) []string {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width == 0 || height == 0 || targetWidth <= 0 {
		return nil
	}

	// 1. 计算缩放步长
	stepX := width / targetWidth
	if stepX < 1 {
		stepX = 1
	}
	// 终端字符的高通常是宽的 2 倍，所以 Y 轴采样步长要翻倍
	stepY := stepX * 2

	var result []string

	// 2. 遍历像素 (采样)
	for y := bounds.Min.Y; y < bounds.Max.Y; y += stepY {
		var line strings.Builder
		for x := bounds.Min.X; x < bounds.Max.X; x += stepX {
			line.WriteByte(pixelToASCII(img.At(x, y)))
		}
		result = append(result, strings.TrimRight(line.String(), " "))
	}

	return result
}

func pixelToASCII(c color.Color) byte {
	// 抠过图的帧：透明像素直接留白
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	if n.A < 128 {
		return ' '
	}
	gray := 0.299*float64(n.R) + 0.587*float64(n.G) + 0.114*float64(n.B)

	// 映射到字符集索引
	idx := int(gray / 255 * float64(len(asciiChars)-1))
	if idx >= len(asciiChars) {
		idx = len(asciiChars) - 1
	}
	return asciiChars[idx]
}
