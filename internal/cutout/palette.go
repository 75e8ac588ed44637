package cutout

import (
	"fmt"
	"image"
	"image/color"
	"slices"
	"strings"

	"github.com/cenkalti/dominantcolor"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/clusters"
	"github.com/muesli/kmeans"
)

// Method 估计背景色的方法
type Method int

const (
	MethodDominantColor Method = iota
	MethodKMeans
)

func (m Method) String() string {
	switch m {
	case MethodKMeans:
		return "kmeans"
	default:
		return "dominantcolor"
	}
}

func ParseMethod(s string) (Method, error) {
	switch strings.ToLower(s) {
	case "", "dominant", "dominantcolor":
		return MethodDominantColor, nil
	case "kmeans":
		return MethodKMeans, nil
	}
	return MethodDominantColor, fmt.Errorf("unknown palette method %q (use dominantcolor or kmeans)", s)
}

// backgroundPalette 从边框像素里估计 k 个背景色
func backgroundPalette(src *image.NRGBA, border []int, k int, method Method) []colorful.Color {
	if k <= 0 || len(border) == 0 {
		return nil
	}
	var p []colorful.Color
	if method == MethodKMeans {
		p = kmeansPalette(src, border, k)
	}
	if len(p) == 0 {
		p = dominantPalette(src, border, k)
	}
	if len(p) == 0 {
		p = []colorful.Color{meanColor(src, border)}
	}
	return p
}

// borderStrip 把边框像素排成一行，交给 dominantcolor
func borderStrip(src *image.NRGBA, border []int) *image.NRGBA {
	strip := image.NewNRGBA(image.Rect(0, 0, len(border), 1))
	for i, idx := range border {
		copy(strip.Pix[i*4:i*4+4], src.Pix[idx*4:idx*4+4])
	}
	return strip
}

func dominantPalette(src *image.NRGBA, border []int, k int) []colorful.Color {
	cands := dominantcolor.FindWeight(borderStrip(src, border), max(k*4, 8))
	slices.SortFunc(cands, func(a, b dominantcolor.Color) int {
		switch {
		case a.Weight > b.Weight:
			return -1
		case a.Weight < b.Weight:
			return 1
		}
		return 0
	})
	out := make([]colorful.Color, 0, k)
	for _, c := range cands {
		if len(out) == k {
			break
		}
		col, _ := colorful.MakeColor(c.RGBA)
		out = append(out, col.Clamped())
	}
	return out
}

func kmeansPalette(src *image.NRGBA, border []int, k int) []colorful.Color {
	dataset := make(clusters.Observations, 0, len(border))
	for _, idx := range border {
		px := src.Pix[idx*4 : idx*4+4]
		if px[3] == 0 {
			continue
		}
		dataset = append(dataset, clusters.Coordinates{
			float64(px[0]) / 255.0,
			float64(px[1]) / 255.0,
			float64(px[2]) / 255.0,
		})
	}
	k = min(k, len(dataset))
	if k <= 0 {
		return nil
	}
	cc, err := kmeans.New().Partition(dataset, k)
	if err != nil || len(cc) == 0 {
		return nil
	}
	// 人口多的簇排前面
	slices.SortFunc(cc, func(a, b clusters.Cluster) int {
		return len(b.Observations) - len(a.Observations)
	})
	out := make([]colorful.Color, 0, len(cc))
	for _, c := range cc {
		if len(c.Observations) == 0 || len(c.Center) < 3 {
			continue
		}
		out = append(out, colorful.Color{R: c.Center[0], G: c.Center[1], B: c.Center[2]}.Clamped())
	}
	return out
}

func meanColor(src *image.NRGBA, border []int) colorful.Color {
	var r, g, b float64
	for _, idx := range border {
		px := src.Pix[idx*4 : idx*4+4]
		r += float64(px[0])
		g += float64(px[1])
		b += float64(px[2])
	}
	n := float64(len(border)) * 255
	col, _ := colorful.MakeColor(color.NRGBA{
		R: uint8(r / n * 255),
		G: uint8(g / n * 255),
		B: uint8(b / n * 255),
		A: 255,
	})
	return col
}
