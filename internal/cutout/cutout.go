package cutout

import (
	"image"
	"math"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/draw"
	"gonum.org/v1/gonum/stat"
)

// Options 抠图参数
type Options struct {
	// 背景色的估计方法
	Method Method
	// 从边框取几个背景色，纯色背景 1 个就够，渐变或暗角用 2-3 个
	Colors int
	// 阈值 = 边框 Lab 距离的均值 + Tolerance*标准差
	// 越大主体边缘留得越多，越小切得越深
	Tolerance float64
	// 阈值下限，纯色边框也要容得下压缩噪点 (Lab 距离，0.023 约等于人眼刚能分辨)
	Threshold float64
	// 阈值之上透明度渐变的宽度，Lab 距离
	Softness float64
	// 透明度腐蚀半径 (像素)，0 表示不腐蚀
	Erode int
}

// DefaultOptions 对白底或纯色底的渲染图够用
func DefaultOptions() Options {
	return Options{
		Method:    MethodDominantColor,
		Colors:    2,
		Tolerance: 3,
		Threshold: 0.06,
		Softness:  0.06,
		Erode:     1,
	}
}

// Remove 返回去掉背景的 NRGBA 图
//
// 背景 = 从边框出发、经过和边框颜色相近 (Lab 空间) 的像素能连到的区域
// 被主体包住的同色像素保持不透明
func Remove(img image.Image, opt Options) *image.NRGBA {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	src := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.Draw(src, src.Bounds(), img, b.Min, draw.Src)
	if w == 0 || h == 0 {
		return src
	}

	border := borderRing(w, h, max(1, min(w, h)/50))
	palette := backgroundPalette(src, border, max(1, opt.Colors), opt.Method)
	dist := labDistances(src, palette)

	borderDist := make([]float64, len(border))
	for i, idx := range border {
		borderDist[i] = dist[idx]
	}
	mean, std := stat.MeanStdDev(borderDist, nil)
	if math.IsNaN(std) {
		std = 0
	}
	lo := max(mean+opt.Tolerance*std, opt.Threshold)
	hi := lo + max(opt.Softness, 1e-6)

	alpha := floodBackground(dist, border, w, h, lo, hi)
	if opt.Erode > 0 {
		alpha = erode(alpha, w, h, opt.Erode)
	}

	out := image.NewNRGBA(src.Bounds())
	copy(out.Pix, src.Pix)
	for i, a := range alpha {
		out.Pix[i*4+3] = uint8(math.Round(float64(src.Pix[i*4+3]) * a))
	}
	return out
}

// borderRing 离图片边缘 ring 像素以内的像素下标
func borderRing(w, h, ring int) []int {
	var idx []int
	for y := range h {
		for x := range w {
			if x < ring || y < ring || x >= w-ring || y >= h-ring {
				idx = append(idx, y*w+x)
			}
		}
	}
	return idx
}

// labDistances 每个像素到最近背景色的距离
// 完全透明的像素算背景
func labDistances(src *image.NRGBA, palette []colorful.Color) []float64 {
	type lab struct{ l, a, b float64 }
	refs := make([]lab, len(palette))
	for i, c := range palette {
		l, a, bb := c.Lab()
		refs[i] = lab{l, a, bb}
	}

	n := len(src.Pix) / 4
	dist := make([]float64, n)
	cache := make(map[[3]uint8]float64)
	for i := range n {
		px := src.Pix[i*4 : i*4+4]
		if px[3] == 0 {
			continue
		}
		key := [3]uint8{px[0], px[1], px[2]}
		if d, ok := cache[key]; ok {
			dist[i] = d
			continue
		}
		c := colorful.Color{R: float64(px[0]) / 255, G: float64(px[1]) / 255, B: float64(px[2]) / 255}
		l, a, bb := c.Lab()
		best := math.MaxFloat64
		for _, r := range refs {
			dl, da, db := l-r.l, a-r.a, bb-r.b
			best = min(best, math.Sqrt(dl*dl+da*da+db*db))
		}
		cache[key] = best
		dist[i] = best
	}
	return dist
}

// floodBackground 从边框开始，经过距离小于 hi 的像素扩展背景
// 扩展到的像素在 [lo, hi] 上平滑过渡透明度，其余是前景
func floodBackground(dist []float64, border []int, w, h int, lo, hi float64) []float64 {
	alpha := make([]float64, len(dist))
	for i := range alpha {
		alpha[i] = 1
	}
	seen := make([]bool, len(dist))
	queue := make([]int, 0, len(border))
	for _, idx := range border {
		if dist[idx] < hi && !seen[idx] {
			seen[idx] = true
			queue = append(queue, idx)
		}
	}
	for len(queue) > 0 {
		idx := queue[0]
		queue = queue[1:]
		alpha[idx] = smoothstep(lo, hi, dist[idx])

		x, y := idx%w, idx/w
		for _, nb := range [4][2]int{{x - 1, y}, {x + 1, y}, {x, y - 1}, {x, y + 1}} {
			if nb[0] < 0 || nb[1] < 0 || nb[0] >= w || nb[1] >= h {
				continue
			}
			n := nb[1]*w + nb[0]
			if seen[n] || dist[n] >= hi {
				continue
			}
			seen[n] = true
			queue = append(queue, n)
		}
	}
	return alpha
}

func smoothstep(lo, hi, v float64) float64 {
	t := (v - lo) / (hi - lo)
	t = max(0, min(1, t))
	return t * t * (3 - 2*t)
}

// erode 半径 r 的最小值滤波，横竖各做一遍
func erode(alpha []float64, w, h, r int) []float64 {
	tmp := make([]float64, len(alpha))
	for y := range h {
		for x := range w {
			m := 1.0
			for dx := max(0, x-r); dx <= min(w-1, x+r); dx++ {
				m = min(m, alpha[y*w+dx])
			}
			tmp[y*w+x] = m
		}
	}
	out := make([]float64, len(alpha))
	for y := range h {
		for x := range w {
			m := 1.0
			for dy := max(0, y-r); dy <= min(h-1, y+r); dy++ {
				m = min(m, tmp[dy*w+x])
			}
			out[y*w+x] = m
		}
	}
	return out
}
