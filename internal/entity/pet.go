package entity

import "image"

// DragSession 一次拖拽：按下时创建，松开时清空
type DragSession struct {
	Active bool
	Grab   image.Point // 鼠标相对窗口左上角的偏移
}

// Pet 显示用的数据：帧名、画布大小、透明度、监控数据
type Pet struct {
	Frames  []string // 帧文件名，按播放顺序
	Width   int      // 窗口宽度 (像素)
	Height  int      // 窗口高度 (像素)
	Opacity int      // 0-255

	CPUUsage float64 // CPU 使用率 (0-100)
	MemUsage float64 // 内存 使用率 (0-100)
}

// Alpha 把 0-255 的透明度换成绘制用的系数
func (p *Pet) Alpha() float32 {
	return float32(max(0, min(255, p.Opacity))) / 255
}
