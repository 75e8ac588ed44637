package game

import (
	"context"
	"time"

	"github.com/PeterRapcsak/bailando/internal/platform"
	"github.com/hajimehoshi/ebiten/v2"
)

// Run 设置窗口并进入事件循环，直到窗口关闭
func Run(ctx context.Context, g *Manager, title string, pinInterval time.Duration) error {
	// 1. 基础窗口设置
	ebiten.SetWindowDecorated(false) // 无边框
	ebiten.SetWindowFloating(true)   // 始终置顶
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowSize(g.MyPet.Width, g.MyPet.Height)
	ebiten.SetWindowClosingHandled(true) // 关窗口前先保存设置

	// 30ms 一帧需要至少 34 TPS
	ebiten.SetTPS(max(ebiten.DefaultTPS, int(time.Second/g.loop.Interval())+1))

	// 2. 可选：后台反复置顶，兼容会丢掉置顶标记的系统
	pinCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	platform.KeepOnTop(pinCtx, title, pinInterval)

	// 3. 启动
	defer g.cancel()
	return ebiten.RunGameWithOptions(g, &ebiten.RunGameOptions{
		ScreenTransparent: true, // 透明背景
	})
}
