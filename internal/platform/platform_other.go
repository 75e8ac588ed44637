//go:build !windows

package platform

import (
	"context"
	"time"
)

// SetTaskbarVisible 其他平台没有统一的接口，什么都不做
func SetTaskbarVisible(string, bool) error { return nil }

// KeepOnTop 其他平台依赖 ebiten.SetWindowFloating
func KeepOnTop(context.Context, string, time.Duration) {}
