//go:build windows

package platform

import (
	"context"
	"errors"
	"syscall"
	"time"
	"unsafe"
)

const (
	wsExToolWindow   = 0x00000080
	wsExAppWindow    = 0x00040000
	swHide           = 0
	swShowNoActivate = 4

	swpNoSize     = 0x0001
	swpNoMove     = 0x0002
	swpNoActivate = 0x0010
)

const gwlExStyle int32 = -20

// HWND_TOPMOST = (HWND)-1
var hwndTopmost = ^uintptr(0)

var (
	user32            = syscall.NewLazyDLL("user32.dll")
	procFindWindowW   = user32.NewProc("FindWindowW")
	procGetWindowLong = user32.NewProc(windowLongName("Get"))
	procSetWindowLong = user32.NewProc(windowLongName("Set"))
	procSetWindowPos  = user32.NewProc("SetWindowPos")
	procShowWindow    = user32.NewProc("ShowWindow")
)

// windowLongName 32 位的 user32 没有 *WindowLongPtrW，只能用 *WindowLongW
func windowLongName(op string) string {
	if unsafe.Sizeof(uintptr(0)) == 4 {
		return op + "WindowLongW"
	}
	return op + "WindowLongPtrW"
}

func index(i int32) uintptr {
	return uintptr(uint32(i))
}

var errWindowNotFound = errors.New("window not found")

func findWindow(title string) (uintptr, error) {
	p, err := syscall.UTF16PtrFromString(title)
	if err != nil {
		return 0, err
	}
	hwnd, _, _ := procFindWindowW.Call(0, uintptr(unsafe.Pointer(p)))
	if hwnd == 0 {
		return 0, errWindowNotFound
	}
	return hwnd, nil
}

// SetTaskbarVisible 隐藏时把窗口变成工具窗口，任务栏上就没有它了
func SetTaskbarVisible(title string, visible bool) error {
	hwnd, err := findWindow(title)
	if err != nil {
		return err
	}
	style, _, _ := procGetWindowLong.Call(hwnd, index(gwlExStyle))
	if visible {
		style = (style &^ wsExToolWindow) | wsExAppWindow
	} else {
		style = (style &^ wsExAppWindow) | wsExToolWindow
	}
	// 任务栏只在窗口重新显示时刷新
	procShowWindow.Call(hwnd, swHide)
	procSetWindowLong.Call(hwnd, index(gwlExStyle), style)
	procShowWindow.Call(hwnd, swShowNoActivate)
	return nil
}

// KeepOnTop 每隔 interval 把窗口重新放到最上层，直到 ctx 取消
// 只碰窗口句柄，不碰动画和设置
func KeepOnTop(ctx context.Context, title string, interval time.Duration) {
	if interval <= 0 {
		return
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
			hwnd, err := findWindow(title)
			if err != nil {
				continue
			}
			procSetWindowPos.Call(hwnd, hwndTopmost, 0, 0, 0, 0, swpNoMove|swpNoSize|swpNoActivate)
		}
	}()
}
