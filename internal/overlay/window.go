package overlay

import (
	"image"

	"github.com/PeterRapcsak/bailando/internal/entity"
)

// State 窗口锁定状态
type State int

const (
	Locked State = iota
	Unlocked
)

func (s State) String() string {
	if s == Unlocked {
		return "unlocked"
	}
	return "locked"
}

// Surface 宿主窗口需要提供的能力
type Surface interface {
	MoveTo(p image.Point)
	SetTaskbarVisible(visible bool)
}

// PositionStore 拖拽结束时保存位置
type PositionStore interface {
	SavePosition(p image.Point) error
}

// Window 锁定/拖拽状态机，所有方法都在事件循环里调用
//
// Locked：不能拖拽，不显示在任务栏
// Unlocked：可以拖拽，显示在任务栏
type Window struct {
	state   State
	origin  image.Point
	drag    entity.DragSession
	surface Surface
	store   PositionStore
}

// New 创建状态机，并把初始状态应用到窗口上
func New(surface Surface, store PositionStore, origin image.Point, initial State) *Window {
	w := &Window{
		state:   initial,
		origin:  origin,
		surface: surface,
		store:   store,
	}
	w.surface.MoveTo(origin)
	w.apply()
	return w
}

func (w *Window) State() State { return w.state }
func (w *Window) Locked() bool { return w.state == Locked }
func (w *Window) Origin() image.Point { return w.origin }
func (w *Window) Dragging() bool { return w.drag.Active }
func (w *Window) Drag() entity.DragSession { return w.drag }

// Toggle 切换锁定状态，返回新状态
func (w *Window) Toggle() State {
	if w.state == Locked {
		w.state = Unlocked
	} else {
		w.state = Locked
		w.drag = entity.DragSession{}
	}
	w.apply()
	return w.state
}

func (w *Window) apply() {
	w.surface.SetTaskbarVisible(w.state == Unlocked)
}

// Press 鼠标按下：只有解锁时才开始拖拽
func (w *Window) Press(pointer image.Point) bool {
	if w.state != Unlocked {
		return false
	}
	w.drag = entity.DragSession{Active: true, Grab: pointer.Sub(w.origin)}
	return true
}

// Move 拖拽中：新窗口位置 = 鼠标屏幕位置 - 按下时的偏移
func (w *Window) Move(pointer image.Point) bool {
	if !w.drag.Active || w.state != Unlocked {
		return false
	}
	next := pointer.Sub(w.drag.Grab)
	if next == w.origin {
		return false
	}
	w.origin = next
	w.surface.MoveTo(next)
	return true
}

// Release 松开鼠标：结束拖拽并保存位置
func (w *Window) Release() error {
	if !w.drag.Active {
		return nil
	}
	w.drag = entity.DragSession{}
	return w.store.SavePosition(w.origin)
}

// MoveTo 直接挪窗口，不保存（重置设置时用）
func (w *Window) MoveTo(p image.Point) {
	w.origin = p
	w.surface.MoveTo(p)
}

// Track 记下窗口的实际位置（窗口管理器可能挪过它），不移动也不保存
func (w *Window) Track(p image.Point) {
	if !w.drag.Active {
		w.origin = p
	}
}
