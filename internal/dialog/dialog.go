package dialog

import (
	"fmt"
	"strings"

	"github.com/PeterRapcsak/bailando/config"
)

// 面板里的控制键，不能被设成快捷键
const (
	KeyCancel  = "Escape"
	KeyConfirm = "Enter"
	KeyUp      = "ArrowUp"
	KeyDown    = "ArrowDown"
	KeyReset   = "Delete"

	OpacityStep = 5
)

// Result 每次按键后面板的状态
type Result int

const (
	Pending Result = iota
	Confirmed
	Cancelled
	Reset
)

// Dialog 设置面板：捕获下一个按键作为快捷键，调节透明度
// 透明度改动立刻预览，确认时才写盘
type Dialog struct {
	original  config.Settings
	configure string
	candidate string
	opacity   int
	message   string
}

// Open 打开面板；configure 是打开面板用的键，不能被设为快捷键
func Open(current config.Settings, configure string) *Dialog {
	return &Dialog{
		original:  current,
		configure: configure,
		opacity:   config.ClampOpacity(current.Opacity),
		message:   "Press any key to set as hotkey",
	}
}

func (d *Dialog) Opacity() int { return d.opacity }
func (d *Dialog) Candidate() string { return d.candidate }
func (d *Dialog) Message() string { return d.message }

// Hotkey 当前显示的快捷键：新捕获的，或者原来的
func (d *Dialog) Hotkey() string {
	if d.candidate != "" {
		return d.candidate
	}
	return d.original.Hotkey
}

// Key 处理一次按键
func (d *Dialog) Key(name string) Result {
	switch {
	case name == "":
		d.message = "Invalid key! Please try again."
		return Pending
	case strings.EqualFold(name, KeyCancel):
		d.opacity = config.ClampOpacity(d.original.Opacity) // 撤销预览
		return Cancelled
	case strings.EqualFold(name, KeyConfirm):
		return Confirmed
	case strings.EqualFold(name, KeyUp):
		d.AdjustOpacity(OpacityStep)
		return Pending
	case strings.EqualFold(name, KeyDown):
		d.AdjustOpacity(-OpacityStep)
		return Pending
	case strings.EqualFold(name, KeyReset):
		// 默认值已经写盘，之后取消也只退回到默认值
		def := config.NewDefault()
		d.original = def
		d.candidate = def.Hotkey
		d.opacity = def.Opacity
		d.message = fmt.Sprintf("Current hotkey: %s", strings.ToUpper(def.Hotkey))
		return Reset
	case strings.EqualFold(name, d.configure):
		d.message = fmt.Sprintf("%s key cannot be set as hotkey!", d.configure)
		return Pending
	}
	d.candidate = name
	d.message = fmt.Sprintf("Current hotkey: %s", strings.ToUpper(name))
	return Pending
}

// Wheel 滚轮调透明度，相当于滑块
func (d *Dialog) Wheel(delta float64) {
	switch {
	case delta > 0:
		d.AdjustOpacity(OpacityStep)
	case delta < 0:
		d.AdjustOpacity(-OpacityStep)
	}
}

// AdjustOpacity 改变透明度并限制在 [0,255]
func (d *Dialog) AdjustOpacity(delta int) int {
	d.opacity = config.ClampOpacity(d.opacity + delta)
	return d.opacity
}

// Patch 确认时要写回的内容
func (d *Dialog) Patch() config.Patch {
	op := d.opacity
	p := config.Patch{Opacity: &op}
	if d.candidate != "" {
		hk := d.candidate
		p.Hotkey = &hk
	}
	return p
}

// Lines 面板上要画的文字
func (d *Dialog) Lines() []string {
	return []string{
		"Configuration",
		d.message,
		fmt.Sprintf("Hotkey: %s", strings.ToUpper(d.Hotkey())),
		fmt.Sprintf("Opacity: %d/255  (Up/Down, wheel)", d.opacity),
		"Enter: save  Esc: cancel  Del: reset",
	}
}
