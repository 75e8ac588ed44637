package overlay

import "strings"

// Action 按键对应的动作
type Action int

const (
	ActionNone Action = iota
	ActionToggle
	ActionConfigure
)

// Route 决定按键做什么：快捷键优先，和设置键冲突时按快捷键处理
func Route(key, hotkey, configure string) Action {
	if key == "" {
		return ActionNone
	}
	switch {
	case strings.EqualFold(key, hotkey):
		return ActionToggle
	case strings.EqualFold(key, configure):
		return ActionConfigure
	}
	return ActionNone
}
