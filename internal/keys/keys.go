package keys

import (
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
)

// Default 设置里的快捷键认不出来时，退回到 End
const Default = ebiten.KeyEnd

// 支持的按键：名字 -> ebiten 按键
// 名字就是写进设置文件的样子，读的时候不区分大小写
var table = []struct {
	name string
	key  ebiten.Key
}{
	{"End", ebiten.KeyEnd},
	{"Home", ebiten.KeyHome},
	{"Insert", ebiten.KeyInsert},
	{"Delete", ebiten.KeyDelete},
	{"PageUp", ebiten.KeyPageUp},
	{"PageDown", ebiten.KeyPageDown},
	{"Pause", ebiten.KeyPause},
	{"ScrollLock", ebiten.KeyScrollLock},
	{"PrintScreen", ebiten.KeyPrintScreen},
	{"Escape", ebiten.KeyEscape},
	{"Enter", ebiten.KeyEnter},
	{"Space", ebiten.KeySpace},
	{"Tab", ebiten.KeyTab},
	{"Backspace", ebiten.KeyBackspace},
	{"Backquote", ebiten.KeyBackquote},
	{"ArrowUp", ebiten.KeyArrowUp},
	{"ArrowDown", ebiten.KeyArrowDown},
	{"ArrowLeft", ebiten.KeyArrowLeft},
	{"ArrowRight", ebiten.KeyArrowRight},
	{"F1", ebiten.KeyF1},
	{"F2", ebiten.KeyF2},
	{"F3", ebiten.KeyF3},
	{"F4", ebiten.KeyF4},
	{"F5", ebiten.KeyF5},
	{"F6", ebiten.KeyF6},
	{"F7", ebiten.KeyF7},
	{"F8", ebiten.KeyF8},
	{"F9", ebiten.KeyF9},
	{"F10", ebiten.KeyF10},
	{"F11", ebiten.KeyF11},
	{"F12", ebiten.KeyF12},
	{"0", ebiten.KeyDigit0},
	{"1", ebiten.KeyDigit1},
	{"2", ebiten.KeyDigit2},
	{"3", ebiten.KeyDigit3},
	{"4", ebiten.KeyDigit4},
	{"5", ebiten.KeyDigit5},
	{"6", ebiten.KeyDigit6},
	{"7", ebiten.KeyDigit7},
	{"8", ebiten.KeyDigit8},
	{"9", ebiten.KeyDigit9},
	{"A", ebiten.KeyA},
	{"B", ebiten.KeyB},
	{"C", ebiten.KeyC},
	{"D", ebiten.KeyD},
	{"E", ebiten.KeyE},
	{"F", ebiten.KeyF},
	{"G", ebiten.KeyG},
	{"H", ebiten.KeyH},
	{"I", ebiten.KeyI},
	{"J", ebiten.KeyJ},
	{"K", ebiten.KeyK},
	{"L", ebiten.KeyL},
	{"M", ebiten.KeyM},
	{"N", ebiten.KeyN},
	{"O", ebiten.KeyO},
	{"P", ebiten.KeyP},
	{"Q", ebiten.KeyQ},
	{"R", ebiten.KeyR},
	{"S", ebiten.KeyS},
	{"T", ebiten.KeyT},
	{"U", ebiten.KeyU},
	{"V", ebiten.KeyV},
	{"W", ebiten.KeyW},
	{"X", ebiten.KeyX},
	{"Y", ebiten.KeyY},
	{"Z", ebiten.KeyZ},
}

var (
	byName = make(map[string]ebiten.Key, len(table))
	byKey  = make(map[ebiten.Key]string, len(table))
)

func init() {
	for _, e := range table {
		byName[strings.ToLower(e.name)] = e.key
		byKey[e.key] = e.name
	}
	// 旧版 Qt 存的别名
	byName["esc"] = ebiten.KeyEscape
	byName["return"] = ebiten.KeyEnter
	byName["del"] = ebiten.KeyDelete
	byName["ins"] = ebiten.KeyInsert
	byName["pgup"] = ebiten.KeyPageUp
	byName["pgdown"] = ebiten.KeyPageDown
	byName["up"] = ebiten.KeyArrowUp
	byName["down"] = ebiten.KeyArrowDown
	byName["left"] = ebiten.KeyArrowLeft
	byName["right"] = ebiten.KeyArrowRight
}

// Lookup 按名字找按键，不区分大小写
func Lookup(name string) (ebiten.Key, bool) {
	k, ok := byName[strings.ToLower(strings.TrimSpace(name))]
	return k, ok
}

// Parse 和 Lookup 一样，但找不到时返回 Default，ok=false
func Parse(name string) (ebiten.Key, bool) {
	if k, ok := Lookup(name); ok {
		return k, true
	}
	return Default, false
}

// Name 返回按键的标准名字；不在表里的返回空字符串
func Name(k ebiten.Key) string {
	return byKey[k]
}

// Canonical 把任意写法的名字规范化，比如 "END" -> "End"
func Canonical(name string) (string, bool) {
	k, ok := Lookup(name)
	if !ok {
		return "", false
	}
	return byKey[k], true
}
