//go:build windows

package input

import (
	"strconv"

	"golang.org/x/sys/windows"
)

var (
	user32               = windows.NewLazySystemDLL("user32.dll")
	procGetAsyncKeyState = user32.NewProc("GetAsyncKeyState")
)

// virtualKeys 按键名到 Windows 虚拟键码
var virtualKeys = buildVirtualKeys()

func buildVirtualKeys() map[string]uintptr {
	m := map[string]uintptr{
		"lshift":    0xA0,
		"rshift":    0xA1,
		"lcontrol":  0xA2,
		"rcontrol":  0xA3,
		"lalt":      0xA4,
		"ralt":      0xA5,
		"lmeta":     0x5B,
		"rmeta":     0x5C,
		"space":     0x20,
		"enter":     0x0D,
		"escape":    0x1B,
		"tab":       0x09,
		"backspace": 0x08,
		"capslock":  0x14,
		"left":      0x25,
		"up":        0x26,
		"right":     0x27,
		"down":      0x28,
		"insert":    0x2D,
		"delete":    0x2E,
		"home":      0x24,
		"end":       0x23,
		"pageup":    0x21,
		"pagedown":  0x22,
	}
	for c := 'a'; c <= 'z'; c++ {
		m[string(c)] = uintptr(c - 'a' + 'A')
	}
	for d := 0; d <= 9; d++ {
		m["key"+strconv.Itoa(d)] = uintptr('0' + d)
	}
	for f := 1; f <= 12; f++ {
		m["f"+strconv.Itoa(f)] = uintptr(0x70 + f - 1)
	}
	return m
}

// platformKeyState 通过 GetAsyncKeyState 查询，最高位为 1 表示按下
func platformKeyState(name string) (bool, error) {
	vk, ok := virtualKeys[name]
	if !ok {
		return false, ErrUnknownKey
	}
	r, _, _ := procGetAsyncKeyState.Call(vk)
	return r&0x8000 != 0, nil
}
