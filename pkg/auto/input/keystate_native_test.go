//go:build windows || darwin

package input

import (
	"errors"
	"testing"
)

func TestVirtualKeysCoverNames(t *testing.T) {
	names := []string{
		"lcontrol", "rcontrol", "lshift", "rshift", "lalt", "ralt", "lmeta", "rmeta",
		"space", "enter", "escape", "tab", "backspace", "capslock",
		"up", "down", "left", "right", "insert", "delete", "home", "end", "pageup", "pagedown",
		"f1", "f12",
	}
	for c := 'a'; c <= 'z'; c++ {
		names = append(names, string(c))
	}
	for c := '0'; c <= '9'; c++ {
		names = append(names, "key"+string(c))
	}
	for _, alias := range keyAliases {
		names = append(names, alias)
	}

	for _, name := range names {
		if _, ok := virtualKeys[name]; !ok {
			t.Errorf("缺少按键 %s 的键码", name)
		}
	}
}

func TestPlatformKeyStateUnknown(t *testing.T) {
	if _, err := platformKeyState("nosuchkey"); !errors.Is(err, ErrUnknownKey) {
		t.Errorf("未知按键应返回 ErrUnknownKey, 实际 %v", err)
	}
}
