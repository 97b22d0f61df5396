//go:build darwin

package input

/*
#cgo LDFLAGS: -framework ApplicationServices
#include <ApplicationServices/ApplicationServices.h>

int isKeyPressed(int code) {
    return CGEventSourceKeyState(kCGEventSourceStateCombinedSessionState, (CGKeyCode)code) ? 1 : 0;
}
*/
import "C"

// virtualKeys 按键名到 macOS kVK_* 键码
var virtualKeys = map[string]int{
	"a": 0x00, "s": 0x01, "d": 0x02, "f": 0x03, "h": 0x04, "g": 0x05, "z": 0x06,
	"x": 0x07, "c": 0x08, "v": 0x09, "b": 0x0B, "q": 0x0C, "w": 0x0D, "e": 0x0E,
	"r": 0x0F, "y": 0x10, "t": 0x11, "o": 0x1F, "u": 0x20, "i": 0x22, "p": 0x23,
	"l": 0x25, "j": 0x26, "k": 0x28, "n": 0x2D, "m": 0x2E,

	"key1": 0x12, "key2": 0x13, "key3": 0x14, "key4": 0x15, "key5": 0x17,
	"key6": 0x16, "key7": 0x1A, "key8": 0x1C, "key9": 0x19, "key0": 0x1D,

	"f1": 0x7A, "f2": 0x78, "f3": 0x63, "f4": 0x76, "f5": 0x60, "f6": 0x61,
	"f7": 0x62, "f8": 0x64, "f9": 0x65, "f10": 0x6D, "f11": 0x67, "f12": 0x6F,

	"lmeta":    0x37,
	"rmeta":    0x36,
	"lshift":   0x38,
	"rshift":   0x3C,
	"lalt":     0x3A,
	"ralt":     0x3D,
	"lcontrol": 0x3B,
	"rcontrol": 0x3E,
	"capslock": 0x39,

	"enter":     0x24,
	"tab":       0x30,
	"space":     0x31,
	"backspace": 0x33,
	"escape":    0x35,
	"insert":    0x72, // kVK_Help
	"delete":    0x75,
	"home":      0x73,
	"end":       0x77,
	"pageup":    0x74,
	"pagedown":  0x79,
	"left":      0x7B,
	"right":     0x7C,
	"down":      0x7D,
	"up":        0x7E,
}

// platformKeyState 通过 CGEventSourceKeyState 查询，需要辅助功能权限
func platformKeyState(name string) (bool, error) {
	code, ok := virtualKeys[name]
	if !ok {
		return false, ErrUnknownKey
	}
	return C.isKeyPressed(C.int(code)) == 1, nil
}
