package input

import (
	"errors"
	"fmt"
	"strings"
)

// ErrKeyStateUnsupported 当前平台无法查询按键状态
var ErrKeyStateUnsupported = errors.New("不支持查询按键状态")

// ErrUnknownKey 无法识别的按键名
var ErrUnknownKey = errors.New("未知按键")

// MaxKeys 一次最多查询的按键数量
const MaxKeys = 10

// keyAliases 常用别名，统一到左侧修饰键和 keyN 形式
var keyAliases = map[string]string{
	"ctrl":    "lcontrol",
	"control": "lcontrol",
	"shift":   "lshift",
	"alt":     "lalt",
	"option":  "lalt",
	"meta":    "lmeta",
	"cmd":     "lmeta",
	"command": "lmeta",
	"win":     "lmeta",
	"return":  "enter",
	"esc":     "escape",
	"0":       "key0",
	"1":       "key1",
	"2":       "key2",
	"3":       "key3",
	"4":       "key4",
	"5":       "key5",
	"6":       "key6",
	"7":       "key7",
	"8":       "key8",
	"9":       "key9",
}

// keyState 查询单个规范化按键是否按下，由各平台实现
var keyState = platformKeyState

// NormalizeKeys 规范化按键名：去除空白、转小写、解析别名、丢弃空值，最多保留 MaxKeys 个
func NormalizeKeys(keys ...string) []string {
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		k = strings.ToLower(strings.TrimSpace(k))
		if k == "" {
			continue
		}
		if alias, ok := keyAliases[k]; ok {
			k = alias
		}
		out = append(out, k)
		if len(out) == MaxKeys {
			break
		}
	}
	return out
}

// KeysDown 查询按键是否全部处于按下状态，没有按键时为 true
// 按键名沿用 LControl、LShift、A、Key1、F5 这类写法，不区分大小写。
func KeysDown(keys ...string) (bool, error) {
	all := true
	for _, k := range NormalizeKeys(keys...) {
		down, err := keyState(k)
		if err != nil {
			return false, fmt.Errorf("查询按键 %s: %w", k, err)
		}
		if !down {
			all = false
		}
	}
	return all, nil
}
