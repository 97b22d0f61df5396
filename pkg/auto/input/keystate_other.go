//go:build !windows && !darwin

package input

// platformKeyState 其他平台暂不支持查询按键状态
func platformKeyState(string) (bool, error) {
	return false, ErrKeyStateUnsupported
}
