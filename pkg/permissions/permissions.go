// Package permissions 检查截图和鼠标控制所需的系统权限
package permissions

import "strings"

// PermissionStatus 权限状态
type PermissionStatus struct {
	Accessibility   bool `json:"accessibility"`
	ScreenRecording bool `json:"screen_recording"`
	AllGranted      bool `json:"all_granted"`
}

// CheckPermissions 检查所需权限
func CheckPermissions() *PermissionStatus {
	status := checkPlatform()
	status.AllGranted = status.Accessibility && status.ScreenRecording
	return status
}

// GetPermissionInstructions 获取缺失权限的说明，全部授权时返回空字符串
func GetPermissionInstructions(status *PermissionStatus) string {
	if status == nil || (status.Accessibility && status.ScreenRecording) {
		return ""
	}

	var b strings.Builder
	b.WriteString("需要授权以下权限才能正常工作:\n\n")

	if !status.Accessibility {
		b.WriteString("- 辅助功能权限 (用于移动鼠标和点击)\n")
		b.WriteString("  系统设置 > 隐私与安全性 > 辅助功能\n\n")
	}
	if !status.ScreenRecording {
		b.WriteString("- 屏幕录制权限 (用于窗口截图和模板匹配)\n")
		b.WriteString("  系统设置 > 隐私与安全性 > 屏幕录制\n\n")
	}

	b.WriteString("授权后需要重启终端才能生效。")
	return b.String()
}

// EnsurePermissions 确保权限已授予，未授予时返回说明
func EnsurePermissions() (bool, string) {
	status := CheckPermissions()
	if status.AllGranted {
		return true, ""
	}
	return false, GetPermissionInstructions(status)
}
