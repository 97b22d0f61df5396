//go:build !darwin

package permissions

// checkPlatform 非 macOS 系统不需要特殊权限
func checkPlatform() *PermissionStatus {
	return &PermissionStatus{
		Accessibility:   true,
		ScreenRecording: true,
	}
}
