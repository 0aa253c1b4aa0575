//go:build !android

package utils

// EnsureStorageDir 桌面和 iOS 上不需要预先准备目录
// gdata 首次保存轨道状态时会自行创建
func EnsureStorageDir() error {
	return nil
}

// GetStoragePath 非 Android 平台由 gdata 决定路径，这里返回空字符串
func GetStoragePath() string {
	return ""
}
