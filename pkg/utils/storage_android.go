//go:build android

package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// stateDirName 应用私有目录下保存轨道状态的子目录
const stateDirName = "state"

// EnsureStorageDir 在 gdata 初始化前准备 Android 上的状态目录
//
// gdata 使用 /data/data/{package}/ 作为根目录，但不会创建子目录。
func EnsureStorageDir() error {
	dir, err := androidStateDir()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create state directory %s: %w", dir, err)
	}

	probe, err := os.CreateTemp(dir, ".probe-*")
	if err != nil {
		return fmt.Errorf("state directory %s is not writable: %w", dir, err)
	}
	name := probe.Name()
	probe.Close()
	os.Remove(name)

	return nil
}

func androidStateDir() (string, error) {
	pkg, err := androidPackageName()
	if err != nil {
		return "", fmt.Errorf("failed to detect Android package: %w", err)
	}
	return filepath.Join("/data/data", pkg, stateDirName), nil
}

// androidPackageName 读取进程名（即包名）
// /proc/self/cmdline 中参数以 NUL 分隔，第一个参数是进程名
func androidPackageName() (string, error) {
	data, err := os.ReadFile("/proc/self/cmdline")
	if err != nil {
		return "", err
	}

	name, _, _ := strings.Cut(string(data), "\x00")
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("empty /proc/self/cmdline")
	}
	return name, nil
}

// GetStoragePath 返回 Android 上的应用私有目录（调试用）
func GetStoragePath() string {
	pkg, err := androidPackageName()
	if err != nil {
		return ""
	}
	return filepath.Join("/data/data", pkg)
}
