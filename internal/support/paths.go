package support

import (
	"os"
	"path/filepath"
	"runtime"
)

const (
	DefaultConfigDirLinux = ".config/safe"
	DefaultStateDirLinux  = ".local/state/safe"
	SystemConfigDirLinux  = "/etc/safe"
	SystemStateDirLinux   = "/var/lib/safe"
)

func GetPaths(customConfigDir, customStateDir string) (string, string) {
	var configDir, stateDir string
	if customConfigDir != "" {
		configDir = customConfigDir
	} else {
		configDir = GetDefaultConfigDir()
	}
	if customStateDir != "" {
		stateDir = customStateDir
	} else {
		stateDir = GetDefaultStateDir()
	}
	return configDir, stateDir
}

func GetDefaultConfigDir() string {
	if runtime.GOOS == "windows" {
		return filepath.Join(os.Getenv("APPDATA"), "safe")
	}
	if os.Getuid() == 0 {
		return SystemConfigDirLinux
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, DefaultConfigDirLinux)
}

func GetDefaultStateDir() string {
	if runtime.GOOS == "windows" {
		return filepath.Join(os.Getenv("LOCALAPPDATA"), "safe")
	}
	if os.Getuid() == 0 {
		return SystemStateDirLinux
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, DefaultStateDirLinux)
}
