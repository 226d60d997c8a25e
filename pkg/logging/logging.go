package logging

import (
	"io"
	"os"
	"path/filepath"
	"runtime"

	"github.com/natefinch/lumberjack"
	"github.com/sirupsen/logrus"
)

const (
	defaultLogDirLinux = ".local/state/safe/logs"
	systemLogDirLinux  = "/var/log/safe"
)

func Component(name string) *logrus.Entry {
	return logrus.WithField("component", name)
}

func App(name string) *logrus.Entry {
	return Component(name)
}

// SetupLogging configures the standard logrus logger. When logPath is not empty
// log entries are also written to a rotated file at that path.
func SetupLogging(verbose bool, logPath string) {
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
	if verbose {
		logrus.SetLevel(logrus.DebugLevel)
	} else {
		logrus.SetLevel(logrus.WarnLevel)
	}

	if logPath == "" {
		logrus.SetOutput(os.Stderr)
		return
	}

	if err := os.MkdirAll(filepath.Dir(logPath), 0700); err != nil {
		logrus.Warnf("Cannot create log directory, logging to stderr only: %v", err)
		logrus.SetOutput(os.Stderr)
		return
	}

	logrus.SetOutput(io.MultiWriter(os.Stderr, NewRotatingWriter(logPath)))
}

// NewRotatingWriter returns a size-rotated log file writer.
func NewRotatingWriter(path string) io.WriteCloser {
	return &lumberjack.Logger{
		Filename:   path,
		MaxSize:    5, // megabytes
		MaxBackups: 3,
		MaxAge:     28, // days
		Compress:   true,
	}
}

func GetDefaultLogDir() string {
	if runtime.GOOS == "windows" {
		return filepath.Join(os.Getenv("LOCALAPPDATA"), "safe", "logs")
	}
	if os.Getuid() == 0 {
		return systemLogDirLinux
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, defaultLogDirLinux)
}
