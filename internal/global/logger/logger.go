package logger

import "gitlab.com/gradebench.net/internal/adapter/logging"

var Logger = logging.NewZapLogger()

// UseDevelopment swaps the process logger for a debug-level console logger.
func UseDevelopment() {
	Logger = logging.NewDevelopmentLogger()
}

func Info(msg string, args ...interface{}) {
	Logger.Info(msg, args...)
}

func Error(msg string, args ...interface{}) {
	Logger.Error(msg, args...)
}

func Debug(msg string, args ...interface{}) {
	Logger.Debug(msg, args...)
}

func Warn(msg string, args ...interface{}) {
	Logger.Warn(msg, args...)
}
