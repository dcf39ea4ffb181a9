package configs

import "go.uber.org/zap"

// Logger is the process-wide structured logger. Falls back to a no-op
// logger so tests never need logging setup.
var Logger *zap.Logger = newLogger()

func newLogger() *zap.Logger {
	logger, err := zap.NewProduction()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}
