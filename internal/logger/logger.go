package logger

import (
	"go.uber.org/zap"
)

// Log is the application-wide structured logger.
var Log *zap.Logger

// Init builds the global logger. Production config in deployed
// environments, development config otherwise.
func Init(environment string) error {
	var err error
	if environment == "production" {
		Log, err = zap.NewProduction()
	} else {
		Log, err = zap.NewDevelopment()
	}
	return err
}

// Sync flushes buffered log entries; call on shutdown.
func Sync() {
	if Log != nil {
		_ = Log.Sync()
	}
}
