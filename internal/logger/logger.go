package logger

import (
	"os"

	"go.uber.org/zap"
)

// NewLogger returns a production logger by default, a development logger
// when APP_ENV=development (debug level, console encoding).
func NewLogger() *zap.Logger {
	var log *zap.Logger
	var err error

	if os.Getenv("APP_ENV") == "development" {
		log, err = zap.NewDevelopment()
	} else {
		log, err = zap.NewProduction()
	}
	if err != nil {
		panic(err)
	}
	return log
}
