package logger

import (
	"go.uber.org/zap"
)

// New creates a zap logger appropriate for the given environment.
// "development" gets a human-readable console logger; everything else gets
// production JSON output.
func New(appEnv string) (*zap.Logger, error) {
	if appEnv == "development" {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// NewNamed creates an environment-appropriate logger named after the service.
func NewNamed(appEnv, serviceName string) (*zap.Logger, error) {
	log, err := New(appEnv)
	if err != nil {
		return nil, err
	}
	return log.Named(serviceName), nil
}
