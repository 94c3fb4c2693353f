package env

import (
	"fmt"

	zap "go.uber.org/zap"
)

func MakeLogger(config *Config) (*zap.Logger, error) {
	logConfig := zap.NewProductionConfig()
	logConfig.Level = zap.NewAtomicLevelAt(config.LogLevel)

	switch config.LogEncoding {
	case "json", "console":
		logConfig.Encoding = config.LogEncoding
	default:
		return nil, fmt.Errorf("unsupported log encoding '%s'", config.LogEncoding)
	}

	return logConfig.Build()
}
