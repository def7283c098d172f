package logger

import (
	"fmt"

	"github.com/firestorm-arena/firestorm/internal/config"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const timeLayout = "15:04:05 02-01-2006"

// InitLogger builds the process-wide zap logger from the configured level
// and installs it with zap.ReplaceGlobals.
func InitLogger(conf *config.Config) error {
	var lvl zapcore.Level
	switch conf.LogLvl {
	case "debug":
		lvl = zapcore.DebugLevel
	case "info":
		lvl = zapcore.InfoLevel
	case "error":
		lvl = zapcore.ErrorLevel
	default:
		return fmt.Errorf("unsupported log lvl: %s", conf.LogLvl)
	}

	c := zap.NewDevelopmentConfig()
	c.Level = zap.NewAtomicLevelAt(lvl)
	c.OutputPaths = []string{"stdout"}
	c.ErrorOutputPaths = []string{"stderr"}
	c.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout(timeLayout)
	c.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	c.EncoderConfig.EncodeDuration = zapcore.MillisDurationEncoder

	logger, err := c.Build()
	if err != nil {
		return fmt.Errorf("unable to create zap logger, error: %w", err)
	}

	zap.ReplaceGlobals(logger)

	return nil
}
