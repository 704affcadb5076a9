package logger

import (
	"log/slog"

	"go.uber.org/zap"
	"go.uber.org/zap/exp/zapslog"
	"go.uber.org/zap/zapcore"
)

// Load builds a slog.Logger on top of zap. Production uses the JSON encoder,
// everything else the development console encoder. The returned func flushes
// buffered entries and should be deferred by the caller.
func Load(level string, production bool) (*slog.Logger, func(), error) {
	var cfg zap.Config
	if production {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
	}

	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)

	z, err := cfg.Build()
	if err != nil {
		return nil, nil, err
	}

	sync := func() { _ = z.Sync() }
	return slog.New(zapslog.NewHandler(z.Core(), zapslog.WithCaller(true))), sync, nil
}
