package config

import (
	"io"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// CreateLogger builds the process logger from the config. When LogFile
// is set, logs are appended there; otherwise they go to stderr. The
// returned closer flushes buffered entries and must be closed on
// shutdown.
func (c *Config) CreateLogger(debug bool) (
	*zap.Logger,
	io.Closer,
	error,
) {
	var zapCfg zap.Config
	if debug {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	if c.LogFile != "" {
		zapCfg.OutputPaths = []string{c.LogFile}
		zapCfg.ErrorOutputPaths = []string{c.LogFile}
	}

	logger, err := zapCfg.Build()
	if err != nil {
		return nil, nil, errors.Wrap(err, "create logger")
	}

	return logger, closerFunc(func() error {
		// Sync on stderr returns ENOTTY on some platforms; the error is
		// not actionable at shutdown.
		_ = logger.Sync()
		return nil
	}), nil
}

type closerFunc func() error

func (f closerFunc) Close() error {
	return f()
}
