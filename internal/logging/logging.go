package logging

import (
	"io"
	"os"

	"github.com/rs/zerolog"

	"selectly/internal/config"
)

// New opens the configured log file and returns a logger writing to it.
// The caller closes the returned closer on shutdown. An unknown level
// falls back to info.
func New(cfg config.LogConfig) (zerolog.Logger, io.Closer, error) {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	f, err := os.OpenFile(cfg.Path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return zerolog.Nop(), nil, err
	}
	logger := zerolog.New(f).Level(level).With().Timestamp().Logger()
	return logger, f, nil
}
