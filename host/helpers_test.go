package host

import (
	"io"
	"log/slog"

	"github.com/akmonengine/switcher/config"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func defaultConfig() config.Config {
	return config.Default()
}
