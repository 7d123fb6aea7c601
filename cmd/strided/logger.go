package main

import (
	"io"
	"log/slog"

	"github.com/lmittmann/tint"
)

// newLogger builds the server logger. Error values render in red so they
// stand out in the request log.
func newLogger(output io.Writer) *slog.Logger {
	return slog.New(tint.NewHandler(output, &tint.Options{
		Level:      slog.LevelInfo,
		TimeFormat: "2006-01-02 15:04:05.000",
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if err, ok := a.Value.Any().(error); ok {
				return tint.Attr(9, slog.Any(a.Key, err))
			}
			return a
		},
	}))
}
