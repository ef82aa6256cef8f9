package parser

import "log/slog"

var logger = slog.New(slog.DiscardHandler)

// SetLogger installs l as the destination for this package's parse
// start/end debug logging.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(slog.DiscardHandler)
	}
	logger = l
}
