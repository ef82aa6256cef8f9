package function

import "log/slog"

var logger = slog.New(slog.DiscardHandler)

// SetLogger installs l as the destination for this package's debug
// logging: container-vectorization fallback and non-deterministic
// invocations. The evaluator calls this once, at construction.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(slog.DiscardHandler)
	}
	logger = l
}
