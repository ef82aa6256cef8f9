package binop

import "log/slog"

var logger = slog.New(slog.DiscardHandler)

// SetLogger installs l as the destination for this package's vectorization
// debug logging. The evaluator calls this once, at construction, with
// whatever logger EvalOptions resolved to.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(slog.DiscardHandler)
	}
	logger = l
}
