// Package zentwallet is the module root: it only holds the glue that
// fans a single root logger out to every subpackage, the same shape
// degeri-dcrlnd's own root log.go uses for its subsystem loggers.
package zentwallet

import (
	"github.com/decred/slog"

	"github.com/zentcash/zentwallet/daemon"
	"github.com/zentcash/zentwallet/sendtx"
	"github.com/zentcash/zentwallet/txbuild"
)

// SetupLoggers creates one subsystem logger per package from backend and
// registers each with its package's UseLogger, so every log line a send
// attempt produces — from ring assembly up through relay — carries a
// consistent subsystem tag.
func SetupLoggers(backend *slog.Backend, level slog.Level) {
	daemon.UseLogger(newSubLogger(backend, "DAEM", level))
	txbuild.UseLogger(newSubLogger(backend, "TXBD", level))
	sendtx.UseLogger(newSubLogger(backend, "SEND", level))
}

func newSubLogger(backend *slog.Backend, subsystem string, level slog.Level) slog.Logger {
	logger := backend.Logger(subsystem)
	logger.SetLevel(level)
	return logger
}
