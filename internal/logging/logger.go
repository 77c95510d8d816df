// Package logging provides the CLI logger and log utilities.
package logging

import (
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/term"
)

var (
	L *zap.Logger        = zap.L()
	S *zap.SugaredLogger = zap.S()
)

// Initialize builds a logger writing to w. Each point of verbosity lowers the
// level by one, starting from info. Terminals get colored console output,
// everything else gets JSON.
func Initialize(v int, w io.Writer) *zap.Logger {
	atom := zap.NewAtomicLevelAt(zapcore.Level(-v))

	var encoder zapcore.Encoder
	if isTerminal(w) {
		encoder = zapcore.NewConsoleEncoder(zapcore.EncoderConfig{
			MessageKey: "message",

			LevelKey:    "level",
			EncodeLevel: zapcore.CapitalColorLevelEncoder,

			TimeKey:    "time",
			EncodeTime: zapcore.ISO8601TimeEncoder,

			CallerKey:    "caller",
			EncodeCaller: zapcore.ShortCallerEncoder,
		})
	} else {
		encoder = zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	}

	core := zapcore.NewCore(encoder, zapcore.Lock(zapcore.AddSync(w)), atom)

	return zap.New(core, zap.AddCaller())
}

// SetLogger replaces the package loggers.
func SetLogger(logger *zap.Logger) {
	L = logger
	S = logger.Sugar()
}

func isTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	return ok && term.IsTerminal(int(file.Fd()))
}
