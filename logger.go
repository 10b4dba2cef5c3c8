package nab

import (
	"io"
	"log"
)

// Logger describes the set of methods used for logging throughout nab;
// the standard library's *log.Logger implements it. Grounded on
// Doist-unfurlist's unfurlist.Logger (conf.go).
type Logger interface {
	Print(v ...any)
	Printf(format string, v ...any)
	Println(v ...any)
}

// discardLogger is used when no Logger is configured.
func discardLogger() Logger { return log.New(io.Discard, "", 0) }
