// Package log provides loggers for modular drivers and commands. The
// processing hot path never logs.
package log

import (
	"os"
	"strconv"

	"github.com/sirupsen/logrus"
)

var debug bool

// Logger is the interface drivers log through.
type Logger interface {
	Debug(...interface{})
	Info(...interface{})
}

func init() {
	var err error
	debug, err = strconv.ParseBool(os.Getenv("MODULAR_DEBUG"))
	if err != nil {
		debug = false
	}
}

// GetLogger returns a new logger instance. Debug level is enabled with the
// MODULAR_DEBUG environment variable.
func GetLogger() *logrus.Logger {
	l := logrus.New()
	if debug {
		l.SetLevel(logrus.DebugLevel)
	}
	return l
}
