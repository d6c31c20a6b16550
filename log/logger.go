// Package log provides the component loggers used across this module.
package log

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// LoggerType selects the output writer used by Init.
type LoggerType uint8

const (
	ConsoleLogger LoggerType = iota
	JSONLogger
	DiscardLogger
)

var (
	// Root is the base logger every component logger is derived from.
	Root zerolog.Logger
	// Codec is the component logger used by the scale package for
	// decode-path diagnostics; it receives a debug event for
	// each mode-3 (big-integer) compact decode and nothing else.
	Codec zerolog.Logger
)

// Options configures Init.
type Options struct {
	// LogLevel is the minimum level emitted. The package's init() starts
	// with zerolog.Disabled so embedding this module into an application
	// costs nothing until the application opts in; the zero value of this
	// field is zerolog.DebugLevel.
	LogLevel zerolog.Level
	Type     LoggerType
}

func ParseLogLevel(loglevel string) (zerolog.Level, error) {
	return zerolog.ParseLevel(loglevel)
}

func init() {
	Init(Options{LogLevel: zerolog.Disabled, Type: DiscardLogger})
}

// Init (re)configures Root and every component logger derived from it.
func Init(opts Options) {
	var w io.Writer
	switch opts.Type {
	case ConsoleLogger:
		w = newConsoleWriter()
	case DiscardLogger:
		w = io.Discard
	default:
		w = os.Stdout
	}

	Root = zerolog.New(w).Level(opts.LogLevel).With().Timestamp().Logger()
	Codec = Root.With().Str("component", "codec").Logger()
}

func newConsoleWriter() zerolog.ConsoleWriter {
	cw := zerolog.ConsoleWriter{Out: os.Stdout, NoColor: true, TimeFormat: time.RFC3339}

	cw.FormatLevel = func(i interface{}) string {
		return strings.ToUpper(fmt.Sprintf("| %-6s|", i))
	}
	cw.FormatMessage = func(i interface{}) string {
		return fmt.Sprintf("message: \"%s\" |", i)
	}
	cw.FormatFieldName = func(i interface{}) string {
		return fmt.Sprintf("\"%s\": ", i)
	}
	cw.FormatFieldValue = func(i interface{}) string {
		return fmt.Sprintf("\"%s\" |", i)
	}
	cw.FormatErrFieldValue = func(i interface{}) string {
		return fmt.Sprintf(" %s |", i)
	}
	return cw
}
