package logging

import (
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/ashwin-aggarwal/nba-shot-visualizer/internal/config"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var logLevelMatches = map[string]zerolog.Level{
	"NONE":  zerolog.NoLevel,
	"TRACE": zerolog.TraceLevel,
	"DEBUG": zerolog.DebugLevel,
	"INFO":  zerolog.InfoLevel,
	"WARN":  zerolog.WarnLevel,
	"ERROR": zerolog.ErrorLevel,
	"FATAL": zerolog.FatalLevel,
}

// ParseLevel maps a level name onto a zerolog level, defaulting to info
func ParseLevel(level string) zerolog.Level {
	if l, ok := logLevelMatches[strings.ToUpper(strings.TrimSpace(level))]; ok {
		return l
	}
	return zerolog.InfoLevel
}

func configureConsoleWriter() {
	if isTerminalAttached() {
		log.Logger = log.Output(zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: "2006-01-02 15:04:05",
		})
	}
}

func isTerminalAttached() bool {
	return isatty.IsTerminal(os.Stdout.Fd()) && runtime.GOOS != "windows"
}

// Setup configures the global logger. The returned func closes the log file
// when one is configured.
func Setup(cfg config.LogConfig) (func(), error) {
	configureConsoleWriter()
	zerolog.SetGlobalLevel(ParseLevel(cfg.Level))

	if cfg.File != "" {
		f, err := os.OpenFile(cfg.File, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0644)
		if err != nil {
			return nil, fmt.Errorf("error opening log file: %w", err)
		}
		log.Logger = log.Output(f)
		return func() {
			_ = f.Close()
		}, nil
	}
	return func() {}, nil
}

// Enabled checks if a specific logging level is enabled
func Enabled(level zerolog.Level) bool {
	return level >= zerolog.GlobalLevel()
}
