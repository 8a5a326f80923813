package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"animalcount/internal/config"

	"github.com/fatih/color"
	"go.uber.org/multierr"
)

// Level orders log severities; messages below the configured level are dropped.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarning
	LevelError
)

// ParseLevel maps a LOG_LEVEL value to a Level, defaulting to LevelInfo.
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug
	case "warning", "warn":
		return LevelWarning
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

// Logger provides leveled logging (debug/info/warning/error) to stdout/stderr and optional files.
type Logger struct {
	debugLog   *log.Logger
	infoLog    *log.Logger
	warningLog *log.Logger
	errorLog   *log.Logger
	level      Level
	logDir     string
	files      []*os.File
	mu         sync.Mutex
}

// NewLogger creates a Logger from config. When LogDirectory is set the
// directory is created and every level is also appended to its own file.
func NewLogger(config *config.Config) (*Logger, error) {
	logger := &Logger{
		level:  ParseLevel(config.LogLevel),
		logDir: config.LogDirectory,
	}

	if logger.logDir != "" {
		if err := os.MkdirAll(logger.logDir, 0755); err != nil {
			return nil, err
		}
	}

	if err := logger.setupLoggers(os.Stdout, os.Stderr); err != nil {
		logger.Close()
		return nil, err
	}
	return logger, nil
}

// NewWriterLogger logs every level into w without touching the filesystem.
func NewWriterLogger(w io.Writer, level Level) *Logger {
	logger := &Logger{level: level}
	logger.setupLoggers(w, w)
	return logger
}

// setupLoggers initializes writers and per-level loggers.
func (l *Logger) setupLoggers(stdout, stderr io.Writer) error {
	debugWriter, infoWriter, warningWriter, errorWriter := stdout, stdout, stdout, stderr

	if l.logDir != "" {
		writers := map[string]*io.Writer{
			"debug.log":   &debugWriter,
			"info.log":    &infoWriter,
			"warning.log": &warningWriter,
			"error.log":   &errorWriter,
		}
		for name, w := range writers {
			file, err := l.openLogFile(filepath.Join(l.logDir, name))
			if err != nil {
				return err
			}
			*w = io.MultiWriter(*w, file)
		}
	}

	flags := log.Ldate | log.Ltime | log.Lshortfile
	l.debugLog = log.New(debugWriter, color.CyanString("DEBUG   "), flags)
	l.infoLog = log.New(infoWriter, color.GreenString("INFO    "), flags)
	l.warningLog = log.New(warningWriter, color.YellowString("WARNING "), flags)
	l.errorLog = log.New(errorWriter, color.RedString("ERROR   "), flags)
	return nil
}

// openLogFile opens or creates a log file for appending.
func (l *Logger) openLogFile(filename string) (*os.File, error) {
	file, err := os.OpenFile(filename, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		return nil, err
	}
	l.files = append(l.files, file)
	return file, nil
}

// Debug writes a formatted debug-level log entry.
func (l *Logger) Debug(format string, v ...interface{}) {
	l.output(LevelDebug, l.debugLog, format, v...)
}

// Info writes a formatted info-level log entry.
func (l *Logger) Info(format string, v ...interface{}) {
	l.output(LevelInfo, l.infoLog, format, v...)
}

// Warning writes a formatted warning-level log entry.
func (l *Logger) Warning(format string, v ...interface{}) {
	l.output(LevelWarning, l.warningLog, format, v...)
}

// Error writes a formatted error-level log entry.
func (l *Logger) Error(format string, v ...interface{}) {
	l.output(LevelError, l.errorLog, format, v...)
}

func (l *Logger) output(level Level, target *log.Logger, format string, v ...interface{}) {
	if level < l.level {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	// skip output, Debug/Info/... to report the caller's file
	target.Output(3, fmt.Sprintf(format, v...))
}

// Close closes any log files opened by NewLogger.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	var err error
	for _, f := range l.files {
		err = multierr.Append(err, f.Close())
	}
	l.files = nil
	return err
}
