package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"

	"github.com/grovetools/pkgnav/config"
)

var (
	loggers   = make(map[string]*logrus.Entry)
	loggersMu sync.Mutex

	logCfg      config.LoggingConfig
	logRoot     string
	withConsole bool
)

// Configure sets the logging destination for all subsequently created loggers.
// root is the package root directory; the default log file lives under
// <root>/.pkgnav/logs. When console is true, entries are mirrored to stderr
// (never enable this while the TUI owns the terminal).
func Configure(cfg config.LoggingConfig, root string, console bool) {
	loggersMu.Lock()
	defer loggersMu.Unlock()
	logCfg = cfg
	logRoot = root
	withConsole = console
	// Drop cached entries so new settings take effect.
	loggers = make(map[string]*logrus.Entry)
}

// NewLogger creates and returns a pre-configured logger for a specific component.
// It uses a singleton pattern per component to avoid re-initializing.
func NewLogger(component string) *logrus.Entry {
	loggersMu.Lock()
	defer loggersMu.Unlock()

	if logger, exists := loggers[component]; exists {
		return logger
	}

	logger := logrus.New()

	// Configure Level
	levelStr := "info"
	if os.Getenv("PKGNAV_LOG_LEVEL") != "" {
		levelStr = os.Getenv("PKGNAV_LOG_LEVEL")
	} else if logCfg.Level != "" {
		levelStr = logCfg.Level
	}
	level, err := logrus.ParseLevel(levelStr)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	logger.SetFormatter(&TextFormatter{})

	var writers []io.Writer

	// File sink
	logFilePath := logCfg.File
	if logFilePath == "" && logRoot != "" {
		dateStr := time.Now().Format("2006-01-02")
		logFilePath = filepath.Join(logRoot, ".pkgnav", "logs", fmt.Sprintf("pkgnav-%s.log", dateStr))
	}
	if logFilePath != "" {
		dir := filepath.Dir(logFilePath)
		if err := os.MkdirAll(dir, 0755); err == nil {
			file, err := os.OpenFile(logFilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
			if err == nil {
				writers = append(writers, file)
			}
		}
	}

	// Console sink
	if withConsole {
		writers = append(writers, os.Stderr)
		if isatty.IsTerminal(os.Stderr.Fd()) {
			logger.SetFormatter(&TextFormatter{Color: true})
		}
	}

	if len(writers) == 0 {
		logger.SetOutput(io.Discard)
	} else {
		logger.SetOutput(io.MultiWriter(writers...))
	}

	entry := logger.WithField("component", component)
	loggers[component] = entry
	return entry
}
