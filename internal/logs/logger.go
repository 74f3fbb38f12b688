package logs

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog"
)

var (
	Logger  = zerolog.Nop()
	logFile *os.File
	mu      sync.Mutex
)

// Initialize points the logger at <logDir>/debug.log. Until it is called,
// everything is discarded so the CLI and tests stay quiet.
func Initialize(logDir string, debug bool) error {
	mu.Lock()
	defer mu.Unlock()

	if logDir == "" {
		return nil
	}

	if err := os.MkdirAll(logDir, 0755); err != nil {
		return fmt.Errorf("create log dir: %w", err)
	}

	logPath := filepath.Join(logDir, "debug.log")
	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("open %s: %w", logPath, err)
	}

	if logFile != nil {
		logFile.Close()
	}
	logFile = f

	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	Logger = zerolog.New(f).Level(level).With().Timestamp().Str("app", "smartnote").Logger()
	Logger.Debug().Str("path", logPath).Msg("logger initialized")

	return nil
}

// Close closes the log file.
func Close() error {
	mu.Lock()
	defer mu.Unlock()

	if logFile != nil {
		err := logFile.Close()
		logFile = nil
		Logger = zerolog.Nop()
		return err
	}
	return nil
}
