package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

var (
	logFile *os.File
	mu      sync.Mutex
	debug   = os.Getenv("DEBUG") != ""
)

const (
	maxLogSize = 5 * 1024 * 1024 // 5MB
)

// DefaultPath returns ~/.config/cpass/cpass.log
func DefaultPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "cpass", "cpass.log"), nil
}

// Init opens the log file at path, creating its directory
func Init(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("cannot create log directory: %w", err)
	}

	// Check if log file needs rotation
	if info, err := os.Stat(path); err == nil {
		if info.Size() > maxLogSize {
			// Rotate log by renaming to .old
			oldPath := path + ".old"
			os.Remove(oldPath) // Remove old backup if exists
			os.Rename(path, oldPath)
		}
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return fmt.Errorf("cannot open log file: %w", err)
	}

	mu.Lock()
	defer mu.Unlock()
	if logFile != nil {
		logFile.Close()
	}
	logFile = file
	return nil
}

// Close closes the log file
func Close() {
	mu.Lock()
	defer mu.Unlock()

	if logFile != nil {
		logFile.Close()
		logFile = nil
	}
}

// SetDebug turns debug lines on or off. They start on when DEBUG is set.
func SetDebug(on bool) {
	mu.Lock()
	defer mu.Unlock()
	debug = on
}

// Error logs an error message
func Error(format string, args ...any) {
	log("ERROR", format, args...)
}

// Warn logs a warning message
func Warn(format string, args ...any) {
	log("WARN", format, args...)
}

// Debug logs a diagnostic message, only when debugging is on
func Debug(format string, args ...any) {
	mu.Lock()
	on := debug
	mu.Unlock()
	if on {
		log("DEBUG", format, args...)
	}
}

// log writes a log message to the file
func log(level string, format string, args ...any) {
	mu.Lock()
	defer mu.Unlock()

	if logFile == nil {
		return
	}

	timestamp := time.Now().Format("2006-01-02 15:04:05")
	message := fmt.Sprintf(format, args...)
	logLine := fmt.Sprintf("[%s] %s: %s\n", timestamp, level, message)

	logFile.WriteString(logLine)
}
