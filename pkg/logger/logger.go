package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
)

// Уровни логирования
const (
	LevelDebug = iota
	LevelInfo
	LevelWarn
	LevelError
)

// Logger простой уровневый логгер с записью в файл и stdout
type Logger struct {
	logger *log.Logger
	level  int
	file   *os.File
}

// New создает логгер, пишущий одновременно в файл и stdout
// Если path пустой, пишет только в stdout
func New(path string, level string) (*Logger, error) {
	var writers []io.Writer
	writers = append(writers, os.Stdout)

	var file *os.File
	if path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("logger: failed to open log file %s: %w", path, err)
		}
		file = f
		writers = append(writers, f)
	}

	return &Logger{
		logger: log.New(io.MultiWriter(writers...), "", log.LstdFlags),
		level:  parseLevel(level),
		file:   file,
	}, nil
}

func parseLevel(level string) int {
	switch strings.ToLower(level) {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

// Close закрывает файл логов
func (l *Logger) Close() error {
	if l.file != nil {
		return l.file.Close()
	}
	return nil
}

// Debug логирует сообщение уровня DEBUG
func (l *Logger) Debug(format string, v ...interface{}) {
	if l.level <= LevelDebug {
		l.logger.Printf("[DEBUG] "+format, v...)
	}
}

// Info логирует сообщение уровня INFO
func (l *Logger) Info(format string, v ...interface{}) {
	if l.level <= LevelInfo {
		l.logger.Printf("[INFO] "+format, v...)
	}
}

// Warn логирует сообщение уровня WARN
func (l *Logger) Warn(format string, v ...interface{}) {
	if l.level <= LevelWarn {
		l.logger.Printf("[WARN] "+format, v...)
	}
}

// Error логирует сообщение уровня ERROR
func (l *Logger) Error(format string, v ...interface{}) {
	if l.level <= LevelError {
		l.logger.Printf("[ERROR] "+format, v...)
	}
}

// Fatal логирует сообщение и завершает процесс
func (l *Logger) Fatal(format string, v ...interface{}) {
	l.logger.Printf("[FATAL] "+format, v...)
	if l.file != nil {
		_ = l.file.Close()
	}
	os.Exit(1)
}
