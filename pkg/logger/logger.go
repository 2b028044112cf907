package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Logger логгер с printf-интерфейсом поверх zerolog.
// Пишет JSON в файл и человекочитаемый вывод в stdout.
type Logger struct {
	zl   zerolog.Logger
	file *os.File
}

// New создает логгер. Если filePath пустой, пишет только в stdout.
func New(filePath string, level string) (*Logger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}

	console := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	writers := []io.Writer{console}

	var file *os.File
	if filePath != "" {
		if dir := filepath.Dir(filePath); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("failed to create log directory: %w", err)
			}
		}
		file, err = os.OpenFile(filePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		writers = append(writers, file)
	}

	zl := zerolog.New(zerolog.MultiLevelWriter(writers...)).
		Level(lvl).
		With().
		Timestamp().
		Logger()

	return &Logger{zl: zl, file: file}, nil
}

// NewWithWriter создает логгер поверх произвольного writer (для тестов и утилит)
func NewWithWriter(w io.Writer, level string) (*Logger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}
	return &Logger{zl: zerolog.New(w).Level(lvl).With().Timestamp().Logger()}, nil
}

// ParseLevel переводит строковый уровень в zerolog.Level
func ParseLevel(level string) (zerolog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zerolog.DebugLevel, nil
	case "", "info":
		return zerolog.InfoLevel, nil
	case "warn", "warning":
		return zerolog.WarnLevel, nil
	case "error":
		return zerolog.ErrorLevel, nil
	default:
		return zerolog.NoLevel, fmt.Errorf("unknown log level %q", level)
	}
}

func (l *Logger) Debug(format string, v ...interface{}) {
	l.zl.Debug().Msgf(format, v...)
}

func (l *Logger) Info(format string, v ...interface{}) {
	l.zl.Info().Msgf(format, v...)
}

func (l *Logger) Warn(format string, v ...interface{}) {
	l.zl.Warn().Msgf(format, v...)
}

func (l *Logger) Error(format string, v ...interface{}) {
	l.zl.Error().Msgf(format, v...)
}

// Fatal пишет сообщение и завершает процесс
func (l *Logger) Fatal(format string, v ...interface{}) {
	l.zl.Fatal().Msgf(format, v...)
}

// Close закрывает файл логов
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	return l.file.Close()
}
