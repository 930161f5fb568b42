package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// AuditLogger журнал аудита операций затирания
type AuditLogger struct {
	level   string
	file    *os.File
	verbose bool
}

// Options параметры логгера
type Options struct {
	Level   string // DEBUG/INFO/WARN/ERROR
	File    string // пустая строка — только stdout
	Verbose bool
}

func New(opts Options) (*AuditLogger, error) {
	l := &AuditLogger{
		level:   opts.Level,
		verbose: opts.Verbose,
	}
	if l.level == "" {
		l.level = "INFO"
	}

	// Автоматическое создание директории для логов
	if opts.File != "" {
		logDir := filepath.Dir(opts.File)
		if err := os.MkdirAll(logDir, 0755); err != nil {
			// Если не можем создать директорию, используем stdout
			fmt.Printf("[WARN] Не удалось создать директорию логов %s: %v\n", logDir, err)
			return l, nil
		}

		f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			fmt.Printf("[WARN] Не удалось открыть файл логов %s: %v\n", opts.File, err)
			return l, nil
		}
		l.file = f
	}

	return l, nil
}

func (l *AuditLogger) Log(level, message string, fields ...interface{}) {
	if !l.shouldLog(level) {
		return
	}

	timestamp := time.Now().Format("2006-01-02 15:04:05")
	entry := fmt.Sprintf("[%s] [%s] %s", timestamp, level, message)

	if len(fields) > 0 {
		entry += fmt.Sprintf(" %v", fields)
	}

	if l.file != nil {
		l.file.WriteString(entry + "\n")
		l.file.Sync()
	}

	if l.verbose || level == "ERROR" || level == "FATAL" {
		fmt.Println(entry)
	}
}

// Nop возвращает логгер, отбрасывающий все записи. Для вызывающих,
// которым журнал аудита не нужен.
func Nop() *AuditLogger {
	return &AuditLogger{level: "NONE"}
}

func (l *AuditLogger) shouldLog(level string) bool {
	levels := map[string]int{"DEBUG": 0, "INFO": 1, "WARN": 2, "ERROR": 3, "FATAL": 4}
	threshold, ok := levels[l.level]
	if !ok {
		return false
	}
	return levels[level] >= threshold
}

func (l *AuditLogger) Close() error {
	if l.file != nil {
		return l.file.Close()
	}
	return nil
}
