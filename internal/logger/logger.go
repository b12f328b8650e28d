package logger

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
)

type LogLevel int

const (
	DEBUG LogLevel = iota
	INFO
	WARN
	ERROR
	FATAL
)

var levelNames = [...]string{"DEBUG", "INFO", "WARN", "ERROR", "FATAL"}

var levelColors = [...]color.Attribute{color.FgCyan, color.FgGreen, color.FgYellow, color.FgRed, color.FgRed}

func (lv LogLevel) String() string {
	if lv < DEBUG || lv > FATAL {
		return "INFO"
	}
	return levelNames[lv]
}

type LogEntry struct {
	Timestamp string `json:"timestamp"`
	Level     string `json:"level"`
	Category  string `json:"category"`
	Message   string `json:"message"`
	File      string `json:"file,omitempty"`
	Line      int    `json:"line,omitempty"`
}

type Logger struct {
	mu           sync.Mutex
	out          io.Writer
	logFile      *os.File
	colorEnabled bool
	minLevel     LogLevel
}

// NewLogger logs to stdout and to <logDir>/<service>-YYYY-MM-DD.log as JSON lines.
func NewLogger(logDir, service string) *Logger {
	if err := os.MkdirAll(logDir, 0755); err != nil {
		log.Fatal("Failed to create logs directory:", err)
	}

	logFileName := filepath.Join(logDir, fmt.Sprintf("%s-%s.log", service, time.Now().Format("2006-01-02")))
	logFile, err := os.OpenFile(logFileName, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		log.Fatal("Failed to create log file:", err)
	}

	return &Logger{
		out:          os.Stdout,
		logFile:      logFile,
		colorEnabled: true,
		minLevel:     DEBUG,
	}
}

// NewLoggerWithWriter writes uncolored terminal lines to w and keeps no log file.
func NewLoggerWithWriter(w io.Writer) *Logger {
	return &Logger{out: w, minLevel: DEBUG}
}

// SetLevel drops entries below level.
func (l *Logger) SetLevel(level LogLevel) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.minLevel = level
}

// ParseLevel maps LOG_LEVEL values; unknown names fall back to INFO.
func ParseLevel(name string) LogLevel {
	name = strings.ToUpper(strings.TrimSpace(name))
	if name == "WARNING" {
		return WARN
	}
	for i, n := range levelNames {
		if n == name {
			return LogLevel(i)
		}
	}
	return INFO
}

func (l *Logger) log(level LogLevel, category, message string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if level < l.minLevel {
		return
	}

	_, file, line, ok := runtime.Caller(2)
	if ok {
		file = filepath.Base(file)
	}

	entry := LogEntry{
		Timestamp: time.Now().UTC().Format("2006-01-02T15:04:05.000Z"),
		Level:     level.String(),
		Category:  strings.ToUpper(category),
		Message:   message,
		File:      file,
		Line:      line,
	}

	fmt.Fprint(l.out, l.formatTerminalOutput(level, entry))

	if l.logFile != nil {
		if b, err := json.Marshal(entry); err == nil {
			l.logFile.Write(append(b, '\n'))
		}
	}
}

func (l *Logger) formatTerminalOutput(level LogLevel, entry LogEntry) string {
	timestamp := entry.Timestamp[11:19]
	levelStr := fmt.Sprintf("%-5s", entry.Level)
	categoryStr := fmt.Sprintf("[%-10s]", entry.Category)
	var source string
	if entry.File != "" && entry.Line > 0 {
		source = fmt.Sprintf(" (%s:%d)", entry.File, entry.Line)
	}

	if l.colorEnabled {
		c := levelColors[level]
		timestamp = color.BlueString(timestamp)
		levelStr = color.New(c).Sprint(levelStr)
		categoryStr = color.New(c, color.Bold).Sprint(categoryStr)
		source = color.MagentaString(source)
	}
	return fmt.Sprintf("%s %s %s %s%s\n", timestamp, levelStr, categoryStr, entry.Message, source)
}

func (l *Logger) Debug(category, message string) {
	l.log(DEBUG, category, message)
}

func (l *Logger) Info(category, message string) {
	l.log(INFO, category, message)
}

func (l *Logger) Warn(category, message string) {
	l.log(WARN, category, message)
}

func (l *Logger) Error(category, message string) {
	l.log(ERROR, category, message)
}

func (l *Logger) Fatal(category, message string) {
	l.log(FATAL, category, message)
	os.Exit(1)
}

// Specialized logging methods for different components
func (l *Logger) LogPurchase(purchaseID string, amount int64, tickets int) {
	l.Info("LOTTO", fmt.Sprintf("[PURCHASE] %s - %s KRW, %d tickets issued", purchaseID, humanize.Comma(amount), tickets))
}

func (l *Logger) LogResults(purchaseID, summary string) {
	l.Info("LOTTO", fmt.Sprintf("[RESULTS] %s - %s", purchaseID, summary))
}

func (l *Logger) LogAPI(method, path, status, duration string) {
	l.Info("API", fmt.Sprintf("%s %s - %s (%s)", method, path, status, duration))
}

func (l *Logger) LogKafka(action, topic, message string) {
	l.Info("KAFKA", fmt.Sprintf("[%s] %s - %s", action, topic, message))
}

func (l *Logger) LogRedis(operation, key, message string) {
	l.Info("REDIS", fmt.Sprintf("[%s] %s - %s", operation, key, message))
}

func (l *Logger) Close() {
	if l.logFile != nil {
		l.logFile.Close()
	}
}
