package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime/debug"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

var (
	mu      sync.RWMutex
	base    = zerolog.New(os.Stderr).With().Timestamp().Logger()
	logFile *os.File
	logPath string
)

// Init 初始化服务端日志（标准错误输出）
func Init(level string, pretty bool) {
	var out io.Writer = os.Stderr
	if pretty {
		out = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	}
	setOutput(out, level)
}

// InitFile 初始化客户端调试日志，写入 ~/.draw-guess/debug.log
// 终端界面占用了标准输出，所以客户端只能写文件
func InitFile(level string) error {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("failed to get home directory: %w", err)
	}

	logDir := filepath.Join(homeDir, ".draw-guess")
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}

	path := filepath.Join(logDir, "debug.log")
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}

	// Rotate if file is too large (> 10MB)
	if info, err := f.Stat(); err == nil && info.Size() > 10*1024*1024 {
		_ = f.Close()
		backupPath := filepath.Join(logDir, fmt.Sprintf("debug.log.%d", time.Now().Unix()))
		_ = os.Rename(path, backupPath)
		f, err = os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("failed to create new log file: %w", err)
		}
	}

	mu.Lock()
	logFile = f
	logPath = path
	mu.Unlock()

	setOutput(f, level)
	Infof("Logger initialized, log file: %s", path)
	return nil
}

// SetOutput 替换输出目标（测试用）
func SetOutput(w io.Writer) {
	setOutput(w, zerolog.LevelDebugValue)
}

func setOutput(w io.Writer, level string) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}

	mu.Lock()
	defer mu.Unlock()
	base = zerolog.New(w).Level(lvl).With().Timestamp().Logger()
}

// Close closes the debug log file
func Close() {
	mu.Lock()
	defer mu.Unlock()
	if logFile != nil {
		_ = logFile.Close()
		logFile = nil
	}
}

// GetLogPath returns the current log file path
func GetLogPath() string {
	mu.RLock()
	defer mu.RUnlock()
	return logPath
}

func current() *zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	l := base
	return &l
}

// With 返回带固定字段的子 logger，例如 logger.With("room", id)
func With(key, value string) zerolog.Logger {
	return current().With().Str(key, value).Logger()
}

// Debugf logs a debug message
func Debugf(format string, args ...any) {
	current().Debug().Msgf(format, args...)
}

// Infof logs an info message
func Infof(format string, args ...any) {
	current().Info().Msgf(format, args...)
}

// Warnf logs a warning message
func Warnf(format string, args ...any) {
	current().Warn().Msgf(format, args...)
}

// Errorf logs an error message
func Errorf(format string, args ...any) {
	current().Error().Msgf(format, args...)
}

// LogPanic logs a panic with stack trace
func LogPanic(r any) {
	current().Error().Str("stack", string(debug.Stack())).Msgf("[PANIC] %v", r)
}
