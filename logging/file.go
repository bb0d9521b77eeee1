package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	LogDir      = "logs"
	LogFileName = "orrery.log"
	MaxLogSize  = 10 * 1024 * 1024 // 10MB
)

// Setup returns a logger and the file backing it
// With debug off everything is discarded and the file is nil
// An empty cfg.Level logs at debug
func Setup(debug bool, dir string, cfg Config) (Logger, *os.File, error) {
	if !debug {
		return Noop(), nil, nil
	}

	f, err := OpenRotated(dir, LogFileName, MaxLogSize)
	if err != nil {
		return Noop(), nil, err
	}
	if cfg.Level == "" {
		cfg.Level = "debug"
	}
	cfg.AddSource = true
	return New(f, cfg), f, nil
}

// OpenRotated opens dir/name for append, first moving it aside with a
// timestamp suffix when it exceeds maxSize
func OpenRotated(dir, name string, maxSize int64) (*os.File, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}

	path := filepath.Join(dir, name)
	if info, err := os.Stat(path); err == nil && info.Size() > maxSize {
		ext := filepath.Ext(name)
		stamp := time.Now().Format("20060102-150405")
		rotated := filepath.Join(dir, strings.TrimSuffix(name, ext)+"-"+stamp+ext)
		if err := os.Rename(path, rotated); err != nil {
			return nil, fmt.Errorf("rotate log: %w", err)
		}
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("open log: %w", err)
	}
	return f, nil
}
