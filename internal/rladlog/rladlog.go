/*
NAME
  rladlog.go

DESCRIPTION
  rladlog.go defines the small Logger interface used throughout this
  module, matching revid.Logger from the original AusOcean toolchain,
  and a file-backed implementation that writes through a rotating
  lumberjack.Logger.

AUTHOR
  Trek Hopton <trek@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package rladlog provides leveled logging for cmd/rladtool and
// codec/rlad, backed by a rotating log file.
package rladlog

import (
	"fmt"
	"io"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Log levels, matching revid.Logger's int8 level convention.
const (
	Debug int8 = iota
	Info
	Warning
	Error
	Fatal
)

// Logger is satisfied by any logger this module's packages accept.
// codec/rlad treats a nil Logger as a no-op sink; cmd/rladtool always
// passes a FileLogger.
type Logger interface {
	SetLevel(int8)
	Log(level int8, message string, params ...interface{})
}

// FileLogger writes leveled log lines to a rotating file via lumberjack.
type FileLogger struct {
	level int8
	out   io.Writer
}

// NewFileLogger returns a FileLogger that rotates logPath per the given
// size (MB), backup count, and age (days) limits.
func NewFileLogger(logPath string, maxSizeMB, maxBackups, maxAgeDays int) *FileLogger {
	return &FileLogger{
		level: Info,
		out: &lumberjack.Logger{
			Filename:   logPath,
			MaxSize:    maxSizeMB,
			MaxBackups: maxBackups,
			MaxAge:     maxAgeDays,
		},
	}
}

// SetLevel sets the minimum level that Log will write.
func (f *FileLogger) SetLevel(level int8) { f.level = level }

// Log writes message and params to the log file if level is at or above
// the logger's configured level.
func (f *FileLogger) Log(level int8, message string, params ...interface{}) {
	if level < f.level {
		return
	}
	fmt.Fprintf(f.out, "%s [%s] %s %v\n", time.Now().Format(time.RFC3339), levelName(level), message, params)
}

func levelName(level int8) string {
	switch level {
	case Debug:
		return "DEBUG"
	case Info:
		return "INFO"
	case Warning:
		return "WARNING"
	case Error:
		return "ERROR"
	case Fatal:
		return "FATAL"
	default:
		return "UNKNOWN"
	}
}
