// Copyright 2025 Ian Lewis
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package logging builds the structured logger used by glossutil.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	slogmulti "github.com/samber/slog-multi"
)

// Options configure a logger.
type Options struct {
	// Verbose enables debug logs.
	Verbose bool

	// File is an optional path that receives logs as JSON lines.
	File string
}

// Logger is a logger and the resources backing it.
type Logger struct {
	*slog.Logger

	// Level is the level shared by every handler.
	Level *slog.LevelVar

	closers []io.Closer
}

// New returns a logger writing text to w and, if opts.File is set, JSON to
// that file.
func New(w io.Writer, opts Options) (*Logger, error) {
	level := new(slog.LevelVar)
	if opts.Verbose {
		level.Set(slog.LevelDebug)
	}

	handlers := []slog.Handler{
		slog.NewTextHandler(w, &slog.HandlerOptions{
			Level: level,
		}),
	}

	l := &Logger{Level: level}
	if opts.File != "" {
		f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("opening log file: %w", err)
		}
		l.closers = append(l.closers, f)
		handlers = append(handlers, slog.NewJSONHandler(f, &slog.HandlerOptions{
			Level: level,
		}))
	}

	l.Logger = slog.New(slogmulti.Fanout(handlers...))
	return l, nil
}

// Discard returns a logger that drops every record.
func Discard() *Logger {
	return &Logger{
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		Level:  new(slog.LevelVar),
	}
}

// Close closes the log file, if any.
func (l *Logger) Close() error {
	for _, c := range l.closers {
		if err := c.Close(); err != nil {
			return fmt.Errorf("closing log: %w", err)
		}
	}
	l.closers = nil
	return nil
}
