// Copyright 2025 walteh LLC
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

package log

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
)

// 🎨 Display configuration
const (
	fileIndent  = 4  // spaces to indent item entries
	nameWidth   = 45 // Base width for the path
	statusWidth = 12 // Width for status text
)

// 🎯 ItemOperation represents one processed batch item for logging
type ItemOperation struct {
	Path   string // Source path of the item
	Kind   string // Operation kind (copy/move/delete/extract)
	Status string // "ok" or "failed"
	Err    error  // Failure, when Status is "failed"
}

// 📦 BatchOperation represents one submitted batch for logging
type BatchOperation struct {
	Kind        string // Operation kind
	Total       int    // Number of items in the batch
	Destination string // Destination directory, empty for delete
}

// 🎯 Logger handles structured logging with console output
type Logger struct {
	zlog      zerolog.Logger
	console   io.Writer
	mu        sync.Mutex
	currentOp *BatchOperation
	items     []ItemOperation
}

// 🏭 New creates a new logger
func New(console io.Writer, level zerolog.Level) *Logger {
	zlog := zerolog.New(zerolog.NewConsoleWriter()).With().Timestamp().Logger().Level(level)
	return &Logger{
		zlog:    zlog,
		console: console,
		mu:      sync.Mutex{},
	}
}

// 🔑 contextKey is the type for context values
type contextKey struct{}

// 🎯 FromContext gets the logger from context
func FromContext(ctx context.Context) *Logger {
	logger, ok := ctx.Value(contextKey{}).(*Logger)
	if !ok {
		panic("logger not found in context")
	}
	return logger
}

// 🎯 NewContext adds the logger to context
func NewContext(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, l)
}

// 📝 formatItemOperation formats one item line for display
func (l *Logger) formatItemOperation(op ItemOperation) string {
	var symbol rune
	var symbolColor color.Attribute
	switch op.Status {
	case "failed":
		symbol = '✗'
		symbolColor = color.FgRed
	default:
		symbol = '✓'
		symbolColor = color.FgGreen
	}

	status := op.Status
	if op.Err != nil {
		status = op.Err.Error()
	}

	return fmt.Sprintf("%s%s %s %s",
		fmt.Sprintf("%*s", fileIndent, ""),
		color.New(symbolColor).Sprint(string(symbol)),
		fmt.Sprintf("%-*s", nameWidth, op.Path),
		fmt.Sprintf("%-*s", statusWidth, status))
}

// 📝 LogItemOperation logs one processed item
func (l *Logger) LogItemOperation(ctx context.Context, op ItemOperation) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.items = append(l.items, op)

	fmt.Fprintln(l.console, l.formatItemOperation(op))

	ev := l.zlog.Info()
	if op.Err != nil {
		ev = l.zlog.Error().Err(op.Err)
	}
	ev.
		Str("path", op.Path).
		Str("kind", op.Kind).
		Str("status", op.Status).
		Msg("item operation")
}

// 📝 StartBatchOperation starts a new batch
func (l *Logger) StartBatchOperation(ctx context.Context, op BatchOperation) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.currentOp = &op
	l.items = nil

	header := fmt.Sprintf("%d item(s)", op.Total)
	if op.Destination != "" {
		header = fmt.Sprintf("%s → %s", header, color.New(color.FgCyan).Sprint(op.Destination))
	}
	fmt.Fprintf(l.console, "%s %s %s\n",
		color.New(color.FgMagenta).Sprint("◆"),
		color.New(color.Bold).Sprint(op.Kind),
		header)

	l.zlog.Info().
		Str("kind", op.Kind).
		Int("total", op.Total).
		Str("destination", op.Destination).
		Msg("starting batch operation")
}

// 📝 EndBatchOperation ends the current batch
func (l *Logger) EndBatchOperation(ctx context.Context, failed int, cancelled bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.currentOp == nil {
		return
	}

	l.zlog.Info().
		Str("kind", l.currentOp.Kind).
		Int("items", len(l.items)).
		Int("failed", failed).
		Bool("cancelled", cancelled).
		Msg("batch operation complete")

	l.currentOp = nil
	l.items = nil
}

// 📝 LogNewline logs a newline
func (l *Logger) LogNewline() {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.console)
}

// 📝 Header logs a header
func (l *Logger) Header(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	spleenText := color.New(color.Bold, color.FgCyan).Sprint("spleen")
	fmt.Fprintf(l.console, "\n%s %s\n\n", spleenText, color.New(color.Faint).Sprint("• "+msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Success logs a success message
func (l *Logger) Success(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "✅ %s\n", color.New(color.FgGreen).Sprint(msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Warning logs a warning message
func (l *Logger) Warning(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "⚠️  %s\n", color.New(color.FgYellow).Sprint(msg))
	l.zlog.Warn().Msg(msg)
}

// 📝 Error logs an error message
func (l *Logger) Error(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "❌ %s\n", color.New(color.FgRed).Sprint(msg))
	l.zlog.Error().Msg(msg)
}

// 📝 Info logs an info message
func (l *Logger) Info(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "ℹ️  %s\n", color.New(color.FgCyan).Sprint(msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Infof logs a formatted info message
func (l *Logger) Infof(format string, args ...interface{}) {
	l.Info(fmt.Sprintf(format, args...))
}

// 📝 Warningf logs a formatted warning message
func (l *Logger) Warningf(format string, args ...interface{}) {
	l.Warning(fmt.Sprintf(format, args...))
}

// 📝 Errorf logs a formatted error message
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.Error(fmt.Sprintf(format, args...))
}

// 📝 Successf logs a formatted success message
func (l *Logger) Successf(format string, args ...interface{}) {
	l.Success(fmt.Sprintf(format, args...))
}
