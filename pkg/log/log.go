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
	"os"
	"strings"
	"sync"

	"github.com/fatih/color"
	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
)

// 🎨 Display configuration
const (
	classIndent = 4  // spaces to indent class entries
	nameWidth   = 35 // width for the class label
)

// 🎯 ClassSplit is the per-class progress line written by the partitioner
type ClassSplit struct {
	Class      string   // class label
	Total      int      // files found in the source directory
	Partitions []string // partition names, same order as Counts
	Counts     []int    // files moved into each partition
}

// 📊 ClassCount is the per-class line written by the verifier
type ClassCount struct {
	Partition string // partition being counted
	Label     string // human readable class label
	Count     int    // regular files found
	Found     bool   // whether the class directory exists
}

// 🎯 Logger writes human readable lines to the console and structured events to zerolog
type Logger struct {
	zlog    zerolog.Logger
	console io.Writer
	mu      sync.Mutex
}

// 🏭 New creates a new logger; structured events go to stderr at the given level
func New(console io.Writer, level zerolog.Level) *Logger {
	zlog := zerolog.New(zerolog.NewConsoleWriter(func(w *zerolog.ConsoleWriter) {
		w.Out = os.Stderr
	})).With().Timestamp().Logger().Level(level)
	return NewWithZerolog(console, zlog)
}

// NewWithZerolog creates a logger around an existing zerolog logger.
func NewWithZerolog(console io.Writer, zlog zerolog.Logger) *Logger {
	return &Logger{
		zlog:    zlog,
		console: console,
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

// WithContext attaches both the logger and its zerolog logger to ctx.
func (l *Logger) WithContext(ctx context.Context) context.Context {
	return NewContext(l.zlog.WithContext(ctx), l)
}

// Debug starts a structured debug event. Nothing reaches the console.
func (l *Logger) Debug() *zerolog.Event {
	return l.zlog.Debug()
}

// formatClassSplit formats a partitioner progress line.
func (l *Logger) formatClassSplit(op ClassSplit) string {
	symbol := color.GreenString("✓")
	if op.Total == 0 {
		symbol = color.YellowString("-")
	}

	parts := make([]string, 0, len(op.Counts))
	for i, count := range op.Counts {
		name := fmt.Sprintf("partition%d", i)
		if i < len(op.Partitions) {
			name = op.Partitions[i]
		}
		parts = append(parts, fmt.Sprintf("%s %d", name, count))
	}

	return fmt.Sprintf("%s%s %s processed %d | %s",
		strings.Repeat(" ", classIndent),
		symbol,
		fmt.Sprintf("%-*s", nameWidth, op.Class),
		op.Total,
		strings.Join(parts, " | "))
}

// 📝 LogClassSplit logs the outcome of splitting one class
func (l *Logger) LogClassSplit(ctx context.Context, op ClassSplit) {
	l.mu.Lock()
	defer l.mu.Unlock()

	fmt.Fprintln(l.console, l.formatClassSplit(op))

	event := l.zlog.Info().
		Str("class", op.Class).
		Int("total", op.Total)
	for i, count := range op.Counts {
		if i < len(op.Partitions) {
			event = event.Int(op.Partitions[i], count)
		}
	}
	event.Msg("class split")
}

// formatClassCount formats a verifier line.
func (l *Logger) formatClassCount(op ClassCount) string {
	symbol := color.CyanString("•")
	value := fmt.Sprintf("%d", op.Count)
	if !op.Found {
		symbol = color.RedString("✗")
		value = color.RedString("directory not found")
	}
	return fmt.Sprintf("%s%s %s %s",
		strings.Repeat(" ", classIndent),
		symbol,
		fmt.Sprintf("%-*s", nameWidth, op.Label),
		value)
}

// 📝 LogClassCount logs the file count of one partition/class directory
func (l *Logger) LogClassCount(ctx context.Context, op ClassCount) {
	l.mu.Lock()
	defer l.mu.Unlock()

	fmt.Fprintln(l.console, l.formatClassCount(op))

	l.zlog.Info().
		Str("partition", op.Partition).
		Str("class", op.Label).
		Int("count", op.Count).
		Bool("found", op.Found).
		Msg("class count")
}

// 📝 LogPartitionTotal logs the subtotal of one partition
func (l *Logger) LogPartitionTotal(ctx context.Context, partition string, total int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	fmt.Fprintf(l.console, "  %s total in %s: %d\n",
		color.New(color.Faint).Sprint("->"),
		color.New(color.Bold).Sprint(strings.ToUpper(partition)),
		total)

	l.zlog.Info().Str("partition", partition).Int("total", total).Msg("partition total")
}

// 📝 Section logs a sub heading such as a partition name
func (l *Logger) Section(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "\n%s %s\n", color.New(color.FgMagenta).Sprint("◆"), color.New(color.Bold).Sprint(msg))
	l.zlog.Debug().Msg(msg)
}

// 📋 Table renders rows with pterm; the first row is the header
func (l *Logger) Table(rows [][]string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	out, err := pterm.DefaultTable.WithHasHeader().WithData(pterm.TableData(rows)).Srender()
	if err != nil {
		return err
	}
	fmt.Fprintln(l.console, out)
	return nil
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
	name := color.New(color.Bold, color.FgCyan).Sprint("datasplit")
	fmt.Fprintf(l.console, "\n%s %s\n\n", name, color.New(color.Faint).Sprint("• "+msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Success logs a success message
func (l *Logger) Success(msg string) {
	l.message(l.zlog.Info(), "✅ ", color.FgGreen, msg)
}

// 📝 Successf logs a formatted success message
func (l *Logger) Successf(format string, args ...any) {
	l.Success(fmt.Sprintf(format, args...))
}

// 📝 Info logs an info message
func (l *Logger) Info(msg string) {
	l.message(l.zlog.Info(), "ℹ️  ", color.FgCyan, msg)
}

// 📝 Warningf logs a formatted warning message
func (l *Logger) Warningf(format string, args ...any) {
	l.message(l.zlog.Warn(), "⚠️  ", color.FgYellow, fmt.Sprintf(format, args...))
}

// 📝 Errorf logs a formatted error message
func (l *Logger) Errorf(format string, args ...any) {
	l.message(l.zlog.Error(), "❌ ", color.FgRed, fmt.Sprintf(format, args...))
}

func (l *Logger) message(event *zerolog.Event, prefix string, attr color.Attribute, msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "%s%s\n", prefix, color.New(attr).Sprint(msg))
	event.Msg(msg)
}
