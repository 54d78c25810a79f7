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
	fileIndent  = 4  // spaces to indent file entries
	nameWidth   = 35 // Base width for filename
	statusWidth = 15 // Width for status text
)

// 🎯 FileResolution represents one target file's resolution for logging
type FileResolution struct {
	Path       string // Target file path
	Status     string // Resolution status text
	Properties int    // Number of properties resolved
	IsError    bool   // Whether resolution failed
	IsSkipped  bool   // Whether the file was excluded
}

// 📦 RunInfo represents one geese-file run for logging
type RunInfo struct {
	GeeseFile string // Geese file name
	WorkDir   string // Working directory
	Targets   int    // Number of target files
}

// 🎯 Logger handles structured logging with console output
type Logger struct {
	zlog        zerolog.Logger
	console     io.Writer
	mu          sync.Mutex
	currentRun  *RunInfo
	resolutions []FileResolution
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

// 📝 formatFileResolution formats a file resolution for display
func (l *Logger) formatFileResolution(res FileResolution) string {
	// Determine symbol and color
	var symbol rune
	var symbolColor color.Attribute
	switch {
	case res.IsError:
		symbol = '✗'
		symbolColor = color.FgRed
	case res.IsSkipped:
		symbol = '-'
		symbolColor = color.FgYellow
	default:
		symbol = '✓'
		symbolColor = color.FgGreen
	}

	return fmt.Sprintf("%s%s %s %s %s",
		fmt.Sprintf("%*s", fileIndent, ""),
		color.New(symbolColor).Sprint(string(symbol)),
		fmt.Sprintf("%-*s", nameWidth, res.Path),
		color.New(color.FgCyan).Sprint(fmt.Sprintf("%d props", res.Properties)),
		fmt.Sprintf("%-*s", statusWidth, res.Status))
}

// 📝 LogFileResolution logs one target file's resolution
func (l *Logger) LogFileResolution(ctx context.Context, res FileResolution) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.resolutions = append(l.resolutions, res)

	fmt.Fprintln(l.console, l.formatFileResolution(res))

	l.zlog.Info().
		Str("file", res.Path).
		Str("status", res.Status).
		Int("properties", res.Properties).
		Bool("is_error", res.IsError).
		Bool("is_skipped", res.IsSkipped).
		Msg("file resolution")
}

// 📝 StartRun starts a new geese-file run
func (l *Logger) StartRun(ctx context.Context, run RunInfo) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.currentRun = &run
	l.resolutions = nil

	fmt.Fprintf(l.console, "[resolving %s]\n",
		color.New(color.FgCyan).Sprint(run.WorkDir))

	fmt.Fprintf(l.console, "%s %s %s %s\n",
		color.New(color.FgMagenta).Sprint("◆"),
		color.New(color.Bold).Sprint(run.GeeseFile),
		color.New(color.Faint).Sprint("•"),
		color.New(color.FgYellow).Sprintf("%d targets", run.Targets))

	l.zlog.Info().
		Str("geese_file", run.GeeseFile).
		Str("work_dir", run.WorkDir).
		Int("targets", run.Targets).
		Msg("starting resolution run")
}

// 📝 EndRun ends the current run
func (l *Logger) EndRun(ctx context.Context) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.currentRun == nil {
		return
	}

	l.zlog.Info().
		Str("geese_file", l.currentRun.GeeseFile).
		Int("files", len(l.resolutions)).
		Msg("resolution run complete")

	l.currentRun = nil
	l.resolutions = nil
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
	geeseText := color.New(color.Bold, color.FgCyan).Sprint("geese")
	fmt.Fprintf(l.console, "\n%s %s\n\n", geeseText, color.New(color.Faint).Sprint("• "+msg))
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

// 📝 Successf logs a formatted success message
func (l *Logger) Successf(format string, args ...interface{}) {
	l.Success(fmt.Sprintf(format, args...))
}
