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
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/translate/pkg/status"
)

func TestLogger(t *testing.T) {
	// Disable color for testing
	color.NoColor = true
	defer func() { color.NoColor = false }()

	tests := []struct {
		name     string
		op       func(t *testing.T, logger *Logger)
		wantLogs []string
	}{
		{
			name: "report_new_file",
			op: func(t *testing.T, logger *Logger) {
				logger.Report(context.Background(), status.FileResult{
					Path:          "foo.file",
					Status:        status.StatusNew,
					BackupCreated: true,
					Replacements:  1,
				})
			},
			wantLogs: []string{
				"✓ foo.file                            new          1 replacements",
			},
		},
		{
			name: "report_error",
			op: func(t *testing.T, logger *Logger) {
				logger.Report(context.Background(), status.FileResult{
					Path:  "bar.file",
					Error: fmt.Errorf("permission denied"),
				})
			},
			wantLogs: []string{
				"✗ bar.file                            error",
			},
		},
		{
			name: "start_run",
			op: func(t *testing.T, logger *Logger) {
				logger.StartRun(context.Background(), RunOperation{
					SpecFile: "rules.tsv",
					Mode:     "translate",
					Files:    2,
				})
			},
			wantLogs: []string{
				"◆ rules.tsv • translate",
			},
		},
		{
			name: "log_messages",
			op: func(t *testing.T, logger *Logger) {
				logger.Warning("warning message")
				logger.Error("error message")
				logger.Success("success message")
			},
			wantLogs: []string{
				"⚠️  warning message",
				"❌ error message",
				"✅ success message",
			},
		},
		{
			name: "log_formatted_warning",
			op: func(t *testing.T, logger *Logger) {
				logger.Warningf("%d files have no backup", 2)
			},
			wantLogs: []string{
				"⚠️  2 files have no backup",
			},
		},
		{
			name: "log_raw",
			op: func(t *testing.T, logger *Logger) {
				logger.Raw("first")
				logger.Raw("  second")
			},
			wantLogs: []string{
				"first",
				"second",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			logger := NewWithLogger(buf, zerolog.Nop())

			tt.op(t, logger)

			output := strings.TrimSpace(buf.String())
			lines := strings.Split(output, "\n")

			require.Equal(t, len(tt.wantLogs), len(lines), "number of log lines should match")
			for i, want := range tt.wantLogs {
				assert.Equal(t, want, strings.TrimSpace(lines[i]), "log line %d should match", i)
			}
		})
	}
}

func TestLoggerStructuredEvents(t *testing.T) {
	events := &bytes.Buffer{}
	logger := NewWithLogger(io.Discard, zerolog.New(events))

	ctx := context.Background()
	logger.StartRun(ctx, RunOperation{SpecFile: "rules.tsv", Mode: "translate", Files: 1})
	logger.Report(ctx, status.FileResult{Path: "foo.file", Status: status.StatusModified, Replacements: 3})
	logger.EndRun(ctx)

	out := events.String()
	assert.Contains(t, out, `"message":"starting run"`)
	assert.Contains(t, out, `"file":"foo.file"`)
	assert.Contains(t, out, `"status":"modified"`)
	assert.Contains(t, out, `"replacements":3`)
	assert.Contains(t, out, `"message":"run complete"`)
}

func TestLoggerContext(t *testing.T) {
	logger := NewWithLogger(io.Discard, zerolog.Nop())

	ctx := NewContext(context.Background(), logger)

	got := FromContext(ctx)
	assert.Same(t, logger, got, "logger from context should be the same instance")

	assert.Panics(t, func() {
		FromContext(context.Background())
	}, "FromContext should panic when logger is missing")
}

func TestNewLevel(t *testing.T) {
	events := &bytes.Buffer{}
	logger := New(io.Discard, events, zerolog.WarnLevel)

	logger.Success("hidden")
	logger.Warning("shown")

	out := events.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown")
}

func TestLoggerWithContext(t *testing.T) {
	events := &bytes.Buffer{}
	logger := NewWithLogger(io.Discard, zerolog.New(events))

	ctx := logger.WithContext(context.Background())
	assert.Same(t, logger, FromContext(ctx))

	zerolog.Ctx(ctx).Info().Msg("from context")
	assert.Contains(t, events.String(), `"message":"from context"`)
}
