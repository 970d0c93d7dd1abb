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

package operation

import (
	"context"
	"os"

	"github.com/go-git/go-billy/v5/util"
	"github.com/rs/zerolog"
	"github.com/walteh/translate/pkg/rules"
	"github.com/walteh/translate/pkg/status"
	"gitlab.com/tozd/go/errors"
)

// 🔄 Translate regenerates every target file from its backup.
// Backups are created on first sight and never overwritten.
func (e *Engine) Translate(ctx context.Context, spec *rules.RuleSpec) (*status.Summary, error) {
	return e.process(ctx, spec, "translate", e.translateFile)
}

// 📄 translateFile backs up name if needed and rewrites it from the backup
func (e *Engine) translateFile(ctx context.Context, name string, rs *rules.RuleSet) (status.FileResult, error) {
	logger := zerolog.Ctx(ctx)
	res := status.FileResult{Path: name}

	created, err := e.backups.Ensure(ctx, name)
	if err != nil {
		return res, err
	}
	res.BackupCreated = created

	before, err := e.checksum(name)
	if err != nil {
		return res, err
	}

	src, err := e.backups.OpenOriginal(name)
	if err != nil {
		return res, err
	}
	defer src.Close()

	dst, err := e.backups.CreateWorking(name)
	if err != nil {
		return res, err
	}
	defer dst.Close()

	result, err := e.translator(rs).Translate(ctx, src, dst)
	if err != nil {
		return res, errors.Errorf("translating %s: %w", name, err)
	}
	if err := dst.Close(); err != nil {
		return res, errors.Errorf("closing %s: %w", name, err)
	}

	res.Lines = result.Lines
	res.ChangedLines = result.ChangedLines
	res.Replacements = result.Replacements

	after, err := e.checksum(name)
	if err != nil {
		return res, err
	}
	res.Checksum = after

	switch {
	case created:
		res.Status = status.StatusNew
	case before != after:
		res.Status = status.StatusModified
	default:
		res.Status = status.StatusUnchanged
	}

	logger.Debug().
		Str("file", name).
		Str("status", res.Status.String()).
		Int("rules", rs.Len()).
		Int("replacements", res.Replacements).
		Msg("file translated")

	return res, nil
}

// checksum hashes the current content of name; a missing file hashes as empty
func (e *Engine) checksum(name string) (string, error) {
	content, err := util.ReadFile(e.fs, name)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil
		}
		return "", errors.Errorf("reading %s: %w", name, err)
	}
	return status.Checksum(content), nil
}
