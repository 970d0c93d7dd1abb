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
	"bytes"
	"context"

	"github.com/walteh/translate/pkg/rules"
	"github.com/walteh/translate/pkg/status"
	"gitlab.com/tozd/go/errors"
)

// 🔍 Status reports, without writing anything, whether each target file
// matches the translation of its backup
func (e *Engine) Status(ctx context.Context, spec *rules.RuleSpec) (*status.Summary, error) {
	return e.process(ctx, spec, "status", e.statusFile)
}

// statusFile compares the working file against the expected translation
func (e *Engine) statusFile(ctx context.Context, name string, rs *rules.RuleSet) (status.FileResult, error) {
	res := status.FileResult{Path: name}

	exists, err := e.backups.Exists(e.backups.Path(name))
	if err != nil {
		return res, err
	}
	if !exists {
		res.Status = status.StatusMissing
		return res, nil
	}

	src, err := e.backups.OpenOriginal(name)
	if err != nil {
		return res, err
	}
	defer src.Close()

	var expected bytes.Buffer
	result, err := e.translator(rs).Translate(ctx, src, &expected)
	if err != nil {
		return res, errors.Errorf("translating %s: %w", name, err)
	}
	res.Lines = result.Lines
	res.ChangedLines = result.ChangedLines
	res.Replacements = result.Replacements

	current, err := e.checksum(name)
	if err != nil {
		return res, err
	}
	res.Checksum = current

	if current == status.Checksum(expected.Bytes()) {
		res.Status = status.StatusUnchanged
	} else {
		res.Status = status.StatusModified
	}
	return res, nil
}
