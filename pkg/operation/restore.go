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

	"github.com/walteh/translate/pkg/rules"
	"github.com/walteh/translate/pkg/status"
)

// 🔙 Restore copies every target file back from its backup
func (e *Engine) Restore(ctx context.Context, spec *rules.RuleSpec) (*status.Summary, error) {
	return e.process(ctx, spec, "restore", e.restoreFile)
}

func (e *Engine) restoreFile(ctx context.Context, name string, _ *rules.RuleSet) (status.FileResult, error) {
	res := status.FileResult{Path: name}
	if err := e.backups.Restore(ctx, name); err != nil {
		return res, err
	}

	sum, err := e.checksum(name)
	if err != nil {
		return res, err
	}
	res.Checksum = sum
	res.Status = status.StatusRestored
	return res, nil
}
