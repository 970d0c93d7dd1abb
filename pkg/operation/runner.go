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
	"gitlab.com/tozd/go/errors"
	"golang.org/x/sync/errgroup"
)

// fileFunc handles one target file
type fileFunc func(ctx context.Context, name string, rs *rules.RuleSet) (status.FileResult, error)

// 🏃 Runner walks the files of a spec
type Runner struct {
	parallel bool
	limit    int
}

// 🏗️ NewRunner creates a new runner
func NewRunner(parallel bool, limit int) *Runner {
	return &Runner{
		parallel: parallel,
		limit:    limit,
	}
}

// 🏃 Run calls fn for every file in the spec
func (r *Runner) Run(ctx context.Context, spec *rules.RuleSpec, fn func(ctx context.Context, name string, rs *rules.RuleSet) error) error {
	if r.parallel {
		return r.runParallel(ctx, spec, fn)
	}
	return r.runSequential(ctx, spec, fn)
}

// 🔄 runSequential processes files one at a time in spec order, stopping at the first error
func (r *Runner) runSequential(ctx context.Context, spec *rules.RuleSpec, fn func(ctx context.Context, name string, rs *rules.RuleSet) error) error {
	return spec.Each(func(name string, rs *rules.RuleSet) error {
		if err := ctx.Err(); err != nil {
			return errors.Errorf("operation cancelled: %w", err)
		}
		return fn(ctx, name, rs)
	})
}

// ⚡ runParallel processes files concurrently; the first error cancels the rest
func (r *Runner) runParallel(ctx context.Context, spec *rules.RuleSpec, fn func(ctx context.Context, name string, rs *rules.RuleSet) error) error {
	g, gctx := errgroup.WithContext(ctx)
	if r.limit > 0 {
		g.SetLimit(r.limit)
	}

	_ = spec.Each(func(name string, rs *rules.RuleSet) error {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return errors.Errorf("operation cancelled: %w", err)
			}
			return fn(gctx, name, rs)
		})
		return nil
	})

	return g.Wait()
}
