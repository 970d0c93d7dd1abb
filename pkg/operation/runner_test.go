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
	"sort"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/translate/pkg/rules"
)

func runnerSpec(names ...string) *rules.RuleSpec {
	spec := rules.NewRuleSpec()
	for _, name := range names {
		spec.Declare(name).Set("a", "b")
	}
	return spec
}

func TestRunnerSequentialOrder(t *testing.T) {
	var visited []string
	r := NewRunner(false, 0)

	err := r.Run(testContext(), runnerSpec("c", "a", "b"), func(ctx context.Context, name string, rs *rules.RuleSet) error {
		visited = append(visited, name)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "a", "b"}, visited)
}

func TestRunnerSequentialStopsAtError(t *testing.T) {
	var visited []string
	r := NewRunner(false, 0)

	err := r.Run(testContext(), runnerSpec("a", "b", "c"), func(ctx context.Context, name string, rs *rules.RuleSet) error {
		visited = append(visited, name)
		if name == "b" {
			return assert.AnError
		}
		return nil
	})
	require.ErrorIs(t, err, assert.AnError)
	assert.Equal(t, []string{"a", "b"}, visited)
}

func TestRunnerParallel(t *testing.T) {
	var (
		mu      sync.Mutex
		visited []string
		active  atomic.Int32
		peak    atomic.Int32
	)
	r := NewRunner(true, 2)

	names := []string{"a", "b", "c", "d", "e", "f"}
	err := r.Run(testContext(), runnerSpec(names...), func(ctx context.Context, name string, rs *rules.RuleSet) error {
		n := active.Add(1)
		defer active.Add(-1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}

		mu.Lock()
		visited = append(visited, name)
		mu.Unlock()
		return nil
	})
	require.NoError(t, err)

	sort.Strings(visited)
	assert.Equal(t, names, visited)
	assert.LessOrEqual(t, peak.Load(), int32(2))
}

func TestRunnerParallelError(t *testing.T) {
	r := NewRunner(true, 0)

	err := r.Run(testContext(), runnerSpec("a", "b", "c"), func(ctx context.Context, name string, rs *rules.RuleSet) error {
		if name == "b" {
			return assert.AnError
		}
		return nil
	})
	require.ErrorIs(t, err, assert.AnError)
}

func TestRunnerCancelled(t *testing.T) {
	for _, parallel := range []bool{false, true} {
		ctx, cancel := context.WithCancel(testContext())
		cancel()

		called := false
		err := NewRunner(parallel, 0).Run(ctx, runnerSpec("a"), func(ctx context.Context, name string, rs *rules.RuleSet) error {
			called = true
			return nil
		})
		require.ErrorIs(t, err, context.Canceled, "parallel=%t", parallel)
		assert.False(t, called, "parallel=%t", parallel)
	}
}
