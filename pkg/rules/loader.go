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

package rules

import (
	"bufio"
	"context"
	"io"
	"strings"
	"unicode"

	"github.com/go-git/go-billy/v5"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

const fieldSeparator = "\t"

var (
	// ErrMalformedRow is returned when a row does not resolve to exactly one pattern and replacement
	ErrMalformedRow = errors.Base("malformed row")
	// ErrNoFilename is returned when a rule appears before any filename was declared
	ErrNoFilename = errors.Base("no filename declared")
)

// 🎯 Load opens the spec file at path and parses it
func Load(ctx context.Context, fs billy.Filesystem, path string) (*RuleSpec, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("loading spec file")

	f, err := fs.Open(path)
	if err != nil {
		return nil, errors.Errorf("opening spec file: %w", err)
	}
	defer f.Close()

	spec, err := Parse(ctx, f)
	if err != nil {
		return nil, errors.Errorf("parsing spec file %s: %w", path, err)
	}

	logger.Debug().Str("path", path).Int("files", spec.Len()).Msg("spec file loaded")
	return spec, nil
}

// parseState is threaded through the rows; current is the filename rules attach to
type parseState struct {
	spec    *RuleSpec
	current string
	rules   *RuleSet
}

// 📝 Parse reads tab separated rows into a RuleSpec
func Parse(ctx context.Context, r io.Reader) (*RuleSpec, error) {
	logger := zerolog.Ctx(ctx)

	st := parseState{spec: NewRuleSpec()}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		next, err := st.row(scanner.Text())
		if err != nil {
			return nil, errors.Errorf("line %d: %w", lineNum, err)
		}
		st = next
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Errorf("reading rows: %w", err)
	}

	for _, name := range st.spec.Files() {
		rs, _ := st.spec.Get(name)
		if _, ok := rs.Get(""); ok {
			logger.Debug().Str("file", name).Msg("empty pattern never matches")
		}
	}

	return st.spec, nil
}

// row applies one spec line to the state and returns the new state
func (st parseState) row(line string) (parseState, error) {
	fields := strings.Split(strings.TrimRightFunc(line, unicode.IsSpace), fieldSeparator)

	if len(fields) == 3 {
		if name := fields[0]; name != "" {
			st.current = name
			st.rules = st.spec.Declare(name)
		}
		fields = fields[1:]
	}

	if len(fields) != 2 {
		return st, errors.Errorf("%w: expected 2 or 3 tab separated fields, got %d", ErrMalformedRow, len(fields))
	}
	if st.current == "" {
		return st, errors.Errorf("%w: pattern %q has no target file", ErrNoFilename, fields[0])
	}

	st.rules.Set(fields[0], fields[1])
	return st, nil
}
