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

package text

import (
	"bufio"
	"context"
	"io"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/walteh/translate/pkg/rules"
	"gitlab.com/tozd/go/errors"
)

// DefaultMaxRewrites bounds the rewrites applied to a single line
const DefaultMaxRewrites = 10000

// ErrNotConverged is returned when a line keeps matching after the rewrite cap
var ErrNotConverged = errors.Base("translation did not converge")

// 🔄 rule is a single pattern and its replacement
type rule struct {
	pattern     string
	replacement string
}

// 🎯 Translator applies a rule set to lines of text.
//
// Patterns are tried longest first. A pattern matches only when its first
// occurrence in the line starts after index 0. The first matching pattern
// that is not an identity rule has every occurrence replaced, then the scan
// starts over on the new line until nothing matches.
type Translator struct {
	candidates  []rule
	maxRewrites int
}

// Option configures a Translator
type Option func(*Translator)

// WithMaxRewrites caps the rewrites per line; 0 disables the cap
func WithMaxRewrites(n int) Option {
	return func(t *Translator) {
		t.maxRewrites = n
	}
}

// 🏭 NewTranslator creates a translator for the given rule set
func NewTranslator(rs *rules.RuleSet, opts ...Option) *Translator {
	t := &Translator{
		maxRewrites: DefaultMaxRewrites,
	}

	rs.Each(func(pattern, replacement string) {
		t.candidates = append(t.candidates, rule{pattern: pattern, replacement: replacement})
	})

	// stable: equal lengths keep declaration order
	slices.SortStableFunc(t.candidates, func(a, b rule) int {
		return utf8.RuneCountInString(b.pattern) - utf8.RuneCountInString(a.pattern)
	})

	for _, opt := range opts {
		opt(t)
	}
	return t
}

// 📊 LineResult describes the translation of one line
type LineResult struct {
	Line         string
	Rewrites     int // rules applied
	Replacements int // occurrences replaced
}

// 📊 Result describes the translation of a stream
type Result struct {
	Lines        int
	ChangedLines int
	Replacements int
}

// WasModified reports whether any line changed
func (r *Result) WasModified() bool {
	return r.ChangedLines > 0
}

// next returns the first candidate that qualifies against line
func (t *Translator) next(line string) (rule, bool) {
	for _, c := range t.candidates {
		if strings.Index(line, c.pattern) < 1 {
			continue
		}
		if c.pattern == c.replacement {
			continue
		}
		return c, true
	}
	return rule{}, false
}

// TranslateLineResult translates a single line, terminator included
func (t *Translator) TranslateLineResult(line string) (*LineResult, error) {
	res := &LineResult{Line: line}
	for {
		c, ok := t.next(res.Line)
		if !ok {
			return res, nil
		}
		if t.maxRewrites > 0 && res.Rewrites >= t.maxRewrites {
			return nil, errors.Errorf("%w: %d rewrites, last pattern %q", ErrNotConverged, res.Rewrites, c.pattern)
		}
		res.Replacements += strings.Count(res.Line, c.pattern)
		res.Line = strings.ReplaceAll(res.Line, c.pattern, c.replacement)
		res.Rewrites++
	}
}

// TranslateLine translates a single line, terminator included
func (t *Translator) TranslateLine(line string) (string, error) {
	res, err := t.TranslateLineResult(line)
	if err != nil {
		return "", err
	}
	return res.Line, nil
}

// Translate reads r line by line and writes each translated line to w
func (t *Translator) Translate(ctx context.Context, r io.Reader, w io.Writer) (*Result, error) {
	reader := bufio.NewReader(r)
	writer := bufio.NewWriter(w)
	result := &Result{}

	for {
		if err := ctx.Err(); err != nil {
			return nil, errors.Errorf("translation cancelled: %w", err)
		}

		line, readErr := reader.ReadString('\n')
		if readErr != nil && readErr != io.EOF {
			return nil, errors.Errorf("reading line %d: %w", result.Lines+1, readErr)
		}

		if line != "" {
			result.Lines++

			res, err := t.TranslateLineResult(line)
			if err != nil {
				return nil, errors.Errorf("line %d: %w", result.Lines, err)
			}
			if res.Line != line {
				result.ChangedLines++
			}
			result.Replacements += res.Replacements

			if _, err := writer.WriteString(res.Line); err != nil {
				return nil, errors.Errorf("writing line %d: %w", result.Lines, err)
			}
		}

		if readErr == io.EOF {
			break
		}
	}

	if err := writer.Flush(); err != nil {
		return nil, errors.Errorf("flushing output: %w", err)
	}
	return result, nil
}
