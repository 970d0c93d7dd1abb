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
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// 🔄 RuleSet maps a search pattern to its replacement, in declaration order
type RuleSet struct {
	m *orderedmap.OrderedMap[string, string]
}

// 🏭 NewRuleSet creates an empty rule set
func NewRuleSet() *RuleSet {
	return &RuleSet{m: orderedmap.New[string, string]()}
}

// Set adds a rule. Re-setting a pattern replaces its value and keeps its position.
func (rs *RuleSet) Set(pattern, replacement string) {
	rs.m.Set(pattern, replacement)
}

// Get returns the replacement for a pattern
func (rs *RuleSet) Get(pattern string) (string, bool) {
	return rs.m.Get(pattern)
}

// Len returns the number of rules
func (rs *RuleSet) Len() int {
	return rs.m.Len()
}

// Each calls fn for every rule in declaration order
func (rs *RuleSet) Each(fn func(pattern, replacement string)) {
	for p := rs.m.Oldest(); p != nil; p = p.Next() {
		fn(p.Key, p.Value)
	}
}

// 📚 RuleSpec maps a target filename to its rule set, in first-declaration order
type RuleSpec struct {
	m *orderedmap.OrderedMap[string, *RuleSet]
}

// 🏭 NewRuleSpec creates an empty rule spec
func NewRuleSpec() *RuleSpec {
	return &RuleSpec{m: orderedmap.New[string, *RuleSet]()}
}

// Declare installs a fresh, empty rule set for filename and returns it.
// A filename declared twice keeps its first position but loses its earlier rules.
func (s *RuleSpec) Declare(filename string) *RuleSet {
	rs := NewRuleSet()
	s.m.Set(filename, rs)
	return rs
}

// Get returns the rule set for a filename
func (s *RuleSpec) Get(filename string) (*RuleSet, bool) {
	return s.m.Get(filename)
}

// Len returns the number of target files
func (s *RuleSpec) Len() int {
	return s.m.Len()
}

// Files returns the target filenames in first-declaration order
func (s *RuleSpec) Files() []string {
	out := make([]string, 0, s.m.Len())
	for p := s.m.Oldest(); p != nil; p = p.Next() {
		out = append(out, p.Key)
	}
	return out
}

// Each calls fn for every target file in order, stopping at the first error
func (s *RuleSpec) Each(fn func(filename string, rs *RuleSet) error) error {
	for p := s.m.Oldest(); p != nil; p = p.Next() {
		if err := fn(p.Key, p.Value); err != nil {
			return err
		}
	}
	return nil
}
