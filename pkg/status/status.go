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

package status

import (
	"crypto/sha256"
	"encoding/hex"
	"sync"
)

// 📊 FileStatus represents the outcome for one target file
type FileStatus int

const (
	StatusUnknown   FileStatus = iota
	StatusNew                  // Backup created and file translated
	StatusModified             // File content differs from before the run, or from its expected translation
	StatusUnchanged            // File content matches
	StatusRestored             // File restored from its backup
	StatusSkipped              // File matched an ignore pattern
	StatusMissing              // Backup does not exist
)

// String returns a string representation of FileStatus
func (s FileStatus) String() string {
	switch s {
	case StatusNew:
		return "new"
	case StatusModified:
		return "modified"
	case StatusUnchanged:
		return "unchanged"
	case StatusRestored:
		return "restored"
	case StatusSkipped:
		return "skipped"
	case StatusMissing:
		return "missing"
	default:
		return "unknown"
	}
}

// 📄 FileResult records what happened to one target file
type FileResult struct {
	Path          string     // Target file path as written in the spec
	Status        FileStatus // Outcome
	BackupCreated bool       // Whether the backup was created during this run
	Lines         int        // Lines read from the backup
	ChangedLines  int        // Lines that differ from the backup
	Replacements  int        // Occurrences replaced
	Checksum      string     // SHA-256 of the resulting working file
	Error         error      // Any error associated with this file
}

// 📋 Summary collects file results in the order they were added
type Summary struct {
	mu    sync.Mutex
	files []FileResult
	index map[string]int
}

// 🏭 NewSummary creates an empty summary
func NewSummary() *Summary {
	return &Summary{index: make(map[string]int)}
}

// Add records a result, replacing an earlier result for the same path
func (s *Summary) Add(r FileResult) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i, ok := s.index[r.Path]; ok {
		s.files[i] = r
		return
	}
	s.index[r.Path] = len(s.files)
	s.files = append(s.files, r)
}

// Files returns a copy of the recorded results
func (s *Summary) Files() []FileResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]FileResult, len(s.files))
	copy(out, s.files)
	return out
}

// Get returns the result recorded for path
func (s *Summary) Get(path string) (FileResult, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.index[path]
	if !ok {
		return FileResult{}, false
	}
	return s.files[i], true
}

// Count returns how many results have the given status
func (s *Summary) Count(st FileStatus) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for _, f := range s.files {
		if f.Status == st {
			n++
		}
	}
	return n
}

// Replacements returns the total number of replacements
func (s *Summary) Replacements() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for _, f := range s.files {
		n += f.Replacements
	}
	return n
}

// Checksum returns the hex SHA-256 of content
func Checksum(content []byte) string {
	hash := sha256.Sum256(content)
	return hex.EncodeToString(hash[:])
}
