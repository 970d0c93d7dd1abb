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

// Package backup keeps the pristine copy of every translated file.
//
// A backup is created the first time a file is seen and is never written
// again; every translation reads from it, so repeated runs always start
// from the original content.
package backup

import (
	"context"
	"io"
	"os"

	"github.com/go-git/go-billy/v5"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// DefaultSuffix is appended to a file name to form its backup path
const DefaultSuffix = ".orig"

// ErrNoBackup is returned when a backup is required but absent
var ErrNoBackup = errors.Base("backup does not exist")

// 💾 Store manages backups on a filesystem
type Store struct {
	fs     billy.Filesystem
	suffix string
}

// 🏭 New creates a store; an empty suffix means DefaultSuffix
func New(fs billy.Filesystem, suffix string) *Store {
	if suffix == "" {
		suffix = DefaultSuffix
	}
	return &Store{
		fs:     fs,
		suffix: suffix,
	}
}

// Path returns the backup path for name
func (s *Store) Path(name string) string {
	return name + s.suffix
}

// Exists reports whether path exists on the store's filesystem
func (s *Store) Exists(path string) (bool, error) {
	_, err := s.fs.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return false, errors.Errorf("checking file existence: %w", err)
}

// 📦 Ensure creates the backup of name if it does not exist yet.
// It reports whether a backup was created by this call.
func (s *Store) Ensure(ctx context.Context, name string) (bool, error) {
	logger := zerolog.Ctx(ctx)
	backupPath := s.Path(name)

	exists, err := s.Exists(backupPath)
	if err != nil {
		return false, err
	}
	if exists {
		logger.Debug().Str("file", name).Str("backup", backupPath).Msg("backup already exists")
		return false, nil
	}

	if err := s.copyFile(name, backupPath); err != nil {
		return false, errors.Errorf("creating backup of %s: %w", name, err)
	}

	logger.Debug().Str("file", name).Str("backup", backupPath).Msg("backup created")
	return true, nil
}

// OpenOriginal opens the backup of name for reading
func (s *Store) OpenOriginal(name string) (billy.File, error) {
	f, err := s.fs.Open(s.Path(name))
	if err != nil {
		return nil, errors.Errorf("opening backup of %s: %w", name, err)
	}
	return f, nil
}

// CreateWorking truncates or creates name for writing, using the backup's permissions
func (s *Store) CreateWorking(name string) (billy.File, error) {
	perm := os.FileMode(0o644)
	if info, err := s.fs.Stat(s.Path(name)); err == nil {
		perm = info.Mode().Perm()
	}

	f, err := s.fs.OpenFile(name, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm)
	if err != nil {
		return nil, errors.Errorf("opening %s for writing: %w", name, err)
	}
	return f, nil
}

// 🔙 Restore overwrites name with the content of its backup. The backup is kept.
func (s *Store) Restore(ctx context.Context, name string) error {
	backupPath := s.Path(name)

	exists, err := s.Exists(backupPath)
	if err != nil {
		return err
	}
	if !exists {
		return errors.Errorf("%w: %s", ErrNoBackup, backupPath)
	}

	if err := s.copyFile(backupPath, name); err != nil {
		return errors.Errorf("restoring %s: %w", name, err)
	}

	zerolog.Ctx(ctx).Debug().Str("file", name).Str("backup", backupPath).Msg("file restored")
	return nil
}

// copyFile copies content and permission bits from src to dst
func (s *Store) copyFile(src, dst string) error {
	info, err := s.fs.Stat(src)
	if err != nil {
		return errors.Errorf("checking source file: %w", err)
	}

	source, err := s.fs.Open(src)
	if err != nil {
		return errors.Errorf("opening source file: %w", err)
	}
	defer source.Close()

	destination, err := s.fs.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return errors.Errorf("creating destination file: %w", err)
	}

	if _, err := io.Copy(destination, source); err != nil {
		destination.Close()
		return errors.Errorf("copying file: %w", err)
	}
	if err := destination.Close(); err != nil {
		return errors.Errorf("closing destination file: %w", err)
	}

	if change, ok := s.fs.(billy.Change); ok {
		if err := change.Chmod(dst, info.Mode().Perm()); err != nil {
			return errors.Errorf("copying file mode: %w", err)
		}
	}

	return nil
}
