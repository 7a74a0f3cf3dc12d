// Copyright © 2024 Rak Laptudirm <rak@laptudirm.com>
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package store

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"

	"laptudirm.com/x/pairings/internal/util"
)

const (
	DirPermissions  = 0755
	FilePermissions = 0644
)

// DefaultDirectory is where records are kept when no bucket is configured.
var DefaultDirectory = filepath.Join(xdg.DataHome, "pairings")

// Directory is a Store keeping every record as a YAML file in a directory.
type Directory struct {
	Path string
}

var _ Store = (*Directory)(nil)

// NewDirectory returns a Directory store rooted at path, creating the
// directory if it does not exist yet.
func NewDirectory(path string) (*Directory, error) {
	if err := os.MkdirAll(path, DirPermissions); err != nil {
		return nil, err
	}

	return &Directory{Path: path}, nil
}

func (dir *Directory) file(name string) string {
	return filepath.Join(dir.Path, name+Extension)
}

// Put writes the record through a temporary file, so that a concurrent
// reader never sees a partially written record.
func (dir *Directory) Put(_ context.Context, name string, data []byte) error {
	if err := ValidateName(name); err != nil {
		return err
	}

	temp, err := os.CreateTemp(dir.Path, "."+name+"-*")
	if err != nil {
		return err
	}
	defer os.Remove(temp.Name())

	if _, err := temp.Write(data); err != nil {
		_ = temp.Close()
		return err
	}

	if err := temp.Chmod(FilePermissions); err != nil {
		_ = temp.Close()
		return err
	}

	if err := temp.Close(); err != nil {
		return err
	}

	return os.Rename(temp.Name(), dir.file(name))
}

func (dir *Directory) Get(_ context.Context, name string) ([]byte, error) {
	if err := ValidateName(name); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(dir.file(name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotFound
	}

	return data, err
}

// List returns the names of all records in natural order.
func (dir *Directory) List(_ context.Context) ([]string, error) {
	entries, err := os.ReadDir(dir.Path)
	if err != nil {
		return nil, err
	}

	names := []string{}
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, ".") || !strings.HasSuffix(name, Extension) {
			continue
		}

		names = append(names, strings.TrimSuffix(name, Extension))
	}

	util.SortNatural(names)
	return names, nil
}

func (dir *Directory) Delete(_ context.Context, name string) error {
	if err := ValidateName(name); err != nil {
		return err
	}

	err := os.Remove(dir.file(name))
	if errors.Is(err, fs.ErrNotExist) {
		return ErrNotFound
	}

	return err
}
