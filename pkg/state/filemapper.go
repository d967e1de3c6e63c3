// Copyright (C) 2026 nyx contributors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//        http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package state

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/nyx-release/nyx/internal/nyxerr"
	nyxyaml "github.com/nyx-release/nyx/internal/yaml"
)

// FileMapper saves and loads a [State] as a structured document, the
// codec picked by the configured stateFile's extension (spec §4.4),
// matching the extension-picks-codec convention the rest of nyx's
// config/state files use.
type FileMapper struct {
	Path string
}

// NewFileMapper builds a FileMapper for path.
func NewFileMapper(path string) *FileMapper {
	return &FileMapper{Path: path}
}

// Save persists s to m.Path. Callers skip calling Save entirely during
// a dry run, per spec §3 ("written to stateFile after each command
// when not in dry-run").
func (m *FileMapper) Save(s *State) error {
	data, err := m.marshal(s)
	if err != nil {
		return nyxerr.New(nyxerr.DataAccess, fmt.Sprintf("failed to marshal state: %v", err))
	}

	if err := os.WriteFile(m.Path, data, 0o644); err != nil { //nolint:gosec // state file is not sensitive
		return nyxerr.New(nyxerr.DataAccess, fmt.Sprintf("failed to write state file %s: %v", m.Path, err))
	}
	return nil
}

// Load reads and parses m.Path into a new State. Per spec §4.4, a
// parse failure is a [nyxerr.DataAccess] error, not a silent default.
func (m *FileMapper) Load() (*State, error) {
	data, err := os.ReadFile(m.Path)
	if err != nil {
		return nil, nyxerr.New(nyxerr.DataAccess, fmt.Sprintf("failed to read state file %s: %v", m.Path, err))
	}

	s := &State{}
	if err := m.unmarshal(data, s); err != nil {
		return nil, nyxerr.New(nyxerr.DataAccess, fmt.Sprintf("failed to parse state file %s: %v", m.Path, err))
	}
	return s, nil
}

// Exists reports whether m.Path names a file on disk.
func (m *FileMapper) Exists() bool {
	_, err := os.Stat(m.Path)
	return err == nil
}

// Remove deletes m.Path, used by the Clean command. A missing file is
// not an error.
func (m *FileMapper) Remove() error {
	if err := os.Remove(m.Path); err != nil && !os.IsNotExist(err) {
		return nyxerr.New(nyxerr.DataAccess, fmt.Sprintf("failed to remove state file %s: %v", m.Path, err))
	}
	return nil
}

func (m *FileMapper) marshal(s *State) ([]byte, error) {
	if m.isYAML() {
		return nyxyaml.Marshal(s)
	}
	return json.MarshalIndent(s, "", "  ")
}

func (m *FileMapper) unmarshal(data []byte, s *State) error {
	if m.isYAML() {
		return nyxyaml.Unmarshal(data, s)
	}
	return json.Unmarshal(data, s)
}

func (m *FileMapper) isYAML() bool {
	switch strings.ToLower(filepath.Ext(m.Path)) {
	case ".yaml", ".yml":
		return true
	default:
		return false
	}
}

// Resume loads state from path if resume is true and the file exists,
// per spec §4.4's resume semantics: fields from the file override the
// freshly constructed defaults, but configuration layers are
// untouched: the loaded state gets fresh.Configuration re-attached,
// since the persisted document never round-trips it.
func Resume(path string, resume bool, fresh *State) (*State, error) {
	if !resume {
		return fresh, nil
	}

	m := NewFileMapper(path)
	if !m.Exists() {
		return fresh, nil
	}

	loaded, err := m.Load()
	if err != nil {
		return nil, err
	}
	loaded.Configuration = fresh.Configuration
	return loaded, nil
}
