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

package command

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"gotest.tools/v3/assert"

	"github.com/nyx-release/nyx/pkg/configuration"
)

func TestCleanRunRemovesStateFileAndInternals(t *testing.T) {
	cfg := &configuration.Configuration{}
	st := testState(t, cfg)
	st.SetInternal("Infer.headSHA", "abc123")

	statePath := filepath.Join(t.TempDir(), "state.json")
	assert.NilError(t, os.WriteFile(statePath, []byte("{}"), 0o644))

	cmd := &CleanCommand{StateFilePath: statePath}
	err := cmd.Run(context.Background(), st, &fakeRepository{})
	assert.NilError(t, err)

	_, err = os.Stat(statePath)
	assert.Assert(t, os.IsNotExist(err))

	_, ok := st.Internal("Infer.headSHA")
	assert.Assert(t, !ok)
}

func TestCleanRunWithoutStateFilePathOnlyClearsInternals(t *testing.T) {
	cfg := &configuration.Configuration{}
	st := testState(t, cfg)
	st.SetInternal("Make.headSHA", "abc123")

	cmd := &CleanCommand{}
	err := cmd.Run(context.Background(), st, &fakeRepository{})
	assert.NilError(t, err)

	_, ok := st.Internal("Make.headSHA")
	assert.Assert(t, !ok)
}

func TestCleanIsUpToDateAlwaysFalse(t *testing.T) {
	cfg := &configuration.Configuration{}
	st := testState(t, cfg)

	cmd := &CleanCommand{}
	upToDate, err := cmd.IsUpToDate(st, &fakeRepository{})
	assert.NilError(t, err)
	assert.Assert(t, !upToDate)
}

func TestCleanDependenciesIsEmpty(t *testing.T) {
	cmd := &CleanCommand{}
	assert.Equal(t, 0, len(cmd.Dependencies()))
}
