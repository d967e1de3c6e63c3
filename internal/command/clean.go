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

	"github.com/nyx-release/nyx/pkg/nyxgit"
	"github.com/nyx-release/nyx/pkg/state"
)

// CleanCommand removes the state file and invalidates every
// previously cached internals value, per spec §4.12. It has no
// prerequisites and is never up to date.
type CleanCommand struct {
	StateFilePath string
}

// Name returns [Clean].
func (c *CleanCommand) Name() Name { return Clean }

// Dependencies returns nil: Clean has no prerequisites.
func (c *CleanCommand) Dependencies() []Name { return nil }

// IsUpToDate always reports false: Clean is never cached (spec §4.12).
func (c *CleanCommand) IsUpToDate(*state.State, nyxgit.Repository) (bool, error) { return false, nil }

// Run removes the state file on disk and clears st.Internals in
// place, so downstream commands re-derive everything from the
// repository.
func (c *CleanCommand) Run(_ context.Context, st *state.State, _ nyxgit.Repository) error {
	if c.StateFilePath != "" {
		if err := state.NewFileMapper(c.StateFilePath).Remove(); err != nil {
			return err
		}
	}
	st.Internals = map[string]string{}
	return nil
}
