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

// Package command implements the pipeline commands (spec §4.8-4.11):
// Clean, Infer, Make, Mark, and Publish. Each is a [Command] the
// orchestrator in internal/pipeline sequences by its fixed linear DAG.
package command

import (
	"context"

	"github.com/nyx-release/nyx/pkg/nyxgit"
	"github.com/nyx-release/nyx/pkg/state"
)

// Name identifies a pipeline command.
type Name string

// The five pipeline commands, in their fixed DAG order (spec §4.12).
const (
	Clean   Name = "clean"
	Infer   Name = "infer"
	Make    Name = "make"
	Mark    Name = "mark"
	Publish Name = "publish"
)

// Command is a single pipeline step (spec §4.12).
type Command interface {
	// Name identifies the command for memoization and internals keys.
	Name() Name

	// Dependencies lists the prerequisite commands that must run (in
	// order) before this one, per the fixed linear DAG.
	Dependencies() []Name

	// IsUpToDate reports whether st already reflects this command's
	// effect, per each command's up-to-date predicate. Checking the
	// predicate may itself need to read the live repository (current
	// HEAD, branch), hence the repo and error return.
	IsUpToDate(st *state.State, repo nyxgit.Repository) (bool, error)

	// Run executes the command, mutating st and repo in place.
	Run(ctx context.Context, st *state.State, repo nyxgit.Repository) error
}
