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

// Package pipeline implements the orchestrator (spec §4.12): the
// fixed linear DAG Clean, then Infer → Make → Mark → Publish, with
// per-command up-to-date short-circuiting, run-scoped memoization,
// and state persistence after each command that actually ran.
package pipeline

import (
	"context"

	"github.com/nyx-release/nyx/internal/command"
	"github.com/nyx-release/nyx/pkg/logging"
	"github.com/nyx-release/nyx/pkg/nyxgit"
	"github.com/nyx-release/nyx/pkg/state"
)

// Pipeline sequences [command.Command]s against a single repository
// and state, persisting state after each command that mutates it.
type Pipeline struct {
	Repo      nyxgit.Repository
	State     *state.State
	StateFile string

	Log logging.Logger

	commands map[command.Name]command.Command
	ran      map[command.Name]bool
}

// New builds a Pipeline with no commands registered; callers add each
// command (the standard ones, or fakes in tests) with [Pipeline.Register].
func New(repo nyxgit.Repository, st *state.State, stateFile string) *Pipeline {
	return &Pipeline{
		Repo:      repo,
		State:     st,
		StateFile: stateFile,
		commands:  map[command.Name]command.Command{},
		ran:       map[command.Name]bool{},
	}
}

// Register adds (or overrides) the [command.Command] implementation
// for its own [command.Name].
func (p *Pipeline) Register(cmd command.Command) {
	p.commands[cmd.Name()] = cmd
}

// Invoke runs name's prerequisites (in order), then name itself,
// short-circuiting any command already run this pipeline invocation or
// already up-to-date against the live repository and state. Clean is
// never up to date, so it is skipped only when it already ran in this
// invocation.
func (p *Pipeline) Invoke(ctx context.Context, name command.Name) error {
	cmd, ok := p.commands[name]
	if !ok {
		return &unknownCommandError{name: name}
	}

	for _, dep := range cmd.Dependencies() {
		if err := p.Invoke(ctx, dep); err != nil {
			return err
		}
	}

	if p.ran[name] {
		return nil
	}

	upToDate, err := cmd.IsUpToDate(p.State, p.Repo)
	if err != nil {
		return err
	}
	if upToDate {
		p.log().With("command", string(name)).Debug("Command is up to date, skipping")
		p.ran[name] = true
		return nil
	}

	p.log().With("command", string(name)).Info("Running command")
	if err := cmd.Run(ctx, p.State, p.Repo); err != nil {
		return err
	}
	p.ran[name] = true

	if !p.State.Configuration.DryRun && p.StateFile != "" {
		if err := state.NewFileMapper(p.StateFile).Save(p.State); err != nil {
			return err
		}
	}

	return nil
}

func (p *Pipeline) log() logging.Logger {
	if p.Log != nil {
		return p.Log
	}
	return logging.New()
}

// unknownCommandError is returned by Invoke for a name with no
// registered Command.
type unknownCommandError struct {
	name command.Name
}

func (e *unknownCommandError) Error() string {
	return "pipeline: no command registered for \"" + string(e.name) + "\""
}
