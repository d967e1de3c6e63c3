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

// Package state implements the pipeline's mutable run state (spec
// §3, §4.4): the root holder threaded through every command, and its
// serialization to/from a state file.
package state

import (
	"github.com/nyx-release/nyx/pkg/configuration"
	"github.com/nyx-release/nyx/pkg/nyxgit"
)

// ReleaseScope is the per-run derivation of which commits belong to
// the release under construction (spec §3).
type ReleaseScope struct {
	PreviousVersion       string          `json:"previousVersion,omitempty"`
	PreviousVersionCommit string          `json:"previousVersionCommit,omitempty"`
	InitialCommit         string          `json:"initialCommit,omitempty"`
	FinalCommit           string          `json:"finalCommit,omitempty"`
	Commits               []nyxgit.Commit `json:"commits,omitempty"`
	SignificantCommits    []nyxgit.Commit `json:"significantCommits,omitempty"`
}

// Significant reports whether any commit in scope produced a bump
// (spec §3: "significant?").
func (s ReleaseScope) Significant() bool {
	return len(s.SignificantCommits) > 0
}

// State is the root holder threaded through every pipeline command
// (spec §3, §4.4). It is created once at pipeline start and mutated
// in place by Infer, Make, Mark, and Publish.
type State struct {
	Configuration *configuration.Configuration `json:"-"`

	Timestamp    int64             `json:"timestamp"`
	Scheme       string            `json:"scheme"`
	Version      string            `json:"version,omitempty"`
	NewVersion   bool              `json:"newVersion"`
	Bump         string            `json:"bump,omitempty"`
	ReleaseScope ReleaseScope      `json:"releaseScope"`
	Internals    map[string]string `json:"internals,omitempty"`
	NewRelease   bool              `json:"newRelease"`

	// ReleaseTypeName is the name of the release type selected by
	// §4.7 for the current branch; commands downstream of Infer read
	// the type definition from Configuration.ReleaseTypes.Items by
	// this name.
	ReleaseTypeName string `json:"releaseTypeName,omitempty"`

	// Branch is the branch name resolved at the start of Infer.
	Branch string `json:"branch,omitempty"`
}

// New creates a State with its timestamp frozen, per spec §4.4
// ("timestamp is frozen at first read").
func New(cfg *configuration.Configuration, now int64) *State {
	return &State{
		Configuration: cfg,
		Timestamp:     now,
		Internals:     map[string]string{},
	}
}

// Internal returns the cached value for a "<Command>.<purpose>" key,
// per spec §4.4's internals naming convention.
func (s *State) Internal(key string) (string, bool) {
	v, ok := s.Internals[key]
	return v, ok
}

// SetInternal records a cached value, skipped entirely by callers when
// the configuration's dryRun is true (spec §4.12: "internals are not
// stored" during a dry run).
func (s *State) SetInternal(key, value string) {
	if s.Internals == nil {
		s.Internals = map[string]string{}
	}
	s.Internals[key] = value
}

// ActiveReleaseType returns the release type selected for this run, or
// false if Infer has not yet run.
func (s *State) ActiveReleaseType() (configuration.ReleaseType, bool) {
	if s.ReleaseTypeName == "" || s.Configuration == nil {
		return configuration.ReleaseType{}, false
	}
	rt, ok := s.Configuration.ReleaseTypes.Items[s.ReleaseTypeName]
	return rt, ok
}
