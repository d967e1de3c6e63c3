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

// Package nyxgit implements the Repository port (spec §4.2): read and
// write access to the underlying Git repository, abstracted behind an
// interface so the rest of nyx never imports go-git directly.
package nyxgit

import "time"

// Commit is a single, first-parent commit, carrying just the fields
// the convention matcher and templating engine need.
type Commit struct {
	SHA       string
	Message   string
	Author    string
	Email     string
	Timestamp time.Time
	Tags      []Tag
}

// Tag is a reference pointing at a commit, either lightweight or
// annotated (spec §3: Tag).
type Tag struct {
	Name      string
	Target    string
	Annotated bool
	Message   string
}

// Repository is the port nyx's components use to read and write Git
// state. Implementations must treat all operations as first-parent
// only, per spec §4.2.
type Repository interface {
	// IsClean reports whether the working tree has no local
	// modifications.
	IsClean() (bool, error)

	// CurrentBranch returns the short name of the checked-out branch.
	// Returns a [nyxerr.Error] of kind Git/GitDetached if HEAD is
	// detached.
	CurrentBranch() (string, error)

	// LatestCommit returns the most recent commit reachable from
	// HEAD, first-parent only.
	LatestCommit() (Commit, error)

	// RootCommit returns the repository's first commit, first-parent
	// only.
	RootCommit() (Commit, error)

	// CommitsSince returns every commit reachable from HEAD,
	// first-parent only, more recent than (and excluding) sinceSHA.
	// An empty sinceSHA returns the full first-parent history.
	CommitsSince(sinceSHA string) ([]Commit, error)

	// Tags returns every tag in the repository, resolved to their
	// target commit SHA.
	Tags() ([]Tag, error)

	// Remotes returns the configured remote names.
	Remotes() ([]string, error)

	// Add stages the given paths (or all changes if paths is empty).
	Add(paths ...string) error

	// Commit creates a commit from the current index with the given
	// message, authored by name/email, and returns its SHA.
	Commit(message, name, email string) (string, error)

	// Tag creates a tag named name at the given commit SHA. When
	// message is non-empty an annotated tag is created; otherwise a
	// lightweight tag.
	Tag(name, sha, message, taggerName, taggerEmail string) error

	// Push pushes HEAD and, when tags is true, all tags to remoteName.
	Push(remoteName string, tags bool) error
}
