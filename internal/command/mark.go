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

	"github.com/hashicorp/go-multierror"

	"github.com/nyx-release/nyx/internal/nyxerr"
	"github.com/nyx-release/nyx/internal/template"
	"github.com/nyx-release/nyx/pkg/logging"
	"github.com/nyx-release/nyx/pkg/nyxgit"
	"github.com/nyx-release/nyx/pkg/state"
)

// MarkCommand commits, tags, and pushes the release (spec §4.10),
// gated on st.NewVersion and the active release type's three
// independent git flags.
type MarkCommand struct {
	Log logging.Logger
}

// Name returns [Mark].
func (c *MarkCommand) Name() Name { return Mark }

// Dependencies returns [Make], per the fixed linear DAG Infer → Make →
// Mark → Publish (spec §4.12).
func (c *MarkCommand) Dependencies() []Name { return []Name{Make} }

// IsUpToDate reports whether Mark already produced the cached final
// commit for the current HEAD.
func (c *MarkCommand) IsUpToDate(st *state.State, repo nyxgit.Repository) (bool, error) {
	cached, ok := st.Internal("Mark.finalCommit")
	if !ok {
		return false, nil
	}
	head, err := repo.LatestCommit()
	if err != nil {
		return false, err
	}
	return cached == head.SHA, nil
}

// Run commits, tags, and pushes per the active release type's
// gitCommit/gitTag/gitPush flags, in that order, each independently
// gated and each honoring dryRun (spec §4.10). The commit step is
// additionally skipped when the worktree is already clean.
func (c *MarkCommand) Run(_ context.Context, st *state.State, repo nyxgit.Repository) error {
	if !st.NewVersion {
		return nil
	}

	rt, ok := st.ActiveReleaseType()
	if !ok {
		return nyxerr.New(nyxerr.IllegalProperty, "no active release type; Infer must run before Mark")
	}
	cfg := st.Configuration

	engine := template.New()
	data := templateData(st)

	finalCommit := st.ReleaseScope.FinalCommit

	if rt.GitCommit {
		message := rt.CommitMessage
		if message == "" {
			message = "Release {{version}}"
		}
		rendered, err := engine.Render(message, data)
		if err != nil {
			return err
		}

		if cfg.DryRun {
			c.log().With("message", rendered).Info("Skipping release commit (dry run)")
		} else {
			clean, err := repo.IsClean()
			if err != nil {
				return nyxerr.WrapGit(nyxerr.GitIO, "failed to check worktree status", err)
			}

			if clean {
				c.log().Info("Worktree is clean, skipping release commit")
			} else {
				if len(rt.AssetPaths) > 0 {
					if err := repo.Add(rt.AssetPaths...); err != nil {
						return nyxerr.WrapGit(nyxerr.GitIO, "failed to stage asset paths", err)
					}
				} else {
					if err := repo.Add(); err != nil {
						return nyxerr.WrapGit(nyxerr.GitIO, "failed to stage changes", err)
					}
				}

				sha, err := repo.Commit(rendered, "nyx", "nyx@nyx-release.local")
				if err != nil {
					return nyxerr.WrapGit(nyxerr.GitIO, "failed to create release commit", err)
				}
				finalCommit = sha
				st.ReleaseScope.Commits = append([]nyxgit.Commit{{SHA: sha, Message: rendered}}, st.ReleaseScope.Commits...)
			}
		}
	}

	if rt.GitTag {
		tagName := cfg.ReleasePrefix + st.Version
		tagMessage := ""
		if rt.TagMessage != "" {
			rendered, err := engine.Render(rt.TagMessage, data)
			if err != nil {
				return err
			}
			tagMessage = rendered
		}

		if cfg.DryRun {
			c.log().With("tag", tagName).Info("Skipping tag creation (dry run)")
		} else {
			if err := repo.Tag(tagName, finalCommit, tagMessage, "nyx", "nyx@nyx-release.local"); err != nil {
				return nyxerr.WrapGit(nyxerr.GitIO, "failed to create tag \""+tagName+"\"", err)
			}
		}
	}

	if rt.GitPush {
		remotes := cfg.Remotes
		if len(remotes) == 0 {
			all, err := repo.Remotes()
			if err != nil {
				return nyxerr.WrapGit(nyxerr.GitIO, "failed to list remotes", err)
			}
			remotes = all
		}

		// Remotes push independently: one remote's failure must not
		// prevent the others from being attempted.
		var result *multierror.Error
		for _, remote := range remotes {
			if cfg.DryRun {
				c.log().With("remote", remote).Info("Skipping push (dry run)")
				continue
			}
			if err := repo.Push(remote, rt.GitTag); err != nil {
				result = multierror.Append(result, nyxerr.WrapGit(nyxerr.GitProtocol, "failed to push to remote \""+remote+"\"", err))
			}
		}
		if err := result.ErrorOrNil(); err != nil {
			return err
		}
	}

	if !cfg.DryRun {
		st.ReleaseScope.FinalCommit = finalCommit
		st.SetInternal("Mark.finalCommit", finalCommit)
	}

	return nil
}

func (c *MarkCommand) log() logging.Logger {
	if c.Log != nil {
		return c.Log
	}
	return logging.New()
}
