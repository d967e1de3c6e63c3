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

package nyxgit

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/storage/memory"

	"github.com/nyx-release/nyx/internal/nyxerr"
)

// goGitRepository is the [Repository] implementation backed by
// go-git/v5.
type goGitRepository struct {
	repo *git.Repository
}

// Open opens the repository rooted at path.
func Open(path string) (Repository, error) {
	repo, err := git.PlainOpen(path)
	if err != nil {
		return nil, nyxerr.WrapGit(nyxerr.GitNotFound, "failed to open repository", err)
	}
	return &goGitRepository{repo: repo}, nil
}

// Clone clones url into path and returns a [Repository] over it.
func Clone(path, url string) (Repository, error) {
	repo, err := git.PlainClone(path, false, &git.CloneOptions{URL: url})
	if err != nil {
		return nil, nyxerr.WrapGit(nyxerr.GitIO, "failed to clone repository", err)
	}
	return &goGitRepository{repo: repo}, nil
}

// OpenInMemory is used by tests to construct a repository backed by an
// in-memory storer, mirroring how the retrieved pack's own git-backed
// tooling exercises go-git without touching disk.
func OpenInMemory() (Repository, error) {
	repo, err := git.Init(memory.NewStorage(), memfs.New())
	if err != nil {
		return nil, nyxerr.WrapGit(nyxerr.GitIO, "failed to init in-memory repository", err)
	}
	return &goGitRepository{repo: repo}, nil
}

// WriteFile writes contents to name in the worktree filesystem. Used
// by tests to populate an in-memory repository without touching disk.
func (g *goGitRepository) WriteFile(name, contents string) error {
	w, err := g.repo.Worktree()
	if err != nil {
		return nyxerr.WrapGit(nyxerr.GitIO, "failed to open worktree", err)
	}

	f, err := w.Filesystem.Create(name)
	if err != nil {
		return nyxerr.WrapGit(nyxerr.GitIO, fmt.Sprintf("failed to create %s", name), err)
	}
	defer f.Close()

	if _, err := f.Write([]byte(contents)); err != nil {
		return nyxerr.WrapGit(nyxerr.GitIO, fmt.Sprintf("failed to write %s", name), err)
	}
	return nil
}

func (g *goGitRepository) IsClean() (bool, error) {
	w, err := g.repo.Worktree()
	if err != nil {
		return false, nyxerr.WrapGit(nyxerr.GitIO, "failed to open worktree", err)
	}
	status, err := w.Status()
	if err != nil {
		return false, nyxerr.WrapGit(nyxerr.GitIO, "failed to read worktree status", err)
	}
	return status.IsClean(), nil
}

func (g *goGitRepository) CurrentBranch() (string, error) {
	head, err := g.repo.Head()
	if err != nil {
		return "", nyxerr.WrapGit(nyxerr.GitNotFound, "failed to read HEAD", err)
	}
	if !head.Name().IsBranch() {
		return "", nyxerr.WrapGit(nyxerr.GitDetached, "HEAD is detached", nil)
	}
	return head.Name().Short(), nil
}

func (g *goGitRepository) LatestCommit() (Commit, error) {
	head, err := g.repo.Head()
	if err != nil {
		return Commit{}, nyxerr.WrapGit(nyxerr.GitNotFound, "failed to read HEAD", err)
	}
	return g.commitByHash(head.Hash())
}

func (g *goGitRepository) RootCommit() (Commit, error) {
	commits, err := g.CommitsSince("")
	if err != nil {
		return Commit{}, err
	}
	if len(commits) == 0 {
		return Commit{}, nyxerr.WrapGit(nyxerr.GitNotFound, "repository has no commits", nil)
	}
	return commits[len(commits)-1], nil
}

// CommitsSince walks HEAD's first-parent history, stopping at (and
// excluding) sinceSHA.
func (g *goGitRepository) CommitsSince(sinceSHA string) ([]Commit, error) {
	head, err := g.repo.Head()
	if err != nil {
		return nil, nyxerr.WrapGit(nyxerr.GitNotFound, "failed to read HEAD", err)
	}

	tagsByTarget, err := g.tagsByTarget()
	if err != nil {
		return nil, err
	}

	var out []Commit
	cur := head.Hash()
	for {
		if cur.String() == sinceSHA {
			break
		}

		obj, err := g.repo.CommitObject(cur)
		if err != nil {
			return nil, nyxerr.WrapGit(nyxerr.GitIO, "failed to read commit object", err)
		}

		out = append(out, toCommit(obj, tagsByTarget[cur.String()]))

		if obj.NumParents() == 0 {
			break
		}
		cur = obj.ParentHashes[0]
	}

	return out, nil
}

func (g *goGitRepository) commitByHash(h plumbing.Hash) (Commit, error) {
	obj, err := g.repo.CommitObject(h)
	if err != nil {
		return Commit{}, nyxerr.WrapGit(nyxerr.GitIO, "failed to read commit object", err)
	}
	tagsByTarget, err := g.tagsByTarget()
	if err != nil {
		return Commit{}, err
	}
	return toCommit(obj, tagsByTarget[h.String()]), nil
}

func toCommit(obj *object.Commit, tags []Tag) Commit {
	return Commit{
		SHA:       obj.Hash.String(),
		Message:   obj.Message,
		Author:    obj.Author.Name,
		Email:     obj.Author.Email,
		Timestamp: obj.Author.When,
		Tags:      tags,
	}
}

// tagsByTarget resolves every tag reference to the SHA of the commit
// it ultimately points at, dereferencing annotated tag objects. This
// mirrors the pattern used throughout the retrieved pack's semver-tag
// readers: r.Tags() enumerates references, and each is resolved via
// TagObject, falling back to the reference hash for lightweight tags.
func (g *goGitRepository) tagsByTarget() (map[string][]Tag, error) {
	iter, err := g.repo.Tags()
	if err != nil {
		return nil, nyxerr.WrapGit(nyxerr.GitIO, "failed to list tags", err)
	}

	out := make(map[string][]Tag)
	err = iter.ForEach(func(ref *plumbing.Reference) error {
		name := ref.Name().Short()

		tagObj, err := g.repo.TagObject(ref.Hash())
		switch {
		case err == nil:
			out[tagObj.Target.String()] = append(out[tagObj.Target.String()], Tag{
				Name:      name,
				Target:    tagObj.Target.String(),
				Annotated: true,
				Message:   tagObj.Message,
			})
		case errors.Is(err, plumbing.ErrObjectNotFound):
			out[ref.Hash().String()] = append(out[ref.Hash().String()], Tag{
				Name:   name,
				Target: ref.Hash().String(),
			})
		default:
			return err
		}
		return nil
	})
	if err != nil {
		return nil, nyxerr.WrapGit(nyxerr.GitIO, "failed to resolve tags", err)
	}
	return out, nil
}

func (g *goGitRepository) Tags() ([]Tag, error) {
	byTarget, err := g.tagsByTarget()
	if err != nil {
		return nil, err
	}
	var out []Tag
	for _, tags := range byTarget {
		out = append(out, tags...)
	}
	return out, nil
}

func (g *goGitRepository) Remotes() ([]string, error) {
	remotes, err := g.repo.Remotes()
	if err != nil {
		return nil, nyxerr.WrapGit(nyxerr.GitIO, "failed to list remotes", err)
	}
	names := make([]string, 0, len(remotes))
	for _, r := range remotes {
		names = append(names, r.Config().Name)
	}
	return names, nil
}

func (g *goGitRepository) Add(paths ...string) error {
	w, err := g.repo.Worktree()
	if err != nil {
		return nyxerr.WrapGit(nyxerr.GitIO, "failed to open worktree", err)
	}

	if len(paths) == 0 {
		if _, err := w.Add("."); err != nil {
			return nyxerr.WrapGit(nyxerr.GitIO, "failed to stage changes", err)
		}
		return nil
	}

	for _, p := range paths {
		if _, err := w.Add(p); err != nil {
			return nyxerr.WrapGit(nyxerr.GitIO, fmt.Sprintf("failed to stage %s", p), err)
		}
	}
	return nil
}

func (g *goGitRepository) Commit(message, name, email string) (string, error) {
	w, err := g.repo.Worktree()
	if err != nil {
		return "", nyxerr.WrapGit(nyxerr.GitIO, "failed to open worktree", err)
	}

	sig := &object.Signature{Name: name, Email: email, When: time.Now()}
	hash, err := w.Commit(message, &git.CommitOptions{Author: sig, Committer: sig})
	if err != nil {
		return "", nyxerr.WrapGit(nyxerr.GitIO, "failed to create commit", err)
	}
	return hash.String(), nil
}

func (g *goGitRepository) Tag(name, sha, message, taggerName, taggerEmail string) error {
	hash := plumbing.NewHash(sha)

	var opts *git.CreateTagOptions
	if message != "" {
		opts = &git.CreateTagOptions{
			Message: message,
			Tagger:  &object.Signature{Name: taggerName, Email: taggerEmail, When: time.Now()},
		}
	}

	if _, err := g.repo.CreateTag(name, hash, opts); err != nil {
		return nyxerr.WrapGit(nyxerr.GitIO, fmt.Sprintf("failed to create tag %s", name), err)
	}
	return nil
}

func (g *goGitRepository) Push(remoteName string, tags bool) error {
	head, err := g.repo.Head()
	if err != nil {
		return nyxerr.WrapGit(nyxerr.GitNotFound, "failed to read HEAD", err)
	}
	if !head.Name().IsBranch() {
		return nyxerr.WrapGit(nyxerr.GitDetached, "HEAD is detached", nil)
	}
	branch := head.Name().String()
	refspecs := []config.RefSpec{config.RefSpec(branch + ":" + branch)}

	opts := &git.PushOptions{RemoteName: remoteName, RefSpecs: refspecs}
	if tags {
		opts.RefSpecs = append(refspecs, config.RefSpec("+refs/tags/*:refs/tags/*"))
	}

	if err := g.repo.Push(opts); err != nil {
		if errors.Is(err, git.NoErrAlreadyUpToDate) {
			return nil
		}
		return nyxerr.WrapGit(nyxerr.GitProtocol, fmt.Sprintf("failed to push to %s", remoteName), err)
	}
	return nil
}
