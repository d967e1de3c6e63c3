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

	"github.com/nyx-release/nyx/internal/nyxerr"
	"github.com/nyx-release/nyx/internal/service/apiv1"
	"github.com/nyx-release/nyx/pkg/configuration"
	"github.com/nyx-release/nyx/pkg/nyxgit"
	"github.com/nyx-release/nyx/pkg/state"
)

// fakeRepository is a minimal, in-memory [nyxgit.Repository] stand-in
// used to drive command tests without a real Git checkout.
type fakeRepository struct {
	head nyxgit.Commit
	root nyxgit.Commit
	tags []nyxgit.Tag
}

func (f *fakeRepository) IsClean() (bool, error)      { return true, nil }
func (f *fakeRepository) CurrentBranch() (string, error) { return "main", nil }
func (f *fakeRepository) LatestCommit() (nyxgit.Commit, error) { return f.head, nil }
func (f *fakeRepository) RootCommit() (nyxgit.Commit, error)  { return f.root, nil }
func (f *fakeRepository) CommitsSince(string) ([]nyxgit.Commit, error) { return []nyxgit.Commit{f.head}, nil }
func (f *fakeRepository) Tags() ([]nyxgit.Tag, error) { return f.tags, nil }
func (f *fakeRepository) Remotes() ([]string, error)  { return []string{"origin"}, nil }
func (f *fakeRepository) Add(...string) error         { return nil }
func (f *fakeRepository) Commit(string, string, string) (string, error) { return "deadbeef", nil }
func (f *fakeRepository) Tag(string, string, string, string, string) error { return nil }
func (f *fakeRepository) Push(string, bool) error     { return nil }

// fakeImplementation is a test double for [apiv1.Implementation].
type fakeImplementation struct {
	built   []string
	content []byte
	err     error
}

func (f *fakeImplementation) GetConfig() (*apiv1.Config, error) {
	return &apiv1.Config{Name: "fake", Kind: "asset"}, nil
}

func (f *fakeImplementation) BuildAsset(req *apiv1.BuildAssetRequest) (*apiv1.BuildAssetResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.built = append(f.built, req.Path)
	return &apiv1.BuildAssetResponse{Contents: f.content}, nil
}

func (f *fakeImplementation) CreateRelease(*apiv1.CreateReleaseRequest) (*apiv1.ReleaseHandle, error) {
	return nil, nil
}

func (f *fakeImplementation) GetRelease(*apiv1.GetReleaseRequest) (*apiv1.ReleaseHandle, error) {
	return nil, nil
}

// fakeResolver implements [serviceResolver] over a fixed map of
// already-built implementations.
type fakeResolver struct {
	impls map[string]apiv1.Implementation
}

func (r *fakeResolver) Resolve(_ context.Context, name string) (apiv1.Implementation, error) {
	impl, ok := r.impls[name]
	if !ok {
		return nil, nyxerr.WrapRelease(nyxerr.ReleaseServiceUnknown, "service \""+name+"\" is not configured", nil)
	}
	return impl, nil
}

func testState(t *testing.T, cfg *configuration.Configuration) *state.State {
	t.Helper()
	if cfg.Directory == "" {
		cfg.Directory = t.TempDir()
	}
	st := state.New(cfg, 1700000000)
	st.Version = "1.0.0"
	return st
}

func TestMakeRunWritesResolvedAsset(t *testing.T) {
	impl := &fakeImplementation{content: []byte("hello")}
	cfg := &configuration.Configuration{
		Assets: map[string]configuration.Asset{
			"changelog": {Path: "dist/CHANGELOG-{{version}}.md", Service: "notes"},
		},
	}
	st := testState(t, cfg)
	repo := &fakeRepository{head: nyxgit.Commit{SHA: "abc123"}}

	cmd := &MakeCommand{Registry: &fakeResolver{impls: map[string]apiv1.Implementation{"notes": impl}}}
	err := cmd.Run(context.Background(), st, repo)
	assert.NilError(t, err)
	assert.DeepEqual(t, impl.built, []string{"dist/CHANGELOG-1.0.0.md"})

	written, err := os.ReadFile(filepath.Join(cfg.Directory, "dist/CHANGELOG-1.0.0.md"))
	assert.NilError(t, err)
	assert.Equal(t, "hello", string(written))

	sha, ok := st.Internal("Make.headSHA")
	assert.Assert(t, ok)
	assert.Equal(t, "abc123", sha)
}

func TestMakeRunSkipsAssetsWithoutService(t *testing.T) {
	cfg := &configuration.Configuration{
		Assets: map[string]configuration.Asset{
			"readme": {Path: "README.md"},
		},
	}
	st := testState(t, cfg)
	repo := &fakeRepository{head: nyxgit.Commit{SHA: "abc123"}}

	cmd := &MakeCommand{Registry: &fakeResolver{impls: map[string]apiv1.Implementation{}}}
	err := cmd.Run(context.Background(), st, repo)
	assert.NilError(t, err)
}

func TestMakeRunUnresolvedServiceIsIllegalProperty(t *testing.T) {
	cfg := &configuration.Configuration{
		Assets: map[string]configuration.Asset{
			"changelog": {Path: "CHANGELOG.md", Service: "missing"},
		},
	}
	st := testState(t, cfg)
	repo := &fakeRepository{head: nyxgit.Commit{SHA: "abc123"}}

	cmd := &MakeCommand{Registry: &fakeResolver{impls: map[string]apiv1.Implementation{}}}
	err := cmd.Run(context.Background(), st, repo)
	assert.Assert(t, nyxerr.Is(err, nyxerr.IllegalProperty))
}

func TestMakeRunDryRunSkipsBuild(t *testing.T) {
	impl := &fakeImplementation{content: []byte("hello")}
	cfg := &configuration.Configuration{
		DryRun: true,
		Assets: map[string]configuration.Asset{
			"changelog": {Path: "CHANGELOG.md", Service: "notes"},
		},
	}
	st := testState(t, cfg)
	repo := &fakeRepository{head: nyxgit.Commit{SHA: "abc123"}}

	cmd := &MakeCommand{Registry: &fakeResolver{impls: map[string]apiv1.Implementation{"notes": impl}}}
	err := cmd.Run(context.Background(), st, repo)
	assert.NilError(t, err)
	assert.Equal(t, 0, len(impl.built))

	_, ok := st.Internal("Make.headSHA")
	assert.Assert(t, !ok)
}

func TestMakeIsUpToDate(t *testing.T) {
	cfg := &configuration.Configuration{}
	st := testState(t, cfg)
	repo := &fakeRepository{head: nyxgit.Commit{SHA: "abc123"}}

	cmd := &MakeCommand{Registry: &fakeResolver{impls: map[string]apiv1.Implementation{}}}

	upToDate, err := cmd.IsUpToDate(st, repo)
	assert.NilError(t, err)
	assert.Assert(t, !upToDate)

	st.SetInternal("Make.headSHA", "abc123")
	upToDate, err = cmd.IsUpToDate(st, repo)
	assert.NilError(t, err)
	assert.Assert(t, upToDate)
}
