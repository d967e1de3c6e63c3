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
	"encoding/json"
	"os"
	"path/filepath"
	"sort"

	"github.com/nyx-release/nyx/internal/nyxerr"
	"github.com/nyx-release/nyx/internal/service/apiv1"
	"github.com/nyx-release/nyx/internal/template"
	"github.com/nyx-release/nyx/pkg/logging"
	"github.com/nyx-release/nyx/pkg/nyxgit"
	"github.com/nyx-release/nyx/pkg/state"
)

// serviceResolver is the subset of [*service.Registry] Make needs,
// narrowed to an interface so tests can substitute a fake without
// launching real plugin subprocesses or VCS clients.
type serviceResolver interface {
	Resolve(ctx context.Context, name string) (apiv1.Implementation, error)
}

// MakeCommand builds configured release assets via the asset-service
// registry (spec §4.9).
type MakeCommand struct {
	Registry serviceResolver
	Log      logging.Logger
}

// Name returns [Make].
func (c *MakeCommand) Name() Name { return Make }

// Dependencies returns [Infer].
func (c *MakeCommand) Dependencies() []Name { return []Name{Infer} }

// IsUpToDate reports whether Make already ran for the current HEAD
// commit. Only the HEAD SHA is compared; the current branch is not
// recorded or checked.
func (c *MakeCommand) IsUpToDate(st *state.State, repo nyxgit.Repository) (bool, error) {
	cached, ok := st.Internal("Make.headSHA")
	if !ok {
		return false, nil
	}
	head, err := repo.LatestCommit()
	if err != nil {
		return false, err
	}
	return cached == head.SHA, nil
}

// Run iterates the resolved assets map; assets with no configured
// service are left to the caller's own build step and skipped here.
func (c *MakeCommand) Run(ctx context.Context, st *state.State, repo nyxgit.Repository) error {
	cfg := st.Configuration
	engine := template.New()
	data := templateData(st)

	names := make([]string, 0, len(cfg.Assets))
	for name := range cfg.Assets {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		asset := cfg.Assets[name]
		if asset.Service == "" {
			continue
		}

		path, err := engine.Render(asset.Path, data)
		if err != nil {
			return err
		}

		if cfg.DryRun {
			c.log().With("asset", name).With("path", path).With("service", asset.Service).Info("Skipping asset build (dry run)")
			continue
		}

		impl, err := c.Registry.Resolve(ctx, asset.Service)
		if err != nil {
			if nyxerr.IsReleaseKind(err, nyxerr.ReleaseServiceUnknown) {
				return nyxerr.New(nyxerr.IllegalProperty, "asset \""+name+"\" names unresolved service \""+asset.Service+"\"")
			}
			return err
		}

		stateJSON, err := json.Marshal(st)
		if err != nil {
			return err
		}

		resp, err := impl.BuildAsset(&apiv1.BuildAssetRequest{
			Path:      path,
			StateJSON: stateJSON,
			DryRun:    cfg.DryRun,
		})
		if err != nil {
			return nyxerr.WrapRelease(nyxerr.ReleaseUpstreamFailure, "asset service \""+asset.Service+"\" failed to build \""+name+"\"", err)
		}

		fullPath := path
		if cfg.Directory != "" {
			fullPath = filepath.Join(cfg.Directory, path)
		}
		if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
			return nyxerr.New(nyxerr.DataAccess, "failed to create directory for asset \""+name+"\": "+err.Error())
		}
		if err := os.WriteFile(fullPath, resp.Contents, 0o644); err != nil { //nolint:gosec // release assets are not sensitive
			return nyxerr.New(nyxerr.DataAccess, "failed to write asset \""+name+"\": "+err.Error())
		}
	}

	if !cfg.DryRun {
		head, err := repo.LatestCommit()
		if err != nil {
			return err
		}
		st.SetInternal("Make.headSHA", head.SHA)
	}

	return nil
}

func (c *MakeCommand) log() logging.Logger {
	if c.Log != nil {
		return c.Log
	}
	return logging.New()
}
