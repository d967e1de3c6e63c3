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

package main

import (
	"time"

	"github.com/urfave/cli/v2"

	"github.com/nyx-release/nyx/internal/command"
	"github.com/nyx-release/nyx/internal/pipeline"
	"github.com/nyx-release/nyx/internal/service"
	"github.com/nyx-release/nyx/pkg/configuration"
	"github.com/nyx-release/nyx/pkg/logging"
	"github.com/nyx-release/nyx/pkg/nyxgit"
	"github.com/nyx-release/nyx/pkg/state"
)

// defaultLayer is nyx's built-in bottom configuration layer (spec
// §4.3's "Defaults"), overridden by every other layer.
var defaultLayer = map[string]any{
	"scheme":        "semver",
	"stateFile":     ".nyx-state.json",
	"releasePrefix": "v",
}

// cliLayerFrom projects the global flags c carries into the
// command-line configuration layer (spec §4.3).
func cliLayerFrom(c *cli.Context) map[string]any {
	layer := map[string]any{}
	set := func(key, flag string) {
		if c.IsSet(flag) {
			layer[key] = c.String(flag)
		}
	}
	set("directory", "directory")
	set("configurationFile", "configuration-file")
	set("sharedConfigurationFile", "shared-configuration-file")
	set("preset", "preset")
	set("stateFile", "state-file")
	set("bump", "bump")
	set("scheme", "scheme")
	set("releasePrefix", "release-prefix")
	set("initialVersion", "initial-version")
	set("version", "version")

	if c.IsSet("dry-run") {
		layer["dryRun"] = c.Bool("dry-run")
	}
	if c.IsSet("resume") {
		layer["resume"] = c.Bool("resume")
	}
	if c.IsSet("release-lenient") {
		layer["releaseLenient"] = c.Bool("release-lenient")
	}
	return layer
}

// runtime bundles everything a pipeline invocation needs: the
// resolved configuration, an open repository, run state (freshly
// built or resumed), and a pipeline wired with all five commands.
type runtime struct {
	cfg      *configuration.Configuration
	repo     nyxgit.Repository
	state    *state.State
	pipeline *pipeline.Pipeline
	registry *service.Registry
}

// newRuntime resolves configuration, opens the repository, builds (or
// resumes) state, and wires a pipeline with every standard command.
func newRuntime(c *cli.Context, log logging.Logger) (*runtime, error) {
	resolver, err := configuration.NewResolver(cliLayerFrom(c), map[string]any{}, defaultLayer)
	if err != nil {
		return nil, err
	}
	cfg, err := resolver.Resolve()
	if err != nil {
		return nil, err
	}

	dir := cfg.Directory
	if dir == "" {
		dir = "."
	}
	repo, err := nyxgit.Open(dir)
	if err != nil {
		return nil, err
	}

	fresh := state.New(cfg, time.Now().Unix())
	st, err := state.Resume(cfg.StateFile, cfg.Resume, fresh)
	if err != nil {
		return nil, err
	}
	st.Configuration = cfg

	registry := service.NewRegistry(cfg.Services)

	p := pipeline.New(repo, st, cfg.StateFile)
	p.Log = log
	p.Register(&command.CleanCommand{StateFilePath: cfg.StateFile})
	p.Register(&command.InferCommand{})
	p.Register(&command.MakeCommand{Registry: registry, Log: log})
	p.Register(&command.MarkCommand{Log: log})
	p.Register(&command.PublishCommand{Registry: registry, Log: log})

	return &runtime{cfg: cfg, repo: repo, state: st, pipeline: p, registry: registry}, nil
}

// close releases any resources the runtime opened, such as launched
// plugin subprocesses.
func (rt *runtime) close() error {
	return rt.registry.Close()
}
