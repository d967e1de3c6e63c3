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

package configuration

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/nyx-release/nyx/internal/nyxerr"
	nyxyaml "github.com/nyx-release/nyx/internal/yaml"
)

// LayerKind identifies one of the eight layers in priority order
// (highest first), per spec §4.3.
type LayerKind int

const (
	CommandLine LayerKind = iota
	Plugin
	CustomLocalFile
	CustomSharedFile
	StandardLocalFile
	StandardSharedFile
	Preset
	Defaults
)

// String renders the layer kind's name, used in error messages.
func (k LayerKind) String() string {
	switch k {
	case CommandLine:
		return "command-line"
	case Plugin:
		return "plugin"
	case CustomLocalFile:
		return "custom-local-file"
	case CustomSharedFile:
		return "custom-shared-file"
	case StandardLocalFile:
		return "standard-local-file"
	case StandardSharedFile:
		return "standard-shared-file"
	case Preset:
		return "preset"
	case Defaults:
		return "defaults"
	default:
		return "unknown"
	}
}

// Layer is one source of configuration values, keyed by the same JSON
// field names as [Configuration].
type Layer struct {
	Kind   LayerKind
	Values map[string]any
}

// selfReferenceSkip maps a meta-option key to the layer kind that must
// be skipped while resolving it, per spec §4.3 ("self-reference is
// forbidden").
var selfReferenceSkip = map[string]LayerKind{
	"configurationFile":       CustomLocalFile,
	"sharedConfigurationFile": CustomSharedFile,
	"preset":                  Preset,
}

// standardLocalCandidates and standardSharedCandidates are the search
// orders named in spec §6.
var (
	standardLocalCandidates  = []string{".nyx.json", ".nyx.yaml", ".nyx.yml"}
	standardSharedCandidates = []string{".nyx-shared.json", ".nyx-shared.yaml", ".nyx-shared.yml"}
)

// Resolver merges the eight configuration layers with the precedence
// defined in spec §4.3.
type Resolver struct {
	layers []Layer
	cache  map[string]any
}

// NewResolver builds a resolver from the command-line and plugin
// layers (supplied by the caller) plus the file/preset/default layers
// materialized by consulting those two for the meta-options. Relative
// file paths are resolved against the resolved directory.
func NewResolver(cliLayer, pluginLayer map[string]any, defaults map[string]any) (*Resolver, error) {
	r := &Resolver{
		layers: []Layer{
			{Kind: CommandLine, Values: cliLayer},
			{Kind: Plugin, Values: pluginLayer},
		},
	}
	if err := r.updateConfiguredLayers(defaults); err != nil {
		return nil, err
	}
	return r, nil
}

// updateConfiguredLayers re-materializes the custom/standard/preset
// layers from the current meta-option values and clears the lookup
// cache, per spec §4.3.
func (r *Resolver) updateConfiguredLayers(defaults map[string]any) error {
	dir := ""
	if v, ok := r.getSkipping("directory", -1); ok {
		if s, ok := v.(string); ok {
			dir = s
		}
	}

	var fileLayers []Layer

	if v, ok := r.getSkipping("configurationFile", CustomLocalFile); ok {
		if path, ok := v.(string); ok && strings.TrimSpace(path) != "" {
			values, err := loadFile(resolvePath(dir, path))
			if err != nil {
				return err
			}
			fileLayers = append(fileLayers, Layer{Kind: CustomLocalFile, Values: values})
		}
	}

	if v, ok := r.getSkipping("sharedConfigurationFile", CustomSharedFile); ok {
		if path, ok := v.(string); ok && strings.TrimSpace(path) != "" {
			values, err := loadFile(resolvePath(dir, path))
			if err != nil {
				return err
			}
			fileLayers = append(fileLayers, Layer{Kind: CustomSharedFile, Values: values})
		}
	}

	if values, ok, err := loadFirst(dir, standardLocalCandidates); err != nil {
		return err
	} else if ok {
		fileLayers = append(fileLayers, Layer{Kind: StandardLocalFile, Values: values})
	}

	if values, ok, err := loadFirst(dir, standardSharedCandidates); err != nil {
		return err
	} else if ok {
		fileLayers = append(fileLayers, Layer{Kind: StandardSharedFile, Values: values})
	}

	if v, ok := r.getSkipping("preset", Preset); ok {
		if name, ok := v.(string); ok && strings.TrimSpace(name) != "" {
			values, err := presetByName(name)
			if err != nil {
				return nyxerr.New(nyxerr.IllegalProperty, err.Error())
			}
			fileLayers = append(fileLayers, Layer{Kind: Preset, Values: values})
		}
	}

	base := []Layer{r.layers[0], r.layers[1]}
	base = append(base, fileLayers...)
	base = append(base, Layer{Kind: Defaults, Values: defaults})
	r.layers = base
	r.cache = nil
	return nil
}

// resolvePath joins path against dir unless path is already absolute.
func resolvePath(dir, path string) string {
	if filepath.IsAbs(path) || dir == "" {
		return path
	}
	return filepath.Join(dir, path)
}

// loadFirst loads the first candidate file that exists under dir,
// returning ok=false if none do.
func loadFirst(dir string, candidates []string) (map[string]any, bool, error) {
	for _, c := range candidates {
		path := resolvePath(dir, c)
		if _, err := os.Stat(path); err == nil {
			values, err := loadFile(path)
			if err != nil {
				return nil, false, err
			}
			return values, true, nil
		}
	}
	return nil, false, nil
}

// loadFile reads and decodes a configuration file, choosing the codec
// by extension (spec §6).
func loadFile(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nyxerr.New(nyxerr.DataAccess, fmt.Sprintf("failed to read configuration file %s: %v", path, err))
	}

	values := map[string]any{}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		if err := json.Unmarshal(data, &values); err != nil {
			return nil, nyxerr.New(nyxerr.DataAccess, fmt.Sprintf("failed to parse configuration file %s: %v", path, err))
		}
	case ".yaml", ".yml":
		if err := nyxyaml.Unmarshal(data, &values); err != nil {
			return nil, nyxerr.New(nyxerr.DataAccess, fmt.Sprintf("failed to parse configuration file %s: %v", path, err))
		}
	default:
		return nil, nyxerr.New(nyxerr.DataAccess, fmt.Sprintf("unsupported configuration file extension: %s", path))
	}
	return values, nil
}

// Get returns the first non-absent value for key across the layers,
// honoring the self-reference skip rule, with per-key caching cleared
// by updateConfiguredLayers.
func (r *Resolver) Get(key string) (any, bool) {
	if r.cache == nil {
		r.cache = map[string]any{}
	}
	if v, ok := r.cache[key]; ok {
		return v, true
	}

	skip := LayerKind(-1)
	if s, ok := selfReferenceSkip[key]; ok {
		skip = s
	}

	v, ok := r.getSkipping(key, skip)
	if ok {
		r.cache[key] = v
	}
	return v, ok
}

// getSkipping walks the layers in order, skipping any layer of kind
// skip, and returns the first present value for key.
func (r *Resolver) getSkipping(key string, skip LayerKind) (any, bool) {
	for _, l := range r.layers {
		if l.Kind == skip {
			continue
		}
		if v, ok := l.Values[key]; ok {
			return v, true
		}
	}
	return nil, false
}

// Resolve materializes the full [Configuration] by reading every
// field through Get. Composite blocks (conventions, release types)
// are decoded via JSON round-trip so a layer can supply them as
// nested maps (as file-loaded layers naturally do).
func (r *Resolver) Resolve() (*Configuration, error) {
	cfg := &Configuration{}

	assign := func(key string, dst any) {
		if v, ok := r.Get(key); ok {
			assignField(v, dst)
		}
	}

	assign("bump", &cfg.Bump)
	assign("directory", &cfg.Directory)
	assign("dryRun", &cfg.DryRun)
	assign("initialVersion", &cfg.InitialVersion)
	assign("releasePrefix", &cfg.ReleasePrefix)
	assign("releaseLenient", &cfg.ReleaseLenient)
	assign("resume", &cfg.Resume)
	assign("scheme", &cfg.Scheme)
	assign("stateFile", &cfg.StateFile)
	assign("version", &cfg.Version)
	assign("remotes", &cfg.Remotes)
	assign("configurationFile", &cfg.ConfigurationFile)
	assign("sharedConfigurationFile", &cfg.SharedConfigurationFile)
	assign("preset", &cfg.Preset)
	assign("assets", &cfg.Assets)
	assign("services", &cfg.Services)
	assign("commitMessageConventions", &cfg.CommitMessageConventions)
	assign("releaseTypes", &cfg.ReleaseTypes)

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// assignField round-trips v through JSON into dst, tolerating the
// common case where v is already the exact target type (cheap path
// for the CLI/plugin/defaults layers, which hold typed Go values
// directly rather than decoded JSON).
func assignField(v any, dst any) {
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	_ = json.Unmarshal(data, dst)
}

// validate checks the cross-field constraints a resolved
// Configuration must satisfy, raising [nyxerr.IllegalProperty] when
// an enabled composite item name resolves nowhere (spec §4.3).
func validate(cfg *Configuration) error {
	for _, name := range cfg.CommitMessageConventions.Enabled {
		if _, ok := cfg.CommitMessageConventions.Items[name]; !ok {
			return nyxerr.New(nyxerr.IllegalProperty, fmt.Sprintf("commit message convention %q is enabled but not defined", name))
		}
	}
	for _, name := range cfg.ReleaseTypes.Enabled {
		if _, ok := cfg.ReleaseTypes.Items[name]; !ok {
			return nyxerr.New(nyxerr.IllegalProperty, fmt.Sprintf("release type %q is enabled but not defined", name))
		}
	}
	return nil
}
