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

package configuration_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/nyx-release/nyx/pkg/configuration"
	"gotest.tools/v3/assert"
)

func TestLayerPrecedenceCLIWinsOverDefaults(t *testing.T) {
	r, err := configuration.NewResolver(
		map[string]any{"scheme": "maven"},
		map[string]any{},
		map[string]any{"scheme": "semver"},
	)
	assert.NilError(t, err)

	cfg, err := r.Resolve()
	assert.NilError(t, err)
	assert.Equal(t, "maven", cfg.Scheme)
}

func TestLayerPrecedencePluginBeatsDefaults(t *testing.T) {
	r, err := configuration.NewResolver(
		map[string]any{},
		map[string]any{"bump": "minor"},
		map[string]any{"bump": "patch"},
	)
	assert.NilError(t, err)

	cfg, err := r.Resolve()
	assert.NilError(t, err)
	assert.Equal(t, "minor", cfg.Bump)
}

func TestStandardLocalFileLayer(t *testing.T) {
	dir := t.TempDir()
	err := os.WriteFile(filepath.Join(dir, ".nyx.json"), []byte(`{"scheme":"maven","dryRun":true}`), 0o600)
	assert.NilError(t, err)

	r, err := configuration.NewResolver(
		map[string]any{"directory": dir},
		map[string]any{},
		map[string]any{"scheme": "semver"},
	)
	assert.NilError(t, err)

	cfg, err := r.Resolve()
	assert.NilError(t, err)
	assert.Equal(t, "maven", cfg.Scheme)
	assert.Assert(t, cfg.DryRun)
}

func TestCustomLocalFileOutranksStandardLocalFile(t *testing.T) {
	dir := t.TempDir()
	assert.NilError(t, os.WriteFile(filepath.Join(dir, ".nyx.json"), []byte(`{"scheme":"maven"}`), 0o600))
	assert.NilError(t, os.WriteFile(filepath.Join(dir, "custom.json"), []byte(`{"scheme":"semver"}`), 0o600))

	r, err := configuration.NewResolver(
		map[string]any{"directory": dir, "configurationFile": "custom.json"},
		map[string]any{},
		map[string]any{},
	)
	assert.NilError(t, err)

	cfg, err := r.Resolve()
	assert.NilError(t, err)
	assert.Equal(t, "semver", cfg.Scheme)
}

func TestSelfReferenceSkipsCustomLocalLayerForConfigurationFileKey(t *testing.T) {
	dir := t.TempDir()
	// The custom file itself tries to redeclare configurationFile;
	// that value must never be honored (self-reference forbidden).
	assert.NilError(t, os.WriteFile(filepath.Join(dir, "custom.json"), []byte(`{"configurationFile":"other.json","scheme":"maven"}`), 0o600))

	r, err := configuration.NewResolver(
		map[string]any{"directory": dir, "configurationFile": "custom.json"},
		map[string]any{},
		map[string]any{},
	)
	assert.NilError(t, err)

	cfg, err := r.Resolve()
	assert.NilError(t, err)
	assert.Equal(t, "custom.json", cfg.ConfigurationFile)
	assert.Equal(t, "maven", cfg.Scheme)
}

func TestIdempotentResolution(t *testing.T) {
	r, err := configuration.NewResolver(
		map[string]any{"scheme": "maven"},
		map[string]any{},
		map[string]any{"scheme": "semver"},
	)
	assert.NilError(t, err)

	first, err := r.Resolve()
	assert.NilError(t, err)
	second, err := r.Resolve()
	assert.NilError(t, err)
	assert.DeepEqual(t, first, second)
}

func TestEnabledConventionMissingDefinitionIsIllegalProperty(t *testing.T) {
	r, err := configuration.NewResolver(
		map[string]any{
			"commitMessageConventions": configuration.ConventionsBlock{
				Enabled: []string{"missing"},
			},
		},
		map[string]any{},
		map[string]any{},
	)
	assert.NilError(t, err)

	_, err = r.Resolve()
	assert.ErrorContains(t, err, "illegal_property")
}

func TestPresetLayer(t *testing.T) {
	r, err := configuration.NewResolver(
		map[string]any{"preset": "simple"},
		map[string]any{},
		map[string]any{},
	)
	assert.NilError(t, err)

	cfg, err := r.Resolve()
	assert.NilError(t, err)
	assert.DeepEqual(t, []string{"mainline"}, cfg.ReleaseTypes.Enabled)
}
