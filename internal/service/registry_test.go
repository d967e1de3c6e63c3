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

package service_test

import (
	"context"
	"testing"

	"github.com/nyx-release/nyx/internal/nyxerr"
	"github.com/nyx-release/nyx/internal/service"
	"github.com/nyx-release/nyx/pkg/configuration"
	"gotest.tools/v3/assert"
)

func TestResolveUnknownServiceIsReleaseServiceUnknown(t *testing.T) {
	r := service.NewRegistry(map[string]configuration.Service{})
	_, err := r.Resolve(context.Background(), "missing")
	assert.Assert(t, nyxerr.IsReleaseKind(err, nyxerr.ReleaseServiceUnknown))
}

func TestResolveGithubBuiltin(t *testing.T) {
	configs := map[string]configuration.Service{
		"gh": {Type: "github", Options: map[string]string{"owner": "nyx-release", "repo": "nyx"}},
	}
	r := service.NewRegistry(configs)
	impl, err := r.Resolve(context.Background(), "gh")
	assert.NilError(t, err)
	cfg, err := impl.GetConfig()
	assert.NilError(t, err)
	assert.Equal(t, "gh", cfg.Name)
	assert.Equal(t, "publish", cfg.Kind)
}

func TestResolveCachesBuiltService(t *testing.T) {
	configs := map[string]configuration.Service{
		"gh": {Type: "github", Options: map[string]string{"owner": "o", "repo": "r"}},
	}
	r := service.NewRegistry(configs)
	first, err := r.Resolve(context.Background(), "gh")
	assert.NilError(t, err)
	second, err := r.Resolve(context.Background(), "gh")
	assert.NilError(t, err)
	assert.Assert(t, first == second)
}

func TestResolvePluginWithoutPathIsIllegalProperty(t *testing.T) {
	configs := map[string]configuration.Service{
		"custom": {Type: "plugin"},
	}
	r := service.NewRegistry(configs)
	_, err := r.Resolve(context.Background(), "custom")
	assert.Assert(t, nyxerr.Is(err, nyxerr.IllegalProperty))
}

func TestResolveUnknownTypeIsIllegalProperty(t *testing.T) {
	configs := map[string]configuration.Service{
		"weird": {Type: "carrier-pigeon"},
	}
	r := service.NewRegistry(configs)
	_, err := r.Resolve(context.Background(), "weird")
	assert.Assert(t, nyxerr.Is(err, nyxerr.IllegalProperty))
}
