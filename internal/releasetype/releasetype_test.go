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

package releasetype_test

import (
	"testing"

	"github.com/nyx-release/nyx/internal/nyxerr"
	"github.com/nyx-release/nyx/internal/releasetype"
	"github.com/nyx-release/nyx/pkg/configuration"
	"gotest.tools/v3/assert"
)

func block() configuration.ReleaseTypesBlock {
	return configuration.ReleaseTypesBlock{
		Enabled: []string{"hotfix", "mainline"},
		Items: map[string]configuration.ReleaseType{
			"hotfix":   {BranchFilter: `^hotfix/.*$`},
			"mainline": {BranchFilter: `^(main|master)$`},
		},
	}
}

func TestSelectFirstMatchWins(t *testing.T) {
	s := releasetype.New(block(), nil)
	sel, err := s.Select("hotfix/1.2.3")
	assert.NilError(t, err)
	assert.Equal(t, "hotfix", sel.Name)
}

func TestSelectFallsThroughToSecondEnabled(t *testing.T) {
	s := releasetype.New(block(), nil)
	sel, err := s.Select("main")
	assert.NilError(t, err)
	assert.Equal(t, "mainline", sel.Name)
}

func TestSelectNoMatchIsReleaseError(t *testing.T) {
	s := releasetype.New(block(), nil)
	_, err := s.Select("feature/x")
	assert.Assert(t, nyxerr.IsReleaseKind(err, nyxerr.ReleaseNoMatchingType))
}

func TestSelectUndefinedEnabledNameIsIllegalProperty(t *testing.T) {
	b := configuration.ReleaseTypesBlock{Enabled: []string{"ghost"}}
	s := releasetype.New(b, nil)
	_, err := s.Select("main")
	assert.Assert(t, nyxerr.Is(err, nyxerr.IllegalProperty))
}

func TestSelectEnvironmentPredicateMustBeSet(t *testing.T) {
	b := configuration.ReleaseTypesBlock{
		Enabled: []string{"ci"},
		Items: map[string]configuration.ReleaseType{
			"ci": {
				BranchFilter:          `^main$`,
				EnvironmentPredicates: []configuration.EnvironmentPredicate{{Name: "CI"}},
			},
		},
	}
	env := map[string]string{}
	lookup := func(name string) (string, bool) { v, ok := env[name]; return v, ok }

	s := releasetype.New(b, lookup)
	_, err := s.Select("main")
	assert.Assert(t, nyxerr.IsReleaseKind(err, nyxerr.ReleaseNoMatchingType))

	env["CI"] = "true"
	sel, err := s.Select("main")
	assert.NilError(t, err)
	assert.Equal(t, "ci", sel.Name)
}

func TestSelectEnvironmentPredicateValueFilter(t *testing.T) {
	b := configuration.ReleaseTypesBlock{
		Enabled: []string{"prod"},
		Items: map[string]configuration.ReleaseType{
			"prod": {
				BranchFilter: `^main$`,
				EnvironmentPredicates: []configuration.EnvironmentPredicate{
					{Name: "DEPLOY_ENV", ValueFilter: `^prod(uction)?$`},
				},
			},
		},
	}
	env := map[string]string{"DEPLOY_ENV": "staging"}
	lookup := func(name string) (string, bool) { v, ok := env[name]; return v, ok }

	s := releasetype.New(b, lookup)
	_, err := s.Select("main")
	assert.Assert(t, nyxerr.IsReleaseKind(err, nyxerr.ReleaseNoMatchingType))

	env["DEPLOY_ENV"] = "production"
	sel, err := s.Select("main")
	assert.NilError(t, err)
	assert.Equal(t, "prod", sel.Name)
}
