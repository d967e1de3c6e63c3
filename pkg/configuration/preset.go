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

import "fmt"

// presets are the named bundles of default conventions and release
// types shipped with nyx (spec §4.3, Glossary: "Preset"). Each value
// is a pre-built layer map, the same shape a file-loaded layer would
// produce.
var presets = map[string]map[string]any{
	"simple": {
		"commitMessageConventions": ConventionsBlock{
			Enabled: []string{"conventionalCommits"},
			Items: map[string]CommitMessageConvention{
				"conventionalCommits": {
					Expression: `^(?P<type>\w+)(?:\([^)]*\))?(?P<breaking>!)?:\s*(?P<description>.+)$`,
					BumpExpressions: []BumpExpression{
						{ID: "major", Expression: `^(feat|fix)$`},
					},
				},
			},
		},
		"releaseTypes": ReleaseTypesBlock{
			Enabled: []string{"mainline"},
			Items: map[string]ReleaseType{
				"mainline": {
					BranchFilter: `^(master|main)$`,
					Publish:      true,
					GitCommit:    true,
					GitTag:       true,
					GitPush:      true,
					TagMessage:   "Release {{version}}",
				},
			},
		},
	},
}

// presetByName returns the layer values for a named preset, or an
// IllegalProperty error if undefined.
func presetByName(name string) (map[string]any, error) {
	p, ok := presets[name]
	if !ok {
		return nil, fmt.Errorf("preset %q is not defined", name)
	}
	return p, nil
}
