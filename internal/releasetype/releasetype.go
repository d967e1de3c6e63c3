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

// Package releasetype implements the branch→release-type selector
// (spec §4.7): choosing which release type governs the current branch.
package releasetype

import (
	"fmt"
	"os"
	"regexp"

	"github.com/nyx-release/nyx/internal/nyxerr"
	"github.com/nyx-release/nyx/pkg/configuration"
)

// Selection is the outcome of matching a branch against the enabled
// release types.
type Selection struct {
	Name string
	Type configuration.ReleaseType
}

// Selector chooses a release type for a branch name, caching compiled
// regexes across lookups (a pipeline run resolves this once, but the
// cache keeps repeated Infer calls during tests cheap).
type Selector struct {
	block         configuration.ReleaseTypesBlock
	branchFilters map[string]*regexp.Regexp
	envLookup     func(string) (string, bool)
}

// New builds a Selector over block. envLookup defaults to os.LookupEnv
// when nil; tests may substitute a fake.
func New(block configuration.ReleaseTypesBlock, envLookup func(string) (string, bool)) *Selector {
	if envLookup == nil {
		envLookup = os.LookupEnv
	}
	return &Selector{block: block, branchFilters: map[string]*regexp.Regexp{}, envLookup: envLookup}
}

// Select returns the first enabled release type whose branchFilter
// matches branch and whose environment predicates all hold (spec
// §4.7: declared order, first match wins). No match is a
// Release{NoMatchingReleaseType} error.
func (s *Selector) Select(branch string) (Selection, error) {
	for _, name := range s.block.Enabled {
		rt, ok := s.block.Items[name]
		if !ok {
			return Selection{}, nyxerr.New(nyxerr.IllegalProperty, fmt.Sprintf("release type %q is enabled but not defined", name))
		}

		re, err := s.compile(name, rt.BranchFilter)
		if err != nil {
			return Selection{}, nyxerr.New(nyxerr.IllegalProperty, fmt.Sprintf("release type %q has an invalid branchFilter: %v", name, err))
		}
		if !re.MatchString(branch) {
			continue
		}
		if !s.predicatesHold(rt.EnvironmentPredicates) {
			continue
		}
		return Selection{Name: name, Type: rt}, nil
	}

	return Selection{}, nyxerr.WrapRelease(nyxerr.ReleaseNoMatchingType, fmt.Sprintf("no release type matches branch %q", branch), nil)
}

func (s *Selector) compile(name, expr string) (*regexp.Regexp, error) {
	if re, ok := s.branchFilters[name]; ok {
		return re, nil
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, err
	}
	s.branchFilters[name] = re
	return re, nil
}

// predicatesHold reports whether every environment predicate is
// satisfied: the variable must be set and, when a valueFilter is
// configured, its value must match that regex.
func (s *Selector) predicatesHold(predicates []configuration.EnvironmentPredicate) bool {
	for _, p := range predicates {
		value, ok := s.envLookup(p.Name)
		if !ok {
			return false
		}
		if p.ValueFilter == "" {
			continue
		}
		re, err := regexp.Compile(p.ValueFilter)
		if err != nil {
			return false
		}
		if !re.MatchString(value) {
			return false
		}
	}
	return true
}
