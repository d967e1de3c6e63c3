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

// Package convention implements the commit-message convention matcher
// (spec §4.6): classifying a commit message under an enabled
// convention and deriving a bump identifier from it.
package convention

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/nyx-release/nyx/internal/nyxerr"
	"github.com/nyx-release/nyx/pkg/configuration"
)

// Match is the outcome of classifying a single commit message.
type Match struct {
	// Convention is the name of the convention that matched.
	Convention string

	// BumpID is the derived bump identifier, empty if the message
	// matched a convention but no bumpExpression, and empty if no
	// convention matched at all (callers distinguish via Matched).
	BumpID string

	// Breaking reports whether the commit overrode to the highest
	// permitted bump (spec §4.6).
	Breaking bool

	// Matched reports whether any convention's primary expression
	// matched the message at all.
	Matched bool
}

// compiledCache avoids recompiling the same regex on every commit in
// a release scope, which can be in the thousands for a large history.
type compiledCache struct {
	primary map[string]*regexp.Regexp
	bump    map[string]*regexp.Regexp
}

func newCompiledCache() *compiledCache {
	return &compiledCache{primary: map[string]*regexp.Regexp{}, bump: map[string]*regexp.Regexp{}}
}

func (c *compiledCache) compile(cache map[string]*regexp.Regexp, expr string) (*regexp.Regexp, error) {
	if re, ok := cache[expr]; ok {
		return re, nil
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, err
	}
	cache[expr] = re
	return re, nil
}

// Matcher classifies commit messages against a resolved
// [configuration.ConventionsBlock].
type Matcher struct {
	block         configuration.ConventionsBlock
	highestBumpID string
	cache         *compiledCache
}

// New builds a Matcher. highestBumpID is the bump identifier a
// breaking commit overrides to, scheme-dependent (spec §4.6: "the
// highest bump id permitted by the scheme, e.g. major under SemVer").
func New(block configuration.ConventionsBlock, highestBumpID string) *Matcher {
	return &Matcher{block: block, highestBumpID: highestBumpID, cache: newCompiledCache()}
}

// Match classifies message against the enabled conventions in
// declared order, returning the first match (spec §4.6). A message
// matching no convention returns Matched=false with no error.
func (m *Matcher) Match(message string) (Match, error) {
	for _, name := range m.block.Enabled {
		conv, ok := m.block.Items[name]
		if !ok {
			return Match{}, nyxerr.New(nyxerr.IllegalProperty, fmt.Sprintf("commit message convention %q is enabled but not defined", name))
		}

		re, err := m.cache.compile(m.cache.primary, conv.Expression)
		if err != nil {
			return Match{}, nyxerr.New(nyxerr.IllegalProperty, fmt.Sprintf("convention %q has an invalid expression: %v", name, err))
		}

		groups := re.FindStringSubmatch(message)
		if groups == nil {
			continue
		}

		captured := namedGroups(re, groups)
		if coerceBool(captured["breaking"]) {
			return Match{Convention: name, BumpID: m.highestBumpID, Breaking: true, Matched: true}, nil
		}

		for _, be := range conv.BumpExpressions {
			bre, err := m.cache.compile(m.cache.bump, be.Expression)
			if err != nil {
				return Match{}, nyxerr.New(nyxerr.IllegalProperty, fmt.Sprintf("convention %q bump expression %q is invalid: %v", name, be.ID, err))
			}
			if bre.MatchString(captured["type"]) {
				return Match{Convention: name, BumpID: be.ID, Matched: true}, nil
			}
		}

		return Match{Convention: name, Matched: true}, nil
	}

	return Match{}, nil
}

// namedGroups maps a regex's named capture groups to their matched
// text, skipping the whole-match group and unnamed groups.
func namedGroups(re *regexp.Regexp, groups []string) map[string]string {
	out := map[string]string{}
	for i, name := range re.SubexpNames() {
		if i == 0 || name == "" {
			continue
		}
		out[name] = groups[i]
	}
	return out
}

// coerceBool applies spec §4.5's text coercion rule to a capture
// group used as a boolean predicate: blank is false; a value parsing
// as a bool (true/false/1/0/...) takes that value; anything else
// present (e.g. a literal "!" marker) is true.
func coerceBool(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	if b, err := strconv.ParseBool(s); err == nil {
		return b
	}
	return true
}
