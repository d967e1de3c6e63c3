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

// Package template implements the rendering engine used to produce
// commit/tag/publish messages and other text from the resolved state
// (spec §4.5). It is built on text/template rather than a literal
// Mustache parser, since every template-rendering file in the
// retrieved reference pack does the same (see SPEC_FULL.md §4.5).
package template

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"
)

// Engine renders mustache-flavored template text against arbitrary
// data.
type Engine struct {
	funcs template.FuncMap
}

// New constructs an Engine whose function map extends sprig's
// generic helpers, mirroring how the teacher repo builds its own
// template.FuncMap from a stock "Default" map plus context-specific
// additions.
func New() *Engine {
	funcs := sprig.TxtFuncMap()
	return &Engine{funcs: funcs}
}

var (
	anyTagPattern  = regexp.MustCompile(`\{\{([^{}]*)\}\}`)
	sectionPattern = regexp.MustCompile(`(?s)\{\{#([A-Za-z0-9_.]+)\}\}(.*?)\{\{/([A-Za-z0-9_.]+)\}\}`)
	fieldPattern   = regexp.MustCompile(`\{\{\s*([A-Za-z_][A-Za-z0-9_.]*)\s*\}\}`)
)

// validateSectionSpacing rejects any `{{#name}}`/`{{/name}}` tag
// padded with whitespace between the delimiter, sigil, name, or
// closing delimiter, per spec §4.5: "Whitespace inside mustache tags
// between delimiter and name is significant for section tags (must
// be absent)".
func validateSectionSpacing(text string) error {
	for _, m := range anyTagPattern.FindAllStringSubmatch(text, -1) {
		inner := m[1]
		trimmed := strings.TrimSpace(inner)
		if trimmed == "" {
			continue
		}
		if trimmed[0] != '#' && trimmed[0] != '/' {
			continue
		}
		name := trimmed[1:]
		if inner != trimmed || strings.ContainsAny(name, " \t\n\r") {
			return fmt.Errorf("template: whitespace between delimiter and name is not permitted in section tags (found %q)", "{{"+inner+"}}")
		}
	}
	return nil
}

// goKeywords are template actions/keywords that must never be
// mistaken for a plain mustache field tag during the dotted-path
// rewrite.
var goKeywords = map[string]bool{
	"if": true, "else": true, "end": true, "range": true, "with": true,
	"define": true, "template": true, "block": true, "true": true, "false": true, "nil": true,
}

// Render renders text against data. Section tags (`{{#name}}...
// {{/name}}`) are resolved against the fixed lambda table; plain
// `{{name}}` / `{{a.b.c}}` tags navigate data by dotted path.
func (e *Engine) Render(text string, data any) (string, error) {
	if err := validateSectionSpacing(text); err != nil {
		return "", err
	}

	rewritten, defines, err := e.extractSections(text, data)
	if err != nil {
		return "", err
	}

	final := rewriteFieldTags(rewritten)

	src := final
	if len(defines) > 0 {
		src = strings.Join(defines, "\n") + "\n" + final
	}

	t, err := template.New("root").Funcs(e.funcs).Parse(src)
	if err != nil {
		return "", fmt.Errorf("template: parse error: %w", err)
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("template: render error: %w", err)
	}
	return buf.String(), nil
}

// extractSections replaces every `{{#name}}body{{/name}}` occurrence
// with the literal text produced by rendering body against data and
// passing it through the named lambda. A name that is not in the
// fixed lambda table is an error. Returns the rewritten text (no
// remaining section tags) and the (empty) slice of extra template
// defines reserved for future nested-section support.
func (e *Engine) extractSections(text string, data any) (string, []string, error) {
	var outerErr error

	result := sectionPattern.ReplaceAllStringFunc(text, func(match string) string {
		if outerErr != nil {
			return match
		}

		groups := sectionPattern.FindStringSubmatch(match)
		name, body, closeName := groups[1], groups[2], groups[3]
		if name != closeName {
			outerErr = fmt.Errorf("template: mismatched section tags %q/%q", name, closeName)
			return match
		}

		fn, ok := lambdas[name]
		if !ok {
			outerErr = fmt.Errorf("template: unknown lambda %q", name)
			return match
		}

		rendered, err := e.renderFragment(body, data)
		if err != nil {
			outerErr = err
			return match
		}

		return fn(rendered)
	})

	if outerErr != nil {
		return "", nil, outerErr
	}
	return result, nil, nil
}

// renderFragment renders a section body (which may itself contain
// plain field tags) against data, without re-running section
// extraction (sections do not nest in spec §4.5).
func (e *Engine) renderFragment(body string, data any) (string, error) {
	rewritten := rewriteFieldTags(body)
	t, err := template.New("fragment").Funcs(e.funcs).Parse(rewritten)
	if err != nil {
		return "", fmt.Errorf("template: parse error in section body: %w", err)
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("template: render error in section body: %w", err)
	}
	return buf.String(), nil
}

// rewriteFieldTags converts bare `{{name}}` / `{{a.b.c}}` tags into
// text/template's dotted-field syntax `{{.a.b.c}}`, leaving Go
// template actions (if/range/with/...) untouched.
func rewriteFieldTags(text string) string {
	return fieldPattern.ReplaceAllStringFunc(text, func(match string) string {
		groups := fieldPattern.FindStringSubmatch(match)
		name := groups[1]
		if goKeywords[name] {
			return match
		}
		return "{{." + name + "}}"
	})
}
