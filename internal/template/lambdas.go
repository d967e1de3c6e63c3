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

package template

import (
	"os"
	"os/user"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

// lambda transforms a rendered section body into output text (spec
// §4.5's fixed lambda library).
type lambda func(body string) string

// lambdas is the fixed, non-extensible lambda table named in spec
// §4.5. Section names not present here are an error at render time.
var lambdas = map[string]lambda{
	"lower": strings.ToLower,
	"upper": strings.ToUpper,
	"trim":  strings.TrimSpace,

	"first":      func(s string) string { return prefixAlnum(s) },
	"firstLower": func(s string) string { return strings.ToLower(prefixAlnum(s)) },
	"firstUpper": func(s string) string { return strings.ToUpper(prefixAlnum(s)) },

	"last":      func(s string) string { return suffixAlnum(s) },
	"lastLower": func(s string) string { return strings.ToLower(suffixAlnum(s)) },
	"lastUpper": func(s string) string { return strings.ToUpper(suffixAlnum(s)) },

	"sanitize":      sanitize,
	"sanitizeLower": func(s string) string { return strings.ToLower(sanitize(s)) },
	"sanitizeUpper": func(s string) string { return strings.ToUpper(sanitize(s)) },

	"short5": func(s string) string { return shortN(s, 5) },
	"short6": func(s string) string { return shortN(s, 6) },
	"short7": func(s string) string { return shortN(s, 7) },

	"timestampISO8601":        func(s string) string { return formatEpoch(s, time.RFC3339) },
	"timestampYYYYMMDDHHMMSS": func(s string) string { return formatEpoch(s, "20060102150405") },

	"environment.user":     func(string) string { return currentUser() },
	"environment.variable": func(name string) string { return os.Getenv(strings.TrimSpace(name)) },
	"file.content":         func(path string) string { return fileContent(strings.TrimSpace(path)) },
	"file.exists":          func(path string) string { return strconv.FormatBool(fileExists(strings.TrimSpace(path))) },
}

func isAlnum(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}

// prefixAlnum returns the prefix of s up to (excluding) the first
// non-alphanumeric rune, or all of s if none exists.
func prefixAlnum(s string) string {
	for i, r := range s {
		if !isAlnum(r) {
			return s[:i]
		}
	}
	return s
}

// suffixAlnum returns the suffix of s after (excluding) the last
// non-alphanumeric rune, or all of s if none exists.
func suffixAlnum(s string) string {
	last := -1
	for i, r := range s {
		if !isAlnum(r) {
			last = i
		}
	}
	if last == -1 {
		return s
	}
	_, size := utf8.DecodeRuneInString(s[last:])
	return s[last+size:]
}

// sanitize strips every non-alphanumeric rune.
func sanitize(s string) string {
	var b strings.Builder
	for _, r := range s {
		if isAlnum(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// shortN returns the first n characters of s, or s unchanged if
// shorter.
func shortN(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

// formatEpoch parses body as a UNIX-epoch integer and formats it in
// UTC under layout. Unlike the general text→typed coercion rules
// (blank/non-numeric → 0), a timestamp lambda yields an empty string
// on parse failure per spec §4.5, since a fabricated zero timestamp
// would silently fabricate a release date.
func formatEpoch(body, layout string) string {
	body = strings.TrimSpace(body)
	if body == "" {
		return ""
	}
	n, err := strconv.ParseInt(body, 10, 64)
	if err != nil {
		return ""
	}
	return time.Unix(n, 0).UTC().Format(layout)
}

func currentUser() string {
	if u, err := user.Current(); err == nil {
		return u.Username
	}
	return os.Getenv("USER")
}

func fileContent(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	return string(data)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
