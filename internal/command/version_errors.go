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

package command

import (
	"github.com/nyx-release/nyx/internal/nyxerr"
	"github.com/nyx-release/nyx/pkg/version"
)

// wrapVersionErr adapts the version package's own error type (spec
// §4.1 treats the version model as a standalone leaf utility with no
// dependency on the core's error kinds) into the pipeline's tagged
// [nyxerr.Error]. An unsupported scheme is a configuration mistake;
// anything else is a malformed version string.
func wrapVersionErr(err error) error {
	if err == nil {
		return nil
	}
	ve, ok := err.(*version.Error)
	if !ok {
		return err
	}
	if ve.Kind == version.ErrUnsupportedScheme {
		return nyxerr.New(nyxerr.IllegalProperty, ve.Message)
	}
	return nyxerr.New(nyxerr.MalformedVersion, ve.Message)
}
