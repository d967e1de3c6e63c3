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
	"fmt"
	"strconv"

	"github.com/mitchellh/hashstructure/v2"

	"github.com/nyx-release/nyx/pkg/configuration"
)

// configFingerprint hashes the pinned-option surface of cfg that an
// up-to-date check must compare against, per spec §4.8/§4.12
// ("configuration fingerprint").
func configFingerprint(cfg *configuration.Configuration) (string, error) {
	hash, err := hashstructure.Hash(cfg, hashstructure.FormatV2, nil)
	if err != nil {
		return "", fmt.Errorf("failed to fingerprint configuration: %w", err)
	}
	return strconv.FormatUint(hash, 16), nil
}
