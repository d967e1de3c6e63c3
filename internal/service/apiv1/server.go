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

package apiv1

import (
	hclog "github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-plugin"
)

// Serve starts impl as a nyx service plugin, blocking until the host
// terminates the connection. External service binaries call this from
// their main function.
func Serve(impl Implementation) {
	plugin.Serve(&plugin.ServeConfig{
		Logger:          hclog.NewNullLogger(),
		HandshakeConfig: Handshake(),
		Plugins:         map[string]plugin.Plugin{Name: &ServicePlugin{impl: impl}},
	})
}
