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
	"context"
	"fmt"
	"os/exec"
	"reflect"

	hclog "github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-plugin"
)

// NewClient launches the binary at path as a nyx service plugin and
// returns an Implementation talking to it over RPC, plus a closer that
// terminates the subprocess.
func NewClient(ctx context.Context, path string) (Implementation, func() error, error) {
	client := plugin.NewClient(&plugin.ClientConfig{
		Logger:          hclog.NewNullLogger(),
		HandshakeConfig: Handshake(),
		Plugins:         map[string]plugin.Plugin{Name: &ServicePlugin{}},
		Cmd:             exec.CommandContext(ctx, path),
	})

	rpcClient, err := client.Client()
	if err != nil {
		return nil, func() error { return nil }, fmt.Errorf("failed to connect to service plugin %s: %w", path, err)
	}

	raw, err := rpcClient.Dispense(Name)
	if err != nil {
		return nil, func() error { return nil }, fmt.Errorf("failed to dispense service plugin %s: %w", path, err)
	}

	impl, ok := raw.(Implementation)
	if !ok {
		return nil, func() error { return nil }, fmt.Errorf("plugin %s returned unexpected type %s", path, reflect.TypeOf(raw))
	}

	return impl, rpcClient.Close, nil
}
