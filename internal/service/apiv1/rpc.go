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
	"net/rpc"

	"github.com/hashicorp/go-plugin"
)

// ServicePlugin is the go-plugin Plugin implementation carrying both
// the RPC server and client side of a nyx service.
type ServicePlugin struct {
	impl Implementation
}

// Server serves impl over net/rpc.
func (p *ServicePlugin) Server(*plugin.MuxBroker) (interface{}, error) {
	return &rpcServer{impl: p.impl}, nil
}

// Client returns an Implementation backed by an RPC client.
func (p *ServicePlugin) Client(_ *plugin.MuxBroker, c *rpc.Client) (interface{}, error) {
	return &rpcClient{client: c}, nil
}

// Handshake returns the plugin.HandshakeConfig enforced for every
// nyx service plugin.
func Handshake() plugin.HandshakeConfig {
	return plugin.HandshakeConfig{
		ProtocolVersion:  Version,
		MagicCookieKey:   CookieKey,
		MagicCookieValue: CookieValue,
	}
}
