// Copyright 2026 Blink Labs Software
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package headercursor derives chain positions from node-to-node chain-sync headers
// and reports chain movement to downstream stages. The protocol/chainsync package
// holds the header decoder and the pipeline package holds the command relay.
package headercursor

import (
	"github.com/blinklabs-io/headercursor/ledger/byron"
	"github.com/blinklabs-io/headercursor/protocol/chainsync"
)

// Network definitions
var (
	NetworkTestnet = Network{
		Name:               "testnet",
		NetworkMagic:       1097911063,
		ByronSecurityParam: 2160,
	}
	NetworkMainnet = Network{
		Name:               "mainnet",
		NetworkMagic:       764824073,
		ByronSecurityParam: 2160,
	}
	NetworkPreprod = Network{
		Name:               "preprod",
		NetworkMagic:       1,
		ByronSecurityParam: 2160,
	}
	NetworkPreview = Network{
		Name:               "preview",
		NetworkMagic:       2,
		ByronSecurityParam: 432,
	}
	NetworkSancho = Network{
		Name:               "sanchonet",
		NetworkMagic:       4,
		ByronSecurityParam: 432,
	}

	NetworkInvalid = Network{
		Name:         "invalid",
		NetworkMagic: 0,
	} // NetworkInvalid is used as a return value for lookup functions when a network isn't found
)

// List of valid networks for use in lookup functions
var networks = []Network{
	NetworkTestnet,
	NetworkMainnet,
	NetworkPreprod,
	NetworkPreview,
	NetworkSancho,
}

// NetworkByName returns a predefined network by name
func NetworkByName(name string) Network {
	for _, network := range networks {
		if network.Name == name {
			return network
		}
	}
	return NetworkInvalid
}

// NetworkByNetworkMagic returns a predefined network by network magic
func NetworkByNetworkMagic(networkMagic uint32) Network {
	for _, network := range networks {
		if network.NetworkMagic == networkMagic {
			return network
		}
	}
	return NetworkInvalid
}

// Network represents a Cardano network
type Network struct {
	Name               string
	NetworkMagic       uint32
	ByronSecurityParam uint64 // k from the Byron genesis, which fixes the Byron epoch length
}

func (n Network) String() string {
	return n.Name
}

// SlotConverter returns the Byron slot conversion for the network
func (n Network) SlotConverter() byron.EpochSlotConverter {
	return byron.NewEpochSlotConverter(n.ByronSecurityParam)
}

// HeaderReader returns a header reader using the Byron epoch length of the network
func (n Network) HeaderReader(
	opts ...chainsync.HeaderReaderOptionFunc,
) *chainsync.HeaderReader {
	opts = append(
		[]chainsync.HeaderReaderOptionFunc{
			chainsync.WithSlotConverter(n.SlotConverter()),
		},
		opts...,
	)
	return chainsync.NewHeaderReader(opts...)
}
