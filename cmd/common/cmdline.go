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

package common

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/blinklabs-io/headercursor"
)

type GlobalFlags struct {
	Flagset      *flag.FlagSet
	Network      string
	NetworkMagic int
	Debug        bool
}

func NewGlobalFlags() *GlobalFlags {
	f := &GlobalFlags{
		Flagset: flag.NewFlagSet(os.Args[0], flag.ExitOnError),
	}
	f.Flagset.StringVar(
		&f.Network,
		"network",
		"mainnet",
		"specifies network the headers come from",
	)
	f.Flagset.IntVar(
		&f.NetworkMagic,
		"network-magic",
		0,
		"specifies network magic value. this overrides the -network option",
	)
	f.Flagset.BoolVar(&f.Debug, "debug", false, "enable debug logging")
	return f
}

func (f *GlobalFlags) Parse() {
	if err := f.Flagset.Parse(os.Args[1:]); err != nil {
		fmt.Printf("failed to parse command args: %s\n", err)
		os.Exit(1)
	}
	if f.NetworkMagic == 0 {
		network := headercursor.NetworkByName(f.Network)
		if network == headercursor.NetworkInvalid {
			fmt.Printf("Invalid network specified: %s\n", f.Network)
			os.Exit(1)
		}
		f.NetworkMagic = int(network.NetworkMagic)
	}
}

// SelectedNetwork returns the network for the parsed flags
func (f *GlobalFlags) SelectedNetwork() (headercursor.Network, error) {
	network := headercursor.NetworkByNetworkMagic(uint32(f.NetworkMagic)) // #nosec G115
	if network == headercursor.NetworkInvalid {
		return network, fmt.Errorf("unknown network magic: %d", f.NetworkMagic)
	}
	return network, nil
}

// Logger returns a logger writing to stderr at the level selected by -debug
func (f *GlobalFlags) Logger() *slog.Logger {
	level := slog.LevelInfo
	if f.Debug {
		level = slog.LevelDebug
	}
	return slog.New(
		slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}),
	)
}
