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

package main

import (
	"bufio"
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/blinklabs-io/headercursor/cbor"
	"github.com/blinklabs-io/headercursor/cmd/common"
	"github.com/blinklabs-io/headercursor/pipeline"
	"github.com/blinklabs-io/headercursor/protocol/chainsync"
	pcommon "github.com/blinklabs-io/headercursor/protocol/common"
)

type headerCursorFlags struct {
	*common.GlobalFlags
	hex     string
	message bool
	dump    bool
}

type cursorOutput struct {
	Command string `json:"command"`
	Era     string `json:"era,omitempty"`
	Shape   string `json:"shape,omitempty"`
	Origin  bool   `json:"origin,omitempty"`
	Slot    uint64 `json:"slot"`
	Hash    string `json:"hash"`
}

func commandOutput(cmd pipeline.ChainSyncCommand) cursorOutput {
	return cursorOutput{
		Command: cmd.Kind.String(),
		Slot:    cmd.Point.Slot,
		Hash:    hex.EncodeToString(cmd.Point.Hash),
	}
}

func main() {
	// Parse commandline
	f := headerCursorFlags{
		GlobalFlags: common.NewGlobalFlags(),
	}
	f.Flagset.StringVar(
		&f.hex,
		"hex",
		"",
		"hex-encoded header content (read from stdin when not specified)",
	)
	f.Flagset.BoolVar(
		&f.message,
		"message",
		false,
		"input is a full chain-sync RollForward or RollBackward message",
	)
	f.Flagset.BoolVar(
		&f.dump,
		"dump",
		false,
		"dump the decoded CBOR structure of the input to stderr",
	)
	f.Parse()
	logger := f.Logger()
	network, err := f.SelectedNetwork()
	if err != nil {
		fmt.Printf("ERROR: %s\n", err)
		os.Exit(1)
	}
	input, err := readInput(f.hex)
	if err != nil {
		fmt.Printf("ERROR: %s\n", err)
		os.Exit(1)
	}
	if f.dump {
		var tmp any
		if _, err := cbor.Decode(input, &tmp); err != nil {
			fmt.Printf("ERROR: failed to decode CBOR: %s\n", err)
			os.Exit(1)
		}
		fmt.Fprint(os.Stderr, cbor.DumpStructure(tmp, ""))
	}
	var msg chainsync.Message
	if f.message {
		msg, err = chainsync.NewMsgFromCbor(input)
	} else {
		var content chainsync.HeaderContent
		if _, err = cbor.Decode(input, &content); err == nil {
			msg = chainsync.NewMsgRollForwardNtN(content, pcommon.Tip{})
		}
	}
	if err != nil {
		fmt.Printf("ERROR: failed to decode input: %s\n", err)
		os.Exit(1)
	}
	reader := network.HeaderReader(chainsync.WithLogger(logger))
	port := pipeline.NewOutputPort[pipeline.ChainSyncCommand](1)
	relay := pipeline.NewRelay(
		pipeline.WithLogger(logger),
		pipeline.WithHeaderReader(reader),
		pipeline.WithPlainOutput(port),
	)
	ctx := context.Background()
	var out cursorOutput
	switch m := msg.(type) {
	case *chainsync.MsgRollForwardNtN:
		header, err := reader.Decode(m.WrappedHeader)
		if err != nil {
			fmt.Printf("ERROR: %s\n", err)
			os.Exit(1)
		}
		if _, err := relay.OnRollForwardDecoded(ctx, header); err != nil {
			fmt.Printf("ERROR: %s\n", err)
			os.Exit(1)
		}
		out = commandOutput((<-port.Chan()).Payload)
		out.Era = header.Era().Name
		out.Shape = header.Shape().String()
	case *chainsync.MsgRollBackward:
		if err := relay.HandleMessage(ctx, m); err != nil {
			fmt.Printf("ERROR: %s\n", err)
			os.Exit(1)
		}
		if m.ToOrigin {
			// No command is sent for origin
			out = cursorOutput{
				Command: pipeline.CommandKindRollBack.String(),
				Origin:  true,
			}
		} else {
			out = commandOutput((<-port.Chan()).Payload)
		}
	}
	outJson, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		fmt.Printf("ERROR: %s\n", err)
		os.Exit(1)
	}
	fmt.Println(string(outJson))
}

func readInput(hexArg string) ([]byte, error) {
	if hexArg == "" {
		var sb strings.Builder
		scanner := bufio.NewScanner(os.Stdin)
		scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
		for scanner.Scan() {
			sb.WriteString(strings.TrimSpace(scanner.Text()))
		}
		if err := scanner.Err(); err != nil {
			return nil, err
		}
		hexArg = sb.String()
	}
	data, err := hex.DecodeString(strings.TrimSpace(hexArg))
	if err != nil {
		return nil, fmt.Errorf("invalid hex input: %w", err)
	}
	return data, nil
}
