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

package cbor_test

import (
	"encoding/hex"
	"reflect"
	"testing"

	"github.com/blinklabs-io/headercursor/cbor"
)

type decodeTestDefinition struct {
	CborHex   string
	Object    any
	BytesRead int
}

var decodeTests = []decodeTestDefinition{
	// Simple list of numbers
	{
		CborHex: "83010203",
		Object:  []any{uint64(1), uint64(2), uint64(3)},
	},
	// Multiple CBOR objects
	{
		CborHex:   "81018102",
		Object:    []any{uint64(1)},
		BytesRead: 2,
	},
}

func TestDecode(t *testing.T) {
	for _, test := range decodeTests {
		cborData, err := hex.DecodeString(test.CborHex)
		if err != nil {
			t.Fatalf("failed to decode CBOR hex: %s", err)
		}
		var dest any
		bytesRead, err := cbor.Decode(cborData, &dest)
		if err != nil {
			t.Fatalf("failed to decode CBOR: %s", err)
		}
		if test.BytesRead > 0 && bytesRead != test.BytesRead {
			t.Fatalf(
				"expected to read %d bytes, read %d instead",
				test.BytesRead,
				bytesRead,
			)
		}
		if !reflect.DeepEqual(dest, test.Object) {
			t.Fatalf(
				"CBOR did not decode to expected object\n  got: %#v\n  wanted: %#v",
				dest,
				test.Object,
			)
		}
	}
}

type listLenTestDefinition struct {
	CborHex string
	Length  int
}

var listLenTests = []listLenTestDefinition{
	// [1]
	{
		CborHex: "8101",
		Length:  1,
	},
	// [4, 5, 6]
	{
		CborHex: "83040506",
		Length:  3,
	},
	// [0, 1, ... 24, 25]
	{
		CborHex: "981A000102030405060708090A0B0C0D0E0F101112131415161718181819",
		Length:  26,
	},
}

func TestListLength(t *testing.T) {
	for _, test := range listLenTests {
		cborData, err := hex.DecodeString(test.CborHex)
		if err != nil {
			t.Fatalf("failed to decode CBOR hex: %s", err)
		}
		listLen, err := cbor.ListLength(cborData)
		if err != nil {
			t.Fatalf("unexpected error: %s", err)
		}
		if listLen != test.Length {
			t.Fatalf(
				"did not get expected length, got: %d, wanted: %d",
				listLen,
				test.Length,
			)
		}
	}
}

func TestListLengthEmpty(t *testing.T) {
	if _, err := cbor.ListLength(nil); err == nil {
		t.Fatalf("did not get expected error for empty input")
	}
}

type decodeIdFromListTestDefinition struct {
	CborHex   string
	Id        int
	ExpectErr bool
}

var decodeIdFromListTests = []decodeIdFromListTestDefinition{
	// [1, 3]
	{
		CborHex: "820103",
		Id:      1,
	},
	// [4, 1]
	{
		CborHex: "820401",
		Id:      4,
	},
	// [25]
	{
		CborHex: "811819",
		Id:      25,
	},
	// [true]
	{
		CborHex:   "81f5",
		ExpectErr: true,
	},
	// []
	{
		CborHex:   "80",
		ExpectErr: true,
	},
}

func TestDecodeIdFromList(t *testing.T) {
	for _, test := range decodeIdFromListTests {
		cborData, err := hex.DecodeString(test.CborHex)
		if err != nil {
			t.Fatalf("failed to decode CBOR hex: %s", err)
		}
		id, err := cbor.DecodeIdFromList(cborData)
		if test.ExpectErr {
			if err == nil {
				t.Fatalf("did not get expected error for %s", test.CborHex)
			}
			continue
		}
		if err != nil {
			t.Fatalf("unexpected error: %s", err)
		}
		if id != test.Id {
			t.Fatalf("did not get expected ID, got: %d, wanted: %d", id, test.Id)
		}
	}
}

type storedCborTestType struct {
	cbor.StructAsArray
	cbor.DecodeStoreCbor
	Number uint64
	Data   []byte
}

func (s *storedCborTestType) UnmarshalCBOR(cborData []byte) error {
	return s.UnmarshalCbor(cborData, s)
}

func TestDecodeStoreCbor(t *testing.T) {
	// [7, h'abcd']
	cborData, err := hex.DecodeString("820742abcd")
	if err != nil {
		t.Fatalf("failed to decode CBOR hex: %s", err)
	}
	var dest storedCborTestType
	if _, err := cbor.Decode(cborData, &dest); err != nil {
		t.Fatalf("failed to decode CBOR: %s", err)
	}
	if dest.Number != 7 {
		t.Fatalf("did not get expected number, got: %d, wanted: 7", dest.Number)
	}
	if hex.EncodeToString(dest.Data) != "abcd" {
		t.Fatalf("did not get expected data, got: %x", dest.Data)
	}
	if hex.EncodeToString(dest.Cbor()) != "820742abcd" {
		t.Fatalf("did not store original CBOR, got: %x", dest.Cbor())
	}
	// The stored copy must not alias the input
	cborData[1] = 0x08
	if dest.Cbor()[1] != 0x07 {
		t.Fatalf("stored CBOR aliases the input buffer")
	}
}

func TestDecodeGenericNonStruct(t *testing.T) {
	var dest []any
	if err := cbor.DecodeGeneric([]byte{0x80}, &dest); err == nil {
		t.Fatalf("did not get expected error for non-struct destination")
	}
}

func TestDecodeStoreCborNonArray(t *testing.T) {
	for _, cborHex := range []string{
		// null
		"f6",
		// undefined
		"f7",
		// null followed by junk
		"f612345678",
		// map
		"a0",
		// tag wrapping null
		"c1f6",
		"",
	} {
		cborData, err := hex.DecodeString(cborHex)
		if err != nil {
			t.Fatalf("failed to decode CBOR hex: %s", err)
		}
		var dest storedCborTestType
		if err := dest.UnmarshalCBOR(cborData); err == nil {
			t.Fatalf("did not get expected error for input %q", cborHex)
		}
		if _, err := cbor.Decode(cborData, &dest); err == nil {
			t.Fatalf("did not get expected error decoding input %q", cborHex)
		}
	}
}

func TestDecodeWrappedCbor(t *testing.T) {
	// 24(h'820102')
	cborData, err := hex.DecodeString("d81843820102")
	if err != nil {
		t.Fatalf("failed to decode CBOR hex: %s", err)
	}
	var dest cbor.WrappedCbor
	if _, err := cbor.Decode(cborData, &dest); err != nil {
		t.Fatalf("failed to decode CBOR: %s", err)
	}
	if hex.EncodeToString(dest.Bytes()) != "820102" {
		t.Fatalf("did not get expected wrapped content, got: %x", dest.Bytes())
	}
}
