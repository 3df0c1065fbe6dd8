// Copyright 2024 The nitro-prover Authors
// This file is part of the nitro-prover library.
//
// The nitro-prover library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The nitro-prover library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the nitro-prover library. If not, see <http://www.gnu.org/licenses/>.

package nsm

import (
	"bytes"
	"testing"

	"github.com/fxamacker/cbor/v2"
)

func TestMockDeviceEchoesRequest(t *testing.T) {
	device := &MockDevice{ModuleID: "test-module"}
	raw, err := device.Attest(Request{
		UserData:  []byte("signature"),
		PublicKey: []byte("public key"),
	})
	if err != nil {
		t.Fatalf("Attest failed: %v", err)
	}

	var doc mockDocument
	if err := cbor.Unmarshal(raw, &doc); err != nil {
		t.Fatalf("document is not valid cbor: %v", err)
	}
	if doc.ModuleID != "test-module" {
		t.Errorf("module id is %q", doc.ModuleID)
	}
	if !bytes.Equal(doc.UserData, []byte("signature")) {
		t.Errorf("user data not echoed: %q", doc.UserData)
	}
	if !bytes.Equal(doc.PublicKey, []byte("public key")) {
		t.Errorf("public key not echoed: %q", doc.PublicKey)
	}
	if doc.Nonce != nil {
		t.Errorf("unexpected nonce %x", doc.Nonce)
	}
}
