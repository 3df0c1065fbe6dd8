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
	"time"

	"github.com/fxamacker/cbor/v2"
)

// MockDevice is a Device for tests and non-enclave runs. It produces an
// unsigned CBOR document echoing the request fields in the shape of a real
// NSM attestation payload. Documents from a MockDevice prove nothing.
type MockDevice struct {
	ModuleID string
}

type mockDocument struct {
	ModuleID  string           `cbor:"module_id"`
	Timestamp uint64           `cbor:"timestamp"`
	Digest    string           `cbor:"digest"`
	PCRs      map[uint8][]byte `cbor:"pcrs"`
	UserData  []byte           `cbor:"user_data,omitempty"`
	Nonce     []byte           `cbor:"nonce,omitempty"`
	PublicKey []byte           `cbor:"public_key,omitempty"`
}

// Attest returns a mock document over the request.
func (d *MockDevice) Attest(req Request) ([]byte, error) {
	moduleID := d.ModuleID
	if moduleID == "" {
		moduleID = "i-00000000000000000-enc0000000000000000"
	}
	return cbor.Marshal(&mockDocument{
		ModuleID:  moduleID,
		Timestamp: uint64(time.Now().UnixMilli()),
		Digest:    "SHA384",
		PCRs:      map[uint8][]byte{0: make([]byte, 48)},
		UserData:  req.UserData,
		Nonce:     req.Nonce,
		PublicKey: req.PublicKey,
	})
}
