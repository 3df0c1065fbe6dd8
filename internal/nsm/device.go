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

// Package nsm drives the AWS Nitro Security Module to issue attestation
// documents over prover-supplied data.
package nsm

import (
	"errors"
)

// ErrNoDocument is returned when the device answers an attestation request
// with a response of the wrong shape.
var ErrNoDocument = errors.New("attestation device did not return a document")

// Request is one attestation request. All fields are optional on the device
// side; the prover always supplies UserData and PublicKey and never a Nonce
// (the signed hash is derived from unique block content and anchors
// freshness by itself).
type Request struct {
	UserData  []byte
	Nonce     []byte
	PublicKey []byte
}

// Device issues signed attestation documents binding the request contents to
// the identity of the enclave. Implementations do not interpret the document;
// it is forwarded verbatim to the caller.
type Device interface {
	Attest(req Request) ([]byte, error)
}
