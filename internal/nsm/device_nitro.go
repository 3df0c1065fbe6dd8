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
	"errors"
	"fmt"

	hfnsm "github.com/hf/nsm"
	"github.com/hf/nsm/request"
)

// NitroDevice implements Device against the /dev/nsm character device
// available inside a Nitro enclave. A session is opened per request and
// closed before returning; the device call blocks without timeout.
type NitroDevice struct{}

// Attest sends one attestation request to the NSM and returns the signed
// document.
func (NitroDevice) Attest(req Request) ([]byte, error) {
	sess, err := hfnsm.OpenDefaultSession()
	if err != nil {
		return nil, fmt.Errorf("open nsm session: %w", err)
	}
	defer sess.Close()

	res, err := sess.Send(&request.Attestation{
		Nonce:     req.Nonce,
		UserData:  req.UserData,
		PublicKey: req.PublicKey,
	})
	if err != nil {
		return nil, fmt.Errorf("send attestation request: %w", err)
	}
	if res.Error != "" {
		return nil, errors.New("nsm device error: " + string(res.Error))
	}
	if res.Attestation == nil || res.Attestation.Document == nil {
		return nil, ErrNoDocument
	}
	return res.Attestation.Document, nil
}
