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

// Package input defines the wire objects exchanged with the prover service.
package input

import (
	gokzg4844 "github.com/crate-crypto/go-eth-kzg"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
)

// GuestInput is the block-processing input delivered to the enclave. Only the
// fields read by the prover are declared here; the host side may carry more.
type GuestInput struct {
	BlockNumber uint64          `json:"block_number"`
	BlockHeader *types.Header   `json:"block_header,omitempty"`
	Taiko       TaikoGuestInput `json:"taiko"`
}

// TaikoGuestInput carries the L2-specific part of the guest input.
type TaikoGuestInput struct {
	// SkipVerifyBlob disables the in-enclave blob commitment check when the
	// operator has verified the blob out of band.
	SkipVerifyBlob bool `json:"skip_verify_blob"`

	// TxData is the raw EIP-4844 blob holding the block's transaction list.
	TxData hexutil.Bytes `json:"tx_data"`

	// KzgSettings optionally overrides the built-in mainnet trusted setup,
	// e.g. for test networks. Nil selects the process-wide mainnet setup.
	KzgSettings *gokzg4844.JSONTrustedSetup `json:"kzg_settings,omitempty"`
}

// Proof is the result returned to the host: the attestation document issued
// by the hardware for one processed block, forwarded verbatim.
type Proof struct {
	Proof hexutil.Bytes `json:"proof"`
}
