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

// Package pipeline is the block-processing collaborator of the prover: it
// checks the guest input's blob against its kzg commitment, records the
// resulting (versioned hash, proof) pair, and derives the protocol-instance
// hash consumed by the attestation step.
package pipeline

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/log"
	"github.com/taikoxyz/nitro-prover/crypto/eip4844"
	"github.com/taikoxyz/nitro-prover/input"
)

var (
	ErrNoHeader       = errors.New("guest input carries no block header")
	ErrHeaderMismatch = errors.New("header number does not match guest input block number")
)

// Pipeline validates guest inputs and feeds the commitment-proof cache.
type Pipeline struct {
	cache *eip4844.ProofCache
}

// New returns a pipeline writing to the given cache.
func New(cache *eip4844.ProofCache) *Pipeline {
	return &Pipeline{cache: cache}
}

// Build validates the input and returns its block header. Unless the skip
// flag is set, the blob is checked against its commitment and the resulting
// pair is stored for the instance-hash step.
func (p *Pipeline) Build(g *input.GuestInput) (*types.Header, error) {
	if g.BlockHeader == nil {
		return nil, ErrNoHeader
	}
	if g.BlockHeader.Number == nil || g.BlockHeader.Number.Uint64() != g.BlockNumber {
		return nil, ErrHeaderMismatch
	}
	if !g.Taiko.SkipVerifyBlob {
		settings, err := eip4844.SettingsFor(g)
		if err != nil {
			return nil, err
		}
		proof, commitment, err := eip4844.BlobProofCommitment(g.Taiko.TxData, settings)
		if err != nil {
			return nil, fmt.Errorf("verify blob for block %d: %w", g.BlockNumber, err)
		}
		p.cache.Set(proof, commitment)
		log.Debug("Blob commitment verified", "block", g.BlockNumber,
			"versionedHash", eip4844.CommitmentToVersionedHash(commitment))
	}
	return g.BlockHeader, nil
}

// InstanceHash summarizes the processed block and its verification context.
// The cached (versioned hash, proof) pair enters the hash, so the attestation
// commits to the blob-verification decision made for this block.
func (p *Pipeline) InstanceHash(g *input.GuestInput, header *types.Header) (common.Hash, error) {
	versionedHash, proof := p.cache.Get()
	var num [8]byte
	binary.BigEndian.PutUint64(num[:], g.BlockNumber)
	return crypto.Keccak256Hash(header.Hash().Bytes(), versionedHash.Bytes(), proof[:], num[:]), nil
}
