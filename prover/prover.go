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

// Package prover generates hardware-backed attestations over processed
// blocks.
package prover

import (
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/log"
	"github.com/taikoxyz/nitro-prover/input"
	"github.com/taikoxyz/nitro-prover/internal/nsm"
)

var (
	// ErrGuest wraps any failure of the block-processing, signing or
	// attestation steps; callers receive it with the step diagnostic
	// attached.
	ErrGuest = errors.New("guest error")

	// ErrBlobVerificationRequired is returned when a block arrives without
	// the skip-verification consent flag. Attestation is produced only for
	// blocks whose blob check was explicitly bypassed by the operator.
	ErrBlobVerificationRequired = errors.New("blob verification not skipped for this block")
)

// BlockBuilder runs the block-processing pipeline over a guest input and
// returns the resulting header.
type BlockBuilder interface {
	Build(g *input.GuestInput) (*types.Header, error)
}

// InstanceHasher derives the protocol-instance hash for a processed block.
// The derivation algorithm is owned by the collaborator; the prover treats
// the hash as opaque.
type InstanceHasher interface {
	InstanceHash(g *input.GuestInput, header *types.Header) (common.Hash, error)
}

// Prover binds a signed statement about a processed block to the identity of
// the enclave, via an attestation from the hardware device. Calls are
// sequential; nothing is retried and no partial result is ever returned.
type Prover struct {
	device  nsm.Device
	builder BlockBuilder
	hasher  InstanceHasher
}

// New wires a prover from its collaborators.
func New(device nsm.Device, builder BlockBuilder, hasher InstanceHasher) *Prover {
	return &Prover{device: device, builder: builder, hasher: hasher}
}

// Prove processes one guest input and returns the attestation document as the
// proof artifact.
//
// The signing key is generated fresh for every call and discarded with the
// call's stack; the hardware's own identity is the trust anchor, the
// ephemeral key only binds the signature to this one document.
func (p *Prover) Prove(g *input.GuestInput) (input.Proof, error) {
	if !g.Taiko.SkipVerifyBlob {
		log.Warn("Blob verification not skipped, refusing to attest", "block", g.BlockNumber)
		return input.Proof{}, ErrBlobVerificationRequired
	}

	header, err := p.builder.Build(g)
	if err != nil {
		return input.Proof{}, fmt.Errorf("%w: build block %d: %v", ErrGuest, g.BlockNumber, err)
	}
	piHash, err := p.hasher.InstanceHash(g, header)
	if err != nil {
		return input.Proof{}, fmt.Errorf("%w: protocol instance hash: %v", ErrGuest, err)
	}
	log.Info("Protocol instance data to be signed", "block", g.BlockNumber, "hash", piHash)

	key, err := crypto.GenerateKey()
	if err != nil {
		return input.Proof{}, fmt.Errorf("%w: generate ephemeral key: %v", ErrGuest, err)
	}
	signature, err := crypto.Sign(piHash.Bytes(), key)
	if err != nil {
		return input.Proof{}, fmt.Errorf("%w: sign protocol instance hash: %v", ErrGuest, err)
	}

	document, err := p.device.Attest(nsm.Request{
		UserData:  signature,
		Nonce:     nil,
		PublicKey: crypto.FromECDSAPub(&key.PublicKey),
	})
	if err != nil {
		return input.Proof{}, fmt.Errorf("%w: collect attestation document: %v", ErrGuest, err)
	}
	return input.Proof{Proof: document}, nil
}
