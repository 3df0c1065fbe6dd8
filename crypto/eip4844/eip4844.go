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

// Package eip4844 implements the KZG commitment checks the prover runs over
// EIP-4844 blob data before attesting a block.
package eip4844

import (
	"crypto/sha256"
	"fmt"
	"sync"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	gokzg4844 "github.com/crate-crypto/go-eth-kzg"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/log"
	"github.com/taikoxyz/nitro-prover/input"
)

// VersionedHashVersionKZG is the version tag overwriting the first byte of a
// commitment hash, per EIP-4844.
const VersionedHashVersionKZG = 0x01

// BlobSize is the serialized size of one blob in bytes.
const BlobSize = gokzg4844.ScalarsPerBlob * gokzg4844.SerializedScalarSize

type (
	// KzgGroup is a compressed BLS12-381 G1 point (commitment or proof).
	KzgGroup [48]byte

	// KzgField is a serialized BLS12-381 scalar field element.
	KzgField [32]byte
)

var (
	setupOnce       sync.Once
	mainnetSettings *gokzg4844.Context
	mainnetErr      error
)

// MainnetKzgSettings returns the process-wide kzg settings built from the
// embedded mainnet ceremony parameters. The context is constructed once and
// shared read-only by every verification call; a construction failure is
// cached and returned to every caller, since no commitment check can be
// trusted without valid parameters.
func MainnetKzgSettings() (*gokzg4844.Context, error) {
	setupOnce.Do(func() {
		mainnetSettings, mainnetErr = gokzg4844.NewContext4096Secure()
		if mainnetErr != nil {
			mainnetErr = fmt.Errorf("%w: %v", ErrLoadTrustedSetup, mainnetErr)
		}
	})
	return mainnetSettings, mainnetErr
}

// SettingsFor resolves the kzg settings for one guest input: the input's own
// override when present, the shared mainnet settings otherwise. Building a
// context from an override is costly and expected only on test networks.
func SettingsFor(g *input.GuestInput) (*gokzg4844.Context, error) {
	if g.Taiko.KzgSettings != nil {
		log.Warn("Initializing kzg settings from guest input", "block", g.BlockNumber)
		ctx, err := gokzg4844.NewContext4096(g.Taiko.KzgSettings)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrLoadTrustedSetup, err)
		}
		return ctx, nil
	}
	return MainnetKzgSettings()
}

// ProofOfEquivalence binds the input blob to its polynomial evaluation at a
// point derived from the blob's own hash. It returns nil when blob
// verification is administratively skipped.
func ProofOfEquivalence(g *input.GuestInput) (*KzgField, error) {
	if g.Taiko.SkipVerifyBlob {
		return nil, nil
	}
	settings, err := SettingsFor(g)
	if err != nil {
		return nil, err
	}
	y, err := ProofOfEquivalenceEval(g.Taiko.TxData, settings)
	if err != nil {
		return nil, err
	}
	return &y, nil
}

// ProofOfEquivalenceEval evaluates the blob's polynomial at the point derived
// from SHA-256 of the raw blob bytes, mapped into the scalar field. The
// result can be checked against an independently computed evaluation of the
// same blob.
func ProofOfEquivalenceEval(blob []byte, settings *gokzg4844.Context) (KzgField, error) {
	fields, err := blobFromBytes(blob)
	if err != nil {
		return KzgField{}, err
	}
	digest := sha256.Sum256(blob)
	point := hashToBlsField(digest)

	// y = p(x); the opening proof at x is discarded, only the claim matters.
	_, claim, err := settings.ComputeKZGProof(fields, point, 0)
	if err != nil {
		return KzgField{}, fmt.Errorf("%w: %v", ErrEvaluatePolynomial, err)
	}
	return KzgField(claim), nil
}

// ProofOfVersionHash computes the versioned hash of the input blob's
// commitment. It returns nil when blob verification is administratively
// skipped.
func ProofOfVersionHash(g *input.GuestInput) (*common.Hash, error) {
	if g.Taiko.SkipVerifyBlob {
		return nil, nil
	}
	fields, err := blobFromBytes(g.Taiko.TxData)
	if err != nil {
		return nil, err
	}
	settings, err := SettingsFor(g)
	if err != nil {
		return nil, err
	}
	commitment, err := settings.BlobToKZGCommitment(fields, 0)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrComputeKzgProof, err)
	}
	hash := CommitmentToVersionedHash(KzgGroup(commitment))
	return &hash, nil
}

// BlobProofCommitment computes the blob's commitment and the opening proof at
// the Fiat-Shamir challenge derived from the blob and commitment. The pair is
// what a verifier needs to confirm the blob matches the commitment without
// re-deriving the polynomial. Both outputs are deterministic for a fixed blob
// and settings.
func BlobProofCommitment(blob []byte, settings *gokzg4844.Context) (proof, commitment KzgGroup, err error) {
	fields, err := blobFromBytes(blob)
	if err != nil {
		return KzgGroup{}, KzgGroup{}, err
	}
	c, err := settings.BlobToKZGCommitment(fields, 0)
	if err != nil {
		return KzgGroup{}, KzgGroup{}, fmt.Errorf("%w: %v", ErrComputeKzgProof, err)
	}
	p, err := settings.ComputeBlobKZGProof(fields, c, 0)
	if err != nil {
		return KzgGroup{}, KzgGroup{}, fmt.Errorf("%w: %v", ErrComputeKzgProof, err)
	}
	return KzgGroup(p), KzgGroup(c), nil
}

// CommitmentToVersionedHash derives the canonical on-chain reference of a
// commitment: SHA-256 over the 48 commitment bytes with the first byte
// replaced by the kzg version tag.
func CommitmentToVersionedHash(commitment KzgGroup) common.Hash {
	hash := sha256.Sum256(commitment[:])
	hash[0] = VersionedHashVersionKZG
	return common.Hash(hash)
}

func blobFromBytes(data []byte) (*gokzg4844.Blob, error) {
	if len(data) != BlobSize {
		return nil, fmt.Errorf("%w: got %d bytes, want %d", ErrDeserializeBlob, len(data), BlobSize)
	}
	// Every 32-byte chunk must be a canonical scalar below the field modulus.
	var fe fr.Element
	for i := 0; i < len(data); i += gokzg4844.SerializedScalarSize {
		if err := fe.SetBytesCanonical(data[i : i+gokzg4844.SerializedScalarSize]); err != nil {
			return nil, fmt.Errorf("%w: field element %d: %v", ErrDeserializeBlob, i/gokzg4844.SerializedScalarSize, err)
		}
	}
	blob := new(gokzg4844.Blob)
	copy(blob[:], data)
	return blob, nil
}

// hashToBlsField maps a 32-byte digest into the scalar field by modular
// reduction, yielding a canonical serialized scalar.
func hashToBlsField(digest [32]byte) gokzg4844.Scalar {
	var x fr.Element
	x.SetBytes(digest[:])
	return gokzg4844.Scalar(x.Bytes())
}
