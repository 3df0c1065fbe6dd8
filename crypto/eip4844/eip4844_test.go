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

package eip4844

import (
	"bytes"
	"crypto/sha256"
	"encoding/json"
	"errors"
	"testing"

	gokzg4844 "github.com/crate-crypto/go-eth-kzg"
	"github.com/taikoxyz/nitro-prover/input"
)

// Versioned hash of the zero blob's commitment under the mainnet setup.
const zeroBlobVersionedHash = "0x010657f37554c781402a22917dee2f75def7ab966d7b770905398eba3c444014"

func testSettings(t *testing.T) *gokzg4844.Context {
	t.Helper()
	settings, err := MainnetKzgSettings()
	if err != nil {
		t.Fatalf("Failed to load mainnet kzg settings: %v", err)
	}
	return settings
}

// testBlob builds a valid blob whose 32-byte scalars all stay below the field
// modulus by keeping every leading byte zero.
func testBlob(pattern byte) []byte {
	blob := make([]byte, BlobSize)
	for i := 0; i < len(blob); i += 32 {
		for j := 1; j < 32; j++ {
			blob[i+j] = pattern
		}
	}
	return blob
}

func TestCommitmentToVersionedHash(t *testing.T) {
	for _, b := range []byte{0x00, 0x01, 0xc0, 0xff} {
		var commitment KzgGroup
		for i := range commitment {
			commitment[i] = b
		}
		hash := CommitmentToVersionedHash(commitment)
		if hash[0] != VersionedHashVersionKZG {
			t.Errorf("version byte is %#x, want %#x", hash[0], VersionedHashVersionKZG)
		}
		want := sha256.Sum256(commitment[:])
		if !bytes.Equal(hash[1:], want[1:]) {
			t.Errorf("hash body does not match sha256 of commitment")
		}
		if again := CommitmentToVersionedHash(commitment); again != hash {
			t.Errorf("hash not deterministic: %x vs %x", again, hash)
		}
	}
}

func TestZeroBlobVersionedHash(t *testing.T) {
	settings := testSettings(t)
	_, commitment, err := BlobProofCommitment(make([]byte, BlobSize), settings)
	if err != nil {
		t.Fatalf("Failed to compute zero blob commitment: %v", err)
	}
	if got := CommitmentToVersionedHash(commitment).Hex(); got != zeroBlobVersionedHash {
		t.Errorf("zero blob versioned hash is %s, want %s", got, zeroBlobVersionedHash)
	}
}

func TestSkipVerifyBlob(t *testing.T) {
	// Skip must win even over a blob that could never deserialize.
	g := &input.GuestInput{
		BlockNumber: 7,
		Taiko: input.TaikoGuestInput{
			SkipVerifyBlob: true,
			TxData:         []byte{0xde, 0xad},
		},
	}
	field, err := ProofOfEquivalence(g)
	if err != nil || field != nil {
		t.Errorf("ProofOfEquivalence under skip = (%v, %v), want (nil, nil)", field, err)
	}
	hash, err := ProofOfVersionHash(g)
	if err != nil || hash != nil {
		t.Errorf("ProofOfVersionHash under skip = (%v, %v), want (nil, nil)", hash, err)
	}
}

func TestProofOfVersionHash(t *testing.T) {
	g := &input.GuestInput{
		Taiko: input.TaikoGuestInput{TxData: make([]byte, BlobSize)},
	}
	hash, err := ProofOfVersionHash(g)
	if err != nil {
		t.Fatalf("ProofOfVersionHash failed: %v", err)
	}
	if hash.Hex() != zeroBlobVersionedHash {
		t.Errorf("versioned hash is %s, want %s", hash.Hex(), zeroBlobVersionedHash)
	}
}

func TestBlobProofCommitmentDeterministic(t *testing.T) {
	settings := testSettings(t)
	blob := testBlob(0x5a)

	proof1, commitment1, err := BlobProofCommitment(blob, settings)
	if err != nil {
		t.Fatalf("BlobProofCommitment failed: %v", err)
	}
	proof2, commitment2, err := BlobProofCommitment(blob, settings)
	if err != nil {
		t.Fatalf("BlobProofCommitment failed on second call: %v", err)
	}
	if proof1 != proof2 || commitment1 != commitment2 {
		t.Errorf("repeated calls not byte-identical")
	}

	fields, err := blobFromBytes(blob)
	if err != nil {
		t.Fatalf("blobFromBytes failed: %v", err)
	}
	if err := settings.VerifyBlobKZGProof(fields, gokzg4844.KZGCommitment(commitment1), gokzg4844.KZGProof(proof1)); err != nil {
		t.Errorf("computed blob proof does not verify: %v", err)
	}
}

func TestProofOfEquivalenceEval(t *testing.T) {
	settings := testSettings(t)
	blob := testBlob(0x11)

	y, err := ProofOfEquivalenceEval(blob, settings)
	if err != nil {
		t.Fatalf("ProofOfEquivalenceEval failed: %v", err)
	}

	// The claim must be the polynomial's value at the blob-hash point and
	// verify against the commitment with the opening proof at that point.
	fields, err := blobFromBytes(blob)
	if err != nil {
		t.Fatalf("blobFromBytes failed: %v", err)
	}
	point := hashToBlsField(sha256.Sum256(blob))
	proof, claim, err := settings.ComputeKZGProof(fields, point, 0)
	if err != nil {
		t.Fatalf("ComputeKZGProof failed: %v", err)
	}
	if KzgField(claim) != y {
		t.Errorf("evaluation result %x does not match claim %x", y, claim)
	}
	commitment, err := settings.BlobToKZGCommitment(fields, 0)
	if err != nil {
		t.Fatalf("BlobToKZGCommitment failed: %v", err)
	}
	if err := settings.VerifyKZGProof(commitment, point, claim, proof); err != nil {
		t.Errorf("opening proof does not verify: %v", err)
	}
}

func TestKzgSettingsOverride(t *testing.T) {
	// A caller-supplied setup takes precedence over the mainnet singleton;
	// one that cannot be parsed into a context must fail setup loading
	// before any blob math runs.
	var setup gokzg4844.JSONTrustedSetup
	if err := json.Unmarshal([]byte(`{"g1_lagrange":["0xc0"],"g2_monomial":["0xc0"]}`), &setup); err != nil {
		t.Fatalf("Failed to unmarshal setup fixture: %v", err)
	}
	g := &input.GuestInput{
		Taiko: input.TaikoGuestInput{
			TxData:      make([]byte, BlobSize),
			KzgSettings: &setup,
		},
	}
	if _, err := ProofOfVersionHash(g); !errors.Is(err, ErrLoadTrustedSetup) {
		t.Errorf("ProofOfVersionHash with bad override: got %v, want ErrLoadTrustedSetup", err)
	}
	if _, err := ProofOfEquivalence(g); !errors.Is(err, ErrLoadTrustedSetup) {
		t.Errorf("ProofOfEquivalence with bad override: got %v, want ErrLoadTrustedSetup", err)
	}
	if _, err := SettingsFor(g); !errors.Is(err, ErrLoadTrustedSetup) {
		t.Errorf("SettingsFor with bad override: got %v, want ErrLoadTrustedSetup", err)
	}
}

func TestMalformedBlob(t *testing.T) {
	settings := testSettings(t)

	if _, err := ProofOfEquivalenceEval(make([]byte, 17), settings); !errors.Is(err, ErrDeserializeBlob) {
		t.Errorf("short blob: got %v, want ErrDeserializeBlob", err)
	}
	if _, _, err := BlobProofCommitment(nil, settings); !errors.Is(err, ErrDeserializeBlob) {
		t.Errorf("nil blob: got %v, want ErrDeserializeBlob", err)
	}

	// Correct length but scalars above the field modulus fail the same way
	// short input does: as a deserialization error, in every operation.
	junk := make([]byte, BlobSize)
	for i := range junk {
		junk[i] = 0xff
	}
	if _, _, err := BlobProofCommitment(junk, settings); !errors.Is(err, ErrDeserializeBlob) {
		t.Errorf("non-canonical blob: got %v, want ErrDeserializeBlob", err)
	}
	if _, err := ProofOfEquivalenceEval(junk, settings); !errors.Is(err, ErrDeserializeBlob) {
		t.Errorf("non-canonical blob eval: got %v, want ErrDeserializeBlob", err)
	}
	g := &input.GuestInput{Taiko: input.TaikoGuestInput{TxData: junk}}
	if _, err := ProofOfVersionHash(g); !errors.Is(err, ErrDeserializeBlob) {
		t.Errorf("non-canonical blob version hash: got %v, want ErrDeserializeBlob", err)
	}
}
