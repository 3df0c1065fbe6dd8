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
	"sync"

	"github.com/ethereum/go-ethereum/common"
)

// ProofCache holds the most recently computed (versioned hash, proof) pair
// for consumption by the protocol-instance hash step. The two fields are
// always replaced together: a reader never observes a hash derived from one
// commitment next to a proof for another.
//
// The cache is constructed once by the service and passed by handle to the
// components that write and read it.
type ProofCache struct {
	mu            sync.RWMutex
	versionedHash common.Hash
	proof         KzgGroup
}

// NewProofCache returns an empty cache holding the zero pair.
func NewProofCache() *ProofCache {
	return &ProofCache{}
}

// Set derives the versioned hash of commitment and replaces the cached pair
// atomically. Concurrent readers block until the write completes.
func (c *ProofCache) Set(proof, commitment KzgGroup) {
	hash := CommitmentToVersionedHash(commitment)
	c.mu.Lock()
	c.versionedHash = hash
	c.proof = proof
	c.mu.Unlock()
}

// Get copies out the current pair under a shared read lock.
func (c *ProofCache) Get() (common.Hash, KzgGroup) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.versionedHash, c.proof
}
