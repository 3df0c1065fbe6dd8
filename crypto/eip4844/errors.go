package eip4844

import (
	"errors"
)

var (
	// Blob handling errors
	ErrDeserializeBlob    = errors.New("failed to deserialize blob to field elements")
	ErrEvaluatePolynomial = errors.New("failed to evaluate polynomial at hashed point")
	ErrComputeKzgProof    = errors.New("failed to compute kzg proof")

	// Trusted setup errors
	ErrLoadTrustedSetup = errors.New("failed to load kzg trusted setup")
)
