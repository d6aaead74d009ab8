// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package digest computes the content hashes used to key and verify cached
// effects.
//
// The algorithm is BLAKE2b-256. Sum is stateless; Hasher is a streaming
// hasher owned by a single caller.
package digest

import (
	"encoding/hex"
	"hash"

	"golang.org/x/crypto/blake2b"
)

// Size is the length of a Digest in bytes.
const Size = blake2b.Size256

// Digest is a fixed-length content hash.
type Digest [Size]byte

// String returns the lowercase hex encoding of d.
func (d Digest) String() string {
	return hex.EncodeToString(d[:])
}

// Sum returns the digest of data.
func Sum(data []byte) Digest {
	return blake2b.Sum256(data)
}

// SumString returns the digest of s.
func SumString(s string) Digest {
	return Sum([]byte(s))
}

// Parse decodes a hex-encoded digest.
func Parse(s string) (Digest, bool) {
	var d Digest
	b, err := hex.DecodeString(s)
	if err != nil || len(b) != Size {
		return d, false
	}
	copy(d[:], b)
	return d, true
}

// Hasher computes a digest over data written in pieces.
type Hasher struct {
	h hash.Hash
}

// New returns a Hasher.
func New() *Hasher {
	// blake2b.New256 only fails for keys longer than 64 bytes.
	h, _ := blake2b.New256(nil)
	return &Hasher{h: h}
}

// Write adds p to the hashed data. It never returns an error.
func (h *Hasher) Write(p []byte) (int, error) {
	return h.h.Write(p)
}

// WriteString adds s to the hashed data.
func (h *Hasher) WriteString(s string) {
	_, _ = h.h.Write([]byte(s))
}

// Sum returns the digest of the data written so far.
func (h *Hasher) Sum() Digest {
	var d Digest
	h.h.Sum(d[:0])
	return d
}
