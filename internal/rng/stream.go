// Package rng implements the deterministic, keyed-fork random stream tree
// used throughout generation. A Stream never draws sequentially from a
// parent; every child is derived by hashing a namespace/seed/key tuple, so
// adding a new named fork anywhere in the pipeline cannot perturb any other
// stream.
package rng

import (
	"encoding/binary"
	"fmt"

	"golang.org/x/crypto/blake2b"
)

const rootNamespace = "terrain-ms0"

// Stream is an immutable point in the RNG fork tree.
type Stream struct {
	Seed      uint64
	Namespace string
}

// NewRootStream builds the root stream from a canonical seed hash.
func NewRootStream(seedHash uint64) Stream {
	return Stream{Seed: seedHash, Namespace: rootNamespace}
}

// Fork derives a labeled child stream. Key must be non-empty; forking is
// pure and order-independent (the same key always yields the same child
// regardless of how many other forks were taken from the same parent).
func (s Stream) Fork(key string) (Stream, error) {
	if key == "" {
		return Stream{}, fmt.Errorf("rng: fork key must not be empty")
	}
	payload := fmt.Sprintf("%s:%d:%s", s.Namespace, s.Seed, key)
	childSeed := keyedHash64(payload, "rngfork00")
	return Stream{Seed: childSeed, Namespace: s.Namespace}, nil
}

// MustFork forks and panics on error; reserved for fork keys that are
// compile-time string literals, never user input.
func (s Stream) MustFork(key string) Stream {
	child, err := s.Fork(key)
	if err != nil {
		panic(err)
	}
	return child
}

// Generator returns a PCG64-backed generator seeded from this stream.
func (s Stream) Generator() *PCG64 {
	return NewPCG64(s.Seed, streamIncrement(s))
}

// streamIncrement derives the PCG64 odd increment from the stream identity,
// so two streams with the same seed but different namespaces never produce
// identical sequences.
func streamIncrement(s Stream) uint64 {
	payload := fmt.Sprintf("inc:%s:%d", s.Namespace, s.Seed)
	h := keyedHash64(payload, "rngstrinc")
	return h | 1
}

// KeyedHash64 computes a BLAKE2b-64 digest of payload personalized with the
// given tag and returns it as a big-endian u64. Exported so internal/seedgen
// can use the same primitive for canonical seed hashing (personalization
// "terrainm0") without duplicating the BLAKE2b plumbing.
func KeyedHash64(payload, personalization string) uint64 {
	return keyedHash64(payload, personalization)
}

// keyedHash64 computes a BLAKE2b-64 keyed digest of payload and returns it
// as a big-endian u64, matching the seed/fork hashing contract.
func keyedHash64(payload, personalization string) uint64 {
	cfg := &blake2b.Config{Size: 8, Person: []byte(personalization)}
	h, err := blake2b.New(cfg)
	if err != nil {
		panic(err)
	}
	h.Write([]byte(payload))
	sum := h.Sum(nil)
	return binary.BigEndian.Uint64(sum)
}
