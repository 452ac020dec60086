package id

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
)

// Prefix of every human-facing application identifier.
const Prefix = "APP"

// NewApplicationID returns Prefix plus exactly 4 random digits, zero-padded
// (e.g. "APP0042"). The keyspace is deliberately small and collisions are
// expected: the store's unique constraint rejects them and the caller retries.
func NewApplicationID() string {
	var b [8]byte
	_, _ = rand.Read(b[:])
	n := binary.BigEndian.Uint64(b[:]) % 10000
	return fmt.Sprintf("%s%04d", Prefix, n)
}
