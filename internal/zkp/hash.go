package zkp

import (
	"encoding/binary"
	"math/big"

	"golang.org/x/crypto/blake2b"
)

// UserHash is a 64-bit digest of the canonical serialisation of a
// PublicKey, used as the stable primary key for voter state. Collision
// probability is treated as negligible for the intended scale.
type UserHash uint64

// Hash computes pk's UserHash: BLAKE2b-256 over the canonical, big-endian,
// length-prefixed serialisation of (A, B, Alpha, Beta), truncated to the
// first 8 bytes read as a big-endian uint64.
func (pk *PublicKey) Hash() UserHash {
	digest := blake2b.Sum256(pk.canonicalBytes())
	return UserHash(binary.BigEndian.Uint64(digest[:8]))
}

// canonicalBytes serialises (A, B, Alpha, Beta) in that fixed order, each
// value preceded by a 2-byte big-endian length prefix. A 2-byte prefix
// never truncates: every component is bounded by the group's 1024-bit
// modulus, well under 2^16 bytes.
func (pk *PublicKey) canonicalBytes() []byte {
	var out []byte
	for _, v := range []*big.Int{pk.A, pk.B, pk.Alpha, pk.Beta} {
		b := v.Bytes()
		var lenPrefix [2]byte
		binary.BigEndian.PutUint16(lenPrefix[:], uint16(len(b)))
		out = append(out, lenPrefix[:]...)
		out = append(out, b...)
	}
	return out
}

// Bytes returns the big-endian, minimum-length encodings of (a, b, alpha,
// beta) in that order, matching the wire layout in the RPC schema.
func (pk *PublicKey) Bytes() (a, b, alpha, beta []byte) {
	return pk.A.Bytes(), pk.B.Bytes(), pk.Alpha.Bytes(), pk.Beta.Bytes()
}
