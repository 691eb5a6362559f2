// Package client is the byte-vector-in/byte-vector-out facade a foreign
// runtime (a terminal client, a browser binding) uses to drive the
// Chaum-Pedersen protocol without linking against math/big or knowing the
// group representation. No server state crosses this boundary: every
// function here depends only on its arguments and, for key generation,
// derivation and commitment, on fresh randomness from crypto/rand.
package client

import (
	"math/big"

	"github.com/kymani37299/anonvote/internal/zkp"
)

// GroupProfile selects which group the bindings operate over.
type GroupProfile int

const (
	// Production selects the RFC-5114-style 1024-bit group.
	Production GroupProfile = iota
	// Tiny selects the deterministic (P=23, Q=11, alpha=4) profile.
	Tiny
)

func resolveGroup(profile GroupProfile) zkp.GroupParams {
	if profile == Tiny {
		return zkp.Tiny()
	}
	return zkp.Production()
}

// GenerateSecretKey returns a fresh secret scalar x as big-endian bytes.
func GenerateSecretKey(profile GroupProfile) ([]byte, error) {
	sk, err := zkp.GenerateSecretKey(resolveGroup(profile), nil)
	if err != nil {
		return nil, err
	}
	return sk.X().Bytes(), nil
}

// DerivePublicKey derives (a, b, alpha, beta) from secretKey's raw bytes.
func DerivePublicKey(profile GroupProfile, secretKey []byte) (a, b, alpha, beta []byte, err error) {
	group := resolveGroup(profile)
	sk := zkp.SecretKeyFromBytes(group, secretKey)
	pk, err := sk.PublicKey(nil)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	a, b, alpha, beta = pk.Bytes()
	return a, b, alpha, beta, nil
}

// Commit samples a fresh ephemeral commitment over the public key described
// by (a, b, alpha, beta), returning the ephemeral secret k and the
// commitment pair (ka, kb), all as big-endian bytes.
func Commit(profile GroupProfile, a, b, alpha, beta []byte) (k, ka, kb []byte, err error) {
	group := resolveGroup(profile)
	pk, err := zkp.NewPublicKey(group,
		new(big.Int).SetBytes(a), new(big.Int).SetBytes(b),
		new(big.Int).SetBytes(alpha), new(big.Int).SetBytes(beta), false)
	if err != nil {
		return nil, nil, nil, err
	}
	commit, err := pk.Commit(nil)
	if err != nil {
		return nil, nil, nil, err
	}
	return commit.K.Bytes(), commit.Ka.Bytes(), commit.Kb.Bytes(), nil
}

// Solve computes s = (k - c*x) mod Q for secretKey's x, given the ephemeral
// k and server challenge c, both as big-endian bytes.
func Solve(profile GroupProfile, secretKey, k, c []byte) []byte {
	group := resolveGroup(profile)
	sk := zkp.SecretKeyFromBytes(group, secretKey)
	s := sk.Solve(new(big.Int).SetBytes(k), new(big.Int).SetBytes(c))
	return s.Bytes()
}
