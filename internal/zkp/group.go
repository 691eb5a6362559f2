// Package zkp implements a Chaum-Pedersen zero-knowledge identification
// protocol over a Schnorr-style prime-order subgroup of Z*_p.
//
// Glossary (conventions used throughout this package's comments):
//
//	P      large prime modulus
//	Q      prime order of the subgroup generated by Alpha (Q | (P-1))
//	Alpha  generator of the order-Q subgroup
//	x      secret key, 0 < x < Q
//	r      fresh per-keypair scalar used to derive the second base (Beta)
//	k      ephemeral commitment secret
//	c      verifier challenge
//	s      prover's solution
//
// Sampled scalars (x, r, k, c) are drawn from [0, Q) or [1, Q); Verify uses
// s and c exactly as supplied. All group elements are reduced mod P.
// NewPublicKey validates a, b and beta to lie in [1, P); the commitment
// pair (ka, kb) is not range-checked before Verify compares it.
package zkp

import (
	"crypto/rand"
	"fmt"
	"io"
	"math/big"
)

// GroupParams is the immutable (P, Q, Alpha) triple defining the group the
// protocol runs over. The zero value is not valid; always construct one via
// Production, Tiny, or Custom.
type GroupParams struct {
	P     *big.Int
	Q     *big.Int
	Alpha *big.Int
}

// Production returns the 1024-bit MODP group with 160-bit prime-order
// subgroup from RFC 5114 §2.1. These constants MUST stay byte-identical
// across every build of this package, or cross-client interoperability is
// lost.
func Production() GroupParams {
	return GroupParams{
		P:     mustHex(productionPHex),
		Q:     mustHex(productionQHex),
		Alpha: mustHex(productionAlphaHex),
	}
}

// Tiny returns the deterministic (P=23, Q=11, Alpha=4) profile used for
// tests and interactive experimentation. It is never safe for production
// use; its only property of interest is that every operation in this
// package stays correct at a size small enough to verify by hand.
func Tiny() GroupParams {
	return GroupParams{
		P:     big.NewInt(23),
		Q:     big.NewInt(11),
		Alpha: big.NewInt(4),
	}
}

// Custom builds a GroupParams from caller-supplied values. It does not
// validate primality or subgroup membership; callers who need that
// guarantee should stick to Production or Tiny.
func Custom(p, q, alpha *big.Int) GroupParams {
	return GroupParams{P: p, Q: q, Alpha: alpha}
}

func mustHex(h string) *big.Int {
	n, ok := new(big.Int).SetString(h, 16)
	if !ok {
		panic(fmt.Sprintf("zkp: malformed group constant %q", h))
	}
	return n
}

// randScalar draws a uniform value in [0, n) using a cryptographic RNG.
// Tests may inject a deterministic io.Reader; production always passes nil,
// which falls back to crypto/rand.Reader.
func randScalar(rng io.Reader, n *big.Int) (*big.Int, error) {
	if rng == nil {
		rng = rand.Reader
	}
	return rand.Int(rng, n)
}

// RFC 5114 §2.1: 1024-bit MODP Group with 160-bit Prime Order Subgroup.
const (
	productionPHex     = "B10B8F96A080E01DDE92DE5EAE5D54EC52C99FBCFB06A3C69A6A9DCA52D23B616073E28675A23D189838EF1E2EE652C013ECB4AEA906112324975C3CD49B83BFACCBDD7D90C4BD7098488E9C219A73724EFFD6FAE5644738FAA31A4FF55BCCC0A151AF5F0DC8B4BD45BF37DF365C1A65E68CFDA76D4DA708DF1FB2BC2E4A4371"
	productionQHex     = "F518AA8781A8DF278ABA4E7D64B7CB9D49462353"
	productionAlphaHex = "A4D1CBD5C3FD34126765A442EFB99905F8104DD258AC507FD6406CFF14266D31266FEA1E5C41564B777E690F5504F213160217B4B01B886A5E91547F9E2749F4D7FBD7D3B9A92EE1909D0D2263F80A76A6A24C087A091F531DBF0A0169B6A28AD662A4D18E73AFA32D779D5918D08BC8858F4DCEF97C2A24855E6EEB22B3B2E5"
)
