package zkp

import (
	"fmt"
	"io"
	"math/big"
)

// ErrMalformedKey is returned whenever a PublicKey component lies outside
// [1, P), or Beta == 1, or (when the stricter check is enabled) Alpha
// disagrees with the group generator.
type ErrMalformedKey struct {
	Field  string
	Reason string
}

func (e *ErrMalformedKey) Error() string {
	return fmt.Sprintf("zkp: malformed key field %s: %s", e.Field, e.Reason)
}

// SecretKey is the integer x with 0 < x < Q. It is never transmitted; only
// the voter holds it.
type SecretKey struct {
	group GroupParams
	x     *big.Int
}

// GenerateSecretKey samples x uniformly in [1, Q) using rng (nil selects
// crypto/rand.Reader).
func GenerateSecretKey(group GroupParams, rng io.Reader) (*SecretKey, error) {
	x, err := randNonZeroScalar(rng, group.Q)
	if err != nil {
		return nil, fmt.Errorf("zkp: generate secret key: %w", err)
	}
	return &SecretKey{group: group, x: x}, nil
}

// SecretKeyFromBytes reconstructs a SecretKey from a big-endian scalar,
// e.g. one round-tripped through the byte-vector client bindings.
func SecretKeyFromBytes(group GroupParams, x []byte) *SecretKey {
	return &SecretKey{group: group, x: new(big.Int).SetBytes(x)}
}

// X returns the raw secret scalar. Exists for tests and for the byte-vector
// client bindings; production code should rarely need it directly.
func (s *SecretKey) X() *big.Int { return new(big.Int).Set(s.x) }

// PublicKey derives the (a, b, alpha, beta) tuple for s, sampling a fresh r
// uniformly in [1, Q) for beta = alpha^r mod P. r is resampled away from 0
// so beta never lands on 1, which the verifier invariant forbids anyway.
func (s *SecretKey) PublicKey(rng io.Reader) (*PublicKey, error) {
	r, err := randNonZeroScalar(rng, s.group.Q)
	if err != nil {
		return nil, fmt.Errorf("zkp: derive public key: %w", err)
	}
	beta := modExp(s.group.Alpha, r, s.group.P)
	return &PublicKey{
		group: s.group,
		A:     modExp(s.group.Alpha, s.x, s.group.P),
		B:     modExp(beta, s.x, s.group.P),
		Alpha: new(big.Int).Set(s.group.Alpha),
		Beta:  beta,
	}, nil
}

// Solve computes s = (k - c*x) mod Q, reported via non-negative arithmetic
// as specified: if k >= c*x the result is (k - c*x) mod Q directly, else it
// is Q - ((c*x - k) mod Q).
func (s *SecretKey) Solve(k, c *big.Int) *big.Int {
	q := s.group.Q
	cx := new(big.Int).Mul(c, s.x)

	if k.Cmp(cx) >= 0 {
		return new(big.Int).Mod(new(big.Int).Sub(k, cx), q)
	}
	diff := new(big.Int).Mod(new(big.Int).Sub(cx, k), q)
	if diff.Sign() == 0 {
		return big.NewInt(0)
	}
	return new(big.Int).Sub(q, diff)
}

// PublicKey is the four-tuple (A, B, Alpha, Beta) a voter registers with
// the server. A = Alpha^x mod P, B = Beta^x mod P, Beta = Alpha^r mod P for
// the keypair's own fresh r.
type PublicKey struct {
	group GroupParams
	A     *big.Int
	B     *big.Int
	Alpha *big.Int
	Beta  *big.Int
}

// NewPublicKey validates and wraps four externally-supplied components
// (e.g. decoded off the wire) into a PublicKey. requireGenerator, when
// true, additionally rejects a key whose Alpha differs from group.Alpha
// (the stricter behaviour flagged as an option in the design notes).
func NewPublicKey(group GroupParams, a, b, alpha, beta *big.Int, requireGenerator bool) (*PublicKey, error) {
	if err := validatePositiveBelow("a", a, group.P); err != nil {
		return nil, err
	}
	if err := validatePositiveBelow("b", b, group.P); err != nil {
		return nil, err
	}
	if err := validatePositiveBelow("beta", beta, group.P); err != nil {
		return nil, err
	}
	if beta.Cmp(big.NewInt(1)) == 0 {
		return nil, &ErrMalformedKey{Field: "beta", Reason: "must not equal 1"}
	}
	if requireGenerator && alpha.Cmp(group.Alpha) != 0 {
		return nil, &ErrMalformedKey{Field: "alpha", Reason: "does not match group generator"}
	}
	return &PublicKey{
		group: group,
		A:     new(big.Int).Set(a),
		B:     new(big.Int).Set(b),
		Alpha: new(big.Int).Set(alpha),
		Beta:  new(big.Int).Set(beta),
	}, nil
}

func validatePositiveBelow(field string, v, p *big.Int) error {
	if v == nil || v.Sign() <= 0 {
		return &ErrMalformedKey{Field: field, Reason: "must be > 0"}
	}
	if v.Cmp(p) >= 0 {
		return &ErrMalformedKey{Field: field, Reason: "must be < P"}
	}
	return nil
}

// GenerateChallenge draws the verifier's fresh challenge c uniformly in
// [0, Q).
func GenerateChallenge(group GroupParams, rng io.Reader) (*big.Int, error) {
	c, err := randScalar(rng, group.Q)
	if err != nil {
		return nil, fmt.Errorf("zkp: generate challenge: %w", err)
	}
	return c, nil
}

// ChallengeCommitment is the prover's first-move binding to an ephemeral k.
type ChallengeCommitment struct {
	K  *big.Int
	Ka *big.Int
	Kb *big.Int
}

// Commit samples a fresh ephemeral k uniformly in [0, Q) and returns
// (k, alpha^k mod P, beta^k mod P).
func (pk *PublicKey) Commit(rng io.Reader) (*ChallengeCommitment, error) {
	k, err := randScalar(rng, pk.group.Q)
	if err != nil {
		return nil, fmt.Errorf("zkp: commit: %w", err)
	}
	return &ChallengeCommitment{
		K:  k,
		Ka: modExp(pk.group.Alpha, k, pk.group.P),
		Kb: modExp(pk.Beta, k, pk.group.P),
	}, nil
}

// Verify reports whether (ka, kb, c, s) satisfy the Chaum-Pedersen identity
// against pk: ka == alpha^s * a^c (mod P) and kb == beta^s * b^c (mod P).
// ka and kb are never recomputed from anything other than the supplied
// values; only the right-hand sides are derived from pk, c, and s.
func (pk *PublicKey) Verify(ka, kb, c, s *big.Int) bool {
	p := pk.group.P
	lhsA := modExp(pk.group.Alpha, s, p)
	rhsA := modExp(pk.A, c, p)
	wantKa := new(big.Int).Mod(new(big.Int).Mul(lhsA, rhsA), p)

	lhsB := modExp(pk.Beta, s, p)
	rhsB := modExp(pk.B, c, p)
	wantKb := new(big.Int).Mod(new(big.Int).Mul(lhsB, rhsB), p)

	return ka.Cmp(wantKa) == 0 && kb.Cmp(wantKb) == 0
}

// modExp computes a^b mod n, treating "^" the same way the SRP-style group
// arithmetic this package descends from always has: a^b % n, with both
// operands reduced by the big.Int library itself.
func modExp(a, b, n *big.Int) *big.Int {
	return new(big.Int).Exp(a, b, n)
}

// randNonZeroScalar draws uniformly from [1, n) by rejection-sampling [0, n)
// for a non-zero result; n is assumed > 1.
func randNonZeroScalar(rng io.Reader, n *big.Int) (*big.Int, error) {
	for {
		v, err := randScalar(rng, n)
		if err != nil {
			return nil, err
		}
		if v.Sign() != 0 {
			return v, nil
		}
	}
}
