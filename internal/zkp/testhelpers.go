package zkp

import "math/big"

// SecretKeyForTest builds a SecretKey directly from a known scalar,
// bypassing GenerateSecretKey's randomness. Exists so other packages' tests
// can reproduce known-answer transcripts; production code should always go
// through GenerateSecretKey.
func SecretKeyForTest(group GroupParams, x *big.Int) *SecretKey {
	return &SecretKey{group: group, x: new(big.Int).Set(x)}
}

// PublicKeyWithR derives s's PublicKey using an explicit r instead of a
// randomly sampled one, for deterministic known-answer tests.
func (s *SecretKey) PublicKeyWithR(r *big.Int) (*PublicKey, error) {
	beta := modExp(s.group.Alpha, r, s.group.P)
	return &PublicKey{
		group: s.group,
		A:     modExp(s.group.Alpha, s.x, s.group.P),
		B:     modExp(beta, s.x, s.group.P),
		Alpha: new(big.Int).Set(s.group.Alpha),
		Beta:  beta,
	}, nil
}

// CommitWithK derives pk's commitment using an explicit ephemeral k instead
// of a randomly sampled one, for deterministic known-answer tests.
func (pk *PublicKey) CommitWithK(k *big.Int) (*ChallengeCommitment, error) {
	return &ChallengeCommitment{
		K:  new(big.Int).Set(k),
		Ka: modExp(pk.group.Alpha, k, pk.group.P),
		Kb: modExp(pk.Beta, k, pk.group.P),
	}, nil
}
