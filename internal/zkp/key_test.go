package zkp

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerifyAcceptsHonestTranscript(t *testing.T) {
	group := Tiny()

	for x := int64(1); x < 11; x++ {
		sk := &SecretKey{group: group, x: big.NewInt(x)}
		pk, err := sk.PublicKey(nil)
		require.NoError(t, err)

		commit, err := pk.Commit(nil)
		require.NoError(t, err)

		c, err := GenerateChallenge(group, nil)
		require.NoError(t, err)

		s := sk.Solve(commit.K, c)
		assert.Truef(t, pk.Verify(commit.Ka, commit.Kb, c, s),
			"verify should accept honest transcript for x=%d", x)
	}
}

func TestVerifyRejectsWrongSolution(t *testing.T) {
	group := Tiny()
	sk := &SecretKey{group: group, x: big.NewInt(7)}
	pk, err := sk.PublicKey(nil)
	require.NoError(t, err)

	commit, err := pk.Commit(nil)
	require.NoError(t, err)
	c, err := GenerateChallenge(group, nil)
	require.NoError(t, err)

	s := sk.Solve(commit.K, c)
	wrong := new(big.Int).Mod(new(big.Int).Add(s, big.NewInt(1)), group.Q)

	assert.False(t, pk.Verify(commit.Ka, commit.Kb, c, wrong))
}

func TestVerifyRejectsTamperedCommitment(t *testing.T) {
	group := Tiny()
	sk := &SecretKey{group: group, x: big.NewInt(3)}
	pk, err := sk.PublicKey(nil)
	require.NoError(t, err)

	commit, err := pk.Commit(nil)
	require.NoError(t, err)
	c, err := GenerateChallenge(group, nil)
	require.NoError(t, err)
	s := sk.Solve(commit.K, c)

	tamperedKa := new(big.Int).Mod(new(big.Int).Add(commit.Ka, big.NewInt(1)), group.P)
	assert.False(t, pk.Verify(tamperedKa, commit.Kb, c, s))
}

// Reference example from spec: x=7, r=3 under (P=23, Q=11, alpha=4).
func TestKnownAnswerSmallGroup(t *testing.T) {
	group := Tiny()
	sk := &SecretKey{group: group, x: big.NewInt(7)}

	beta := modExp(group.Alpha, big.NewInt(3), group.P)
	require.Equal(t, big.NewInt(18), beta)

	a := modExp(group.Alpha, sk.x, group.P)
	require.Equal(t, big.NewInt(8), a)

	pk := &PublicKey{group: group, A: a, B: modExp(beta, sk.x, group.P), Alpha: group.Alpha, Beta: beta}

	commit, err := pk.Commit(nil)
	require.NoError(t, err)
	c, err := GenerateChallenge(group, nil)
	require.NoError(t, err)
	s := sk.Solve(commit.K, c)
	assert.True(t, pk.Verify(commit.Ka, commit.Kb, c, s))
}

func TestSolveMatchesNonNegativeArithmeticSpec(t *testing.T) {
	group := Tiny()
	sk := &SecretKey{group: group, x: big.NewInt(5)}

	// k >= c*x: direct (k - c*x) mod Q
	s1 := sk.Solve(big.NewInt(20), big.NewInt(2)) // c*x = 10, k >= c*x
	assert.Equal(t, big.NewInt(10), s1)

	// k < c*x: Q - ((c*x - k) mod Q)
	s2 := sk.Solve(big.NewInt(1), big.NewInt(3)) // c*x = 15, k < c*x
	want := new(big.Int).Sub(group.Q, new(big.Int).Mod(big.NewInt(14), group.Q))
	assert.Equal(t, want, s2)
	assert.True(t, s2.Sign() >= 0 && s2.Cmp(group.Q) < 0)
}

func TestNewPublicKeyRejectsMalformedComponents(t *testing.T) {
	group := Tiny()

	cases := []struct {
		name             string
		a, b, alpha, beta *big.Int
	}{
		{"zero a", big.NewInt(0), big.NewInt(1), group.Alpha, big.NewInt(2)},
		{"b equals P", big.NewInt(1), new(big.Int).Set(group.P), group.Alpha, big.NewInt(2)},
		{"beta is one", big.NewInt(1), big.NewInt(1), group.Alpha, big.NewInt(1)},
		{"negative beta", big.NewInt(1), big.NewInt(1), group.Alpha, big.NewInt(-1)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewPublicKey(group, tc.a, tc.b, tc.alpha, tc.beta, false)
			assert.Error(t, err)
		})
	}
}

func TestNewPublicKeyStrictGeneratorCheck(t *testing.T) {
	group := Tiny()
	wrongAlpha := big.NewInt(5)

	_, err := NewPublicKey(group, big.NewInt(1), big.NewInt(1), wrongAlpha, big.NewInt(2), true)
	assert.Error(t, err)

	_, err = NewPublicKey(group, big.NewInt(1), big.NewInt(1), wrongAlpha, big.NewInt(2), false)
	assert.NoError(t, err)
}

func TestPublicKeyBytesRoundTrip(t *testing.T) {
	group := Tiny()
	sk := &SecretKey{group: group, x: big.NewInt(6)}
	pk, err := sk.PublicKey(nil)
	require.NoError(t, err)

	aB, bB, alphaB, betaB := pk.Bytes()
	a := new(big.Int).SetBytes(aB)
	b := new(big.Int).SetBytes(bB)
	alpha := new(big.Int).SetBytes(alphaB)
	beta := new(big.Int).SetBytes(betaB)

	rebuilt, err := NewPublicKey(group, a, b, alpha, beta, false)
	require.NoError(t, err)
	assert.Equal(t, pk.Hash(), rebuilt.Hash())
}

func TestUserHashDeterministic(t *testing.T) {
	group := Tiny()
	sk := &SecretKey{group: group, x: big.NewInt(4)}
	pk1, err := sk.PublicKey(nil)
	require.NoError(t, err)

	aB, bB, alphaB, betaB := pk1.Bytes()
	pk2, err := NewPublicKey(group,
		new(big.Int).SetBytes(aB), new(big.Int).SetBytes(bB),
		new(big.Int).SetBytes(alphaB), new(big.Int).SetBytes(betaB), false)
	require.NoError(t, err)

	assert.Equal(t, pk1.Hash(), pk2.Hash())
}

func TestUserHashDiffersOnDifferentKeys(t *testing.T) {
	group := Tiny()
	sk1 := &SecretKey{group: group, x: big.NewInt(2)}
	sk2 := &SecretKey{group: group, x: big.NewInt(9)}
	pk1, err := sk1.PublicKey(nil)
	require.NoError(t, err)
	pk2, err := sk2.PublicKey(nil)
	require.NoError(t, err)

	assert.NotEqual(t, pk1.Hash(), pk2.Hash())
}

func TestGenerateSecretKeyInRange(t *testing.T) {
	group := Production()
	for i := 0; i < 20; i++ {
		sk, err := GenerateSecretKey(group, nil)
		require.NoError(t, err)
		assert.True(t, sk.x.Sign() > 0)
		assert.True(t, sk.x.Cmp(group.Q) < 0)
	}
}
