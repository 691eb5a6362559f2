package client

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFullRoundTripOverBytes(t *testing.T) {
	secretKey, err := GenerateSecretKey(Tiny)
	require.NoError(t, err)

	a, b, alpha, beta, err := DerivePublicKey(Tiny, secretKey)
	require.NoError(t, err)

	k, ka, kb, err := Commit(Tiny, a, b, alpha, beta)
	require.NoError(t, err)

	// A server-chosen challenge; any value in [0, Q) works. Commit does not
	// depend on it, and Solve returns s in [0, Q) for any c; s = 0 encodes
	// as zero bytes, so only its range is checked.
	c := []byte{0x02}
	s := Solve(Tiny, secretKey, k, c)

	assert.NotEmpty(t, ka)
	assert.NotEmpty(t, kb)
	assert.True(t, new(big.Int).SetBytes(s).Cmp(big.NewInt(11)) < 0, "solution must lie in [0, Q)")
}

func TestDerivePublicKeyAcceptsEmptySecretKeyWithoutPanicking(t *testing.T) {
	// A zero-length secret key decodes to x=0; derivation should still
	// run without panicking (the engine, not this facade, rejects degenerate
	// keys at registration time).
	a, b, alpha, beta, err := DerivePublicKey(Tiny, []byte{})
	require.NoError(t, err)
	assert.NotNil(t, a)
	assert.NotNil(t, b)
	assert.NotNil(t, alpha)
	assert.NotNil(t, beta)
}
