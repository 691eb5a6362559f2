package randcode

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateLengthAndAlphabet(t *testing.T) {
	code, err := Generate(nil)
	require.NoError(t, err)
	assert.Len(t, code, Length)
	for _, r := range code {
		assert.Truef(t, isAlphanumeric(r), "character %q not in [A-Za-z0-9]", r)
	}
}

func TestGenerateProducesDistinctCodes(t *testing.T) {
	a, err := Generate(nil)
	require.NoError(t, err)
	b, err := Generate(nil)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func isAlphanumeric(r rune) bool {
	return (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
}
