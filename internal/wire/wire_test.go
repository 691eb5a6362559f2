package wire

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateIDRoundTrip(t *testing.T) {
	req := ValidateIDRequest{ID: "12345"}
	buf, err := req.MarshalWire()
	require.NoError(t, err)

	got, err := UnmarshalValidateIDRequest(buf)
	require.NoError(t, err)
	assert.Equal(t, req.ID, got.ID)

	resp := ValidateIDResponse{RegistrationKey: "ABCDEFGHIJKLMNOP"}
	buf, err = resp.MarshalWire()
	require.NoError(t, err)
	gotResp, err := UnmarshalValidateIDResponse(buf)
	require.NoError(t, err)
	assert.Equal(t, resp.RegistrationKey, gotResp.RegistrationKey)
}

func TestRegisterRoundTrip(t *testing.T) {
	req := RegisterRequest{
		RegistrationKey: "ABCDEFGHIJKLMNOP",
		A:               []byte{0x08},
		B:               []byte{0x01, 0x02},
		Alpha:           []byte{0x04},
		Beta:            []byte{0x12},
	}
	buf, err := req.MarshalWire()
	require.NoError(t, err)

	got, err := UnmarshalRegisterRequest(buf)
	require.NoError(t, err)
	assert.Equal(t, req.RegistrationKey, got.RegistrationKey)
	assert.Equal(t, req.A, got.A)
	assert.Equal(t, req.B, got.B)
	assert.Equal(t, req.Alpha, got.Alpha)
	assert.Equal(t, req.Beta, got.Beta)

	emptyResp, err := RegisterResponse{}.MarshalWire()
	require.NoError(t, err)
	assert.Empty(t, emptyResp)
}

func TestVoteRoundTrip(t *testing.T) {
	req := VoteRequest{
		Vote:  2,
		A:     []byte{0x08},
		B:     []byte{0x09},
		Alpha: []byte{0x04},
		Beta:  []byte{0x12},
		Ka:    []byte{0x01},
		Kb:    []byte{0x02},
	}
	buf, err := req.MarshalWire()
	require.NoError(t, err)

	got, err := UnmarshalVoteRequest(buf)
	require.NoError(t, err)
	assert.Equal(t, req.Vote, got.Vote)
	assert.Equal(t, req.Ka, got.Ka)
	assert.Equal(t, req.Kb, got.Kb)

	resp := VoteResponse{AuthSessionID: "SESSIONIDSESSION", Challenge: []byte{0x07}}
	buf, err = resp.MarshalWire()
	require.NoError(t, err)
	gotResp, err := UnmarshalVoteResponse(buf)
	require.NoError(t, err)
	assert.Equal(t, resp.AuthSessionID, gotResp.AuthSessionID)
	assert.Equal(t, resp.Challenge, gotResp.Challenge)
}

func TestValidateVoteRoundTrip(t *testing.T) {
	req := ValidateVoteRequest{
		AuthSessionID: "SESSIONIDSESSION",
		Vote:          1,
		Solution:      []byte{0x0a},
	}
	buf, err := req.MarshalWire()
	require.NoError(t, err)

	got, err := UnmarshalValidateVoteRequest(buf)
	require.NoError(t, err)
	assert.Equal(t, req.AuthSessionID, got.AuthSessionID)
	assert.Equal(t, req.Vote, got.Vote)
	assert.Equal(t, req.Solution, got.Solution)

	emptyResp, err := ValidateVoteResponse{}.MarshalWire()
	require.NoError(t, err)
	assert.Empty(t, emptyResp)
}

func TestTruncatedMessageIsRejected(t *testing.T) {
	req := ValidateIDRequest{ID: "12345"}
	buf, err := req.MarshalWire()
	require.NoError(t, err)

	_, err = UnmarshalValidateIDRequest(buf[:len(buf)-2])
	assert.Error(t, err)
}

func TestTrailingBytesAreRejected(t *testing.T) {
	req := ValidateIDRequest{ID: "12345"}
	buf, err := req.MarshalWire()
	require.NoError(t, err)

	_, err = UnmarshalValidateIDRequest(append(buf, 0xFF))
	assert.Error(t, err)
}
