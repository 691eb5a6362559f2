package rpcserver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"google.golang.org/grpc/codes"

	"github.com/kymani37299/anonvote/internal/engine"
)

func TestKindToCodeMapping(t *testing.T) {
	assert.Equal(t, codes.InvalidArgument, kindToCode(engine.InvalidArgument))
	assert.Equal(t, codes.AlreadyExists, kindToCode(engine.AlreadyExists))
	assert.Equal(t, codes.Internal, kindToCode(engine.Internal))
}

func TestToStatusErrNilIsNil(t *testing.T) {
	assert.NoError(t, toStatusErr(nil))
}

func TestToStatusErrCarriesMessage(t *testing.T) {
	err := toStatusErr(&engine.Error{Kind: engine.InvalidArgument, Message: "bad input"})
	assert.ErrorContains(t, err, "bad input")
}
