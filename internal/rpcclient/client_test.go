package rpcclient

import (
	"context"
	"math/big"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/test/bufconn"

	"github.com/kymani37299/anonvote/internal/engine"
	"github.com/kymani37299/anonvote/internal/rpcserver"
	"github.com/kymani37299/anonvote/internal/zkp"
)

func startTestServer(t *testing.T) (*Client, func()) {
	t.Helper()
	lis := bufconn.Listen(1024 * 1024)

	eng := engine.New(zkp.Tiny(), 3, false)
	srv := grpc.NewServer()
	rpcserver.Register(srv, rpcserver.New(eng, nil, nil))
	go func() {
		_ = srv.Serve(lis)
	}()

	dialer := func(ctx context.Context, _ string) (net.Conn, error) {
		return lis.DialContext(ctx)
	}
	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(dialer),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)

	cleanup := func() {
		_ = conn.Close()
		srv.Stop()
	}
	return New(conn), cleanup
}

func TestEndToEndVoteOverBufconn(t *testing.T) {
	client, cleanup := startTestServer(t)
	defer cleanup()
	ctx := context.Background()

	idResp, err := client.ValidateID(ctx, "12345")
	require.NoError(t, err)
	require.Len(t, idResp.RegistrationKey, 16)

	group := zkp.Tiny()
	sk := zkp.SecretKeyForTest(group, big.NewInt(7))
	pk, err := sk.PublicKeyWithR(big.NewInt(3))
	require.NoError(t, err)
	a, b, alpha, beta := pk.Bytes()

	_, err = client.Register(ctx, idResp.RegistrationKey, a, b, alpha, beta)
	require.NoError(t, err)

	commit, err := pk.CommitWithK(big.NewInt(5))
	require.NoError(t, err)

	voteResp, err := client.Vote(ctx, 1, a, b, alpha, beta, commit.Ka.Bytes(), commit.Kb.Bytes())
	require.NoError(t, err)
	require.NotEmpty(t, voteResp.AuthSessionID)

	c := new(big.Int).SetBytes(voteResp.Challenge)
	s := sk.Solve(commit.K, c)

	_, err = client.ValidateVote(ctx, voteResp.AuthSessionID, 1, s.Bytes())
	assert.NoError(t, err)
}

func TestValidateIDOverBufconnRejectsBadLength(t *testing.T) {
	client, cleanup := startTestServer(t)
	defer cleanup()

	_, err := client.ValidateID(context.Background(), "1234")
	assert.Error(t, err)
}
