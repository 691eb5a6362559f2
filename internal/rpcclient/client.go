// Package rpcclient is a thin client for the anonvote.AnonVote service,
// used by integration tests (and usable by any Go caller that wants to
// drive the protocol without going through the RPC transport's Client
// Bindings facade).
package rpcclient

import (
	"context"
	"fmt"

	"google.golang.org/grpc"

	"github.com/kymani37299/anonvote/internal/rpcserver"
	"github.com/kymani37299/anonvote/internal/wire"
)

// Client wraps a grpc.ClientConn already dialed against an anonvote server.
type Client struct {
	conn *grpc.ClientConn
}

// New wraps an existing connection.
func New(conn *grpc.ClientConn) *Client {
	return &Client{conn: conn}
}

func invoke(ctx context.Context, conn *grpc.ClientConn, method string, reqBytes []byte) ([]byte, error) {
	fullMethod := fmt.Sprintf("/%s/%s", rpcserver.ServiceName, method)
	in := &wire.RawMessage{Data: reqBytes}
	out := &wire.RawMessage{}
	if err := conn.Invoke(ctx, fullMethod, in, out, grpc.CallContentSubtype("anonvote-binary")); err != nil {
		return nil, err
	}
	return out.Data, nil
}

// ValidateID calls the ValidateID RPC.
func (c *Client) ValidateID(ctx context.Context, id string) (*wire.ValidateIDResponse, error) {
	reqBytes, err := wire.ValidateIDRequest{ID: id}.MarshalWire()
	if err != nil {
		return nil, err
	}
	respBytes, err := invoke(ctx, c.conn, "ValidateID", reqBytes)
	if err != nil {
		return nil, err
	}
	return wire.UnmarshalValidateIDResponse(respBytes)
}

// Register calls the Register RPC.
func (c *Client) Register(ctx context.Context, code string, a, b, alpha, beta []byte) (*wire.RegisterResponse, error) {
	reqBytes, err := wire.RegisterRequest{RegistrationKey: code, A: a, B: b, Alpha: alpha, Beta: beta}.MarshalWire()
	if err != nil {
		return nil, err
	}
	respBytes, err := invoke(ctx, c.conn, "Register", reqBytes)
	if err != nil {
		return nil, err
	}
	return wire.UnmarshalRegisterResponse(respBytes)
}

// Vote calls the Vote RPC.
func (c *Client) Vote(ctx context.Context, vote uint32, a, b, alpha, beta, ka, kb []byte) (*wire.VoteResponse, error) {
	reqBytes, err := wire.VoteRequest{Vote: vote, A: a, B: b, Alpha: alpha, Beta: beta, Ka: ka, Kb: kb}.MarshalWire()
	if err != nil {
		return nil, err
	}
	respBytes, err := invoke(ctx, c.conn, "Vote", reqBytes)
	if err != nil {
		return nil, err
	}
	return wire.UnmarshalVoteResponse(respBytes)
}

// ValidateVote calls the ValidateVote RPC.
func (c *Client) ValidateVote(ctx context.Context, sid string, vote uint32, solution []byte) (*wire.ValidateVoteResponse, error) {
	reqBytes, err := wire.ValidateVoteRequest{AuthSessionID: sid, Vote: vote, Solution: solution}.MarshalWire()
	if err != nil {
		return nil, err
	}
	respBytes, err := invoke(ctx, c.conn, "ValidateVote", reqBytes)
	if err != nil {
		return nil, err
	}
	return wire.UnmarshalValidateVoteResponse(respBytes)
}
