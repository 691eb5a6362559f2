// Package rpcserver binds the protocol engine to a hand-assembled
// grpc.ServiceDesc carrying the binary wire format from internal/wire,
// instead of protoc-generated protobuf messages.
package rpcserver

import (
	"context"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/kymani37299/anonvote/internal/engine"
	"github.com/kymani37299/anonvote/internal/metrics"
	"github.com/kymani37299/anonvote/internal/wire"
)

// ServiceName is the fully-qualified gRPC service name this binding exposes.
const ServiceName = "anonvote.AnonVote"

// Server adapts an *engine.Engine to the grpc.ServiceDesc below.
type Server struct {
	engine  *engine.Engine
	log     *zap.Logger
	metrics *metrics.Metrics
}

// New wraps eng for RPC dispatch.
func New(eng *engine.Engine, log *zap.Logger, m *metrics.Metrics) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{engine: eng, log: log, metrics: m}
}

// kindToCode maps an engine.Kind to its transport status code, per the
// error-handling design: InvalidArgument -> InvalidArgument, AlreadyExists
// -> AlreadyExists, Internal -> Internal.
func kindToCode(k engine.Kind) codes.Code {
	switch k {
	case engine.InvalidArgument:
		return codes.InvalidArgument
	case engine.AlreadyExists:
		return codes.AlreadyExists
	default:
		return codes.Internal
	}
}

func toStatusErr(err *engine.Error) error {
	if err == nil {
		return nil
	}
	return status.Error(kindToCode(err.Kind), err.Message)
}

func (s *Server) instrument(method string, start time.Time, err error) {
	if s.metrics == nil {
		return
	}
	s.metrics.RequestsTotal.WithLabelValues(method).Inc()
	s.metrics.RequestLatency.WithLabelValues(method).Observe(time.Since(start).Seconds())
	if st, ok := status.FromError(err); ok && err != nil {
		s.metrics.ErrorsTotal.WithLabelValues(method, st.Code().String()).Inc()
	}
}

func decodeRaw(dec func(interface{}) error) ([]byte, error) {
	raw := &wire.RawMessage{}
	if err := dec(raw); err != nil {
		return nil, err
	}
	return raw.Data, nil
}

func (s *Server) handleValidateID(ctx context.Context, dec func(interface{}) error) (interface{}, error) {
	start := time.Now()
	buf, err := decodeRaw(dec)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, "malformed request")
	}
	req, perr := wire.UnmarshalValidateIDRequest(buf)
	if perr != nil {
		return nil, status.Error(codes.InvalidArgument, "malformed request")
	}

	res, eerr := s.engine.ValidateID(req.ID)
	statusErr := toStatusErr(eerr)
	defer s.instrument("ValidateID", start, statusErr)
	if eerr != nil {
		return nil, statusErr
	}

	out, werr := wire.ValidateIDResponse{RegistrationKey: res.RegistrationKey}.MarshalWire()
	if werr != nil {
		return nil, status.Error(codes.Internal, "could not encode response")
	}
	return &wire.RawMessage{Data: out}, nil
}

func (s *Server) handleRegister(ctx context.Context, dec func(interface{}) error) (interface{}, error) {
	start := time.Now()
	buf, err := decodeRaw(dec)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, "malformed request")
	}
	req, perr := wire.UnmarshalRegisterRequest(buf)
	if perr != nil {
		return nil, status.Error(codes.InvalidArgument, "malformed request")
	}

	eerr := s.engine.Register(req.RegistrationKey, req.A, req.B, req.Alpha, req.Beta)
	statusErr := toStatusErr(eerr)
	defer s.instrument("Register", start, statusErr)
	if eerr != nil {
		return nil, statusErr
	}

	out, _ := wire.RegisterResponse{}.MarshalWire()
	return &wire.RawMessage{Data: out}, nil
}

func (s *Server) handleVote(ctx context.Context, dec func(interface{}) error) (interface{}, error) {
	start := time.Now()
	buf, err := decodeRaw(dec)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, "malformed request")
	}
	req, perr := wire.UnmarshalVoteRequest(buf)
	if perr != nil {
		return nil, status.Error(codes.InvalidArgument, "malformed request")
	}

	res, eerr := s.engine.Vote(int(req.Vote), req.A, req.B, req.Alpha, req.Beta, req.Ka, req.Kb)
	statusErr := toStatusErr(eerr)
	defer s.instrument("Vote", start, statusErr)
	if eerr != nil {
		return nil, statusErr
	}

	out, werr := wire.VoteResponse{
		AuthSessionID: res.AuthSessionID,
		Challenge:     res.Challenge.Bytes(),
	}.MarshalWire()
	if werr != nil {
		return nil, status.Error(codes.Internal, "could not encode response")
	}
	return &wire.RawMessage{Data: out}, nil
}

func (s *Server) handleValidateVote(ctx context.Context, dec func(interface{}) error) (interface{}, error) {
	start := time.Now()
	buf, err := decodeRaw(dec)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, "malformed request")
	}
	req, perr := wire.UnmarshalValidateVoteRequest(buf)
	if perr != nil {
		return nil, status.Error(codes.InvalidArgument, "malformed request")
	}

	eerr := s.engine.ValidateVote(req.AuthSessionID, int(req.Vote), req.Solution)
	statusErr := toStatusErr(eerr)
	defer s.instrument("ValidateVote", start, statusErr)
	if eerr != nil {
		return nil, statusErr
	}

	out, _ := wire.ValidateVoteResponse{}.MarshalWire()
	return &wire.RawMessage{Data: out}, nil
}

// ServiceDesc is the hand-written equivalent of what protoc-gen-go-grpc
// would emit for a service named anonvote.AnonVote with four unary RPCs.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*any)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "ValidateID",
			Handler: func(srv interface{}, ctx context.Context, dec func(interface{}) error, _ grpc.UnaryServerInterceptor) (interface{}, error) {
				return srv.(*Server).handleValidateID(ctx, dec)
			},
		},
		{
			MethodName: "Register",
			Handler: func(srv interface{}, ctx context.Context, dec func(interface{}) error, _ grpc.UnaryServerInterceptor) (interface{}, error) {
				return srv.(*Server).handleRegister(ctx, dec)
			},
		},
		{
			MethodName: "Vote",
			Handler: func(srv interface{}, ctx context.Context, dec func(interface{}) error, _ grpc.UnaryServerInterceptor) (interface{}, error) {
				return srv.(*Server).handleVote(ctx, dec)
			},
		},
		{
			MethodName: "ValidateVote",
			Handler: func(srv interface{}, ctx context.Context, dec func(interface{}) error, _ grpc.UnaryServerInterceptor) (interface{}, error) {
				return srv.(*Server).handleValidateVote(ctx, dec)
			},
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "anonvote.proto",
}

// Register attaches s to gs under the anonvote.AnonVote service name.
func Register(gs *grpc.Server, s *Server) {
	gs.RegisterService(&ServiceDesc, s)
}
