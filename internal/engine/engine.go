// Package engine implements the four-method protocol state machine: it is
// the only component that composes the ZKP core and the state store into
// the voter lifecycle ValidateID -> Register -> Vote -> ValidateVote.
package engine

import (
	"io"
	"math/big"

	"go.uber.org/zap"

	"github.com/kymani37299/anonvote/internal/metrics"
	"github.com/kymani37299/anonvote/internal/randcode"
	"github.com/kymani37299/anonvote/internal/store"
	"github.com/kymani37299/anonvote/internal/zkp"
)

// Engine holds everything the four operations need: the group the ZKP core
// runs over, the candidate count, the shared store, and an optional
// deterministic RNG for tests (nil selects crypto/rand in every callee).
type Engine struct {
	group            zkp.GroupParams
	voteOptionCount  int
	requireGenerator bool
	store            *store.Store
	log              *zap.Logger
	metrics          *metrics.Metrics
	rng              io.Reader
}

// Option configures an Engine at construction.
type Option func(*Engine)

// WithRand injects a deterministic randomness source, for tests only.
func WithRand(rng io.Reader) Option {
	return func(e *Engine) { e.rng = rng }
}

// WithLogger attaches a structured logger; a no-op logger is used if omitted.
func WithLogger(log *zap.Logger) Option {
	return func(e *Engine) { e.log = log }
}

// WithMetrics attaches a Prometheus instrumentation bundle.
func WithMetrics(m *metrics.Metrics) Option {
	return func(e *Engine) { e.metrics = m }
}

// New constructs an Engine over group, accepting voteOptionCount distinct
// candidate indices in [1, voteOptionCount].
func New(group zkp.GroupParams, voteOptionCount int, requireGenerator bool, opts ...Option) *Engine {
	e := &Engine{
		group:            group,
		voteOptionCount:  voteOptionCount,
		requireGenerator: requireGenerator,
		store:            store.New(),
		log:              zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Tally returns the current vote counts, indexed by the raw 1-based
// candidate number; index 0 is always zero.
func (e *Engine) Tally() []int {
	return e.store.VotedUsers.Tally(e.voteOptionCount)
}

// ValidateIDResult is the successful outcome of ValidateID.
type ValidateIDResult struct {
	RegistrationKey string
}

// ValidateID implements the placeholder identity-provider check: identities
// must be exactly 5 characters, and each identity may mint at most one
// registration code, ever.
func (e *Engine) ValidateID(id string) (*ValidateIDResult, *Error) {
	if len(id) != 5 {
		return nil, invalidArgument("User identification failed")
	}
	if !e.store.RegisteredIDs.Add(id) {
		return nil, alreadyExists("This ID already generated code")
	}

	for {
		code, err := randcode.Generate(e.rng)
		if err != nil {
			e.log.Error("validate id: generate registration code", zap.Error(err))
			return nil, internalRace("", "could not generate registration code")
		}
		if e.store.Codes.Add(code) {
			e.log.Info("registration code issued", zap.String("id", id))
			return &ValidateIDResult{RegistrationKey: code}, nil
		}
		// Astronomically unlikely 16-char alphanumeric collision; retry
		// transparently per the error-handling design.
	}
}

// decodedKeyFields are the four raw big-endian byte fields common to
// Register and Vote.
type decodedKeyFields struct {
	a, b, alpha, beta []byte
}

func (e *Engine) decodePublicKey(f decodedKeyFields) (*zkp.PublicKey, *Error) {
	a := new(big.Int).SetBytes(f.a)
	b := new(big.Int).SetBytes(f.b)
	alpha := new(big.Int).SetBytes(f.alpha)
	beta := new(big.Int).SetBytes(f.beta)

	if a.Sign() <= 0 || b.Sign() <= 0 || beta.Sign() <= 0 {
		return nil, invalidArgument("Invalid user data")
	}

	pk, err := zkp.NewPublicKey(e.group, a, b, alpha, beta, e.requireGenerator)
	if err != nil {
		return nil, invalidArgument("Invalid user data")
	}
	return pk, nil
}

// Register consumes a one-shot registration code to bind a freshly decoded
// public key to its UserHash.
func (e *Engine) Register(code string, a, b, alpha, beta []byte) *Error {
	pk, verr := e.decodePublicKey(decodedKeyFields{a, b, alpha, beta})
	if verr != nil {
		return verr
	}

	if !e.store.Codes.Consume(code) {
		return invalidArgument("Invalid registration key")
	}

	hash := pk.Hash()
	if !e.store.RegisteredUsers.TryRegister(hash, pk) {
		// The key is already bound to someone else's code; give this
		// caller's code back so they can retry with a fresh keypair.
		e.store.Codes.Restore(code)
		return alreadyExists("Public key already registered")
	}

	e.log.Info("user registered", zap.Uint64("user_hash", uint64(hash)))
	return nil
}

// VoteResult is the successful outcome of Vote.
type VoteResult struct {
	AuthSessionID string
	Challenge     *big.Int
}

// Vote validates and records a pending ballot, then issues a fresh
// commitment challenge tied to a new session id.
func (e *Engine) Vote(vote int, a, b, alpha, beta, ka, kb []byte) (*VoteResult, *Error) {
	pk, verr := e.decodePublicKey(decodedKeyFields{a, b, alpha, beta})
	if verr != nil {
		return nil, verr
	}
	if vote < 1 || vote > e.voteOptionCount {
		return nil, invalidArgument("Invalid vote")
	}

	hash := pk.Hash()
	if !e.store.RegisteredUsers.Registered(hash) {
		return nil, invalidArgument("User not registered")
	}
	if e.store.VotedUsers.Voted(hash) {
		return nil, alreadyExists("User already voted")
	}
	if !e.store.PendingVotes.Add(hash, vote) {
		return nil, alreadyExists("This user already has pending vote")
	}

	c, err := zkp.GenerateChallenge(e.group, e.rng)
	if err != nil {
		e.log.Error("vote: generate challenge", zap.Error(err))
		e.store.PendingVotes.Take(hash)
		return nil, internalRace("", "could not generate challenge")
	}

	kaInt := new(big.Int).SetBytes(ka)
	kbInt := new(big.Int).SetBytes(kb)

	for {
		sid, err := randcode.Generate(e.rng)
		if err != nil {
			e.log.Error("vote: generate session id", zap.Error(err))
			e.store.PendingVotes.Take(hash)
			return nil, internalRace("", "could not generate session id")
		}
		added := e.store.Challenges.Add(sid, store.Challenge{
			Hash: hash,
			C:    c,
			Ka:   kaInt,
			Kb:   kbInt,
		})
		if added {
			e.log.Info("vote pending", zap.Uint64("user_hash", uint64(hash)), zap.String("session_id", sid))
			return &VoteResult{AuthSessionID: sid, Challenge: c}, nil
		}
		// Session id collision: retry with a fresh one; the loop ends only
		// on success or on a failure of the randomness source.
	}
}

// ValidateVote verifies the prover's solution and, on success, promotes the
// pending vote to a permanently recorded one. The promotion is three
// separate store operations, not one atomic step; a concurrent caller that
// loses one of them gets a distinct Internal error (E0001, E0002, E0003).
func (e *Engine) ValidateVote(sid string, vote int, solution []byte) *Error {
	challenge, ok := e.store.Challenges.Get(sid)
	if !ok {
		return invalidArgument("Invalid session id")
	}

	pendingVote, ok := e.store.PendingVotes.Get(challenge.Hash)
	if !ok {
		return invalidArgument("Pending vote no longer exists")
	}
	if pendingVote != vote {
		return invalidArgument("Pending vote does not match")
	}

	pk, ok := e.store.RegisteredUsers.Get(challenge.Hash)
	if !ok {
		return invalidArgument("User no longer exists")
	}

	s := new(big.Int).SetBytes(solution)
	if !pk.Verify(challenge.Ka, challenge.Kb, challenge.C, s) {
		return invalidArgument("Solution not verified")
	}

	if !e.store.Challenges.Remove(sid) {
		return internalRace("E0001", "concurrent session consumption")
	}
	takenVote, ok := e.store.PendingVotes.Take(challenge.Hash)
	if !ok {
		return internalRace("E0002", "concurrent pending-vote consumption")
	}
	if !e.store.VotedUsers.Add(challenge.Hash, takenVote) {
		return internalRace("E0003", "concurrent vote recording")
	}

	if e.metrics != nil {
		total := 0
		for _, count := range e.Tally() {
			total += count
		}
		e.metrics.TallySize.Set(float64(total))
	}
	e.log.Info("vote finalised", zap.Uint64("user_hash", uint64(challenge.Hash)), zap.Int("vote", takenVote))
	return nil
}
