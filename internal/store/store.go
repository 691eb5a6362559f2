// Package store provides the in-memory, process-lifetime collections the
// protocol engine reads and writes. Each collection is an independently
// lockable container with small, total operations: no transaction spans
// two collections, and every operation either succeeds or leaves its
// collection entirely unchanged.
package store

import (
	"math/big"
	"sync"

	"github.com/kymani37299/anonvote/internal/zkp"
)

// Challenge is the record Vote creates and ValidateVote consumes.
type Challenge struct {
	Hash zkp.UserHash
	C    *big.Int
	Ka   *big.Int
	Kb   *big.Int
}

// RegisteredIDs tracks identity strings that have already minted a
// registration code. Membership is write-once and eternal.
type RegisteredIDs struct {
	mu   sync.Mutex
	seen map[string]struct{}
}

// NewRegisteredIDs returns an empty RegisteredIDs collection.
func NewRegisteredIDs() *RegisteredIDs {
	return &RegisteredIDs{seen: make(map[string]struct{})}
}

// Add inserts id, returning false if it was already present.
func (r *RegisteredIDs) Add(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.seen[id]; ok {
		return false
	}
	r.seen[id] = struct{}{}
	return true
}

// ActiveRegistrationCodes tracks unredeemed one-shot registration codes.
type ActiveRegistrationCodes struct {
	mu     sync.Mutex
	active map[string]struct{}
}

// NewActiveRegistrationCodes returns an empty collection.
func NewActiveRegistrationCodes() *ActiveRegistrationCodes {
	return &ActiveRegistrationCodes{active: make(map[string]struct{})}
}

// Add inserts code, returning false if it is already active (an
// astronomically unlikely collision the caller should retry on).
func (c *ActiveRegistrationCodes) Add(code string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.active[code]; ok {
		return false
	}
	c.active[code] = struct{}{}
	return true
}

// Consume removes code and reports whether it was present.
func (c *ActiveRegistrationCodes) Consume(code string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.active[code]; !ok {
		return false
	}
	delete(c.active, code)
	return true
}

// Restore re-adds a previously-consumed code. Used by Register to undo its
// own consumption when the registration that follows fails; it is not an
// atomic compensating action with the consume that preceded it, so the
// code is briefly absent between the two calls.
func (c *ActiveRegistrationCodes) Restore(code string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.active[code] = struct{}{}
}

// RegisteredUsers maps UserHash to the PublicKey a voter registered.
type RegisteredUsers struct {
	mu    sync.RWMutex
	users map[zkp.UserHash]*zkp.PublicKey
}

// NewRegisteredUsers returns an empty collection.
func NewRegisteredUsers() *RegisteredUsers {
	return &RegisteredUsers{users: make(map[zkp.UserHash]*zkp.PublicKey)}
}

// TryRegister inserts key under hash, returning false if hash is already
// registered.
func (r *RegisteredUsers) TryRegister(hash zkp.UserHash, key *zkp.PublicKey) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[hash]; ok {
		return false
	}
	r.users[hash] = key
	return true
}

// Registered reports whether hash has a registered public key.
func (r *RegisteredUsers) Registered(hash zkp.UserHash) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.users[hash]
	return ok
}

// Get returns the registered PublicKey for hash, if any.
func (r *RegisteredUsers) Get(hash zkp.UserHash) (*zkp.PublicKey, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	key, ok := r.users[hash]
	return key, ok
}

// PendingVotes maps UserHash to the candidate index chosen at Vote, awaiting
// confirmation at ValidateVote.
type PendingVotes struct {
	mu      sync.Mutex
	pending map[zkp.UserHash]int
}

// NewPendingVotes returns an empty collection.
func NewPendingVotes() *PendingVotes {
	return &PendingVotes{pending: make(map[zkp.UserHash]int)}
}

// Add inserts vote under hash, returning false if a pending vote already
// exists for hash.
func (p *PendingVotes) Add(hash zkp.UserHash, vote int) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, ok := p.pending[hash]; ok {
		return false
	}
	p.pending[hash] = vote
	return true
}

// Get returns the pending vote for hash without consuming it.
func (p *PendingVotes) Get(hash zkp.UserHash) (int, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	v, ok := p.pending[hash]
	return v, ok
}

// Take removes and returns the pending vote for hash, if any.
func (p *PendingVotes) Take(hash zkp.UserHash) (int, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	v, ok := p.pending[hash]
	if !ok {
		return 0, false
	}
	delete(p.pending, hash)
	return v, true
}

// VotedUsers maps UserHash to the candidate index a voter finalised.
// Binding hash to ballot here is what lets the operator correlate
// credential to vote; true ballot secrecy is a known limitation, not an
// implemented property of this collection.
type VotedUsers struct {
	mu    sync.RWMutex
	voted map[zkp.UserHash]int
}

// NewVotedUsers returns an empty collection.
func NewVotedUsers() *VotedUsers {
	return &VotedUsers{voted: make(map[zkp.UserHash]int)}
}

// Add inserts vote under hash, returning false if hash has already voted.
func (v *VotedUsers) Add(hash zkp.UserHash, vote int) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	if _, ok := v.voted[hash]; ok {
		return false
	}
	v.voted[hash] = vote
	return true
}

// Voted reports whether hash has already cast a final vote.
func (v *VotedUsers) Voted(hash zkp.UserHash) bool {
	v.mu.RLock()
	defer v.mu.RUnlock()
	_, ok := v.voted[hash]
	return ok
}

// Tally returns vote counts indexed by the raw 1-based candidate number
// recorded at Vote (1..optionCount); index 0 is permanently unused. The
// returned slice therefore has length optionCount+1.
func (v *VotedUsers) Tally(optionCount int) []int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	counts := make([]int, optionCount+1)
	for _, choice := range v.voted {
		if choice >= 1 && choice <= optionCount {
			counts[choice]++
		}
	}
	return counts
}

// Challenges maps SessionId to the outstanding challenge Vote issued.
type Challenges struct {
	mu         sync.Mutex
	challenges map[string]Challenge
}

// NewChallenges returns an empty collection.
func NewChallenges() *Challenges {
	return &Challenges{challenges: make(map[string]Challenge)}
}

// Add inserts data under sid, returning false on a session id collision.
func (c *Challenges) Add(sid string, data Challenge) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.challenges[sid]; ok {
		return false
	}
	c.challenges[sid] = data
	return true
}

// Get returns the challenge stored under sid without removing it.
func (c *Challenges) Get(sid string) (Challenge, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	data, ok := c.challenges[sid]
	return data, ok
}

// Remove deletes sid, reporting whether it was present. Concurrent callers
// racing to consume the same session id will see exactly one true and the
// rest false.
func (c *Challenges) Remove(sid string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.challenges[sid]; !ok {
		return false
	}
	delete(c.challenges, sid)
	return true
}

// Store bundles the six collections the protocol engine operates over.
// It carries no logic of its own beyond construction; every invariant that
// spans more than one collection is the engine's responsibility.
type Store struct {
	RegisteredIDs   *RegisteredIDs
	Codes           *ActiveRegistrationCodes
	RegisteredUsers *RegisteredUsers
	PendingVotes    *PendingVotes
	VotedUsers      *VotedUsers
	Challenges      *Challenges
}

// New returns a fresh, empty Store.
func New() *Store {
	return &Store{
		RegisteredIDs:   NewRegisteredIDs(),
		Codes:           NewActiveRegistrationCodes(),
		RegisteredUsers: NewRegisteredUsers(),
		PendingVotes:    NewPendingVotes(),
		VotedUsers:      NewVotedUsers(),
		Challenges:      NewChallenges(),
	}
}
