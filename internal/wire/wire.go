// Package wire implements the binary message layout carried over the RPC
// boundary: every field is an unsigned big-endian integer or a raw byte
// string, each preceded by a 2-byte big-endian length prefix. Byte fields
// use the minimum-length encoding (no leading zero byte unless the value
// itself is zero-length).
package wire

import (
	"encoding/binary"
	"fmt"
)

// reader walks a byte-exact message buffer, tracking position and turning
// short or malformed input into errors instead of panics.
type reader struct {
	buf []byte
	pos int
}

func newReader(buf []byte) *reader { return &reader{buf: buf} }

func (r *reader) readField() ([]byte, error) {
	if r.pos+2 > len(r.buf) {
		return nil, fmt.Errorf("wire: truncated length prefix at offset %d", r.pos)
	}
	n := int(binary.BigEndian.Uint16(r.buf[r.pos : r.pos+2]))
	r.pos += 2
	if r.pos+n > len(r.buf) {
		return nil, fmt.Errorf("wire: truncated field at offset %d (want %d bytes)", r.pos, n)
	}
	field := r.buf[r.pos : r.pos+n]
	r.pos += n
	return field, nil
}

func (r *reader) readString() (string, error) {
	b, err := r.readField()
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (r *reader) finish() error {
	if r.pos != len(r.buf) {
		return fmt.Errorf("wire: %d trailing bytes after message", len(r.buf)-r.pos)
	}
	return nil
}

// writer accumulates length-prefixed fields into a single message buffer.
type writer struct {
	buf []byte
}

func (w *writer) writeField(b []byte) error {
	if len(b) > 0xFFFF {
		return fmt.Errorf("wire: field of %d bytes exceeds 16-bit length prefix", len(b))
	}
	var lenPrefix [2]byte
	binary.BigEndian.PutUint16(lenPrefix[:], uint16(len(b)))
	w.buf = append(w.buf, lenPrefix[:]...)
	w.buf = append(w.buf, b...)
	return nil
}

func (w *writer) writeString(s string) error { return w.writeField([]byte(s)) }

// RawMessage lets the gRPC binary codec pass bytes through untouched: the
// codec's Marshal/Unmarshal only ever see a RawMessage, and callers decode
// the payload into a concrete request/response type afterward.
type RawMessage struct {
	Data []byte
}

func (r *RawMessage) MarshalWire() ([]byte, error) { return r.Data, nil }

// ValidateIDRequest carries the placeholder identity string.
type ValidateIDRequest struct {
	ID string
}

// MarshalWire encodes r per the schema.
func (r ValidateIDRequest) MarshalWire() ([]byte, error) {
	w := &writer{}
	if err := w.writeString(r.ID); err != nil {
		return nil, err
	}
	return w.buf, nil
}

// UnmarshalValidateIDRequest decodes a ValidateIDRequest.
func UnmarshalValidateIDRequest(buf []byte) (*ValidateIDRequest, error) {
	r := newReader(buf)
	id, err := r.readString()
	if err != nil {
		return nil, err
	}
	if err := r.finish(); err != nil {
		return nil, err
	}
	return &ValidateIDRequest{ID: id}, nil
}

// ValidateIDResponse carries the newly minted registration code.
type ValidateIDResponse struct {
	RegistrationKey string
}

func (r ValidateIDResponse) MarshalWire() ([]byte, error) {
	w := &writer{}
	if err := w.writeString(r.RegistrationKey); err != nil {
		return nil, err
	}
	return w.buf, nil
}

func UnmarshalValidateIDResponse(buf []byte) (*ValidateIDResponse, error) {
	r := newReader(buf)
	key, err := r.readString()
	if err != nil {
		return nil, err
	}
	if err := r.finish(); err != nil {
		return nil, err
	}
	return &ValidateIDResponse{RegistrationKey: key}, nil
}

// RegisterRequest carries the registration code and raw public-key fields.
type RegisterRequest struct {
	RegistrationKey          string
	A, B, Alpha, Beta        []byte
}

func (r RegisterRequest) MarshalWire() ([]byte, error) {
	w := &writer{}
	if err := w.writeString(r.RegistrationKey); err != nil {
		return nil, err
	}
	for _, f := range [][]byte{r.A, r.B, r.Alpha, r.Beta} {
		if err := w.writeField(f); err != nil {
			return nil, err
		}
	}
	return w.buf, nil
}

func UnmarshalRegisterRequest(buf []byte) (*RegisterRequest, error) {
	r := newReader(buf)
	key, err := r.readString()
	if err != nil {
		return nil, err
	}
	a, err := r.readField()
	if err != nil {
		return nil, err
	}
	b, err := r.readField()
	if err != nil {
		return nil, err
	}
	alpha, err := r.readField()
	if err != nil {
		return nil, err
	}
	beta, err := r.readField()
	if err != nil {
		return nil, err
	}
	if err := r.finish(); err != nil {
		return nil, err
	}
	return &RegisterRequest{RegistrationKey: key, A: a, B: b, Alpha: alpha, Beta: beta}, nil
}

// RegisterResponse is empty on success.
type RegisterResponse struct{}

func (RegisterResponse) MarshalWire() ([]byte, error) { return []byte{}, nil }

func UnmarshalRegisterResponse(buf []byte) (*RegisterResponse, error) {
	if len(buf) != 0 {
		return nil, fmt.Errorf("wire: RegisterResponse must be empty, got %d bytes", len(buf))
	}
	return &RegisterResponse{}, nil
}

// VoteRequest carries the candidate choice (u32 end-to-end, see the design
// notes on the wire vote type) plus the public key and first-move
// commitment.
type VoteRequest struct {
	Vote               uint32
	A, B, Alpha, Beta  []byte
	Ka, Kb             []byte
}

func (r VoteRequest) MarshalWire() ([]byte, error) {
	w := &writer{}
	var voteBuf [4]byte
	binary.BigEndian.PutUint32(voteBuf[:], r.Vote)
	if err := w.writeField(voteBuf[:]); err != nil {
		return nil, err
	}
	for _, f := range [][]byte{r.A, r.B, r.Alpha, r.Beta, r.Ka, r.Kb} {
		if err := w.writeField(f); err != nil {
			return nil, err
		}
	}
	return w.buf, nil
}

func UnmarshalVoteRequest(buf []byte) (*VoteRequest, error) {
	r := newReader(buf)
	voteBytes, err := r.readField()
	if err != nil {
		return nil, err
	}
	if len(voteBytes) != 4 {
		return nil, fmt.Errorf("wire: vote field must be exactly 4 bytes, got %d", len(voteBytes))
	}
	vote := binary.BigEndian.Uint32(voteBytes)

	a, err := r.readField()
	if err != nil {
		return nil, err
	}
	b, err := r.readField()
	if err != nil {
		return nil, err
	}
	alpha, err := r.readField()
	if err != nil {
		return nil, err
	}
	beta, err := r.readField()
	if err != nil {
		return nil, err
	}
	ka, err := r.readField()
	if err != nil {
		return nil, err
	}
	kb, err := r.readField()
	if err != nil {
		return nil, err
	}
	if err := r.finish(); err != nil {
		return nil, err
	}
	return &VoteRequest{Vote: vote, A: a, B: b, Alpha: alpha, Beta: beta, Ka: ka, Kb: kb}, nil
}

// VoteResponse carries the session id and fresh challenge.
type VoteResponse struct {
	AuthSessionID string
	Challenge     []byte
}

func (r VoteResponse) MarshalWire() ([]byte, error) {
	w := &writer{}
	if err := w.writeString(r.AuthSessionID); err != nil {
		return nil, err
	}
	if err := w.writeField(r.Challenge); err != nil {
		return nil, err
	}
	return w.buf, nil
}

func UnmarshalVoteResponse(buf []byte) (*VoteResponse, error) {
	r := newReader(buf)
	sid, err := r.readString()
	if err != nil {
		return nil, err
	}
	challenge, err := r.readField()
	if err != nil {
		return nil, err
	}
	if err := r.finish(); err != nil {
		return nil, err
	}
	return &VoteResponse{AuthSessionID: sid, Challenge: challenge}, nil
}

// ValidateVoteRequest carries the session id, the vote the client is
// confirming, and the Chaum-Pedersen solution.
type ValidateVoteRequest struct {
	AuthSessionID string
	Vote          uint32
	Solution      []byte
}

func (r ValidateVoteRequest) MarshalWire() ([]byte, error) {
	w := &writer{}
	if err := w.writeString(r.AuthSessionID); err != nil {
		return nil, err
	}
	var voteBuf [4]byte
	binary.BigEndian.PutUint32(voteBuf[:], r.Vote)
	if err := w.writeField(voteBuf[:]); err != nil {
		return nil, err
	}
	if err := w.writeField(r.Solution); err != nil {
		return nil, err
	}
	return w.buf, nil
}

func UnmarshalValidateVoteRequest(buf []byte) (*ValidateVoteRequest, error) {
	r := newReader(buf)
	sid, err := r.readString()
	if err != nil {
		return nil, err
	}
	voteBytes, err := r.readField()
	if err != nil {
		return nil, err
	}
	if len(voteBytes) != 4 {
		return nil, fmt.Errorf("wire: vote field must be exactly 4 bytes, got %d", len(voteBytes))
	}
	solution, err := r.readField()
	if err != nil {
		return nil, err
	}
	if err := r.finish(); err != nil {
		return nil, err
	}
	return &ValidateVoteRequest{
		AuthSessionID: sid,
		Vote:          binary.BigEndian.Uint32(voteBytes),
		Solution:      solution,
	}, nil
}

// ValidateVoteResponse is empty on success.
type ValidateVoteResponse struct{}

func (ValidateVoteResponse) MarshalWire() ([]byte, error) { return []byte{}, nil }

func UnmarshalValidateVoteResponse(buf []byte) (*ValidateVoteResponse, error) {
	if len(buf) != 0 {
		return nil, fmt.Errorf("wire: ValidateVoteResponse must be empty, got %d bytes", len(buf))
	}
	return &ValidateVoteResponse{}, nil
}
