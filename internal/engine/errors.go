package engine

import "fmt"

// Kind classifies an engine failure into one of three transport-agnostic
// buckets; only internal/rpcserver ever turns a Kind into a status code.
type Kind int

const (
	// InvalidArgument marks caller-visible validation failures.
	InvalidArgument Kind = iota
	// AlreadyExists marks uniqueness violations.
	AlreadyExists
	// Internal marks server-side race outcomes and randomness-source failures.
	Internal
)

func (k Kind) String() string {
	switch k {
	case InvalidArgument:
		return "InvalidArgument"
	case AlreadyExists:
		return "AlreadyExists"
	case Internal:
		return "Internal"
	default:
		return "Unknown"
	}
}

// Error is the engine's only error type. Code is a short machine-stable
// tag (only populated for the three internal race outcomes); Message is
// the human-readable text a caller is allowed to see.
type Error struct {
	Kind    Kind
	Code    string
	Message string
}

func (e *Error) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s %s: %s", e.Kind, e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func invalidArgument(msg string) *Error { return &Error{Kind: InvalidArgument, Message: msg} }
func alreadyExists(msg string) *Error   { return &Error{Kind: AlreadyExists, Message: msg} }
func internalRace(code, msg string) *Error {
	return &Error{Kind: Internal, Code: code, Message: msg}
}
