// Package config centralises the server's runtime configuration: listen
// addresses, the active group profile, the vote options, and logging.
package config

import (
	"fmt"

	"github.com/kymani37299/anonvote/internal/zkp"
)

// GroupProfile selects which GroupParams table the server runs against.
type GroupProfile string

const (
	// ProfileProduction selects the RFC-5114-style 1024-bit group.
	ProfileProduction GroupProfile = "production"
	// ProfileTiny selects the deterministic (P=23, Q=11, alpha=4) group,
	// intended only for tests and local development.
	ProfileTiny GroupProfile = "tiny"
)

// Config is the complete set of knobs the server binary accepts.
type Config struct {
	// ListenAddress is where the RPC server binds, e.g. "127.0.0.1:50051".
	ListenAddress string `json:"listen_address"`

	// MetricsAddress is where the Prometheus HTTP handler binds.
	MetricsAddress string `json:"metrics_address"`

	// GroupProfile selects the group the ZKP core operates over.
	GroupProfile GroupProfile `json:"group_profile"`

	// VoteOptions is the ordered candidate list; len(VoteOptions) is the
	// engine's VoteOptionCount.
	VoteOptions []string `json:"vote_options"`

	// LogLevel is a zap level name: "debug", "info", "warn", "error".
	LogLevel string `json:"log_level"`

	// RequireGenerator, when true, rejects registrations whose alpha
	// component does not match the active group's generator.
	RequireGenerator bool `json:"require_generator"`
}

// Default returns the server's out-of-the-box configuration.
func Default() Config {
	return Config{
		ListenAddress:    "127.0.0.1:50051",
		MetricsAddress:   "127.0.0.1:9090",
		GroupProfile:     ProfileProduction,
		VoteOptions:      []string{"candidate-a", "candidate-b", "candidate-c"},
		LogLevel:         "info",
		RequireGenerator: true,
	}
}

// Group resolves c's GroupProfile to a concrete zkp.GroupParams.
func (c Config) Group() (zkp.GroupParams, error) {
	switch c.GroupProfile {
	case ProfileProduction:
		return zkp.Production(), nil
	case ProfileTiny:
		return zkp.Tiny(), nil
	default:
		return zkp.GroupParams{}, fmt.Errorf("config: unknown group_profile %q", c.GroupProfile)
	}
}

// Validate reports a non-nil error if c cannot be used to start a server.
func (c Config) Validate() error {
	if c.ListenAddress == "" {
		return fmt.Errorf("config: listen_address must not be empty")
	}
	if len(c.VoteOptions) == 0 {
		return fmt.Errorf("config: vote_options must contain at least one candidate")
	}
	switch c.GroupProfile {
	case ProfileProduction, ProfileTiny:
	default:
		return fmt.Errorf("config: unknown group_profile %q", c.GroupProfile)
	}
	return nil
}
