// Package nonce guards against replay of verified typed-data signatures.
// A signed digest is treated as a one-time nonce for its signer.
package nonce

import (
	"context"
	"errors"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

const (
	// DefaultTTL is how long a consumed digest stays blocked
	DefaultTTL = 24 * time.Hour
)

// Store tracks digests per signer.
// Implementations can use Redis, in-memory, or other backends
type Store interface {
	// Reserve claims a digest for a signer before verification.
	// Returns ErrAlreadyUsed if the digest is already used or reserved
	Reserve(ctx context.Context, signer common.Address, digest common.Hash) error

	// MarkUsed consumes a reserved digest (after successful verification)
	MarkUsed(ctx context.Context, signer common.Address, digest common.Hash) error

	// Release drops a reservation (on verification failure, allows retry)
	Release(ctx context.Context, signer common.Address, digest common.Hash) error
}

// Error definitions
var (
	ErrAlreadyUsed = errors.New("signature digest already used or reserved")
)
