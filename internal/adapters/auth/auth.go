// Package auth verifies the bearer tokens presented to the HTTP API.
package auth

import (
	"context"
	"errors"
)

var ErrUnauthenticated = errors.New("unauthenticated")

// Identity is the verified caller.
type Identity struct {
	UID   string
	Email string
}

// Verifier turns a bearer token into an Identity. An empty token is passed
// through so implementations decide whether anonymous calls are allowed.
type Verifier interface {
	Verify(ctx context.Context, token string) (*Identity, error)
}

// DevUID is the identity used for anonymous calls when auth is disabled.
const DevUID = "local-dev"

// DevVerifier accepts every call. A non-empty token is taken as the uid so
// several local users can be simulated.
type DevVerifier struct{}

func (DevVerifier) Verify(_ context.Context, token string) (*Identity, error) {
	if token == "" {
		return &Identity{UID: DevUID}, nil
	}
	return &Identity{UID: token}, nil
}
