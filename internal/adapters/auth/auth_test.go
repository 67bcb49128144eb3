package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PabloGalante/planforge/internal/adapters/auth"
)

func TestDevVerifier(t *testing.T) {
	var v auth.Verifier = auth.DevVerifier{}

	id, err := v.Verify(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, auth.DevUID, id.UID)

	id, err = v.Verify(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, "alice", id.UID)
}
