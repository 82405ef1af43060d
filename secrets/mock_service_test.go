package secrets_test

import (
	"context"
	"testing"

	"github.com/killshot-app/killshot/secrets"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockService(t *testing.T) {
	ctx := context.Background()
	svc := secrets.NewMockService()
	defer svc.Close()

	first, err := svc.Read(ctx, "jwt-secret")
	require.NoError(t, err)
	assert.NotEmpty(t, first)

	again, err := svc.Read(ctx, "jwt-secret")
	require.NoError(t, err)
	assert.Equal(t, first, again)

	b, err := svc.ReadBinary(ctx, "jwt-secret")
	require.NoError(t, err)
	assert.Len(t, b, 32)

	require.NoError(t, svc.Rotate(ctx, "jwt-secret"))
	rotated, err := svc.Read(ctx, "jwt-secret")
	require.NoError(t, err)
	assert.NotEqual(t, first, rotated)
}
