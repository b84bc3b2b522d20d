package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/quote-api/internal/adapters/memory"
	"github.com/jsamuelsen/quote-api/internal/domain"
)

func TestUserService(t *testing.T) {
	ctx := context.Background()
	svc := NewUserService(memory.NewUserDirectory(memory.SeedUsers()), discard)

	assert.Len(t, svc.ListUsers(ctx), 3)

	u, err := svc.GetUser(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, "Charlie Brown", u.Name)

	_, err = svc.GetUser(ctx, 99)
	assert.True(t, domain.IsNotFound(err))
}

func TestNewUserService_PanicsWithoutDirectory(t *testing.T) {
	assert.Panics(t, func() { NewUserService(nil, nil) })
}

func TestNameService(t *testing.T) {
	ctx := context.Background()
	svc := NewNameService(memory.NewNameList(), nil)

	names, err := svc.AddName(ctx, "Ada")
	require.NoError(t, err)
	assert.Equal(t, []string{"Ada"}, names)

	_, err = svc.AddName(ctx, " ")
	assert.True(t, domain.IsValidation(err))

	svc.ClearNames(ctx)
	assert.Empty(t, svc.ListNames(ctx))
}

func TestNewNameService_PanicsWithoutRepository(t *testing.T) {
	assert.Panics(t, func() { NewNameService(nil, nil) })
}
