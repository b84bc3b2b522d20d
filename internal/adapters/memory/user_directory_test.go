package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/quote-api/internal/domain"
)

func TestUserDirectory_List(t *testing.T) {
	dir := NewUserDirectory(SeedUsers())

	users := dir.List(context.Background())

	require.Len(t, users, 3)
	assert.Equal(t, "Alice Johnson", users[0].Name)
	assert.Equal(t, "viewer", users[2].Role)
}

func TestUserDirectory_Get(t *testing.T) {
	dir := NewUserDirectory(SeedUsers())

	tests := []struct {
		name     string
		id       int
		wantName string
		notFound bool
	}{
		{name: "first user", id: 1, wantName: "Alice Johnson"},
		{name: "last user", id: 3, wantName: "Charlie Brown"},
		{name: "unknown user", id: 99, notFound: true},
		{name: "zero id", id: 0, notFound: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, err := dir.Get(context.Background(), tt.id)

			if tt.notFound {
				assert.True(t, domain.IsNotFound(err))
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantName, user.Name)
		})
	}
}

func TestUserDirectory_IsolatedFromCaller(t *testing.T) {
	seed := SeedUsers()
	dir := NewUserDirectory(seed)

	seed[0].Name = "changed"

	user, err := dir.Get(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Alice Johnson", user.Name)
}

func TestNameList(t *testing.T) {
	ctx := context.Background()
	list := NewNameList()

	assert.Empty(t, list.List(ctx))

	names, err := list.Add(ctx, " Ada ")
	require.NoError(t, err)
	assert.Equal(t, []string{"Ada"}, names)

	names, err = list.Add(ctx, "Grace")
	require.NoError(t, err)
	assert.Equal(t, []string{"Ada", "Grace"}, names)

	_, err = list.Add(ctx, "   ")
	assert.True(t, domain.IsValidation(err))

	list.Clear(ctx)
	assert.NotNil(t, list.List(ctx))
	assert.Empty(t, list.List(ctx))
}
