package memory

import (
	"context"
	"slices"
	"strconv"

	"github.com/jsamuelsen/quote-api/internal/domain"
)

// UserDirectory is an immutable list of users fixed at construction.
type UserDirectory struct {
	users []domain.User
}

// NewUserDirectory copies users into a read-only directory.
func NewUserDirectory(users []domain.User) *UserDirectory {
	return &UserDirectory{users: slices.Clone(users)}
}

// List returns every user in seed order.
func (d *UserDirectory) List(_ context.Context) []domain.User {
	return slices.Clone(d.users)
}

// Get returns the user with the given id.
func (d *UserDirectory) Get(_ context.Context, id int) (domain.User, error) {
	idx := slices.IndexFunc(d.users, func(u domain.User) bool {
		return u.ID == id
	})
	if idx < 0 {
		return domain.User{}, domain.NewNotFoundError("user", strconv.Itoa(id))
	}

	return d.users[idx], nil
}
