package app

import (
	"context"
	"log/slog"

	"github.com/jsamuelsen/quote-api/internal/domain"
	"github.com/jsamuelsen/quote-api/internal/platform/logging"
	"github.com/jsamuelsen/quote-api/internal/ports"
)

// UserService exposes the read-only user directory.
type UserService struct {
	users  ports.UserDirectory
	logger *slog.Logger
}

// NewUserService creates a user service. Panics if users is nil.
func NewUserService(users ports.UserDirectory, logger *slog.Logger) *UserService {
	if users == nil {
		panic("UserService: UserDirectory is required")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &UserService{
		users:  users,
		logger: logger.With(slog.String("component", "app.UserService")),
	}
}

// ListUsers returns every user.
func (s *UserService) ListUsers(ctx context.Context) []domain.User {
	return s.users.List(ctx)
}

// GetUser returns one user by id.
func (s *UserService) GetUser(ctx context.Context, id int) (domain.User, error) {
	user, err := s.users.Get(ctx, id)
	if err != nil {
		logging.FromContextOr(ctx, s.logger).DebugContext(ctx, "user lookup failed",
			slog.Int("user_id", id),
			slog.Any("error", err),
		)

		return domain.User{}, err
	}

	return user, nil
}
