// AngelaMos | 2026
// service.go

package user

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"github.com/carterperez-dev/flightalerts/internal/core"
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  func() time.Time { return time.Now().UTC() },
	}
}

func (s *Service) GetUser(ctx context.Context, id string) (*User, error) {
	ctx, span := core.StartSpan(ctx, "user.Get", attribute.String("user.id", id))
	user, err := s.repo.GetByID(ctx, id)
	core.EndSpan(span, err)
	return user, err
}

func (s *Service) ListUsers(ctx context.Context) ([]User, error) {
	ctx, span := core.StartSpan(ctx, "user.List")
	users, err := s.repo.List(ctx)
	core.EndSpan(span, err)
	return users, err
}

func (s *Service) CreateUser(
	ctx context.Context,
	req CreateUserRequest,
) (user *User, err error) {
	ctx, span := core.StartSpan(ctx, "user.Create")
	defer func() { core.EndSpan(span, err) }()

	now := s.now()
	user = &User{
		ID:          uuid.New().String(),
		Email:       req.Email,
		Name:        req.Name,
		DeviceToken: optional(req.DeviceToken),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// UpdateUser overwrites only the non-empty fields of req. updated_at is
// refreshed even when nothing else changes.
func (s *Service) UpdateUser(
	ctx context.Context,
	id string,
	req UpdateUserRequest,
) (err error) {
	ctx, span := core.StartSpan(ctx, "user.Update", attribute.String("user.id", id))
	defer func() { core.EndSpan(span, err) }()

	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if req.Name != "" {
		user.Name = req.Name
	}

	if req.DeviceToken != "" {
		user.DeviceToken = &req.DeviceToken
	}

	if now := s.now(); now.After(user.UpdatedAt) {
		user.UpdatedAt = now
	}

	return s.repo.Update(ctx, user)
}

// DeleteUser removes the user row only; alerts owned by the user stay.
func (s *Service) DeleteUser(ctx context.Context, id string) error {
	ctx, span := core.StartSpan(ctx, "user.Delete", attribute.String("user.id", id))
	err := s.repo.Delete(ctx, id)
	core.EndSpan(span, err)
	return err
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
