// AngelaMos | 2026
// service.go

package alert

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"github.com/carterperez-dev/flightalerts/internal/core"
	"github.com/carterperez-dev/flightalerts/internal/user"
)

// UserProvider resolves the owner of a new alert.
type UserProvider interface {
	GetUser(ctx context.Context, id string) (*user.User, error)
}

type Service struct {
	repo  Repository
	users UserProvider
	now   func() time.Time
}

func NewService(repo Repository, users UserProvider) *Service {
	return &Service{
		repo:  repo,
		users: users,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

func (s *Service) GetAlert(ctx context.Context, id string) (*Alert, error) {
	ctx, span := core.StartSpan(ctx, "alert.Get", attribute.String("alert.id", id))
	alert, err := s.repo.GetByID(ctx, id)
	core.EndSpan(span, err)
	return alert, err
}

func (s *Service) ListUserAlerts(
	ctx context.Context,
	userID string,
) ([]Alert, error) {
	ctx, span := core.StartSpan(ctx, "alert.ListByUser",
		attribute.String("user.id", userID),
	)
	alerts, err := s.repo.ListByUserID(ctx, userID)
	core.EndSpan(span, err)
	return alerts, err
}

// CreateAlert fails with an error wrapping core.ErrNotFound when userID
// does not name an existing user. Nothing is written in that case.
func (s *Service) CreateAlert(
	ctx context.Context,
	userID string,
	req CreateAlertRequest,
) (alert *Alert, err error) {
	ctx, span := core.StartSpan(ctx, "alert.Create",
		attribute.String("user.id", userID),
	)
	defer func() { core.EndSpan(span, err) }()

	if _, err := s.users.GetUser(ctx, userID); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return nil, fmt.Errorf("user with ID %s: %w", userID, core.ErrNotFound)
		}
		return nil, fmt.Errorf("create alert: %w", err)
	}

	if req.DepartDate == nil || req.MaxPrice == nil {
		return nil, fmt.Errorf("create alert: depart date and max price: %w",
			core.ErrInvalidInput)
	}

	now := s.now()
	alert = &Alert{
		ID:          uuid.New().String(),
		UserID:      userID,
		Origin:      req.Origin,
		Destination: req.Destination,
		DepartDate:  req.DepartDate.Time,
		ReturnDate:  timePtr(req.ReturnDate),
		MaxPrice:    *req.MaxPrice,
		Airlines:    JoinAirlines(req.Airlines),
		CabinClass:  optional(req.CabinClass),
		Status:      StatusActive,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, alert); err != nil {
		return nil, err
	}

	return alert, nil
}

// UpdateAlert applies a partial update:
//   - origin, destination, cabin class: overwritten when non-empty
//   - depart date, max price: overwritten when present
//   - return date: always overwritten, so an absent value clears it
//   - airlines: overwritten only by a non-empty list
//   - status: overwritten only when it parses; anything else is ignored
//
// updated_at is refreshed unconditionally.
func (s *Service) UpdateAlert(
	ctx context.Context,
	id string,
	req UpdateAlertRequest,
) (err error) {
	ctx, span := core.StartSpan(ctx, "alert.Update", attribute.String("alert.id", id))
	defer func() { core.EndSpan(span, err) }()

	alert, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if req.Origin != "" {
		alert.Origin = req.Origin
	}

	if req.Destination != "" {
		alert.Destination = req.Destination
	}

	if req.DepartDate != nil {
		alert.DepartDate = req.DepartDate.Time
	}

	alert.ReturnDate = timePtr(req.ReturnDate)

	if req.MaxPrice != nil {
		alert.MaxPrice = *req.MaxPrice
	}

	if len(req.Airlines) > 0 {
		alert.Airlines = JoinAirlines(req.Airlines)
	}

	if req.CabinClass != "" {
		alert.CabinClass = &req.CabinClass
	}

	if req.Status != "" {
		if status, ok := ParseStatus(req.Status); ok {
			alert.Status = status
		} else {
			core.AddSpanEvent(ctx, "alert.status_ignored",
				attribute.String("status", req.Status),
			)
		}
	}

	alert.UpdatedAt = s.touch(alert.UpdatedAt)

	return s.repo.Update(ctx, alert)
}

func (s *Service) DeleteAlert(ctx context.Context, id string) error {
	ctx, span := core.StartSpan(ctx, "alert.Delete", attribute.String("alert.id", id))
	err := s.repo.Delete(ctx, id)
	core.EndSpan(span, err)
	return err
}

// ToggleStatus flips Active and Paused through the status-only update
// path and returns the new status.
func (s *Service) ToggleStatus(
	ctx context.Context,
	id string,
) (status Status, err error) {
	ctx, span := core.StartSpan(ctx, "alert.ToggleStatus",
		attribute.String("alert.id", id),
	)
	defer func() { core.EndSpan(span, err) }()

	alert, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return 0, err
	}

	status = alert.Status.Toggled()
	if err := s.repo.UpdateStatus(ctx, id, status, s.touch(alert.UpdatedAt)); err != nil {
		return 0, err
	}

	return status, nil
}

// touch returns the current time, or prev if the clock reads earlier.
func (s *Service) touch(prev time.Time) time.Time {
	if now := s.now(); now.After(prev) {
		return now
	}
	return prev
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
