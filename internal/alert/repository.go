// AngelaMos | 2026
// repository.go

package alert

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/carterperez-dev/flightalerts/internal/core"
)

type Repository interface {
	Create(ctx context.Context, alert *Alert) error
	GetByID(ctx context.Context, id string) (*Alert, error)
	ListByUserID(ctx context.Context, userID string) ([]Alert, error)
	Update(ctx context.Context, alert *Alert) error
	UpdateStatus(
		ctx context.Context,
		id string,
		status Status,
		updatedAt time.Time,
	) error
	Delete(ctx context.Context, id string) error
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

const alertColumns = `
	id, user_id, origin, destination, depart_date, return_date,
	max_price, airlines, cabin_class, status, created_at, updated_at`

func (r *repository) Create(ctx context.Context, alert *Alert) error {
	query := r.db.Rebind(`
		INSERT INTO alerts (` + alertColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)

	_, err := r.db.ExecContext(ctx, query,
		alert.ID,
		alert.UserID,
		alert.Origin,
		alert.Destination,
		alert.DepartDate,
		alert.ReturnDate,
		alert.MaxPrice,
		alert.Airlines,
		alert.CabinClass,
		int(alert.Status),
		alert.CreatedAt,
		alert.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create alert: %w", err)
	}

	return nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*Alert, error) {
	query := r.db.Rebind(`
		SELECT ` + alertColumns + `
		FROM alerts
		WHERE id = ?`)

	var alert Alert
	err := r.db.GetContext(ctx, &alert, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get alert: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get alert: %w", err)
	}

	return &alert, nil
}

func (r *repository) ListByUserID(
	ctx context.Context,
	userID string,
) ([]Alert, error) {
	query := r.db.Rebind(`
		SELECT ` + alertColumns + `
		FROM alerts
		WHERE user_id = ?
		ORDER BY created_at`)

	alerts := []Alert{}
	if err := r.db.SelectContext(ctx, &alerts, query, userID); err != nil {
		return nil, fmt.Errorf("list alerts for user: %w", err)
	}

	return alerts, nil
}

// Update rewrites every mutable column. user_id and created_at are fixed
// at creation.
func (r *repository) Update(ctx context.Context, alert *Alert) error {
	query := r.db.Rebind(`
		UPDATE alerts
		SET origin = ?, destination = ?, depart_date = ?, return_date = ?,
		    max_price = ?, airlines = ?, cabin_class = ?, status = ?,
		    updated_at = ?
		WHERE id = ?`)

	result, err := r.db.ExecContext(ctx, query,
		alert.Origin,
		alert.Destination,
		alert.DepartDate,
		alert.ReturnDate,
		alert.MaxPrice,
		alert.Airlines,
		alert.CabinClass,
		int(alert.Status),
		alert.UpdatedAt,
		alert.ID,
	)
	if err != nil {
		return fmt.Errorf("update alert: %w", err)
	}

	return requireAffected(result, "update alert")
}

func (r *repository) UpdateStatus(
	ctx context.Context,
	id string,
	status Status,
	updatedAt time.Time,
) error {
	query := r.db.Rebind(`
		UPDATE alerts
		SET status = ?, updated_at = ?
		WHERE id = ?`)

	result, err := r.db.ExecContext(ctx, query, int(status), updatedAt, id)
	if err != nil {
		return fmt.Errorf("update alert status: %w", err)
	}

	return requireAffected(result, "update alert status")
}

func (r *repository) Delete(ctx context.Context, id string) error {
	query := r.db.Rebind(`DELETE FROM alerts WHERE id = ?`)

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete alert: %w", err)
	}

	return requireAffected(result, "delete alert")
}

func requireAffected(result sql.Result, op string) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if rows == 0 {
		return fmt.Errorf("%s: %w", op, core.ErrNotFound)
	}

	return nil
}
