// AngelaMos | 2026
// store.go

package admin

import (
	"context"
	"fmt"

	"github.com/carterperez-dev/flightalerts/internal/alert"
	"github.com/carterperez-dev/flightalerts/internal/core"
)

type Counts struct {
	Users          int
	AlertsByStatus map[alert.Status]int
}

type Counter interface {
	Count(ctx context.Context) (*Counts, error)
}

type store struct {
	db core.DBTX
}

func NewStore(db core.DBTX) Counter {
	return &store{db: db}
}

type statusCount struct {
	Status alert.Status `db:"status"`
	N      int          `db:"n"`
}

func (s *store) Count(ctx context.Context) (counts *Counts, err error) {
	ctx, span := core.StartSpan(ctx, "admin.Count")
	defer func() { core.EndSpan(span, err) }()

	counts = &Counts{AlertsByStatus: map[alert.Status]int{}}

	if err = s.db.GetContext(ctx, &counts.Users,
		`SELECT COUNT(*) FROM users`); err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}

	var rows []statusCount
	if err = s.db.SelectContext(ctx, &rows,
		`SELECT status, COUNT(*) AS n FROM alerts GROUP BY status`); err != nil {
		return nil, fmt.Errorf("count alerts: %w", err)
	}
	for _, row := range rows {
		counts.AlertsByStatus[row.Status] = row.N
	}

	return counts, nil
}
