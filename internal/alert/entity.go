// AngelaMos | 2026
// entity.go

package alert

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type Alert struct {
	ID          string          `db:"id"`
	UserID      string          `db:"user_id"`
	Origin      string          `db:"origin"`
	Destination string          `db:"destination"`
	DepartDate  time.Time       `db:"depart_date"`
	ReturnDate  *time.Time      `db:"return_date"`
	MaxPrice    decimal.Decimal `db:"max_price"`
	Airlines    *string         `db:"airlines"`
	CabinClass  *string         `db:"cabin_class"`
	Status      Status          `db:"status"`
	CreatedAt   time.Time       `db:"created_at"`
	UpdatedAt   time.Time       `db:"updated_at"`
}

// Status is persisted as its ordinal.
type Status int

const (
	StatusActive Status = iota
	StatusPaused
)

func (s Status) String() string {
	switch s {
	case StatusActive:
		return "Active"
	case StatusPaused:
		return "Paused"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// ParseStatus matches status names case-insensitively.
func ParseStatus(s string) (Status, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "active":
		return StatusActive, true
	case "paused":
		return StatusPaused, true
	default:
		return 0, false
	}
}

// Toggled flips Active to Paused. Every other status becomes Active.
func (s Status) Toggled() Status {
	if s == StatusActive {
		return StatusPaused
	}
	return StatusActive
}

// JoinAirlines encodes airline codes as one comma-joined column value. An
// empty list is stored as NULL, never as an empty string.
func JoinAirlines(codes []string) *string {
	if len(codes) == 0 {
		return nil
	}
	joined := strings.Join(codes, ",")
	return &joined
}

// SplitAirlines is the inverse of JoinAirlines. NULL and blank values
// decode to an empty, non-nil list.
func SplitAirlines(stored *string) []string {
	if stored == nil || strings.TrimSpace(*stored) == "" {
		return []string{}
	}
	return strings.Split(*stored, ",")
}
