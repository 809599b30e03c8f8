// AngelaMos | 2026
// entity.go

package user

import (
	"time"
)

type User struct {
	ID          string    `db:"id"`
	Email       string    `db:"email"`
	Name        string    `db:"name"`
	DeviceToken *string   `db:"device_token"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}
