// AngelaMos | 2026
// dto.go

package user

import (
	"time"
)

type CreateUserRequest struct {
	Email       string `json:"email"        validate:"required,email,max=255"`
	Name        string `json:"name"         validate:"required,min=1,max=100"`
	DeviceToken string `json:"device_token" validate:"max=512"`
}

// UpdateUserRequest carries a partial update. Empty fields leave the
// stored value unchanged.
type UpdateUserRequest struct {
	Name        string `json:"name"         validate:"max=100"`
	DeviceToken string `json:"device_token" validate:"max=512"`
}

type UserResponse struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	Name        string    `json:"name"`
	DeviceToken *string   `json:"device_token"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func ToUserResponse(u *User) UserResponse {
	return UserResponse{
		ID:          u.ID,
		Email:       u.Email,
		Name:        u.Name,
		DeviceToken: u.DeviceToken,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}

func ToUserResponseList(users []User) []UserResponse {
	responses := make([]UserResponse, 0, len(users))
	for _, u := range users {
		responses = append(responses, ToUserResponse(&u))
	}
	return responses
}
