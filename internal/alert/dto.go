// AngelaMos | 2026
// dto.go

package alert

import (
	"time"

	"github.com/shopspring/decimal"
)

type CreateAlertRequest struct {
	Origin      string           `json:"origin"      validate:"required,max=16"`
	Destination string           `json:"destination" validate:"required,max=16"`
	DepartDate  *Date            `json:"depart_date" validate:"required"`
	ReturnDate  *Date            `json:"return_date"`
	MaxPrice    *decimal.Decimal `json:"max_price"   validate:"required"`
	Airlines    []string         `json:"airlines"    validate:"omitempty,dive,excludesall=0x2C"`
	CabinClass  string           `json:"cabin_class" validate:"max=32"`
}

// UpdateAlertRequest is a partial update. See Service.UpdateAlert for the
// per-field rules; ReturnDate is the one field where absence clears.
type UpdateAlertRequest struct {
	Origin      string           `json:"origin"      validate:"max=16"`
	Destination string           `json:"destination" validate:"max=16"`
	DepartDate  *Date            `json:"depart_date"`
	ReturnDate  *Date            `json:"return_date"`
	MaxPrice    *decimal.Decimal `json:"max_price"`
	Airlines    []string         `json:"airlines"    validate:"omitempty,dive,excludesall=0x2C"`
	CabinClass  string           `json:"cabin_class" validate:"max=32"`
	Status      string           `json:"status"`
}

type AlertResponse struct {
	ID          string          `json:"id"`
	UserID      string          `json:"user_id"`
	Origin      string          `json:"origin"`
	Destination string          `json:"destination"`
	DepartDate  Date            `json:"depart_date"`
	ReturnDate  *Date           `json:"return_date"`
	MaxPrice    decimal.Decimal `json:"max_price"`
	Airlines    []string        `json:"airlines"`
	CabinClass  *string         `json:"cabin_class"`
	Status      string          `json:"status"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

type ToggleResponse struct {
	Message string `json:"message"`
	Status  string `json:"status"`
}

func ToAlertResponse(a *Alert) AlertResponse {
	return AlertResponse{
		ID:          a.ID,
		UserID:      a.UserID,
		Origin:      a.Origin,
		Destination: a.Destination,
		DepartDate:  NewDate(a.DepartDate),
		ReturnDate:  datePtr(a.ReturnDate),
		MaxPrice:    a.MaxPrice,
		Airlines:    SplitAirlines(a.Airlines),
		CabinClass:  a.CabinClass,
		Status:      a.Status.String(),
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

func ToAlertResponseList(alerts []Alert) []AlertResponse {
	responses := make([]AlertResponse, 0, len(alerts))
	for _, a := range alerts {
		responses = append(responses, ToAlertResponse(&a))
	}
	return responses
}
