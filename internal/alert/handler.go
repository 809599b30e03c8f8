// AngelaMos | 2026
// handler.go

package alert

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/carterperez-dev/flightalerts/internal/core"
)

const priceScale = 2

// maxPrice is the first value NUMERIC(12,2) cannot store.
var maxPrice = decimal.New(1, 10)

type Handler struct {
	service   *Service
	validator *validator.Validate
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		service:   service,
		validator: core.NewValidator(),
	}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/alerts", func(r chi.Router) {
		r.Get("/user/{userID}", h.ListUserAlerts)
		r.Post("/user/{userID}", h.CreateAlert)

		r.Get("/{alertID}", h.GetAlert)
		r.Put("/{alertID}", h.UpdateAlert)
		r.Delete("/{alertID}", h.DeleteAlert)
		r.Post("/{alertID}/toggle", h.ToggleStatus)
	})
}

func (h *Handler) GetAlert(w http.ResponseWriter, r *http.Request) {
	alertID, ok := pathUUID(w, r, "alertID", "invalid alert id")
	if !ok {
		return
	}

	alert, err := h.service.GetAlert(r.Context(), alertID)
	if err != nil {
		h.writeError(w, err, "alert")
		return
	}

	core.OK(w, ToAlertResponse(alert))
}

func (h *Handler) ListUserAlerts(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathUUID(w, r, "userID", "invalid user id")
	if !ok {
		return
	}

	alerts, err := h.service.ListUserAlerts(r.Context(), userID)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToAlertResponseList(alerts))
}

func (h *Handler) CreateAlert(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathUUID(w, r, "userID", "invalid user id")
	if !ok {
		return
	}

	var req CreateAlertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	if msg, ok := checkPrice(*req.MaxPrice); !ok {
		core.BadRequest(w, msg)
		return
	}

	alert, err := h.service.CreateAlert(r.Context(), userID, req)
	if err != nil {
		h.writeError(w, err, "user")
		return
	}

	core.CreatedAt(w, "/alerts/"+alert.ID, ToAlertResponse(alert))
}

func (h *Handler) UpdateAlert(w http.ResponseWriter, r *http.Request) {
	alertID, ok := pathUUID(w, r, "alertID", "invalid alert id")
	if !ok {
		return
	}

	var req UpdateAlertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	if req.MaxPrice != nil {
		if msg, ok := checkPrice(*req.MaxPrice); !ok {
			core.BadRequest(w, msg)
			return
		}
	}

	if err := h.service.UpdateAlert(r.Context(), alertID, req); err != nil {
		h.writeError(w, err, "alert")
		return
	}

	core.Message(w, "alert updated successfully")
}

func (h *Handler) DeleteAlert(w http.ResponseWriter, r *http.Request) {
	alertID, ok := pathUUID(w, r, "alertID", "invalid alert id")
	if !ok {
		return
	}

	if err := h.service.DeleteAlert(r.Context(), alertID); err != nil {
		h.writeError(w, err, "alert")
		return
	}

	core.NoContent(w)
}

func (h *Handler) ToggleStatus(w http.ResponseWriter, r *http.Request) {
	alertID, ok := pathUUID(w, r, "alertID", "invalid alert id")
	if !ok {
		return
	}

	status, err := h.service.ToggleStatus(r.Context(), alertID)
	if err != nil {
		h.writeError(w, err, "alert")
		return
	}

	core.OK(w, ToggleResponse{
		Message: "alert status toggled successfully",
		Status:  status.String(),
	})
}

// checkPrice enforces what the max_price column can hold exactly.
func checkPrice(price decimal.Decimal) (string, bool) {
	if price.IsNegative() {
		return "max_price must not be negative", false
	}
	if price.Exponent() < -priceScale && !price.Equal(price.Round(priceScale)) {
		return "max_price must have at most 2 decimal places", false
	}
	if price.Abs().GreaterThanOrEqual(maxPrice) {
		return "max_price is too large", false
	}
	return "", true
}

// writeError maps a service error to a response. resource names what a
// not-found error refers to.
func (h *Handler) writeError(w http.ResponseWriter, err error, resource string) {
	switch {
	case errors.Is(err, core.ErrNotFound):
		core.NotFound(w, resource)
	case errors.Is(err, core.ErrInvalidInput):
		core.BadRequest(w, "invalid request")
	default:
		core.InternalServerError(w, err)
	}
}

func pathUUID(
	w http.ResponseWriter,
	r *http.Request,
	key, message string,
) (string, bool) {
	id, err := uuid.Parse(chi.URLParam(r, key))
	if err != nil {
		core.BadRequest(w, message)
		return "", false
	}
	return id.String(), true
}
