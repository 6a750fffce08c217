package trips

import (
	"errors"
	"net/http"

	"pocketcart/internal/domain/items"
	tripsdomain "pocketcart/internal/domain/trips"
	"pocketcart/internal/transport/httpserver/middleware"
)

const metricKind = "trip"

type createTripRequest struct {
	Items    items.Collection `json:"items"`
	ListID   *string          `json:"list_id"`
	TripDate *string          `json:"trip_date"`
}

type updateTripRequest struct {
	Items    items.Collection `json:"items"`
	ListID   *string          `json:"list_id"`
	TripDate *string          `json:"trip_date"`
}

func (h *Handlers) CurrentTrip(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "not_authenticated", "Not authenticated")
		return
	}

	trip, err := h.Trips.CurrentTrip(r.Context(), user.ID)
	if err != nil {
		h.log.InternalError("trips.current: failed", err, "user_id", user.ID)
		writeError(w, http.StatusInternalServerError, "internal_error", "failed to load current trip")
		return
	}

	writeJSON(w, http.StatusOK, trip)
}

func (h *Handlers) GetTrip(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "not_authenticated", "Not authenticated")
		return
	}

	id, valid := pathID(r)
	if !valid {
		writeError(w, http.StatusNotFound, "not_found", "shopping trip not found")
		return
	}
	trip, err := h.Trips.GetTrip(r.Context(), user.ID, id)
	if err != nil {
		if errors.Is(err, tripsdomain.ErrTripNotFound) {
			h.log.BusinessError("trips.get: not found", err, "user_id", user.ID, "trip_id", id)
			writeError(w, http.StatusNotFound, "not_found", "shopping trip not found")
			return
		}
		h.log.InternalError("trips.get: failed", err, "user_id", user.ID, "trip_id", id)
		writeError(w, http.StatusInternalServerError, "internal_error", "failed to load shopping trip")
		return
	}

	writeJSON(w, http.StatusOK, trip)
}

func (h *Handlers) CreateTrip(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "not_authenticated", "Not authenticated")
		return
	}

	var req createTripRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	tripDate, err := parseTripDate(req.TripDate, h.Trips.Location())
	if err != nil {
		writeError(w, http.StatusBadRequest, "validation_error", err.Error())
		return
	}

	created, err := h.Trips.CreateTrip(r.Context(), tripsdomain.CreateTripInput{
		UserID:   user.ID,
		Items:    req.Items,
		ListID:   req.ListID,
		TripDate: tripDate,
	})
	if err != nil {
		h.writeWriteError(w, "trips.create", err, user.ID, "")
		return
	}

	h.metrics.ItemWrite(metricKind, "ok")
	writeJSON(w, http.StatusCreated, created)
}

func (h *Handlers) UpdateTrip(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "not_authenticated", "Not authenticated")
		return
	}

	id, valid := pathID(r)
	if !valid {
		writeError(w, http.StatusNotFound, "not_found", "shopping trip not found")
		return
	}
	var req updateTripRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	if req.Items == nil {
		writeError(w, http.StatusBadRequest, "validation_error", "items is required")
		return
	}
	tripDate, err := parseTripDate(req.TripDate, h.Trips.Location())
	if err != nil {
		writeError(w, http.StatusBadRequest, "validation_error", err.Error())
		return
	}

	updated, err := h.Trips.UpdateTrip(r.Context(), tripsdomain.UpdateTripInput{
		ID:       id,
		UserID:   user.ID,
		Items:    req.Items,
		ListID:   req.ListID,
		TripDate: tripDate,
	})
	if err != nil {
		h.writeWriteError(w, "trips.update", err, user.ID, id)
		return
	}

	h.metrics.ItemWrite(metricKind, "ok")
	writeJSON(w, http.StatusOK, updated)
}

func (h *Handlers) DeleteTrip(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "not_authenticated", "Not authenticated")
		return
	}

	id, valid := pathID(r)
	if !valid {
		writeError(w, http.StatusNotFound, "not_found", "shopping trip not found")
		return
	}
	if err := h.Trips.DeleteTrip(r.Context(), user.ID, id); err != nil {
		if errors.Is(err, tripsdomain.ErrTripNotFound) {
			h.log.BusinessError("trips.delete: not found", err, "user_id", user.ID, "trip_id", id)
			writeError(w, http.StatusNotFound, "not_found", "shopping trip not found")
			return
		}
		h.log.InternalError("trips.delete: failed", err, "user_id", user.ID, "trip_id", id)
		writeError(w, http.StatusInternalServerError, "internal_error", "failed to delete shopping trip")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) Checkout(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "not_authenticated", "Not authenticated")
		return
	}

	result, err := h.Trips.Checkout(r.Context(), user.ID)
	if err != nil {
		if errors.Is(err, tripsdomain.ErrEmptyTrip) {
			h.log.BusinessError("trips.checkout: empty trip", err, "user_id", user.ID)
			writeError(w, http.StatusUnprocessableEntity, "empty_trip", "no items to checkout")
			return
		}
		h.log.InternalError("trips.checkout: failed", err, "user_id", user.ID)
		writeError(w, http.StatusInternalServerError, "internal_error", "failed to checkout")
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (h *Handlers) writeWriteError(w http.ResponseWriter, action string, err error, userID, tripID string) {
	switch {
	case writeItemsError(w, err):
		h.metrics.ItemWrite(metricKind, "rejected")
		h.log.BusinessError(action+": invalid items", err, "user_id", userID, "trip_id", tripID)
	case errors.Is(err, tripsdomain.ErrTripClosed):
		h.log.BusinessError(action+": trip closed", err, "user_id", userID, "trip_id", tripID)
		writeError(w, http.StatusConflict, "trip_closed", "shopping trip is closed")
	case errors.Is(err, tripsdomain.ErrTripNotFound):
		h.log.BusinessError(action+": not found", err, "user_id", userID, "trip_id", tripID)
		writeError(w, http.StatusNotFound, "not_found", "shopping trip not found")
	default:
		h.metrics.ItemWrite(metricKind, "error")
		h.log.InternalError(action+": failed", err, "user_id", userID, "trip_id", tripID)
		writeError(w, http.StatusInternalServerError, "internal_error", "failed to save shopping trip")
	}
}
