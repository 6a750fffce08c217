package trips

import (
	"context"
	"errors"
	"net/http"

	tripsdomain "pocketcart/internal/domain/trips"
	"pocketcart/internal/transport/httpserver/middleware"
)

type historyFunc func(ctx context.Context, userID string, filter tripsdomain.Filter) (tripsdomain.History, error)

// ListTrips serves every trip, optionally bounded by startDate and endDate.
func (h *Handlers) ListTrips(w http.ResponseWriter, r *http.Request) {
	h.serveHistory(w, r, "trips.list", h.Trips.ListTrips)
}

// History serves the trips of a required date range with the total spent.
func (h *Handlers) History(w http.ResponseWriter, r *http.Request) {
	h.serveHistory(w, r, "trips.history", h.Trips.History)
}

func (h *Handlers) serveHistory(w http.ResponseWriter, r *http.Request, action string, load historyFunc) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "not_authenticated", "Not authenticated")
		return
	}

	query := r.URL.Query()
	start, end, err := tripsdomain.ParseRange(query.Get("startDate"), query.Get("endDate"), h.Trips.Location())
	if err != nil {
		h.writeRangeError(w, action, err, user.ID)
		return
	}

	result, err := load(r.Context(), user.ID, tripsdomain.Filter{Start: start, End: end})
	if err != nil {
		if errors.Is(err, tripsdomain.ErrRangeRequired) || errors.Is(err, tripsdomain.ErrInvalidRange) {
			h.writeRangeError(w, action, err, user.ID)
			return
		}
		h.log.InternalError(action+": failed", err, "user_id", user.ID)
		writeError(w, http.StatusInternalServerError, "internal_error", "failed to load shopping trips")
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (h *Handlers) writeRangeError(w http.ResponseWriter, action string, err error, userID string) {
	h.log.BusinessError(action+": invalid range", err, "user_id", userID)
	if errors.Is(err, tripsdomain.ErrRangeRequired) {
		writeError(w, http.StatusBadRequest, "range_required", "startDate and endDate are required")
		return
	}
	writeError(w, http.StatusBadRequest, "invalid_range", err.Error())
}
