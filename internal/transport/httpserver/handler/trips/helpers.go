package trips

import (
	"errors"
	"net/http"
	"strings"
	"time"

	commonhandler "pocketcart/internal/transport/httpserver/handler/common"
)

var errInvalidTripDate = errors.New("invalid trip_date")

func writeError(w http.ResponseWriter, status int, code, message string) {
	commonhandler.WriteError(w, status, code, message)
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	commonhandler.WriteJSON(w, status, payload)
}

func decodeJSON(r *http.Request, dst interface{}) error {
	return commonhandler.DecodeJSON(r, dst)
}

func writeItemsError(w http.ResponseWriter, err error) bool {
	return commonhandler.WriteItemsError(w, err)
}

func pathID(r *http.Request) (string, bool) {
	return commonhandler.PathID(r)
}

// parseTripDate accepts an RFC 3339 instant or a calendar date, which is
// taken as midnight in loc.
func parseTripDate(value *string, loc *time.Location) (*time.Time, error) {
	if value == nil {
		return nil, nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil, nil
	}
	if parsed, err := time.Parse(time.RFC3339Nano, trimmed); err == nil {
		return &parsed, nil
	}
	parsed, err := time.ParseInLocation("2006-01-02", trimmed, loc)
	if err != nil {
		return nil, errInvalidTripDate
	}
	return &parsed, nil
}
