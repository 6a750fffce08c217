package lists

import (
	"net/http"

	commonhandler "pocketcart/internal/transport/httpserver/handler/common"
)

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
