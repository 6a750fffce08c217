package lists

import (
	"errors"
	"net/http"

	"pocketcart/internal/domain/items"
	listsdomain "pocketcart/internal/domain/lists"
	"pocketcart/internal/transport/httpserver/middleware"
)

const metricKind = "list"

type createListRequest struct {
	Name  string           `json:"name"`
	Items items.Collection `json:"items"`
}

type updateListRequest struct {
	Name  *string          `json:"name"`
	Items items.Collection `json:"items"`
}

func (h *Handlers) ListLists(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "not_authenticated", "Not authenticated")
		return
	}

	found, err := h.Lists.ListLists(r.Context(), user.ID)
	if err != nil {
		h.log.InternalError("lists.list: failed", err, "user_id", user.ID)
		writeError(w, http.StatusInternalServerError, "internal_error", "failed to list shopping lists")
		return
	}

	writeJSON(w, http.StatusOK, found)
}

func (h *Handlers) GetList(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "not_authenticated", "Not authenticated")
		return
	}

	id, valid := pathID(r)
	if !valid {
		writeError(w, http.StatusNotFound, "not_found", "shopping list not found")
		return
	}
	found, err := h.Lists.GetList(r.Context(), user.ID, id)
	if err != nil {
		if errors.Is(err, listsdomain.ErrListNotFound) {
			h.log.BusinessError("lists.get: not found", err, "user_id", user.ID, "list_id", id)
			writeError(w, http.StatusNotFound, "not_found", "shopping list not found")
			return
		}
		h.log.InternalError("lists.get: failed", err, "user_id", user.ID, "list_id", id)
		writeError(w, http.StatusInternalServerError, "internal_error", "failed to load shopping list")
		return
	}

	writeJSON(w, http.StatusOK, found)
}

func (h *Handlers) CreateList(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "not_authenticated", "Not authenticated")
		return
	}

	var req createListRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json")
		return
	}

	created, err := h.Lists.CreateList(r.Context(), listsdomain.CreateListInput{
		UserID: user.ID,
		Name:   req.Name,
		Items:  req.Items,
	})
	if err != nil {
		h.writeWriteError(w, "lists.create", err, user.ID, "")
		return
	}

	h.metrics.ItemWrite(metricKind, "ok")
	writeJSON(w, http.StatusCreated, created)
}

func (h *Handlers) UpdateList(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "not_authenticated", "Not authenticated")
		return
	}

	id, valid := pathID(r)
	if !valid {
		writeError(w, http.StatusNotFound, "not_found", "shopping list not found")
		return
	}
	var req updateListRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	if req.Items == nil {
		writeError(w, http.StatusBadRequest, "validation_error", "items is required")
		return
	}

	updated, err := h.Lists.UpdateList(r.Context(), listsdomain.UpdateListInput{
		ID:     id,
		UserID: user.ID,
		Name:   req.Name,
		Items:  req.Items,
	})
	if err != nil {
		h.writeWriteError(w, "lists.update", err, user.ID, id)
		return
	}

	h.metrics.ItemWrite(metricKind, "ok")
	writeJSON(w, http.StatusOK, updated)
}

func (h *Handlers) DeleteList(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "not_authenticated", "Not authenticated")
		return
	}

	id, valid := pathID(r)
	if !valid {
		writeError(w, http.StatusNotFound, "not_found", "shopping list not found")
		return
	}
	if err := h.Lists.DeleteList(r.Context(), user.ID, id); err != nil {
		if errors.Is(err, listsdomain.ErrListNotFound) {
			h.log.BusinessError("lists.delete: not found", err, "user_id", user.ID, "list_id", id)
			writeError(w, http.StatusNotFound, "not_found", "shopping list not found")
			return
		}
		h.log.InternalError("lists.delete: failed", err, "user_id", user.ID, "list_id", id)
		writeError(w, http.StatusInternalServerError, "internal_error", "failed to delete shopping list")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) writeWriteError(w http.ResponseWriter, action string, err error, userID, listID string) {
	switch {
	case writeItemsError(w, err):
		h.metrics.ItemWrite(metricKind, "rejected")
		h.log.BusinessError(action+": invalid items", err, "user_id", userID, "list_id", listID)
	case errors.Is(err, listsdomain.ErrNameRequired):
		h.log.BusinessError(action+": name required", err, "user_id", userID)
		writeError(w, http.StatusBadRequest, "validation_error", "name is required")
	case errors.Is(err, listsdomain.ErrListNotFound):
		h.log.BusinessError(action+": not found", err, "user_id", userID, "list_id", listID)
		writeError(w, http.StatusNotFound, "not_found", "shopping list not found")
	default:
		h.metrics.ItemWrite(metricKind, "error")
		h.log.InternalError(action+": failed", err, "user_id", userID, "list_id", listID)
		writeError(w, http.StatusInternalServerError, "internal_error", "failed to save shopping list")
	}
}
