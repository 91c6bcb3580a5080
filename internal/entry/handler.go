package entry

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"mywallet-api/internal/session"
	"mywallet-api/pkg/validate"
)

// Handler exposes HTTP endpoints for entry CRUD. Every route is mounted
// behind the session guard, so the session is always on the context here.
type Handler struct {
	svc    *EntryService
	logger *zap.SugaredLogger
}

func NewHandler(db *sqlx.DB, logger *zap.SugaredLogger) *Handler {
	return &Handler{svc: NewEntryService(db, nil), logger: logger}
}

// CreateRequest request body for entry registration.
type CreateRequest struct {
	Date        string   `json:"date"`
	Description string   `json:"description"`
	Type        string   `json:"type"`
	Value       *float64 `json:"value"`
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	sess := session.FromContext(r.Context())

	var req CreateRequest
	if err := decodeBody(r, &req); err != nil {
		h.writeDecodeError(w, err)
		return
	}
	e, err := h.svc.Create(r.Context(), sess.UserID, CreateInput{
		Date:        req.Date,
		Description: req.Description,
		Type:        req.Type,
		Value:       req.Value,
	})
	if err != nil {
		var verrs validate.Errors
		if errors.As(err, &verrs) {
			h.writeJSON(w, http.StatusUnprocessableEntity, verrs)
			return
		}
		h.logger.Errorw("entry create failed", "err", err)
		h.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Could not register your entries. Try again later"})
		return
	}
	h.writeJSON(w, http.StatusCreated, e)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	sess := session.FromContext(r.Context())

	entries, err := h.svc.List(r.Context(), sess.UserID)
	if err != nil {
		h.logger.Errorw("entry list failed", "err", err)
		h.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Could not get your entries. Try again later"})
		return
	}
	h.writeJSON(w, http.StatusOK, entries)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	sess := session.FromContext(r.Context())
	entryID := r.PathValue("entryId")

	var fields map[string]any
	if err := decodeBody(r, &fields); err != nil {
		h.writeDecodeError(w, err)
		return
	}
	ack, err := h.svc.Update(r.Context(), sess.UserID, entryID, fields)
	if err != nil {
		var verrs validate.Errors
		switch {
		case errors.As(err, &verrs):
			h.writeJSON(w, http.StatusUnprocessableEntity, verrs)
		case errors.Is(err, ErrNotFound):
			h.writeJSON(w, http.StatusNotFound, map[string]string{"error": "Not able to find this entry. Try again later"})
		case errors.Is(err, ErrForbidden):
			h.writeJSON(w, http.StatusForbidden, map[string]string{"error": "Forbidden"})
		default:
			h.logger.Errorw("entry update failed", "err", err)
			h.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Could not update your entry. Try again later"})
		}
		return
	}
	h.writeJSON(w, http.StatusOK, ack)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	sess := session.FromContext(r.Context())
	entryID := r.PathValue("entryId")

	ack, err := h.svc.Delete(r.Context(), sess.UserID, entryID)
	if err != nil {
		if errors.Is(err, ErrForbidden) {
			h.writeJSON(w, http.StatusForbidden, map[string]string{"error": "Forbidden"})
			return
		}
		h.logger.Errorw("entry delete failed", "err", err)
		h.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Could not delete your entry. Try again later"})
		return
	}
	h.writeJSON(w, http.StatusOK, ack)
}

func decodeBody(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}

// writeDecodeError maps a JSON type mismatch to a 422 field error so clients
// see the offending field, and any other malformed body to a plain 400.
func (h *Handler) writeDecodeError(w http.ResponseWriter, err error) {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		h.writeJSON(w, http.StatusUnprocessableEntity, validate.Errors{
			{Field: typeErr.Field, Message: "must be a " + typeErr.Type.String()},
		})
		return
	}
	h.logger.Debugw("invalid entry payload", "err", err)
	h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
