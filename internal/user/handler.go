package user

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"mywallet-api/internal/session"
	"mywallet-api/pkg/validate"
)

// Handler exposes HTTP endpoints for identity operations (signUp / login).
type Handler struct {
	svc     *UserService
	sessSvc *session.SessionService
	logger  *zap.SugaredLogger
}

func NewHandler(db *sqlx.DB, logger *zap.SugaredLogger) *Handler {
	return &Handler{
		svc:     NewUserService(db, nil, nil),
		sessSvc: session.NewSessionService(db, nil),
		logger:  logger,
	}
}

// SignUpRequest request body for the signUp endpoint.
type SignUpRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) SignUp(w http.ResponseWriter, r *http.Request) {
	var req SignUpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Debugw("invalid signUp payload", "err", err)
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
		return
	}
	u, err := h.svc.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		var verrs validate.Errors
		switch {
		case errors.As(err, &verrs):
			h.writeJSON(w, http.StatusUnprocessableEntity, verrs)
		case errors.Is(err, ErrEmailTaken):
			h.writeJSON(w, http.StatusForbidden, map[string]string{"error": "Existing Email"})
		default:
			h.logger.Errorw("signUp failed", "err", err)
			h.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Could not register the user. Try again later"})
		}
		return
	}
	h.writeJSON(w, http.StatusCreated, u.Public())
}

// LoginRequest login payload.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse carries the issued bearer token alongside the denormalized
// identity fields.
type LoginResponse struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Token string `json:"token"`
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Debugw("invalid login payload", "err", err)
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
		return
	}
	u, err := h.svc.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		var verrs validate.Errors
		switch {
		case errors.As(err, &verrs):
			h.writeJSON(w, http.StatusUnprocessableEntity, verrs)
		case errors.Is(err, ErrUserNotFound):
			h.writeJSON(w, http.StatusNotFound, map[string]string{"error": "User not found"})
		case errors.Is(err, ErrBadCredentials):
			// the original contract reports a wrong password as 422, not 401
			h.writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": "Incorrect Password"})
		default:
			h.logger.Errorw("login failed", "err", err)
			h.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Could not log you in. Try again later"})
		}
		return
	}
	sess, err := h.sessSvc.Create(r.Context(), u)
	if err != nil {
		h.logger.Errorw("session create failed", "err", err)
		h.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Could not log you in. Try again later"})
		return
	}
	h.writeJSON(w, http.StatusCreated, LoginResponse{Name: sess.Name, Email: sess.Email, Token: sess.Token})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
