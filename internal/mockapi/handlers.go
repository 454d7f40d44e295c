package mockapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/netdash/netdash/internal/model"
)

type contextKey string

const claimsKey contextKey = "claims"

// Version reported by the health endpoint.
const Version = "1.0.0"

// Handler serves the mock backend endpoints.
type Handler struct {
	store  *Store
	tokens *TokenService
}

// NewHandler creates the endpoint handler.
func NewHandler(store *Store, tokens *TokenService) *Handler {
	return &Handler{store: store, tokens: tokens}
}

// sendJSON sends a JSON response
func sendJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// sendDetail sends an error response in the backend's {"detail": ...} shape.
func sendDetail(w http.ResponseWriter, status int, detail interface{}) {
	sendJSON(w, status, map[string]interface{}{"detail": detail})
}

// validationDetail is one entry of a 422 response body.
type validationDetail struct {
	Msg string `json:"msg"`
}

// Health handles GET /health
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	sendJSON(w, http.StatusOK, model.Health{
		Status:      "healthy",
		Timestamp:   time.Now().UTC(),
		Version:     Version,
		Environment: "mock",
	})
}

// Login handles POST /api/auth/login
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendDetail(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	var problems []validationDetail
	if strings.TrimSpace(req.Username) == "" {
		problems = append(problems, validationDetail{Msg: "username is required"})
	}
	if req.Password == "" {
		problems = append(problems, validationDetail{Msg: "password is required"})
	}
	if len(problems) > 0 {
		sendDetail(w, http.StatusUnprocessableEntity, problems)
		return
	}

	user, ok := h.store.Authenticate(req.Username, req.Password)
	if !ok {
		sendDetail(w, http.StatusUnauthorized, "Invalid username or password")
		return
	}

	tokenString, err := h.tokens.Issue(*user)
	if err != nil {
		sendDetail(w, http.StatusInternalServerError, "Could not issue token")
		return
	}

	sendJSON(w, http.StatusOK, model.LoginResponse{
		AccessToken: tokenString,
		TokenType:   "bearer",
		User:        *user,
	})
}

// Me handles GET /api/auth/me
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r.Context())
	user, ok := h.store.UserByID(claims.Subject)
	if !ok {
		sendDetail(w, http.StatusNotFound, "User not found")
		return
	}
	sendJSON(w, http.StatusOK, user)
}

// ListUsers handles GET /api/auth/users (admin only)
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	sendJSON(w, http.StatusOK, h.store.Users())
}

// CreateUser handles POST /api/auth/users (admin only)
func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req model.CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendDetail(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	var problems []validationDetail
	if strings.TrimSpace(req.Username) == "" {
		problems = append(problems, validationDetail{Msg: "username is required"})
	}
	if len(req.Password) < 6 {
		problems = append(problems, validationDetail{Msg: "password must be at least 6 characters"})
	}
	if req.Role == model.RoleUnknown {
		problems = append(problems, validationDetail{Msg: "role must be one of: administrator, operator, viewer"})
	}
	if len(problems) > 0 {
		sendDetail(w, http.StatusUnprocessableEntity, problems)
		return
	}

	user, err := h.store.CreateUser(strings.TrimSpace(req.Username), req.Password, req.Role)
	if err != nil {
		if errors.Is(err, errUserExists) {
			sendDetail(w, http.StatusUnprocessableEntity, []validationDetail{{Msg: "username already taken"}})
			return
		}
		sendDetail(w, http.StatusInternalServerError, "Could not create user")
		return
	}

	sendJSON(w, http.StatusCreated, user)
}

// DeleteUser handles DELETE /api/auth/users/{id} (admin only)
func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	claims := claimsFrom(r.Context())

	if id == claims.Subject {
		sendDetail(w, http.StatusBadRequest, "Cannot delete your own account")
		return
	}

	if err := h.store.DeleteUser(id); err != nil {
		sendDetail(w, http.StatusNotFound, "User not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ChangePassword handles PUT /api/auth/users/{id}/password (admin only)
func (h *Handler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req model.ChangePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendDetail(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if len(req.NewPassword) < 6 {
		sendDetail(w, http.StatusUnprocessableEntity, []validationDetail{{Msg: "password must be at least 6 characters"}})
		return
	}

	if err := h.store.SetPassword(id, req.NewPassword); err != nil {
		sendDetail(w, http.StatusNotFound, "User not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListDevices handles GET /api/devices
func (h *Handler) ListDevices(w http.ResponseWriter, r *http.Request) {
	sendJSON(w, http.StatusOK, h.store.Devices())
}

// requireAuth validates the bearer token and stores its claims in the
// request context.
func (h *Handler) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			sendDetail(w, http.StatusUnauthorized, "Not authenticated")
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			sendDetail(w, http.StatusUnauthorized, "Invalid authorization header format")
			return
		}

		claims, err := h.tokens.Validate(parts[1])
		if err != nil {
			sendDetail(w, http.StatusUnauthorized, "Invalid or expired token")
			return
		}

		ctx := context.WithValue(r.Context(), claimsKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requireAdmin rejects non-administrator sessions.
func (h *Handler) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims := claimsFrom(r.Context())
		if claims == nil || model.ParseRole(claims.Role) != model.RoleAdministrator {
			sendDetail(w, http.StatusForbidden, "Not enough permissions")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func claimsFrom(ctx context.Context) *Claims {
	claims, _ := ctx.Value(claimsKey).(*Claims)
	return claims
}
