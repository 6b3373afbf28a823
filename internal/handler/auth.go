package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/sbstocks/stocksim/internal/auth"
	"github.com/sbstocks/stocksim/internal/domain"
	"github.com/sbstocks/stocksim/internal/service"
)

// sessionCookieName is the cookie the API sets at login and clears at
// logout.
const sessionCookieName = "token"

// AuthHandler handles HTTP requests for registration and sessions.
type AuthHandler struct {
	authSvc      *service.AuthService
	tokens       *auth.TokenManager
	secureCookie bool
}

// NewAuthHandler creates a new AuthHandler. secureCookie marks the
// session cookie Secure for deployments behind TLS.
func NewAuthHandler(authSvc *service.AuthService, tokens *auth.TokenManager, secureCookie bool) *AuthHandler {
	return &AuthHandler{
		authSvc:      authSvc,
		tokens:       tokens,
		secureCookie: secureCookie,
	}
}

// registerRequest is the JSON request body for POST /api/auth/register.
type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// loginRequest is the JSON request body for POST /api/auth/login.
type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// userResponse is the public view of a user.
type userResponse struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Email     string  `json:"email"`
	Role      string  `json:"role"`
	Balance   float64 `json:"balance"`
	CreatedAt string  `json:"created_at"`
}

// sessionResponse is the JSON response for register and login.
type sessionResponse struct {
	User  userResponse `json:"user"`
	Token string       `json:"token"`
}

func toUserResponse(u *domain.User) userResponse {
	// Balance mutates under the user's Mu during trades.
	u.Mu.Lock()
	balance := u.Balance
	u.Mu.Unlock()

	return userResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      string(u.Role),
		Balance:   domain.AmountToFloat(balance),
		CreatedAt: u.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"),
	}
}

// Register handles POST /api/auth/register.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := ParseJSON(r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	user, err := h.authSvc.Register(service.RegisterRequest{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		mapAuthError(w, err)
		return
	}

	h.startSession(w, r, http.StatusCreated, user)
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := ParseJSON(r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	user, err := h.authSvc.Login(req.Email, req.Password)
	if err != nil {
		mapAuthError(w, err)
		return
	}

	h.startSession(w, r, http.StatusOK, user)
}

// startSession issues a token, sets the session cookie, and writes the
// session response.
func (h *AuthHandler) startSession(w http.ResponseWriter, r *http.Request, status int, user *domain.User) {
	token, expiresAt, err := h.tokens.Issue(user.ID)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "internal_error", "An unexpected error occurred")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteStrictMode,
	})

	WriteJSON(w, status, sessionResponse{
		User:  toUserResponse(user),
		Token: token,
	})
}

// Logout handles POST /api/auth/logout. Clears the session cookie.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteStrictMode,
	})
	WriteJSON(w, http.StatusOK, map[string]string{"message": "Logged out successfully"})
}

// Me handles GET /api/auth/me.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		WriteError(w, http.StatusUnauthorized, "unauthorized", "Not authorized, no token")
		return
	}
	WriteJSON(w, http.StatusOK, toUserResponse(user))
}

// mapAuthError maps domain errors to HTTP responses for auth endpoints.
func mapAuthError(w http.ResponseWriter, err error) {
	var validationErr *domain.ValidationError
	if errors.As(err, &validationErr) {
		WriteError(w, http.StatusBadRequest, "validation_error", validationErr.Message)
		return
	}

	switch {
	case errors.Is(err, domain.ErrEmailTaken):
		WriteError(w, http.StatusBadRequest, "email_already_registered", "User already exists")
	case errors.Is(err, domain.ErrInvalidCredentials):
		WriteError(w, http.StatusUnauthorized, "invalid_credentials", "Invalid email or password")
	case errors.Is(err, domain.ErrUserNotFound):
		WriteError(w, http.StatusNotFound, "user_not_found", "User not found")
	default:
		WriteError(w, http.StatusInternalServerError, "internal_error", "An unexpected error occurred")
	}
}
