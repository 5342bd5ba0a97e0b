package handlers

import (
	"net/http"
	"time"

	"github.com/crucial707/blog-api/internal/apperror"
	"github.com/crucial707/blog-api/internal/auth"
	"github.com/crucial707/blog-api/internal/metrics"
	"github.com/crucial707/blog-api/internal/models"
	"github.com/crucial707/blog-api/internal/repo"
	"github.com/crucial707/blog-api/internal/respond"
)

// errBadCredentials is deliberately the same for unknown email and wrong password.
var errBadCredentials = apperror.NewAuth("invalid email or password")

// ==========================
// Auth Handler
// ==========================
type AuthHandler struct {
	UserRepo *repo.UserRepo
	Auth     *auth.Service

	RegisterTTL  time.Duration
	LoginTTL     time.Duration
	CookieSecure bool
}

type publicUser struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

type authResponse struct {
	Message string     `json:"message"`
	User    publicUser `json:"user"`
}

func toPublic(u *models.User) publicUser {
	return publicUser{ID: u.ID, Username: u.Username, Email: u.Email}
}

// ==========================
// Register
// ==========================
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Username string `json:"username" validate:"required,max=255"`
		Email    string `json:"email" validate:"required,email,max=255"`
		// bcrypt rejects input past 72 bytes.
		Password string `json:"password" validate:"required,maxbytes=72"`
	}
	if err := decodeJSON(r, &input); err != nil {
		writeError(w, r, err)
		return
	}
	if err := validateStruct(input); err != nil {
		metrics.IncAuth("register", "invalid")
		writeError(w, r, err)
		return
	}

	existing, err := h.UserRepo.FindByEmail(r.Context(), input.Email)
	if err != nil {
		metrics.IncAuth("register", "error")
		writeError(w, r, err)
		return
	}
	if existing != nil {
		metrics.IncAuth("register", "conflict")
		writeError(w, r, apperror.NewConflict("email already in use", nil))
		return
	}

	// A concurrent registration can still win the race; the unique index
	// turns that into a Conflict error here.
	user, err := h.UserRepo.Create(r.Context(), input.Username, input.Email, input.Password)
	if err != nil {
		if apperror.IsConflict(err) {
			metrics.IncAuth("register", "conflict")
		} else {
			metrics.IncAuth("register", "error")
		}
		writeError(w, r, err)
		return
	}

	if !h.startSession(w, r, user, h.RegisterTTL) {
		return
	}
	metrics.IncAuth("register", "success")
	respond.JSON(w, http.StatusCreated, authResponse{Message: "account created", User: toPublic(user)})
}

// ==========================
// Login
// ==========================
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Email    string `json:"email" validate:"required"`
		Password string `json:"password" validate:"required"`
	}
	if err := decodeJSON(r, &input); err != nil {
		writeError(w, r, err)
		return
	}
	if err := validateStruct(input); err != nil {
		metrics.IncAuth("login", "invalid")
		writeError(w, r, err)
		return
	}

	user, err := h.UserRepo.FindByEmail(r.Context(), input.Email)
	if err != nil {
		metrics.IncAuth("login", "error")
		writeError(w, r, err)
		return
	}
	if user == nil || !h.Auth.VerifyPassword(input.Password, user.PasswordHash) {
		metrics.IncAuth("login", "denied")
		writeError(w, r, errBadCredentials)
		return
	}

	if !h.startSession(w, r, user, h.LoginTTL) {
		return
	}
	metrics.IncAuth("login", "success")
	respond.JSON(w, http.StatusOK, authResponse{Message: "logged in", User: toPublic(user)})
}

// ==========================
// Logout
// ==========================
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	auth.ClearTokenCookie(w, h.CookieSecure)
	respond.Message(w, http.StatusOK, "logged out")
}

// startSession issues a token for user and sets the session cookie. It
// writes the error response itself and reports whether the caller may continue.
func (h *AuthHandler) startSession(w http.ResponseWriter, r *http.Request, user *models.User, ttl time.Duration) bool {
	token, err := h.Auth.IssueToken(auth.Claims{
		ID:       user.ID,
		Username: user.Username,
		Role:     user.Role,
	}, ttl)
	if err != nil {
		writeError(w, r, apperror.New(apperror.Internal, "failed to issue token", err))
		return false
	}
	auth.SetTokenCookie(w, token, ttl, h.CookieSecure)
	return true
}
