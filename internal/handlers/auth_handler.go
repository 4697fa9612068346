package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"interviewprep/internal/middleware"
	"interviewprep/internal/models"
	"interviewprep/internal/repositories"
	"interviewprep/internal/utils"
)

// AuthHandler manages authentication endpoints.
type AuthHandler struct {
	Repo      *repositories.UserRepository
	JWTSecret string
	logger    *zap.Logger
}

func NewAuthHandler(repo *repositories.UserRepository, jwtSecret string, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{Repo: repo, JWTSecret: jwtSecret, logger: logger}
}

type authResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
}

func (h *AuthHandler) RegisterHandler(w http.ResponseWriter, r *http.Request) {
	req := middleware.GetValidatedRequest[*models.RegisterRequest](r)

	if existing, _ := h.Repo.GetUserByUsername(req.Username); existing != nil {
		utils.JSONError(w, http.StatusConflict, "Username already exists. Please choose a different one.")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.JSONError(w, http.StatusInternalServerError, "Failed to create account.")
		return
	}
	user := &models.User{Username: req.Username, PasswordHash: string(hash)}
	if err := h.Repo.CreateUser(user); err != nil {
		h.logger.Error("failed to create user", zap.Error(err))
		utils.JSONError(w, http.StatusInternalServerError, "Failed to create account.")
		return
	}

	h.logger.Info("account created", zap.Uint("user_id", user.ID))
	utils.JSON(w, http.StatusCreated, map[string]any{
		"id":       user.ID,
		"username": user.Username,
		"message":  "Account created successfully! Please log in.",
	})
}

func (h *AuthHandler) LoginHandler(w http.ResponseWriter, r *http.Request) {
	req := middleware.GetValidatedRequest[*models.LoginRequest](r)

	user, err := h.Repo.GetUserByUsername(req.Username)
	if err != nil {
		if !errors.Is(err, repositories.ErrUserNotFound) {
			h.logger.Error("login lookup failed", zap.Error(err))
		}
		utils.JSONError(w, http.StatusUnauthorized, "Invalid username or password.")
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		utils.JSONError(w, http.StatusUnauthorized, "Invalid username or password.")
		return
	}

	claims := jwt.MapClaims{
		"sub":      user.ID,
		"username": user.Username,
		"exp":      time.Now().Add(24 * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(h.JWTSecret))
	if err != nil {
		utils.JSONError(w, http.StatusInternalServerError, "Failed to sign token.")
		return
	}
	utils.JSON(w, http.StatusOK, authResponse{Token: signed, Username: user.Username})
}

// LogoutHandler clears the caller's active session pointers. The token itself
// simply expires client-side.
func (h *AuthHandler) LogoutHandler(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r)
	if err := h.Repo.ClearActiveSessions(userID); err != nil {
		h.logger.Error("failed to clear active sessions on logout", zap.Uint("user_id", userID), zap.Error(err))
	}
	w.WriteHeader(http.StatusNoContent)
}
