package rest

import (
	"net/http"

	"github.com/louissosthenes9/campus-stay-api/internal/contextkeys"
	"github.com/louissosthenes9/campus-stay-api/internal/contracts"
	"github.com/louissosthenes9/campus-stay-api/internal/core/port"
	"github.com/louissosthenes9/campus-stay-api/internal/core/port/usecases_port"
)

// AuthHandlers - регистрация, вход и профиль
type AuthHandlers struct {
	registerUC    usecases_port.RegisterUserUseCasePort
	loginUC       usecases_port.LoginUserUseCasePort
	refreshUC     usecases_port.RefreshTokenUseCasePort
	verifyEmailUC usecases_port.VerifyEmailUseCasePort
	getMeUC       usecases_port.GetMeUseCasePort
}

func NewAuthHandlers(registerUC usecases_port.RegisterUserUseCasePort,
	loginUC usecases_port.LoginUserUseCasePort,
	refreshUC usecases_port.RefreshTokenUseCasePort,
	verifyEmailUC usecases_port.VerifyEmailUseCasePort,
	getMeUC usecases_port.GetMeUseCasePort) *AuthHandlers {
	return &AuthHandlers{
		registerUC:    registerUC,
		loginUC:       loginUC,
		refreshUC:     refreshUC,
		verifyEmailUC: verifyEmailUC,
		getMeUC:       getMeUC,
	}
}

// Register обрабатывает POST /api/v1/auth/register
func (h *AuthHandlers) Register(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "Register"})

	var req RegisterRequest
	if err := decodeBody(r, contracts.RegisterUserV1, &req); err != nil {
		respondWithError(w, logger, err, "Invalid request body")
		return
	}

	// без пароля!
	handlerLogger := logger.WithFields(port.Fields{"username": req.Username, "role": req.Role})
	handlerLogger.Info("Processing register request", nil)

	account, tokens, err := h.registerUC.Execute(r.Context(), req.toInput())
	if err != nil {
		respondWithError(w, handlerLogger, err, "Failed to register user")
		return
	}

	handlerLogger.Info("User registered successfully", port.Fields{
		"user_id":       account.User.ID.String(),
		"tokens_issued": tokens != nil,
	})
	resp := RegisterResponse{Account: toAccountResponse(account)}
	if tokens != nil {
		tr := toTokenResponse(tokens)
		resp.Tokens = &tr
	}
	RespondWithJSON(w, http.StatusCreated, resp)
}

// Login обрабатывает POST /api/v1/auth/login
func (h *AuthHandlers) Login(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "Login"})

	var req LoginRequest
	if err := decodeBody(r, contracts.LoginV1, &req); err != nil {
		respondWithError(w, logger, err, "Invalid request body")
		return
	}

	handlerLogger := logger.WithFields(port.Fields{"login": req.Login})
	handlerLogger.Info("Processing login request", nil)

	user, tokens, err := h.loginUC.Execute(r.Context(), req.Login, req.Password)
	if err != nil {
		respondWithError(w, handlerLogger, err, "Internal server error")
		return
	}

	handlerLogger.Info("User logged in successfully", port.Fields{"user_id": user.ID.String()})
	RespondWithJSON(w, http.StatusOK, AuthResponse{User: toUserResponse(*user), Tokens: toTokenResponse(tokens)})
}

// Refresh обрабатывает POST /api/v1/auth/refresh
func (h *AuthHandlers) Refresh(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "Refresh"})

	var req RefreshTokenRequest
	if err := decodeBody(r, contracts.RefreshTokenV1, &req); err != nil {
		respondWithError(w, logger, err, "Invalid request body")
		return
	}

	tokens, err := h.refreshUC.Execute(r.Context(), req.RefreshToken)
	if err != nil {
		respondWithError(w, logger, err, "Failed to refresh token")
		return
	}
	RespondWithJSON(w, http.StatusOK, toTokenResponse(tokens))
}

// VerifyEmail обрабатывает GET /api/v1/auth/verify-email?token=...
func (h *AuthHandlers) VerifyEmail(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "VerifyEmail"})

	token := r.URL.Query().Get("token")
	if token == "" {
		WriteJSONError(w, http.StatusBadRequest, "token query parameter is required")
		return
	}

	if err := h.verifyEmailUC.Execute(r.Context(), token); err != nil {
		respondWithError(w, logger, err, "Failed to verify email")
		return
	}

	logger.Info("Email verified", nil)
	RespondWithJSON(w, http.StatusOK, map[string]string{"status": "verified"})
}

// Me обрабатывает GET /api/v1/auth/me
func (h *AuthHandlers) Me(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "Me"})

	principal, ok := requirePrincipal(w, r)
	if !ok {
		return
	}

	account, err := h.getMeUC.Execute(r.Context(), principal)
	if err != nil {
		respondWithError(w, logger, err, "Failed to load account")
		return
	}
	RespondWithJSON(w, http.StatusOK, toAccountResponse(account))
}
