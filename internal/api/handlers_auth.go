package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"

	"github.com/nutridash/nutridash-server/internal/api/respond"
	"github.com/nutridash/nutridash-server/internal/auth"
)

// AuthHandler handles login and token issuance.
type AuthHandler struct {
	authorizer auth.Authorizer
	tokens     *auth.Tokens
	validate   *validator.Validate
}

func NewAuthHandler(a auth.Authorizer, t *auth.Tokens) *AuthHandler {
	return &AuthHandler{authorizer: a, tokens: t, validate: validator.New()}
}

type loginResponse struct {
	Token     string          `json:"token"`
	Principal *auth.Principal `json:"principal"`
}

// Login POST /api/auth/login
// Every credential failure answers 401 with the same message so the endpoint
// does not reveal which field was wrong.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req auth.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respond.WriteBadRequest(w, err.Error())
		return
	}

	principal, err := h.authorizer.Authenticate(r.Context(), req)
	if err != nil {
		log.Info().Err(err).Str("type", req.Type).Msg("Login rejected")
		respond.WriteUnauthorized(w, "invalid credentials")
		return
	}
	token, err := h.tokens.Issue(principal)
	if err != nil {
		respond.WriteInternalError(w, err.Error())
		return
	}
	respond.WriteJSON(w, http.StatusOK, loginResponse{Token: token, Principal: principal})
}
