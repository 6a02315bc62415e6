// Package auth implements the two-role credential check and session tokens.
// Patients log in with their registered name; the nutritionist (admin) logs
// in with email and password.
package auth

import (
	"context"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/nutridash/nutridash-server/internal/model"
	"github.com/nutridash/nutridash-server/internal/store"
)

// Roles carried by principals and tokens.
const (
	RolePatient = "patient"
	RoleAdmin   = "admin"
)

// Login types accepted by Authenticate.
const (
	LoginPatient = "patient"
	LoginAdmin   = "admin"
)

// Principal is an authenticated actor.
type Principal struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Role string `json:"role"`
}

// LoginRequest is the discriminated credential payload. Type selects which
// fields are consulted.
type LoginRequest struct {
	Type     string `json:"type" validate:"required,oneof=patient admin"`
	Name     string `json:"name,omitempty"`
	Email    string `json:"email,omitempty"`
	Password string `json:"password,omitempty"`
}

// Authorizer validates credentials and returns the matching principal.
type Authorizer interface {
	Authenticate(ctx context.Context, req LoginRequest) (*Principal, error)
}

// AdminCredentials are the nutritionist's configured login.
type AdminCredentials struct {
	Email        string
	PasswordHash string
}

// StoreAuthorizer authenticates patients against the Profile tab and the
// admin against configured credentials.
type StoreAuthorizer struct {
	store store.Store
	admin AdminCredentials
}

// NewStoreAuthorizer builds the default Authorizer.
func NewStoreAuthorizer(s store.Store, admin AdminCredentials) *StoreAuthorizer {
	return &StoreAuthorizer{store: s, admin: admin}
}

var _ Authorizer = (*StoreAuthorizer)(nil)

// Authenticate validates the request for its login type. Failures come back
// as typed validation errors so the handler can answer 401 without leaking
// which field was wrong.
func (a *StoreAuthorizer) Authenticate(ctx context.Context, req LoginRequest) (*Principal, error) {
	switch req.Type {
	case LoginPatient:
		return a.authenticatePatient(ctx, req.Name)
	case LoginAdmin:
		return a.authenticateAdmin(req.Email, req.Password)
	default:
		return nil, model.NewValidationError("type", "unknown login type")
	}
}

func (a *StoreAuthorizer) authenticatePatient(ctx context.Context, name string) (*Principal, error) {
	if strings.TrimSpace(name) == "" {
		return nil, model.NewValidationError("name", "name is required")
	}
	patients, err := a.store.Patients().List(ctx)
	if err != nil {
		return nil, err
	}
	for _, p := range patients {
		if strings.EqualFold(strings.TrimSpace(p.Name), strings.TrimSpace(name)) {
			return &Principal{ID: p.UserID, Name: p.Name, Role: RolePatient}, nil
		}
	}
	return nil, model.NewNotFoundError("name", "no patient with that name")
}

func (a *StoreAuthorizer) authenticateAdmin(email, password string) (*Principal, error) {
	if email == "" || password == "" {
		return nil, model.NewValidationError("credentials", "email and password are required")
	}
	if a.admin.Email == "" || !strings.EqualFold(email, a.admin.Email) {
		return nil, model.NewValidationError("credentials", "invalid credentials")
	}
	if bcrypt.CompareHashAndPassword([]byte(a.admin.PasswordHash), []byte(password)) != nil {
		return nil, model.NewValidationError("credentials", "invalid credentials")
	}
	return &Principal{ID: a.admin.Email, Name: "admin", Role: RoleAdmin}, nil
}

// HashPassword produces the bcrypt hash stored in configuration.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
