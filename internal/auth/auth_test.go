package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nutridash/nutridash-server/internal/model"
	"github.com/nutridash/nutridash-server/internal/store/memstore"
)

func testAuthorizer(t *testing.T) *StoreAuthorizer {
	t.Helper()
	hash, err := HashPassword("s3cret")
	require.NoError(t, err)

	st := memstore.New().SeedPatient(&model.Patient{
		UserID: "111@s.whatsapp.net",
		Name:   "Maria Silva",
	})
	return NewStoreAuthorizer(st, AdminCredentials{Email: "nutri@example.com", PasswordHash: hash})
}

func TestAuthenticatePatientByName(t *testing.T) {
	a := testAuthorizer(t)

	p, err := a.Authenticate(context.Background(), LoginRequest{Type: LoginPatient, Name: "maria silva"})
	require.NoError(t, err)
	assert.Equal(t, "111@s.whatsapp.net", p.ID)
	assert.Equal(t, RolePatient, p.Role)
}

func TestAuthenticatePatientUnknownName(t *testing.T) {
	a := testAuthorizer(t)

	_, err := a.Authenticate(context.Background(), LoginRequest{Type: LoginPatient, Name: "ninguém"})
	assert.True(t, model.IsNotFoundError(err))
}

func TestAuthenticateAdmin(t *testing.T) {
	a := testAuthorizer(t)

	p, err := a.Authenticate(context.Background(), LoginRequest{Type: LoginAdmin, Email: "nutri@example.com", Password: "s3cret"})
	require.NoError(t, err)
	assert.Equal(t, RoleAdmin, p.Role)
}

func TestAuthenticateAdminWrongPassword(t *testing.T) {
	a := testAuthorizer(t)

	_, err := a.Authenticate(context.Background(), LoginRequest{Type: LoginAdmin, Email: "nutri@example.com", Password: "wrong"})
	assert.True(t, model.IsValidationError(err))
}

func TestAuthenticateUnknownType(t *testing.T) {
	a := testAuthorizer(t)

	_, err := a.Authenticate(context.Background(), LoginRequest{Type: "service"})
	assert.True(t, model.IsValidationError(err))
}

func TestTokenRoundTrip(t *testing.T) {
	tokens := NewTokens("test-secret", time.Hour)

	signed, err := tokens.Issue(&Principal{ID: "111@s.whatsapp.net", Name: "Maria", Role: RolePatient})
	require.NoError(t, err)

	p, err := tokens.Validate(signed)
	require.NoError(t, err)
	assert.Equal(t, "111@s.whatsapp.net", p.ID)
	assert.Equal(t, RolePatient, p.Role)
}

func TestTokenExpiry(t *testing.T) {
	tokens := NewTokens("test-secret", time.Minute)
	issuedAt := time.Now()
	tokens.now = func() time.Time { return issuedAt }

	signed, err := tokens.Issue(&Principal{ID: "u1", Role: RolePatient})
	require.NoError(t, err)

	tokens.now = func() time.Time { return issuedAt.Add(2 * time.Minute) }
	_, err = tokens.Validate(signed)
	assert.Error(t, err)
}

func TestTokenWrongSecretRejected(t *testing.T) {
	signed, err := NewTokens("secret-a", time.Hour).Issue(&Principal{ID: "u1", Role: RoleAdmin})
	require.NoError(t, err)

	_, err = NewTokens("secret-b", time.Hour).Validate(signed)
	assert.Error(t, err)
}

func TestMiddlewareAndAdminGuard(t *testing.T) {
	tokens := NewTokens("test-secret", time.Hour)
	var seen *Principal
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = FromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})
	protected := Middleware(tokens)(RequireAdmin(inner))

	// No token.
	rec := httptest.NewRecorder()
	protected.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Patient token hits the admin guard.
	patientTok, _ := tokens.Issue(&Principal{ID: "u1", Role: RolePatient})
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+patientTok)
	rec = httptest.NewRecorder()
	protected.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// Admin token passes through.
	adminTok, _ := tokens.Issue(&Principal{ID: "nutri@example.com", Role: RoleAdmin})
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+adminTok)
	rec = httptest.NewRecorder()
	protected.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, seen)
	assert.Equal(t, RoleAdmin, seen.Role)
}
