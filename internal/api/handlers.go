// Package api is the HTTP transport: thin handlers over the services layer,
// role checks on top of the auth middleware, and the error-to-status mapping.
package api

import (
	"net/http"

	"github.com/nutridash/nutridash-server/internal/api/respond"
	"github.com/nutridash/nutridash-server/internal/auth"
	"github.com/nutridash/nutridash-server/internal/model"
)

// writeDomainError maps typed service errors onto HTTP statuses. Anything
// untyped is a 500; remote store failures surface as 502 so the UI can show
// its unavailable state.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case model.IsValidationError(err):
		respond.WriteBadRequest(w, err.Error())
	case model.IsNotFoundError(err):
		respond.WriteNotFound(w, err.Error())
	case model.IsRemoteError(err):
		respond.WriteBadGateway(w, err.Error())
	default:
		respond.WriteInternalError(w, err.Error())
	}
}

// allowSelfOrAdmin authorizes access to one patient's records: the admin
// always passes, a patient only for their own userID. Returns false after
// writing the response.
func allowSelfOrAdmin(w http.ResponseWriter, r *http.Request, userID string) bool {
	p, ok := auth.FromContext(r.Context())
	if !ok {
		respond.WriteUnauthorized(w, "authentication required")
		return false
	}
	if p.Role == auth.RoleAdmin || p.ID == userID {
		return true
	}
	respond.WriteError(w, http.StatusForbidden, "access restricted to own records")
	return false
}
