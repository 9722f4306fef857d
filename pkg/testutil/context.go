package testutil

import (
	"net/http"

	id "harborbank/pkg/domain"
	authmw "harborbank/pkg/platform/middleware/auth"
)

// AsCustomer attaches a non-admin principal, as RequireAuth would after
// validating the caller's token.
func AsCustomer(req *http.Request, userID id.UserID, email string) *http.Request {
	return withPrincipal(req, &authmw.Principal{UserID: userID, Email: email})
}

// AsAdmin attaches an administrator principal.
func AsAdmin(req *http.Request, userID id.UserID, email string) *http.Request {
	return withPrincipal(req, &authmw.Principal{UserID: userID, Email: email, IsAdmin: true})
}

func withPrincipal(req *http.Request, p *authmw.Principal) *http.Request {
	return req.WithContext(authmw.WithPrincipal(req.Context(), p))
}
