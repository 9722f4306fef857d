package testutil

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	id "harborbank/pkg/domain"
	dErrors "harborbank/pkg/domain-errors"
	"harborbank/pkg/platform/httputil"
	authmw "harborbank/pkg/platform/middleware/auth"
)

func TestUnmarshalErrorReadsWriteErrorEnvelope(t *testing.T) {
	rr := httptest.NewRecorder()
	httputil.WriteError(rr, dErrors.New(dErrors.CodeForbidden, "not yours"))

	AssertStatusAndError(t, rr, http.StatusForbidden, dErrors.CodeForbidden)
	body := UnmarshalError(t, rr)
	assert.Equal(t, "not yours", body.Description)
}

func TestPrincipalHelpers(t *testing.T) {
	userID := id.NewUserID()

	customer := authmw.GetPrincipal(AsCustomer(NewRequest(t, http.MethodGet, "/"), userID, "john@example.com").Context())
	if assert.NotNil(t, customer) {
		assert.Equal(t, userID, customer.UserID)
		assert.False(t, customer.IsAdmin)
	}

	admin := authmw.GetPrincipal(AsAdmin(NewRequest(t, http.MethodGet, "/"), userID, "admin@example.com").Context())
	if assert.NotNil(t, admin) {
		assert.True(t, admin.IsAdmin)
	}
}

func TestWithBearer(t *testing.T) {
	req := WithBearer(NewRequest(t, http.MethodGet, "/"), "abc")
	assert.Equal(t, "Bearer abc", req.Header.Get("Authorization"))
}
