package routes

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"billable/infrastructure/rbac"
)

func TestPathResolvesKnownTargets(t *testing.T) {
	assert.Equal(t, "/app/bills", Path(Bills))
	assert.Equal(t, "/app/bills/new", Path(NewBill))
	assert.Equal(t, "/app/admin/bills", Path(AdminBills))
	assert.Equal(t, "/login", Path(Login))
}

func TestPathUnknownTargetIsEmpty(t *testing.T) {
	assert.Equal(t, "", Path("Dashboard"))
	assert.Equal(t, "", Path(""))
}

func TestAllowed(t *testing.T) {
	assert.True(t, Allowed(Bills, rbac.RoleEmployee))
	assert.True(t, Allowed(Bills, rbac.RoleAdmin))
	assert.True(t, Allowed(NewBill, rbac.RoleEmployee))
	assert.False(t, Allowed(NewBill, rbac.RoleAdmin))
	assert.False(t, Allowed(AdminBills, rbac.RoleEmployee))
	assert.True(t, Allowed(Login, "anything"))
	assert.False(t, Allowed("Dashboard", rbac.RoleAdmin))
}

func TestNavigateRedirectsAllowedRole(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/app/bills", nil)

	ok := Navigate(w, r, NewBill, rbac.RoleEmployee)
	require.True(t, ok)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/app/bills/new", w.Header().Get("Location"))
}

func TestNavigateRedirectsDeniedRoleToDefaultLanding(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/app/bills", nil)

	ok := Navigate(w, r, AdminBills, rbac.RoleEmployee)
	require.True(t, ok)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/app/bills", w.Header().Get("Location"))
}

func TestNavigateUnknownTargetIsNoOp(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/app/bills", nil)

	ok := Navigate(w, r, "Dashboard", rbac.RoleEmployee)
	require.False(t, ok)
	assert.Empty(t, w.Header().Get("Location"))
}

func TestDefaultLanding(t *testing.T) {
	assert.Equal(t, "/app/admin/bills", DefaultLanding(rbac.RoleAdmin))
	assert.Equal(t, "/app/bills", DefaultLanding(rbac.RoleEmployee))
	assert.Equal(t, "/app/bills", DefaultLanding(""))
}
