// Package routes is the navigation target table: every screen the app can
// navigate to has a named target resolved to its URL, with the roles allowed
// to land there. Handlers and views never hard-code screen URLs.
package routes

import (
	"net/http"

	"billable/infrastructure/rbac"
)

// Navigation targets.
const (
	Bills      = "Bills"
	NewBill    = "NewBill"
	AdminBills = "AdminBills"
	Exports    = "Exports"
	Login      = "Login"
)

type route struct {
	path  string
	roles []string
}

var table = map[string]route{
	Bills:      {path: "/app/bills", roles: []string{rbac.RoleEmployee, rbac.RoleAdmin}},
	NewBill:    {path: "/app/bills/new", roles: []string{rbac.RoleEmployee}},
	AdminBills: {path: "/app/admin/bills", roles: []string{rbac.RoleAdmin}},
	Exports:    {path: "/app/admin/exports", roles: []string{rbac.RoleAdmin}},
	Login:      {path: "/login", roles: nil},
}

// Path resolves a target name to its URL. Unknown targets resolve to the
// empty string; callers treat that as "stay where you are".
func Path(target string) string {
	return table[target].path
}

// Allowed reports whether role may land on target. Targets with a nil role
// list are open to everyone.
func Allowed(target, role string) bool {
	r, ok := table[target]
	if !ok {
		return false
	}
	if len(r.roles) == 0 {
		return true
	}
	for _, allowed := range r.roles {
		if allowed == role {
			return true
		}
	}
	return false
}

// DefaultLanding is where a session lands after login or a denied navigation.
func DefaultLanding(role string) string {
	if role == rbac.RoleAdmin {
		return Path(AdminBills)
	}
	return Path(Bills)
}

// Navigate issues a redirect to the target. A role without access is sent to
// its default landing instead, silently. An unknown target keeps the current
// screen and reports false.
func Navigate(w http.ResponseWriter, r *http.Request, target, role string) bool {
	p := Path(target)
	if p == "" {
		return false
	}
	if !Allowed(target, role) {
		http.Redirect(w, r, DefaultLanding(role), http.StatusSeeOther)
		return true
	}
	http.Redirect(w, r, p, http.StatusSeeOther)
	return true
}
