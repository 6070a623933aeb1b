package adminusers

import (
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	sessioncontext "billable/frontend/shared/context"
	"billable/frontend/shared/nav"
	"billable/frontend/shared/routes"
	"billable/infrastructure/cache"
	"billable/infrastructure/sqlite"
)

const usersPath = "/app/admin/users"

// UsersPageQueryHandler renders the account management screen.
func UsersPageQueryHandler(db *sqlite.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, _ := sessioncontext.GetSessionFromContext(r.Context())

		users, err := LoadUsers(r.Context(), db)
		if err != nil {
			slog.Error("admin users: failed to load data", slog.Any("err", err))
			http.Error(w, "failed to load users", http.StatusInternalServerError)
			return
		}

		data := PageData{
			Nav:          nav.BuildTopNavData(session, routes.AdminBills),
			Users:        users,
			Status:       r.URL.Query().Get("status"),
			ErrorMessage: r.URL.Query().Get("error"),
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := UsersListPage(data).Render(r.Context(), w); err != nil {
			http.Error(w, "failed to render users page", http.StatusInternalServerError)
			return
		}
	}
}

// CreateUserCommandHandler creates an account from the admin form. The user
// cache entry for a replaced username goes stale on its own expiry; new
// accounts have no cache entry to invalidate.
func CreateUserCommandHandler(db *sqlite.DB, _ *cache.UserCache) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Redirect(w, r, usersPath+"?error="+url.QueryEscape("invalid form data"), http.StatusSeeOther)
			return
		}

		username := strings.TrimSpace(r.FormValue("username"))
		password := strings.TrimSpace(r.FormValue("password"))
		role := strings.TrimSpace(r.FormValue("role"))

		if err := CreateUser(r.Context(), db, username, password, role); err != nil {
			http.Redirect(w, r, usersPath+"?error="+url.QueryEscape(err.Error()), http.StatusSeeOther)
			return
		}

		http.Redirect(w, r, usersPath+"?status="+url.QueryEscape("user created"), http.StatusSeeOther)
	}
}
