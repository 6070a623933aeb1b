package admin

import (
	"database/sql"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"

	sessioncontext "billable/frontend/shared/context"
	"billable/frontend/shared/nav"
	"billable/frontend/shared/routes"
	"billable/infrastructure/audit"
	"billable/infrastructure/sqlite"
)

// AdminBillsPageQueryHandler renders the back-office review screen.
func AdminBillsPageQueryHandler(db *sqlite.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, _ := sessioncontext.GetSessionFromContext(r.Context())

		pending, accepted, refused, err := ListSubmittedBills(r.Context(), db)
		if err != nil {
			http.Error(w, "failed to load bills", http.StatusInternalServerError)
			return
		}

		data := PageData{
			Nav:      nav.BuildTopNavData(session, routes.AdminBills),
			Message:  strings.TrimSpace(r.URL.Query().Get("error")),
			Pending:  pending,
			Accepted: accepted,
			Refused:  refused,
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := AdminBillsPage(data).Render(r.Context(), w); err != nil {
			http.Error(w, "failed to render admin bills page", http.StatusInternalServerError)
			return
		}
	}
}

// ReviewBillCommandHandler records an accept/refuse decision.
func ReviewBillCommandHandler(db *sqlite.DB, auditSvc *audit.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		billID := strings.TrimSpace(chi.URLParam(r, "id"))
		if billID == "" {
			http.Error(w, "invalid bill id", http.StatusBadRequest)
			return
		}
		if err := r.ParseForm(); err != nil {
			redirectBack(w, r, "invalid form")
			return
		}

		session, _ := sessioncontext.GetSessionFromContext(r.Context())
		newStatus := strings.TrimSpace(r.FormValue("status"))

		if err := ReviewBill(r.Context(), db, auditSvc, session.UserID, billID, newStatus); err != nil {
			if err == sql.ErrNoRows {
				http.Error(w, "bill not found", http.StatusNotFound)
				return
			}
			redirectBack(w, r, err.Error())
			return
		}
		http.Redirect(w, r, routes.Path(routes.AdminBills), http.StatusSeeOther)
	}
}

func redirectBack(w http.ResponseWriter, r *http.Request, msg string) {
	http.Redirect(w, r, routes.Path(routes.AdminBills)+"?error="+url.QueryEscape(msg), http.StatusSeeOther)
}
