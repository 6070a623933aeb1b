package bills

import (
	"database/sql"
	"net/http"
	"sort"
	"strings"

	"github.com/go-chi/chi/v5"

	sessioncontext "billable/frontend/shared/context"
	"billable/frontend/shared/nav"
	"billable/frontend/shared/routes"
	"billable/infrastructure/rbac"
	"billable/infrastructure/sqlite"
)

// BillsPageQueryHandler renders the employee's bill list, most recent date
// first. The anti-chronological ordering is part of the screen's contract.
func BillsPageQueryHandler(db *sqlite.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, _ := sessioncontext.GetSessionFromContext(r.Context())

		views, err := LoadBillViews(r.Context(), db, session.User.Username)
		if err != nil {
			http.Error(w, "failed to load bills", http.StatusInternalServerError)
			return
		}

		SortAntiChronological(views)

		data := PageData{
			Nav:     nav.BuildTopNavData(session, routes.Bills),
			Message: strings.TrimSpace(r.URL.Query().Get("error")),
			Rows:    views,
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := BillsPage(data).Render(r.Context(), w); err != nil {
			http.Error(w, "failed to render bills page", http.StatusInternalServerError)
			return
		}
	}
}

// SortAntiChronological orders rows most recent date first by raw string
// comparison; equal dates keep their incoming order.
func SortAntiChronological(rows []BillView) {
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].RawDate > rows[j].RawDate
	})
}

// ReceiptImageQueryHandler streams the stored receipt image for the preview
// modal. The owner and admins may view it; anyone else gets a 404 rather
// than a hint that the bill exists.
func ReceiptImageQueryHandler(db *sqlite.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		billID := strings.TrimSpace(chi.URLParam(r, "id"))
		if billID == "" {
			http.Error(w, "invalid bill id", http.StatusBadRequest)
			return
		}

		blob, mimeType, fileName, ownerEmail, err := LoadReceipt(r.Context(), db, billID)
		if err != nil {
			if err == sql.ErrNoRows {
				http.NotFound(w, r)
				return
			}
			http.Error(w, "failed to load receipt", http.StatusInternalServerError)
			return
		}

		session, _ := sessioncontext.GetSessionFromContext(r.Context())
		if session.User.Username != ownerEmail && session.User.Role != rbac.RoleAdmin {
			http.NotFound(w, r)
			return
		}
		if len(blob) == 0 {
			http.NotFound(w, r)
			return
		}
		if strings.TrimSpace(mimeType) == "" {
			mimeType = http.DetectContentType(blob)
		}
		w.Header().Set("Content-Type", mimeType)
		if strings.TrimSpace(fileName) != "" {
			w.Header().Set("Content-Disposition", "inline; filename=\""+fileName+"\"")
		}
		_, _ = w.Write(blob)
	}
}
