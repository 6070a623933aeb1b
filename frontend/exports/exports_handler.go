package exports

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	sessioncontext "billable/frontend/shared/context"
	"billable/frontend/shared/nav"
	"billable/frontend/shared/routes"
	"billable/infrastructure/sqlite"
	"billable/models"
)

// ExportsPageQueryHandler renders the admin exports screen.
func ExportsPageQueryHandler(db *sqlite.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, _ := sessioncontext.GetSessionFromContext(r.Context())

		counts, err := countByStatus(r.Context(), db)
		if err != nil {
			http.Error(w, "failed to load export summary", http.StatusInternalServerError)
			return
		}

		data := PageData{
			Nav:     nav.BuildTopNavData(session, routes.Exports),
			Message: strings.TrimSpace(r.URL.Query().Get("error")),
			Counts:  counts,
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := ExportsPage(data).Render(r.Context(), w); err != nil {
			http.Error(w, "failed to render exports page", http.StatusInternalServerError)
			return
		}
	}
}

// BillsExportCSVHandler streams submitted bills as CSV. A status query
// parameter narrows the export to one status.
func BillsExportCSVHandler(db *sqlite.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := strings.TrimSpace(r.URL.Query().Get("status"))
		switch status {
		case "", models.StatusPending, models.StatusAccepted, models.StatusRefused:
		default:
			http.Error(w, "invalid status", http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", "attachment; filename=bills.csv")
		if err := writeBillsCSV(r.Context(), db, w, status); err != nil {
			slog.Error("bills csv export failed", slog.Any("err", err))
			http.Error(w, "failed to export csv", http.StatusInternalServerError)
			return
		}
	}
}

// BillVoucherPDFHandler renders a one-page PDF voucher for a submitted
// bill, carrying a code128 barcode of the bill reference.
func BillVoucherPDFHandler(db *sqlite.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		billID := strings.TrimSpace(chi.URLParam(r, "id"))
		if billID == "" {
			http.Error(w, "invalid bill id", http.StatusBadRequest)
			return
		}
		data, err := loadVoucherData(r.Context(), db, billID)
		if err != nil {
			http.Error(w, "bill not found", http.StatusNotFound)
			return
		}
		pdfBytes, reference, err := renderVoucherPDF(data, time.Now())
		if err != nil {
			slog.Error("voucher pdf render failed", slog.String("bill_id", billID), slog.Any("err", err))
			http.Error(w, "failed to render voucher", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", "attachment; filename=voucher-"+reference+".pdf")
		if _, err := w.Write(pdfBytes); err != nil {
			slog.Error("voucher pdf write failed", slog.String("bill_id", billID), slog.Any("err", err))
		}
	}
}
