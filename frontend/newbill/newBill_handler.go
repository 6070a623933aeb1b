package newbill

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	sessioncontext "billable/frontend/shared/context"
	"billable/frontend/shared/nav"
	"billable/frontend/shared/routes"
	"billable/infrastructure/audit"
	"billable/infrastructure/sqlite"
)

// maxReceipt caps an uploaded receipt image.
const maxReceipt = 5 << 20 // 5MB

var submitValidator = validator.New()

// NewBillPageQueryHandler renders the creation form.
func NewBillPageQueryHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, _ := sessioncontext.GetSessionFromContext(r.Context())
		data := PageData{
			Nav:     nav.BuildTopNavData(session, routes.NewBill),
			Message: strings.TrimSpace(r.URL.Query().Get("error")),
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := NewBillPage(data).Render(r.Context(), w); err != nil {
			http.Error(w, "failed to render new bill page", http.StatusInternalServerError)
			return
		}
	}
}

// UploadReceiptCommandHandler stages a receipt file for the form. Only
// jpg/jpeg/png extensions pass, compared case-insensitively; anything else
// answers the fixed alert message without touching the store. A store
// failure is logged and answered empty: the form stays unstaged and the
// user retries.
func UploadReceiptCommandHandler(db *sqlite.DB, auditSvc *audit.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		blob, fileName, mimeType, err := parseReceiptFile(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if !AcceptedExtension(fileName) {
			http.Error(w, BadFormatMessage, http.StatusBadRequest)
			return
		}

		session, _ := sessioncontext.GetSessionFromContext(r.Context())
		email := strings.TrimSpace(r.FormValue("email"))
		if email == "" {
			email = session.User.Username
		}

		bill, err := CreateDraftBill(r.Context(), db, auditSvc, session.UserID, DraftInput{
			Email:    email,
			FileName: fileName,
			Blob:     blob,
			MIMEType: mimeType,
		})
		if err != nil {
			slog.Error("receipt upload failed", slog.String("email", email), slog.Any("err", err))
			w.WriteHeader(http.StatusNoContent)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(UploadResponse{
			ID:       bill.ID,
			FileURL:  bill.FileURL,
			FileName: bill.FileName,
		})
	}
}

// SubmitBillCommandHandler completes the staged draft and navigates back to
// the bill list. Without a staged receipt the submission is blocked with
// the same fixed alert the file gate uses.
func SubmitBillCommandHandler(db *sqlite.DB, auditSvc *audit.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			redirectBack(w, r, "invalid form")
			return
		}

		billID := strings.TrimSpace(r.FormValue("bill-id"))
		if billID == "" {
			// File presence is mandatory at submit time too.
			redirectBack(w, r, BadFormatMessage)
			return
		}

		session, _ := sessioncontext.GetSessionFromContext(r.Context())
		amount, err := strconv.ParseFloat(strings.TrimSpace(r.FormValue("amount")), 64)
		if err != nil {
			redirectBack(w, r, "montant invalide")
			return
		}
		pct := int64(20)
		if v := strings.TrimSpace(r.FormValue("pct")); v != "" {
			if pct, err = strconv.ParseInt(v, 10, 64); err != nil {
				redirectBack(w, r, "pourcentage invalide")
				return
			}
		}

		in := SubmitInput{
			BillID:     billID,
			Email:      session.User.Username,
			Type:       strings.TrimSpace(r.FormValue("expense-type")),
			Name:       strings.TrimSpace(r.FormValue("expense-name")),
			Amount:     amount,
			Date:       strings.TrimSpace(r.FormValue("datepicker")),
			VAT:        strings.TrimSpace(r.FormValue("vat")),
			Pct:        pct,
			Commentary: strings.TrimSpace(r.FormValue("commentary")),
		}
		if err := submitValidator.Struct(in); err != nil {
			redirectBack(w, r, "formulaire incomplet")
			return
		}

		if err := CompleteBill(r.Context(), db, auditSvc, session.UserID, in); err != nil {
			slog.Error("bill submit failed", slog.String("bill_id", billID), slog.Any("err", err))
			redirectBack(w, r, "échec de l'envoi, veuillez réessayer")
			return
		}

		routes.Navigate(w, r, routes.Bills, session.User.Role)
	}
}

// AcceptedExtension gates receipt uploads on the file extension.
func AcceptedExtension(fileName string) bool {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(fileName), "."))
	switch ext {
	case "jpg", "jpeg", "png":
		return true
	default:
		return false
	}
}

func redirectBack(w http.ResponseWriter, r *http.Request, msg string) {
	http.Redirect(w, r, routes.Path(routes.NewBill)+"?error="+url.QueryEscape(msg), http.StatusSeeOther)
}

func parseReceiptFile(r *http.Request) (blob []byte, fileName, mimeType string, err error) {
	if err := r.ParseMultipartForm(maxReceipt + 1); err != nil {
		return nil, "", "", errors.New("invalid multipart form")
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, "", "", errors.New(BadFormatMessage)
		}
		return nil, "", "", err
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxReceipt+1))
	if err != nil {
		return nil, "", "", err
	}
	if len(data) == 0 {
		return nil, "", "", errors.New(BadFormatMessage)
	}
	if len(data) > maxReceipt {
		return nil, "", "", errors.New("le justificatif doit faire 5 Mo ou moins")
	}

	return data, receiptFileName(header), receiptMIME(header, data), nil
}

func receiptFileName(header *multipart.FileHeader) string {
	return filepath.Base(strings.TrimSpace(header.Filename))
}

func receiptMIME(header *multipart.FileHeader, data []byte) string {
	mimeType := strings.TrimSpace(header.Header.Get("Content-Type"))
	if mimeType == "" || mimeType == "application/octet-stream" {
		mimeType = http.DetectContentType(data)
	}
	return mimeType
}
