package newbill

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"

	sessioncontext "billable/frontend/shared/context"
	"billable/infrastructure/audit"
	"billable/infrastructure/sqlite"
	"billable/models"
)

func openNewBillTestDB(t *testing.T) *sqlite.DB {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "newbill-test.db")
	db, err := sqlite.OpenDB(dbPath)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatalf("runtime caller unavailable")
	}
	migrationsDir := filepath.Join(filepath.Dir(file), "..", "..", "infrastructure", "sqlite", "migrations")
	if err := sqlite.ApplyMigrations(context.Background(), db, migrationsDir); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	return db
}

func employeeSession() models.Session {
	return models.Session{
		ID:     "session-test",
		UserID: 1,
		User: models.User{
			ID:       1,
			Username: "employee@billable.tld",
			Role:     "Employee",
		},
		UserRoles: []string{"Employee"},
	}
}

func withSession(r *http.Request) *http.Request {
	ctx := sessioncontext.NewContextWithSession(r.Context(), employeeSession())
	return r.WithContext(ctx)
}

func multipartUpload(t *testing.T, fileName string, contents []byte) *http.Request {
	t.Helper()
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", fileName)
	require.NoError(t, err)
	_, err = part.Write(contents)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/app/api/bills/upload", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return withSession(req)
}

func submitForm(t *testing.T, form url.Values) *http.Request {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/app/bills", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return withSession(req)
}

func billCount(t *testing.T, db *sqlite.DB) int64 {
	t.Helper()
	var count int64
	err := db.WithReadTx(context.Background(), func(ctx context.Context, tx bun.Tx) error {
		return tx.NewRaw(`SELECT COUNT(*) FROM bills`).Scan(ctx, &count)
	})
	require.NoError(t, err)
	return count
}

func TestAcceptedExtension(t *testing.T) {
	cases := []struct {
		fileName string
		ok       bool
	}{
		{"facture.jpg", true},
		{"facture.jpeg", true},
		{"facture.png", true},
		{"FACTURE.JPG", true},
		{"Facture.JpEg", true},
		{"facture.PNG", true},
		{"facture.pdf", false},
		{"facture.gif", false},
		{"facture", false},
		{"facture.jpg.exe", false},
		{"", false},
	}
	for _, tc := range cases {
		if got := AcceptedExtension(tc.fileName); got != tc.ok {
			t.Fatalf("AcceptedExtension(%q) = %v, expected %v", tc.fileName, got, tc.ok)
		}
	}
}

func TestUploadRejectsBadExtensionWithoutStoring(t *testing.T) {
	db := openNewBillTestDB(t)
	handler := UploadReceiptCommandHandler(db, audit.NewService())

	rec := httptest.NewRecorder()
	handler(rec, multipartUpload(t, "facture.pdf", []byte("%PDF-1.4")))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), BadFormatMessage)
	require.EqualValues(t, 0, billCount(t, db))
}

func TestUploadStoresDraftAndAnswersReference(t *testing.T) {
	db := openNewBillTestDB(t)
	handler := UploadReceiptCommandHandler(db, audit.NewService())

	rec := httptest.NewRecorder()
	handler(rec, multipartUpload(t, "facture.JPG", []byte{0xff, 0xd8, 0xff, 0xe0}))

	require.Equal(t, http.StatusOK, rec.Code)

	var ref UploadResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&ref))
	require.NotEmpty(t, ref.ID)
	require.Equal(t, "/app/api/bills/"+ref.ID+"/receipt", ref.FileURL)
	require.Equal(t, "facture.JPG", ref.FileName)

	var submitted int
	err := db.WithReadTx(context.Background(), func(ctx context.Context, tx bun.Tx) error {
		return tx.NewRaw(`SELECT submitted FROM bills WHERE id = ?`, ref.ID).Scan(ctx, &submitted)
	})
	require.NoError(t, err)
	require.Equal(t, 0, submitted, "an uploaded receipt stays a draft")
}

func TestUploadStoreFailureAnsweredEmpty(t *testing.T) {
	db := openNewBillTestDB(t)
	err := db.WithWriteTx(context.Background(), func(ctx context.Context, tx bun.Tx) error {
		_, err := tx.ExecContext(ctx, `DROP TABLE bills`)
		return err
	})
	require.NoError(t, err)

	handler := UploadReceiptCommandHandler(db, audit.NewService())
	rec := httptest.NewRecorder()
	handler(rec, multipartUpload(t, "facture.jpg", []byte{0xff, 0xd8, 0xff, 0xe0}))

	// The failure is logged and swallowed; the form simply stays unstaged.
	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Empty(t, rec.Body.String())
}

func TestSubmitWithoutStagedReceiptBlocked(t *testing.T) {
	db := openNewBillTestDB(t)
	handler := SubmitBillCommandHandler(db, audit.NewService())

	rec := httptest.NewRecorder()
	handler(rec, submitForm(t, url.Values{
		"expense-type": {"Transports"},
		"expense-name": {"Vol Paris Londres"},
		"datepicker":   {"2022-02-02"},
		"amount":       {"348"},
	}))

	require.Equal(t, http.StatusSeeOther, rec.Code)
	location := rec.Header().Get("Location")
	require.Contains(t, location, "/app/bills/new?error=")
	require.Contains(t, location, url.QueryEscape(BadFormatMessage))
	require.EqualValues(t, 0, billCount(t, db))
}

func TestSubmitCompletesStagedDraft(t *testing.T) {
	db := openNewBillTestDB(t)
	auditSvc := audit.NewService()

	bill, err := CreateDraftBill(context.Background(), db, auditSvc, 1, DraftInput{
		Email:    "employee@billable.tld",
		FileName: "facture.jpg",
		Blob:     []byte{0xff, 0xd8, 0xff, 0xe0},
		MIMEType: "image/jpeg",
	})
	require.NoError(t, err)

	handler := SubmitBillCommandHandler(db, auditSvc)
	rec := httptest.NewRecorder()
	handler(rec, submitForm(t, url.Values{
		"expense-type": {"Hôtel et logement"},
		"expense-name": {"encore"},
		"datepicker":   {"2004-04-04"},
		"amount":       {"400"},
		"vat":          {"80"},
		"pct":          {"20"},
		"commentary":   {"séminaire billed"},
		"bill-id":      {bill.ID},
		"file-url":     {bill.FileURL},
		"file-name":    {bill.FileName},
	}))

	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.Equal(t, "/app/bills", rec.Header().Get("Location"))

	var stored models.Bill
	err = db.WithReadTx(context.Background(), func(ctx context.Context, tx bun.Tx) error {
		return tx.NewSelect().Model(&stored).Where("b.id = ?", bill.ID).Scan(ctx)
	})
	require.NoError(t, err)
	require.True(t, stored.Submitted)
	require.Equal(t, models.StatusPending, stored.Status)
	require.Equal(t, "Hôtel et logement", stored.Type)
	require.Equal(t, "2004-04-04", stored.Date)
	require.InDelta(t, 400, stored.Amount, 0.001)
	require.EqualValues(t, 20, stored.Pct)
}

func TestSubmitInvalidDateRedirectsBack(t *testing.T) {
	db := openNewBillTestDB(t)
	auditSvc := audit.NewService()

	bill, err := CreateDraftBill(context.Background(), db, auditSvc, 1, DraftInput{
		Email:    "employee@billable.tld",
		FileName: "facture.jpg",
		Blob:     []byte{0xff, 0xd8, 0xff, 0xe0},
		MIMEType: "image/jpeg",
	})
	require.NoError(t, err)

	handler := SubmitBillCommandHandler(db, auditSvc)
	rec := httptest.NewRecorder()
	handler(rec, submitForm(t, url.Values{
		"expense-type": {"Transports"},
		"expense-name": {"trajet"},
		"datepicker":   {"04/04/2004"},
		"amount":       {"100"},
		"bill-id":      {bill.ID},
	}))

	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.Contains(t, rec.Header().Get("Location"), "/app/bills/new?error=")
}

func TestCompleteBillUnknownDraft(t *testing.T) {
	db := openNewBillTestDB(t)

	err := CompleteBill(context.Background(), db, audit.NewService(), 1, SubmitInput{
		BillID: "missing",
		Email:  "employee@billable.tld",
		Type:   "Transports",
		Name:   "trajet",
		Amount: 100,
		Date:   "2004-04-04",
		Pct:    20,
	})
	require.ErrorIs(t, err, sql.ErrNoRows)
}

func TestCompleteBillRefusesForeignDraft(t *testing.T) {
	db := openNewBillTestDB(t)
	auditSvc := audit.NewService()

	bill, err := CreateDraftBill(context.Background(), db, auditSvc, 2, DraftInput{
		Email:    "other@billable.tld",
		FileName: "facture.jpg",
		Blob:     []byte{0xff, 0xd8, 0xff, 0xe0},
		MIMEType: "image/jpeg",
	})
	require.NoError(t, err)

	err = CompleteBill(context.Background(), db, auditSvc, 1, SubmitInput{
		BillID: bill.ID,
		Email:  "employee@billable.tld",
		Type:   "Transports",
		Name:   "trajet",
		Amount: 100,
		Date:   "2004-04-04",
		Pct:    20,
	})
	require.ErrorIs(t, err, sql.ErrNoRows)
}
