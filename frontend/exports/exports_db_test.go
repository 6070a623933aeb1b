package exports

import (
	"bytes"
	"context"
	"encoding/csv"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/uptrace/bun"

	"billable/infrastructure/sqlite"
)

func openExportsTestDB(t *testing.T) *sqlite.DB {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "exports-test.db")
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

func seedExportBill(t *testing.T, db *sqlite.DB, id, email, date, status string, submitted int) {
	t.Helper()
	err := db.WithWriteTx(context.Background(), func(ctx context.Context, tx bun.Tx) error {
		_, err := tx.ExecContext(ctx, `
INSERT INTO bills (id, email, type, name, amount, date, vat, pct, commentary, file_name, file_url, status, submitted, receipt_mime, created_at, updated_at)
VALUES (?, ?, 'Transports', 'test', 100, ?, '70', 20, '', 'receipt.jpg', '/app/api/bills/'||?||'/receipt', ?, ?, 'image/jpeg', CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
`, id, email, date, id, status, submitted)
		return err
	})
	if err != nil {
		t.Fatalf("seed bill %s: %v", id, err)
	}
}

func TestWriteBillsCSV_OnlySubmittedBills(t *testing.T) {
	db := openExportsTestDB(t)
	seedExportBill(t, db, "bill-a", "employee@billable.tld", "2004-04-04", "accepted", 1)
	seedExportBill(t, db, "bill-b", "employee@billable.tld", "2002-02-02", "pending", 1)
	seedExportBill(t, db, "bill-draft", "employee@billable.tld", "", "pending", 0)

	var buf bytes.Buffer
	if err := writeBillsCSV(context.Background(), db, &buf, ""); err != nil {
		t.Fatalf("writeBillsCSV returned error: %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("parse csv: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected header plus 2 rows, got %d records", len(records))
	}
	if records[0][0] != "id" || records[0][9] != "status" {
		t.Fatalf("unexpected header: %v", records[0])
	}
	if records[1][0] != "bill-a" || records[2][0] != "bill-b" {
		t.Fatalf("expected anti-chronological order, got %v then %v", records[1][0], records[2][0])
	}
	for _, rec := range records[1:] {
		if rec[0] == "bill-draft" {
			t.Fatalf("draft bill leaked into export")
		}
	}
}

func TestWriteBillsCSV_StatusFilter(t *testing.T) {
	db := openExportsTestDB(t)
	seedExportBill(t, db, "bill-a", "employee@billable.tld", "2004-04-04", "accepted", 1)
	seedExportBill(t, db, "bill-b", "employee@billable.tld", "2002-02-02", "pending", 1)

	var buf bytes.Buffer
	if err := writeBillsCSV(context.Background(), db, &buf, "pending"); err != nil {
		t.Fatalf("writeBillsCSV returned error: %v", err)
	}
	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("parse csv: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected header plus 1 row, got %d records", len(records))
	}
	if records[1][0] != "bill-b" {
		t.Fatalf("expected bill-b, got %v", records[1][0])
	}
}

func TestLoadVoucherData_IgnoresDrafts(t *testing.T) {
	db := openExportsTestDB(t)
	seedExportBill(t, db, "bill-draft", "employee@billable.tld", "", "pending", 0)

	if _, err := loadVoucherData(context.Background(), db, "bill-draft"); err == nil {
		t.Fatalf("expected error loading a draft bill")
	}
}

func TestCountByStatus_GroupsSubmittedBills(t *testing.T) {
	db := openExportsTestDB(t)
	seedExportBill(t, db, "bill-a", "a@billable.tld", "2004-04-04", "accepted", 1)
	seedExportBill(t, db, "bill-b", "b@billable.tld", "2002-02-02", "pending", 1)
	seedExportBill(t, db, "bill-c", "c@billable.tld", "2003-03-03", "pending", 1)
	seedExportBill(t, db, "bill-draft", "d@billable.tld", "", "pending", 0)

	counts, err := countByStatus(context.Background(), db)
	if err != nil {
		t.Fatalf("countByStatus returned error: %v", err)
	}
	if len(counts) != 2 {
		t.Fatalf("expected 2 status groups, got %d", len(counts))
	}
	if counts[0].Status != "accepted" || counts[0].Count != 1 {
		t.Fatalf("unexpected first group: %+v", counts[0])
	}
	if counts[1].Status != "pending" || counts[1].Count != 2 {
		t.Fatalf("unexpected second group: %+v", counts[1])
	}
}
