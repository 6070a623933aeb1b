package exports

import (
	"context"
	"encoding/csv"
	"io"
	"strconv"

	"github.com/uptrace/bun"

	"billable/infrastructure/sqlite"
)

// writeBillsCSV streams every submitted bill as CSV, optionally filtered
// by status.
func writeBillsCSV(ctx context.Context, db *sqlite.DB, w io.Writer, status string) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()

	header := []string{"id", "email", "type", "name", "amount", "date", "vat", "pct", "commentary", "status", "file_name"}
	if err := writer.Write(header); err != nil {
		return err
	}

	type row struct {
		ID         string  `bun:"id"`
		Email      string  `bun:"email"`
		Type       string  `bun:"type"`
		Name       string  `bun:"name"`
		Amount     float64 `bun:"amount"`
		Date       string  `bun:"date"`
		VAT        string  `bun:"vat"`
		Pct        int64   `bun:"pct"`
		Commentary string  `bun:"commentary"`
		Status     string  `bun:"status"`
		FileName   string  `bun:"file_name"`
	}

	rows := make([]row, 0)
	err := db.WithReadTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		q := `
SELECT b.id, b.email, b.type, b.name, b.amount, b.date, b.vat, b.pct, b.commentary, b.status, b.file_name
FROM bills b
WHERE b.submitted = 1`
		args := make([]any, 0)
		if status != "" {
			q += " AND b.status = ?"
			args = append(args, status)
		}
		q += " ORDER BY b.date DESC, b.created_at DESC"
		return tx.NewRaw(q, args...).Scan(ctx, &rows)
	})
	if err != nil {
		return err
	}

	for _, r := range rows {
		record := []string{
			r.ID,
			r.Email,
			r.Type,
			r.Name,
			strconv.FormatFloat(r.Amount, 'f', 2, 64),
			r.Date,
			r.VAT,
			strconv.FormatInt(r.Pct, 10),
			r.Commentary,
			r.Status,
			r.FileName,
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	return writer.Error()
}

// loadVoucherData loads one submitted bill for the PDF voucher.
func loadVoucherData(ctx context.Context, db *sqlite.DB, billID string) (VoucherData, error) {
	var data VoucherData
	err := db.WithReadTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		return tx.NewRaw(`
SELECT b.id, b.email, b.type, b.name, b.amount, b.date, b.vat, b.pct, b.commentary, b.status, b.file_name
FROM bills b
WHERE b.id = ? AND b.submitted = 1`, billID).
			Scan(ctx, &data.BillID, &data.Email, &data.Type, &data.Name, &data.Amount,
				&data.Date, &data.VAT, &data.Pct, &data.Commentary, &data.Status, &data.FileName)
	})
	return data, err
}

// countByStatus summarizes submitted bills for the exports screen.
func countByStatus(ctx context.Context, db *sqlite.DB) ([]StatusCount, error) {
	counts := make([]StatusCount, 0, 3)
	err := db.WithReadTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		return tx.NewRaw(`
SELECT b.status AS status, COUNT(*) AS count
FROM bills b
WHERE b.submitted = 1
GROUP BY b.status
ORDER BY b.status`).Scan(ctx, &counts)
	})
	if err != nil {
		return nil, err
	}
	return counts, nil
}
