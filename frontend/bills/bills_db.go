package bills

import (
	"context"
	"log/slog"

	"github.com/uptrace/bun"

	"billable/frontend/shared/format"
	"billable/infrastructure/sqlite"
	"billable/models"
)

// ListBills returns the owner's submitted bills in storage order. Drafts
// are never listed.
func ListBills(ctx context.Context, db *sqlite.DB, email string) ([]models.Bill, error) {
	var rows []models.Bill
	err := db.WithReadTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		return tx.NewSelect().
			Model(&rows).
			Where("b.email = ?", email).
			Where("b.submitted = 1").
			Scan(ctx)
	})
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// LoadBillViews fetches the owner's bills and maps each to a display row
// with formatted date and status. A nil store resolves to an empty list so
// a logged-out preview renders instead of crashing. A record whose date
// cannot be parsed is logged and passed through unformatted; one bad row
// never aborts the list. A failed fetch propagates to the caller, which
// owns the fallback rendering.
func LoadBillViews(ctx context.Context, db *sqlite.DB, email string) ([]BillView, error) {
	if db == nil {
		return []BillView{}, nil
	}

	rows, err := ListBills(ctx, db, email)
	if err != nil {
		return nil, err
	}

	views := make([]BillView, 0, len(rows))
	for _, b := range rows {
		view := BillView{
			ID:         b.ID,
			Type:       b.Type,
			Name:       b.Name,
			Amount:     b.Amount,
			RawDate:    b.Date,
			Date:       b.Date,
			Status:     format.FormatStatus(b.Status),
			FileURL:    b.FileURL,
			FileName:   b.FileName,
			Commentary: b.Commentary,
		}
		if _, err := format.ParseDate(b.Date); err != nil {
			slog.Error("bill has unformattable date, passing through raw",
				slog.String("bill_id", b.ID), slog.String("date", b.Date), slog.Any("err", err))
		} else {
			view.Date = format.FormatDate(b.Date)
		}
		views = append(views, view)
	}
	return views, nil
}

// LoadReceipt returns the stored receipt image for a bill. Access control
// is the caller's concern.
func LoadReceipt(ctx context.Context, db *sqlite.DB, billID string) (blob []byte, mimeType, fileName, email string, err error) {
	err = db.WithReadTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		return tx.NewRaw(`
SELECT receipt_blob, receipt_mime, file_name, email
FROM bills
WHERE id = ?`, billID).Scan(ctx, &blob, &mimeType, &fileName, &email)
	})
	return blob, mimeType, fileName, email, err
}
