package admin

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/uptrace/bun"

	"billable/frontend/shared/format"
	"billable/infrastructure/audit"
	"billable/infrastructure/sqlite"
	"billable/models"
)

// ListSubmittedBills returns every submitted bill, newest date first,
// grouped by stored status for the review screen.
func ListSubmittedBills(ctx context.Context, db *sqlite.DB) (pending, accepted, refused []BillRow, err error) {
	var rows []models.Bill
	err = db.WithReadTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		return tx.NewSelect().
			Model(&rows).
			Where("b.submitted = 1").
			OrderExpr("b.date DESC, b.created_at DESC").
			Scan(ctx)
	})
	if err != nil {
		return nil, nil, nil, err
	}

	for _, b := range rows {
		row := BillRow{
			ID:      b.ID,
			Email:   b.Email,
			Type:    b.Type,
			Name:    b.Name,
			Amount:  b.Amount,
			Date:    format.FormatDate(b.Date),
			Status:  format.FormatStatus(b.Status),
			FileURL: b.FileURL,
		}
		switch b.Status {
		case models.StatusAccepted:
			accepted = append(accepted, row)
		case models.StatusRefused:
			refused = append(refused, row)
		default:
			pending = append(pending, row)
		}
	}
	return pending, accepted, refused, nil
}

// ReviewBill sets the back-office decision on a submitted bill and writes
// the audit record inside the same transaction.
func ReviewBill(ctx context.Context, db *sqlite.DB, auditSvc *audit.Service, userID int64, billID, newStatus string) error {
	if newStatus != models.StatusAccepted && newStatus != models.StatusRefused {
		return errors.New("status must be accepted or refused")
	}

	return db.WithWriteTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		var before string
		if err := tx.NewRaw(`SELECT status FROM bills WHERE id = ? AND submitted = 1`, billID).Scan(ctx, &before); err != nil {
			return err
		}

		res, err := tx.NewUpdate().
			Model((*models.Bill)(nil)).
			Set("status = ?", newStatus).
			Set("updated_at = ?", time.Now()).
			Where("id = ?", billID).
			Where("submitted = 1").
			Exec(ctx)
		if err != nil {
			return err
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if affected == 0 {
			return sql.ErrNoRows
		}

		return auditSvc.Write(ctx, tx, userID, audit.ActionBillReview, "bill", billID,
			map[string]string{"status": before}, map[string]string{"status": newStatus})
	})
}
