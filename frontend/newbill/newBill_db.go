package newbill

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"billable/infrastructure/audit"
	"billable/infrastructure/sqlite"
	"billable/models"
)

// CreateDraftBill stores the receipt and answers the staged reference. The
// row stays a draft until the form submit completes it; drafts never show
// up in any list.
func CreateDraftBill(ctx context.Context, db *sqlite.DB, auditSvc *audit.Service, userID int64, in DraftInput) (models.Bill, error) {
	bill := models.Bill{
		ID:          uuid.NewString(),
		Email:       in.Email,
		FileName:    in.FileName,
		ReceiptBlob: in.Blob,
		ReceiptMIME: in.MIMEType,
		Status:      models.StatusPending,
		Submitted:   false,
	}
	bill.FileURL = "/app/api/bills/" + bill.ID + "/receipt"

	err := db.WithWriteTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewInsert().Model(&bill).Exec(ctx); err != nil {
			return err
		}
		return auditSvc.Write(ctx, tx, userID, audit.ActionBillUpload, "bill", bill.ID, nil,
			map[string]string{"email": bill.Email, "file_name": bill.FileName})
	})
	if err != nil {
		return models.Bill{}, err
	}
	return bill, nil
}

// CompleteBill fills the metadata of a staged draft and marks it submitted
// with status pending. Completing an unknown, foreign or already submitted
// bill returns sql.ErrNoRows.
func CompleteBill(ctx context.Context, db *sqlite.DB, auditSvc *audit.Service, userID int64, in SubmitInput) error {
	return db.WithWriteTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		res, err := tx.NewUpdate().
			Model((*models.Bill)(nil)).
			Set("type = ?", in.Type).
			Set("name = ?", in.Name).
			Set("amount = ?", in.Amount).
			Set("date = ?", in.Date).
			Set("vat = ?", in.VAT).
			Set("pct = ?", in.Pct).
			Set("commentary = ?", in.Commentary).
			Set("status = ?", models.StatusPending).
			Set("submitted = 1").
			Set("updated_at = ?", time.Now()).
			Where("id = ?", in.BillID).
			Where("email = ?", in.Email).
			Where("submitted = 0").
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
		return auditSvc.Write(ctx, tx, userID, audit.ActionBillSubmit, "bill", in.BillID, nil, in)
	})
}
