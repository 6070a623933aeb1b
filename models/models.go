package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Bill statuses. Set to pending on submission, mutated by the back office.
const (
	StatusPending  = "pending"
	StatusAccepted = "accepted"
	StatusRefused  = "refused"
)

// User represents an authenticated app user. Username is the employee email.
type User struct {
	bun.BaseModel `bun:"table:users,alias:u"`

	ID           int64     `bun:"id,pk,autoincrement"`
	Username     string    `bun:"username,unique,notnull"`
	PasswordHash string    `bun:"password_hash,notnull"`
	Role         string    `bun:"role,notnull"`
	CreatedAt    time.Time `bun:"created_at,notnull,default:current_timestamp"`
	UpdatedAt    time.Time `bun:"updated_at,notnull,default:current_timestamp"`
}

// Session is used by middleware and auth handlers.
type Session struct {
	bun.BaseModel `bun:"table:sessions,alias:s"`

	ID                string         `bun:"id,pk"`
	UserID            int64          `bun:"user_id,notnull"`
	User              User           `bun:"rel:belongs-to,join:user_id=id"`
	UserRoles         []string       `bun:"-"`
	ScreenPermissions map[string]int `bun:"-"`
	ExpiresAt         time.Time      `bun:"expires_at,notnull"`
	CreatedAt         time.Time      `bun:"created_at,notnull,default:current_timestamp"`
	UpdatedAt         time.Time      `bun:"updated_at,notnull,default:current_timestamp"`
}

// Expired returns true when the session expiry time has passed.
func (s Session) Expired() bool {
	return time.Now().After(s.ExpiresAt)
}

// Bill is one employee expense claim.
//
// A row starts as a draft when the receipt upload lands: only the file
// fields are set and Submitted is false. Submitting the form completes the
// metadata and flips Submitted. Only submitted rows are listed, so outside
// this package a bill is either a draft or fully persisted, never partial.
type Bill struct {
	bun.BaseModel `bun:"table:bills,alias:b"`

	ID         string  `bun:"id,pk"`
	Email      string  `bun:"email,notnull"`
	Type       string  `bun:"type"`
	Name       string  `bun:"name"`
	Amount     float64 `bun:"amount"`
	Date       string  `bun:"date"`
	VAT        string  `bun:"vat"`
	Pct        int64   `bun:"pct"`
	Commentary string  `bun:"commentary"`
	FileName   string  `bun:"file_name,notnull"`
	FileURL    string  `bun:"file_url,notnull"`
	Status     string  `bun:"status,notnull,default:'pending'"`
	Submitted  bool    `bun:"submitted,notnull,default:false"`

	ReceiptBlob []byte `bun:"receipt_blob"`
	ReceiptMIME string `bun:"receipt_mime"`

	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp"`
	UpdatedAt time.Time `bun:"updated_at,notnull,default:current_timestamp"`
}

// AuditLog captures immutable change history for key operations.
type AuditLog struct {
	bun.BaseModel `bun:"table:audit_logs,alias:al"`

	ID         int64     `bun:"id,pk,autoincrement"`
	UserID     int64     `bun:"user_id,notnull"`
	Action     string    `bun:"action,notnull"`
	EntityType string    `bun:"entity_type,notnull"`
	EntityID   string    `bun:"entity_id,notnull"`
	BeforeJSON string    `bun:"before_json"`
	AfterJSON  string    `bun:"after_json"`
	CreatedAt  time.Time `bun:"created_at,notnull,default:current_timestamp"`
}
