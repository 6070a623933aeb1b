package exports

import "billable/frontend/shared/nav"

type StatusCount struct {
	Status string `bun:"status"`
	Count  int64  `bun:"count"`
}

type PageData struct {
	Nav     nav.TopNavData
	Message string
	Counts  []StatusCount
}

// VoucherData feeds the per-bill PDF expense voucher.
type VoucherData struct {
	BillID     string
	Email      string
	Type       string
	Name       string
	Amount     float64
	Date       string
	VAT        string
	Pct        int64
	Commentary string
	Status     string
	FileName   string
}
