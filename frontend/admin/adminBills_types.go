package admin

import "billable/frontend/shared/nav"

// BillRow is one bill as the back office sees it, display-formatted.
type BillRow struct {
	ID      string
	Email   string
	Type    string
	Name    string
	Amount  float64
	Date    string
	Status  string
	FileURL string
}

type PageData struct {
	Nav      nav.TopNavData
	Message  string
	Pending  []BillRow
	Accepted []BillRow
	Refused  []BillRow
}
