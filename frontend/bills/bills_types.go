package bills

import "billable/frontend/shared/nav"

// BillView is one rendered list row. Date and Status hold display strings;
// RawDate keeps the stored value for ordering.
type BillView struct {
	ID         string
	Type       string
	Name       string
	Amount     float64
	Date       string
	RawDate    string
	Status     string
	FileURL    string
	FileName   string
	Commentary string
}

type PageData struct {
	Nav     nav.TopNavData
	Message string
	Rows    []BillView
}
