// Package format holds the pure display formatting used by bill screens.
package format

import (
	"fmt"
	"time"

	"billable/models"
)

var frenchMonths = [12]string{
	"Jan.", "Fév.", "Mar.", "Avr.", "Mai", "Juin",
	"Juil.", "Aoû.", "Sep.", "Oct.", "Nov.", "Déc.",
}

// ParseDate parses the date forms bill records carry: ISO dates, with
// RFC3339 accepted for records that kept a full timestamp.
func ParseDate(raw string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, raw)
}

// FormatDate converts an ISO date to the short French display form, e.g.
// "2004-04-04" -> "4 Avr. 04". Upstream records are not schema-validated,
// so an unparseable value is returned untouched instead of failing.
func FormatDate(raw string) string {
	t, err := ParseDate(raw)
	if err != nil {
		return raw
	}
	return fmt.Sprintf("%d %s %02d", t.Day(), frenchMonths[t.Month()-1], t.Year()%100)
}

// FormatStatus maps a stored status code to its display label. Total over
// all inputs: anything unknown reads as refused.
func FormatStatus(code string) string {
	switch code {
	case models.StatusPending:
		return "En attente"
	case models.StatusAccepted:
		return "Accepté"
	default:
		return "Refusé"
	}
}
