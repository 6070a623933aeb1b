package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "4 Avr. 04", FormatDate("2004-04-04"))
	assert.Equal(t, "2 Fév. 02", FormatDate("2002-02-02"))
	assert.Equal(t, "31 Déc. 99", FormatDate("1999-12-31"))
	assert.Equal(t, "1 Jan. 21", FormatDate("2021-01-01"))
}

func TestFormatDateAcceptsRFC3339(t *testing.T) {
	assert.Equal(t, "24 Mai 23", FormatDate("2023-05-24T10:30:00Z"))
}

func TestFormatDateReturnsRawOnUnparseableInput(t *testing.T) {
	for _, raw := range []string{"", "not-a-date", "04/04/2004", "2004-13-40"} {
		got := FormatDate(raw)
		assert.Equal(t, raw, got)
		// Idempotent on already-malformed input.
		assert.Equal(t, got, FormatDate(got))
	}
}

func TestFormatStatusIsTotal(t *testing.T) {
	assert.Equal(t, "En attente", FormatStatus("pending"))
	assert.Equal(t, "Accepté", FormatStatus("accepted"))
	assert.Equal(t, "Refusé", FormatStatus("refused"))
	assert.Equal(t, "Refusé", FormatStatus("anything-else"))
	assert.NotEmpty(t, FormatStatus(""))
}
