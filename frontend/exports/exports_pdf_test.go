package exports

import (
	"bytes"
	"testing"
	"time"
)

func TestRenderVoucherPDF_GeneratesPDF(t *testing.T) {
	t.Parallel()

	pdf, reference, err := renderVoucherPDF(VoucherData{
		BillID:     "47qAXb6fIm2zOKkLzMro",
		Email:      "employee@billable.tld",
		Type:       "Hôtel et logement",
		Name:       "encore",
		Amount:     400,
		Date:       "2004-04-04",
		VAT:        "80",
		Pct:        20,
		Commentary: "séminaire billed",
		Status:     "pending",
		FileName:   "preview-facture.jpg",
	}, time.Date(2026, 2, 20, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("renderVoucherPDF returned error: %v", err)
	}
	if len(pdf) == 0 {
		t.Fatalf("expected non-empty pdf bytes")
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF")) {
		t.Fatalf("expected pdf magic header, got %q", pdf[:4])
	}
	if reference != "B-47QAXB6FIM2ZOKKLZMRO" {
		t.Fatalf("unexpected reference %q", reference)
	}
}

func TestBillReference_TruncatesAtFirstUUIDBlock(t *testing.T) {
	t.Parallel()

	got := billReference("3f2a9c1e-0000-4000-8000-000000000000")
	if got != "B-3F2A9C1E" {
		t.Fatalf("unexpected reference %q", got)
	}
}
