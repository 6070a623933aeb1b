package exports

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"strings"
	"time"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/code128"
	"github.com/jung-kurt/gofpdf"

	"billable/frontend/shared/format"
)

// billReference derives the short human-readable reference printed and
// barcoded on the voucher. Bill IDs are UUIDs; the reference keeps the
// first block uppercased.
func billReference(billID string) string {
	ref := billID
	if idx := strings.IndexByte(ref, '-'); idx > 0 {
		ref = ref[:idx]
	}
	return "B-" + strings.ToUpper(ref)
}

func renderVoucherPDF(data VoucherData, printedAt time.Time) ([]byte, string, error) {
	reference := billReference(data.BillID)
	barcodePNG, err := renderCode128PNG(reference, 1200, 260)
	if err != nil {
		return nil, "", err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Expense Voucher", false)
	pdf.AddPage()

	name := strings.TrimSpace(data.Name)
	if name == "" {
		name = "Unnamed Expense"
	}
	email := strings.TrimSpace(data.Email)
	if email == "" {
		email = "unknown"
	}

	pdf.SetFont("Helvetica", "B", 28)
	pdf.CellFormat(0, 16, "Expense Voucher", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 12, reference, "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 12)
	rows := [][2]string{
		{"Employee", email},
		{"Type", data.Type},
		{"Name", name},
		{"Date", format.FormatDate(data.Date)},
		{"Amount", fmt.Sprintf("%.2f EUR", data.Amount)},
		{"VAT", data.VAT},
		{"Pct", fmt.Sprintf("%d", data.Pct)},
		{"Status", format.FormatStatus(data.Status)},
		{"Receipt", data.FileName},
		{"Printed", printedAt.Format("02/01/2006")},
	}
	for _, row := range rows {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.CellFormat(50, 9, row[0], "1", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 12)
		pdf.CellFormat(0, 9, row[1], "1", 1, "L", false, 0, "")
	}

	if commentary := strings.TrimSpace(data.Commentary); commentary != "" {
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "B", 12)
		pdf.CellFormat(0, 8, "Commentary", "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 11)
		pdf.MultiCell(0, 6, commentary, "1", "L", false)
	}

	opt := gofpdf.ImageOptions{ImageType: "PNG", ReadDpi: false}
	imageName := "bill-barcode-" + data.BillID
	pdf.RegisterImageOptionsReader(imageName, opt, bytes.NewReader(barcodePNG))
	pageW, _ := pdf.GetPageSize()
	imgW := 150.0
	imgH := 34.0
	x := (pageW - imgW) / 2
	y := 210.0
	pdf.ImageOptions(imageName, x, y, imgW, imgH, false, opt, 0, "")

	pdf.SetY(y + imgH + 4)
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, reference, "", 1, "C", false, 0, "")

	var out bytes.Buffer
	if err := pdf.Output(&out); err != nil {
		return nil, "", err
	}
	return out.Bytes(), reference, nil
}

func renderCode128PNG(value string, width, height int) ([]byte, error) {
	code, err := code128.Encode(value)
	if err != nil {
		return nil, err
	}
	scaled, err := barcode.Scale(code, width, height)
	if err != nil {
		return nil, err
	}
	normalized := toNRGBA(scaled)
	var barcodePNG bytes.Buffer
	if err := png.Encode(&barcodePNG, normalized); err != nil {
		return nil, err
	}
	return barcodePNG.Bytes(), nil
}

func toNRGBA(src image.Image) *image.NRGBA {
	bounds := src.Bounds()
	dst := image.NewNRGBA(bounds)
	draw.Draw(dst, bounds, src, bounds.Min, draw.Src)
	return dst
}
