package bills

import (
	"context"
	"fmt"
	"html"
	"io"
	"strings"

	"github.com/a-h/templ"

	sharedhtml "billable/frontend/shared/html"
	"billable/frontend/shared/nav"
	"billable/frontend/shared/routes"
)

// BillsPage renders the bill list screen.
func BillsPage(data PageData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString(nav.RenderTopNav(data.Nav))
		b.WriteString(`<main class="bills-page"><div class="page-head"><h1>Mes notes de frais</h1>`)
		b.WriteString(`<button type="button" data-testid="btn-new-bill" onclick="window.location.href='` + routes.Path(routes.NewBill) + `'">Nouvelle note de frais</button></div>`)
		if data.Message != "" {
			b.WriteString(`<p class="error">` + html.EscapeString(data.Message) + `</p>`)
		}
		writeBillsTable(&b, data.Rows)
		b.WriteString(renderReceiptModal())
		b.WriteString(`</main>`)
		_, err := io.WriteString(w, sharedhtml.RenderLayout("Billable - Mes notes de frais", b.String()))
		return err
	})
}

func writeBillsTable(b *strings.Builder, rows []BillView) {
	b.WriteString(`<table data-testid="tbody-wrapper"><thead><tr>` +
		`<th>Type</th><th>Nom</th><th>Date</th><th>Montant</th><th>Statut</th><th>Justificatif</th>` +
		`</tr></thead><tbody data-testid="tbody">`)
	for _, row := range rows {
		b.WriteString(`<tr>`)
		b.WriteString(`<td>` + html.EscapeString(row.Type) + `</td>`)
		b.WriteString(`<td>` + html.EscapeString(row.Name) + `</td>`)
		b.WriteString(`<td data-testid="bill-date">` + html.EscapeString(row.Date) + `</td>`)
		b.WriteString(`<td>` + fmt.Sprintf("%.2f", row.Amount) + ` €</td>`)
		b.WriteString(`<td data-testid="bill-status">` + html.EscapeString(row.Status) + `</td>`)
		b.WriteString(`<td><span class="icon-eye" data-testid="icon-eye" data-bill-url="` + html.EscapeString(row.FileURL) + `" title="` + html.EscapeString(row.FileName) + `"></span></td>`)
		b.WriteString(`</tr>`)
	}
	b.WriteString(`</tbody></table>`)
}

// renderReceiptModal returns the shared preview dialog and its wiring. An
// icon without a data-bill-url attribute is ignored: previewing is
// best-effort and must not raise.
func renderReceiptModal() string {
	return `<dialog id="modaleFile" class="modal">
  <div class="modal-content">
    <h3>Justificatif</h3>
    <div class="modal-body"></div>
    <form method="dialog"><button type="submit">Fermer</button></form>
  </div>
</dialog>
<script>
document.querySelectorAll('[data-testid="icon-eye"]').forEach(function (icon) {
  icon.addEventListener("click", function () {
    var billUrl = icon.getAttribute("data-bill-url");
    if (!billUrl) return;
    var modal = document.getElementById("modaleFile");
    if (!modal) return;
    var body = modal.querySelector(".modal-body");
    body.innerHTML = "";
    var img = document.createElement("img");
    img.src = billUrl;
    img.alt = icon.getAttribute("title") || "justificatif";
    body.appendChild(img);
    modal.showModal();
  });
});
</script>`
}
