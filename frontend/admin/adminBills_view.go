package admin

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
	"billable/models"
)

// AdminBillsPage renders the review screen with bills grouped by status.
func AdminBillsPage(data PageData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString(nav.RenderTopNav(data.Nav))
		b.WriteString(`<main class="admin-bills-page"><h1>Validations</h1>`)
		if data.Message != "" {
			b.WriteString(`<p class="error">` + html.EscapeString(data.Message) + `</p>`)
		}
		writeStatusSection(&b, "En attente", "status-bills-container1", data.Pending, true)
		writeStatusSection(&b, "Validé", "status-bills-container2", data.Accepted, false)
		writeStatusSection(&b, "Refusé", "status-bills-container3", data.Refused, false)
		b.WriteString(`</main>`)
		_, err := io.WriteString(w, sharedhtml.RenderLayout("Billable - Validations", b.String()))
		return err
	})
}

func writeStatusSection(b *strings.Builder, title, testID string, rows []BillRow, reviewable bool) {
	b.WriteString(`<section data-testid="` + testID + `"><h2>` + html.EscapeString(title) + ` (` + fmt.Sprintf("%d", len(rows)) + `)</h2>`)
	if len(rows) == 0 {
		b.WriteString(`<p class="empty">Aucune note de frais</p></section>`)
		return
	}
	b.WriteString(`<table><thead><tr><th>Employé</th><th>Type</th><th>Nom</th><th>Date</th><th>Montant</th><th>Justificatif</th>`)
	if reviewable {
		b.WriteString(`<th>Décision</th>`)
	}
	b.WriteString(`</tr></thead><tbody>`)
	for _, row := range rows {
		b.WriteString(`<tr>`)
		b.WriteString(`<td>` + html.EscapeString(row.Email) + `</td>`)
		b.WriteString(`<td>` + html.EscapeString(row.Type) + `</td>`)
		b.WriteString(`<td>` + html.EscapeString(row.Name) + `</td>`)
		b.WriteString(`<td>` + html.EscapeString(row.Date) + `</td>`)
		b.WriteString(`<td>` + fmt.Sprintf("%.2f", row.Amount) + ` €</td>`)
		voucher := routes.Path(routes.Exports) + "/bills/" + row.ID + "/voucher.pdf"
		b.WriteString(`<td><a href="` + html.EscapeString(row.FileURL) + `" target="_blank">voir</a> <a href="` + voucher + `">PDF</a></td>`)
		if reviewable {
			action := routes.Path(routes.AdminBills) + "/" + row.ID + "/status"
			b.WriteString(`<td>` +
				`<form method="POST" action="` + action + `"><input type="hidden" name="status" value="` + models.StatusAccepted + `"><button data-testid="btn-accept-bill" type="submit">Accepter</button></form>` +
				`<form method="POST" action="` + action + `"><input type="hidden" name="status" value="` + models.StatusRefused + `"><button data-testid="btn-refuse-bill" type="submit">Refuser</button></form>` +
				`</td>`)
		}
		b.WriteString(`</tr>`)
	}
	b.WriteString(`</tbody></table></section>`)
}
