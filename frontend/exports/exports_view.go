package exports

import (
	"context"
	"fmt"
	"html"
	"io"
	"strings"

	"github.com/a-h/templ"

	"billable/frontend/shared/format"
	sharedhtml "billable/frontend/shared/html"
	"billable/frontend/shared/nav"
	"billable/frontend/shared/routes"
)

// ExportsPage renders the admin exports screen with the CSV download
// links and a per-status summary.
func ExportsPage(data PageData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		base := routes.Path(routes.Exports)

		var b strings.Builder
		b.WriteString(nav.RenderTopNav(data.Nav))
		b.WriteString(`<main class="exports-page"><h1>Exports</h1>`)
		if data.Message != "" {
			b.WriteString(`<p class="error">` + html.EscapeString(data.Message) + `</p>`)
		}

		b.WriteString(`<section data-testid="exports-summary"><h2>Notes de frais soumises</h2>`)
		if len(data.Counts) == 0 {
			b.WriteString(`<p class="empty">Aucune note de frais</p>`)
		} else {
			b.WriteString(`<table><thead><tr><th>Statut</th><th>Nombre</th><th></th></tr></thead><tbody>`)
			for _, c := range data.Counts {
				b.WriteString(`<tr>`)
				b.WriteString(`<td>` + html.EscapeString(format.FormatStatus(c.Status)) + `</td>`)
				b.WriteString(`<td>` + fmt.Sprintf("%d", c.Count) + `</td>`)
				b.WriteString(`<td><a href="` + base + `/bills.csv?status=` + html.EscapeString(c.Status) + `">CSV</a></td>`)
				b.WriteString(`</tr>`)
			}
			b.WriteString(`</tbody></table>`)
		}
		b.WriteString(`</section>`)

		b.WriteString(`<section data-testid="exports-downloads">`)
		b.WriteString(`<a data-testid="btn-export-csv" class="button" href="` + base + `/bills.csv">Exporter toutes les notes (CSV)</a>`)
		b.WriteString(`</section>`)
		b.WriteString(`</main>`)

		_, err := io.WriteString(w, sharedhtml.RenderLayout("Billable - Exports", b.String()))
		return err
	})
}
