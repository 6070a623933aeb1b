package adminusers

import (
	"context"
	"fmt"
	"html"
	"io"
	"strings"

	"github.com/a-h/templ"

	sharedhtml "billable/frontend/shared/html"
	"billable/frontend/shared/nav"
	"billable/infrastructure/rbac"
)

// UsersListPage renders the account list and the creation form.
func UsersListPage(data PageData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString(nav.RenderTopNav(data.Nav))
		b.WriteString(`<main class="admin-users-page"><h1>Comptes</h1>`)
		if data.Status != "" {
			b.WriteString(`<p class="status">` + html.EscapeString(data.Status) + `</p>`)
		}
		if data.ErrorMessage != "" {
			b.WriteString(`<p class="error">` + html.EscapeString(data.ErrorMessage) + `</p>`)
		}

		b.WriteString(`<table data-testid="users-table"><thead><tr><th>ID</th><th>Email</th><th>Rôle</th></tr></thead><tbody>`)
		for _, u := range data.Users {
			b.WriteString(`<tr>`)
			b.WriteString(`<td>` + fmt.Sprintf("%d", u.ID) + `</td>`)
			b.WriteString(`<td>` + html.EscapeString(u.Username) + `</td>`)
			b.WriteString(`<td>` + html.EscapeString(u.Role) + `</td>`)
			b.WriteString(`</tr>`)
		}
		b.WriteString(`</tbody></table>`)

		b.WriteString(`<h2>Nouveau compte</h2>`)
		b.WriteString(`<form method="POST" action="` + usersPath + `">`)
		b.WriteString(`<label>Email <input name="username" type="email" required></label>`)
		b.WriteString(`<label>Mot de passe <input name="password" type="password" required></label>`)
		b.WriteString(`<label>Rôle <select name="role">` +
			`<option value="` + rbac.RoleEmployee + `">` + rbac.RoleEmployee + `</option>` +
			`<option value="` + rbac.RoleAdmin + `">` + rbac.RoleAdmin + `</option>` +
			`</select></label>`)
		b.WriteString(`<button type="submit">Créer</button>`)
		b.WriteString(`</form>`)
		b.WriteString(`</main>`)

		_, err := io.WriteString(w, sharedhtml.RenderLayout("Billable - Comptes", b.String()))
		return err
	})
}
