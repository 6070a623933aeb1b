package login

import (
	"context"
	"html"
	"io"
	"strings"

	"github.com/a-h/templ"

	sharedhtml "billable/frontend/shared/html"
)

// GetLoginScreen renders the login form, optionally with an error banner.
func GetLoginScreen(errorMessage string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString(`<main class="login-page"><h1>Billable</h1>`)
		if strings.TrimSpace(errorMessage) != "" {
			b.WriteString(`<p class="error" data-testid="login-error">` + html.EscapeString(errorMessage) + `</p>`)
		}
		b.WriteString(`<form data-testid="form-employee" method="POST" action="/login">` +
			`<label>Email <input data-testid="employee-email-input" type="email" name="username" required></label>` +
			`<label>Mot de passe <input data-testid="employee-password-input" type="password" name="password" required></label>` +
			`<button data-testid="employee-login-button" type="submit">Se connecter</button>` +
			`</form></main>`)
		_, err := io.WriteString(w, sharedhtml.RenderLayout("Billable - Connexion", b.String()))
		return err
	})
}
