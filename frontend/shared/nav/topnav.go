package nav

import (
	"html"
	"strings"

	"billable/frontend/shared/routes"
	"billable/infrastructure/rbac"
	"billable/models"
)

// TopNavData is shared with page renderers.
type TopNavData struct {
	Username string
	Role     string
	Active   string
}

// BuildTopNavData resolves nav state for the session; Active names the
// navigation target of the current screen.
func BuildTopNavData(session models.Session, active string) TopNavData {
	return TopNavData{Username: session.User.Username, Role: session.User.Role, Active: active}
}

type navLink struct {
	target string
	label  string
}

// RenderTopNav returns the shared navigation bar. The link for the active
// target carries the active-icon class; links the role cannot reach are
// omitted entirely.
func RenderTopNav(data TopNavData) string {
	links := []navLink{
		{target: routes.Bills, label: "Mes notes de frais"},
		{target: routes.NewBill, label: "Nouvelle note de frais"},
	}
	if data.Role == rbac.RoleAdmin {
		links = append(links,
			navLink{target: routes.AdminBills, label: "Validation"},
			navLink{target: routes.Exports, label: "Exports"},
		)
	}

	var b strings.Builder
	b.WriteString(`<nav class="topnav" data-testid="topnav">`)
	for _, l := range links {
		path := routes.Path(l.target)
		if path == "" || !routes.Allowed(l.target, data.Role) {
			continue
		}
		class := "nav-link"
		if l.target == data.Active {
			class += " active-icon"
		}
		b.WriteString(`<a class="` + class + `" data-nav-target="` + l.target + `" href="` + path + `">`)
		b.WriteString(html.EscapeString(l.label))
		b.WriteString(`</a>`)
	}
	b.WriteString(`<span class="nav-user">` + html.EscapeString(data.Username) + `</span>`)
	b.WriteString(`<form class="nav-logout" method="POST" action="/logout"><button type="submit">Se déconnecter</button></form>`)
	b.WriteString(`</nav>`)
	return b.String()
}
