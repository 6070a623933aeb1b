package adminusers

import "billable/frontend/shared/nav"

type UserView struct {
	ID       int64  `bun:"id"`
	Username string `bun:"username"`
	Role     string `bun:"role"`
}

type PageData struct {
	Nav          nav.TopNavData
	Users        []UserView
	Status       string
	ErrorMessage string
}
