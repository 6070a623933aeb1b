package http

import (
	"net/http"

	adminbills "billable/frontend/admin"
	adminusers "billable/frontend/adminUsers"
	billspage "billable/frontend/bills"
	exportspage "billable/frontend/exports"
	"billable/frontend/login"
	newbillpage "billable/frontend/newbill"
	"billable/infrastructure/rbac"

	"github.com/go-chi/chi/v5"
)

// RegisterLoginRoutes registers login/logout routes.
func (s *Server) RegisterLoginRoutes() {
	s.router.Get("/login", login.GetLoginScreenHandler)
	s.router.Post("/login", login.CreateLoginHandler(s.DB, s.SessionCache, s.UserCache))
	s.router.Post("/logout", login.LogoutHandler(s.DB, s.SessionCache))
}

// RegisterBillRoutes registers the employee expense routes.
func (s *Server) RegisterBillRoutes(r chi.Router) chi.Router {
	s.Rbac.Add(rbac.RoleEmployee, "BILLS_LIST_VIEW", http.MethodGet, "/app/bills")
	r.Get("/bills", billspage.BillsPageQueryHandler(s.DB))

	s.Rbac.Add(rbac.RoleEmployee, "BILL_NEW_VIEW", http.MethodGet, "/app/bills/new")
	r.Get("/bills/new", newbillpage.NewBillPageQueryHandler())

	s.Rbac.Add(rbac.RoleEmployee, "BILL_SUBMIT", http.MethodPost, "/app/bills")
	r.Post("/bills", newbillpage.SubmitBillCommandHandler(s.DB, s.Audit))

	s.Rbac.Add(rbac.RoleEmployee, "BILL_RECEIPT_UPLOAD", http.MethodPost, "/app/api/bills/upload")
	r.Post("/api/bills/upload", newbillpage.UploadReceiptCommandHandler(s.DB, s.Audit))

	s.Rbac.Add(rbac.RoleEmployee, "BILL_RECEIPT_VIEW", http.MethodGet, "/app/api/bills/*/receipt")
	s.Rbac.Add(rbac.RoleAdmin, "BILL_RECEIPT_VIEW", http.MethodGet, "/app/api/bills/*/receipt")
	r.Get("/api/bills/{id}/receipt", billspage.ReceiptImageQueryHandler(s.DB))
	return r
}

// RegisterAdminRoutes registers the back-office routes.
func (s *Server) RegisterAdminRoutes(r chi.Router) chi.Router {
	s.Rbac.Add(rbac.RoleAdmin, "ADMIN_BILLS_VIEW", http.MethodGet, "/app/admin/bills")
	r.Get("/admin/bills", adminbills.AdminBillsPageQueryHandler(s.DB))

	s.Rbac.Add(rbac.RoleAdmin, "ADMIN_BILL_REVIEW", http.MethodPost, "/app/admin/bills/*/status")
	r.Post("/admin/bills/{id}/status", adminbills.ReviewBillCommandHandler(s.DB, s.Audit))

	s.Rbac.Add(rbac.RoleAdmin, "EXPORTS_VIEW", http.MethodGet, "/app/admin/exports")
	r.Get("/admin/exports", exportspage.ExportsPageQueryHandler(s.DB))

	s.Rbac.Add(rbac.RoleAdmin, "EXPORT_BILLS_CSV", http.MethodGet, "/app/admin/exports/bills.csv")
	r.Get("/admin/exports/bills.csv", exportspage.BillsExportCSVHandler(s.DB))

	s.Rbac.Add(rbac.RoleAdmin, "EXPORT_BILL_VOUCHER", http.MethodGet, "/app/admin/exports/bills/*/voucher.pdf")
	r.Get("/admin/exports/bills/{id}/voucher.pdf", exportspage.BillVoucherPDFHandler(s.DB))

	s.Rbac.Add(rbac.RoleAdmin, "ADMIN_USERS_LIST_VIEW", http.MethodGet, "/app/admin/users")
	r.Get("/admin/users", adminusers.UsersPageQueryHandler(s.DB))
	s.Rbac.Add(rbac.RoleAdmin, "ADMIN_USERS_CREATE", http.MethodPost, "/app/admin/users")
	r.Post("/admin/users", adminusers.CreateUserCommandHandler(s.DB, s.UserCache))
	return r
}
