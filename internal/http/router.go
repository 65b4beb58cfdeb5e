package http

import (
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"freelance-backend/internal/handlers"
	"freelance-backend/internal/middleware"
	"freelance-backend/internal/preview"
)

func NewRouter(
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	customerHandler *handlers.CustomerHandler,
	projectHandler *handlers.ProjectHandler,
	invoiceHandler *handlers.InvoiceHandler,
	expenseHandler *handlers.ExpenseHandler,
	profileHandler *handlers.ProfileHandler,
	backupHandler *handlers.BackupHandler,
	healthHandler *handlers.HealthHandler,
	previewHandler *preview.Handler,
	authMiddleware *middleware.AuthMiddleware,
) *mux.Router {
	r := mux.NewRouter()

	// Public API routes - Authentication
	r.HandleFunc("/auth/signup", authHandler.Signup).Methods("POST")
	r.HandleFunc("/auth/login", authHandler.Login).Methods("POST")
	r.HandleFunc("/auth/totp/verify", authHandler.VerifyTOTP).Methods("POST")

	// Health and metrics
	r.HandleFunc("/health", healthHandler.BasicHealth).Methods("GET")
	r.HandleFunc("/health/ready", healthHandler.ReadinessHealth).Methods("GET")
	r.HandleFunc("/health/detailed", healthHandler.DetailedHealth).Methods("GET")
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")

	// Protected API routes - TOTP enrollment
	totpAPI := r.PathPrefix("/api/auth/totp").Subrouter()
	totpAPI.Use(authMiddleware.Authenticate)
	totpAPI.HandleFunc("/setup", authHandler.SetupTOTP).Methods("POST")
	totpAPI.HandleFunc("/enable", authHandler.EnableTOTP).Methods("POST")
	totpAPI.HandleFunc("", authHandler.DisableTOTP).Methods("DELETE")

	// Protected API routes - Users (admin only)
	usersAPI := r.PathPrefix("/api/users").Subrouter()
	usersAPI.Use(authMiddleware.Authenticate)
	usersAPI.Use(authMiddleware.RequireRole("admin"))
	usersAPI.HandleFunc("", userHandler.ListUsers).Methods("GET")
	usersAPI.HandleFunc("/{id}", userHandler.GetUser).Methods("GET")
	usersAPI.HandleFunc("/{id}", userHandler.DeleteUser).Methods("DELETE")
	usersAPI.HandleFunc("/{id}/toggle-active", userHandler.ToggleActiveStatus).Methods("PATCH")

	// Protected API routes - Customers
	customersAPI := r.PathPrefix("/api/customers").Subrouter()
	customersAPI.Use(authMiddleware.Authenticate)
	customersAPI.HandleFunc("", customerHandler.ListCustomers).Methods("GET")
	customersAPI.HandleFunc("", customerHandler.CreateCustomer).Methods("POST")
	customersAPI.HandleFunc("/{id}", customerHandler.GetCustomer).Methods("GET")
	customersAPI.HandleFunc("/{id}", customerHandler.UpdateCustomer).Methods("PUT")
	customersAPI.HandleFunc("/{id}", customerHandler.DeleteCustomer).Methods("DELETE")

	// Protected API routes - Projects
	projectsAPI := r.PathPrefix("/api/projects").Subrouter()
	projectsAPI.Use(authMiddleware.Authenticate)
	projectsAPI.HandleFunc("", projectHandler.ListProjects).Methods("GET")
	projectsAPI.HandleFunc("", projectHandler.CreateProject).Methods("POST")
	projectsAPI.HandleFunc("/{id}", projectHandler.GetProject).Methods("GET")
	projectsAPI.HandleFunc("/{id}", projectHandler.UpdateProject).Methods("PUT")
	projectsAPI.HandleFunc("/{id}", projectHandler.DeleteProject).Methods("DELETE")

	// Protected API routes - Invoices and payment parts
	invoicesAPI := r.PathPrefix("/api/invoices").Subrouter()
	invoicesAPI.Use(authMiddleware.Authenticate)
	invoicesAPI.HandleFunc("", invoiceHandler.ListInvoices).Methods("GET")
	invoicesAPI.HandleFunc("", invoiceHandler.CreateInvoice).Methods("POST")
	invoicesAPI.HandleFunc("/validate-reference", invoiceHandler.ValidateReference).Methods("POST")
	invoicesAPI.HandleFunc("/number/{number}", invoiceHandler.GetInvoiceByNumber).Methods("GET")
	invoicesAPI.HandleFunc("/{id}", invoiceHandler.GetInvoice).Methods("GET")
	invoicesAPI.HandleFunc("/{id}", invoiceHandler.UpdateInvoice).Methods("PUT")
	invoicesAPI.HandleFunc("/{id}", invoiceHandler.DeleteInvoice).Methods("DELETE")
	invoicesAPI.HandleFunc("/{id}/status", invoiceHandler.UpdateStatus).Methods("PATCH")
	invoicesAPI.HandleFunc("/{id}/qr/payload", invoiceHandler.GetQRPayload).Methods("GET")
	invoicesAPI.HandleFunc("/{id}/qr.png", invoiceHandler.GetQRImage).Methods("GET")
	invoicesAPI.HandleFunc("/{id}/pdf", invoiceHandler.GetPDF).Methods("GET")

	// Protected API routes - Expenses
	expensesAPI := r.PathPrefix("/api/expenses").Subrouter()
	expensesAPI.Use(authMiddleware.Authenticate)
	expensesAPI.HandleFunc("", expenseHandler.ListExpenses).Methods("GET")
	expensesAPI.HandleFunc("", expenseHandler.CreateExpense).Methods("POST")
	expensesAPI.HandleFunc("/roll-due", expenseHandler.RollDue).Methods("POST")
	expensesAPI.HandleFunc("/{id}", expenseHandler.GetExpense).Methods("GET")
	expensesAPI.HandleFunc("/{id}", expenseHandler.UpdateExpense).Methods("PUT")
	expensesAPI.HandleFunc("/{id}", expenseHandler.DeleteExpense).Methods("DELETE")

	// Protected API routes - Business profile
	profileAPI := r.PathPrefix("/api/profile").Subrouter()
	profileAPI.Use(authMiddleware.Authenticate)
	profileAPI.HandleFunc("", profileHandler.GetProfile).Methods("GET")
	profileAPI.HandleFunc("", profileHandler.UpdateProfile).Methods("PUT")
	profileAPI.HandleFunc("/account-info", profileHandler.GetAccountInfo).Methods("GET")

	// Protected API routes - Backups (admin only)
	backupsAPI := r.PathPrefix("/api/backups").Subrouter()
	backupsAPI.Use(authMiddleware.Authenticate)
	backupsAPI.Use(authMiddleware.RequireRole("admin"))
	backupsAPI.HandleFunc("", backupHandler.ListBackups).Methods("GET")
	backupsAPI.HandleFunc("", backupHandler.RunBackup).Methods("POST")

	// Live payment part preview for the invoice editor
	wsAPI := r.PathPrefix("/ws").Subrouter()
	wsAPI.Use(authMiddleware.Authenticate)
	wsAPI.HandleFunc("/preview", previewHandler.Preview).Methods("GET")

	return r
}
