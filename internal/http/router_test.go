package http

import (
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"freelance-backend/internal/handlers"
	"freelance-backend/internal/middleware"
	"freelance-backend/internal/preview"
)

func newTestRouter() *mux.Router {
	return NewRouter(
		&handlers.AuthHandler{},
		&handlers.UserHandler{},
		&handlers.CustomerHandler{},
		&handlers.ProjectHandler{},
		&handlers.InvoiceHandler{},
		&handlers.ExpenseHandler{},
		&handlers.ProfileHandler{},
		&handlers.BackupHandler{},
		&handlers.HealthHandler{},
		preview.NewHandler(),
		middleware.NewAuthMiddleware(nil, nil),
	)
}

func TestRouterRegistersRoutes(t *testing.T) {
	router := newTestRouter()

	templates := map[string]bool{}
	require.NoError(t, router.Walk(func(route *mux.Route, _ *mux.Router, _ []*mux.Route) error {
		if tpl, err := route.GetPathTemplate(); err == nil {
			templates[tpl] = true
		}
		return nil
	}))

	for _, path := range []string{
		"/auth/signup",
		"/auth/login",
		"/auth/totp/verify",
		"/health",
		"/health/ready",
		"/health/detailed",
		"/metrics",
		"/api/customers",
		"/api/projects/{id}",
		"/api/invoices/validate-reference",
		"/api/invoices/{id}/status",
		"/api/invoices/{id}/qr/payload",
		"/api/invoices/{id}/qr.png",
		"/api/invoices/{id}/pdf",
		"/api/expenses/roll-due",
		"/api/profile/account-info",
		"/api/users/{id}/toggle-active",
		"/api/backups",
		"/ws/preview",
	} {
		assert.True(t, templates[path], "route %s not registered", path)
	}
}
