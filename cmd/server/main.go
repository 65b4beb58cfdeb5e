package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"

	"freelance-backend/internal/auth"
	"freelance-backend/internal/cache"
	"freelance-backend/internal/config"
	"freelance-backend/internal/handlers"
	"freelance-backend/internal/health"
	h "freelance-backend/internal/http"
	"freelance-backend/internal/middleware"
	"freelance-backend/internal/preview"
	"freelance-backend/internal/repositories"
	"freelance-backend/internal/services"
	"freelance-backend/internal/store"
)

func main() {
	// Parse command-line flags
	port := flag.Int("port", 0, "Server port (overrides config)")
	storeDir := flag.String("store", "", "Record store directory (overrides config)")
	flag.Parse()

	// Load configuration
	cfg := config.Load()
	if *port != 0 {
		cfg.Server.Port = *port
	}
	if *storeDir != "" {
		cfg.Store.Dir = *storeDir
	}

	// Open the record store
	st, err := store.Open(cfg.Store.Dir)
	if err != nil {
		log.Fatalf("Failed to open record store at %s: %v", cfg.Store.Dir, err)
	}
	log.Printf("Record store opened at %s", st.Root())

	// Initialize Redis cache (optional - graceful fallback if unavailable)
	if err := cache.Init(cfg); err != nil {
		log.Printf("[Redis] Cache unavailable: %v (QR images will be rendered per request)", err)
	} else {
		log.Println("[Redis] Cache connected successfully")
	}

	// Initialize health checker
	healthChecker := health.NewHealthChecker(st)

	// Initialize JWT manager
	jwtManager := auth.NewJWTManager(cfg)

	// Initialize repositories
	userRepo := repositories.NewUserRepository(st)
	customerRepo := repositories.NewCustomerRepository(st)
	projectRepo := repositories.NewProjectRepository(st)
	invoiceRepo := repositories.NewInvoiceRepository(st)
	expenseRepo := repositories.NewExpenseRepository(st)
	profileRepo := repositories.NewProfileRepository(st)

	// Initialize services
	userService := services.NewUserService(userRepo)
	totpService := services.NewTOTPService(userRepo)
	customerService := services.NewCustomerService(customerRepo)
	projectService := services.NewProjectService(projectRepo, customerRepo)
	invoiceService := services.NewInvoiceService(invoiceRepo, customerRepo, projectRepo, profileRepo)
	expenseService := services.NewExpenseService(expenseRepo)
	profileService := services.NewProfileService(profileRepo)
	pdfService := services.NewPDFService(invoiceService, profileRepo, customerRepo, cfg.QR.ImageSize)
	backupService := services.NewBackupService(st, cfg)
	if backupService.Enabled() {
		log.Printf("[Backup] S3 backups enabled (bucket %s)", cfg.Backup.Bucket)
	} else {
		log.Println("[Backup] S3 credentials not set, backups disabled")
	}

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtManager, userRepo)
	corsMiddleware := middleware.NewCORS(cfg)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService, totpService, jwtManager)
	userHandler := handlers.NewUserHandler(userService)
	customerHandler := handlers.NewCustomerHandler(customerService)
	projectHandler := handlers.NewProjectHandler(projectService)
	invoiceHandler := handlers.NewInvoiceHandler(invoiceService, pdfService, cfg.QR.ImageSize)
	expenseHandler := handlers.NewExpenseHandler(expenseService)
	profileHandler := handlers.NewProfileHandler(profileService)
	backupHandler := handlers.NewBackupHandler(backupService)
	healthHandler := handlers.NewHealthHandler(healthChecker)
	previewHandler := preview.NewHandler()

	router := h.NewRouter(
		authHandler,
		userHandler,
		customerHandler,
		projectHandler,
		invoiceHandler,
		expenseHandler,
		profileHandler,
		backupHandler,
		healthHandler,
		previewHandler,
		authMiddleware,
	)

	// Wrap with panic recovery, metrics and request logging middleware
	handler := middleware.PanicRecovery(middleware.MetricsMiddleware(corsMiddleware(middleware.APILogging(router))))

	// Start server
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("Server running on %s", addr)
	if err := http.ListenAndServe(addr, handler); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
