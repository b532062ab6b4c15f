package main

import (
	"context"
	"errors"
	"fmt"
	"go-recruit-app/internal/auth"
	"go-recruit-app/internal/cache"
	"go-recruit-app/internal/config"
	"go-recruit-app/internal/data"
	"go-recruit-app/internal/handler"
	"go-recruit-app/internal/logger"
	"go-recruit-app/internal/middleware"
	"go-recruit-app/internal/notify"
	"go-recruit-app/internal/service"
	"go-recruit-app/internal/storage"
	"go-recruit-app/internal/view"
	"go-recruit-app/web"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alexedwards/scs/mysqlstore"
	"github.com/alexedwards/scs/v2"
)

func main() {
	// --- Configuration Loading ---
	cfg, err := config.LoadConfig()
	if err != nil {
		// Use fmt.Printf here because the logger is not yet initialized.
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// --- Logger Initialization ---
	log := logger.New(cfg.Log, nil)

	// --- Pre-flight Checks ---
	adminVerifier := auth.NewAdminVerifier(cfg.Admin)
	if !adminVerifier.Configured() {
		log.Warn("Admin credentials not configured; the admin surface is disabled. Set RECRUIT_ADMIN_USERNAME and RECRUIT_ADMIN_PASSWORD_HASH to enable it.")
	}

	// --- Database Initialization and Migration ---
	log.Info("Applying database migrations...")
	if err := data.ApplyMigrations(cfg.DB.DSN, "migrations"); err != nil {
		log.Fatal(err, "Failed to apply migrations")
	}
	log.Info("Migrations applied successfully.")

	log.Info("Connecting to the database...")
	db, err := data.NewDB(cfg.DB.DSN)
	if err != nil {
		log.Fatal(err, "Failed to connect to database")
	}
	defer db.Close()
	log.Info("Database connection successful.")

	// --- Session Management Setup ---
	sessionManager := scs.New()
	sessionManager.Store = mysqlstore.New(db.DB)
	sessionManager.Lifetime = time.Duration(cfg.Session.Lifetime) * time.Hour
	sessionManager.Cookie.Persist = true
	sessionManager.Cookie.SameSite = http.SameSiteLaxMode
	sessionManager.Cookie.Secure = cfg.Server.TLS.Enabled

	// --- Authentication and Authorization Setup ---
	log.Info("Initializing authentication and authorization...")
	var authenticator *auth.Authenticator
	if cfg.OIDC.Enabled {
		authenticator, err = auth.NewAuthenticator(&cfg.OIDC)
		if err != nil {
			log.Fatal(err, "Failed to initialize authenticator")
		}
	}
	enforcer, err := auth.NewEnforcer("mysql", cfg.DB.DSN, "auth_model.conf")
	if err != nil {
		log.Fatal(err, "Failed to initialize enforcer")
	}
	auth.SeedDefaultPolicies(enforcer, log)
	log.Info("Auth components initialized and policies seeded.")

	// --- View Template Initialization ---
	log.Info("Initializing view templates...")
	viewService, err := view.New(web.TemplateFS)
	if err != nil {
		log.Fatal(err, "Failed to initialize view templates")
	}
	log.Info("View templates initialized.")

	// --- Cache Initialization ---
	log.Info("Initializing SQLite cache...")
	contentCache, err := cache.New(cfg.Cache)
	if err != nil {
		log.Fatal(err, "Failed to initialize cache")
	}
	defer contentCache.Close()
	log.Info("Cache initialized.")

	// --- File Storage and Notifications ---
	store, err := storage.NewDiskStore(cfg.Storage.Root)
	if err != nil {
		log.Fatal(err, "Failed to initialize file storage")
	}
	notifier, err := notify.NewMailer(cfg.Mail)
	if err != nil {
		log.Fatal(err, "Failed to initialize mail client")
	}

	// --- Dependency Injection and Handler Initialization ---
	// Initialize the application layers, injecting dependencies from top to bottom.
	contentRepository := data.NewContentRepository(db)
	jobRepository := data.NewJobRepository(db)
	applicationRepository := data.NewApplicationRepository(db)
	newsletterRepository := data.NewNewsletterRepository(db)
	postRepository := data.NewPostRepository(db)

	contentService := service.NewContentService(contentRepository, contentCache)
	jobService := service.NewJobService(jobRepository)
	leadService := service.NewLeadService(applicationRepository, newsletterRepository, store, notifier, log)
	postService := service.NewPostService(postRepository)
	documentService := service.NewDocumentService(store)

	pageHandler := handler.NewPageHandler(contentService, jobService, postService, documentService, viewService, sessionManager, log)
	formHandler := handler.NewFormHandler(leadService, jobService, sessionManager, log)
	adminHandler := handler.NewAdminHandler(contentService, jobService, leadService, postService, documentService, viewService, sessionManager, log)
	authHandler := handler.NewAuthHandler(authenticator, adminVerifier, sessionManager, viewService, log)
	seoHandler := handler.NewSeoHandler(jobService, postService, cfg.Site.BaseURL)

	authzMiddleware := middleware.Authorizer(enforcer, sessionManager)
	errorMiddleware := middleware.Error(log, viewService)

	// --- Router Setup ---
	// The router is the central hub that directs incoming requests to the correct handlers.
	router := handler.NewRouter(pageHandler, formHandler, adminHandler, authHandler, seoHandler, authzMiddleware, errorMiddleware, sessionManager, web.StaticFS)

	// --- Server Initialization and Graceful Shutdown ---
	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: router,
	}
	go func() {
		if cfg.Server.TLS.Enabled {
			log.Info(fmt.Sprintf("Starting HTTPS server on %s", server.Addr))
			if err := server.ListenAndServeTLS(cfg.Server.TLS.CertFile, cfg.Server.TLS.KeyFile); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Fatal(err, "Could not start HTTPS server")
			}
		} else {
			log.Info(fmt.Sprintf("Starting HTTP server on %s", server.Addr))
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Fatal(err, "Could not start HTTP server")
			}
		}
	}()
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Warn("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Fatal(err, "Server forced to shutdown")
	}
	log.Info("Server exiting")
}
