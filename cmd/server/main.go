package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/launchkit/backend/internal/config"
	"github.com/launchkit/backend/internal/handler"
	"github.com/launchkit/backend/internal/logging"
	"github.com/launchkit/backend/internal/metrics"
	"github.com/launchkit/backend/internal/repository"
	"github.com/launchkit/backend/internal/service"
	"github.com/launchkit/backend/pkg/auth"
	pkgstripe "github.com/launchkit/backend/pkg/stripe"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config failed", "error", err)
		os.Exit(1)
	}
	logging.Setup(cfg.LogLevel)
	if err := cfg.Validate(); err != nil {
		logging.Fatal("invalid config", "error", err)
	}

	pool, err := repository.NewPool(context.Background(), cfg.Database.URL)
	if err != nil {
		logging.Fatal("failed to connect to database", "error", err)
	}
	defer pool.Close()

	m := metrics.New()
	sessionSecret := auth.SecretBytes(cfg.Session.Secret)

	contactRepo := repository.NewPgContactRepository(pool)
	postRepo := repository.NewPgPostRepository(pool)
	userRepo := repository.NewPgUserRepository(pool)
	eventRepo := repository.NewPgWebhookEventRepository(pool)

	contactService := service.NewContactService(contactRepo)
	postService := service.NewPostService(postRepo)
	authService := service.NewAuthService(userRepo)

	stripeClient := pkgstripe.NewClient(cfg.Stripe.SecretKey, cfg.Stripe.WebhookSecret)
	billingService := service.NewBillingService(stripeClient, userRepo, eventRepo, &cfg.Stripe, cfg.FrontendURL)

	h := handler.New(pool, cfg.FrontendURL)
	adminAuthHandler := handler.NewAdminAuthHandler(cfg.Admin.Email, cfg.Admin.Password, sessionSecret, cfg.IsProduction())
	authHandler := handler.NewAuthHandler(authService, handler.AuthConfig{
		GoogleClientID:     cfg.Google.ClientID,
		GoogleClientSecret: cfg.Google.ClientSecret,
		GoogleRedirectPath: "/api/auth/google/callback",
		BackendURL:         cfg.BackendURL,
		FrontendURL:        cfg.FrontendURL,
		SessionSecret:      sessionSecret,
		SecureCookies:      cfg.IsProduction(),
	})
	meHandler := handler.NewMeHandler(userRepo)
	contactHandler := handler.NewContactHandler(contactService)
	postHandler := handler.NewPostHandler(postService, sessionSecret)
	billingHandler := handler.NewBillingHandler(billingService, m)

	requireAdmin := auth.RequireAdmin(sessionSecret)
	requireUser := auth.RequireUser(sessionSecret)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/health", h.Health)
	mux.Handle("GET /metrics", m.Handler())

	// Admin session gate
	mux.HandleFunc("POST /api/admin-auth", adminAuthHandler.Login)
	mux.HandleFunc("DELETE /api/admin-auth", adminAuthHandler.Logout)

	// User auth (Google OAuth)
	mux.HandleFunc("GET /api/auth/google/login", authHandler.GoogleLoginURL)
	mux.HandleFunc("GET /api/auth/google/callback", authHandler.GoogleCallback)
	mux.HandleFunc("POST /api/auth/logout", authHandler.Logout)
	mux.Handle("GET /api/me", requireUser(http.HandlerFunc(meHandler.Me)))

	// Contact: submission is public, triage is admin-only
	mux.HandleFunc("POST /api/contact", contactHandler.Submit)
	mux.Handle("GET /api/contact", requireAdmin(http.HandlerFunc(contactHandler.List)))
	mux.Handle("PATCH /api/contact", requireAdmin(http.HandlerFunc(contactHandler.UpdateStatus)))

	// Posts: reads are public (published only without an admin session),
	// writes are admin-only
	mux.HandleFunc("GET /api/posts", postHandler.List)
	mux.HandleFunc("GET /api/posts/{id}", postHandler.Get)
	mux.Handle("POST /api/posts", requireAdmin(http.HandlerFunc(postHandler.Create)))
	mux.Handle("PUT /api/posts/{id}", requireAdmin(http.HandlerFunc(postHandler.Update)))
	mux.Handle("DELETE /api/posts/{id}", requireAdmin(http.HandlerFunc(postHandler.Delete)))

	// Billing: checkout needs a signed-in user, the webhook is verified by
	// its Stripe signature
	mux.Handle("POST /api/checkout", requireUser(http.HandlerFunc(billingHandler.Checkout)))
	mux.HandleFunc("POST /api/webhooks/stripe", billingHandler.Webhook)

	chain := h.CORS(handler.SecurityHeaders(handler.RequestLogger(m)(mux)))

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      chain,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("server listening", "addr", server.Addr, "env", cfg.Env)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		slog.Error("shutdown error", "error", err)
	}
}
