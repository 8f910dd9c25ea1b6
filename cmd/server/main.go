package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"account-platform/backend/internal/audit"
	auditrepo "account-platform/backend/internal/audit/repository"
	authservice "account-platform/backend/internal/auth/service"
	companyrepo "account-platform/backend/internal/company/repository"
	"account-platform/backend/internal/config"
	credrepo "account-platform/backend/internal/credential/repository"
	"account-platform/backend/internal/db"
	"account-platform/backend/internal/event"
	eventotel "account-platform/backend/internal/event/otel"
	"account-platform/backend/internal/event/producer"
	"account-platform/backend/internal/mailer"
	"account-platform/backend/internal/security"
	"account-platform/backend/internal/server"
	"account-platform/backend/internal/server/middleware"
	sessionrepo "account-platform/backend/internal/session/repository"
	tokenrepo "account-platform/backend/internal/token/repository"
	userrepo "account-platform/backend/internal/user/repository"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL is not set; create a .env from .env.example or set DATABASE_URL")
	}

	conn, err := db.Open(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	defer conn.Close()

	privKey, err := security.ParsePrivateKey(cfg.JWTPrivateKey)
	if err != nil {
		log.Fatalf("JWT_PRIVATE_KEY: %v", err)
	}
	pubKey, err := security.ParsePublicKey(cfg.JWTPublicKey)
	if err != nil {
		log.Fatalf("JWT_PUBLIC_KEY: %v", err)
	}
	tokens := security.NewTokenProvider(privKey, pubKey, cfg.JWTIssuer, cfg.JWTAudience, cfg.AccessTTL())
	hasher := security.NewHasher(cfg.BcryptCost)

	users := userrepo.NewPostgresRepository(conn)
	creds := credrepo.NewPostgresRepository(conn)
	oneTimeTokens := tokenrepo.NewPostgresRepository(conn)
	sessions := sessionrepo.NewPostgresRepository(conn)
	companies := companyrepo.NewPostgresRepository(conn)
	audits := auditrepo.NewPostgresRepository(conn)

	mail := mailer.NewClient(cfg.MailAPIKey, cfg.MailBaseURL, cfg.MailFrom, cfg.MailFromName, cfg.AppBaseURL)
	if cfg.MailAPIKey == "" {
		log.Println("MAIL_API_KEY not set; email dispatch disabled")
	}

	ctx := context.Background()

	providers, err := eventotel.NewProviders(ctx, cfg.OTLPEndpoint, "account-platform-server", cfg.OTLPInsecure)
	if err != nil {
		log.Fatalf("otel: %v", err)
	}
	providers.SetGlobal()

	kafkaProducer, err := producer.NewKafkaProducer(cfg.EventsKafkaBrokersList(), cfg.EventsKafkaTopic)
	if err != nil {
		log.Fatalf("kafka: %v", err)
	}
	emitter := event.Fanout(eventotel.NewEventEmitter(providers.LoggerProvider), kafkaProducer)

	auditor := audit.NewLogger(audits, middleware.ClientIP)

	runTx := func(ctx context.Context, fn func(tx *sql.Tx) error) error {
		return db.RunInTx(ctx, conn, fn)
	}
	authSvc := authservice.NewAuthService(runTx, users, creds, oneTimeTokens, sessions, hasher, tokens, mail, auditor, emitter)

	handler := server.NewHandler(server.Deps{
		Auth:         authSvc,
		Tokens:       tokens,
		UserRepo:     users,
		CompanyRepo:  companies,
		SessionRepo:  sessions,
		AuditRepo:    audits,
		HealthPinger: conn,
		CookieSecure: cfg.Env == "production",
	})

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Printf("HTTP server listening on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("serve: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("shutting down HTTP server...")
	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}

	// Let in-flight async emits drain before tearing down the exporters.
	time.Sleep(event.ShutdownDrainDuration)
	if err := kafkaProducer.Close(); err != nil {
		log.Printf("kafka close: %v", err)
	}
	if err := providers.Shutdown(shutdownCtx); err != nil {
		log.Printf("otel shutdown: %v", err)
	}
	log.Println("HTTP server stopped")
}
