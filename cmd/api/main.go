package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pawsense/internal/adapters/auth/okta"
	"pawsense/internal/adapters/capabilities/grants"
	"pawsense/internal/adapters/mlapi"
	pg "pawsense/internal/adapters/storage/postgres"
	rds "pawsense/internal/adapters/storage/redis"
	s3store "pawsense/internal/adapters/storage/s3"
	"pawsense/internal/adapters/storage/sqlite"
	"pawsense/internal/domain/escalation"
	"pawsense/internal/domain/pets"
	"pawsense/internal/domain/scans"
	"pawsense/internal/platform/config"
	"pawsense/internal/platform/logger"
	"pawsense/internal/ports/auth"
	"pawsense/internal/ports/sessionstore"
	"pawsense/internal/router"

	"github.com/joho/godotenv"
)

func main() {
	// .env es opcional; en producción todo viene del entorno.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logger.NewFromEnv().Error("invalid configuration", map[string]any{"error": err})
		os.Exit(1)
	}

	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.Log.Level),
		Format: logger.ParseFormat(cfg.Log.Format),
		App:    cfg.Log.App,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("server stopped with error", map[string]any{"error": err})
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, log logger.Logger) error {
	var db *sql.DB
	if cfg.Storage.DBDSN != "" {
		var err error
		if db, err = pg.Open(ctx, cfg.Storage.DBDSN); err != nil {
			return err
		}
		defer db.Close()
		if err := pg.EnsureSchema(ctx, db); err != nil {
			return err
		}
		log.Info("postgres storage enabled", nil)
	}

	store, closeStore, err := openSessionStore(ctx, cfg.Storage, log)
	if err != nil {
		return err
	}
	defer closeStore()

	var media pets.MediaStore
	if cfg.Blob.Enabled() {
		media = s3store.NewMediaStore(s3store.Config{
			Endpoint:      cfg.Blob.S3Endpoint,
			Region:        cfg.Blob.S3Region,
			AccessKey:     cfg.Blob.S3AccessKey,
			SecretKey:     cfg.Blob.S3SecretKey,
			PublicBaseURL: cfg.Blob.S3PublicBaseURL,
		})
		log.Info("s3 media storage enabled", map[string]any{"endpoint": cfg.Blob.S3Endpoint})
	}

	var verifier auth.AuthVerifier
	if cfg.Auth.Enabled() {
		v, err := okta.NewVerifier(okta.Config{
			Issuer:   cfg.Auth.OktaIssuer,
			Audience: cfg.Auth.OktaAudience,
			ClientID: cfg.Auth.OktaClientID,
		})
		if err != nil {
			return err
		}
		verifier = v
	} else {
		log.Warn("auth disabled, accepting X-Debug-User-ID", nil)
	}

	grantsClient, err := grants.NewClient(grants.Config{
		BaseURL: cfg.Capabilities.BaseURL,
		APIKey:  cfg.Capabilities.APIKey,
	})
	if err != nil {
		return err
	}

	ml, err := mlapi.NewClient(mlapi.Config{
		BaseURL:       cfg.Inference.BaseURL,
		HealthBaseURL: cfg.Inference.HealthBaseURL,
		AlertBaseURL:  cfg.Inference.AlertBaseURL,
		ReportBaseURL: cfg.Inference.ReportBaseURL,
		Timeout:       cfg.Inference.Timeout,
		AlertTimeout:  cfg.Inference.AlertTimeout,
	})
	if err != nil {
		return err
	}

	policy := escalation.NewPolicy(ml, cfg.Inference.AlertTimeout, log)

	resultPolicy, err := scans.ParseResultPolicy(cfg.Results.Policy)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr: cfg.Server.Addr,
		Handler: router.NewRouter(router.Options{
			AuthVerifier: verifier,
			Logger:       log,
			DB:           db,
			SessionStore: store,
			MediaStore:   media,
			Capabilities: grants.NewResolver(grantsClient, cfg.Capabilities.AllowAll),
			Transport:    ml,
			Alerter:      ml,
			Reports:      ml,
			Escalation:   policy,
			ResultPolicy: resultPolicy,
			Background:   ctx,
			SessionIdle:  cfg.Storage.SessionTTL,
		}),
		ReadTimeout: 30 * time.Second,
		// los escaneos esperan al servicio de inferencia
		WriteTimeout: cfg.Inference.Timeout + 10*time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", map[string]any{"addr": cfg.Server.Addr, "inference": cfg.Inference.BaseURL})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down", nil)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	// alertas SOS que siguen en vuelo
	policy.Wait()
	return nil
}

// openSessionStore: redis si hay REDIS_ADDR, si no sqlite si hay SESSION_DB_PATH,
// si no nil (el router usa memoria).
func openSessionStore(ctx context.Context, cfg config.StorageConfig, log logger.Logger) (sessionstore.Store, func(), error) {
	switch {
	case cfg.RedisAddr != "":
		s, err := rds.Open(ctx, rds.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
			TTL:      cfg.SessionTTL,
		})
		if err != nil {
			return nil, nil, err
		}
		log.Info("redis session store enabled", map[string]any{"addr": cfg.RedisAddr})
		return s, func() { _ = s.Close() }, nil
	case cfg.SessionDBPath != "":
		s, err := sqlite.Open(ctx, cfg.SessionDBPath, cfg.SessionTTL)
		if err != nil {
			return nil, nil, err
		}
		log.Info("sqlite session store enabled", map[string]any{"path": cfg.SessionDBPath})
		return s, func() { _ = s.Close() }, nil
	default:
		return nil, func() {}, nil
	}
}
