package cmd

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gmit-kupang/sensus-jemaat/internal/formulir/draft"
	formServices "github.com/gmit-kupang/sensus-jemaat/internal/formulir/services"
	"github.com/gmit-kupang/sensus-jemaat/internal/formulir/submission"
	jemaatServices "github.com/gmit-kupang/sensus-jemaat/internal/jemaat/services"
	"github.com/gmit-kupang/sensus-jemaat/internal/routes"
	"github.com/gmit-kupang/sensus-jemaat/pkg/storage/mariadb"
	redisstore "github.com/gmit-kupang/sensus-jemaat/pkg/storage/redis"
)

const (
	sessionMaxIdle = 24 * time.Hour
	sweepInterval = 15 * time.Minute
)

var port string

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Menjalankan server HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			if port != "" {
				cfg.Port = port
			}
			return runServer(cmd.Context())
		},
	}
	cmd.Flags().StringVar(&port, "port", "", "port HTTP (default dari PORT)")
	return cmd
}

func runServer(parent context.Context) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := mariadb.Connect(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer db.Close()

	congregants := jemaatServices.NewCongregantService(db, log)
	pipeline := submission.NewPipeline(selectBackend(congregants), logReceipt, log)
	sessions := formServices.NewSessionService(selectDraftStore(ctx, db), pipeline, cfg.DraftDebounce, log)

	e := echo.New()
	e.HideBanner = true
	routes.Init(e, routes.Deps{
		DB:          db,
		Congregants: congregants,
		Sessions:    sessions,
		JWTSecret:   []byte(cfg.JWTSecret),
		Logger:      log,
	})

	go sweepSessions(ctx, sessions)

	errCh := make(chan error, 1)
	go func() {
		log.Info("Server berjalan", zap.String("port", cfg.Port), zap.String("env", cfg.AppEnv))
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return err
		}
	case <-ctx.Done():
	}

	log.Info("Server berhenti, menyimpan draft yang tertunda")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	sessions.CloseAll(shutdownCtx)
	return e.Shutdown(shutdownCtx)
}

// selectBackend memilih tujuan pengiriman formulir.
func selectBackend(local *jemaatServices.CongregantService) submission.Backend {
	if cfg.BackendURL == "" {
		return local
	}
	log.Info("Formulir dikirim ke backend eksternal", zap.String("url", cfg.BackendURL))
	return submission.NewHTTPBackend(cfg.BackendURL, 0, log)
}

// selectDraftStore memilih penyimpanan draft sesuai DRAFT_STORE. Redis yang
// tidak bisa dijangkau jatuh ke memori.
func selectDraftStore(ctx context.Context, db *sql.DB) draft.Store {
	switch strings.ToLower(cfg.DraftStore) {
	case "redis":
		client := redisstore.NewRedisClient(cfg)
		if err := redisstore.Ping(ctx, client); err != nil {
			log.Warn("Redis tidak tersedia, draft disimpan di memori", zap.Error(err))
			_ = client.Close()
			return draft.NewMemoryStore()
		}
		return draft.NewRedisStore(client, cfg.DraftTTL)
	case "mysql":
		return draft.NewMySQLStore(db)
	case "memory", "":
		return draft.NewMemoryStore()
	default:
		log.Warn("DRAFT_STORE tidak dikenal, memakai memori", zap.String("draft_store", cfg.DraftStore))
		return draft.NewMemoryStore()
	}
}

func logReceipt(_ context.Context, r submission.Receipt) {
	log.Info("Formulir terkirim",
		zap.Int64("registration_id", r.RegistrationID),
		zap.String("lingkungan", r.Form.Lingkungan),
		zap.String("rayon", r.Form.Rayon),
	)
}

func sweepSessions(ctx context.Context, sessions *formServices.SessionService) {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := sessions.Sweep(ctx, sessionMaxIdle); n > 0 {
				log.Info("Sesi kedaluwarsa ditutup", zap.Int("count", n))
			}
		}
	}
}
