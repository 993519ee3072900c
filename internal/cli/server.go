package cli

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"carboquiz/internal/assets"
	"carboquiz/internal/catalog"
	"carboquiz/internal/common/clock"
	"carboquiz/internal/config"
	"carboquiz/internal/game"
	"carboquiz/internal/infra/memory"
	pgloader "carboquiz/internal/infra/postgres"
	infraredis "carboquiz/internal/infra/redis"
	"carboquiz/internal/report"
	transport "carboquiz/internal/transport/http"
)

// NewStartCmd builds the CLI subcommand to start the server.
func NewStartCmd(configPath, port *string) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the quiz server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), *configPath, *port)
		},
	}
}

func runServer(ctx context.Context, configPath, portFlag string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	if cfg.Postgres.URL != "" {
		if err := runMigrationsWithConfig(ctx, cfg); err != nil {
			return err
		}
	}

	finalPort := portFlag
	if finalPort == "" {
		finalPort = cfg.Server.Port
	}
	if finalPort == "" {
		finalPort = "8080"
	}

	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	}
	redisTTL := config.TTLDuration(cfg.Redis.TTL, 10*time.Minute)

	var pool *pgxpool.Pool
	if cfg.Postgres.URL != "" {
		pool, err = pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return err
		}
	}

	var loader catalog.Loader = catalog.NewStaticLoader(catalog.Default())
	if pool != nil {
		loader = pgloader.NewCatalogLoader(pool)
	}

	catalogTTL := config.TTLDuration(cfg.Catalog.TTL, 10*time.Minute)
	var catalogRepo game.CatalogRepository
	if redisClient != nil {
		catalogRepo = infraredis.NewCatalogRepository(redisClient, loader, catalogTTL)
	} else {
		catalogRepo = memory.NewCatalogRepository(loader, catalogTTL)
	}

	var sessions game.SessionStore
	if redisClient != nil {
		sessions = infraredis.NewSessionStore(redisClient, redisTTL)
	} else {
		sessions = memory.NewSessionStore()
	}

	var leaderboard game.LeaderboardStore
	if redisClient != nil {
		leaderboard = infraredis.NewLeaderboardStore(redisClient)
	} else {
		leaderboard = memory.NewLeaderboardStore()
	}

	service := game.NewService(sessions, catalogRepo, leaderboard, assets.NewGifPicker(), func() string {
		return uuid.New().String()
	})

	var mailer report.Mailer = report.LogMailer{}
	if cfg.Report.SMTP.Host != "" {
		mailer = report.NewSMTPMailer(
			cfg.Report.SMTP.Host,
			cfg.Report.SMTP.Port,
			cfg.Report.SMTP.Username,
			cfg.Report.SMTP.Password,
			cfg.Report.SMTP.From,
		)
	}
	clk := &clock.DefaultClock{}
	dispatcher := report.NewDispatcher(mailer, clk)
	limiter := report.NewRateLimiter(clk, config.TTLDuration(cfg.Report.Window, report.DefaultWindow))
	limiter.StartSweeper(ctx, 5*time.Minute)

	apiHandler := transport.NewAPIHandler(service, leaderboard, dispatcher, limiter)
	wsHandler := transport.NewWSHandler(leaderboard)

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	mux.HandleFunc("/ws", wsHandler.ServeWS)
	apiHandler.Register(mux)

	server := &http.Server{
		Addr:         ":" + finalPort,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		log.Printf("starting carboquiz service on :%s", finalPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("failed to start server: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		log.Println("shutting down server...")
	case <-ctx.Done():
		log.Println("context canceled, shutting down server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
