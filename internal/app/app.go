// Package app はアプリケーションの初期化と起動を提供する。
package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/cuidaia/backend/internal/assistant"
	"github.com/cuidaia/backend/internal/auth"
	"github.com/cuidaia/backend/internal/config"
	"github.com/cuidaia/backend/internal/database"
	"github.com/cuidaia/backend/internal/handler"
	"github.com/cuidaia/backend/internal/healthmetric"
	"github.com/cuidaia/backend/internal/logger"
	"github.com/cuidaia/backend/internal/medical"
	"github.com/cuidaia/backend/internal/metrics"
	"github.com/cuidaia/backend/internal/middleware"
	"github.com/cuidaia/backend/internal/reminder"
	"github.com/cuidaia/backend/internal/repository"
	"github.com/cuidaia/backend/internal/security"
	"github.com/cuidaia/backend/internal/token"
)

// Init はアプリケーションの初期化を行う。
// 環境変数からConfigを読み込み、JSON構造化ログをセットアップする。
// writerが指定された場合はログ出力先としてそのwriterを使用する。
func Init(w io.Writer) (*config.Config, error) {
	// 1. ログの初期化（設定読み込み前にログを使えるようにする）
	logger.SetupDefault(w)

	// 2. 環境変数から設定を読み込む
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	return cfg, nil
}

// Run はアプリケーションのメインエントリーポイント。
// コマンドライン引数からサブコマンドを解析し、対応するモードで起動する。
// argsにはos.Args[1:]を渡す。
func Run(w io.Writer, args []string) error {
	cmd := ParseCommand(args)

	// healthcheck は軽量サブコマンドのため、フル初期化をスキップする
	if cmd == CommandHealthcheck {
		port := os.Getenv("SERVER_PORT")
		if port == "" {
			port = "8080"
		}
		return runHealthcheck(port)
	}

	cfg, err := Init(w)
	if err != nil {
		return fmt.Errorf("initialization failed: %w", err)
	}

	slog.Info("starting application",
		slog.String("command", string(cmd)),
		slog.String("port", cfg.ServerPort),
		slog.String("store_driver", string(cfg.StoreDriver)),
	)

	switch cmd {
	case CommandMigrate:
		return runMigrate(cfg)
	default:
		return runServe(cfg)
	}
}

// stores はリソースストア一式をまとめる。
type stores struct {
	users    repository.UserRepository
	reminder repository.ReminderRepository
	metric   repository.HealthMetricRepository
	medical  repository.MedicalProfileRepository
	pinger   handler.StorePinger // メモリモードではnil
	closer   io.Closer           // メモリモードではnil
}

// openStores は設定に応じたストア実装を構成する。
func openStores(cfg *config.Config) (*stores, error) {
	if cfg.StoreDriver == config.StoreDriverMemory {
		slog.Info("using in-memory stores")
		return &stores{
			users:    repository.NewMemoryUserRepo(),
			reminder: repository.NewMemoryReminderRepo(),
			metric:   repository.NewMemoryHealthMetricRepo(),
			medical:  repository.NewMemoryMedicalProfileRepo(),
		}, nil
	}

	db, err := database.Open(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	slog.Info("database connection established")

	return &stores{
		users:    repository.NewPostgresUserRepo(db),
		reminder: repository.NewPostgresReminderRepo(db),
		metric:   repository.NewPostgresHealthMetricRepo(db),
		medical:  repository.NewPostgresMedicalProfileRepo(db),
		pinger:   db,
		closer:   db,
	}, nil
}

// runServe はAPIサーバーモードで起動する。
// ストアを開き、全依存関係をワイヤリングし、HTTPサーバーを起動する。
// SIGINTまたはSIGTERMシグナルを受信するとグレースフルシャットダウンを行う。
func runServe(cfg *config.Config) error {
	// 1. ストアの初期化
	st, err := openStores(cfg)
	if err != nil {
		return err
	}
	if st.closer != nil {
		defer st.closer.Close()
	}

	// 2. トークンサービスの初期化
	tokenSvc := token.NewService(cfg.JWTSecret, cfg.TokenValidity)

	// 3. メトリクスの初期化
	registry := prometheus.NewRegistry()
	collector := metrics.NewCollector(registry)

	// 4. ドメインサービスの初期化
	authSvc := auth.NewService(st.users, tokenSvc)
	reminderSvc := reminder.NewService(st.reminder)
	metricSvc := healthmetric.NewService(st.metric)
	medicalSvc := medical.NewService(st.medical)

	// 5. アシスタントの初期化
	assistantClient := assistant.NewClient(
		&http.Client{Timeout: cfg.ChatTimeout},
		slog.Default(),
		cfg.GroqAPIKey,
		cfg.ChatModel,
	)
	assistantClient.SetEndpoint(cfg.GroqEndpoint)
	sanitizer := security.NewContentSanitizer()
	assistantSvc := assistant.NewService(assistantClient, sanitizer, collector, cfg.GroqAPIKey != "")

	// 6. デモユーザーの投入（設定で明示的に有効化された場合のみ）
	if cfg.SeedDemoUser {
		if err := authSvc.SeedDemoUser(context.Background(), cfg.DemoUserPassword); err != nil {
			return fmt.Errorf("failed to seed demo user: %w", err)
		}
	}

	// 7. レートリミッターの初期化
	rateLimiter := middleware.NewRateLimiter(
		middleware.NewRateLimiterConfig(cfg.RateLimitGeneral, cfg.RateLimitChat),
	)
	defer rateLimiter.Stop()

	// 8. ルーターの構築
	router := handler.NewRouter(&handler.RouterDeps{
		TokenVerifier:     tokenSvc,
		CORSAllowedOrigin: cfg.CORSAllowedOrigin,
		RateLimiter:       rateLimiter,
		RequestLogger:     middleware.NewLoggingMiddleware(slog.Default()),

		AuthService:      authSvc,
		AssistantService: assistantSvc,
		ReminderService:  reminderSvc,
		MetricService:    metricSvc,
		MedicalService:   medicalSvc,

		AuthMetrics: collector,
		HTTPMetrics: collector,
		StorePinger: st.pinger,
		Gatherer:    registry,
	})

	// 9. HTTPサーバーの起動
	server := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.ChatTimeout + 15*time.Second, // チャットの外部呼び出しを収容する
		IdleTimeout:  60 * time.Second,
	}

	// グレースフルシャットダウンのためのシグナルハンドリング
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("API server starting",
			slog.String("addr", server.Addr),
		)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server listen error", slog.String("error", err.Error()))
		}
	}()

	<-stop
	slog.Info("shutting down API server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	slog.Info("API server stopped gracefully")
	return nil
}

// runMigrate はデータベースマイグレーションを実行する。
// すべての未適用マイグレーションを順番に適用する。
func runMigrate(cfg *config.Config) error {
	if cfg.StoreDriver != config.StoreDriverPostgres {
		return fmt.Errorf("migrate requires STORE_DRIVER=postgres")
	}

	slog.Info("running database migrations",
		slog.String("database_url", maskDatabaseURL(cfg.DatabaseURL)),
	)

	if err := database.RunMigrations(cfg.DatabaseURL); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	slog.Info("database migrations completed successfully")
	return nil
}

// runHealthcheck はヘルスチェックを実行する。
// distroless環境でのDockerヘルスチェック用サブコマンド。
// /health エンドポイントにHTTPリクエストを送り、結果を返す。
func runHealthcheck(port string) error {
	url := fmt.Sprintf("http://localhost:%s/health", port)
	client := &http.Client{Timeout: 5 * time.Second}

	resp, err := client.Get(url)
	if err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health check returned status %d", resp.StatusCode)
	}

	return nil
}

// maskDatabaseURL はデータベースURLの認証情報をマスクする。
func maskDatabaseURL(url string) string {
	if len(url) > 20 {
		return url[:12] + "***@..."
	}
	return "***"
}
