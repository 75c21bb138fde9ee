// Package app はアプリケーションの初期化と起動モードの制御を提供する。
package app

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/hitoshi/personstore/internal/config"
	"github.com/hitoshi/personstore/internal/database"
	"github.com/hitoshi/personstore/internal/handler"
	"github.com/hitoshi/personstore/internal/logger"
	"github.com/hitoshi/personstore/internal/metrics"
	"github.com/hitoshi/personstore/internal/middleware"
	"github.com/hitoshi/personstore/internal/person"
	"github.com/hitoshi/personstore/internal/repository"
	"github.com/hitoshi/personstore/internal/workflow"
)

// Init はアプリケーションの初期化を行う。
// JSON構造化ログをセットアップしてから環境変数でConfigを読み込む。
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
		slog.String("database_url", maskDatabaseURL(cfg.DatabaseURL)),
	)

	switch cmd {
	case CommandServe:
		return runServe(cfg)
	case CommandMigrate:
		return runMigrate(cfg)
	case CommandDemo:
		return runDemo(cfg, w)
	default:
		return runDemo(cfg, w)
	}
}

// openDatabase はDB接続（ファクトリ）を開き、疎通を確認し、
// スキーマ進化ポリシーに従ってマイグレーションを適用する。
// 接続・認証の失敗は致命的エラーとしてここで打ち切られる。
func openDatabase(cfg *config.Config) (*repositoryHandle, error) {
	db, err := database.Open(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	slog.Info("database connection established")

	if cfg.AutoMigrate {
		if err := database.RunMigrations(cfg.DatabaseURL); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
		slog.Info("database schema up to date")
	}

	return &repositoryHandle{
		db:   db,
		repo: repository.NewPostgresPersonRepo(db),
	}, nil
}

// repositoryHandle はDB接続とリポジトリをまとめたハンドル。
type repositoryHandle struct {
	db   *sql.DB
	repo repository.PersonRepository
}

// runDemo はデモワークフローモードで起動する。
// DB接続（ファクトリ）を開き、挿入→検索→表示→削除を実行し、
// 成否にかかわらず接続を解放する。
func runDemo(cfg *config.Config, out io.Writer) error {
	if out == nil {
		out = os.Stdout
	}

	handle, err := openDatabase(cfg)
	if err != nil {
		return err
	}
	// 解放はエラー経路でも必ず実行する
	defer handle.db.Close()

	runner := workflow.NewRunner(handle.repo, out)
	if err := runner.Run(context.Background()); err != nil {
		return fmt.Errorf("demo workflow failed: %w", err)
	}

	slog.Info("demo workflow completed")
	return nil
}

// runServe はAPIサーバーモードで起動する。
// DB接続を開き、全依存関係をワイヤリングし、HTTPサーバーを起動する。
// SIGINTまたはSIGTERMシグナルを受信するとグレースフルシャットダウンを行う。
func runServe(cfg *config.Config) error {
	// 1. DB接続
	handle, err := openDatabase(cfg)
	if err != nil {
		return err
	}
	defer handle.db.Close()

	// 2. リポジトリとサービスの初期化
	personService := person.NewService(handle.repo)

	// 3. メトリクスの初期化
	registry := prometheus.NewRegistry()
	collector := metrics.NewCollector(registry)

	// 4. レートリミッターの初期化
	rateLimiter := middleware.NewRateLimiter(
		middleware.RateLimiterConfigForRequestsPerMinute(cfg.RateLimitGeneral),
	)
	defer rateLimiter.Stop()

	// 5. ルーターの構築
	deps := &handler.RouterDeps{
		Logger:            slog.Default(),
		CORSAllowedOrigin: cfg.CORSAllowedOrigin,
		RateLimiter:       rateLimiter,
		HealthChecker:     handle.db,
		Gatherer:          registry,
		Collector:         collector,
		PersonService:     personService,
	}

	router := handler.NewRouter(deps)

	// 6. HTTPサーバーの起動
	server := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
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
