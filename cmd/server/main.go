package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/contestadm/backend/conf"
	"github.com/contestadm/backend/contestsrvc"
	"github.com/contestadm/backend/http"
	"github.com/contestadm/backend/s3bucket"
	"github.com/contestadm/backend/testcasesrvc"
)

func main() {
	// .env is for local development only.
	_ = godotenv.Load()

	cfg, err := conf.Load("config.toml")
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	ctx := context.Background()

	pool, err := pgxpool.New(ctx, cfg.PgConnStr())
	if err != nil {
		slog.Error("failed to create postgres pool", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	contestRepo := contestsrvc.NewPgContestRepo(pool)
	contestSrvc := contestsrvc.NewContestSrvc(
		contestRepo, contestRepo, contestRepo, contestRepo)

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
	})
	contestSrvc.UseStandingsCache(
		contestsrvc.NewStandingsCache(rdb, 30*time.Second))

	bucket, err := s3bucket.NewS3Bucket(ctx, cfg.S3.Region, cfg.S3.Bucket)
	if err != nil {
		slog.Error("failed to open testcase bucket", "error", err)
		os.Exit(1)
	}
	testcaseSrvc := testcasesrvc.NewTestcaseSrvc(
		testcasesrvc.NewPgTestcaseRepo(pool), bucket)

	httpServer := http.NewHttpServer(
		contestSrvc, testcaseSrvc, []byte(cfg.JwtKey), cfg.AllowedOrigins)

	log.Printf("starting server on %s", cfg.ListenAddr)
	err = httpServer.Start(cfg.ListenAddr)
	log.Printf("server stopped with error: %v", err)
}
