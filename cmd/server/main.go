package main

import (
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"agro-mission-service/internal/adapters/cache"
	"agro-mission-service/internal/adapters/coverage"
	"agro-mission-service/internal/adapters/repositories"
	"agro-mission-service/internal/api"
	"agro-mission-service/internal/config"
	"agro-mission-service/internal/planner"
	"agro-mission-service/internal/platform/db"
)

// main is the application composition root.
// It wires concrete adapters (Postgres, Redis, the external coverage
// planner) behind ports and starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	port := config.Get("PORT", "8080")

	databaseURL := os.Getenv("DATABASE_URL")
	if strings.TrimSpace(databaseURL) == "" {
		log.Fatal("DATABASE_URL is required")
	}

	plannerURL := os.Getenv("COVERAGE_PLANNER_URL")
	if strings.TrimSpace(plannerURL) == "" {
		log.Fatal("COVERAGE_PLANNER_URL is required")
	}
	plannerKey := os.Getenv("COVERAGE_PLANNER_API_KEY")

	pg, err := db.Open(databaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer pg.Close()

	// Initialize schema on startup for local runs.
	if err := repositories.InitSchema(pg); err != nil {
		log.Fatal(err)
	}

	// Planner responses are cached in Redis when available, Postgres otherwise.
	var coverageCache coverage.Cache = cache.NewSQLCoverageCache(pg)
	if addr := os.Getenv("REDIS_ADDR"); strings.TrimSpace(addr) != "" {
		client := redis.NewClient(&redis.Options{Addr: addr})
		coverageCache = cache.NewRedisCoverageCache(client, 24*time.Hour)
		log.Printf("coverage cache: redis addr=%s", addr)
	} else {
		log.Println("coverage cache: postgres")
	}

	coveragePlanner, err := coverage.NewHTTPPlanner(plannerURL, plannerKey, coverageCache)
	if err != nil {
		log.Fatal(err)
	}

	repo := repositories.NewPostgresMissionRepository(pg)
	router := api.NewRouter(repo, coveragePlanner, planner.DefaultOptions())

	// Timeouts are tuned for cold-cache builds (external planner latency).
	log.Printf("Server listening addr=:%s", port)
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}
