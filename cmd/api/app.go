package main

import (
	"fmt"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/lib/pq"

	"github.com/habitzen/habitzen-engine/internal/adapters/cache"
	adapterHTTP "github.com/habitzen/habitzen-engine/internal/adapters/handler/http"
	"github.com/habitzen/habitzen-engine/internal/adapters/repository"
	"github.com/habitzen/habitzen-engine/internal/config"
	"github.com/habitzen/habitzen-engine/internal/core/domain"
	"github.com/habitzen/habitzen-engine/internal/core/services"
	"github.com/habitzen/habitzen-engine/internal/core/workers"
)

type stores struct {
	habits      domain.HabitRepository
	completions domain.CompletionRepository
	users       domain.UserRepository
	friends     domain.FriendRepository
	posts       domain.CommunityRepository
	challenges  domain.ChallengeRepository
}

type app struct {
	router *gin.Engine
	worker *workers.StreakWorker
	db     *sqlx.DB
	rdb    *redis.Client
}

func (a *app) Close() {
	if a.rdb != nil {
		_ = a.rdb.Close()
	}
	if a.db != nil {
		_ = a.db.Close()
	}
}

func connectDB(cfg config.DBConfig) (*sqlx.DB, error) {
	db, err := sqlx.Connect(cfg.Driver, cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("connect %s database at %s:%s: %w", cfg.Driver, cfg.Host, cfg.Port, err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)
	return db, nil
}

func postgresStores(db *sqlx.DB) stores {
	return stores{
		habits:      repository.NewPostgresHabitRepository(db),
		completions: repository.NewPostgresCompletionRepository(db),
		users:       repository.NewPostgresUserRepository(db),
		friends:     repository.NewPostgresFriendRepository(db),
		posts:       repository.NewPostgresCommunityRepository(db),
		challenges:  repository.NewPostgresChallengeRepository(db),
	}
}

func memoryStores() stores {
	completions := repository.NewInMemoryCompletionRepository()
	users := repository.NewInMemoryUserRepository()
	return stores{
		habits:      repository.NewInMemoryHabitRepository(completions),
		completions: completions,
		users:       users,
		friends:     repository.NewInMemoryFriendRepository(users),
		posts:       repository.NewInMemoryCommunityRepository(),
		challenges:  repository.NewInMemoryChallengeRepository(users),
	}
}

// newApp wires storage, services, the streak worker and the router.
// The worker is returned unstarted.
func newApp(cfg *config.Config, clock services.Clock, startTime time.Time) (*app, error) {
	a := &app{}

	var st stores
	switch cfg.Storage {
	case config.StorageMemory:
		log.Println("Using in-memory storage, data is lost on restart.")
		st = memoryStores()
	default:
		log.Println("Connecting to database...")
		db, err := connectDB(cfg.DB)
		if err != nil {
			return nil, err
		}
		log.Println("Database connected successfully.")
		a.db = db
		st = postgresStores(db)
	}

	var summaries services.SummaryCache = cache.NoopSummaryCache{}
	if cfg.Redis.Enabled() {
		rdb, err := cache.NewRedisClient(cache.Options{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			log.Printf("[CACHE] redis disabled: %v", err)
		} else {
			a.rdb = rdb
			st.habits = repository.NewCachedHabitRepository(st.habits, rdb, repository.DefaultHabitCacheTTL)
			summaries = cache.NewRedisSummaryCache(rdb, cache.DefaultSummaryTTL)
		}
	}

	loc := cfg.Location
	window := cfg.HistoryWindowDays

	a.worker = workers.NewStreakWorker(st.users, st.completions, window, clock, loc)

	tokenService := services.NewTokenService(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.TTL, st.users)
	authService := services.NewAuthService(st.users, tokenService)
	habitService := services.NewHabitService(st.habits, st.completions, summaries, a.worker, clock, loc)
	completionService := services.NewCompletionService(st.completions, st.habits, summaries, a.worker, clock, loc, window)
	statsService := services.NewStatsService(st.habits, st.completions, summaries, clock, loc, window)
	friendService := services.NewFriendService(st.users, st.friends)
	communityService := services.NewCommunityService(st.posts, st.habits, st.users, statsService)
	challengeService := services.NewChallengeService(st.challenges, st.friends, clock, loc)

	a.router = adapterHTTP.NewRouter(adapterHTTP.RouterDependencies{
		AuthHandler:       adapterHTTP.NewAuthHandler(authService),
		HabitHandler:      adapterHTTP.NewHabitHandler(habitService),
		CompletionHandler: adapterHTTP.NewCompletionHandler(completionService),
		StatsHandler:      adapterHTTP.NewStatsHandler(statsService),
		FriendHandler:     adapterHTTP.NewFriendHandler(friendService),
		CommunityHandler:  adapterHTTP.NewCommunityHandler(communityService),
		ChallengeHandler:  adapterHTTP.NewChallengeHandler(challengeService),
		TokenValidator:    tokenService,
		DB:                a.db,
		Redis:             a.rdb,
		RateLimit:         cfg.RateLimit,
		RateWindow:        cfg.RateWindow,
		StartTime:         startTime,
	})

	return a, nil
}
