package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	mysqldrv "github.com/go-sql-driver/mysql"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Guyuepp/blog-comments/domain"
	"github.com/Guyuepp/blog-comments/internal/config"
	"github.com/Guyuepp/blog-comments/internal/repository"
	mysqlRepo "github.com/Guyuepp/blog-comments/internal/repository/mysql"
	myRedisCache "github.com/Guyuepp/blog-comments/internal/repository/redis"
	"github.com/Guyuepp/blog-comments/internal/rest"
	"github.com/Guyuepp/blog-comments/internal/rest/middleware"
	"github.com/Guyuepp/blog-comments/internal/rest/request"
	"github.com/Guyuepp/blog-comments/internal/usecase/comment"
)

const (
	dbMaxRetry         = 10
	dbRetryIntervalSec = 2
	shutdownTimeout    = 5 * time.Second
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("failed to load .env file: %v", err)
	}
	cfg.SetupLogger()
	if err := cfg.Validate(); err != nil {
		logrus.Fatal(err)
	}

	// prepare database
	db, err := openDatabase(cfg.Database)
	if err != nil {
		logrus.Fatalf("could not connect to database after retries: %v", err)
	}
	defer func() {
		sqlDB, err := db.DB()
		if err != nil {
			logrus.Errorf("got error when getting sql.DB from gorm.DB: %v", err)
			return
		}
		if err := sqlDB.Close(); err != nil {
			logrus.Errorf("got error when closing the DB connection: %v", err)
		}
	}()

	// prepare cache
	client := redis.NewClient(&redis.Options{
		Addr:     net.JoinHostPort(cfg.Cache.Host, cfg.Cache.Port),
		Password: cfg.Cache.Pass,
		DB:       cfg.Cache.DB,
	})
	defer func() {
		if err := client.Close(); err != nil {
			logrus.Errorf("got error when closing the cache connection: %v", err)
		}
	}()
	if _, err := client.Ping(context.Background()).Result(); err != nil {
		logrus.Fatalf("failed to open connection to cache: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Prepare Repository
	userRepo := mysqlRepo.NewUserRepository(db)
	postRepo := mysqlRepo.NewPostRepository(db)

	// Comment 三层: DB层, Cache层, 协调层
	commentDBRepo := mysqlRepo.NewCommentRepository(db)
	commentCache := myRedisCache.NewCommentCache(client)
	commentRepo := repository.NewCommentRepository(commentDBRepo, commentCache, cfg.Cache.TTL)

	var bloomRepo domain.BloomRepository
	if cfg.Bloom.Enabled {
		bloomRepo = myRedisCache.NewRedisBloomRepo(client, cfg.Bloom.BitSize)
	}

	// Build service Layer
	commentSvc := comment.NewService(commentRepo, postRepo, userRepo, bloomRepo)

	// Prepare bloom filter
	if err := commentSvc.InitBloomFilter(ctx); err != nil {
		logrus.Fatalf("failed to init bloom filter: %v", err)
	}

	// prepare gin
	if err := request.RegisterValidators(); err != nil {
		logrus.Fatal(err)
	}
	route := gin.New()
	route.Use(gin.Recovery())
	route.Use(middleware.RequestLogger())
	route.Use(middleware.SetRequestContextWithTimeout(cfg.ContextTimeout))

	commentHandler := rest.NewCommentHandler(commentSvc)
	commentHandler.RegisterRoutes(route.Group("/api"), middleware.AuthMiddleware(cfg.JWTSecret))

	// Start Server
	srv := &http.Server{
		Addr:              cfg.Address,
		Handler:           rest.NewCORS(cfg.CORSAllowedOrigins).Handler(route),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		logrus.Infof("Server is running on %s", cfg.Address)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.Fatalf("listen: %s", err)
		}
	}()

	// shutdown
	<-ctx.Done()
	logrus.Info("Shutdown signal received, stopping server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logrus.Errorf("Server forced to shutdown: %v", err)
	}
	logrus.Info("Server exiting")
}

func openDatabase(cfg config.Database) (*gorm.DB, error) {
	dialector, err := newDialector(cfg)
	if err != nil {
		return nil, err
	}

	var db *gorm.DB
	for i := range dbMaxRetry {
		db, err = gorm.Open(dialector, &gorm.Config{Logger: logger.Default.LogMode(logger.Warn)})
		if err != nil {
			logrus.Warnf("failed to open connection to database (attempt %d/%d): %v", i+1, dbMaxRetry, err)
		} else {
			sqlDB, dbErr := db.DB()
			if dbErr != nil {
				return nil, dbErr
			}
			if err = sqlDB.Ping(); err == nil {
				return db, nil
			}
			logrus.Warnf("failed to ping database (attempt %d/%d): %v", i+1, dbMaxRetry, err)
			_ = sqlDB.Close()
		}
		time.Sleep(dbRetryIntervalSec * time.Second)
	}
	return nil, err
}

func newDialector(cfg config.Database) (gorm.Dialector, error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable TimeZone=%s",
			cfg.Host, cfg.Port, cfg.User, cfg.Pass, cfg.Name, cfg.TimeZone)
		return postgres.Open(dsn), nil
	default:
		loc, err := time.LoadLocation(cfg.TimeZone)
		if err != nil {
			return nil, fmt.Errorf("invalid DATABASE_TIMEZONE: %w", err)
		}
		dsn := mysqldrv.NewConfig()
		dsn.User = cfg.User
		dsn.Passwd = cfg.Pass
		dsn.Net = "tcp"
		dsn.Addr = net.JoinHostPort(cfg.Host, cfg.Port)
		dsn.DBName = cfg.Name
		dsn.ParseTime = true
		dsn.Loc = loc
		return mysql.Open(dsn.FormatDSN()), nil
	}
}
