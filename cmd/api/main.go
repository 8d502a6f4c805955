package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	_ "github.com/lib/pq"

	"github.com/YigitCengiz7/Barclays-Take-Home-Test/internal/cache"
	"github.com/YigitCengiz7/Barclays-Take-Home-Test/internal/config"
	"github.com/YigitCengiz7/Barclays-Take-Home-Test/internal/events"
	"github.com/YigitCengiz7/Barclays-Take-Home-Test/internal/handler"
	"github.com/YigitCengiz7/Barclays-Take-Home-Test/internal/middleware"
	"github.com/YigitCengiz7/Barclays-Take-Home-Test/internal/service"
	"github.com/YigitCengiz7/Barclays-Take-Home-Test/internal/storage"
	"github.com/YigitCengiz7/Barclays-Take-Home-Test/internal/storage/memory"
	"github.com/YigitCengiz7/Barclays-Take-Home-Test/internal/storage/postgres"
	"github.com/YigitCengiz7/Barclays-Take-Home-Test/internal/storage/rediscache"
)

func main() {
	cfg := config.Load()
	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET environment variable is not set")
	}

	// Stores: PostgreSQL when configured, in-memory otherwise.
	var (
		userStore        storage.UserStore
		accountStore     storage.AccountStore
		transactionStore storage.TransactionStore
	)
	if cfg.DatabaseURL != "" {
		db, err := sql.Open("postgres", cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer db.Close()
		if err := db.Ping(); err != nil {
			log.Fatalf("Failed to ping database: %v", err)
		}
		userStore = postgres.NewUserStore(db)
		accountStore = postgres.NewAccountStore(db)
		transactionStore = postgres.NewTransactionStore(db)
	} else {
		log.Println("DATABASE_URL not set, using in-memory stores")
		userStore = memory.NewUserStore()
		accountStore = memory.NewAccountStore()
		transactionStore = memory.NewTransactionStore()
	}

	// Redis: read-through caching and the event stream. Optional; without it
	// reads hit the store directly and events are dropped.
	var publisher events.Publisher = events.Discard{}
	var redisClient *cache.Client
	if cfg.RedisAddr != "" {
		var err error
		redisClient, err = cache.NewClient(cfg.RedisAddr, cfg.RedisPassword, 0)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer redisClient.Close()

		userStore = rediscache.NewUserStore(userStore, redisClient.Client, 0)
		accountStore = rediscache.NewAccountStore(accountStore, redisClient.Client, 0)
		publisher = events.NewStreamPublisher(redisClient.Client)
	} else {
		log.Println("REDIS_ADDR not set, running without cache and event stream")
	}

	accountService := service.NewAccountService(accountStore, transactionStore, publisher)
	transactionService := service.NewTransactionService(accountService, transactionStore, publisher)
	userService := service.NewUserService(userStore, accountService, publisher)
	authService := service.NewAuthService(userStore)

	userHandler := handler.NewUserHandler(userService)
	accountHandler := handler.NewAccountHandler(accountService)
	transactionHandler := handler.NewTransactionHandler(transactionService)
	authHandler := handler.NewAuthHandler(authService)

	router := gin.Default()
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	router.POST("/v1/auth/login", authHandler.Login)
	router.POST("/v1/auth/refresh", authHandler.RefreshToken)

	router.POST("/v1/users", userHandler.CreateUser) // registration needs no auth
	users := router.Group("/v1/users", middleware.AuthMiddleware())
	{
		users.GET("/:userId", userHandler.GetUser)
		users.PATCH("/:userId", userHandler.UpdateUser)
		users.DELETE("/:userId", userHandler.DeleteUser)
	}

	accounts := router.Group("/v1/accounts", middleware.AuthMiddleware())
	{
		accounts.POST("", accountHandler.CreateAccount)
		accounts.GET("", accountHandler.ListAccounts)
		accounts.GET("/:accountNumber", accountHandler.GetAccount)
		accounts.PATCH("/:accountNumber", accountHandler.UpdateAccount)
		accounts.DELETE("/:accountNumber", accountHandler.DeleteAccount)

		accounts.POST("/:accountNumber/transactions", transactionHandler.CreateTransaction)
		accounts.GET("/:accountNumber/transactions", transactionHandler.ListTransactions)
		accounts.GET("/:accountNumber/transactions/:transactionId", transactionHandler.GetTransaction)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if redisClient != nil {
		go func() {
			subscriber := events.NewSubscriber(redisClient.Client, events.SubscriberConfig{
				Group:    "core-banking-audit",
				Consumer: "api-1",
				Stream:   events.TransactionEventsStream,
				Handler:  auditTransactionEvent,
			})
			if err := subscriber.Start(ctx); err != nil {
				log.Printf("Audit subscriber stopped: %v", err)
			}
		}()
	}

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan
		log.Println("Shutting down...")
		cancel()
	}()

	log.Printf("Eagle Bank API starting on port %s", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// auditTransactionEvent writes one audit line per money movement consumed
// from the transaction event stream.
func auditTransactionEvent(ctx context.Context, event events.Event) error {
	if event.Type != events.TransactionCreated {
		return nil
	}
	dataBytes, _ := json.Marshal(event.Data)
	var data events.TransactionCreatedEvent
	if err := json.Unmarshal(dataBytes, &data); err != nil {
		return err
	}
	log.Printf("audit: %s %s %.2f %s on account %s by %s",
		data.TransactionID, data.Type, data.Amount, data.Currency, data.AccountNumber, data.UserID)
	return nil
}
