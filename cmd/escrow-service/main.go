package main

import (
	"fmt"
	"log"
	"net/http"

	goredis "github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/nyasamarket/escrow-service/internal/config"
	deliveryhttp "github.com/nyasamarket/escrow-service/internal/delivery/http"
	"github.com/nyasamarket/escrow-service/internal/delivery/http/handlers"
	"github.com/nyasamarket/escrow-service/internal/infrastructure/kafka"
	"github.com/nyasamarket/escrow-service/internal/infrastructure/metrics"
	"github.com/nyasamarket/escrow-service/internal/infrastructure/migrate"
	"github.com/nyasamarket/escrow-service/internal/infrastructure/postgres"
	"github.com/nyasamarket/escrow-service/internal/infrastructure/postgres/repository"
	"github.com/nyasamarket/escrow-service/internal/infrastructure/redis"
	"github.com/nyasamarket/escrow-service/internal/usecase/settlement"
	"github.com/nyasamarket/escrow-service/internal/usecase/wallet"
	"github.com/nyasamarket/escrow-service/internal/usecase/withdrawal"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("failed to load .env")
	}
	// Reading config
	cfg := config.MustLoad()
	// Init database
	db := postgres.MustInitDB(cfg)
	// Run migrations
	if err := migrate.RunMigrations(db, cfg.EscrowDB.MigrationsPath); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}

	// Init kafka publisher
	brokers := []string{fmt.Sprintf("%s:%s", cfg.KafkaService.Host, cfg.KafkaService.Port)}
	publisher := kafka.NewSettlementPublisher(brokers, cfg.KafkaService.Topic)
	defer publisher.Close()

	// Init redis balance cache
	redisClient := goredis.NewClient(&goredis.Options{
		Addr:     cfg.RedisService.Addr,
		Password: cfg.RedisService.Password,
		DB:       cfg.RedisService.DB,
	})
	balanceCache := redis.NewBalanceCache(redisClient)

	// Init repos
	store := repository.NewGormSettlementStore(db)
	orderRepo := repository.NewDefaultOrderRepository(db)
	escrowRepo := repository.NewDefaultEscrowRepository(db)
	walletRepo := repository.NewDefaultWalletRepository(db)
	withdrawalRepo := repository.NewDefaultWithdrawalRepository(db)

	// Init metrics
	settlementMetrics := metrics.NewSettlementMetrics()

	// Init usecases
	ledger := wallet.NewLedger()
	engine := settlement.MustNewEngine(store, orderRepo, escrowRepo, walletRepo, ledger, publisher, balanceCache, settlementMetrics)
	walletUsecase := wallet.NewUsecase(store, walletRepo, ledger, balanceCache)
	withdrawalUsecase := withdrawal.NewUsecase(store, withdrawalRepo, walletRepo, ledger, publisher, balanceCache, settlementMetrics)

	// Init HTTP router
	router := deliveryhttp.NewRouter(deliveryhttp.RouterDeps{
		Orders:      handlers.NewOrderHandler(engine),
		Wallets:     handlers.NewWalletHandler(walletUsecase),
		Withdrawals: handlers.NewWithdrawalHandler(withdrawalUsecase),
		JWTSecret:   cfg.JWT.Secret,
	})

	// Metrics endpoint on its own port
	go func() {
		http.Handle("/metrics", promhttp.Handler())
		if err := http.ListenAndServe(":"+cfg.Metrics.Port, nil); err != nil {
			log.Printf("metrics server error: %v", err)
		}
	}()

	addr := fmt.Sprintf("%s:%s", cfg.HTTPServer.Host, cfg.HTTPServer.Port)
	log.Printf("escrow service started on %s\n", addr)
	if err := router.Run(addr); err != nil {
		log.Fatalf("failed to serve: %v\n", err)
	}
}
