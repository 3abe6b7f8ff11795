package bootstrap

import (
	"context"
	"database/sql"
	"time"

	"github.com/gin-gonic/gin"
	_ "github.com/go-sql-driver/mysql"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"

	"github.com/RUstamdarvishY/Online-shop/configs"
	"github.com/RUstamdarvishY/Online-shop/internal/adapter/cache"
	apihttp "github.com/RUstamdarvishY/Online-shop/internal/adapter/http"
	"github.com/RUstamdarvishY/Online-shop/internal/adapter/http/middleware"
	"github.com/RUstamdarvishY/Online-shop/internal/adapter/kafka"
	"github.com/RUstamdarvishY/Online-shop/internal/adapter/queue"
	"github.com/RUstamdarvishY/Online-shop/internal/adapter/repo"
	"github.com/RUstamdarvishY/Online-shop/internal/logging"
	"github.com/RUstamdarvishY/Online-shop/internal/usecase"
)

type App struct {
	Router *gin.Engine
}

func InitWithConfig(cfg configs.Config) (*App, func(), error) {
	log := logging.Init(cfg.App.Name, cfg.App.LogFile)

	// init database
	db, err := sql.Open("mysql", cfg.MySQL.DSN)
	if err != nil {
		return nil, nil, err
	}
	db.SetConnMaxLifetime(cfg.MySQL.ConnMaxLifetime)
	db.SetMaxOpenConns(cfg.MySQL.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MySQL.MaxIdleConns)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return nil, nil, err
	}

	log.Info("shop-api: starting up")

	// init redis
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       0,
	})
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, nil, err
	}

	// init rabbitmq
	conn, err := amqp.Dial(cfg.Rabbit.URL)
	if err != nil {
		return nil, nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		return nil, nil, err
	}

	// repos
	collectionRepo := repo.NewMySQLCollectionRepo(db)
	productRepo := repo.NewMySQLProductRepo(db)
	customerRepo := repo.NewMySQLCustomerRepo(db)
	cartRepo := repo.NewMySQLCartRepo(db)
	orderRepo := repo.NewMySQLOrderRepo(db)
	outboxRepo := repo.NewMySQLOutboxRepo(db)
	checkoutStore := repo.NewMySQLCheckoutStore(db)

	// caches
	statusCache := cache.NewRedisCache(rdb, cfg.Redis.CacheTTL)
	idem := cache.NewRedisIdempotencyStore(rdb, cfg.Idempotency.TTL)

	// services
	cartSvc := usecase.NewCartService(cartRepo, productRepo)
	checkoutUC := usecase.NewCheckout(cartRepo, checkoutStore)
	orderSvc := usecase.NewOrderService(orderRepo, statusCache)
	catalogSvc := usecase.NewCatalogService(collectionRepo, productRepo)
	customerSvc := usecase.NewCustomerService(customerRepo)

	// messaging
	producer, err := queue.NewRabbitProducer(ch)
	if err != nil {
		return nil, nil, err
	}
	outboxCtx, stopOutbox := context.WithCancel(context.Background())
	startOutboxPublisher(outboxCtx, cfg, outboxRepo, producer)
	if err := startQueueConsumers(ch, statusCache); err != nil {
		stopOutbox()
		return nil, nil, err
	}
	stopKafka, err := startKafkaListener(cfg, orderSvc)
	if err != nil {
		stopOutbox()
		return nil, nil, err
	}

	// handlers + router
	handlers := apihttp.Handlers{
		Carts:       apihttp.NewCartHandler(cartSvc),
		Orders:      apihttp.NewOrderHandler(checkoutUC, orderSvc, idem),
		Collections: apihttp.NewCollectionHandler(catalogSvc),
		Products:    apihttp.NewProductHandler(catalogSvc),
		Customers:   apihttp.NewCustomerHandler(customerSvc),
		Tokens:      apihttp.NewTokenHandler(cfg),
	}
	authz := middleware.NewAuthz(cfg)
	router := apihttp.NewRouter(handlers, authz)

	cleanup := func() {
		stopOutbox()
		stopKafka()
		_ = ch.Close()
		_ = conn.Close()
		_ = rdb.Close()
		_ = db.Close()
	}

	return &App{Router: router}, cleanup, nil
}

func startOutboxPublisher(ctx context.Context, cfg configs.Config, outboxRepo usecase.OutboxRepo, producer *queue.RabbitProducer) {
	pub := queue.NewOutboxPublisher(outboxRepo, producer, logging.New("outbox"))
	if cfg.Outbox.PollInterval > 0 {
		pub.PollInterval = cfg.Outbox.PollInterval
	}
	if cfg.Outbox.BatchSize > 0 {
		pub.BatchSize = cfg.Outbox.BatchSize
	}
	if cfg.Outbox.RetryBackoff > 0 {
		pub.RetryBackoff = cfg.Outbox.RetryBackoff
	}
	go func() {
		if err := pub.Run(ctx); err != nil && ctx.Err() == nil {
			logging.New("outbox").Error("publisher stopped", "error", err)
		}
	}()
}

func startQueueConsumers(ch *amqp.Channel, statusCache usecase.OrderCache) error {
	h := queue.NewOrderPlacedHandler(statusCache)

	router := queue.NewRouter(ch, queue.WithPrefetch(50))
	router.Register("order.placed.q", queue.JSONHandler[usecase.OrderPlacedMsg]{HandleFunc: h.HandlePlaced})

	return router.Start()
}

func startKafkaListener(cfg configs.Config, orders *usecase.OrderService) (func(), error) {
	if len(cfg.Kafka.Brokers) == 0 {
		return func() {}, nil // payments feed is optional in dev
	}
	grp, err := kafka.NewGroup(cfg.Kafka.Brokers, cfg.Kafka.GroupID)
	if err != nil {
		return nil, err
	}

	h := kafka.NewPaymentStatusChangedHandler(orders)
	consumer := kafka.NewConsumer(grp, []string{cfg.Kafka.PaymentsTopic}, h.Handle)
	consumer.Logger = logging.New("kafka")

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		if err := consumer.Start(ctx); err != nil && ctx.Err() == nil {
			logging.New("kafka").Error("consumer stopped", "error", err)
		}
	}()
	return func() {
		cancel()
		_ = grp.Close()
	}, nil
}
