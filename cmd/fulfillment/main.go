package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/arkanhadi/go-campus-services/internal/canteen"
	"github.com/arkanhadi/go-campus-services/internal/config"
	"github.com/arkanhadi/go-campus-services/internal/fulfillment"
	kafkax "github.com/arkanhadi/go-campus-services/internal/kafka"
	"github.com/arkanhadi/go-campus-services/internal/notify"
	"github.com/arkanhadi/go-campus-services/internal/postgres"
	"github.com/arkanhadi/go-campus-services/internal/redisx"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// DB; unlike the API there is no in-memory mode here, the consumer
	// exists to advance durable orders.
	if cfg.PostgresDSN == "" {
		log.Fatal("POSTGRES_DSN is required")
	}
	db, err := postgres.Connect(ctx, cfg.PostgresDSN)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	defer db.Close()

	// Redis
	rdb := redisx.New(cfg.RedisAddr)
	defer rdb.Close()

	// Producer for status updates
	prod := kafkax.NewProducer(cfg.KafkaBrokers, notify.TopicOrderStatus, 1024)
	prod.Start(context.Background())

	svc := &fulfillment.Service{
		Orders: &canteen.PGLedger{DB: db},
		Dedup:  &redisx.Deduper{RDB: rdb, Service: "fulfillment"},
		Pub: notify.NewStream(cfg.ServiceName+"-fulfillment", map[string]*kafkax.Producer{
			notify.TopicOrderStatus: prod,
		}),
	}

	group := getenv("FULFILLMENT_GROUP", "fulfillment-svc")
	workers := mustAtoi(os.Getenv("FULFILLMENT_WORKERS"), "8")
	cons := kafkax.NewConsumer(cfg.KafkaBrokers, group, notify.TopicOrderPlaced, workers)

	log.Printf("fulfillment consumer started: group=%s topic=%s workers=%d", group, notify.TopicOrderPlaced, workers)
	if err := cons.Start(ctx, svc.HandleOrderPlaced); err != nil {
		log.Printf("consumer exit: %v", err)
	}

	log.Println("shutting down consumer...")
	prod.Close()
	prod.WaitClosed()
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func mustAtoi(s, def string) int {
	if s == "" {
		s = def
	}
	i, err := strconv.Atoi(s)
	if err != nil {
		return 1
	}
	return i
}
