package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/arkanhadi/go-campus-services/internal/accounts"
	"github.com/arkanhadi/go-campus-services/internal/canteen"
	"github.com/arkanhadi/go-campus-services/internal/config"
	"github.com/arkanhadi/go-campus-services/internal/events"
	"github.com/arkanhadi/go-campus-services/internal/httpx"
	kafkax "github.com/arkanhadi/go-campus-services/internal/kafka"
	"github.com/arkanhadi/go-campus-services/internal/lostfound"
	"github.com/arkanhadi/go-campus-services/internal/notify"
	"github.com/arkanhadi/go-campus-services/internal/postgres"
	"github.com/arkanhadi/go-campus-services/internal/redisx"
	"github.com/arkanhadi/go-campus-services/internal/ws"
)

// backends groups the persistence behind the handlers, so main can swap
// the whole set between Postgres and the in-memory stores.
type backends struct {
	store    canteen.Store
	ledger   canteen.Ledger
	accounts httpx.AccountStore
	lost     httpx.LostRepo
	events   httpx.EventsRepo
	close    func()
}

// openBackends connects to Postgres when a DSN is configured and falls
// back to the in-memory stores otherwise.
func openBackends(ctx context.Context, dsn string) (*backends, error) {
	if dsn == "" {
		log.Println("POSTGRES_DSN not set, using in-memory stores")
		return &backends{
			store:    canteen.NewMemStore(),
			ledger:   canteen.NewMemLedger(),
			accounts: accounts.NewMemRepo(),
			lost:     lostfound.NewMemRepo(),
			events:   events.NewMemRepo(),
			close:    func() {},
		}, nil
	}

	db, err := postgres.Connect(ctx, dsn)
	if err != nil {
		return nil, err
	}
	return &backends{
		store:    &canteen.PGStore{DB: db},
		ledger:   &canteen.PGLedger{DB: db},
		accounts: &accounts.Repo{DB: db},
		lost:     &lostfound.Repo{DB: db},
		events:   &events.Repo{DB: db},
		close:    db.Close,
	}, nil
}

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	be, err := openBackends(ctx, cfg.PostgresDSN)
	if err != nil {
		log.Fatalf("db connect: %v", err)
	}
	defer be.close()

	// Redis
	rdb := redisx.New(cfg.RedisAddr)
	defer rdb.Close()

	// Kafka producers, one per topic; flushed explicitly on shutdown.
	producers := map[string]*kafkax.Producer{
		notify.TopicCatalogChanged: kafkax.NewProducer(cfg.KafkaBrokers, notify.TopicCatalogChanged, 1024),
		notify.TopicOrderPlaced:    kafkax.NewProducer(cfg.KafkaBrokers, notify.TopicOrderPlaced, 1024),
		notify.TopicEventCreated:   kafkax.NewProducer(cfg.KafkaBrokers, notify.TopicEventCreated, 1024),
	}
	for _, p := range producers {
		p.Start(context.Background())
	}

	// Broadcast: live websocket hub + durable kafka stream.
	hub := ws.NewHub()
	pub := notify.Fanout{hub, notify.NewStream(cfg.ServiceName, producers)}

	svc := &canteen.Service{
		Store:  be.store,
		Ledger: be.ledger,
		Pub:    pub,
	}
	sessions := &accounts.SessionStore{RDB: rdb, TTL: cfg.SessionTTL}
	images, err := lostfound.NewImageStore(cfg.UploadDir)
	if err != nil {
		log.Fatalf("image store: %v", err)
	}
	auth := httpx.RequireAuth(sessions)

	router := httpx.NewRouter()
	ah := &httpx.AuthHandler{Accounts: be.accounts, Sessions: sessions}
	ah.Register(router)
	ch := &httpx.CanteenHandler{Service: svc, Auth: auth}
	ch.Register(router)
	lh := &httpx.LostFoundHandler{Repo: be.lost, Images: images, Auth: auth}
	lh.Register(router)
	eh := &httpx.EventsHandler{Repo: be.events, Pub: pub, Auth: auth}
	eh.Register(router)
	router.Get("/ws", func(w http.ResponseWriter, r *http.Request) {
		ws.ServeWs(hub, w, r)
	})

	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: router}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		hub.Run(gctx)
		return nil
	})
	g.Go(func() error {
		log.Printf("HTTP listening at %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutCtx)
	})
	if err := g.Wait(); err != nil {
		log.Printf("run: %v", err)
	}

	log.Println("shutting down...")
	for _, p := range producers {
		p.Close()
	}
	for _, p := range producers {
		p.WaitClosed()
	}
}
