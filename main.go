package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	contractx "github.com/ovenly/pizza-agent/agent/contract"
	gatewayx "github.com/ovenly/pizza-agent/agent/gateway"
	knowledgex "github.com/ovenly/pizza-agent/agent/knowledge"
	ledgerx "github.com/ovenly/pizza-agent/agent/ledger"
	orchestratorx "github.com/ovenly/pizza-agent/agent/orchestrator"
	sessionx "github.com/ovenly/pizza-agent/agent/session"
	toolx "github.com/ovenly/pizza-agent/agent/tool"
	configx "github.com/ovenly/pizza-agent/pkg/config"
	_ "github.com/ovenly/pizza-agent/pkg/logger/autoload"
	twiliox "github.com/ovenly/pizza-agent/pkg/twilio"
	"github.com/ovenly/pizza-agent/server"
	storex "github.com/ovenly/pizza-agent/store"
)

type AppConfig struct {
	SessionBackend  string `envconfig:"SESSION_BACKEND" default:"memory"`
	WhatsAppEnabled bool   `envconfig:"WHATSAPP_ENABLED" default:"false"`
	SeedOnBoot      bool   `envconfig:"SEED_ON_BOOT" default:"true"`
}

func main() {
	appCfg := configx.MustNew[AppConfig]("")

	ctx := context.Background()

	dbCfg := configx.MustNew[storex.Config]("DB")
	db, err := storex.Connect(ctx, *dbCfg)
	if err != nil {
		log.Fatal().Err(err).Msg("database connection failed")
	}
	defer db.Close()

	if err := storex.EnsureSchema(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("schema setup failed")
	}
	if appCfg.SeedOnBoot {
		if err := storex.Seed(ctx, db); err != nil {
			log.Fatal().Err(err).Msg("seeding failed")
		}
	}

	menuRepo := storex.NewMenuRepo(db)
	kbRepo := storex.NewKBRepo(db)
	dedupRepo := storex.NewDedupRepo(db)
	orderStore := storex.NewOrderStore(db)
	orderLedger := ledgerx.New(orderStore)

	embedCfg := configx.MustNew[knowledgex.EmbedderConfig]("EMBEDDINGS")
	embedder, err := knowledgex.NewOpenAIEmbedder(*embedCfg)
	if err != nil {
		log.Fatal().Err(err).Msg("embedder setup failed")
	}
	index := knowledgex.NewIndex(embedder)
	docs, err := kbRepo.All(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("knowledge base load failed")
	}
	if err := index.Ingest(ctx, docs...); err != nil {
		log.Fatal().Err(err).Msg("knowledge base ingestion failed")
	}
	log.Info().Int("documents", len(docs)).Msg("knowledge base ready")

	registry, err := toolx.NewRegistry(
		toolx.NewSearchKB(index),
		toolx.NewSearchMenu(menuRepo),
		toolx.NewRecommendPizza(menuRepo),
		toolx.NewCreateOrder(orderLedger),
		toolx.NewUpdateOrder(orderLedger),
		toolx.NewOrderStatus(orderLedger),
	)
	if err != nil {
		log.Fatal().Err(err).Msg("tool registry setup failed")
	}

	gatewayCfg := configx.MustNew[gatewayx.Config]("LLM")
	modelGateway, err := gatewayCfg.Build()
	if err != nil {
		log.Fatal().Err(err).Msg("model gateway setup failed")
	}
	log.Info().Strs("providers", modelGateway.Providers()).Msg("model gateway ready")

	var sessions contractx.SessionStore
	switch appCfg.SessionBackend {
	case "redis":
		redisCfg := configx.MustNew[sessionx.UpstashRedisConfig]("UPSTASH_REDIS")
		sessions, err = sessionx.NewUpstashRedisStore(*redisCfg)
		if err != nil {
			log.Fatal().Err(err).Msg("redis session store setup failed")
		}
	default:
		sessions = sessionx.NewMemoryStore()
	}
	log.Info().Str("backend", appCfg.SessionBackend).Msg("session store ready")

	agent, err := orchestratorx.New(modelGateway, registry, sessions)
	if err != nil {
		log.Fatal().Err(err).Msg("orchestrator setup failed")
	}

	var sender server.WhatsAppSender
	if appCfg.WhatsAppEnabled {
		twilioCfg := configx.MustNew[twiliox.Config]("TWILIO")
		sender = twiliox.MustNew(*twilioCfg)
		log.Info().Msg("whatsapp sending enabled")
	}

	httpCfg := configx.MustNew[server.Config]("HTTP")
	e := server.New(server.NewHandler(agent, dedupRepo, sender, orderStore))

	go func() {
		if err := e.Start(httpCfg.Addr); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("http server failed")
		}
	}()
	log.Info().Str("addr", httpCfg.Addr).Msg("http server started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http server shutdown failed")
	}
	log.Info().Msg("stopped")
}
