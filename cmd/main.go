package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"

	"farminventory/config"
	"farminventory/internal/api/item"
	"farminventory/internal/api/router"
	"farminventory/internal/api/system"
	"farminventory/internal/pkg/alert"
	"farminventory/internal/pkg/database"
	"farminventory/internal/pkg/lifecycle"
	"farminventory/internal/pkg/logger"
	"farminventory/internal/pkg/telemetry"
	"farminventory/internal/repository/itemrepo"
	"farminventory/internal/service/itemservice"
)

// @title Farm Inventory API
// @version 1.0
// @description API de inventário da fazenda com modo fallback quando o banco está fora.
// @BasePath /
func main() {
	log.Println("⚡ Inicializando Farm Inventory API...")
	if err := godotenv.Load(); err != nil {
		// As variáveis podem vir só do ambiente (ex: Docker).
		log.Println("⚠️ Aviso: Arquivo .env não encontrado ou erro de leitura. Carregando configs apenas do ambiente do sistema.")
	}

	cfg := config.LoadConfig()
	appLog := logger.NewLogger(cfg.LogLevel).With(map[string]interface{}{"service": cfg.ServiceName})
	appLog.Info("Configurações carregadas.", map[string]interface{}{
		"port":        cfg.Port,
		"environment": cfg.Environment,
		"mongodb_uri": database.RedactURI(cfg.MongoURI),
	})

	ctx := context.Background()

	// 1. Tracing (no-op sem endpoint)
	shutdownTracing, err := telemetry.SetupTracing(ctx, cfg.OTLPEndpoint, cfg.ServiceName, cfg.Environment)
	if err != nil {
		appLog.Warn("Tracing desativado: falha ao criar exporter.", map[string]interface{}{"error": err.Error()})
		shutdownTracing = func(context.Context) error { return nil }
	}

	// 2. Banco de Dados (MongoDB). Falha aqui não derruba o processo.
	tracker := database.NewTracker(appLog)
	mongoDB := database.Connect(ctx, database.Options{
		URI:            cfg.MongoURI,
		Database:       cfg.MongoDatabase,
		ConnectTimeout: cfg.MongoConnectTimeout,
		SocketTimeout:  cfg.MongoSocketTimeout,
	}, tracker, appLog)

	// 3. Alertas de estoque baixo (Redis Pub/Sub)
	alerts := alert.New(cfg.RedisAddr, cfg.LowStockChannel, appLog)

	// 4. Injeção de dependências: Repository -> Service -> Handler
	itemRepo := itemrepo.NewItemRepository(mongoDB.Collection(itemrepo.CollectionName), appLog)
	itemSvc := itemservice.NewService(itemRepo, alerts, appLog)
	itemHandler := item.NewHandler(itemSvc, appLog)
	systemHandler := system.NewHandler(tracker, cfg.Environment, appLog)

	r := router.NewRouter(router.Deps{
		Items:  itemHandler,
		System: systemHandler,
		DB:     tracker,
		Logger: appLog,
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// 5. Supervisor: fecha na ordem inversa, o MongoDB por último.
	sup := lifecycle.New(server, appLog, cfg.ShutdownTimeout)
	sup.OnShutdown("mongodb", true, mongoDB.Close)
	sup.OnShutdown("redis", false, alerts.Close)
	sup.OnShutdown("tracing", false, shutdownTracing)

	if tracker.IsConnected() {
		sup.Go(ctx, "ensure-indexes", func(ctx context.Context) {
			idxCtx, cancel := context.WithTimeout(ctx, cfg.MongoConnectTimeout)
			defer cancel()
			if err := itemRepo.EnsureIndexes(idxCtx); err != nil {
				appLog.Warn("Falha ao criar índices.", map[string]interface{}{"error": err.Error()})
			}
		})
	}

	os.Exit(sup.Run(ctx))
}
