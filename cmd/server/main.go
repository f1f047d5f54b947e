package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"negochat/internal/ai"
	"negochat/internal/api"
	"negochat/internal/auth"
	"negochat/internal/chat"
	"negochat/internal/config"
	"negochat/internal/db"
	"negochat/internal/middleware"
	"negochat/internal/nlp"
	"negochat/internal/repository"
	"negochat/internal/tasks"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

func serveWS(h *chat.Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Printf("Upgrade error: %v", err)
			return
		}

		limiter := middleware.NewRatelimiter(5, 500*time.Millisecond)

		client := &chat.Client{
			ID:      uuid.NewString(),
			Hub:     h,
			Conn:    conn,
			Send:    make(chan []byte, 256),
			Limiter: limiter,
		}

		client.Hub.Register <- client

		go client.WritePump()
		go client.ReadPump()
	}
}

func main() {

	cfg := config.Load()

	// Persistence is an optional collaborator: no DATABASE_URL means the
	// chat runs purely in memory.
	var archive repository.MessageArchive
	if cfg.DatabaseURL != "" {
		pool, err := db.Connect(cfg.DatabaseURL)
		if err != nil {
			log.Printf("[MAIN] ⚠️ Database unavailable, continuing without archive: %v", err)
		} else {
			defer pool.Close()
			archive = repository.NewMessageArchive(pool)

			cleaner := tasks.NewArchiveCleaner(archive)
			cleaner.Start()
		}
	}

	gateway, err := ai.NewGateway(context.Background(), cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		log.Fatalf("[MAIN] Failed to initialize AI gateway: %v", err)
	}

	registry := chat.NewRegistry()
	presence := chat.NewPresence()
	hub := chat.NewHub(registry, presence)
	hub.Router = chat.NewRouter(registry, presence, gateway, hub, archive)
	go hub.Run()

	authSvc := auth.NewService(cfg.AuthKey)
	analyzer := nlp.NewAnalyzer(gateway)
	authenticated := middleware.Authenticate(authSvc)

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", serveWS(hub))

	mux.Handle("POST /api/token", api.TokenHandler(authSvc))
	mux.Handle("POST /api/messages", authenticated(api.ArchiveMessageHandler(archive)))
	mux.Handle("GET /api/messages", authenticated(api.ArchiveHistoryHandler(archive)))
	mux.Handle("POST /api/negotiation", api.NegotiationHandler(gateway))
	mux.Handle("POST /api/analyze-sentiment", api.SentimentHandler(analyzer))
	mux.Handle("POST /api/detect-fraud", api.DetectFraudHandler(gateway))
	mux.Handle("POST /api/extract-entities", api.ExtractEntitiesHandler())
	mux.Handle("POST /api/market-insights", api.MarketInsightsHandler(analyzer))
	mux.Handle("POST /api/analyze-negotiation", api.AnalyzeNegotiationHandler(analyzer))
	mux.Handle("POST /api/negotiation-tactics", api.NegotiationTacticsHandler(analyzer))
	mux.Handle("GET /api/market-data", api.MarketDataHandler())
	mux.Handle("POST /api/price-prediction", api.PricePredictionHandler())
	mux.Handle("POST /api/market-trends", api.MarketTrendsHandler())

	mux.Handle("/", http.FileServer(http.Dir("./public")))

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: mux,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		fmt.Printf("🚀 Nego AI server starting on :%s...\n", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("ListenAndServe: %v", err)
		}
	}()

	<-stop

	fmt.Println("\nShutdown signal received. Cleaning up...")
	close(hub.Quit)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Shutdown error: %v", err)
	}

	fmt.Println("Graceful shutdown complete. Goodnight!")
}
