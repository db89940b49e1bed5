package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/PabloGalante/anota-bot/internal/adapters/llm"
	firestorestore "github.com/PabloGalante/anota-bot/internal/adapters/storage/firestore"
	memstore "github.com/PabloGalante/anota-bot/internal/adapters/storage/memory"
	"github.com/PabloGalante/anota-bot/internal/adapters/telegram"
	"github.com/PabloGalante/anota-bot/internal/app/commands"
	"github.com/PabloGalante/anota-bot/internal/app/ingest"
	"github.com/PabloGalante/anota-bot/internal/config"
	"github.com/PabloGalante/anota-bot/internal/domain"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.Load()

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		log.Fatalf("invalid ANOTA_TIMEZONE %q: %v", cfg.Timezone, err)
	}

	// LLM: mock or Gemini by config (mock is the local-mode default)
	var (
		extractor   domain.ListExtractor
		transcriber domain.Transcriber
	)
	if cfg.UseMockLLM {
		log.Println("[LLM] Using MOCK LLM client")
		mock := llm.NewMockLLM()
		extractor = mock
		transcriber = mock
	} else {
		log.Println("[LLM] Using Gemini LLM client")
		gemini, err := llm.NewGeminiClient(ctx, cfg.GCPProjectID, cfg.GCPLocation, cfg.ModelName)
		if err != nil {
			log.Fatalf("error initializing Gemini client: %v", err)
		}
		extractor = gemini
		transcriber = gemini
	}

	// Storage: Firestore or Memory
	var store domain.ListStore
	switch cfg.StorageBackend {
	case "firestore":
		log.Printf("[STORE] Using Firestore storage (project=%s)", cfg.GCPProjectID)
		fsStore, err := firestorestore.NewStore(ctx, cfg.GCPProjectID)
		if err != nil {
			log.Fatalf("error initializing Firestore store: %v", err)
		}
		store = fsStore
	default:
		log.Println("[STORE] Using in-memory storage")
		store = memstore.NewListStore()
	}

	ingestSvc := ingest.NewService(extractor, transcriber, store, loc)
	router := commands.NewRouter(store, loc)

	gw, err := telegram.NewGateway(cfg.TelegramToken)
	if err != nil {
		log.Fatalf("error initializing telegram gateway: %v", err)
	}
	if err := gw.RegisterCommands(); err != nil {
		log.Printf("warning: failed to register bot commands: %v", err)
	}

	listener := telegram.NewListener(gw, ingestSvc, router)

	log.Println("Anota bot listening for updates")
	if err := listener.Run(ctx); err != nil && err != context.Canceled {
		log.Fatal(err)
	}
}
