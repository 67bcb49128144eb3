package main

import (
	"context"
	"fmt"
	"io"

	"github.com/PabloGalante/planforge/internal/adapters/auth"
	"github.com/PabloGalante/planforge/internal/adapters/llm"
	firestorestore "github.com/PabloGalante/planforge/internal/adapters/storage/firestore"
	memstore "github.com/PabloGalante/planforge/internal/adapters/storage/memory"
	"github.com/PabloGalante/planforge/internal/app/chat"
	"github.com/PabloGalante/planforge/internal/app/planner"
	"github.com/PabloGalante/planforge/internal/config"
	"github.com/PabloGalante/planforge/internal/domain"
	"github.com/PabloGalante/planforge/internal/observability"
)

// app holds the wired collaborators of one process.
type app struct {
	cfg      *config.Config
	planner  *planner.Service
	sessions *chat.Manager
	verifier auth.Verifier
	closers  []io.Closer
}

// newApp wires the process from cfg, logging to logOut.
func newApp(ctx context.Context, cfg *config.Config, logOut io.Writer) (*app, error) {
	log := observability.Init(logOut, cfg.LogLevel)

	// Model: mock, Gemini, or none (every call falls back)
	var model domain.ChatModel
	switch {
	case cfg.UseMockLLM:
		log.Info("using mock model")
		model = llm.NewMockModel()
	case cfg.AIAvailable():
		gemini, err := llm.NewGeminiClient(ctx, llm.GeminiConfig{
			APIKey:    cfg.GeminiAPIKey,
			Project:   cfg.GCPProjectID,
			Location:  cfg.GCPLocation,
			ModelName: cfg.ModelName,
		})
		if err != nil {
			return nil, fmt.Errorf("error initializing Gemini client: %w", err)
		}
		log.Info("using Gemini model", "model", cfg.ModelName)
		model = gemini
	default:
		log.Warn("no AI credentials configured, serving fallback content")
	}

	a := &app{cfg: cfg}

	// Storage: Firestore or Memory
	var store domain.DocumentStore
	switch cfg.StorageBackend {
	case config.StorageFirestore:
		fs, err := firestorestore.NewStore(ctx, cfg.GCPProjectID)
		if err != nil {
			return nil, fmt.Errorf("error initializing Firestore store: %w", err)
		}
		log.Info("using Firestore storage", "project", cfg.GCPProjectID)
		store = fs
		a.closers = append(a.closers, fs)
	default:
		log.Info("using in-memory storage")
		store = memstore.NewDocumentStore()
	}

	if cfg.AuthEnabled {
		v, err := auth.NewFirebaseVerifier(ctx, cfg.GCPProjectID)
		if err != nil {
			a.close()
			return nil, fmt.Errorf("error initializing Firebase auth: %w", err)
		}
		a.verifier = v
	} else {
		log.Warn("authentication disabled")
		a.verifier = auth.DevVerifier{}
	}

	a.sessions = chat.NewManager(model,
		chat.WithTTL(cfg.SessionTTL),
		chat.WithSweepInterval(cfg.SweepInterval),
		chat.WithLogger(log),
	)

	a.planner = planner.NewService(a.sessions, store,
		planner.WithAIAvailable(cfg.AIAvailable()),
		planner.WithModelTimeout(cfg.ModelTimeout),
	)
	return a, nil
}

// close stops the session sweeper and releases the store.
func (a *app) close() {
	if a.sessions != nil {
		a.sessions.Close()
	}
	for _, c := range a.closers {
		if err := c.Close(); err != nil {
			observability.Logger().Error("close", "error", err)
		}
	}
}
