package v1

import (
	"context"
	"log"
	"os"

	"debugmate-backend/internal/config"
	"debugmate-backend/internal/debugmate/intent"
	"debugmate-backend/internal/debugmate/query"
	"debugmate-backend/internal/debugmate/workflow"
	llmHandlers "debugmate-backend/internal/llm_handlers"
	"debugmate-backend/internal/memory"
	"debugmate-backend/internal/repo"
	"debugmate-backend/internal/retrieval"

	"github.com/gofiber/fiber/v2"
)

const docsDir = "company_docs"

// ChatRoutes is the group of routes for the chat API.
func registerChat(r fiber.Router) {
	provider := os.Getenv("LLM_PROVIDER")
	if provider == "" {
		provider = string(llmHandlers.ProviderOpenRouter)
	}

	// One client per temperature/token profile; the interface hides which
	// provider backs them.
	refiner := mustClient(provider, 0, 50)
	classifierLLM := mustClient(provider, 0, 10)
	synthCommon := mustClient(provider, 0.6, 1200)
	synthWork := mustClient(provider, 0.5, 350)
	synthDual := mustClient(provider, 0.5, 2000)

	wf := &workflow.Workflow{
		Chats:       repo.NewChatRepository(config.DB),
		Users:       repo.NewUserRepository(config.DB),
		Facts:       repo.NewFactRepository(config.DB),
		Projects:    repo.NewProjectRepository(config.DB),
		Classifier:  intent.NewClassifier(classifierLLM),
		Refiner:     refiner,
		SynthCommon: synthCommon,
		SynthWork:   synthWork,
		SynthDual:   synthDual,
		Executor:    query.NewExecutor(config.DB),
		Retriever:   buildRetriever(),
		Memory:      memory.Open(os.Getenv("MEMORY_FILE")),
	}

	r.Post("/chat/common", wf.CommonChat)
	r.Post("/chat/work", wf.WorkChat)
	r.Post("/chat/dual", wf.DualChat)
}

func mustClient(provider string, temperature float64, maxTokens int) llmHandlers.Client {
	client, err := llmHandlers.New(provider, temperature, maxTokens)
	if err != nil {
		log.Fatalf("failed to init LLM client: %v", err)
	}
	return client
}

// buildRetriever wires the embedding service and vector store when both are
// configured; otherwise document context is disabled. An empty index is
// filled from the docs directory in the background.
func buildRetriever() *retrieval.Retriever {
	teiURL := os.Getenv("TEI_URL")
	pgURL := os.Getenv("PGVECTOR_URL")
	if teiURL == "" || pgURL == "" {
		log.Println("⚠ document retrieval disabled (TEI_URL / PGVECTOR_URL not set)")
		return nil
	}

	ctx := context.Background()
	store, err := retrieval.NewStore(ctx, pgURL)
	if err != nil {
		log.Printf("❌ vector store connect error: %v", err)
		return nil
	}
	if err := store.Init(ctx); err != nil {
		log.Printf("❌ vector store init error: %v", err)
		store.Close()
		return nil
	}

	embedder := retrieval.NewTEIClient(teiURL)

	count, err := store.Count(ctx)
	if err != nil {
		log.Printf("⚠ vector store count error: %v", err)
	}
	if count == 0 {
		go func() {
			if err := retrieval.IndexDir(context.Background(), docsDir, store, embedder); err != nil {
				log.Printf("❌ document ingestion error: %v", err)
			}
		}()
	}

	return retrieval.NewRetriever(store, embedder)
}
