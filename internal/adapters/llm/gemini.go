package llm

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/genai"

	"github.com/PabloGalante/planforge/internal/domain"
)

// GeminiConfig selects the backend: an API key uses the Gemini Developer
// API, otherwise Project and Location select Vertex AI.
type GeminiConfig struct {
	APIKey    string
	Project   string
	Location  string
	ModelName string
}

type GeminiClient struct {
	client    *genai.Client
	modelName string
}

// NewGeminiClient creates a ChatModel backed by Gemini.
func NewGeminiClient(ctx context.Context, cfg GeminiConfig) (*GeminiClient, error) {
	modelName := cfg.ModelName
	if modelName == "" {
		modelName = "gemini-2.5-flash"
	}

	cc := &genai.ClientConfig{}
	switch {
	case cfg.APIKey != "":
		cc.APIKey = cfg.APIKey
		cc.Backend = genai.BackendGeminiAPI
	case cfg.Project != "" && cfg.Location != "":
		cc.Project = cfg.Project
		cc.Location = cfg.Location
		cc.Backend = genai.BackendVertexAI
	default:
		return nil, fmt.Errorf("%w: gemini needs an API key or a GCP project and location", domain.ErrAIUnavailable)
	}

	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("creating genai client: %w", err)
	}

	return &GeminiClient{
		client:    client,
		modelName: modelName,
	}, nil
}

// StartChat implements domain.ChatModel. Each chat keeps its own history so
// the plan request sees the questions exchange.
func (g *GeminiClient) StartChat(ctx context.Context) (domain.ChatSession, error) {
	temp := float32(0.7)
	cfg := &genai.GenerateContentConfig{
		Temperature: &temp,
	}

	chat, err := g.client.Chats.Create(ctx, g.modelName, cfg, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: create chat: %w", domain.ErrProvider, err)
	}
	return &geminiChat{chat: chat}, nil
}

type geminiChat struct {
	chat *genai.Chat
}

func (c *geminiChat) SendMessage(ctx context.Context, text string) (string, error) {
	res, err := c.chat.SendMessage(ctx, genai.Part{Text: text})
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return "", fmt.Errorf("%w: %w", domain.ErrProviderTimeout, err)
		}
		return "", fmt.Errorf("%w: gemini send message: %w", domain.ErrProvider, err)
	}

	// Only the text parts, never the raw response structs.
	out := res.Text()
	if out == "" {
		return "", domain.ErrEmptyReply
	}
	return out, nil
}
