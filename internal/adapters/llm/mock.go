package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/PabloGalante/planforge/internal/app/planner"
	"github.com/PabloGalante/planforge/internal/domain"
)

// MockModel is a credential-free ChatModel for local development. It answers
// a questions prompt with a question set and anything else with a plan, both
// wrapped in prose so the extraction path runs as it would for Gemini.
type MockModel struct{}

func NewMockModel() *MockModel {
	return &MockModel{}
}

func (m *MockModel) StartChat(context.Context) (domain.ChatSession, error) {
	return &mockChat{}, nil
}

type mockChat struct {
	turns atomic.Int32
}

func (c *mockChat) SendMessage(ctx context.Context, text string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	turn := c.turns.Add(1)

	var payload any
	if strings.Contains(text, "foundational questions") {
		qs := planner.MockQuestions()
		qs.Remarks.Recommendation = "Proceed with caution"
		payload = qs
	} else {
		plan := planner.MockPlan()
		plan.Overview.PrimaryGoal = fmt.Sprintf("Build a functional first version (mock turn %d)", turn)
		payload = plan
	}

	b, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("%w: mock encode: %w", domain.ErrProvider, err)
	}
	return "Here is the result you asked for:\n" + string(b) + "\nLet me know if you need changes.", nil
}
