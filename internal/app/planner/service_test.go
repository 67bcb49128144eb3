package planner_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/PabloGalante/planforge/internal/app/chat"
	"github.com/PabloGalante/planforge/internal/app/extract"
	"github.com/PabloGalante/planforge/internal/app/planner"
	"github.com/PabloGalante/planforge/internal/app/validate"
	"github.com/PabloGalante/planforge/internal/domain"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type upsert struct {
	collection string
	id         string
	fields     map[string]any
}

type fakeStore struct {
	mu      sync.Mutex
	upserts []upsert
	err     error
}

func (s *fakeStore) Upsert(_ context.Context, collection, id string, fields map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.upserts = append(s.upserts, upsert{collection, id, fields})
	return s.err
}

func (s *fakeStore) Get(context.Context, string, string) (*domain.Document, error) {
	return nil, domain.ErrNotFound
}

func (s *fakeStore) ListByField(context.Context, string, string, any, int) ([]*domain.Document, error) {
	return nil, nil
}

func (s *fakeStore) Ping(context.Context) error { return nil }

func (s *fakeStore) calls() []upsert {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]upsert(nil), s.upserts...)
}

// scriptedModel hands out sessions that answer with the queued replies in
// order, across all sessions.
type scriptedModel struct {
	mu       sync.Mutex
	replies  []string
	prompts  []string
	sendErr  error
	blocking bool
}

func (m *scriptedModel) StartChat(context.Context) (domain.ChatSession, error) {
	return &scriptedSession{model: m}, nil
}

type scriptedSession struct{ model *scriptedModel }

func (s *scriptedSession) SendMessage(ctx context.Context, text string) (string, error) {
	m := s.model
	m.mu.Lock()
	m.prompts = append(m.prompts, text)
	blocking, sendErr := m.blocking, m.sendErr
	var reply string
	if len(m.replies) > 0 {
		reply, m.replies = m.replies[0], m.replies[1:]
	}
	m.mu.Unlock()

	if blocking {
		<-ctx.Done()
		return "", ctx.Err()
	}
	if sendErr != nil {
		return "", sendErr
	}
	return reply, nil
}

func newService(t *testing.T, model domain.ChatModel, store domain.DocumentStore, opts ...planner.Option) (*planner.Service, *chat.Manager) {
	t.Helper()
	sessions := chat.NewManager(model, chat.WithSweepInterval(time.Hour))
	t.Cleanup(sessions.Close)
	clock := func() time.Time { return time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC) }
	opts = append([]planner.Option{planner.WithClock(clock)}, opts...)
	return planner.NewService(sessions, store, opts...), sessions
}

func questionRequest() domain.QuestionRequest {
	return domain.QuestionRequest{
		Idea:     "A habit tracker for remote teams",
		Domain:   domain.DomainTechProduct,
		Platform: domain.PlatformWeb,
	}
}

func modelQuestionsReply() string {
	qs := make([]map[string]any, 0, 6)
	for i := 1; i <= 6; i++ {
		qs = append(qs, map[string]any{
			"id":          fmt.Sprintf("m%d", i),
			"question":    fmt.Sprintf("Model question %d?", i),
			"options":     []string{"a", "b", "c"},
			"allowCustom": i <= 3,
		})
	}
	b, _ := json.Marshal(map[string]any{
		"questions": qs,
		"remarks": map[string]any{
			"viability":      "Medium",
			"complexity":     "High",
			"recommendation": "Narrow the scope",
		},
	})
	return "Here are your questions:\n```json\n" + string(b) + "\n```"
}

func modelPlan() domain.PlanResponse {
	p := planner.MockPlan()
	p.Overview.PrimaryGoal = "Ship a habit tracker"
	return p
}

func modelPlanReply(t *testing.T) string {
	t.Helper()
	b, err := json.Marshal(modelPlan())
	require.NoError(t, err)
	return "Sure! " + string(b) + " Good luck."
}

func TestMocksPassValidation(t *testing.T) {
	b, err := json.Marshal(planner.MockQuestions())
	require.NoError(t, err)
	var raw any
	require.NoError(t, json.Unmarshal(b, &raw))
	qs, err := validate.Questions(raw)
	require.NoError(t, err)
	if diff := cmp.Diff(planner.MockQuestions(), qs); diff != "" {
		t.Errorf("questions round-trip mismatch (-want +got):\n%s", diff)
	}

	b, err = json.Marshal(planner.MockPlan())
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(b, &raw))
	plan, err := validate.Plan(raw)
	require.NoError(t, err)
	if diff := cmp.Diff(planner.MockPlan(), plan); diff != "" {
		t.Errorf("plan round-trip mismatch (-want +got):\n%s", diff)
	}
}

func TestGenerateQuestionsAIUnavailable(t *testing.T) {
	model := &scriptedModel{}
	store := &fakeStore{}
	svc, sessions := newService(t, model, store, planner.WithAIAvailable(false))

	out := svc.GenerateQuestions(context.Background(), planner.QuestionsInput{
		Request:   questionRequest(),
		ProjectID: "p1",
		UserID:    "u1",
	})

	assert.Equal(t, planner.SourceFallback, out.Source)
	assert.ErrorIs(t, out.FallbackReason, domain.ErrAIUnavailable)
	assert.Len(t, out.Response.Questions, 5)
	assert.Equal(t, 0, sessions.Len())
	assert.Empty(t, model.prompts)

	calls := store.calls()
	require.Len(t, calls, 1)
	assert.Equal(t, planner.ProjectsCollection, calls[0].collection)
	assert.Equal(t, "p1", calls[0].id)
	assert.Equal(t, "u1", calls[0].fields["user_id"])
	assert.Len(t, calls[0].fields["questions"], 5)
}

func TestGenerateQuestionsFromModel(t *testing.T) {
	model := &scriptedModel{replies: []string{modelQuestionsReply()}}
	store := &fakeStore{}
	svc, sessions := newService(t, model, store)

	out := svc.GenerateQuestions(context.Background(), planner.QuestionsInput{
		Request:   questionRequest(),
		ProjectID: "p1",
		UserID:    "u1",
	})

	require.NoError(t, out.FallbackReason)
	assert.Equal(t, planner.SourceModel, out.Source)
	require.Len(t, out.Response.Questions, 6)
	assert.Equal(t, "m1", out.Response.Questions[0].ID)
	assert.Equal(t, "Narrow the scope", out.Response.Remarks.Recommendation)
	assert.Equal(t, 1, sessions.Len())

	require.Len(t, model.prompts, 1)
	assert.Contains(t, model.prompts[0], "A habit tracker for remote teams")

	calls := store.calls()
	require.Len(t, calls, 1)
	stored := calls[0].fields["questions"].([]any)
	first := stored[0].(map[string]any)
	assert.Equal(t, "m1", first["id"])
	assert.Equal(t, time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC), first["created_at"])
}

func TestGenerateQuestionsFallbackOnBadOutput(t *testing.T) {
	tests := []struct {
		name  string
		reply string
		want  error
	}{
		{"no json", "I cannot help with that.", extract.ErrIncompleteObject},
		{"too few questions", `{"questions":[],"remarks":{}}`, validate.ErrQuestionCountOutOfRange},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			model := &scriptedModel{replies: []string{tt.reply}}
			store := &fakeStore{}
			svc, _ := newService(t, model, store)

			out := svc.GenerateQuestions(context.Background(), planner.QuestionsInput{
				Request:   questionRequest(),
				ProjectID: "p1",
				UserID:    "u1",
			})

			assert.Equal(t, planner.SourceFallback, out.Source)
			assert.ErrorIs(t, out.FallbackReason, tt.want)
			if diff := cmp.Diff(planner.MockQuestions(), out.Response); diff != "" {
				t.Errorf("fallback mismatch (-want +got):\n%s", diff)
			}
			assert.Len(t, store.calls(), 1)
		})
	}
}

func TestGenerateQuestionsProviderError(t *testing.T) {
	model := &scriptedModel{sendErr: errors.New("quota exceeded")}
	svc, _ := newService(t, model, &fakeStore{})

	out := svc.GenerateQuestions(context.Background(), planner.QuestionsInput{
		Request:   questionRequest(),
		ProjectID: "p1",
		UserID:    "u1",
	})

	assert.Equal(t, planner.SourceFallback, out.Source)
	assert.ErrorIs(t, out.FallbackReason, domain.ErrProvider)
	assert.Contains(t, out.FallbackReason.Error(), "quota exceeded")
}

func TestGenerateQuestionsTimeout(t *testing.T) {
	model := &scriptedModel{blocking: true}
	svc, _ := newService(t, model, &fakeStore{}, planner.WithModelTimeout(10*time.Millisecond))

	out := svc.GenerateQuestions(context.Background(), planner.QuestionsInput{
		Request:   questionRequest(),
		ProjectID: "p1",
		UserID:    "u1",
	})

	assert.Equal(t, planner.SourceFallback, out.Source)
	assert.ErrorIs(t, out.FallbackReason, domain.ErrProviderTimeout)
	assert.Len(t, out.Response.Questions, 5)
}

func TestPersistenceFailureIsSwallowed(t *testing.T) {
	model := &scriptedModel{replies: []string{modelQuestionsReply()}}
	store := &fakeStore{err: errors.New("firestore down")}
	svc, _ := newService(t, model, store)

	out := svc.GenerateQuestions(context.Background(), planner.QuestionsInput{
		Request:   questionRequest(),
		ProjectID: "p1",
		UserID:    "u1",
	})

	assert.Equal(t, planner.SourceModel, out.Source)
	assert.Len(t, out.Response.Questions, 6)
	assert.Len(t, store.calls(), 1)
}

func TestPersistenceSurvivesCancelledRequest(t *testing.T) {
	store := &fakeStore{}
	svc, _ := newService(t, &scriptedModel{}, store, planner.WithAIAvailable(false))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	out := svc.GenerateQuestions(ctx, planner.QuestionsInput{
		Request:   questionRequest(),
		ProjectID: "p1",
		UserID:    "u1",
	})

	assert.Equal(t, planner.SourceFallback, out.Source)
	assert.Len(t, store.calls(), 1)
}

func planRequest() domain.PlanRequest {
	return domain.PlanRequest{
		ProjectID: "p1",
		Idea:      "A habit tracker for remote teams",
		Domain:    domain.DomainTechProduct,
		Platform:  domain.PlatformWeb,
		Answers:   map[string]string{"m1": "a", "m2": "Custom answer"},
	}
}

func TestGeneratePlanContinuesSession(t *testing.T) {
	model := &scriptedModel{replies: []string{modelQuestionsReply(), modelPlanReply(t)}}
	store := &fakeStore{}
	svc, _ := newService(t, model, store)
	ctx := context.Background()

	qs := svc.GenerateQuestions(ctx, planner.QuestionsInput{Request: questionRequest(), ProjectID: "p1", UserID: "u1"})
	require.Equal(t, planner.SourceModel, qs.Source)

	out := svc.GeneratePlan(ctx, planner.PlanInput{Request: planRequest(), UserID: "u1"})

	require.NoError(t, out.FallbackReason)
	assert.Equal(t, planner.SourceModel, out.Source)
	if diff := cmp.Diff(modelPlan(), out.Response); diff != "" {
		t.Errorf("plan mismatch (-want +got):\n%s", diff)
	}

	require.Len(t, model.prompts, 2)
	assert.Contains(t, model.prompts[1], "m1=a")

	calls := store.calls()
	require.Len(t, calls, 2)
	planFields := calls[1].fields
	assert.Contains(t, planFields, "plan")
	assert.Contains(t, planFields, "plan_generated_at")
	stored := planFields["plan"].(map[string]any)
	assert.Equal(t, "Ship a habit tracker", stored["overview"].(map[string]any)["primary_goal"])
}

func TestGeneratePlanWithoutSession(t *testing.T) {
	model := &scriptedModel{replies: []string{modelPlanReply(t)}}
	store := &fakeStore{}
	svc, _ := newService(t, model, store)

	out := svc.GeneratePlan(context.Background(), planner.PlanInput{Request: planRequest(), UserID: "u1"})

	assert.Equal(t, planner.SourceFallback, out.Source)
	assert.ErrorIs(t, out.FallbackReason, domain.ErrNoActiveSession)
	if diff := cmp.Diff(planner.MockPlan(), out.Response); diff != "" {
		t.Errorf("fallback mismatch (-want +got):\n%s", diff)
	}
	assert.Empty(t, model.prompts)
	assert.Len(t, store.calls(), 1)
}

func TestGeneratePlanAIUnavailable(t *testing.T) {
	store := &fakeStore{}
	svc, _ := newService(t, nil, store, planner.WithAIAvailable(false))

	out := svc.GeneratePlan(context.Background(), planner.PlanInput{Request: planRequest(), UserID: "u1"})

	assert.Equal(t, planner.SourceFallback, out.Source)
	assert.ErrorIs(t, out.FallbackReason, domain.ErrAIUnavailable)
	assert.Len(t, store.calls(), 1)
}

func TestGeneratePlanInvalidShapeFallsBack(t *testing.T) {
	model := &scriptedModel{replies: []string{modelQuestionsReply(), `{"metadata":{}}`}}
	svc, _ := newService(t, model, &fakeStore{})
	ctx := context.Background()

	svc.GenerateQuestions(ctx, planner.QuestionsInput{Request: questionRequest(), ProjectID: "p1", UserID: "u1"})
	out := svc.GeneratePlan(ctx, planner.PlanInput{Request: planRequest(), UserID: "u1"})

	assert.Equal(t, planner.SourceFallback, out.Source)
	assert.ErrorIs(t, out.FallbackReason, validate.ErrMissingOverview)
}

func TestGeneratePlanFallsBackWithoutJSON(t *testing.T) {
	model := &scriptedModel{replies: []string{modelQuestionsReply(), "Here is your plan: step one, build it."}}
	store := &fakeStore{}
	svc, _ := newService(t, model, store)
	ctx := context.Background()

	qs := svc.GenerateQuestions(ctx, planner.QuestionsInput{Request: questionRequest(), ProjectID: "p1", UserID: "u1"})
	require.Equal(t, planner.SourceModel, qs.Source)

	out := svc.GeneratePlan(ctx, planner.PlanInput{Request: planRequest(), UserID: "u1"})

	assert.Equal(t, planner.SourceFallback, out.Source)
	assert.ErrorIs(t, out.FallbackReason, extract.ErrIncompleteObject)
	if diff := cmp.Diff(planner.MockPlan(), out.Response); diff != "" {
		t.Errorf("fallback mismatch (-want +got):\n%s", diff)
	}
	require.Len(t, model.prompts, 2)
	assert.Len(t, store.calls(), 2)
}
