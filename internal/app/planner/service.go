// Package planner generates clarifying questions and project plans with the
// model, falling back to fixed payloads whenever generation cannot succeed.
package planner

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/PabloGalante/planforge/internal/app/extract"
	"github.com/PabloGalante/planforge/internal/app/prompt"
	"github.com/PabloGalante/planforge/internal/app/validate"
	"github.com/PabloGalante/planforge/internal/domain"
	"github.com/PabloGalante/planforge/internal/observability"
)

const (
	DefaultModelTimeout = 30 * time.Second
	DefaultStoreTimeout = 10 * time.Second
)

// Source tells whether a response came from the model or the fixed fallback.
type Source string

const (
	SourceModel    Source = "model"
	SourceFallback Source = "fallback"
)

// Sessions is the subset of the chat manager the service needs.
type Sessions interface {
	Create(ctx context.Context, projectID domain.ProjectID, userID domain.UserID) (domain.ChatSession, error)
	Get(projectID domain.ProjectID) (domain.ChatSession, bool)
}

type Service struct {
	sessions     Sessions
	store        domain.DocumentStore
	aiAvailable  bool
	modelTimeout time.Duration
	storeTimeout time.Duration
	now          func() time.Time
}

type Option func(*Service)

// WithAIAvailable sets whether model credentials are configured. When false
// every generation returns the fallback without touching the model.
func WithAIAvailable(ok bool) Option {
	return func(s *Service) { s.aiAvailable = ok }
}

func WithModelTimeout(d time.Duration) Option {
	return func(s *Service) { s.modelTimeout = d }
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func NewService(sessions Sessions, store domain.DocumentStore, opts ...Option) *Service {
	s := &Service{
		sessions:     sessions,
		store:        store,
		aiAvailable:  true,
		modelTimeout: DefaultModelTimeout,
		storeTimeout: DefaultStoreTimeout,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type QuestionsInput struct {
	Request   domain.QuestionRequest
	ProjectID domain.ProjectID
	UserID    domain.UserID
}

type QuestionsOutput struct {
	Response       domain.QuestionsResponse
	Source         Source
	FallbackReason error
}

// GenerateQuestions starts a new chat for the project and asks for the
// clarifying questions. It never fails: any error selects MockQuestions.
func (s *Service) GenerateQuestions(ctx context.Context, in QuestionsInput) *QuestionsOutput {
	ctx = observability.WithProject(ctx, string(in.ProjectID), string(in.UserID))
	log := observability.LoggerFromContext(ctx)
	log.Info("generating questions", "domain", in.Request.Domain, "platform", in.Request.Platform)

	out := &QuestionsOutput{Source: SourceModel}
	resp, err := s.questionsFromModel(ctx, in)
	if err != nil {
		s.logFallback(ctx, "questions", err)
		resp = MockQuestions()
		out.Source = SourceFallback
		out.FallbackReason = err
	}
	out.Response = resp

	s.saveQuestions(ctx, in.ProjectID, in.UserID, resp)

	log.Info("questions ready", "source", out.Source, "question_count", len(resp.Questions))
	return out
}

func (s *Service) questionsFromModel(ctx context.Context, in QuestionsInput) (domain.QuestionsResponse, error) {
	if !s.aiAvailable {
		return domain.QuestionsResponse{}, domain.ErrAIUnavailable
	}

	text, err := prompt.Questions(in.Request)
	if err != nil {
		return domain.QuestionsResponse{}, err
	}

	session, err := s.sessions.Create(ctx, in.ProjectID, in.UserID)
	if err != nil {
		return domain.QuestionsResponse{}, err
	}

	raw, err := s.ask(ctx, session, text)
	if err != nil {
		return domain.QuestionsResponse{}, err
	}
	return validate.Questions(raw)
}

type PlanInput struct {
	Request domain.PlanRequest
	UserID  domain.UserID
}

type PlanOutput struct {
	Response       domain.PlanResponse
	Source         Source
	FallbackReason error
}

// GeneratePlan continues the project's chat with the answers and asks for
// the plan. The chat must have been started by GenerateQuestions; otherwise,
// or on any other error, MockPlan is returned.
func (s *Service) GeneratePlan(ctx context.Context, in PlanInput) *PlanOutput {
	projectID := in.Request.ProjectID
	ctx = observability.WithProject(ctx, string(projectID), string(in.UserID))
	log := observability.LoggerFromContext(ctx)
	log.Info("generating plan", "answer_count", len(in.Request.Answers))

	out := &PlanOutput{Source: SourceModel}
	resp, err := s.planFromModel(ctx, in)
	if err != nil {
		s.logFallback(ctx, "plan", err)
		resp = MockPlan()
		out.Source = SourceFallback
		out.FallbackReason = err
	}
	out.Response = resp

	s.savePlan(ctx, projectID, in.UserID, resp)

	log.Info("plan ready",
		"source", out.Source,
		"roadmap_phases", len(resp.Roadmap),
		"tasks", len(resp.Tasks),
	)
	return out
}

func (s *Service) planFromModel(ctx context.Context, in PlanInput) (domain.PlanResponse, error) {
	if !s.aiAvailable {
		return domain.PlanResponse{}, domain.ErrAIUnavailable
	}

	session, ok := s.sessions.Get(in.Request.ProjectID)
	if !ok {
		return domain.PlanResponse{}, domain.ErrNoActiveSession
	}

	text, err := prompt.Plan(in.Request)
	if err != nil {
		return domain.PlanResponse{}, err
	}

	raw, err := s.ask(ctx, session, text)
	if err != nil {
		return domain.PlanResponse{}, err
	}
	return validate.Plan(raw)
}

// ask sends text on the session within the model timeout and decodes the
// JSON object embedded in the reply.
func (s *Service) ask(ctx context.Context, session domain.ChatSession, text string) (any, error) {
	log := observability.LoggerFromContext(ctx)

	callCtx, cancel := context.WithTimeout(ctx, s.modelTimeout)
	defer cancel()

	start := s.now()
	reply, err := session.SendMessage(callCtx, text)
	elapsed := s.now().Sub(start)

	if err != nil {
		switch {
		case errors.Is(err, context.DeadlineExceeded), errors.Is(callCtx.Err(), context.DeadlineExceeded):
			return nil, fmt.Errorf("%w after %s", domain.ErrProviderTimeout, s.modelTimeout)
		case errors.Is(err, domain.ErrProvider):
			return nil, err
		default:
			return nil, fmt.Errorf("%w: %w", domain.ErrProvider, err)
		}
	}

	log.Debug("model replied", "elapsed_ms", elapsed.Milliseconds(), "reply_bytes", len(reply))
	return extract.Decode(reply)
}

func (s *Service) logFallback(ctx context.Context, what string, err error) {
	log := observability.LoggerFromContext(ctx).With("kind", what, "error", err)
	if errors.Is(err, domain.ErrAIUnavailable) {
		log.Warn("AI not available, serving fallback")
		return
	}
	log.Error("generation failed, serving fallback")
}
