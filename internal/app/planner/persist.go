package planner

import (
	"context"
	"encoding/json"

	"github.com/PabloGalante/planforge/internal/domain"
	"github.com/PabloGalante/planforge/internal/observability"
)

// ProjectsCollection holds one document per project, keyed by project id.
const ProjectsCollection = "projects"

// saveQuestions records the served questions on the project document.
// Failures are logged and never reach the caller.
func (s *Service) saveQuestions(ctx context.Context, projectID domain.ProjectID, userID domain.UserID, resp domain.QuestionsResponse) {
	now := s.now().UTC()

	questions := make([]any, 0, len(resp.Questions))
	for _, q := range resp.Questions {
		questions = append(questions, map[string]any{
			"id":          q.ID,
			"question":    q.Question,
			"options":     q.Options,
			"allowCustom": q.AllowCustom,
			"created_at":  now,
		})
	}

	s.upsertProject(ctx, projectID, map[string]any{
		"questions": questions,
		"remarks": map[string]any{
			"viability":      resp.Remarks.Viability,
			"complexity":     resp.Remarks.Complexity,
			"recommendation": resp.Remarks.Recommendation,
		},
		"user_id":    string(userID),
		"updated_at": now,
	})
}

// savePlan records the served plan on the project document.
func (s *Service) savePlan(ctx context.Context, projectID domain.ProjectID, userID domain.UserID, resp domain.PlanResponse) {
	plan, err := toFields(resp)
	if err != nil {
		observability.LoggerFromContext(ctx).Error("encode plan for storage", "error", err)
		return
	}

	now := s.now().UTC()
	s.upsertProject(ctx, projectID, map[string]any{
		"plan":              plan,
		"plan_generated_at": now,
		"user_id":           string(userID),
		"updated_at":        now,
	})
}

func (s *Service) upsertProject(ctx context.Context, projectID domain.ProjectID, fields map[string]any) {
	log := observability.LoggerFromContext(ctx)
	if s.store == nil {
		log.Warn("no store configured, skipping persistence")
		return
	}

	// The response has already been decided; a cancelled request must not
	// lose the write.
	storeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.storeTimeout)
	defer cancel()

	if err := s.store.Upsert(storeCtx, ProjectsCollection, string(projectID), fields); err != nil {
		log.Error("persist project", "error", err)
		return
	}
	log.Debug("project persisted", "fields", len(fields))
}

// toFields converts v into plain maps and slices through its JSON encoding,
// so stored documents use the same keys as the API.
func toFields(v any) (map[string]any, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out map[string]any
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, err
	}
	return out, nil
}
