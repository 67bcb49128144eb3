package planner_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PabloGalante/planforge/internal/adapters/storage/memory"
	"github.com/PabloGalante/planforge/internal/app/planner"
	"github.com/PabloGalante/planforge/internal/domain"
)

func TestProjectsAreScopedToOwner(t *testing.T) {
	store := memory.NewDocumentStore()
	svc, _ := newService(t, nil, store, planner.WithAIAvailable(false))
	ctx := context.Background()

	svc.GenerateQuestions(ctx, planner.QuestionsInput{Request: questionRequest(), ProjectID: "p1", UserID: "alice"})
	svc.GeneratePlan(ctx, planner.PlanInput{Request: planRequest(), UserID: "alice"})
	svc.GenerateQuestions(ctx, planner.QuestionsInput{Request: questionRequest(), ProjectID: "p2", UserID: "bob"})

	p, err := svc.GetProject(ctx, "p1", "alice")
	require.NoError(t, err)
	assert.Equal(t, domain.UserID("alice"), p.UserID)
	assert.Contains(t, p.Data, "questions")
	assert.Contains(t, p.Data, "plan")

	_, err = svc.GetProject(ctx, "p1", "bob")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = svc.GetProject(ctx, "missing", "alice")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	list, err := svc.ListProjects(ctx, "bob", 0)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, domain.ProjectID("p2"), list[0].ID)

	assert.NoError(t, svc.Ready(ctx))
}
