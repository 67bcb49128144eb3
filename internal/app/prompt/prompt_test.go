package prompt_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PabloGalante/planforge/internal/app/prompt"
	"github.com/PabloGalante/planforge/internal/domain"
)

var questionReq = domain.QuestionRequest{
	Idea:     "A habit tracker for remote teams",
	Domain:   domain.DomainTechProduct,
	Platform: domain.PlatformMobile,
}

var planReq = domain.PlanRequest{
	ProjectID: "proj-1",
	Idea:      "A habit tracker for remote teams",
	Domain:    domain.DomainTechProduct,
	Platform:  domain.PlatformWeb,
	Answers: map[string]string{
		"q2": "Small team",
		"q1": "Beginner",
		"q3": "Learning",
	},
}

func TestQuestionsPrompt(t *testing.T) {
	got, err := prompt.Build(prompt.IntentQuestions, questionReq)
	require.NoError(t, err)

	assert.Contains(t, got, "idea = A habit tracker for remote teams")
	assert.Contains(t, got, "domain = Tech Product")
	assert.Contains(t, got, "platform = mobile")
	assert.Contains(t, got, "EXACTLY 5 to 7 questions")
	assert.Contains(t, got, `"allowCustom": false`)
	assert.Contains(t, got, "MUST start with '{' and end with '}'")
	assert.NotContains(t, got, "answers =")
	assert.NotContains(t, got, "{{")
}

func TestPlanPrompt(t *testing.T) {
	got, err := prompt.Build(prompt.IntentPlan, planReq)
	require.NoError(t, err)

	assert.Contains(t, got, "answers = q1=Beginner | q2=Small team | q3=Learning")
	assert.Contains(t, got, `"domain": "Tech Product"`)
	assert.Contains(t, got, `"platform": "web"`)
	assert.Contains(t, got, `"future_backlog"`)
	assert.Contains(t, got, "No markdown")
	assert.NotContains(t, got, "allowCustom")
}

func TestPromptsAreDeterministic(t *testing.T) {
	first, err := prompt.Plan(planReq)
	require.NoError(t, err)

	for i := 0; i < 20; i++ {
		again, err := prompt.Plan(planReq)
		require.NoError(t, err)
		require.Equal(t, first, again)
	}
}

func TestBuildErrors(t *testing.T) {
	_, err := prompt.Build("SUMMARY", questionReq)
	assert.ErrorIs(t, err, prompt.ErrUnknownIntent)

	_, err = prompt.Build(prompt.IntentPlan, questionReq)
	assert.ErrorIs(t, err, prompt.ErrPayloadType)

	_, err = prompt.Build(prompt.IntentQuestions, &questionReq)
	assert.ErrorIs(t, err, prompt.ErrPayloadType)
}

func TestFlattenAnswers(t *testing.T) {
	assert.Equal(t, "", prompt.FlattenAnswers(nil))
	assert.Equal(t, "q1=Yes", prompt.FlattenAnswers(map[string]string{"q1": "Yes"}))

	got := prompt.FlattenAnswers(map[string]string{"b": "2", "a": "1", "c": "3"})
	assert.Equal(t, "a=1 | b=2 | c=3", got)
	assert.Equal(t, 2, strings.Count(got, " | "))
}
