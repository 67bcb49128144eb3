// Package prompt renders the instruction text sent to the model.
package prompt

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
	"text/template"

	"github.com/PabloGalante/planforge/internal/domain"
)

// Intent selects which prompt to build.
type Intent string

const (
	IntentQuestions Intent = "QUESTIONS"
	IntentPlan      Intent = "PLAN"
)

var (
	ErrUnknownIntent = errors.New("unknown prompt intent")
	ErrPayloadType   = errors.New("payload does not match prompt intent")
)

var (
	questionsTmpl = template.Must(template.New("questions").Parse(questionsTemplate))
	planTmpl      = template.Must(template.New("plan").Parse(planTemplate))
)

// Build dispatches on intent. The payload must be a domain.QuestionRequest
// for IntentQuestions and a domain.PlanRequest for IntentPlan.
func Build(intent Intent, payload any) (string, error) {
	switch intent {
	case IntentQuestions:
		req, ok := payload.(domain.QuestionRequest)
		if !ok {
			return "", fmt.Errorf("%w: %s needs a question request, got %T", ErrPayloadType, intent, payload)
		}
		return Questions(req)
	case IntentPlan:
		req, ok := payload.(domain.PlanRequest)
		if !ok {
			return "", fmt.Errorf("%w: %s needs a plan request, got %T", ErrPayloadType, intent, payload)
		}
		return Plan(req)
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownIntent, intent)
	}
}

// Questions renders the clarifying-questions prompt.
func Questions(req domain.QuestionRequest) (string, error) {
	return render(questionsTmpl, req)
}

// Plan renders the plan prompt. Answers are flattened as id=answer pairs
// sorted by question id.
func Plan(req domain.PlanRequest) (string, error) {
	data := struct {
		domain.PlanRequest
		AnswersText string
	}{
		PlanRequest: req,
		AnswersText: FlattenAnswers(req.Answers),
	}
	return render(planTmpl, data)
}

// FlattenAnswers joins answers as "q1=a | q2=b".
func FlattenAnswers(answers map[string]string) string {
	parts := make([]string, 0, len(answers))
	for _, id := range slices.Sorted(maps.Keys(answers)) {
		parts = append(parts, id+"="+answers[id])
	}
	return strings.Join(parts, " | ")
}

func render(t *template.Template, data any) (string, error) {
	var b strings.Builder
	if err := t.Execute(&b, data); err != nil {
		return "", fmt.Errorf("render %s prompt: %w", t.Name(), err)
	}
	return b.String(), nil
}
