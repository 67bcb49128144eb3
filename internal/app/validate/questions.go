package validate

import (
	"fmt"

	"github.com/PabloGalante/planforge/internal/domain"
)

const (
	MinQuestions       = 5
	MaxQuestions       = 7
	MinCustomQuestions = 2
	MinOptions         = 3
	MaxOptions         = 5
)

// Questions validates a decoded questions response.
func Questions(raw any) (domain.QuestionsResponse, error) {
	root, ok := asObject(raw)
	if !ok {
		return domain.QuestionsResponse{}, ErrNotAnObject
	}

	items, ok := asArray(root["questions"])
	if !ok {
		return domain.QuestionsResponse{}, ErrQuestionsNotArray
	}
	if len(items) < MinQuestions || len(items) > MaxQuestions {
		return domain.QuestionsResponse{}, fmt.Errorf("%w: got %d", ErrQuestionCountOutOfRange, len(items))
	}

	custom := 0
	for _, item := range items {
		if obj, ok := asObject(item); ok && obj["allowCustom"] == true {
			custom++
		}
	}
	if custom < MinCustomQuestions {
		return domain.QuestionsResponse{}, fmt.Errorf("%w: got %d", ErrInsufficientCustomOptions, custom)
	}

	questions := make([]domain.Question, 0, len(items))
	for i, item := range items {
		q, err := question(item, i)
		if err != nil {
			return domain.QuestionsResponse{}, err
		}
		questions = append(questions, q)
	}

	remarks, ok := asObject(root["remarks"])
	if !ok {
		return domain.QuestionsResponse{}, ErrRemarksNotAnObject
	}

	return domain.QuestionsResponse{
		Questions: questions,
		Remarks: domain.Remarks{
			Viability:      str(remarks["viability"]),
			Complexity:     str(remarks["complexity"]),
			Recommendation: str(remarks["recommendation"]),
		},
	}, nil
}

func question(item any, index int) (domain.Question, error) {
	obj, ok := asObject(item)
	if !ok {
		return domain.Question{}, fmt.Errorf("%w: index %d is not an object", ErrMissingRequiredField, index)
	}

	id, idOK := obj["id"].(string)
	text, textOK := obj["question"].(string)
	options, optionsOK := asArray(obj["options"])
	if !idOK || !textOK || !optionsOK {
		return domain.Question{}, fmt.Errorf("%w: index %d", ErrMissingRequiredField, index)
	}
	if len(options) < MinOptions || len(options) > MaxOptions {
		return domain.Question{}, fmt.Errorf("%w: index %d has %d", ErrOptionCountOutOfRange, index, len(options))
	}

	return domain.Question{
		ID:          id,
		Question:    text,
		Options:     strList(options),
		AllowCustom: truthy(obj["allowCustom"]),
	}, nil
}
