// Package validate turns decoded model output into fully defaulted
// domain records. Structural violations fail; missing content defaults.
package validate

import (
	"errors"
	"fmt"
)

var ErrValidation = errors.New("validation failed")

var (
	ErrNotAnObject = fmt.Errorf("%w: response must be an object", ErrValidation)

	ErrQuestionsNotArray         = fmt.Errorf("%w: questions must be an array", ErrValidation)
	ErrQuestionCountOutOfRange   = fmt.Errorf("%w: must generate %d-%d questions", ErrValidation, MinQuestions, MaxQuestions)
	ErrInsufficientCustomOptions = fmt.Errorf("%w: at least %d questions must allow custom input", ErrValidation, MinCustomQuestions)
	ErrMissingRequiredField      = fmt.Errorf("%w: question missing required fields", ErrValidation)
	ErrOptionCountOutOfRange     = fmt.Errorf("%w: question must have %d-%d options", ErrValidation, MinOptions, MaxOptions)
	ErrRemarksNotAnObject        = fmt.Errorf("%w: remarks must be an object", ErrValidation)

	ErrMissingMetadata       = fmt.Errorf("%w: plan missing metadata", ErrValidation)
	ErrMissingOverview       = fmt.Errorf("%w: plan missing overview", ErrValidation)
	ErrMissingArchitecture   = fmt.Errorf("%w: plan missing architecture_design", ErrValidation)
	ErrTechStackNotArray     = fmt.Errorf("%w: tech_stack must be an array", ErrValidation)
	ErrRoadmapNotArray       = fmt.Errorf("%w: roadmap must be an array", ErrValidation)
	ErrTasksNotArray         = fmt.Errorf("%w: tasks must be an array", ErrValidation)
	ErrNextActionsNotArray   = fmt.Errorf("%w: next_actions must be an array", ErrValidation)
	ErrFutureBacklogNotArray = fmt.Errorf("%w: future_backlog must be an array", ErrValidation)
)
