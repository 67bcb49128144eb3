package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/PabloGalante/planforge/internal/app/planner"
	"github.com/PabloGalante/planforge/internal/domain"
)

func TestFirstOptions(t *testing.T) {
	answers := firstOptions(planner.MockQuestions().Questions)

	assert.Len(t, answers, 5)
	assert.Equal(t, "Beginner", answers["q1"])
	assert.Equal(t, "Time", answers["q5"])

	answers = firstOptions([]domain.Question{{ID: "x"}})
	assert.Equal(t, "No preference", answers["x"])
}
