package service

import (
	"anre_quiz_backend/internal/model"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func question(qid uint, correct string) model.Question {
	return model.Question{
		QID:     qid,
		Text:    "question",
		OptionA: "first",
		OptionB: "second",
		OptionC: "third",
		Correct: correct,
	}
}

func TestGradeBlockEmpty(t *testing.T) {
	outcome := GradeBlock(nil, nil)
	assert.Equal(t, uint(0), outcome.Score)
	assert.Equal(t, uint(0), outcome.Total)
	assert.Equal(t, 0.0, outcome.Percentage)
	assert.Empty(t, outcome.Results)
}

func TestGradeBlockScoring(t *testing.T) {
	questions := []model.Question{
		question(1, "a"),
		question(2, "b"),
		question(3, "c"),
	}
	answers := map[uint]string{1: "a", 2: "x", 3: "c"}

	outcome := GradeBlock(questions, answers)

	assert.Equal(t, uint(2), outcome.Score)
	assert.Equal(t, uint(3), outcome.Total)
	assert.InDelta(t, 66.666, outcome.Percentage, 0.01)

	require.Len(t, outcome.Results, 3)
	require.NotNil(t, outcome.Results[0].IsCorrect)
	assert.True(t, *outcome.Results[0].IsCorrect)
	require.NotNil(t, outcome.Results[1].IsCorrect)
	assert.False(t, *outcome.Results[1].IsCorrect)
	require.NotNil(t, outcome.Results[2].IsCorrect)
	assert.True(t, *outcome.Results[2].IsCorrect)
}

func TestGradeBlockUngradableQuestion(t *testing.T) {
	questions := []model.Question{
		question(1, "a"),
		question(2, ""), // no correct answer on record yet
	}
	answers := map[uint]string{1: "a", 2: "b"}

	outcome := GradeBlock(questions, answers)

	assert.Equal(t, uint(1), outcome.Score)
	assert.Equal(t, uint(1), outcome.Total)
	assert.Equal(t, 100.0, outcome.Percentage)

	require.Len(t, outcome.Results, 2)
	assert.Nil(t, outcome.Results[1].IsCorrect)
	assert.Equal(t, "b", outcome.Results[1].UserAnswer)
}

func TestGradeBlockAllUngradable(t *testing.T) {
	questions := []model.Question{question(1, ""), question(2, "")}

	outcome := GradeBlock(questions, map[uint]string{1: "a"})

	assert.Equal(t, uint(0), outcome.Total)
	assert.Equal(t, 0.0, outcome.Percentage)
}

func TestGradeBlockMissingAnswerCountsWrong(t *testing.T) {
	questions := []model.Question{question(1, "a")}

	outcome := GradeBlock(questions, map[uint]string{})

	assert.Equal(t, uint(0), outcome.Score)
	assert.Equal(t, uint(1), outcome.Total)
	require.NotNil(t, outcome.Results[0].IsCorrect)
	assert.False(t, *outcome.Results[0].IsCorrect)
}

func TestGradeBlockOrdersByQID(t *testing.T) {
	questions := []model.Question{question(30, "a"), question(10, "a"), question(20, "a")}

	outcome := GradeBlock(questions, nil)

	require.Len(t, outcome.Results, 3)
	assert.Equal(t, uint(10), outcome.Results[0].QID)
	assert.Equal(t, uint(20), outcome.Results[1].QID)
	assert.Equal(t, uint(30), outcome.Results[2].QID)
}

func TestBlockColor(t *testing.T) {
	tests := []struct {
		name    string
		attempt *model.BlockAttempt
		want    string
	}{
		{"never attempted", nil, BlockWhite},
		{"perfect", &model.BlockAttempt{Score: 20, Total: 20}, BlockGreen},
		{"close", &model.BlockAttempt{Score: 18, Total: 20}, BlockYellow},
		{"failing", &model.BlockAttempt{Score: 10, Total: 20}, BlockRed},
		{"empty block", &model.BlockAttempt{Score: 0, Total: 0}, BlockGreen},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, blockColor(tt.attempt))
		})
	}
}
