package service

import (
	"anre_quiz_backend/internal/model"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssignBlocksWhenAbsent(t *testing.T) {
	questions := make([]QuestionPayload, 45)
	for i := range questions {
		questions[i].ID = uint(i + 1)
	}

	assignBlocks(questions, DefaultBlockSize)

	assert.Equal(t, uint(1), questions[0].Block)
	assert.Equal(t, uint(1), questions[19].Block)
	assert.Equal(t, uint(2), questions[20].Block)
	assert.Equal(t, uint(3), questions[44].Block)
}

func TestAssignBlocksKeepsExisting(t *testing.T) {
	questions := []QuestionPayload{
		{ID: 1, Block: 5},
		{ID: 2}, // partially blocked files are left alone
	}

	assignBlocks(questions, DefaultBlockSize)

	assert.Equal(t, uint(5), questions[0].Block)
	assert.Equal(t, uint(0), questions[1].Block)
}

func TestMergeQuestionPreservesEdits(t *testing.T) {
	q := model.Question{
		Subject:     "electrotehnica",
		QID:         1,
		BlockNumber: 1,
		Text:        "old text",
		Correct:     "b",
		Explanation: "community explanation",
	}
	payload := QuestionPayload{
		ID:          1,
		Question:    "new text",
		Options:     OptionSet{A: "1", B: "2", C: "3"},
		Correct:     strPtr("a"),
		Explanation: "file explanation",
		Block:       2,
	}

	changed := mergeQuestion(&q, payload)

	require.True(t, changed)
	// text, options and block always follow the file
	assert.Equal(t, "new text", q.Text)
	assert.Equal(t, "1", q.OptionA)
	assert.Equal(t, uint(2), q.BlockNumber)
	// populated correct/explanation survive re-import
	assert.Equal(t, "b", q.Correct)
	assert.Equal(t, "community explanation", q.Explanation)
}

func TestMergeQuestionFillsEmptyFields(t *testing.T) {
	q := model.Question{Subject: "electrotehnica", QID: 1, Text: "text"}
	payload := QuestionPayload{
		ID:          1,
		Question:    "text",
		Correct:     strPtr("c"),
		Explanation: "from file",
		Block:       1,
	}

	changed := mergeQuestion(&q, payload)

	require.True(t, changed)
	assert.Equal(t, "c", q.Correct)
	assert.Equal(t, "from file", q.Explanation)
}

func TestMergeQuestionNoChanges(t *testing.T) {
	q := model.Question{
		Subject:     "electrotehnica",
		QID:         1,
		BlockNumber: 1,
		Text:        "text",
		OptionA:     "1",
		OptionB:     "2",
		OptionC:     "3",
		Correct:     "a",
		Explanation: "done",
	}
	payload := QuestionPayload{
		ID:          1,
		Question:    "text",
		Options:     OptionSet{A: "1", B: "2", C: "3"},
		Correct:     strPtr("a"),
		Explanation: "done",
		Block:       1,
	}

	assert.False(t, mergeQuestion(&q, payload))
}

func TestPayloadModelRoundTrip(t *testing.T) {
	questions := []model.Question{
		{
			Subject:     "electrotehnica",
			QID:         1,
			BlockNumber: 1,
			Text:        "gradable",
			OptionA:     "1",
			OptionB:     "2",
			OptionC:     "3",
			Correct:     "a",
			Explanation: "why",
			ImageBase:   "qe1",
		},
		{
			Subject:     "electrotehnica",
			QID:         2,
			BlockNumber: 1,
			Text:        "ungradable",
			OptionA:     "1",
			OptionB:     "2",
			OptionC:     "3",
		},
	}

	for i := range questions {
		payload := payloadFromModel(&questions[i])

		restored := model.Question{Subject: "electrotehnica", QID: payload.ID}
		mergeQuestion(&restored, payload)
		if payload.ImageBase != nil {
			restored.ImageBase = *payload.ImageBase
		}

		assert.Equal(t, questions[i].QID, restored.QID)
		assert.Equal(t, questions[i].Text, restored.Text)
		assert.Equal(t, questions[i].OptionA, restored.OptionA)
		assert.Equal(t, questions[i].OptionB, restored.OptionB)
		assert.Equal(t, questions[i].OptionC, restored.OptionC)
		assert.Equal(t, questions[i].Correct, restored.Correct)
		assert.Equal(t, questions[i].Explanation, restored.Explanation)
		assert.Equal(t, questions[i].BlockNumber, restored.BlockNumber)
		assert.Equal(t, questions[i].ImageBase, restored.ImageBase)
	}
}

func TestInterchangeJSONShape(t *testing.T) {
	q := model.Question{
		Subject:     "electrotehnica",
		QID:         12,
		BlockNumber: 1,
		Text:        "Care este unitatea de măsură?",
		OptionA:     "volt",
		OptionB:     "amper",
		OptionC:     "ohm",
		Correct:     "b",
		Explanation: "explicație",
	}

	file := SubjectFile{
		Title:         "Electrotehnică",
		Subject:       "electrotehnica",
		BlockSize:     20,
		QuestionCount: 1,
		Questions:     []QuestionPayload{payloadFromModel(&q)},
	}

	data, err := json.Marshal(&file)
	require.NoError(t, err)

	var decoded SubjectFile
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, file, decoded)

	// field names are part of the interchange contract
	var generic map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &generic))
	for _, key := range []string{"title", "subject", "blockSize", "questionCount", "questions"} {
		assert.Contains(t, generic, key)
	}
	first := generic["questions"].([]interface{})[0].(map[string]interface{})
	for _, key := range []string{"id", "question", "options", "correct", "explanation", "block", "image_base"} {
		assert.Contains(t, first, key)
	}
	// ungradable questions serialize correct as null
	assert.Nil(t, payloadFromModel(&model.Question{QID: 1}).Correct)
}
