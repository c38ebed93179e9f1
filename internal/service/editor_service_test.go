package service

import (
	"anre_quiz_backend/internal/model"
	"anre_quiz_backend/internal/util"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func editableQuestion() model.Question {
	return model.Question{
		Subject: "electrotehnica",
		QID:     1,
		Text:    "question",
		OptionA: "first",
		OptionB: "second",
		OptionC: "third",
	}
}

func TestApplyEditFillsMissingFields(t *testing.T) {
	q := editableQuestion()
	now := time.Now()

	err := ApplyEdit(&q, 7, false, EditRequest{
		Correct:     strPtr("b"),
		Explanation: strPtr("because"),
	}, now)

	require.NoError(t, err)
	assert.Equal(t, "b", q.Correct)
	assert.Equal(t, "because", q.Explanation)
	require.NotNil(t, q.EditedByID)
	assert.Equal(t, uint(7), *q.EditedByID)
	require.NotNil(t, q.EditedAt)
	assert.True(t, q.EditedAt.Equal(now))
}

func TestApplyEditLockedForNonPrivileged(t *testing.T) {
	q := editableQuestion()
	q.Correct = "a"
	q.Explanation = "done"
	before := q

	err := ApplyEdit(&q, 7, false, EditRequest{Explanation: strPtr("rewrite")}, time.Now())

	assert.ErrorIs(t, err, util.ErrQuestionLocked)
	assert.Equal(t, before, q)
}

func TestApplyEditStaleVersion(t *testing.T) {
	q := editableQuestion()
	edited := time.Now().Add(-time.Hour)
	q.EditedAt = &edited
	before := q

	err := ApplyEdit(&q, 7, false, EditRequest{
		Correct: strPtr("a"),
		Version: FormatVersion(&edited) + "x",
	}, time.Now())

	assert.ErrorIs(t, err, util.ErrStaleEdit)
	assert.Equal(t, before, q)
}

func TestApplyEditMatchingVersion(t *testing.T) {
	q := editableQuestion()
	edited := time.Now().Add(-time.Hour)
	q.EditedAt = &edited

	err := ApplyEdit(&q, 7, false, EditRequest{
		Correct: strPtr("a"),
		Version: FormatVersion(&edited),
	}, time.Now())

	require.NoError(t, err)
	assert.Equal(t, "a", q.Correct)
}

func TestApplyEditPrivilegedBypassesStale(t *testing.T) {
	q := editableQuestion()
	q.Correct = "a"
	q.Explanation = "old"
	edited := time.Now().Add(-time.Hour)
	q.EditedAt = &edited

	err := ApplyEdit(&q, 3, true, EditRequest{
		Explanation: strPtr("rewritten"),
		Version:     "2020-01-01T00:00:00Z",
	}, time.Now())

	require.NoError(t, err)
	assert.Equal(t, "rewritten", q.Explanation)
}

func TestApplyEditInvalidCorrectValue(t *testing.T) {
	for _, privileged := range []bool{false, true} {
		q := editableQuestion()
		before := q

		err := ApplyEdit(&q, 7, privileged, EditRequest{Correct: strPtr("d")}, time.Now())

		assert.ErrorIs(t, err, util.ErrInvalidCorrectValue, "privileged=%v", privileged)
		assert.Equal(t, before, q)
	}
}

func TestApplyEditCorrectIsWriteOnce(t *testing.T) {
	q := editableQuestion()
	q.Correct = "a" // explanation still empty, so the question stays editable

	err := ApplyEdit(&q, 7, false, EditRequest{
		Correct:     strPtr("b"),
		Explanation: strPtr("filled in"),
	}, time.Now())

	require.NoError(t, err)
	assert.Equal(t, "a", q.Correct, "non-privileged editors must not overwrite correct")
	assert.Equal(t, "filled in", q.Explanation)
}

func TestApplyEditPrivilegedMayClearCorrect(t *testing.T) {
	q := editableQuestion()
	q.Correct = "a"
	q.Explanation = "done"

	err := ApplyEdit(&q, 3, true, EditRequest{Correct: strPtr("")}, time.Now())

	require.NoError(t, err)
	assert.Equal(t, "", q.Correct)
}

func TestApplyEditImageBasePrivilegedOnly(t *testing.T) {
	q := editableQuestion()

	err := ApplyEdit(&q, 7, false, EditRequest{ImageBase: strPtr("qe99")}, time.Now())
	require.NoError(t, err)
	assert.Equal(t, "", q.ImageBase, "image base ignored for non-privileged editors")
	assert.Nil(t, q.EditedAt, "no accepted mutation, no stamp")

	err = ApplyEdit(&q, 3, true, EditRequest{ImageBase: strPtr("qe99")}, time.Now())
	require.NoError(t, err)
	assert.Equal(t, "qe99", q.ImageBase)
	assert.NotNil(t, q.EditedAt)
}

func TestApplyEditNoChangeNoStamp(t *testing.T) {
	q := editableQuestion()

	err := ApplyEdit(&q, 7, false, EditRequest{}, time.Now())

	require.NoError(t, err)
	assert.Nil(t, q.EditedAt)
	assert.Nil(t, q.EditedByID)
}

func TestFormatVersion(t *testing.T) {
	assert.Equal(t, "", FormatVersion(nil))

	ts := time.Date(2025, 3, 14, 9, 26, 53, 589793000, time.UTC)
	assert.Equal(t, "2025-03-14T09:26:53.589793Z", FormatVersion(&ts))
}

// Two collaborators racing on the same incomplete question: the second
// writer's version token no longer matches after the first write lands.
func TestOptimisticConcurrencyScenario(t *testing.T) {
	q := editableQuestion()
	staleToken := FormatVersion(q.EditedAt)

	first := time.Now()
	require.NoError(t, ApplyEdit(&q, 1, false, EditRequest{Correct: strPtr("a"), Version: staleToken}, first))

	err := ApplyEdit(&q, 2, false, EditRequest{Explanation: strPtr("late"), Version: FormatVersion(&first)}, time.Now())
	require.NoError(t, err, "a fresh token read after the first write must pass")

	q2 := editableQuestion()
	require.NoError(t, ApplyEdit(&q2, 1, false, EditRequest{Correct: strPtr("a")}, first))
	err = ApplyEdit(&q2, 2, false, EditRequest{Explanation: strPtr("late"), Version: "1999-01-01T00:00:00Z"}, time.Now())
	assert.ErrorIs(t, err, util.ErrStaleEdit)
}
