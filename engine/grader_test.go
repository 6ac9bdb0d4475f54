package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func twoQuestionExam() *Exam {
	return &Exam{
		ID:           1,
		Title:        "Placement Test",
		Duration:     30,
		PassingScore: 70,
		IsActive:     true,
		Questions: []Question{
			{ID: 1, Prompt: "Pick A", Options: []string{"A", "B", "C"}, Correct: []string{"A"}, Mode: ModeSingle},
			{ID: 2, Prompt: "Pick A and B", Options: []string{"A", "B", "C", "D"}, Correct: []string{"A", "B"}, Mode: ModeMultiple},
		},
	}
}

func TestGradeOrderIndependent(t *testing.T) {
	exam := twoQuestionExam()

	forward := map[uint]Answer{
		1: {Mode: ModeSingle, Values: []string{"A"}},
		2: {Mode: ModeMultiple, Values: []string{"A", "B"}},
	}
	reversed := map[uint]Answer{
		1: {Mode: ModeSingle, Values: []string{"A"}},
		2: {Mode: ModeMultiple, Values: []string{"B", "A"}},
	}

	scoreF, _, err := Grade(exam, forward)
	require.NoError(t, err)
	scoreR, _, err := Grade(exam, reversed)
	require.NoError(t, err)

	assert.Equal(t, 2, scoreF)
	assert.Equal(t, scoreF, scoreR)
}

func TestGradeUnansweredCountsAsIncorrect(t *testing.T) {
	exam := &Exam{ID: 3, PassingScore: 70}
	answers := map[uint]Answer{}
	for i := uint(1); i <= 10; i++ {
		exam.Questions = append(exam.Questions, Question{
			ID: i, Prompt: "Q", Options: []string{"A", "B"}, Correct: []string{"A"}, Mode: ModeSingle,
		})
		if i <= 7 {
			answers[i] = Answer{Mode: ModeSingle, Values: []string{"A"}}
		}
	}

	score, breakdown, err := Grade(exam, answers)
	require.NoError(t, err)

	assert.Equal(t, 7, score)
	assert.Len(t, breakdown, 10, "unanswered questions still count toward the total")
	assert.Equal(t, 70, Percentage(score, len(exam.Questions)))
}

func TestGradePassFailExample(t *testing.T) {
	exam := twoQuestionExam()

	// Both correct: 2/2, 100%, pass
	score, _, err := Grade(exam, map[uint]Answer{
		1: {Mode: ModeSingle, Values: []string{"A"}},
		2: {Mode: ModeMultiple, Values: []string{"B", "A"}},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, score)
	pct := Percentage(score, 2)
	assert.Equal(t, 100, pct)
	assert.GreaterOrEqual(t, pct, exam.PassingScore)

	// One correct: 1/2, 50%, fail, breakdown discloses the correct answer
	score, breakdown, err := Grade(exam, map[uint]Answer{
		1: {Mode: ModeSingle, Values: []string{"A"}},
		2: {Mode: ModeMultiple, Values: []string{"C"}},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, score)
	pct = Percentage(score, 2)
	assert.Equal(t, 50, pct)
	assert.Less(t, pct, exam.PassingScore)

	require.Len(t, breakdown, 2)
	assert.True(t, breakdown[0].IsCorrect)
	assert.False(t, breakdown[1].IsCorrect)
	assert.ElementsMatch(t, []string{"A", "B"}, breakdown[1].CorrectAnswer)
	assert.Equal(t, []string{"C"}, breakdown[1].UserAnswer)
}

func TestGradeDuplicateSelectionsIgnored(t *testing.T) {
	exam := twoQuestionExam()

	score, _, err := Grade(exam, map[uint]Answer{
		2: {Mode: ModeMultiple, Values: []string{"A", "B", "A"}},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, score)
}

func TestGradeUnknownQuestionIsFatal(t *testing.T) {
	exam := twoQuestionExam()

	_, _, err := Grade(exam, map[uint]Answer{
		99: {Mode: ModeSingle, Values: []string{"A"}},
	})
	require.Error(t, err)
	assert.True(t, IsDataIntegrity(err))
}

func TestGradeEmptyExamIsFatal(t *testing.T) {
	_, _, err := Grade(&Exam{ID: 1}, nil)
	require.Error(t, err)
	assert.True(t, IsValidation(err))
}

func TestPercentageRoundsHalfUp(t *testing.T) {
	assert.Equal(t, 33, Percentage(1, 3))
	assert.Equal(t, 67, Percentage(2, 3))
	assert.Equal(t, 13, Percentage(1, 8)) // 12.5 rounds up
	assert.Equal(t, 0, Percentage(0, 0))
}

func TestValidateQuestion(t *testing.T) {
	assert.NoError(t, ValidateQuestion([]string{"A", "B"}, []string{"A"}, ModeSingle))
	assert.NoError(t, ValidateQuestion([]string{"A", "B", "C"}, []string{"A", "C"}, ModeMultiple))

	cases := []struct {
		name    string
		options []string
		correct []string
		mode    string
	}{
		{"bad mode", []string{"A", "B"}, []string{"A"}, "either"},
		{"too few options", []string{"A"}, []string{"A"}, ModeSingle},
		{"empty correct set", []string{"A", "B"}, nil, ModeSingle},
		{"single with two correct", []string{"A", "B"}, []string{"A", "B"}, ModeSingle},
		{"correct not an option", []string{"A", "B"}, []string{"Z"}, ModeSingle},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateQuestion(tc.options, tc.correct, tc.mode)
			require.Error(t, err)
			assert.True(t, IsValidation(err))
		})
	}
}

func TestValidateExamForStart(t *testing.T) {
	exam := twoQuestionExam()
	assert.NoError(t, ValidateExamForStart(exam))

	inactive := twoQuestionExam()
	inactive.IsActive = false
	assert.True(t, IsValidation(ValidateExamForStart(inactive)))

	zero := twoQuestionExam()
	zero.Duration = 0
	assert.True(t, IsValidation(ValidateExamForStart(zero)))

	long := twoQuestionExam()
	long.Duration = 181
	assert.True(t, IsValidation(ValidateExamForStart(long)))

	empty := twoQuestionExam()
	empty.Questions = nil
	assert.True(t, IsValidation(ValidateExamForStart(empty)))
}
