package engine

import (
	"fmt"
	"testing"
	"time"

	examModels "examportal/models/exam"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seededSessionRecord(t *testing.T, store *GormStore, examID uint, publicID string) *SessionRecord {
	t.Helper()
	rec := &SessionRecord{
		PublicID:      publicID,
		UserID:        1,
		ExamID:        examID,
		QuestionOrder: []uint{1, 2},
		OptionOrders:  map[uint][]string{1: {"B", "A"}},
		DeadlineAt:    time.Now().Add(30 * time.Minute),
		Answers:       map[uint]Answer{},
		Status:        examModels.StatusActive,
	}
	require.NoError(t, store.CreateSession(rec))
	return rec
}

func TestFinalizeSessionWinsOnlyOnce(t *testing.T) {
	db := newTestDB(t)
	store := NewGormStore(db)
	examID := seedExam(t, db, 30, true, defaultSeeds())
	rec := seededSessionRecord(t, store, examID, "cas-session")

	result := &Result{
		UserID:         rec.UserID,
		ExamID:         rec.ExamID,
		SessionID:      rec.ID,
		Score:          1,
		TotalQuestions: 2,
		Percentage:     50,
		SubmittedAt:    time.Now(),
	}

	won, err := store.FinalizeSession(rec.PublicID, examModels.StatusSubmitted, result)
	require.NoError(t, err)
	assert.True(t, won)
	assert.NotZero(t, result.ID)

	// The loser's result write is rolled back
	again := &Result{UserID: rec.UserID, ExamID: rec.ExamID, SessionID: rec.ID, SubmittedAt: time.Now()}
	won, err = store.FinalizeSession(rec.PublicID, examModels.StatusExpired, again)
	require.NoError(t, err)
	assert.False(t, won)

	var count int64
	require.NoError(t, db.Model(&examModels.Result{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	sess, err := store.FetchSession(rec.PublicID)
	require.NoError(t, err)
	assert.Equal(t, examModels.StatusSubmitted, sess.Status)
	require.NotNil(t, sess.ResultID)
	assert.Equal(t, result.ID, *sess.ResultID)
}

func TestSaveAnswersRequiresActiveSession(t *testing.T) {
	db := newTestDB(t)
	store := NewGormStore(db)
	examID := seedExam(t, db, 30, true, defaultSeeds())
	rec := seededSessionRecord(t, store, examID, "answers-session")

	answers := map[uint]Answer{1: {Mode: ModeSingle, Values: []string{"A"}}}
	require.NoError(t, store.SaveAnswers(rec.PublicID, answers))

	result := &Result{UserID: 1, ExamID: examID, SessionID: rec.ID, SubmittedAt: time.Now()}
	won, err := store.FinalizeSession(rec.PublicID, examModels.StatusSubmitted, result)
	require.NoError(t, err)
	require.True(t, won)

	err = store.SaveAnswers(rec.PublicID, answers)
	require.Error(t, err)
	assert.True(t, IsInvalidState(err))
}

func TestSessionRoundTripPreservesDeadlineAndAnswers(t *testing.T) {
	db := newTestDB(t)
	store := NewGormStore(db)
	examID := seedExam(t, db, 30, true, defaultSeeds())

	deadline := time.Now().Add(45 * time.Minute).Truncate(time.Second)
	rec := &SessionRecord{
		PublicID:      "round-trip",
		UserID:        3,
		ExamID:        examID,
		QuestionOrder: []uint{2, 1},
		OptionOrders:  map[uint][]string{2: {"D", "A", "C", "B"}},
		DeadlineAt:    deadline,
		Answers:       map[uint]Answer{2: {Mode: ModeMultiple, Values: []string{"B", "A"}}},
		Status:        examModels.StatusActive,
	}
	require.NoError(t, store.CreateSession(rec))

	got, err := store.FetchSession("round-trip")
	require.NoError(t, err)
	assert.Equal(t, []uint{2, 1}, got.QuestionOrder)
	assert.Equal(t, []string{"D", "A", "C", "B"}, got.OptionOrders[2])
	assert.True(t, got.DeadlineAt.Equal(deadline), "deadline must survive verbatim as an absolute timestamp")
	assert.ElementsMatch(t, []string{"A", "B"}, got.Answers[2].Values)
}

func TestFetchNotFound(t *testing.T) {
	db := newTestDB(t)
	store := NewGormStore(db)

	_, err := store.FetchExam(99)
	assert.True(t, IsNotFound(err))

	_, err = store.FetchSession("missing")
	assert.True(t, IsNotFound(err))

	_, err = store.FetchResult(99)
	assert.True(t, IsNotFound(err))

	_, err = store.FetchLatestResult(99)
	assert.True(t, IsNotFound(err))
}

func TestFetchActiveExamsExcludesQuestionsAndInactive(t *testing.T) {
	db := newTestDB(t)
	store := NewGormStore(db)
	activeID := seedExam(t, db, 30, true, defaultSeeds())
	seedExam(t, db, 30, false, defaultSeeds())

	summaries, err := store.FetchActiveExams()
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.Equal(t, activeID, summaries[0].ID)
	assert.Equal(t, 2, summaries[0].QuestionCount)
}

func TestFetchLatestResultOrdersBySubmission(t *testing.T) {
	db := newTestDB(t)
	store := NewGormStore(db)
	examID := seedExam(t, db, 30, true, defaultSeeds())

	base := time.Now().Add(-time.Hour)
	for i, pct := range []int{40, 90} {
		rec := seededSessionRecord(t, store, examID, fmt.Sprintf("history-%d", i))
		result := &Result{
			UserID:         7,
			ExamID:         examID,
			Score:          pct / 50,
			TotalQuestions: 2,
			Percentage:     pct,
			Passed:         pct >= 70,
			SubmittedAt:    base.Add(time.Duration(i) * time.Minute),
		}
		won, err := store.FinalizeSession(rec.PublicID, examModels.StatusSubmitted, result)
		require.NoError(t, err)
		require.True(t, won)
	}

	latest, err := store.FetchLatestResult(7)
	require.NoError(t, err)
	assert.Equal(t, 90, latest.Percentage)

	all, err := store.FetchResultsForUser(7)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, 90, all[0].Percentage)
	assert.Equal(t, 40, all[1].Percentage)
}
