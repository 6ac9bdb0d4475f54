package engine

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	examModels "examportal/models/exam"

	"gorm.io/gorm"
)

// GormStore implements Store on top of a GORM database handle.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore returns a Store backed by db.
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// FetchExam loads an exam with its questions resolved in canonical order.
func (s *GormStore) FetchExam(id uint) (*Exam, error) {
	var row examModels.Exam
	if err := s.db.Where("id = ? AND is_deleted = ?", id, false).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Resource: "exam", ID: strconv.Itoa(int(id))}
		}
		return nil, err
	}

	var links []examModels.ExamQuestion
	if err := s.db.Where("exam_id = ?", id).Order("position asc").Find(&links).Error; err != nil {
		return nil, err
	}

	questions := make([]Question, 0, len(links))
	for _, link := range links {
		var q examModels.Question
		if err := s.db.Where("id = ? AND is_deleted = ?", link.QuestionID, false).First(&q).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, &NotFoundError{Resource: "question", ID: strconv.Itoa(int(link.QuestionID))}
			}
			return nil, err
		}
		var options, correct []string
		if err := json.Unmarshal(q.Options, &options); err != nil {
			return nil, fmt.Errorf("question %d options: %w", q.ID, err)
		}
		if err := json.Unmarshal(q.CorrectAnswers, &correct); err != nil {
			return nil, fmt.Errorf("question %d correct answers: %w", q.ID, err)
		}
		questions = append(questions, Question{
			ID:      q.ID,
			Prompt:  q.Prompt,
			Options: options,
			Correct: correct,
			Mode:    q.Mode,
		})
	}

	return &Exam{
		ID:           row.ID,
		Title:        row.Title,
		Description:  row.Description,
		Duration:     row.Duration,
		PassingScore: row.PassingScore,
		IsActive:     row.IsActive,
		Questions:    questions,
	}, nil
}

// FetchActiveExams lists active exams without their questions.
func (s *GormStore) FetchActiveExams() ([]ExamSummary, error) {
	var rows []examModels.Exam
	if err := s.db.Where("is_active = ? AND is_deleted = ?", true, false).Order("id asc").Find(&rows).Error; err != nil {
		return nil, err
	}

	summaries := make([]ExamSummary, 0, len(rows))
	for _, row := range rows {
		var count int64
		if err := s.db.Model(&examModels.ExamQuestion{}).Where("exam_id = ?", row.ID).Count(&count).Error; err != nil {
			return nil, err
		}
		summaries = append(summaries, ExamSummary{
			ID:            row.ID,
			Title:         row.Title,
			Description:   row.Description,
			Duration:      row.Duration,
			PassingScore:  row.PassingScore,
			QuestionCount: int(count),
		})
	}
	return summaries, nil
}

// CreateSession persists a freshly randomized session.
func (s *GormStore) CreateSession(rec *SessionRecord) error {
	row, err := sessionRow(rec)
	if err != nil {
		return err
	}
	if err := s.db.Create(row).Error; err != nil {
		return err
	}
	rec.ID = row.ID
	return nil
}

// FetchSession loads a session by its public ID.
func (s *GormStore) FetchSession(publicID string) (*SessionRecord, error) {
	var row examModels.Session
	if err := s.db.Where("public_id = ?", publicID).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Resource: "session", ID: publicID}
		}
		return nil, err
	}
	return sessionRecord(&row)
}

// FetchExpiredActiveSessions returns sessions still marked ACTIVE whose
// deadline has passed. The expiry sweep grades each of them.
func (s *GormStore) FetchExpiredActiveSessions(now time.Time) ([]SessionRecord, error) {
	var rows []examModels.Session
	if err := s.db.Where("status = ? AND deadline_at <= ?", examModels.StatusActive, now).Find(&rows).Error; err != nil {
		return nil, err
	}
	records := make([]SessionRecord, 0, len(rows))
	for i := range rows {
		rec, err := sessionRecord(&rows[i])
		if err != nil {
			return nil, err
		}
		records = append(records, *rec)
	}
	return records, nil
}

// SaveAnswers persists the current answer map for an ACTIVE session.
func (s *GormStore) SaveAnswers(publicID string, answers map[uint]Answer) error {
	raw, err := json.Marshal(answers)
	if err != nil {
		return err
	}
	res := s.db.Model(&examModels.Session{}).
		Where("public_id = ? AND status = ?", publicID, examModels.StatusActive).
		Update("answers", raw)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return &InvalidStateError{Op: "answer", Status: "not active"}
	}
	return nil
}

// FinalizeSession writes the result and flips the session out of ACTIVE in
// one transaction. The conditional update is the at-most-once guard: of two
// racing submitters only one sees a row change, and the loser's result write
// is rolled back.
func (s *GormStore) FinalizeSession(publicID, finalStatus string, result *Result) (bool, error) {
	won := false
	err := s.db.Transaction(func(tx *gorm.DB) error {
		breakdown, err := json.Marshal(result.Breakdown)
		if err != nil {
			return err
		}
		row := examModels.Result{
			UserID:         result.UserID,
			ExamID:         result.ExamID,
			SessionID:      result.SessionID,
			Score:          result.Score,
			TotalQuestions: result.TotalQuestions,
			Percentage:     result.Percentage,
			Passed:         result.Passed,
			Breakdown:      breakdown,
			SubmittedAt:    result.SubmittedAt,
		}
		if err := tx.Create(&row).Error; err != nil {
			return err
		}

		res := tx.Model(&examModels.Session{}).
			Where("public_id = ? AND status = ?", publicID, examModels.StatusActive).
			Updates(map[string]interface{}{"status": finalStatus, "result_id": row.ID})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			// Lost the race: another caller already finalized this session.
			return gorm.ErrRecordNotFound
		}

		result.ID = row.ID
		won = true
		return nil
	})
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}
	return won, nil
}

// FetchResult loads a result by ID.
func (s *GormStore) FetchResult(id uint) (*Result, error) {
	var row examModels.Result
	if err := s.db.Where("id = ?", id).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Resource: "result", ID: strconv.Itoa(int(id))}
		}
		return nil, err
	}
	return resultRecord(&row)
}

// FetchLatestResult returns the user's most recent result, or a
// NotFoundError if the user has none.
func (s *GormStore) FetchLatestResult(userID uint) (*Result, error) {
	var row examModels.Result
	if err := s.db.Where("user_id = ?", userID).Order("submitted_at desc").First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Resource: "result", ID: "latest"}
		}
		return nil, err
	}
	return resultRecord(&row)
}

// FetchResultsForUser returns the user's results, newest first.
func (s *GormStore) FetchResultsForUser(userID uint) ([]Result, error) {
	var rows []examModels.Result
	if err := s.db.Where("user_id = ?", userID).Order("submitted_at desc").Find(&rows).Error; err != nil {
		return nil, err
	}
	results := make([]Result, 0, len(rows))
	for i := range rows {
		rec, err := resultRecord(&rows[i])
		if err != nil {
			return nil, err
		}
		results = append(results, *rec)
	}
	return results, nil
}

func sessionRow(rec *SessionRecord) (*examModels.Session, error) {
	order, err := json.Marshal(rec.QuestionOrder)
	if err != nil {
		return nil, err
	}
	options, err := json.Marshal(rec.OptionOrders)
	if err != nil {
		return nil, err
	}
	answers, err := json.Marshal(rec.Answers)
	if err != nil {
		return nil, err
	}
	return &examModels.Session{
		PublicID:      rec.PublicID,
		UserID:        rec.UserID,
		ExamID:        rec.ExamID,
		QuestionOrder: order,
		OptionOrders:  options,
		DeadlineAt:    rec.DeadlineAt,
		Answers:       answers,
		Status:        rec.Status,
		ResultID:      rec.ResultID,
	}, nil
}

func sessionRecord(row *examModels.Session) (*SessionRecord, error) {
	rec := &SessionRecord{
		ID:         row.ID,
		PublicID:   row.PublicID,
		UserID:     row.UserID,
		ExamID:     row.ExamID,
		DeadlineAt: row.DeadlineAt,
		Status:     row.Status,
		ResultID:   row.ResultID,
	}
	if len(row.QuestionOrder) > 0 {
		if err := json.Unmarshal(row.QuestionOrder, &rec.QuestionOrder); err != nil {
			return nil, err
		}
	}
	if len(row.OptionOrders) > 0 {
		if err := json.Unmarshal(row.OptionOrders, &rec.OptionOrders); err != nil {
			return nil, err
		}
	}
	rec.Answers = make(map[uint]Answer)
	if len(row.Answers) > 0 {
		if err := json.Unmarshal(row.Answers, &rec.Answers); err != nil {
			return nil, err
		}
	}
	return rec, nil
}

func resultRecord(row *examModels.Result) (*Result, error) {
	rec := &Result{
		ID:             row.ID,
		UserID:         row.UserID,
		ExamID:         row.ExamID,
		SessionID:      row.SessionID,
		Score:          row.Score,
		TotalQuestions: row.TotalQuestions,
		Percentage:     row.Percentage,
		Passed:         row.Passed,
		SubmittedAt:    row.SubmittedAt,
	}
	if len(row.Breakdown) > 0 {
		if err := json.Unmarshal(row.Breakdown, &rec.Breakdown); err != nil {
			return nil, err
		}
	}
	return rec, nil
}
