package engine

import (
	"log"
	"sync"
	"time"

	examModels "examportal/models/exam"

	"github.com/google/uuid"
)

// SessionQuestion is a question as presented to the client: prompt, shuffled
// options and mode only. Correct answers never leave the server before
// grading.
type SessionQuestion struct {
	ID      uint     `json:"id"`
	Prompt  string   `json:"prompt"`
	Options []string `json:"options"`
	Mode    string   `json:"mode"`
}

// StartedSession is the response to opening a session.
type StartedSession struct {
	SessionID  string            `json:"session_id"`
	ExamID     uint              `json:"exam_id"`
	Title      string            `json:"title"`
	Duration   int               `json:"duration"`
	DeadlineAt time.Time         `json:"deadline_at"`
	Questions  []SessionQuestion `json:"questions"`
}

// Manager orchestrates the session lifecycle: start validates and
// randomizes, answers flow through per-session collectors, and submission
// (explicit or expiry-triggered) grades through the store's guarded status
// transition.
type Manager struct {
	store Store
	rnd   *Randomizer

	mu         sync.Mutex
	collectors map[string]*Collector

	now func() time.Time
}

// NewManager returns a Manager over the given store and randomizer.
func NewManager(store Store, rnd *Randomizer) *Manager {
	return &Manager{
		store:      store,
		rnd:        rnd,
		collectors: make(map[string]*Collector),
		now:        time.Now,
	}
}

// ListActiveExams returns the exams a user may start, without questions.
func (m *Manager) ListActiveExams() ([]ExamSummary, error) {
	return m.store.FetchActiveExams()
}

// Start opens a session for the user on the given exam. The exam must be
// active with a duration between 1 and 180 minutes; validation runs before
// any randomization. Question order and every question's option order are
// shuffled independently, and the absolute deadline is persisted with the
// session.
func (m *Manager) Start(userID, examID uint) (*StartedSession, error) {
	exam, err := m.store.FetchExam(examID)
	if err != nil {
		return nil, err
	}
	if err := ValidateExamForStart(exam); err != nil {
		return nil, err
	}

	byID := make(map[uint]Question, len(exam.Questions))
	ids := make([]uint, 0, len(exam.Questions))
	for _, q := range exam.Questions {
		byID[q.ID] = q
		ids = append(ids, q.ID)
	}

	order := m.rnd.ShuffleIDs(ids)
	optionOrders := make(map[uint][]string, len(order))
	for _, id := range order {
		optionOrders[id] = m.rnd.ShuffleStrings(byID[id].Options)
	}

	now := m.now()
	rec := &SessionRecord{
		PublicID:      uuid.NewString(),
		UserID:        userID,
		ExamID:        examID,
		QuestionOrder: order,
		OptionOrders:  optionOrders,
		DeadlineAt:    Deadline(now, exam.Duration),
		Answers:       map[uint]Answer{},
		Status:        examModels.StatusActive,
	}
	if err := m.store.CreateSession(rec); err != nil {
		return nil, err
	}

	m.mu.Lock()
	m.collectors[rec.PublicID] = NewCollector(nil)
	m.mu.Unlock()

	questions := make([]SessionQuestion, 0, len(order))
	for _, id := range order {
		q := byID[id]
		questions = append(questions, SessionQuestion{
			ID:      q.ID,
			Prompt:  q.Prompt,
			Options: optionOrders[id],
			Mode:    q.Mode,
		})
	}

	return &StartedSession{
		SessionID:  rec.PublicID,
		ExamID:     examID,
		Title:      exam.Title,
		Duration:   exam.Duration,
		DeadlineAt: rec.DeadlineAt,
		Questions:  questions,
	}, nil
}

// Remaining returns the time left in a session, clamped at zero.
func (m *Manager) Remaining(sessionID string) (time.Duration, error) {
	sess, err := m.store.FetchSession(sessionID)
	if err != nil {
		return 0, err
	}
	return Remaining(sess.DeadlineAt, m.now()), nil
}

// RecordAnswer records a selection for one question of an active session.
// Single-mode questions overwrite, multiple-mode questions toggle. Recording
// against a session whose deadline has passed finalizes it as expired.
func (m *Manager) RecordAnswer(sessionID string, questionID uint, value string) error {
	sess, err := m.store.FetchSession(sessionID)
	if err != nil {
		return err
	}
	if sess.Status != examModels.StatusActive {
		return &InvalidStateError{Op: "answer", Status: sess.Status}
	}
	if Expired(sess.DeadlineAt, m.now()) {
		// The deadline beat the answer; grade whatever was collected so far.
		if _, _, err := m.SubmitExpired(sessionID); err != nil && !IsInvalidState(err) {
			return err
		}
		return &InvalidStateError{Op: "answer", Status: examModels.StatusExpired}
	}

	exam, err := m.store.FetchExam(sess.ExamID)
	if err != nil {
		return err
	}
	var question *Question
	for i := range exam.Questions {
		if exam.Questions[i].ID == questionID {
			question = &exam.Questions[i]
			break
		}
	}
	if question == nil {
		return &DataIntegrityError{Reason: "question is not part of this session's exam"}
	}

	collector := m.collector(sess)
	collector.Select(questionID, question.Mode, value)
	return m.store.SaveAnswers(sessionID, collector.All())
}

// Submit grades a session on explicit user request. A session past its
// deadline is finalized as expired instead; a session already graded returns
// the existing result rather than grading twice. The boolean reports whether
// this call performed the grading, as opposed to handing back a result some
// other trigger already produced.
func (m *Manager) Submit(sessionID string) (*Result, bool, error) {
	return m.finalize(sessionID, examModels.StatusSubmitted)
}

// SubmitExpired grades a session whose deadline has passed, using whatever
// answers were collected. Same contract as Submit with a terminal EXPIRED
// status.
func (m *Manager) SubmitExpired(sessionID string) (*Result, bool, error) {
	return m.finalize(sessionID, examModels.StatusExpired)
}

// SweepExpired finalizes every active session whose deadline has passed and
// returns the freshly produced results. Per-session failures are logged and
// skipped so one broken session cannot stall expiry for everyone else.
func (m *Manager) SweepExpired() ([]*Result, error) {
	sessions, err := m.store.FetchExpiredActiveSessions(m.now())
	if err != nil {
		return nil, err
	}
	var results []*Result
	for i := range sessions {
		result, won, err := m.SubmitExpired(sessions[i].PublicID)
		if err != nil {
			// A racing explicit submit already finalized the session.
			if !IsInvalidState(err) {
				log.Printf("Expired session %s not graded: %v", sessions[i].PublicID, err)
			}
			continue
		}
		if won {
			results = append(results, result)
		}
	}
	return results, nil
}

// GetSessionOwner returns the ID of the user owning a session.
func (m *Manager) GetSessionOwner(sessionID string) (uint, error) {
	sess, err := m.store.FetchSession(sessionID)
	if err != nil {
		return 0, err
	}
	return sess.UserID, nil
}

// GetResult loads a persisted result.
func (m *Manager) GetResult(resultID uint) (*Result, error) {
	return m.store.FetchResult(resultID)
}

// GetLatestResult loads the user's most recent result.
func (m *Manager) GetLatestResult(userID uint) (*Result, error) {
	return m.store.FetchLatestResult(userID)
}

// GetResultsForUser loads the user's result history, newest first.
func (m *Manager) GetResultsForUser(userID uint) ([]Result, error) {
	return m.store.FetchResultsForUser(userID)
}

func (m *Manager) finalize(sessionID, finalStatus string) (*Result, bool, error) {
	sess, err := m.store.FetchSession(sessionID)
	if err != nil {
		return nil, false, err
	}
	if sess.Status != examModels.StatusActive {
		m.dropCollector(sess.PublicID)
		result, err := m.existingResult(sess, "submit")
		return result, false, err
	}

	// An explicit submit that arrives after the deadline is an expiry.
	if finalStatus == examModels.StatusSubmitted && Expired(sess.DeadlineAt, m.now()) {
		finalStatus = examModels.StatusExpired
	}

	exam, err := m.store.FetchExam(sess.ExamID)
	if err != nil {
		// The exam vanished under the session. Surface the error; never
		// score the submission zero.
		return nil, false, err
	}

	answers := sess.Answers
	m.mu.Lock()
	if collector, ok := m.collectors[sess.PublicID]; ok {
		answers = collector.All()
	}
	m.mu.Unlock()

	score, breakdown, err := Grade(exam, answers)
	if err != nil {
		return nil, false, err
	}
	percentage := Percentage(score, len(exam.Questions))

	result := &Result{
		UserID:         sess.UserID,
		ExamID:         sess.ExamID,
		SessionID:      sess.ID,
		Score:          score,
		TotalQuestions: len(exam.Questions),
		Percentage:     percentage,
		Passed:         percentage >= exam.PassingScore,
		Breakdown:      breakdown,
		SubmittedAt:    m.now(),
	}

	won, err := m.store.FinalizeSession(sess.PublicID, finalStatus, result)
	if err != nil {
		return nil, false, err
	}
	if !won {
		// Lost the submit/expiry race; hand back the winner's result.
		m.dropCollector(sess.PublicID)
		refetched, err := m.store.FetchSession(sess.PublicID)
		if err != nil {
			return nil, false, err
		}
		existing, err := m.existingResult(refetched, "submit")
		return existing, false, err
	}

	m.dropCollector(sess.PublicID)

	return result, true, nil
}

// dropCollector discards a session's in-memory collector once the session
// reaches a terminal status, on winning and losing paths alike.
func (m *Manager) dropCollector(publicID string) {
	m.mu.Lock()
	delete(m.collectors, publicID)
	m.mu.Unlock()
}

// existingResult resolves a finalized session to its persisted result, for
// idempotent handling of double submits.
func (m *Manager) existingResult(sess *SessionRecord, op string) (*Result, error) {
	if sess.ResultID != nil {
		return m.store.FetchResult(*sess.ResultID)
	}
	return nil, &InvalidStateError{Op: op, Status: sess.Status}
}

// collector returns the in-memory collector for a session, rebuilding it
// from the persisted answers after a server restart.
func (m *Manager) collector(sess *SessionRecord) *Collector {
	m.mu.Lock()
	defer m.mu.Unlock()
	if c, ok := m.collectors[sess.PublicID]; ok {
		return c
	}
	c := NewCollector(sess.Answers)
	m.collectors[sess.PublicID] = c
	return c
}
