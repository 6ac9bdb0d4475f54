package engine

import "time"

// ExamSummary is an exam listing entry. It deliberately carries no questions
// so exam content is never exposed before a session starts.
type ExamSummary struct {
	ID            uint   `json:"id"`
	Title         string `json:"title"`
	Description   string `json:"description"`
	Duration      int    `json:"duration"`
	PassingScore  int    `json:"passing_score"`
	QuestionCount int    `json:"question_count"`
}

// SessionRecord is the persisted state of a session. The deadline is stored
// as an absolute timestamp so remaining time survives client restarts.
type SessionRecord struct {
	ID            uint
	PublicID      string
	UserID        uint
	ExamID        uint
	QuestionOrder []uint
	OptionOrders  map[uint][]string
	DeadlineAt    time.Time
	Answers       map[uint]Answer
	Status        string
	ResultID      *uint
}

// Store is the persistence collaborator the engine runs against. Lookups
// return a NotFoundError when the row is missing. FinalizeSession performs
// the guarded ACTIVE -> {SUBMITTED, EXPIRED} transition together with the
// result write in one transaction; it reports false when another caller won
// the race, which is what makes grading at-most-once.
type Store interface {
	FetchExam(id uint) (*Exam, error)
	FetchActiveExams() ([]ExamSummary, error)

	CreateSession(s *SessionRecord) error
	FetchSession(publicID string) (*SessionRecord, error)
	FetchExpiredActiveSessions(now time.Time) ([]SessionRecord, error)
	SaveAnswers(publicID string, answers map[uint]Answer) error
	FinalizeSession(publicID, finalStatus string, result *Result) (bool, error)

	FetchResult(id uint) (*Result, error)
	FetchLatestResult(userID uint) (*Result, error)
	FetchResultsForUser(userID uint) ([]Result, error)
}
