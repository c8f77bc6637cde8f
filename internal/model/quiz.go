package model

import (
	"time"

	"github.com/google/uuid"
)

// PromptDirection controls which side of a word card the user is asked to
// produce. It is stamped onto every question when the session is created so
// grading never depends on ambient configuration.
type PromptDirection string

const (
	// DirectionArabicToEnglish shows the Arabic word; the English field is graded.
	DirectionArabicToEnglish PromptDirection = "arabic-to-english"
	// DirectionEnglishToArabic shows the English word; the Arabic field is graded.
	DirectionEnglishToArabic PromptDirection = "english-to-arabic"
)

// QuizQuestion is one question inside a quiz session. The canonical answer
// data is embedded at creation time so submission does not re-read mutable
// word state.
type QuizQuestion struct {
	WordID       uuid.UUID       `json:"word_id"`
	English      string          `json:"english"`
	Arabic       string          `json:"arabic"`
	Root         string          `json:"root,omitempty"`
	PartOfSpeech PartOfSpeech    `json:"part_of_speech"`
	Noun         *NounAttributes `json:"noun,omitempty"`
	Verb         *VerbAttributes `json:"verb,omitempty"`
	Direction    PromptDirection `json:"direction"`
}

// Prompt returns the side of the card shown to the user.
func (q QuizQuestion) Prompt() string {
	if q.Direction == DirectionEnglishToArabic {
		return q.English
	}
	return q.Arabic
}

// Target returns the canonical answer the submission is graded against.
func (q QuizQuestion) Target() string {
	if q.Direction == DirectionEnglishToArabic {
		return q.Arabic
	}
	return q.English
}

// QuizSession is the server-side record of an issued, not-yet-submitted quiz.
// It lives only inside a session store; once consumed or expired it is gone.
type QuizSession struct {
	Token        string         `json:"token"`
	UserID       int            `json:"user_id"`
	Questions    []QuizQuestion `json:"questions"`
	SelectedTags []string       `json:"selected_tags"`
	CreatedAt    time.Time      `json:"created_at"`
	ExpiresAt    time.Time      `json:"expires_at"`
}

// QuizAnswer is one submitted answer, matched to a question by word ID.
type QuizAnswer struct {
	WordID     string `json:"word_id" binding:"required"`
	UserAnswer string `json:"user_answer"`
	Skipped    bool   `json:"skipped"`
}

// WordResult is the per-question verdict inside a QuizResult, in the
// session's original question order.
type WordResult struct {
	WordID        uuid.UUID    `json:"word_id"`
	English       string       `json:"english"`
	Arabic        string       `json:"arabic"`
	Root          string       `json:"root,omitempty"`
	PartOfSpeech  PartOfSpeech `json:"part_of_speech"`
	Correct       bool         `json:"correct"`
	UserAnswer    string       `json:"user_answer"`
	CorrectAnswer string       `json:"correct_answer"`
	Skipped       bool         `json:"skipped"`
	Error         string       `json:"error,omitempty"`
}

// QuizResult is the persisted outcome of a submitted quiz. Immutable after
// creation.
type QuizResult struct {
	ID             uuid.UUID    `json:"id"`
	UserID         int          `json:"user_id"`
	SelectedTags   []string     `json:"selected_tags"`
	TotalQuestions int          `json:"total_questions"`
	CorrectAnswers int          `json:"correct_answers"`
	CompletedAt    time.Time    `json:"completed_at"`
	WordResults    []WordResult `json:"word_results"`
	CreatedAt      time.Time    `json:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at"`
}

// StartQuizRequest is the payload for starting a quiz. An empty tag list
// draws from the user's whole collection.
type StartQuizRequest struct {
	SelectedTags []string `json:"selected_tags" binding:"omitempty,dive,uuid"`
}

// StartQuizResponse is the quiz handed to the client. Questions are the
// session's questions with the graded field stripped by the service.
type StartQuizResponse struct {
	QuizID         string         `json:"quiz_id"`
	Questions      []QuizQuestion `json:"questions"`
	SelectedTags   []string       `json:"selected_tags"`
	TotalQuestions int            `json:"total_questions"`
	StartedAt      time.Time      `json:"started_at"`
}

// SubmitQuizRequest is the payload for submitting answers.
type SubmitQuizRequest struct {
	QuizID    string       `json:"quiz_id" binding:"required"`
	Answers   []QuizAnswer `json:"answers" binding:"required"`
	TimeSpent int          `json:"time_spent" binding:"min=0"` // Seconds, client-reported.
}

// SubmitQuizResponse wraps the persisted result with the derived score and
// the echoed time spent.
type SubmitQuizResponse struct {
	QuizResult
	Score     int `json:"score"` // round(correct/total*100)
	TimeSpent int `json:"time_spent"`
}

// QuizHistoryPage is one page of a user's past results, newest first.
type QuizHistoryPage struct {
	Items []QuizResult `json:"items"`
	Page  int          `json:"page"`
	Limit int          `json:"limit"`
	Total int64        `json:"total"`
}
