package service

import (
	"math"
	"strings"

	"github.com/mufradat/mufradat-backend/internal/model"
)

// GradeOutcome is the result of grading one submission against one session.
type GradeOutcome struct {
	WordResults    []model.WordResult
	CorrectAnswers int
	TotalQuestions int
}

// Grade compares submitted answers to the session's embedded canonical
// answers. It is a pure function: grading the same (session, answers) pair
// twice yields identical outcomes.
//
// Every question produces exactly one WordResult, in the session's original
// order. Questions without a matching answer, or whose answer is marked
// skipped, count as skipped and incorrect. A malformed entry (for example a
// duplicate answer for the same word) is recorded on that word's result and
// never aborts the pass. TotalQuestions is the session's question count, so
// missing answers lower the score instead of shrinking the denominator.
func Grade(session *model.QuizSession, answers []model.QuizAnswer) GradeOutcome {
	byWord := make(map[string]model.QuizAnswer, len(answers))
	duplicates := make(map[string]bool)
	for _, a := range answers {
		if _, seen := byWord[a.WordID]; seen {
			duplicates[a.WordID] = true
			continue // First submission for a word wins.
		}
		byWord[a.WordID] = a
	}

	outcome := GradeOutcome{
		WordResults:    make([]model.WordResult, 0, len(session.Questions)),
		TotalQuestions: len(session.Questions),
	}

	for _, q := range session.Questions {
		wr := model.WordResult{
			WordID:        q.WordID,
			English:       q.English,
			Arabic:        q.Arabic,
			Root:          q.Root,
			PartOfSpeech:  q.PartOfSpeech,
			CorrectAnswer: q.Target(),
		}

		answer, answered := byWord[q.WordID.String()]
		switch {
		case !answered || answer.Skipped:
			wr.Skipped = true
		case duplicates[q.WordID.String()]:
			wr.UserAnswer = answer.UserAnswer
			wr.Error = "multiple answers submitted for this word"
		default:
			wr.UserAnswer = answer.UserAnswer
			wr.Correct = normalizeAnswer(answer.UserAnswer) == normalizeAnswer(q.Target())
		}

		if wr.Correct {
			outcome.CorrectAnswers++
		}
		outcome.WordResults = append(outcome.WordResults, wr)
	}

	return outcome
}

// Score converts a correct count into a 0–100 percentage, rounded half up.
func Score(correct, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(correct) / float64(total) * 100))
}

// normalizeAnswer folds away differences that should never fail a learner:
// letter case, surrounding and repeated whitespace, Arabic short-vowel
// diacritics, and the tatweel stretch character.
func normalizeAnswer(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.Join(strings.Fields(s), " ")

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if isArabicDiacritic(r) || r == 'ـ' { // tatweel
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// isArabicDiacritic reports whether r is a harakah or related combining mark
// (fathatan through sukun, plus superscript alef).
func isArabicDiacritic(r rune) bool {
	return (r >= 'ً' && r <= 'ْ') || r == 'ٰ'
}
