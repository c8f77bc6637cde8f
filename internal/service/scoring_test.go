package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/mufradat/mufradat-backend/internal/model"
)

func sessionWith(questions ...model.QuizQuestion) *model.QuizSession {
	return &model.QuizSession{
		Token:     "test-token",
		UserID:    1,
		Questions: questions,
		CreatedAt: time.Now(),
		ExpiresAt: time.Now().Add(time.Minute),
	}
}

func question(english, arabic string, dir model.PromptDirection) model.QuizQuestion {
	return model.QuizQuestion{
		WordID:       uuid.New(),
		English:      english,
		Arabic:       arabic,
		PartOfSpeech: model.PartOfSpeechNoun,
		Direction:    dir,
	}
}

func TestGradeArabicToEnglish(t *testing.T) {
	q1 := question("bread", "خبز", model.DirectionArabicToEnglish)
	q2 := question("water", "ماء", model.DirectionArabicToEnglish)
	sess := sessionWith(q1, q2)

	outcome := Grade(sess, []model.QuizAnswer{
		{WordID: q1.WordID.String(), UserAnswer: "bread"},
		{WordID: q2.WordID.String(), UserAnswer: "wrong"},
	})

	if outcome.TotalQuestions != 2 {
		t.Errorf("TotalQuestions = %d, want 2", outcome.TotalQuestions)
	}
	if outcome.CorrectAnswers != 1 {
		t.Errorf("CorrectAnswers = %d, want 1", outcome.CorrectAnswers)
	}
	if !outcome.WordResults[0].Correct {
		t.Errorf("q1 marked incorrect")
	}
	if outcome.WordResults[1].Correct {
		t.Errorf("q2 marked correct for wrong answer")
	}
	if outcome.WordResults[0].CorrectAnswer != "bread" {
		t.Errorf("CorrectAnswer = %q, want the English side", outcome.WordResults[0].CorrectAnswer)
	}
}

func TestGradeEnglishToArabic(t *testing.T) {
	q := question("bread", "خبز", model.DirectionEnglishToArabic)
	sess := sessionWith(q)

	outcome := Grade(sess, []model.QuizAnswer{
		{WordID: q.WordID.String(), UserAnswer: "خبز"},
	})

	if outcome.CorrectAnswers != 1 {
		t.Fatalf("CorrectAnswers = %d, want 1", outcome.CorrectAnswers)
	}
	if outcome.WordResults[0].CorrectAnswer != "خبز" {
		t.Errorf("CorrectAnswer = %q, want the Arabic side", outcome.WordResults[0].CorrectAnswer)
	}
}

func TestGradeNormalization(t *testing.T) {
	tests := []struct {
		name      string
		canonical string
		answer    string
		direction model.PromptDirection
		correct   bool
	}{
		{"exact match", "bread", "bread", model.DirectionArabicToEnglish, true},
		{"case folded", "Bread", "bREAD", model.DirectionArabicToEnglish, true},
		{"surrounding whitespace", "bread", "  bread\t", model.DirectionArabicToEnglish, true},
		{"inner whitespace collapsed", "good morning", "good   morning", model.DirectionArabicToEnglish, true},
		{"different word", "bread", "butter", model.DirectionArabicToEnglish, false},
		{"empty answer", "bread", "", model.DirectionArabicToEnglish, false},
		{"diacritics stripped", "خُبْز", "خبز", model.DirectionEnglishToArabic, true},
		{"tatweel stripped", "خبز", "خـبز", model.DirectionEnglishToArabic, true},
		{"different arabic word", "خبز", "ماء", model.DirectionEnglishToArabic, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := question("placeholder", "placeholder", tt.direction)
			if tt.direction == model.DirectionEnglishToArabic {
				q.Arabic = tt.canonical
			} else {
				q.English = tt.canonical
			}
			sess := sessionWith(q)

			outcome := Grade(sess, []model.QuizAnswer{
				{WordID: q.WordID.String(), UserAnswer: tt.answer},
			})
			if outcome.WordResults[0].Correct != tt.correct {
				t.Errorf("Correct = %v, want %v", outcome.WordResults[0].Correct, tt.correct)
			}
		})
	}
}

func TestGradeSkippedAndMissing(t *testing.T) {
	q1 := question("bread", "خبز", model.DirectionArabicToEnglish)
	q2 := question("water", "ماء", model.DirectionArabicToEnglish)
	q3 := question("milk", "حليب", model.DirectionArabicToEnglish)
	sess := sessionWith(q1, q2, q3)

	// q1 answered, q2 explicitly skipped, q3 omitted entirely.
	outcome := Grade(sess, []model.QuizAnswer{
		{WordID: q1.WordID.String(), UserAnswer: "bread"},
		{WordID: q2.WordID.String(), Skipped: true},
	})

	if outcome.TotalQuestions != 3 {
		t.Errorf("TotalQuestions = %d, want 3 (omitted answers keep the denominator)", outcome.TotalQuestions)
	}
	if outcome.CorrectAnswers != 1 {
		t.Errorf("CorrectAnswers = %d, want 1", outcome.CorrectAnswers)
	}
	if !outcome.WordResults[1].Skipped {
		t.Errorf("explicitly skipped question not marked skipped")
	}
	if !outcome.WordResults[2].Skipped {
		t.Errorf("omitted question not marked skipped")
	}
	if outcome.WordResults[1].Correct || outcome.WordResults[2].Correct {
		t.Errorf("skipped questions counted correct")
	}
}

func TestGradeUnknownAnswerIgnored(t *testing.T) {
	q := question("bread", "خبز", model.DirectionArabicToEnglish)
	sess := sessionWith(q)

	outcome := Grade(sess, []model.QuizAnswer{
		{WordID: uuid.NewString(), UserAnswer: "stray"},
		{WordID: q.WordID.String(), UserAnswer: "bread"},
	})

	if outcome.TotalQuestions != 1 {
		t.Errorf("TotalQuestions = %d, want 1", outcome.TotalQuestions)
	}
	if outcome.CorrectAnswers != 1 {
		t.Errorf("CorrectAnswers = %d, want 1", outcome.CorrectAnswers)
	}
}

func TestGradeDuplicateAnswers(t *testing.T) {
	q := question("bread", "خبز", model.DirectionArabicToEnglish)
	sess := sessionWith(q)

	outcome := Grade(sess, []model.QuizAnswer{
		{WordID: q.WordID.String(), UserAnswer: "bread"},
		{WordID: q.WordID.String(), UserAnswer: "butter"},
	})

	wr := outcome.WordResults[0]
	if wr.Error == "" {
		t.Errorf("duplicate answer not recorded as a per-word error")
	}
	if wr.Correct {
		t.Errorf("duplicated answer counted correct")
	}
	if wr.UserAnswer != "bread" {
		t.Errorf("UserAnswer = %q, want first submission", wr.UserAnswer)
	}
}

func TestGradePreservesQuestionOrder(t *testing.T) {
	questions := []model.QuizQuestion{
		question("one", "واحد", model.DirectionArabicToEnglish),
		question("two", "اثنان", model.DirectionArabicToEnglish),
		question("three", "ثلاثة", model.DirectionArabicToEnglish),
	}
	sess := sessionWith(questions...)

	// Answers arrive shuffled.
	outcome := Grade(sess, []model.QuizAnswer{
		{WordID: questions[2].WordID.String(), UserAnswer: "three"},
		{WordID: questions[0].WordID.String(), UserAnswer: "one"},
		{WordID: questions[1].WordID.String(), UserAnswer: "two"},
	})

	for i, q := range questions {
		if outcome.WordResults[i].WordID != q.WordID {
			t.Fatalf("WordResults[%d] = %s, want session order %s", i, outcome.WordResults[i].WordID, q.WordID)
		}
	}
}

func TestGradeIsDeterministic(t *testing.T) {
	q1 := question("bread", "خبز", model.DirectionArabicToEnglish)
	q2 := question("water", "ماء", model.DirectionArabicToEnglish)
	sess := sessionWith(q1, q2)
	answers := []model.QuizAnswer{
		{WordID: q1.WordID.String(), UserAnswer: "bread"},
		{WordID: q2.WordID.String(), Skipped: true},
	}

	first := Grade(sess, answers)
	second := Grade(sess, answers)

	if first.CorrectAnswers != second.CorrectAnswers || first.TotalQuestions != second.TotalQuestions {
		t.Fatalf("grading the same input twice diverged: %+v vs %+v", first, second)
	}
	for i := range first.WordResults {
		if first.WordResults[i] != second.WordResults[i] {
			t.Fatalf("WordResults[%d] diverged: %+v vs %+v", i, first.WordResults[i], second.WordResults[i])
		}
	}
}

func TestScore(t *testing.T) {
	tests := []struct {
		correct, total, want int
	}{
		{0, 0, 0},
		{0, 10, 0},
		{10, 10, 100},
		{5, 10, 50},
		{2, 3, 67},
		{1, 3, 33},
		{1, 8, 13},
		{3, -1, 0},
	}
	for _, tt := range tests {
		if got := Score(tt.correct, tt.total); got != tt.want {
			t.Errorf("Score(%d, %d) = %d, want %d", tt.correct, tt.total, got, tt.want)
		}
	}
}
