package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/mufradat/mufradat-backend/internal/config"
	"github.com/mufradat/mufradat-backend/internal/model"
	"github.com/mufradat/mufradat-backend/internal/store"
	"github.com/rs/zerolog"
)

// fakeWordSource hands back a fixed pool and records the draw arguments.
type fakeWordSource struct {
	pool      []model.Word
	err       error
	gotUserID int
	gotTags   []uuid.UUID
	gotLimit  int
}

func (f *fakeWordSource) DrawForQuiz(_ context.Context, userID int, tagIDs []uuid.UUID, limit int) ([]model.Word, error) {
	f.gotUserID = userID
	f.gotTags = tagIDs
	f.gotLimit = limit
	return f.pool, f.err
}

// fakeResultSink stores results in memory, newest first, like the repository.
type fakeResultSink struct {
	saved   []*model.QuizResult
	saveErr error
}

func (f *fakeResultSink) Save(_ context.Context, res *model.QuizResult) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	if res.ID == uuid.Nil {
		res.ID = uuid.New()
	}
	f.saved = append(f.saved, res)
	return nil
}

func (f *fakeResultSink) GetByID(_ context.Context, id uuid.UUID, userID int) (*model.QuizResult, error) {
	for _, r := range f.saved {
		if r.ID == id && r.UserID == userID {
			return r, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeResultSink) ListByUser(_ context.Context, userID, page, limit int) ([]model.QuizResult, int64, error) {
	var mine []model.QuizResult
	for i := len(f.saved) - 1; i >= 0; i-- { // newest first
		if f.saved[i].UserID == userID {
			mine = append(mine, *f.saved[i])
		}
	}
	total := int64(len(mine))
	start := (page - 1) * limit
	if start >= len(mine) {
		return nil, total, nil
	}
	end := start + limit
	if end > len(mine) {
		end = len(mine)
	}
	return mine[start:end], total, nil
}

func testWord(english, arabic string) model.Word {
	return model.Word{
		ID:           uuid.New(),
		UserID:       1,
		English:      english,
		Arabic:       arabic,
		PartOfSpeech: model.PartOfSpeechNoun,
	}
}

func testConfig() *config.Config {
	return &config.Config{
		QuizSessionTTL:   30 * time.Minute,
		QuizSweepEvery:   5 * time.Minute,
		QuizMaxQuestions: 10,
		QuizMaxPageSize:  100,
		QuizDirection:    model.DirectionArabicToEnglish,
	}
}

func newTestQuizService(words *fakeWordSource, results *fakeResultSink) *QuizService {
	return NewQuizService(words, store.NewMemorySessionStore(), results, testConfig(), zerolog.Nop())
}

func TestStartQuiz(t *testing.T) {
	words := &fakeWordSource{pool: []model.Word{testWord("bread", "خبز"), testWord("water", "ماء")}}
	svc := newTestQuizService(words, &fakeResultSink{})
	tagID := uuid.NewString()

	resp, err := svc.StartQuiz(context.Background(), 7, &model.StartQuizRequest{SelectedTags: []string{tagID}})
	if err != nil {
		t.Fatalf("StartQuiz: %v", err)
	}

	if words.gotUserID != 7 {
		t.Errorf("drew for user %d, want 7", words.gotUserID)
	}
	if words.gotLimit != 10 {
		t.Errorf("draw limit = %d, want 10", words.gotLimit)
	}
	if len(words.gotTags) != 1 || words.gotTags[0].String() != tagID {
		t.Errorf("draw tags = %v, want [%s]", words.gotTags, tagID)
	}

	if resp.QuizID == "" {
		t.Errorf("empty quiz ID")
	}
	if resp.TotalQuestions != 2 || len(resp.Questions) != 2 {
		t.Errorf("TotalQuestions = %d, questions = %d, want 2 each", resp.TotalQuestions, len(resp.Questions))
	}
	for i, q := range resp.Questions {
		// Arabic→English quizzes must never hand the client the English side.
		if q.English != "" {
			t.Errorf("question %d leaks the graded answer: %q", i, q.English)
		}
		if q.Arabic == "" {
			t.Errorf("question %d missing its prompt", i)
		}
	}
}

func TestStartQuizNoWords(t *testing.T) {
	svc := newTestQuizService(&fakeWordSource{}, &fakeResultSink{})

	_, err := svc.StartQuiz(context.Background(), 1, &model.StartQuizRequest{})
	if !errors.Is(err, ErrNoWordsAvailable) {
		t.Fatalf("error = %v, want ErrNoWordsAvailable", err)
	}
}

func TestStartQuizInvalidTags(t *testing.T) {
	svc := newTestQuizService(&fakeWordSource{pool: []model.Word{testWord("bread", "خبز")}}, &fakeResultSink{})

	_, err := svc.StartQuiz(context.Background(), 1, &model.StartQuizRequest{SelectedTags: []string{"not-a-uuid"}})
	if !errors.Is(err, ErrInvalidTags) {
		t.Fatalf("error = %v, want ErrInvalidTags", err)
	}
}

func TestSubmitQuizRoundTrip(t *testing.T) {
	w1 := testWord("bread", "خبز")
	w2 := testWord("water", "ماء")
	w3 := testWord("milk", "حليب")
	words := &fakeWordSource{pool: []model.Word{w1, w2, w3}}
	results := &fakeResultSink{}
	svc := newTestQuizService(words, results)
	ctx := context.Background()

	start, err := svc.StartQuiz(ctx, 7, &model.StartQuizRequest{})
	if err != nil {
		t.Fatalf("StartQuiz: %v", err)
	}

	resp, err := svc.SubmitQuiz(ctx, 7, &model.SubmitQuizRequest{
		QuizID: start.QuizID,
		Answers: []model.QuizAnswer{
			{WordID: w1.ID.String(), UserAnswer: "bread"},
			{WordID: w2.ID.String(), UserAnswer: "WATER "},
			{WordID: w3.ID.String(), UserAnswer: "juice"},
		},
		TimeSpent: 42,
	})
	if err != nil {
		t.Fatalf("SubmitQuiz: %v", err)
	}

	if resp.CorrectAnswers != 2 || resp.TotalQuestions != 3 {
		t.Errorf("graded %d/%d, want 2/3", resp.CorrectAnswers, resp.TotalQuestions)
	}
	if resp.Score != 67 {
		t.Errorf("Score = %d, want 67", resp.Score)
	}
	if resp.TimeSpent != 42 {
		t.Errorf("TimeSpent = %d, want 42", resp.TimeSpent)
	}
	if len(results.saved) != 1 {
		t.Fatalf("persisted %d results, want 1", len(results.saved))
	}
	if results.saved[0].UserID != 7 {
		t.Errorf("persisted UserID = %d, want 7", results.saved[0].UserID)
	}

	// The consumed token is dead.
	_, err = svc.SubmitQuiz(ctx, 7, &model.SubmitQuizRequest{QuizID: start.QuizID})
	if !errors.Is(err, store.ErrSessionNotFound) {
		t.Fatalf("resubmit error = %v, want store.ErrSessionNotFound", err)
	}
	if len(results.saved) != 1 {
		t.Errorf("resubmit persisted another result")
	}
}

func TestSubmitQuizForeignToken(t *testing.T) {
	words := &fakeWordSource{pool: []model.Word{testWord("bread", "خبز")}}
	results := &fakeResultSink{}
	svc := newTestQuizService(words, results)
	ctx := context.Background()

	start, err := svc.StartQuiz(ctx, 7, &model.StartQuizRequest{})
	if err != nil {
		t.Fatalf("StartQuiz: %v", err)
	}

	// User 8 submits with user 7's token.
	_, err = svc.SubmitQuiz(ctx, 8, &model.SubmitQuizRequest{QuizID: start.QuizID})
	if !errors.Is(err, store.ErrSessionNotFound) {
		t.Fatalf("foreign submit error = %v, want store.ErrSessionNotFound", err)
	}
	if len(results.saved) != 0 {
		t.Errorf("foreign submit persisted a result")
	}
}

func TestSubmitQuizUnknownToken(t *testing.T) {
	svc := newTestQuizService(&fakeWordSource{}, &fakeResultSink{})

	_, err := svc.SubmitQuiz(context.Background(), 1, &model.SubmitQuizRequest{QuizID: "bogus"})
	if !errors.Is(err, store.ErrSessionNotFound) {
		t.Fatalf("error = %v, want store.ErrSessionNotFound", err)
	}
}

func TestGetQuizResult(t *testing.T) {
	results := &fakeResultSink{}
	svc := newTestQuizService(&fakeWordSource{}, results)
	ctx := context.Background()

	res := &model.QuizResult{UserID: 7, TotalQuestions: 1, CorrectAnswers: 1}
	if err := results.Save(ctx, res); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := svc.GetQuizResult(ctx, 7, res.ID)
	if err != nil {
		t.Fatalf("GetQuizResult: %v", err)
	}
	if got.ID != res.ID {
		t.Errorf("got result %s, want %s", got.ID, res.ID)
	}

	// Another user's ID must not resolve.
	if _, err := svc.GetQuizResult(ctx, 8, res.ID); !errors.Is(err, ErrResultNotFound) {
		t.Errorf("foreign result error = %v, want ErrResultNotFound", err)
	}
	if _, err := svc.GetQuizResult(ctx, 7, uuid.New()); !errors.Is(err, ErrResultNotFound) {
		t.Errorf("unknown result error = %v, want ErrResultNotFound", err)
	}
}

func TestGetQuizHistoryPagination(t *testing.T) {
	results := &fakeResultSink{}
	svc := newTestQuizService(&fakeWordSource{}, results)
	ctx := context.Background()

	// Five results, saved oldest first.
	var ids []uuid.UUID
	for i := 0; i < 5; i++ {
		res := &model.QuizResult{UserID: 7, TotalQuestions: 1, CompletedAt: time.Now().Add(time.Duration(i) * time.Second)}
		if err := results.Save(ctx, res); err != nil {
			t.Fatalf("Save: %v", err)
		}
		ids = append(ids, res.ID)
	}

	page1, err := svc.GetQuizHistory(ctx, 7, 1, 2)
	if err != nil {
		t.Fatalf("GetQuizHistory page 1: %v", err)
	}
	if page1.Total != 5 {
		t.Errorf("Total = %d, want 5", page1.Total)
	}
	if len(page1.Items) != 2 || page1.Items[0].ID != ids[4] || page1.Items[1].ID != ids[3] {
		t.Errorf("page 1 not newest-first: %v", page1.Items)
	}

	page3, err := svc.GetQuizHistory(ctx, 7, 3, 2)
	if err != nil {
		t.Fatalf("GetQuizHistory page 3: %v", err)
	}
	if len(page3.Items) != 1 || page3.Items[0].ID != ids[0] {
		t.Errorf("page 3 = %v, want the oldest result alone", page3.Items)
	}

	// Beyond the end: empty page, same total.
	page4, err := svc.GetQuizHistory(ctx, 7, 4, 2)
	if err != nil {
		t.Fatalf("GetQuizHistory page 4: %v", err)
	}
	if len(page4.Items) != 0 || page4.Total != 5 {
		t.Errorf("page 4 items = %d total = %d, want 0 and 5", len(page4.Items), page4.Total)
	}
}

func TestGetQuizHistoryRejectsBadPagination(t *testing.T) {
	svc := newTestQuizService(&fakeWordSource{}, &fakeResultSink{})
	ctx := context.Background()

	for _, tc := range []struct{ page, limit int }{
		{0, 10},
		{-1, 10},
		{1, 0},
		{1, -5},
		{1, 101}, // over QuizMaxPageSize
	} {
		if _, err := svc.GetQuizHistory(ctx, 7, tc.page, tc.limit); !errors.Is(err, ErrInvalidPagination) {
			t.Errorf("GetQuizHistory(page=%d, limit=%d) error = %v, want ErrInvalidPagination", tc.page, tc.limit, err)
		}
	}
}
