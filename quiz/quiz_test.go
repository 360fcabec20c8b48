package quiz

import (
	"context"
	"fmt"
	"testing"
	"time"

	"go.uber.org/zap"
)

func TestInferTopic(t *testing.T) {
	tests := []struct {
		question string
		want     string
	}{
		{"What is 3 + 4?", "addition"},
		{"If you add 5 apples to 3 apples, how many altogether?", "addition"},
		{"What is 10 - 7?", "subtraction"},
		{"Sarah had 8 sweets and gave 3 away. How many are left?", "subtraction"},
		{"What is 6 times 7?", "multiplication"},
		{"What is 4 * 5?", "multiplication"},
		{"Divide 12 cookies between 4 friends.", "division"},
		{"What is 20 ÷ 4?", "division"},
		{"What fraction of the pizza did Tom eat?", "fractions"},
		{"What is 25% of 80?", "percentages"},
		{"Solve for x: x = 9", "arithmetic"},
	}

	for _, tt := range tests {
		t.Run(tt.want+"/"+tt.question[:10], func(t *testing.T) {
			if got := InferTopic(tt.question); got != tt.want {
				t.Errorf("InferTopic(%q) = %q, want %q", tt.question, got, tt.want)
			}
		})
	}
}

func TestParseQuestionsNumbered(t *testing.T) {
	text := `# homework sheet
1. What is 2+2?
2) What is 10-3?
3. A farmer has 6 cows
   and buys 2 more. How many cows?
// end of sheet
`
	got := ParseQuestions(text)
	want := []string{
		"What is 2+2?",
		"What is 10-3?",
		"A farmer has 6 cows and buys 2 more. How many cows?",
	}
	if len(got) != len(want) {
		t.Fatalf("parsed %d questions, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("question %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestParseQuestionsPlain(t *testing.T) {
	text := "What is 2+2?\n\nWhat is 5*5?\n# comment\n"
	got := ParseQuestions(text)
	if len(got) != 2 {
		t.Fatalf("parsed %d questions, want 2: %v", len(got), got)
	}
	if got[0] != "What is 2+2?" || got[1] != "What is 5*5?" {
		t.Errorf("unexpected questions: %v", got)
	}
}

func TestParseQuestionsEmpty(t *testing.T) {
	if got := ParseQuestions("  \n\n# only comments\n"); len(got) != 0 {
		t.Errorf("expected no questions, got %v", got)
	}
}

func TestCheckAnswer(t *testing.T) {
	tests := []struct {
		user    string
		correct string
		want    bool
	}{
		{"4", "4", true},
		{"4.0", "4", true},
		{"0.5", "0.50", true},
		{" 7 ", "7", true},
		{"4.005", "4", true},
		{"4.02", "4", false},
		{"5", "4", false},
		{"four", "Four", true},
		{"  Half ", "half", true},
		{"four", "4", false},
		{"", "4", false},
	}

	for _, tt := range tests {
		if got := CheckAnswer(tt.user, tt.correct); got != tt.want {
			t.Errorf("CheckAnswer(%q, %q) = %v, want %v", tt.user, tt.correct, got, tt.want)
		}
	}
}

func newTestSession(t *testing.T, n int) *Session {
	t.Helper()
	s := NewSession("Space Pirates", 10)
	for i := 0; i < n; i++ {
		q := NewQuestion(fmt.Sprintf("What is %d + %d?", i, i))
		q.CorrectAnswer = fmt.Sprintf("%d", i+i)
		q.Rewritten = fmt.Sprintf("Pirate sum #%d", i)
		q.Explanation = "Count on your fingers."
		s.AddQuestion(q)
	}
	return s
}

func TestSessionScoring(t *testing.T) {
	s := newTestSession(t, 3)
	qs := s.Questions()
	if len(qs) != 3 {
		t.Fatalf("Questions() returned %d, want 3", len(qs))
	}

	if !s.RecordAnswer(qs[0].ID, qs[0].CorrectAnswer) {
		t.Error("correct answer reported as wrong")
	}
	if s.RecordAnswer(qs[1].ID, "wrong") {
		t.Error("wrong answer reported as correct")
	}
	if s.RecordAnswer("no-such-id", "4") {
		t.Error("unknown question reported as correct")
	}

	if got := s.Score(); got != 1 {
		t.Errorf("Score = %d, want 1", got)
	}
	wrong := s.WrongQuestions()
	if len(wrong) != 1 || wrong[0].ID != qs[1].ID {
		t.Errorf("WrongQuestions = %v, want just the second question", wrong)
	}
}

func TestSessionOrderPreserved(t *testing.T) {
	s := newTestSession(t, 5)
	qs := s.Questions()
	for i, q := range qs {
		if q.Original != fmt.Sprintf("What is %d + %d?", i, i) {
			t.Fatalf("question %d out of order: %q", i, q.Original)
		}
	}
}

func TestSessionQuestionContext(t *testing.T) {
	s := newTestSession(t, 1)
	q := s.Questions()[0]
	s.RecordAnswer(q.ID, "99")

	qctx, ok := s.QuestionContext(q.ID)
	if !ok {
		t.Fatal("QuestionContext not found")
	}
	if qctx.Original != q.Original || qctx.UserAnswer != "99" || qctx.Theme != "Space Pirates" {
		t.Errorf("unexpected context: %+v", qctx)
	}

	if _, ok := s.QuestionContext("missing"); ok {
		t.Error("QuestionContext should miss for unknown ID")
	}
}

func TestStorePutGetDelete(t *testing.T) {
	st, err := NewStore(4, zap.NewNop())
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}

	s := NewSession("Dinosaurs", 8)
	st.Put(s)

	got, err := st.Get(s.QuizID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.QuizID != s.QuizID {
		t.Errorf("Get returned wrong session")
	}

	st.Delete(s.QuizID)
	if _, err := st.Get(s.QuizID); err == nil {
		t.Error("expected not-found after delete")
	}
}

func TestStoreEvictsAtCapacity(t *testing.T) {
	st, err := NewStore(2, zap.NewNop())
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}

	first := NewSession("a", 7)
	st.Put(first)
	st.Put(NewSession("b", 7))
	st.Put(NewSession("c", 7))

	if st.Len() != 2 {
		t.Errorf("Len = %d, want 2", st.Len())
	}
	if _, err := st.Get(first.QuizID); err == nil {
		t.Error("oldest session should have been evicted")
	}
}

func TestStoreJanitorSweepsOldSessions(t *testing.T) {
	st, err := NewStore(8, zap.NewNop())
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}

	old := NewSession("old", 9)
	old.CreatedAt = time.Now().Add(-2 * time.Hour)
	st.Put(old)
	fresh := NewSession("fresh", 9)
	st.Put(fresh)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	st.StartJanitor(ctx, 5*time.Millisecond, time.Hour)

	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if _, err := st.Get(old.QuizID); err != nil {
			break
		}
		time.Sleep(5 * time.Millisecond)
	}

	if _, err := st.Get(old.QuizID); err == nil {
		t.Error("expired session should have been swept")
	}
	if _, err := st.Get(fresh.QuizID); err != nil {
		t.Error("fresh session should survive the sweep")
	}
}
