package quiz

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"math-buddy/web/types"
)

// Session holds one generated quiz and the answers submitted against it.
// All methods are safe for concurrent use.
type Session struct {
	QuizID    string
	Theme     string
	Age       int
	CreatedAt time.Time

	mu        sync.RWMutex
	order     []string
	questions map[string]*Question
	answers   map[string]string
}

func NewSession(theme string, age int) *Session {
	return &Session{
		QuizID:    uuid.NewString(),
		Theme:     theme,
		Age:       age,
		CreatedAt: time.Now(),
		questions: make(map[string]*Question),
		answers:   make(map[string]string),
	}
}

// AddQuestion appends a question, preserving upload order.
func (s *Session) AddQuestion(q *Question) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.order = append(s.order, q.ID)
	s.questions[q.ID] = q
}

// Question returns the question with the given ID, or nil.
func (s *Session) Question(id string) *Question {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.questions[id]
}

// Questions returns the session's questions in upload order.
func (s *Session) Questions() []*Question {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*Question, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.questions[id])
	}
	return out
}

func (s *Session) Total() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order)
}

// RecordAnswer stores the student's answer and reports whether it was
// correct. Unknown question IDs report false.
func (s *Session) RecordAnswer(questionID, answer string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	q, ok := s.questions[questionID]
	if !ok {
		return false
	}
	s.answers[questionID] = answer
	return CheckAnswer(answer, q.CorrectAnswer)
}

// UserAnswer returns the answer recorded for a question, if any.
func (s *Session) UserAnswer(questionID string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.answers[questionID]
	return a, ok
}

// Score counts recorded answers that match their question's correct answer.
func (s *Session) Score() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	score := 0
	for id, answer := range s.answers {
		if q, ok := s.questions[id]; ok && CheckAnswer(answer, q.CorrectAnswer) {
			score++
		}
	}
	return score
}

// WrongQuestions returns the questions answered incorrectly, in upload
// order. Questions never answered are not counted as wrong.
func (s *Session) WrongQuestions() []*Question {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var wrong []*Question
	for _, id := range s.order {
		answer, answered := s.answers[id]
		if !answered {
			continue
		}
		q := s.questions[id]
		if !CheckAnswer(answer, q.CorrectAnswer) {
			wrong = append(wrong, q)
		}
	}
	return wrong
}

// QuestionContext packages a question and the student's answer for a
// context-aware chat turn.
func (s *Session) QuestionContext(questionID string) (*types.QuestionContext, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	q, ok := s.questions[questionID]
	if !ok {
		return nil, false
	}
	return &types.QuestionContext{
		Original:    q.Original,
		Rewritten:   q.Rewritten,
		Answer:      q.CorrectAnswer,
		UserAnswer:  s.answers[questionID],
		Explanation: q.Explanation,
		Theme:       s.Theme,
	}, true
}
