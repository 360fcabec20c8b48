package types

// AgentMessage represents one turn of an LLM conversation.
type AgentMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// QuestionContext carries the quiz question a student is asking about into
// a chat turn, so the tutor can address their specific mistake.
type QuestionContext struct {
	Original    string
	Rewritten   string
	Answer      string
	UserAnswer  string
	Explanation string
	Theme       string
}

// RewrittenQuestion bundles the three LLM products for one uploaded
// question: the themed rewrite, the correct answer, and the explanation.
type RewrittenQuestion struct {
	Rewritten   string
	Answer      string
	Explanation string
}

// MinigameQuestion is the subset of a quiz question handed to the minigame
// builder prompt.
type MinigameQuestion struct {
	Topic     string
	Rewritten string
	Answer    string
}

// Request/response schemas for the JSON API.

type RewriteRequest struct {
	Question string `json:"question" binding:"required"`
	Theme    string `json:"theme" binding:"required"`
	Age      int    `json:"age"`
}

type RewriteResponse struct {
	Rewritten string `json:"rewritten"`
}

type ChatRequest struct {
	Message string         `json:"message" binding:"required"`
	History []AgentMessage `json:"history"`
	Format  string         `json:"format"`
}

type ChatResponse struct {
	Assistant     string `json:"assistant"`
	AssistantHTML string `json:"assistant_html,omitempty"`
}

type ChatWithContextRequest struct {
	Message    string         `json:"message" binding:"required"`
	History    []AgentMessage `json:"history"`
	QuizID     string         `json:"quiz_id"`
	QuestionID string         `json:"question_id"`
	Format     string         `json:"format"`
}

type ExplanationRequest struct {
	QuizID     string `json:"quiz_id" binding:"required"`
	QuestionID string `json:"question_id" binding:"required"`
	Format     string `json:"format"`
}

type ExplanationResponse struct {
	QuestionID      string `json:"question_id"`
	Explanation     string `json:"explanation"`
	ExplanationHTML string `json:"explanation_html,omitempty"`
	CorrectAnswer   string `json:"correct_answer"`
}

type QuizQuestion struct {
	ID            string `json:"id"`
	Original      string `json:"original"`
	Rewritten     string `json:"rewritten"`
	CorrectAnswer string `json:"correct_answer"`
	Explanation   string `json:"explanation"`
	ImageURL      string `json:"image_url,omitempty"`
	Theme         string `json:"theme"`
	Topic         string `json:"topic"`
}

type QuizData struct {
	QuizID    string         `json:"quiz_id"`
	Theme     string         `json:"theme"`
	Age       int            `json:"age"`
	Questions []QuizQuestion `json:"questions"`
}

type QuizAnswer struct {
	QuestionID string `json:"question_id" binding:"required"`
	Answer     string `json:"answer"`
}

type QuizSubmission struct {
	QuizID  string       `json:"quiz_id" binding:"required"`
	Answers []QuizAnswer `json:"answers" binding:"required"`
}

type QuestionFeedback struct {
	QuestionID    string `json:"question_id"`
	UserAnswer    string `json:"user_answer"`
	CorrectAnswer string `json:"correct_answer"`
	IsCorrect     bool   `json:"is_correct"`
	Feedback      string `json:"feedback"`
}

type QuizResult struct {
	QuizID         string             `json:"quiz_id"`
	Score          int                `json:"score"`
	Total          int                `json:"total"`
	Percentage     float64            `json:"percentage"`
	Encouragement  string             `json:"encouragement"`
	Feedback       []QuestionFeedback `json:"feedback"`
	WrongQuestions []string           `json:"wrong_questions"`
}

type WrongQuestionDetail struct {
	QuestionID    string `json:"question_id"`
	OriginalText  string `json:"original_text"`
	RewrittenText string `json:"rewritten_text"`
	UserAnswer    string `json:"user_answer"`
	CorrectAnswer string `json:"correct_answer"`
	Explanation   string `json:"explanation"`
	Topic         string `json:"topic"`
}

type WrongQuestionsResponse struct {
	QuizID         string                `json:"quiz_id"`
	WrongQuestions []WrongQuestionDetail `json:"wrong_questions"`
	TotalWrong     int                   `json:"total_wrong"`
}

type ImageRequest struct {
	Prompt string `json:"prompt" binding:"required"`
	Theme  string `json:"theme"`
	Format string `json:"format"`
}

type ImageResponse struct {
	ImageURL string `json:"image_url"`
	Status   string `json:"status"`
	Message  string `json:"message"`
}

type MinigameRequest struct {
	QuizID     string `json:"quiz_id" binding:"required"`
	GamePrompt string `json:"game_prompt" binding:"required"`
	Theme      string `json:"theme"`
}

type MinigameResponse struct {
	GameHTML string `json:"game_html"`
	Status   string `json:"status"`
	Message  string `json:"message"`
}
