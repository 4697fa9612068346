// Package session implements the per-session question protocol: idempotent
// reads of stored questions, strictly sequential generation of the next one,
// per-answer evaluation and the one-shot aggregate results transition.
package session

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"interviewprep/internal/llm"
	"interviewprep/internal/models"
	"interviewprep/internal/parser"
	"interviewprep/internal/prompts"
	"interviewprep/internal/repositories"
)

var (
	ErrNoActiveSession     = errors.New("no active session")
	ErrSessionMismatch     = errors.New("session not found or invalid type")
	ErrLimitReached        = errors.New("maximum questions reached")
	ErrIndexOutOfRange     = errors.New("invalid question index requested")
	ErrQuestionNotFound    = errors.New("question data not found")
	ErrMalformedResponse   = errors.New("AI response was malformed")
	ErrSessionIncomplete   = errors.New("practice session incomplete")
	ErrProviderUnavailable = errors.New("AI service not available")
)

type Service struct {
	sessions *repositories.SessionRepository
	users    *repositories.UserRepository
	provider llm.Provider
	prompts  prompts.PromptProvider
	logger   *zap.Logger
	locks    *lockRegistry
}

// NewService wires the protocol over its collaborators. provider may be nil
// when LLM initialization failed at startup; every generation path then
// reports ErrProviderUnavailable instead of panicking.
func NewService(sessions *repositories.SessionRepository, users *repositories.UserRepository, provider llm.Provider, promptManager prompts.PromptProvider, logger *zap.Logger) *Service {
	return &Service{
		sessions: sessions,
		users:    users,
		provider: provider,
		prompts:  promptManager,
		logger:   logger,
		locks:    newLockRegistry(),
	}
}

// Start creates a session row and points the user's active-session pointer
// at it.
func (s *Service) Start(userID uint, sessionType string, req models.SessionSetupRequest) (*models.InterviewSession, error) {
	sess := &models.InterviewSession{
		UserID:          userID,
		JobPosition:     req.JobPosition,
		ExperienceLevel: req.Experience,
		Industry:        req.Industry,
		SessionType:     sessionType,
		QuestionsData:   "[]",
	}
	if err := s.sessions.Create(sess); err != nil {
		return nil, err
	}
	if err := s.users.SetActiveSession(userID, sessionType, &sess.ID); err != nil {
		return nil, err
	}
	s.logger.Info("session started",
		zap.Uint("session_id", sess.ID),
		zap.Uint("user_id", userID),
		zap.String("session_type", sessionType))
	return sess, nil
}

// ActiveSession resolves the user's active-session pointer for the given kind.
func (s *Service) ActiveSession(userID uint, sessionType string) (*models.InterviewSession, error) {
	user, err := s.users.GetUserByID(userID)
	if err != nil {
		return nil, err
	}
	pointer := user.ActiveSessionID(sessionType)
	if pointer == nil {
		return nil, ErrNoActiveSession
	}
	sess, err := s.sessions.GetByID(*pointer)
	if err != nil {
		if errors.Is(err, repositories.ErrSessionNotFound) {
			return nil, ErrSessionMismatch
		}
		return nil, err
	}
	if sess.SessionType != sessionType || sess.UserID != userID {
		return nil, ErrSessionMismatch
	}
	return sess, nil
}

// GetQuestion returns the stored record at index, generating it first when
// index equals the current length. Requests beyond the next index are
// rejected; no gap-filling. The read-generate-append section runs under the
// session's lock so concurrent requests yield exactly one generation.
func (s *Service) GetQuestion(ctx context.Context, sessionID uint, sessionType string, index int) (models.QuestionRecord, error) {
	lock := s.locks.get(sessionID)
	lock.Lock()
	defer lock.Unlock()

	sess, questions, err := s.load(sessionID, sessionType)
	if err != nil {
		return models.QuestionRecord{}, err
	}

	switch {
	case index >= 0 && index < len(questions):
		// idempotent read, no mutation
		return questions[index], nil
	case index == len(questions):
		if len(questions) >= sess.MaxQuestions() {
			return models.QuestionRecord{}, ErrLimitReached
		}
		return s.generateNext(ctx, sess, questions)
	default:
		return models.QuestionRecord{}, ErrIndexOutOfRange
	}
}

func (s *Service) generateNext(ctx context.Context, sess *models.InterviewSession, questions []models.QuestionRecord) (models.QuestionRecord, error) {
	if s.provider == nil {
		return models.QuestionRecord{}, ErrProviderUnavailable
	}

	details := sess.Details()
	data := map[string]string{
		"Experience":     details.Experience,
		"Position":       details.Position,
		"IndustryClause": prompts.IndustryClause(details.Industry),
	}
	variant := prompts.VariantInitial
	if len(questions) > 0 {
		asked := make([]string, len(questions))
		for i, q := range questions {
			asked[i] = q.Question
		}
		data["PreviousQuestions"] = prompts.PreviousQuestionsBlock(asked)
		variant = prompts.VariantFollowup
	}

	prompt, err := s.prompts.BuildPrompt(prompts.ModeQuestion, variant, data)
	if err != nil {
		return models.QuestionRecord{}, err
	}

	requestID := uuid.New().String()
	raw, err := s.provider.GenerateContent(ctx, prompt, llm.QuestionGeneration)
	if err != nil {
		s.logger.Error("question generation failed",
			zap.String("request_id", requestID),
			zap.Uint("session_id", sess.ID),
			zap.Int("index", len(questions)),
			zap.Error(err))
		return models.QuestionRecord{}, err
	}

	pairs := parser.ParseQuestionAnswer(raw)
	if len(pairs) == 0 {
		s.logger.Warn("no valid Q&A pair parsed",
			zap.String("request_id", requestID),
			zap.Uint("session_id", sess.ID),
			zap.String("raw", truncate(raw, 200)))
		return models.QuestionRecord{}, ErrMalformedResponse
	}

	record := models.QuestionRecord{Question: pairs[0].Question, Answer: pairs[0].Answer}
	questions = append(questions, record)
	if err := sess.SetQuestions(questions); err != nil {
		return models.QuestionRecord{}, err
	}
	if err := s.sessions.SaveQuestions(sess); err != nil {
		return models.QuestionRecord{}, err
	}

	s.logger.Info("question generated",
		zap.String("request_id", requestID),
		zap.Uint("session_id", sess.ID),
		zap.Int("index", len(questions)-1))
	return record, nil
}

// Evaluate stores the user's answer plus model feedback into record index.
// complete is true exactly when this update brings the evaluated count to
// the practice maximum.
func (s *Service) Evaluate(ctx context.Context, sessionID uint, index int, userAnswer string) (feedback string, complete bool, err error) {
	lock := s.locks.get(sessionID)
	lock.Lock()
	defer lock.Unlock()

	sess, questions, err := s.load(sessionID, models.SessionTypePractice)
	if err != nil {
		return "", false, err
	}

	if index < 0 || index >= models.MaxPracticeQuestions {
		return "", false, ErrIndexOutOfRange
	}
	if index >= len(questions) || questions[index].Question == "" {
		return "", false, ErrQuestionNotFound
	}
	if s.provider == nil {
		return "", false, ErrProviderUnavailable
	}

	evaluatedBefore := evaluatedCount(questions)

	data := map[string]string{
		"ContextPhrase": prompts.EvaluationContextPhrase(sess.Details()),
		"Question":      questions[index].Question,
		"UserAnswer":    userAnswer,
		"IdealAnswer":   questions[index].Answer,
	}
	prompt, err := s.prompts.BuildPrompt(prompts.ModeEvaluation, prompts.VariantDefault, data)
	if err != nil {
		return "", false, err
	}

	raw, err := s.provider.GenerateContent(ctx, prompt, llm.AnswerEvaluation)
	if err != nil {
		s.logger.Error("answer evaluation failed",
			zap.Uint("session_id", sess.ID),
			zap.Int("index", index),
			zap.Error(err))
		return "", false, err
	}
	feedback = parser.ParseFeedback(raw)

	questions[index].UserAnswer = userAnswer
	questions[index].AIFeedback = feedback
	if err := sess.SetQuestions(questions); err != nil {
		return "", false, err
	}
	if err := s.sessions.SaveQuestions(sess); err != nil {
		return "", false, err
	}

	evaluatedAfter := evaluatedCount(questions)
	complete = evaluatedAfter == models.MaxPracticeQuestions && evaluatedBefore < models.MaxPracticeQuestions

	s.logger.Info("answer evaluated",
		zap.Uint("session_id", sess.ID),
		zap.Int("index", index),
		zap.Int("evaluated", evaluatedAfter))
	return feedback, complete, nil
}

// Results performs the one aggregate assessment call for a fully evaluated
// practice session and clears the user's active pointer (one-shot; the row
// itself persists). When the provider is absent or fails, the assessment
// degrades to sentinel values rather than aborting the transition.
func (s *Service) Results(ctx context.Context, sessionID uint) (*models.ResultsResponse, error) {
	lock := s.locks.get(sessionID)
	lock.Lock()
	defer lock.Unlock()

	sess, questions, err := s.load(sessionID, models.SessionTypePractice)
	if err != nil {
		return nil, err
	}

	// Re-check the pointer under the lock so a losing concurrent caller
	// does not trigger a second aggregate assessment.
	user, err := s.users.GetUserByID(sess.UserID)
	if err != nil {
		return nil, err
	}
	active := user.ActiveSessionID(models.SessionTypePractice)
	if active == nil || *active != sess.ID {
		return nil, ErrNoActiveSession
	}

	if len(questions) < models.MaxPracticeQuestions {
		return nil, ErrSessionIncomplete
	}
	for _, q := range questions {
		if !q.Evaluated() {
			return nil, ErrSessionIncomplete
		}
	}

	assessment := s.overallAssessment(ctx, sess, questions)

	if err := s.users.SetActiveSession(sess.UserID, models.SessionTypePractice, nil); err != nil {
		return nil, err
	}
	s.logger.Info("practice session completed", zap.Uint("session_id", sess.ID))

	return &models.ResultsResponse{
		PracticeData:    questions,
		OverallFeedback: assessment,
		JobDetails:      sess.Details(),
	}, nil
}

func (s *Service) overallAssessment(ctx context.Context, sess *models.InterviewSession, questions []models.QuestionRecord) parser.OverallAssessment {
	if s.provider == nil {
		return parser.OverallAssessment{
			HiringPercentage: parser.NotAvailable,
			ImprovementAreas: "AI service not available.",
			OverallMessage:   "AI service not available.",
		}
	}

	data := map[string]string{
		"Transcript":    prompts.Transcript(questions),
		"ContextPhrase": prompts.AssessmentContextPhrase(sess.Details()),
	}
	prompt, err := s.prompts.BuildPrompt(prompts.ModeAssessment, prompts.VariantDefault, data)
	if err == nil {
		var raw string
		raw, err = s.provider.GenerateContent(ctx, prompt, llm.OverallAssessment)
		if err == nil {
			return parser.ParseOverallAssessment(raw)
		}
	}

	s.logger.Error("overall assessment failed", zap.Uint("session_id", sess.ID), zap.Error(err))
	areas := "AI service error for overall feedback."
	if llm.ErrorCode(err) == llm.ErrCodeTimeout {
		areas = "AI generation timed out for overall feedback."
	}
	return parser.OverallAssessment{
		HiringPercentage: parser.NotAvailable,
		ImprovementAreas: areas,
		OverallMessage:   "Please try again.",
	}
}

// ClearActive resets the user's pointer for a session kind without touching
// the row.
func (s *Service) ClearActive(userID uint, sessionType string) error {
	return s.users.SetActiveSession(userID, sessionType, nil)
}

func (s *Service) load(sessionID uint, sessionType string) (*models.InterviewSession, []models.QuestionRecord, error) {
	sess, err := s.sessions.GetByID(sessionID)
	if err != nil {
		if errors.Is(err, repositories.ErrSessionNotFound) {
			return nil, nil, ErrSessionMismatch
		}
		return nil, nil, err
	}
	if sess.SessionType != sessionType {
		return nil, nil, ErrSessionMismatch
	}
	questions, err := sess.Questions()
	if err != nil {
		return nil, nil, err
	}
	return sess, questions, nil
}

func evaluatedCount(questions []models.QuestionRecord) int {
	count := 0
	for _, q := range questions {
		if q.Evaluated() {
			count++
		}
	}
	return count
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
