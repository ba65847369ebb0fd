package service

import (
	"context"
	"errors"
	"fmt"
	"patternquiz/internal/cache"
	"patternquiz/internal/metrics"
	"patternquiz/internal/model"
	"patternquiz/internal/quiz"
	"patternquiz/internal/repository"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrSessionNotFound    = errors.New("session not found")
	ErrSessionCompleted   = errors.New("session already completed")
	ErrQuestionOutOfRange = errors.New("question index out of range")
	ErrOptionOutOfRange   = errors.New("option index out of range")
	ErrInvalidAnswer      = errors.New("answer is missing a value")
	ErrQuizIncomplete     = errors.New("quiz has unanswered questions")
)

// QuizService runs quiz sessions: answers land in Redis as they are given,
// completed sessions move to MongoDB.
type QuizService struct {
	engine       *quiz.Engine
	sessionRepo  repository.SessionRepo
	sessionCache cache.SessionCache
	statsCache   cache.StatsCache
	authSvc      *AuthService
	metrics      *metrics.Metrics
	logger       *zap.Logger
	broadcaster  Broadcaster
	now          func() time.Time
}

// NewQuizService creates a new quiz service
func NewQuizService(
	engine *quiz.Engine,
	sessionRepo repository.SessionRepo,
	sessionCache cache.SessionCache,
	statsCache cache.StatsCache,
	authSvc *AuthService,
	m *metrics.Metrics,
	logger *zap.Logger,
) *QuizService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &QuizService{
		engine:       engine,
		sessionRepo:  sessionRepo,
		sessionCache: sessionCache,
		statsCache:   statsCache,
		authSvc:      authSvc,
		metrics:      m,
		logger:       logger,
		now:          time.Now,
	}
}

// SetBroadcaster sets the broadcaster for WebSocket events
func (s *QuizService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// Bank returns the question bank sessions are answered against
func (s *QuizService) Bank() *quiz.Bank {
	return s.engine.Bank()
}

// Start opens a new session and returns a token scoped to it
func (s *QuizService) Start(ctx context.Context) (*model.SessionStartResponse, error) {
	bank := s.engine.Bank()
	now := s.now()
	session := &model.Session{
		ID:           uuid.New().String(),
		BankVersion:  bank.Version(),
		Status:       model.SessionActive,
		Answers:      make(model.AnswerSet, bank.Len()),
		DriverScores: model.NewDriverScores(),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.sessionCache.Set(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to cache session: %w", err)
	}

	token, err := s.authSvc.GenerateSessionToken(session.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to sign session token: %w", err)
	}

	if s.metrics != nil {
		s.metrics.SessionStarted()
	}
	s.logger.Debug("session started", zap.String("session", session.ID))

	return &model.SessionStartResponse{
		SessionID:   session.ID,
		Token:       token,
		BankVersion: session.BankVersion,
		Total:       bank.Len(),
	}, nil
}

// Resume loads a session, active or completed
func (s *QuizService) Resume(ctx context.Context, sessionID string) (*model.Session, error) {
	session, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

// Answer records one answer, overwriting any earlier answer to the same question.
// Concurrent answers to one session are serialized by the cache's optimistic lock.
func (s *QuizService) Answer(ctx context.Context, sessionID string, index int, req model.AnswerRequest) (*model.Progress, error) {
	question, ok := s.engine.Bank().Question(index)
	if !ok {
		return nil, ErrQuestionOutOfRange
	}

	var birthDate string
	var opt model.Option
	switch question.Type {
	case model.QuestionTypeDate:
		birthDate = strings.TrimSpace(req.Text)
		if birthDate == "" {
			return nil, ErrInvalidAnswer
		}
	default:
		if req.Option == nil {
			return nil, ErrInvalidAnswer
		}
		if opt, ok = question.Option(*req.Option); !ok {
			return nil, ErrOptionOutOfRange
		}
	}

	var progress model.Progress
	session, err := s.mutate(ctx, sessionID, func(session *model.Session) error {
		if session.Completed {
			return ErrSessionCompleted
		}
		switch question.Type {
		case model.QuestionTypeDate:
			session.BirthDate = birthDate
		case model.QuestionTypeChoice:
			session.Answers = session.Answers.With(index, *req.Option)
			session.RelationshipStatus = opt.Value
		default:
			session.Answers = session.Answers.With(index, *req.Option)
		}
		progress = s.refresh(session)
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.AnswerRecorded()
	}
	if s.broadcaster != nil {
		s.broadcaster.BroadcastToSession(session.ID, "progress_update", progress)
	}
	return &progress, nil
}

// Preview scores the answers given so far
func (s *QuizService) Preview(ctx context.Context, sessionID string) (*model.Progress, error) {
	session, err := s.Resume(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	progress := s.engine.Preview(session.Answers)
	return &progress, nil
}

// Complete scores a fully answered session and stores it in MongoDB.
// The cached copy is marked completed first, so later answers and a second
// Complete are rejected while the session moves to MongoDB.
func (s *QuizService) Complete(ctx context.Context, sessionID string) (*model.Result, error) {
	bank := s.engine.Bank()
	var result model.Result
	now := s.now()
	session, err := s.mutate(ctx, sessionID, func(session *model.Session) error {
		if session.Completed {
			return ErrSessionCompleted
		}
		if session.Answers.Answered(bank.ScoredCount()) < bank.ScoredCount() {
			return ErrQuizIncomplete
		}
		result = s.engine.Evaluate(session.Answers)
		session.DriverScores = result.DriverScores
		session.TotalScore = result.TotalScore
		session.PatternKey = result.DominantPattern
		session.Completed = true
		session.Status = model.SessionCompleted
		session.UpdatedAt = now
		session.CompletedAt = &now
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := s.sessionRepo.Save(ctx, session); err != nil {
		s.reopen(ctx, session.ID)
		return nil, fmt.Errorf("failed to persist session: %w", err)
	}
	if err := s.sessionCache.Delete(ctx, session.ID); err != nil {
		s.logger.Warn("failed to evict completed session", zap.String("session", session.ID), zap.Error(err))
	}
	if err := s.statsCache.RecordCompletion(ctx, result.DominantDriver, result.DominantPattern); err != nil {
		s.logger.Warn("failed to record pattern stats", zap.String("session", session.ID), zap.Error(err))
	}
	if s.metrics != nil {
		s.metrics.Completed(result)
	}

	s.logger.Info("session completed",
		zap.String("session", session.ID),
		zap.String("driver", string(result.DominantDriver)),
		zap.String("pattern", string(result.DominantPattern)),
	)

	if s.broadcaster != nil {
		event := map[string]interface{}{
			"sessionId": session.ID,
			"driver":    result.DominantDriver,
			"pattern":   result.DominantPattern,
		}
		s.broadcaster.BroadcastToSession(session.ID, "quiz_completed", result)
		s.broadcaster.BroadcastToAdmins("quiz_completed", event)
		s.broadcaster.DisconnectSession(session.ID)
	}
	return &result, nil
}

// Result recomputes the result of a completed session from its raw answers
func (s *QuizService) Result(ctx context.Context, sessionID string) (*model.Result, error) {
	session, err := s.Resume(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !session.Completed {
		return nil, ErrQuizIncomplete
	}
	result := s.engine.Evaluate(session.Answers)
	return &result, nil
}

// refresh recomputes the cached derived fields from the answers
func (s *QuizService) refresh(session *model.Session) model.Progress {
	progress := s.engine.Preview(session.Answers)
	session.DriverScores = progress.Result.DriverScores
	session.TotalScore = progress.Result.TotalScore
	session.PatternKey = progress.Result.DominantPattern
	session.UpdatedAt = s.now()
	return progress
}

// reopen undoes a completion claim whose MongoDB write failed so the client can retry
func (s *QuizService) reopen(ctx context.Context, sessionID string) {
	_, err := s.sessionCache.Update(ctx, sessionID, func(session *model.Session) error {
		session.Completed = false
		session.Status = model.SessionActive
		session.CompletedAt = nil
		return nil
	})
	if err != nil {
		s.logger.Error("failed to reopen session", zap.String("session", sessionID), zap.Error(err))
	}
}

// mutate applies fn to an active session's cached copy. A session missing from
// the cache is restored from MongoDB first; completed ones are never restored.
func (s *QuizService) mutate(ctx context.Context, sessionID string, fn func(*model.Session) error) (*model.Session, error) {
	for attempt := 0; attempt < 2; attempt++ {
		session, err := s.sessionCache.Update(ctx, sessionID, fn)
		if err != nil {
			if isSessionError(err) {
				return nil, err
			}
			return nil, fmt.Errorf("failed to update session: %w", err)
		}
		if session != nil {
			return session, nil
		}

		stored, err := s.sessionRepo.GetByID(ctx, sessionID)
		if err != nil {
			return nil, fmt.Errorf("failed to load session: %w", err)
		}
		if stored == nil {
			return nil, ErrSessionNotFound
		}
		if stored.Completed {
			return nil, ErrSessionCompleted
		}
		if _, err := s.sessionCache.Restore(ctx, stored); err != nil {
			return nil, fmt.Errorf("failed to restore session: %w", err)
		}
	}
	return nil, ErrSessionNotFound
}

func isSessionError(err error) bool {
	return errors.Is(err, ErrSessionCompleted) || errors.Is(err, ErrQuizIncomplete)
}

func (s *QuizService) load(ctx context.Context, sessionID string) (*model.Session, error) {
	session, err := s.sessionCache.Get(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to read session cache: %w", err)
	}
	if session != nil {
		return session, nil
	}

	session, err = s.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	return session, nil
}
