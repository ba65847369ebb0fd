package service

import (
	"context"
	"fmt"
	"patternquiz/internal/astro"
	"patternquiz/internal/cache"
	"patternquiz/internal/model"
	"patternquiz/internal/quiz"
	"patternquiz/internal/repository"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"
)

const statsLimit = 10

// ReportService assembles result reports and aggregate stats
type ReportService struct {
	engine       *quiz.Engine
	catalog      *quiz.Catalog
	thresholds   quiz.LabelThresholds
	shareBaseURL string
	sessionRepo  repository.SessionRepo
	statsCache   cache.StatsCache
	logger       *zap.Logger
	now          func() time.Time
}

// NewReportService creates a new report service. thresholds label the report view
// and may differ from the engine's result thresholds.
func NewReportService(
	engine *quiz.Engine,
	catalog *quiz.Catalog,
	thresholds quiz.LabelThresholds,
	shareBaseURL string,
	sessionRepo repository.SessionRepo,
	statsCache cache.StatsCache,
	logger *zap.Logger,
) *ReportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportService{
		engine:       engine,
		catalog:      catalog,
		thresholds:   thresholds,
		shareBaseURL: strings.TrimSuffix(shareBaseURL, "/"),
		sessionRepo:  sessionRepo,
		statsCache:   statsCache,
		logger:       logger,
		now:          time.Now,
	}
}

// Assemble builds the report for a session. Derived fields stored on the
// session are ignored; the result is always recomputed from the answers.
func (s *ReportService) Assemble(session *model.Session) model.Report {
	result := s.engine.Evaluate(session.Answers)
	archetype, _ := s.catalog.Archetype(result.DominantDriver)
	pattern, _ := s.catalog.Pattern(result.DominantPattern)
	label := s.thresholds.Label(result.PatternDominance)

	return model.Report{
		SessionID:       session.ID,
		Result:          result,
		Archetype:       archetype,
		Pattern:         pattern,
		ReportLabel:     label,
		Personalization: s.personalize(session),
		Share:           s.share(session.ID, archetype, pattern, label, result.PatternDominance),
	}
}

func (s *ReportService) personalize(session *model.Session) model.Personalization {
	p := model.Personalization{RelationshipStatus: session.RelationshipStatus}
	if sun, ok := astro.SunSign(session.BirthDate); ok {
		p.SunSign = sun
	}
	if moon, ok := astro.MoonSign(session.BirthDate); ok {
		p.MoonSign = moon
	}
	if birth, ok := astro.ParseBirthDate(session.BirthDate); ok {
		p.Age = astro.Age(birth, s.now())
	}
	return p
}

func (s *ReportService) share(sessionID string, archetype model.Archetype, pattern model.PatternProfile, label model.DominanceLabel, dominance int) model.Share {
	share := model.Share{
		Title: fmt.Sprintf("I'm %s", pattern.Name),
		Text: fmt.Sprintf("My pattern is %s, under %s (%s, %d%%). %s",
			pattern.Name, archetype.Name, strings.ToLower(string(label)), dominance, pattern.Identity),
	}
	if s.shareBaseURL != "" {
		share.URL = s.shareBaseURL + "/" + sessionID
	}
	return share
}

// Stats returns the pattern and driver distribution over completed sessions.
// When the Redis counters are empty the pattern counts are rebuilt from MongoDB.
func (s *ReportService) Stats(ctx context.Context) (*model.Stats, error) {
	completed, err := s.statsCache.Completed(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read stats: %w", err)
	}
	if completed == 0 {
		return s.statsFromRepo(ctx)
	}

	patterns, err := s.statsCache.TopPatterns(ctx, statsLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to read pattern stats: %w", err)
	}
	drivers, err := s.statsCache.TopDrivers(ctx, statsLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to read driver stats: %w", err)
	}
	return &model.Stats{Completed: completed, Patterns: patterns, Drivers: drivers}, nil
}

// Recent returns the latest completed sessions, newest first
func (s *ReportService) Recent(ctx context.Context, limit int64) ([]*model.Session, error) {
	sessions, err := s.sessionRepo.ListCompleted(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	if sessions == nil {
		sessions = []*model.Session{}
	}
	return sessions, nil
}

func (s *ReportService) statsFromRepo(ctx context.Context) (*model.Stats, error) {
	patterns, err := s.sessionRepo.CountByPattern(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count patterns: %w", err)
	}
	s.logger.Debug("stats rebuilt from sessions", zap.Int("patterns", len(patterns)))

	stats := &model.Stats{Patterns: patterns, Drivers: []model.PatternStat{}}
	byDriver := make(map[model.Driver]int)
	for _, p := range patterns {
		stats.Completed += p.Count
		if profile, ok := s.catalog.Pattern(model.Pattern(p.Key)); ok {
			byDriver[profile.Driver] += p.Count
		}
	}
	for _, d := range model.Drivers {
		if byDriver[d] > 0 {
			stats.Drivers = append(stats.Drivers, model.PatternStat{Key: string(d), Count: byDriver[d]})
		}
	}
	// Stable keeps canonical driver order on ties
	sort.SliceStable(stats.Drivers, func(i, j int) bool {
		return stats.Drivers[i].Count > stats.Drivers[j].Count
	})
	for i := range stats.Drivers {
		stats.Drivers[i].Rank = i + 1
	}
	return stats, nil
}
