package quiz

import (
	"patternquiz/internal/model"

	"go.uber.org/zap"
)

// FallbackPattern is returned when no rule can classify the dominant driver
const FallbackPattern = model.PatternFixer

// FallbackRecorder is notified whenever the resolver has to fall back
type FallbackRecorder interface {
	RecordFallback(driver model.Driver)
}

// Resolver picks the pattern within the dominant driver
type Resolver struct {
	bank     *Bank
	rules    map[model.Driver]Rule
	matcher  Matcher
	logger   *zap.Logger
	recorder FallbackRecorder
}

// ResolverOption configures a Resolver
type ResolverOption func(*Resolver)

// WithRules replaces the driver rule table
func WithRules(rules []Rule) ResolverOption {
	return func(r *Resolver) {
		r.rules = make(map[model.Driver]Rule, len(rules))
		for _, rule := range rules {
			r.rules[rule.Driver] = rule
		}
	}
}

// WithMatcher selects how options are matched against signal rules
func WithMatcher(m Matcher) ResolverOption {
	return func(r *Resolver) { r.matcher = m }
}

func WithLogger(l *zap.Logger) ResolverOption {
	return func(r *Resolver) { r.logger = l }
}

func WithFallbackRecorder(rec FallbackRecorder) ResolverOption {
	return func(r *Resolver) { r.recorder = rec }
}

// NewResolver creates a resolver over bank using the default rules and tag matching
func NewResolver(bank *Bank, opts ...ResolverOption) *Resolver {
	r := &Resolver{
		bank:    bank,
		matcher: TagMatcher{},
		logger:  zap.NewNop(),
	}
	WithRules(DefaultRules())(r)
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Candidates returns the patterns a driver can resolve to
func (r *Resolver) Candidates(d model.Driver) []model.Pattern {
	rule, ok := r.rules[d]
	if !ok {
		return nil
	}
	out := make([]model.Pattern, len(rule.Candidates))
	copy(out, rule.Candidates)
	return out
}

// Resolve returns the pattern for the dominant driver of scores
func (r *Resolver) Resolve(scores model.DriverScores, answers model.AnswerSet) model.Pattern {
	dominant := AnalyzeDominance(scores, scores.Total()).DominantDriver
	return r.ResolveDriver(dominant, answers)
}

// ResolveDriver returns the pattern for a known dominant driver
func (r *Resolver) ResolveDriver(dominant model.Driver, answers model.AnswerSet) model.Pattern {
	rule, ok := r.rules[dominant]
	switch {
	case ok && len(rule.Candidates) == 1:
		return rule.Candidates[0]
	case ok && len(rule.Candidates) > 1:
		pattern, scores := TieBreak(rule, answers, r.bank, r.matcher)
		r.logger.Debug("pattern tie-break",
			zap.String("driver", string(dominant)),
			zap.String("pattern", string(pattern)),
			zap.Any("scores", scores),
		)
		return pattern
	}

	r.logger.Warn("no pattern rule for dominant driver, using fallback",
		zap.String("driver", string(dominant)),
		zap.String("fallback", string(FallbackPattern)),
	)
	if r.recorder != nil {
		r.recorder.RecordFallback(dominant)
	}
	return FallbackPattern
}
