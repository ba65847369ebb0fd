package quiz

import (
	"patternquiz/internal/model"
	"strings"
)

// SignalRule credits Pattern for chosen options in Domain. An empty Driver scans options of any driver.
// Keywords are the legacy wording the rule was written against.
type SignalRule struct {
	Domain   model.Domain
	Driver   model.Driver
	Pattern  model.Pattern
	Keywords []string
}

// Rule lists the candidate patterns of a driver and the signals that separate them.
// The first candidate wins ties.
type Rule struct {
	Driver     model.Driver
	Candidates []model.Pattern
	Signals    []SignalRule
}

// Matcher decides whether a chosen option counts toward a signal rule
type Matcher interface {
	Match(rule SignalRule, opt model.Option) bool
}

// TagMatcher matches on the option's explicit signal tag
type TagMatcher struct{}

func (TagMatcher) Match(rule SignalRule, opt model.Option) bool {
	return opt.Signal != "" && opt.Signal == rule.Pattern
}

// KeywordMatcher matches case-insensitive substrings of the option text
type KeywordMatcher struct{}

func (KeywordMatcher) Match(rule SignalRule, opt model.Option) bool {
	text := strings.ToLower(opt.Text)
	for _, kw := range rule.Keywords {
		if strings.Contains(text, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}

// DefaultRules is the driver to pattern table
func DefaultRules() []Rule {
	return []Rule{
		{
			Driver:     model.DriverControl,
			Candidates: []model.Pattern{model.PatternFixer, model.PatternPerfectionist},
			Signals: []SignalRule{
				{Domain: model.DomainLove, Driver: model.DriverControl, Pattern: model.PatternFixer,
					Keywords: []string{"fix", "resolve", "take charge", "set the pace"}},
				{Domain: model.DomainIdentity, Driver: model.DriverControl, Pattern: model.PatternPerfectionist,
					Keywords: []string{"plan deeply", "control outcomes"}},
			},
		},
		{
			Driver:     model.DriverAvoidance,
			Candidates: []model.Pattern{model.PatternEscaper, model.PatternOverthinker},
			Signals: []SignalRule{
				{Domain: model.DomainHealth, Driver: model.DriverAvoidance, Pattern: model.PatternEscaper,
					Keywords: []string{"numb", "distract", "avoid", "delay"}},
				{Domain: model.DomainIdentity, Driver: model.DriverAvoidance, Pattern: model.PatternOverthinker,
					Keywords: []string{"analyze", "plan", "understand"}},
			},
		},
		{
			Driver:     model.DriverValidation,
			Candidates: []model.Pattern{model.PatternPleaser, model.PatternPerformer},
			Signals: []SignalRule{
				{Domain: model.DomainLove, Driver: model.DriverValidation, Pattern: model.PatternPleaser,
					Keywords: []string{"apologize", "smooth", "please"}},
				{Domain: model.DomainMoney, Driver: model.DriverValidation, Pattern: model.PatternPerformer,
					Keywords: []string{"value", "success", "respected", "recognized"}},
			},
		},
		{
			Driver:     model.DriverFearOfRejection,
			Candidates: []model.Pattern{model.PatternGuardedOne, model.PatternOvergiver},
			Signals: []SignalRule{
				{Domain: model.DomainLove, Pattern: model.PatternGuardedOne,
					Keywords: []string{"withdraw", "pull back", "distance", "protect"}},
				{Domain: model.DomainReflection, Pattern: model.PatternOvergiver,
					Keywords: []string{"worth", "accepted"}},
			},
		},
	}
}

// TieBreak scores rule's candidates from the answered questions and picks the highest.
// An option flagged with OverridesAs credits that candidate whenever one of the rule's
// signals scans its question.
func TieBreak(rule Rule, answers model.AnswerSet, bank *Bank, matcher Matcher) (model.Pattern, map[model.Pattern]int) {
	scores := make(map[model.Pattern]int, len(rule.Candidates))
	for _, c := range rule.Candidates {
		scores[c] = 0
	}

	for i := 0; i < bank.ScoredCount(); i++ {
		idx, ok := answers.Get(i)
		if !ok {
			continue
		}
		q, ok := bank.Question(i)
		if !ok {
			continue
		}
		opt, ok := q.Option(idx)
		if !ok || !opt.Scored() {
			continue
		}

		scanned := false
		for _, sig := range rule.Signals {
			if q.Domain != sig.Domain || (sig.Driver != "" && opt.Driver != sig.Driver) {
				continue
			}
			scanned = true
			if matcher.Match(sig, opt) {
				scores[sig.Pattern] += opt.Score
			}
		}
		if scanned && opt.OverridesAs != "" {
			if _, candidate := scores[opt.OverridesAs]; candidate {
				scores[opt.OverridesAs] += opt.Score
			}
		}
	}

	if len(rule.Candidates) == 0 {
		return "", scores
	}
	best := rule.Candidates[0]
	for _, c := range rule.Candidates[1:] {
		if scores[c] > scores[best] {
			best = c
		}
	}
	return best, scores
}
