package quiz

import (
	"math/rand"
	"patternquiz/internal/model"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// picks builds an answer set from question index -> option index
func picks(m map[int]int) model.AnswerSet {
	var answers model.AnswerSet
	for q, opt := range m {
		answers = answers.With(q, opt)
	}
	return answers
}

func ruleFor(d model.Driver) Rule {
	for _, r := range DefaultRules() {
		if r.Driver == d {
			return r
		}
	}
	panic("no rule for " + d)
}

type fallbackSpy struct {
	drivers []model.Driver
}

func (s *fallbackSpy) RecordFallback(d model.Driver) {
	s.drivers = append(s.drivers, d)
}

func TestTieBreakControlBothSignalsTieGoesToFixer(t *testing.T) {
	bank := MustDefaultBank()
	// LOVE "fix" + IDENTITY "plan deeply", plus control picks outside the scanned domains
	answers := picks(map[int]int{0: 0, 13: 0, 18: 0, 22: 0})

	pattern, scores := TieBreak(ruleFor(model.DriverControl), answers, bank, TagMatcher{})
	assert.Equal(t, model.PatternFixer, pattern)
	assert.Equal(t, map[model.Pattern]int{model.PatternFixer: 3, model.PatternPerfectionist: 3}, scores)

	resolver := NewResolver(bank)
	scoresByDriver, _ := ComputeDriverScores(answers, bank)
	assert.Equal(t, model.PatternFixer, resolver.Resolve(scoresByDriver, answers))
}

func TestTieBreakPerfectionist(t *testing.T) {
	bank := MustDefaultBank()
	answers := picks(map[int]int{13: 0, 17: 1, 4: 0})

	pattern, scores := TieBreak(ruleFor(model.DriverControl), answers, bank, TagMatcher{})
	assert.Equal(t, model.PatternPerfectionist, pattern)
	assert.Equal(t, 6, scores[model.PatternPerfectionist])
	assert.Zero(t, scores[model.PatternFixer])
}

func TestTieBreakOverrideCreditsFixer(t *testing.T) {
	bank := MustDefaultBank()

	pattern, scores := TieBreak(ruleFor(model.DriverControl), picks(map[int]int{15: 0}), bank, TagMatcher{})
	assert.Equal(t, model.PatternFixer, pattern)
	assert.Equal(t, 3, scores[model.PatternFixer])

	pattern, scores = TieBreak(ruleFor(model.DriverControl), picks(map[int]int{15: 0, 13: 0, 17: 1}), bank, TagMatcher{})
	assert.Equal(t, model.PatternPerfectionist, pattern)
	assert.Equal(t, 3, scores[model.PatternFixer])
	assert.Equal(t, 6, scores[model.PatternPerfectionist])
}

func TestTieBreakOtherDrivers(t *testing.T) {
	bank := MustDefaultBank()
	tests := []struct {
		name   string
		driver model.Driver
		picks  map[int]int
		want   model.Pattern
	}{
		{"escaper by numbing", model.DriverAvoidance, map[int]int{9: 0}, model.PatternEscaper},
		{"overthinker outweighs", model.DriverAvoidance, map[int]int{9: 0, 13: 1, 17: 0}, model.PatternOverthinker},
		{"avoidance tie favors escaper", model.DriverAvoidance, map[int]int{10: 1, 15: 1}, model.PatternEscaper},
		{"avoidance no signal", model.DriverAvoidance, map[int]int{1: 3}, model.PatternEscaper},
		{"performer", model.DriverValidation, map[int]int{6: 0}, model.PatternPerformer},
		{"validation tie favors pleaser", model.DriverValidation, map[int]int{0: 2, 6: 0}, model.PatternPleaser},
		{"pleaser", model.DriverValidation, map[int]int{2: 1, 3: 3, 8: 1}, model.PatternPleaser},
		{"guarded", model.DriverFearOfRejection, map[int]int{0: 3}, model.PatternGuardedOne},
		{"overgiver", model.DriverFearOfRejection, map[int]int{44: 0, 45: 2}, model.PatternOvergiver},
		{"fear tie favors guarded", model.DriverFearOfRejection, map[int]int{1: 2, 46: 1}, model.PatternGuardedOne},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _ := TieBreak(ruleFor(tt.driver), picks(tt.picks), bank, TagMatcher{})
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTagAndKeywordMatchersAgreeOnBank(t *testing.T) {
	bank := MustDefaultBank()
	for _, rule := range DefaultRules() {
		for _, sig := range rule.Signals {
			for _, q := range bank.Questions()[:bank.ScoredCount()] {
				if q.Domain != sig.Domain {
					continue
				}
				for _, opt := range q.Options {
					if sig.Driver != "" && opt.Driver != sig.Driver {
						continue
					}
					assert.Equal(t,
						KeywordMatcher{}.Match(sig, opt),
						TagMatcher{}.Match(sig, opt),
						"question %d option %q against %s", q.Index, opt.Text, sig.Pattern)
				}
			}
		}
	}
}

func TestKeywordMatcherIsCaseInsensitive(t *testing.T) {
	sig := SignalRule{Pattern: model.PatternOvergiver, Keywords: []string{"accepted"}}
	assert.True(t, KeywordMatcher{}.Match(sig, model.Option{Text: "ACCEPTED as I am"}))
	assert.False(t, KeywordMatcher{}.Match(sig, model.Option{Text: "Admired"}))
}

func TestResolveEmptyAnswers(t *testing.T) {
	bank := MustDefaultBank()
	resolver := NewResolver(bank)

	got := resolver.Resolve(model.NewDriverScores(), nil)
	assert.Contains(t, resolver.Candidates(model.DriverControl), got)
	assert.Equal(t, model.PatternFixer, got)
}

func TestResolveSingleCandidate(t *testing.T) {
	bank := MustDefaultBank()
	resolver := NewResolver(bank, WithRules([]Rule{
		{Driver: model.DriverAvoidance, Candidates: []model.Pattern{model.PatternOverthinker}},
	}))

	scores := model.NewDriverScores()
	scores[model.DriverAvoidance] = 9
	assert.Equal(t, model.PatternOverthinker, resolver.Resolve(scores, nil))
}

func TestResolveFallsBackForUnknownDriver(t *testing.T) {
	bank := MustDefaultBank()
	spy := &fallbackSpy{}
	resolver := NewResolver(bank,
		WithRules([]Rule{ruleFor(model.DriverControl)}),
		WithFallbackRecorder(spy),
	)

	scores := model.NewDriverScores()
	scores[model.DriverValidation] = 12
	assert.Equal(t, FallbackPattern, resolver.Resolve(scores, nil))
	assert.Equal(t, []model.Driver{model.DriverValidation}, spy.drivers)

	assert.Equal(t, FallbackPattern, resolver.ResolveDriver("mystery", nil))
	assert.Len(t, spy.drivers, 2)
}

func TestResolvePropertiesOverRandomAnswers(t *testing.T) {
	bank := MustDefaultBank()
	tags := NewResolver(bank)
	keywords := NewResolver(bank, WithMatcher(KeywordMatcher{}))
	r := rand.New(rand.NewSource(42))

	for i := 0; i < 500; i++ {
		answers := randomAnswers(r, bank.Len())
		scores, total := ComputeDriverScores(answers, bank)
		dominant := AnalyzeDominance(scores, total).DominantDriver

		got := tags.Resolve(scores, answers)
		require.Contains(t, tags.Candidates(dominant), got)
		assert.Equal(t, got, tags.Resolve(scores, answers))
		assert.Equal(t, got, keywords.Resolve(scores, answers))
	}
}
