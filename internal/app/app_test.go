package app

import (
	"patternquiz/internal/config"
	"patternquiz/internal/model"
	"patternquiz/internal/quiz"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestNewEngineFollowsConfig(t *testing.T) {
	bank := quiz.MustDefaultBank()
	answers := make(model.AnswerSet, 0)
	for i := 0; i < bank.ScoredCount(); i++ {
		answers = answers.With(i, 0)
	}

	for _, matcher := range []string{"tag", "keyword"} {
		cfg := &config.Config{
			TieBreakMatcher:         matcher,
			StrongThreshold:         70,
			ModerateThreshold:       50,
			ResultBalancedThreshold: 30,
		}
		engine := NewEngine(cfg, bank, zap.NewNop(), nil)
		result := engine.Evaluate(answers)

		assert.Equal(t, model.PatternFixer, result.DominantPattern, matcher)
		// A lowered balanced threshold relabels 30% dominance
		assert.Equal(t, model.DominanceBalanced, result.DominanceLabel, matcher)
	}
}
