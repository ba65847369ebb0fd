package quiz

import (
	"patternquiz/internal/model"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine() *Engine {
	bank := MustDefaultBank()
	return NewEngine(bank, NewResolver(bank), ResultThresholds)
}

func TestEvaluateAllFirstOptions(t *testing.T) {
	e := newTestEngine()
	result := e.Evaluate(firstOptions(e.Bank().ScoredCount()))

	assert.Equal(t, model.DriverControl, result.DominantDriver)
	assert.Equal(t, model.PatternFixer, result.DominantPattern)
	assert.Equal(t, 141, result.TotalScore)
	assert.Equal(t, 30, result.PatternDominance)
	assert.Equal(t, model.DominanceMixed, result.DominanceLabel)
	assert.Equal(t, model.DominanceBalanced, ReportThresholds.Label(result.PatternDominance))
	assert.Equal(t, model.DriverAvoidance, result.SecondaryDriver)
	require.Len(t, result.RankedDrivers, 4)
	assert.Equal(t, model.DriverFearOfRejection, result.RankedDrivers[2].Driver)
}

func TestEvaluateEmpty(t *testing.T) {
	e := newTestEngine()
	result := e.Evaluate(model.AnswerSet{})

	assert.Zero(t, result.TotalScore)
	assert.Equal(t, model.DominanceMixed, result.DominanceLabel)
	for _, d := range model.Drivers {
		assert.Zero(t, result.DriverScores[d])
		assert.Zero(t, result.DriverPercentages[d])
	}
	assert.Contains(t, e.Resolver().Candidates(result.DominantDriver), result.DominantPattern)
}

func TestEvaluateIsDeterministic(t *testing.T) {
	e := newTestEngine()
	answers := picks(map[int]int{0: 1, 5: 2, 13: 1, 17: 0, 30: 1, 44: 2})

	assert.Equal(t, e.Evaluate(answers), e.Evaluate(answers))
}

func TestEvaluateStrongAvoidance(t *testing.T) {
	e := newTestEngine()
	bank := e.Bank()

	var answers model.AnswerSet
	for i := 0; i < bank.ScoredCount(); i++ {
		q, _ := bank.Question(i)
		for j, o := range q.Options {
			if o.Driver == model.DriverAvoidance {
				answers = answers.With(i, j)
			}
		}
	}

	result := e.Evaluate(answers)
	assert.Equal(t, model.DriverAvoidance, result.DominantDriver)
	assert.Equal(t, 100, result.DriverPercentages[model.DriverAvoidance])
	assert.Equal(t, model.DominanceStrong, result.DominanceLabel)
	// every HEALTH avoidance option numbs or delays; only three IDENTITY ones analyze
	assert.Equal(t, model.PatternEscaper, result.DominantPattern)
}

func TestPreviewPartial(t *testing.T) {
	e := newTestEngine()
	progress := e.Preview(picks(map[int]int{0: 0, 1: 1, 2: 2}))

	assert.Equal(t, 3, progress.Answered)
	assert.Equal(t, 47, progress.Total)
	assert.False(t, progress.Complete)
	require.NotNil(t, progress.Result)
	assert.Equal(t, 9, progress.Result.TotalScore)

	full := e.Preview(firstOptions(47))
	assert.True(t, full.Complete)
}
