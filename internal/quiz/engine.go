package quiz

import "patternquiz/internal/model"

// Engine scores answer sets against one bank. It holds no mutable state, so a
// single Engine can be shared across goroutines.
type Engine struct {
	bank       *Bank
	resolver   *Resolver
	thresholds LabelThresholds
}

// NewEngine wires a bank, resolver and result-view thresholds together
func NewEngine(bank *Bank, resolver *Resolver, thresholds LabelThresholds) *Engine {
	if resolver == nil {
		resolver = NewResolver(bank)
	}
	return &Engine{bank: bank, resolver: resolver, thresholds: thresholds}
}

func (e *Engine) Bank() *Bank { return e.bank }

func (e *Engine) Resolver() *Resolver { return e.resolver }

func (e *Engine) Thresholds() LabelThresholds { return e.thresholds }

// Evaluate computes the full result for an answer set, complete or not
func (e *Engine) Evaluate(answers model.AnswerSet) model.Result {
	scores, total := ComputeDriverScores(answers, e.bank)
	dom := AnalyzeDominance(scores, total)
	return model.Result{
		DominantDriver:    dom.DominantDriver,
		DominantPattern:   e.resolver.ResolveDriver(dom.DominantDriver, answers),
		DriverScores:      scores,
		DriverPercentages: dom.Percentages,
		DominanceLabel:    e.thresholds.Label(dom.PatternDominance),
		PatternDominance:  dom.PatternDominance,
		SecondaryDriver:   dom.SecondaryDriver,
		RankedDrivers:     dom.RankedDrivers,
		TotalScore:        total,
	}
}

// Preview evaluates a partial answer set and reports how far along it is
func (e *Engine) Preview(answers model.AnswerSet) model.Progress {
	result := e.Evaluate(answers)
	answered := answers.Answered(e.bank.ScoredCount())
	return model.Progress{
		Answered: answered,
		Total:    e.bank.ScoredCount(),
		Complete: answered == e.bank.ScoredCount(),
		Result:   &result,
	}
}
