package quiz

import "patternquiz/internal/model"

// ComputeDriverScores totals the chosen options of the scored questions.
// Unanswered and out-of-range entries are skipped; positions past the scored
// cutoff are never counted.
func ComputeDriverScores(answers model.AnswerSet, bank *Bank) (model.DriverScores, int) {
	scores := model.NewDriverScores()
	total := 0
	for i := 0; i < bank.ScoredCount(); i++ {
		idx, ok := answers.Get(i)
		if !ok {
			continue
		}
		q, ok := bank.Question(i)
		if !ok || len(q.Options) == 0 {
			continue
		}
		opt, ok := q.Option(idx)
		if !ok || !opt.Scored() {
			continue
		}
		scores[opt.Driver] += opt.Score
		total += opt.Score
	}
	return scores, total
}
