package quiz

import (
	"math"
	"patternquiz/internal/model"
	"sort"
)

// LabelThresholds are the minimum dominance percentages for each label
type LabelThresholds struct {
	Strong   int `json:"strong"`
	Moderate int `json:"moderate"`
	Balanced int `json:"balanced"`
}

var (
	// ResultThresholds label the results view
	ResultThresholds = LabelThresholds{Strong: 70, Moderate: 50, Balanced: 40}
	// ReportThresholds label the report and share view, which has always used a lower Balanced cut.
	ReportThresholds = LabelThresholds{Strong: 70, Moderate: 50, Balanced: 30}
)

// Label maps a dominance percentage to its qualitative label
func (t LabelThresholds) Label(patternDominance int) model.DominanceLabel {
	switch {
	case patternDominance >= t.Strong:
		return model.DominanceStrong
	case patternDominance >= t.Moderate:
		return model.DominanceModerate
	case patternDominance >= t.Balanced:
		return model.DominanceBalanced
	default:
		return model.DominanceMixed
	}
}

// Percent is round(score / max(total, 1) * 100)
func Percent(score, total int) int {
	if total <= 0 {
		total = 1
	}
	return int(math.Round(float64(score) / float64(total) * 100))
}

// Percentages returns every driver's share of the total, rounded independently
func Percentages(scores model.DriverScores, total int) map[model.Driver]int {
	out := make(map[model.Driver]int, len(model.Drivers))
	for _, d := range model.Drivers {
		out[d] = Percent(scores[d], total)
	}
	return out
}

// RankDrivers sorts drivers by score, descending. Ties keep canonical driver order.
func RankDrivers(scores model.DriverScores, total int) []model.DriverRank {
	ranked := make([]model.DriverRank, 0, len(model.Drivers))
	for _, d := range model.Drivers {
		ranked = append(ranked, model.DriverRank{Driver: d, Score: scores[d], Percent: Percent(scores[d], total)})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	return ranked
}

// AnalyzeDominance ranks the drivers and measures how much of the total the leader holds
func AnalyzeDominance(scores model.DriverScores, total int) model.Dominance {
	ranked := RankDrivers(scores, total)
	d := model.Dominance{
		Percentages:   Percentages(scores, total),
		RankedDrivers: ranked,
	}
	if len(ranked) > 0 {
		d.DominantDriver = ranked[0].Driver
		d.DominantScore = ranked[0].Score
		d.PatternDominance = Percent(ranked[0].Score, total)
	}
	if len(ranked) > 1 {
		d.SecondaryDriver = ranked[1].Driver
		d.SecondaryScore = ranked[1].Score
	}
	return d
}
