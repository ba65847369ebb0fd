package main

import (
	"fmt"
	"patternquiz/internal/app"
	"patternquiz/internal/astro"
	"patternquiz/internal/config"
	"patternquiz/internal/model"
	"patternquiz/internal/quiz"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

var (
	scoreAnswers string
	scoreBirth   string
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score a comma separated answer list",
	Long: `Scores option indexes given in question order. Use "-" or leave a
position empty to mark it unanswered, e.g. --answers 0,1,,2,-,3`,
	Args: cobra.NoArgs,
	RunE: runScore,
}

func init() {
	scoreCmd.Flags().StringVarP(&scoreAnswers, "answers", "a", "", "comma separated option indexes")
	scoreCmd.Flags().StringVar(&scoreBirth, "birth", "", "birth date for sign personalization")
}

// ScoreOutput is what score prints
type ScoreOutput struct {
	Result      model.Result         `json:"result" yaml:"result"`
	Pattern     model.PatternProfile `json:"pattern" yaml:"pattern"`
	ReportLabel model.DominanceLabel `json:"reportLabel" yaml:"reportLabel"`
	Answered    int                  `json:"answered" yaml:"answered"`
	Total       int                  `json:"total" yaml:"total"`
	SunSign     string               `json:"sunSign,omitempty" yaml:"sunSign,omitempty"`
	MoonSign    string               `json:"moonSign,omitempty" yaml:"moonSign,omitempty"`
}

func parseAnswers(s string) (model.AnswerSet, error) {
	if strings.TrimSpace(s) == "" {
		return model.AnswerSet{}, nil
	}
	parts := strings.Split(s, ",")
	indexes := make([]int, len(parts))
	for i, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" || p == "-" {
			indexes[i] = -1
			continue
		}
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("answer %d: invalid option index %q", i, p)
		}
		indexes[i] = n
	}
	return model.AnswersOf(indexes...), nil
}

func runScore(cmd *cobra.Command, args []string) error {
	answers, err := parseAnswers(scoreAnswers)
	if err != nil {
		return err
	}
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	bank, err := quiz.DefaultBank()
	if err != nil {
		return err
	}

	engine := app.NewEngine(cfg, bank, logger, nil)
	progress := engine.Preview(answers)
	profile, _ := quiz.NewCatalog().Pattern(progress.Result.DominantPattern)

	out := ScoreOutput{
		Result:      *progress.Result,
		Pattern:     profile,
		ReportLabel: cfg.ReportThresholds().Label(progress.Result.PatternDominance),
		Answered:    progress.Answered,
		Total:       progress.Total,
	}
	if scoreBirth != "" {
		out.SunSign, _ = astro.SunSign(scoreBirth)
		out.MoonSign, _ = astro.MoonSign(scoreBirth)
	}
	return render(cmd.OutOrStdout(), out)
}
