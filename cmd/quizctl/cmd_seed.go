package main

import (
	"context"
	"fmt"
	"math/rand"
	"patternquiz/internal/app"
	"patternquiz/internal/config"
	"patternquiz/internal/model"
	"patternquiz/internal/quiz"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	seedCount int
	seedValue int64
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Store completed demo sessions in MongoDB and the Redis stats",
	Args:  cobra.NoArgs,
	RunE:  runSeed,
}

func init() {
	seedCmd.Flags().IntVarP(&seedCount, "count", "n", 20, "number of sessions to create")
	seedCmd.Flags().Int64Var(&seedValue, "seed", 1, "random seed for the generated answers")
}

// demoSession answers every question at random and scores the result
func demoSession(r *rand.Rand, engine *quiz.Engine, now time.Time) (*model.Session, model.Result) {
	bank := engine.Bank()
	answers := make(model.AnswerSet, 0, bank.Len())
	for i := 0; i < bank.ScoredCount(); i++ {
		q, _ := bank.Question(i)
		answers = answers.With(i, r.Intn(len(q.Options)))
	}
	status, _ := bank.Question(bank.RelationshipIndex())
	rel := r.Intn(len(status.Options))
	answers = answers.With(bank.RelationshipIndex(), rel)

	birth := time.Date(1960+r.Intn(45), time.Month(1+r.Intn(12)), 1+r.Intn(28), 0, 0, 0, 0, time.UTC)
	result := engine.Evaluate(answers)
	created := now.Add(-time.Duration(r.Intn(72)) * time.Hour)
	completed := created.Add(time.Duration(5+r.Intn(20)) * time.Minute)

	session := &model.Session{
		ID:                 uuid.New().String(),
		BankVersion:        bank.Version(),
		Status:             model.SessionCompleted,
		Answers:            answers,
		DriverScores:       result.DriverScores,
		TotalScore:         result.TotalScore,
		PatternKey:         result.DominantPattern,
		Completed:          true,
		BirthDate:          birth.Format("2006-01-02"),
		RelationshipStatus: status.Options[rel].Value,
		CreatedAt:          created,
		UpdatedAt:          completed,
		CompletedAt:        &completed,
	}
	return session, result
}

func runSeed(cmd *cobra.Command, args []string) error {
	if seedCount <= 0 {
		return fmt.Errorf("count must be positive")
	}
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
	defer cancel()

	a, err := app.New(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer a.Close(context.Background())

	r := rand.New(rand.NewSource(seedValue))
	now := time.Now().UTC()
	counts := make(map[model.Pattern]int)
	for i := 0; i < seedCount; i++ {
		session, result := demoSession(r, a.Engine, now)
		if err := a.SessionRepo.Save(ctx, session); err != nil {
			return fmt.Errorf("failed to save session: %w", err)
		}
		if err := a.StatsCache.RecordCompletion(ctx, result.DominantDriver, result.DominantPattern); err != nil {
			logger.Warn("failed to record stats", zap.String("session", session.ID), zap.Error(err))
		}
		counts[session.PatternKey]++
	}

	fmt.Fprintf(cmd.OutOrStdout(), "seeded %d sessions\n", seedCount)
	return render(cmd.OutOrStdout(), counts)
}
