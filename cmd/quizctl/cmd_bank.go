package main

import (
	"fmt"
	"patternquiz/internal/model"
	"patternquiz/internal/quiz"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var bankDomain string

var bankCmd = &cobra.Command{
	Use:   "bank",
	Short: "List the embedded question bank",
	Args:  cobra.NoArgs,
	RunE:  runBank,
}

func init() {
	bankCmd.Flags().StringVar(&bankDomain, "domain", "", "only list questions of this domain (e.g. LOVE)")
}

func runBank(cmd *cobra.Command, args []string) error {
	bank, err := quiz.DefaultBank()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "#\tDOMAIN\tTYPE\tPROMPT\n")
	for _, q := range bank.Questions() {
		if bankDomain != "" && !strings.EqualFold(string(q.Domain), bankDomain) {
			continue
		}
		kind := "scored"
		if q.Type != model.QuestionTypeScored {
			kind = string(q.Type)
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", q.Index, q.Domain, kind, q.Prompt)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(out, "\nbank %s: %d questions, %d scored\n", bank.Version(), bank.Len(), bank.ScoredCount())
	return nil
}
