package main

import (
	"fmt"
	"patternquiz/internal/astro"
	"time"

	"github.com/spf13/cobra"
)

var signBirth string

var signCmd = &cobra.Command{
	Use:   "sign",
	Short: "Print the sun and moon sign for a birth date",
	Args:  cobra.NoArgs,
	RunE:  runSign,
}

func init() {
	signCmd.Flags().StringVarP(&signBirth, "birth", "b", "", "birth date (YYYY-MM-DD or MM/DD/YYYY)")
	signCmd.MarkFlagRequired("birth")
}

// SignOutput is what sign prints
type SignOutput struct {
	BirthDate string `json:"birthDate" yaml:"birthDate"`
	SunSign   string `json:"sunSign" yaml:"sunSign"`
	MoonSign  string `json:"moonSign" yaml:"moonSign"`
	Age       int    `json:"age" yaml:"age"`
}

func runSign(cmd *cobra.Command, args []string) error {
	birth, ok := astro.ParseBirthDate(signBirth)
	if !ok {
		return fmt.Errorf("invalid birth date %q", signBirth)
	}
	return render(cmd.OutOrStdout(), SignOutput{
		BirthDate: birth.Format("2006-01-02"),
		SunSign:   astro.SunSignOf(birth),
		MoonSign:  astro.MoonSignOf(birth),
		Age:       astro.Age(birth, time.Now()),
	})
}
