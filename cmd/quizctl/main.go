// Command quizctl inspects the question bank and scores answer sets offline.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"patternquiz/internal/config"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

var (
	logger   = zap.NewNop()
	format   string
	logLevel string
)

var rootCmd = &cobra.Command{
	Use:           "quizctl",
	Short:         "Pattern quiz tooling",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		switch format {
		case "json", "yaml":
		default:
			return fmt.Errorf("unknown format %q", format)
		}
		if logLevel == "" {
			return nil
		}
		l, err := config.NewLogger(logLevel)
		if err != nil {
			return err
		}
		logger = l
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&format, "format", "f", "json", "output format: json or yaml")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "enable logging at this level")
	rootCmd.AddCommand(bankCmd, scoreCmd, signCmd, seedCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// render writes v in the selected output format
func render(w io.Writer, v interface{}) error {
	if format == "yaml" {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(v)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
