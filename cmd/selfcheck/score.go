package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mentallify/assistant/internal/symptom"
)

func newScoreCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "score",
		Short: "Score symptom keys against the condition table",
		Example: "  selfcheck score --symptoms sadness,fatigue\n" +
			"  selfcheck score --symptoms worry --bank models/symptom_bank.json --all",
		RunE: runScore,
	}
	cmd.Flags().StringSlice("symptoms", nil, "Comma-separated symptom keys answered yes")
	cmd.Flags().String("bank", "", "Symptom bank JSON (default: built-in conditions)")
	cmd.Flags().Bool("all", false, "Print every condition instead of the top matches")
	_ = cmd.MarkFlagRequired("symptoms")
	return cmd
}

func runScore(cmd *cobra.Command, _ []string) error {
	symptoms, _ := cmd.Flags().GetStringSlice("symptoms")
	bankPath, _ := cmd.Flags().GetString("bank")
	all, _ := cmd.Flags().GetBool("all")

	conditions := symptom.DefaultConditions()
	if bankPath != "" {
		bank, err := symptom.LoadBank(bankPath)
		if err != nil {
			return err
		}
		conditions = bank.Conditions
	}

	keys := make([]string, 0, len(symptoms))
	for _, s := range symptoms {
		if s = strings.TrimSpace(s); s != "" {
			keys = append(keys, s)
		}
	}

	results := symptom.Score(conditions, keys)
	if !all {
		results = symptom.Top(results, symptom.TopResults)
	}
	out := cmd.OutOrStdout()
	if len(results) == 0 {
		fmt.Fprintln(out, "No matching conditions.")
		return nil
	}
	writeResults(out, results)
	return nil
}
