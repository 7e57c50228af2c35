package main

import (
	"fmt"
	"os"

	"github.com/ludo-technologies/aspscan/internal/rules"
	"github.com/ludo-technologies/aspscan/service"
	"github.com/spf13/cobra"
)

var (
	rulesJSON     bool
	rulesSeverity []string
)

func rulesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List the built-in rules",
		Long: `List every registered rule with its ID, severity and name.

Examples:
  # Human-readable listing
  aspscan rules

  # Machine-readable listing
  aspscan rules --json

  # Only rules of the given severities
  aspscan rules --severity critical,high`,
		RunE: runRules,
	}

	cmd.Flags().BoolVar(&rulesJSON, "json", false,
		"Output the rule list as JSON")
	cmd.Flags().StringSliceVar(&rulesSeverity, "severity", nil,
		"Only show rules with these severities")

	return cmd
}

type ruleInfo struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Severity string `json:"severity"`
}

func runRules(cmd *cobra.Command, args []string) error {
	var listed []ruleInfo
	for _, r := range rules.All() {
		if len(rulesSeverity) > 0 && !contains(rulesSeverity, string(r.Severity)) {
			continue
		}
		listed = append(listed, ruleInfo{
			ID:       r.ID,
			Name:     r.Name,
			Severity: string(r.Severity),
		})
	}

	if rulesJSON {
		return service.WriteJSON(os.Stdout, listed)
	}

	for _, r := range listed {
		fmt.Printf("%-8s %-9s %s\n", r.ID, r.Severity, r.Name)
	}
	fmt.Printf("\n%d rules registered.\n", len(listed))
	return nil
}
